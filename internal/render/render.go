// Package render draws the shopping list document. Both formats share one
// fixed layout: a bold title at a fixed top coordinate, then one line per
// ingredient at a fixed step, continuing on a new page when one fills up.
package render

import (
	"fmt"     // String formatting
	"io"      // Writers
	"math"    // Rounding
	"strings" // String helpers

	"github.com/golang/freetype/truetype"      // TrueType fonts
	"golang.org/x/image/font/gofont/gobold"    // Embedded bold font
	"golang.org/x/image/font/gofont/goregular" // Embedded regular font
)

// Layout in points. A4 portrait.
const (
	PageWidth  = 595.28
	PageHeight = 841.89
	MarginX    = 50.0
	MarginTop  = 60.0
	MarginBot  = 50.0
	LineStep   = 20.0
	TitleSize  = 16.0
	BodySize   = 12.0
)

const (
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// Document is a title followed by plain text lines.
type Document struct {
	Title string
	Lines []string
}

// Renderer writes a Document in one binary format.
type Renderer interface {
	Render(w io.Writer, doc Document) error
	ContentType() string
	Extension() string
}

// ForFormat returns the renderer for format; an empty format means PDF.
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", FormatPDF:
		return PDF{}, nil
	case FormatPNG:
		return PNG{}, nil
	}
	return nil, fmt.Errorf("unsupported document format %q", format)
}

// LinesPerPage is the number of lines that fit between the top and bottom
// margins of one page.
func LinesPerPage() int {
	usable := PageHeight - MarginTop - MarginBot // a constant quotient would not convert to int
	return int(math.Floor(usable / LineStep))
}

// paginate splits the lines into pages. The first page also holds the title.
func paginate(lines []string) [][]string {
	perPage := LinesPerPage()
	first := perPage - 1
	if len(lines) <= first {
		return [][]string{lines}
	}
	pages := [][]string{lines[:first]}
	for rest := lines[first:]; len(rest) > 0; {
		n := min(perPage, len(rest))
		pages = append(pages, rest[:n])
		rest = rest[n:]
	}
	return pages
}

var regularFont, boldFont *truetype.Font

func init() {
	regularFont = mustParse(goregular.TTF)
	boldFont = mustParse(gobold.TTF)
}

func mustParse(ttf []byte) *truetype.Font {
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic(fmt.Sprintf("render: parse embedded font: %v", err))
	}
	return f
}
