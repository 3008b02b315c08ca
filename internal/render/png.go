package render

import (
	"image/color" // Colors
	"io"          // Writers
	"math"        // Rounding

	"github.com/fogleman/gg"              // 2D drawing
	"github.com/golang/freetype/truetype" // TrueType fonts
	"golang.org/x/image/font"             // Font faces
)

// PNG renders every page onto one tall white image, pages stacked top to
// bottom.
type PNG struct {
	Scale float64 // pixels per point, 1 when zero
}

// ContentType is the MIME type of the rendered image.
func (PNG) ContentType() string { return "image/png" }

// Extension is the file suffix of the download.
func (PNG) Extension() string { return FormatPNG }

// Render draws the pages of doc stacked top to bottom in one image.
func (p PNG) Render(w io.Writer, doc Document) error {
	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}
	pages := paginate(doc.Lines)
	width := int(math.Ceil(PageWidth * scale))
	pageHeight := PageHeight * scale
	dc := gg.NewContext(width, int(math.Ceil(pageHeight*float64(len(pages)))))
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)

	// font.Face is not safe for concurrent use
	title := newFace(boldFont, TitleSize*scale)
	body := newFace(regularFont, BodySize*scale)
	defer title.Close()
	defer body.Close()

	for i, lines := range pages {
		top := pageHeight * float64(i)
		y := MarginTop
		if i == 0 {
			dc.SetFontFace(title)
			dc.DrawString(doc.Title, MarginX*scale, top+y*scale)
			y += LineStep
		}
		dc.SetFontFace(body)
		for _, line := range lines {
			dc.DrawString(line, MarginX*scale, top+y*scale)
			y += LineStep
		}
		if i > 0 {
			dc.SetColor(color.Gray{Y: 200})
			dc.DrawLine(0, top, float64(width), top)
			dc.Stroke()
			dc.SetColor(color.Black)
		}
	}
	return dc.EncodePNG(w)
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
