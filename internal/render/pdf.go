package render

import (
	"io" // Writers

	"github.com/go-pdf/fpdf"                   // PDF generation
	"golang.org/x/image/font/gofont/gobold"    // Embedded bold font
	"golang.org/x/image/font/gofont/goregular" // Embedded regular font
)

const pdfFamily = "Go"

// PDF renders with fpdf using the embedded Go fonts so any UTF-8 text prints.
type PDF struct{}

// ContentType is the MIME type of the rendered document.
func (PDF) ContentType() string { return "application/pdf" }

// Extension is the file suffix of the download.
func (PDF) Extension() string { return FormatPDF }

// Render writes doc as an A4 PDF, continuing onto new pages as needed.
func (p PDF) Render(w io.Writer, doc Document) error {
	return p.layout(doc).Output(w)
}

// layout draws doc onto a new fpdf document without writing it out.
func (PDF) layout(doc Document) *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddUTF8FontFromBytes(pdfFamily, "", goregular.TTF)
	pdf.AddUTF8FontFromBytes(pdfFamily, "B", gobold.TTF)

	for i, lines := range paginate(doc.Lines) {
		pdf.AddPage()
		y := MarginTop
		if i == 0 {
			pdf.SetFont(pdfFamily, "B", TitleSize)
			pdf.Text(MarginX, y, doc.Title)
			y += LineStep
		}
		pdf.SetFont(pdfFamily, "", BodySize)
		for _, line := range lines {
			pdf.Text(MarginX, y, line)
			y += LineStep
		}
	}
	return pdf
}
