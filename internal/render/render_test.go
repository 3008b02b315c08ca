package render

import (
	"bytes"
	"fmt"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFormat(t *testing.T) {
	r, err := ForFormat("")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", r.ContentType())

	r, err = ForFormat("PNG")
	require.NoError(t, err)
	assert.Equal(t, "png", r.Extension())

	_, err = ForFormat("docx")
	assert.Error(t, err)
}

func TestPaginate(t *testing.T) {
	perPage := LinesPerPage()
	assert.Equal(t, 36, perPage, "floor((841.89-60-50)/20)")

	assert.Len(t, paginate(nil), 1, "an empty list still yields the title page")

	lines := make([]string, perPage*2)
	for i := range lines {
		lines[i] = fmt.Sprintf("- item %d: 1,g.", i)
	}
	pages := paginate(lines)
	require.Len(t, pages, 3)
	assert.Len(t, pages[0], perPage-1)
	assert.Len(t, pages[1], perPage)
	assert.Len(t, pages[2], 1)
	assert.Equal(t, lines[len(lines)-1], pages[2][0])
}

func TestPDFRender(t *testing.T) {
	var buf bytes.Buffer
	err := PDF{}.Render(&buf, Document{
		Title: "Shopping list:",
		Lines: []string{"- мука: 300,г.", "- salt: 5."},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPDFRenderTitleOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF{}.Render(&buf, Document{Title: "Shopping list:"}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	pdf := PDF{}.layout(Document{Title: "Shopping list:"})
	require.NoError(t, pdf.Error())
	assert.Equal(t, 1, pdf.PageCount())
}

func TestPDFLayoutPages(t *testing.T) {
	perPage := LinesPerPage()
	cases := map[string]struct {
		lines int
		pages int
	}{
		"fits the first page":      {perPage - 1, 1},
		"one line over":            {perPage, 2},
		"spills onto a third page": {2 * perPage, 3},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			lines := make([]string, tc.lines)
			for i := range lines {
				lines[i] = fmt.Sprintf("- item %d: 1,g.", i)
			}
			pdf := PDF{}.layout(Document{Title: "Shopping list:", Lines: lines})
			require.NoError(t, pdf.Error())
			assert.Equal(t, tc.pages, pdf.PageCount())

			pdf.SetPage(1)
			_, h := pdf.GetPageSize()
			assert.InDelta(t, PageHeight, h, 0.01)
		})
	}
}

func TestPNGRenderPages(t *testing.T) {
	perPage := LinesPerPage()
	lines := make([]string, perPage+5)
	for i := range lines {
		lines[i] = "- flour: 300,g."
	}

	var buf bytes.Buffer
	require.NoError(t, PNG{}.Render(&buf, Document{Title: "Shopping list:", Lines: lines}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	b := img.Bounds()
	assert.Equal(t, 596, b.Dx())
	assert.Equal(t, 1684, b.Dy(), "two stacked pages")
}
