package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

// fixtureWidth is the media box width of page i of a fixture with the
// given base. Every page gets its own width so it can be recognised after
// pages have been moved around.
func fixtureWidth(base, i int) float64 {
	return float64(base + 10*i)
}

// newFixture returns an n-page PDF whose page i is fixtureWidth(base, i)
// points wide.
func newFixture(t *testing.T, n, base int) []byte {
	t.Helper()

	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetTitle("Fixture", false)
	doc.SetAuthor("pdftools tests", false)
	doc.SetFont("Helvetica", "", 12)
	for i := 0; i < n; i++ {
		doc.AddPageFormat("P", fpdf.SizeType{Wd: fixtureWidth(base, i), Ht: 400})
		doc.Cell(40, 20, fmt.Sprintf("page %d", i+1))
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

// writeFixture writes an n-page fixture to dir/name and returns its path.
func writeFixture(t *testing.T, dir, name string, n, base int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, newFixture(t, n, base), 0644))
	return path
}

// encrypt protects data with a user password, which makes it restricted.
func encrypt(t *testing.T, data []byte) []byte {
	t.Helper()
	conf := model.NewAESConfiguration("user-secret", "owner-secret", 256)
	var buf bytes.Buffer
	require.NoError(t, api.Encrypt(bytes.NewReader(data), &buf, conf))
	return buf.Bytes()
}

func openBytes(t *testing.T, data []byte) *Document {
	t.Helper()
	doc, err := Open(bytes.NewReader(data), "fixture.pdf", nil)
	require.NoError(t, err)
	t.Cleanup(func() { doc.Close() })
	return doc
}

func openPath(t *testing.T, path string) *Document {
	t.Helper()
	doc, err := OpenFile(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { doc.Close() })
	return doc
}

// pageWidths lists the media box width of every page of doc.
func pageWidths(t *testing.T, doc *Document) []float64 {
	t.Helper()
	widths := make([]float64, doc.PageCount())
	for i := range widths {
		d, _, inh, err := doc.ctx.PageDict(i+1, false)
		require.NoError(t, err)
		if box := d.ArrayEntry("MediaBox"); len(box) == 4 {
			widths[i] = number(box[2]) - number(box[0])
			continue
		}
		require.NotNil(t, inh.MediaBox)
		widths[i] = inh.MediaBox.Width()
	}
	return widths
}

// pageRotations lists the effective rotation of every page of doc.
func pageRotations(t *testing.T, doc *Document) []int {
	t.Helper()
	rotations := make([]int, doc.PageCount())
	for i := range rotations {
		p, err := doc.Page(i)
		require.NoError(t, err)
		rotations[i], err = p.Rotation()
		require.NoError(t, err)
	}
	return rotations
}

func number(o types.Object) float64 {
	switch v := o.(type) {
	case types.Float:
		return v.Value()
	case types.Integer:
		return float64(v.Value())
	}
	return 0
}

func widthsOf(base int, indices ...int) []float64 {
	widths := make([]float64, len(indices))
	for k, i := range indices {
		widths[k] = fixtureWidth(base, i)
	}
	return widths
}

func newTestProcessor() *Processor {
	return NewProcessor(nil, arbor.NewLogger())
}
