package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ErrDocumentClosed is returned when a closed Document is used.
var ErrDocumentClosed = errors.New("document is closed")

// NewConfiguration returns the pdfcpu configuration used for every read.
// Documents are always opened with empty passwords: a file that needs a
// real password is treated as restricted.
func NewConfiguration(strict bool) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if strict {
		conf.ValidationMode = model.ValidationStrict
	}
	conf.UserPW = ""
	conf.OwnerPW = ""
	return conf
}

// Document is a parsed PDF held in memory.
// It is owned by the caller that opened it and must be closed when done.
type Document struct {
	ctx  *model.Context
	name string
}

// Open parses a PDF from rs.
func Open(rs io.ReadSeeker, name string, conf *model.Configuration) (*Document, error) {
	if conf == nil {
		conf = NewConfiguration(false)
	}

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return nil, classifyReadError(err)
	}

	if err := api.ValidateContext(ctx); err != nil {
		return nil, classifyReadError(err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}

	return &Document{ctx: ctx, name: name}, nil
}

// OpenFile reads and parses the PDF at path. The file handle is released
// before OpenFile returns, so the file may be renamed or removed while the
// Document is still open.
func OpenFile(path string, conf *model.Configuration) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Open(bytes.NewReader(data), filepath.Base(path), conf)
}

// classifyReadError separates decryption failures from malformed input.
// pdfcpu reports both as plain errors, so the message is inspected.
func classifyReadError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "password") || strings.Contains(msg, "encrypt") || strings.Contains(msg, "decrypt") {
		return fmt.Errorf("%w: %v", ErrRestricted, err)
	}
	return fmt.Errorf("%w: %v", ErrNotPDF, err)
}

// Name is the base name of the source file, if known.
func (d *Document) Name() string {
	return d.name
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	if d.ctx == nil {
		return 0
	}
	return d.ctx.PageCount
}

// Page returns the page at zero-based index i.
func (d *Document) Page(i int) (Page, error) {
	if d.ctx == nil {
		return Page{}, ErrDocumentClosed
	}
	if i < 0 || i >= d.ctx.PageCount {
		return Page{}, fmt.Errorf("page index %d out of range [0, %d)", i, d.ctx.PageCount)
	}
	return Page{doc: d, index: i}, nil
}

// Close releases the parsed document. It is safe to call more than once.
func (d *Document) Close() error {
	d.ctx = nil
	return nil
}

// Page addresses one page of a Document.
type Page struct {
	doc   *Document
	index int
}

// Rotation returns the effective /Rotate value of the page, inherited
// values included.
func (p Page) Rotation() (int, error) {
	d, inh, err := p.dict()
	if err != nil {
		return 0, err
	}
	return effectiveRotation(d, inh), nil
}

// Rotate adds deg (a multiple of 90, clockwise positive) to the page rotation.
func (p Page) Rotate(deg int) error {
	if deg%90 != 0 {
		return fmt.Errorf("rotation must be a multiple of 90, got %d", deg)
	}
	if deg == 0 {
		return nil
	}

	d, inh, err := p.dict()
	if err != nil {
		return err
	}

	d.Update("Rotate", types.Integer(normalizeDegrees(effectiveRotation(d, inh)+deg)))
	return nil
}

func (p Page) dict() (types.Dict, *model.InheritedPageAttrs, error) {
	if p.doc == nil || p.doc.ctx == nil {
		return nil, nil, ErrDocumentClosed
	}
	d, _, inh, err := p.doc.ctx.PageDict(p.index+1, false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read page %d: %w", p.index+1, err)
	}
	if d == nil {
		return nil, nil, fmt.Errorf("page %d not found", p.index+1)
	}
	return d, inh, nil
}

func effectiveRotation(d types.Dict, inh *model.InheritedPageAttrs) int {
	if o, found := d.Find("Rotate"); found {
		if i, ok := o.(types.Integer); ok {
			return normalizeDegrees(i.Value())
		}
	}
	if inh != nil {
		return normalizeDegrees(inh.Rotate)
	}
	return 0
}

// Writer assembles an output document from pages of one or more Documents.
type Writer struct {
	pages []Page
	conf  *model.Configuration
}

// NewWriter returns an empty Writer.
func NewWriter(conf *model.Configuration) *Writer {
	if conf == nil {
		conf = NewConfiguration(false)
	}
	return &Writer{conf: conf}
}

// AddPage appends p to the output. A page may be added more than once.
func (w *Writer) AddPage(p Page) {
	w.pages = append(w.pages, p)
}

// pageRun is a sequence of consecutive output pages from one document.
type pageRun struct {
	doc     *Document
	pageNrs []int
}

func (w *Writer) runs() []pageRun {
	var runs []pageRun
	for _, p := range w.pages {
		if n := len(runs); n > 0 && runs[n-1].doc == p.doc {
			runs[n-1].pageNrs = append(runs[n-1].pageNrs, p.index+1)
			continue
		}
		runs = append(runs, pageRun{doc: p.doc, pageNrs: []int{p.index + 1}})
	}
	return runs
}

func (r pageRun) write(out io.Writer) error {
	if r.doc == nil || r.doc.ctx == nil {
		return ErrDocumentClosed
	}
	ctxDest, err := pdfcpu.ExtractPages(r.doc.ctx, r.pageNrs, false)
	if err != nil {
		return fmt.Errorf("failed to extract pages: %w", err)
	}
	if err := api.WriteContext(ctxDest, out); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// Serialize writes the assembled document to out.
func (w *Writer) Serialize(out io.Writer) error {
	if len(w.pages) == 0 {
		return errors.New("no pages to write")
	}

	runs := w.runs()
	if len(runs) == 1 {
		return runs[0].write(out)
	}

	parts := make([]io.ReadSeeker, 0, len(runs))
	for _, r := range runs {
		var buf bytes.Buffer
		if err := r.write(&buf); err != nil {
			return err
		}
		parts = append(parts, bytes.NewReader(buf.Bytes()))
	}

	if err := api.MergeRaw(parts, out, false, w.conf); err != nil {
		return fmt.Errorf("failed to merge documents: %w", err)
	}
	return nil
}
