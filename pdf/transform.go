package pdf

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Reorder writes the pages of src at indices, in that order, to out.
// Indices may repeat or omit pages, which makes this an extraction tool too.
func Reorder(src *Document, indices []int, out io.Writer, conf *model.Configuration) error {
	w := NewWriter(conf)
	for _, i := range indices {
		p, err := src.Page(i)
		if err != nil {
			return err
		}
		w.AddPage(p)
	}
	return w.Serialize(out)
}

// Rotate writes every page of src in order, with the pages at indices
// rotated by rot. A page listed more than once is still rotated once.
func Rotate(src *Document, indices []int, rot Rotation, out io.Writer, conf *model.Configuration) error {
	selected := make(map[int]bool, len(indices))
	for _, i := range indices {
		selected[i] = true
	}

	w := NewWriter(conf)
	for i := 0; i < src.PageCount(); i++ {
		p, err := src.Page(i)
		if err != nil {
			return err
		}
		if selected[i] {
			if err := p.Rotate(rot.Degrees()); err != nil {
				return fmt.Errorf("failed to rotate page %d: %w", i+1, err)
			}
		}
		w.AddPage(p)
	}
	return w.Serialize(out)
}

// Combine writes all pages of first, each rotated by rotFirst, followed by
// all pages of second, each rotated by rotSecond.
// Rotation is applied to the pages of the source documents, so first and
// second must be separately opened Documents: passing the same Document
// twice applies both rotations to every page.
func Combine(first *Document, rotFirst Rotation, second *Document, rotSecond Rotation, out io.Writer, conf *model.Configuration) error {
	w := NewWriter(conf)
	if err := addAllPages(w, first, rotFirst); err != nil {
		return err
	}
	if err := addAllPages(w, second, rotSecond); err != nil {
		return err
	}
	return w.Serialize(out)
}

// RemovePages writes every page of src except those at indices.
func RemovePages(src *Document, indices []int, out io.Writer, conf *model.Configuration) error {
	keep := Complement(indices, src.PageCount())
	if len(keep) == 0 {
		return ErrEmptyPageSelection
	}
	return Reorder(src, keep, out, conf)
}

// Complement returns, in ascending order, the indices in [0, pageCount)
// that do not appear in indices.
func Complement(indices []int, pageCount int) []int {
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}

	keep := make([]int, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		if !drop[i] {
			keep = append(keep, i)
		}
	}
	return keep
}

func addAllPages(w *Writer, doc *Document, rot Rotation) error {
	for i := 0; i < doc.PageCount(); i++ {
		p, err := doc.Page(i)
		if err != nil {
			return err
		}
		if err := p.Rotate(rot.Degrees()); err != nil {
			return fmt.Errorf("failed to rotate page %d of %s: %w", i+1, doc.Name(), err)
		}
		w.AddPage(p)
	}
	return nil
}
