package pdf

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineFiles(t *testing.T) {
	dir := t.TempDir()
	first := writeFixture(t, dir, "one.pdf", 3, 100)
	second := writeFixture(t, dir, "two.pdf", 2, 300)

	out, err := newTestProcessor().CombineFiles(CombineRequest{First: first, Second: second})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "one_two.pdf"), out)

	doc := openPath(t, out)
	want := append(widthsOf(100, 0, 1, 2), widthsOf(300, 0, 1)...)
	assert.InDeltaSlice(t, want, pageWidths(t, doc), 0.01)

	// inputs are untouched
	assert.Equal(t, 3, openPath(t, first).PageCount())
	assert.Equal(t, 2, openPath(t, second).PageCount())
}

func TestCombineFilesOverwrite(t *testing.T) {
	dir := t.TempDir()
	first := writeFixture(t, dir, "one.pdf", 2, 100)
	second := writeFixture(t, dir, "two.pdf", 1, 300)

	out, err := newTestProcessor().CombineFiles(CombineRequest{
		First:        first,
		Second:       second,
		RotateSecond: RotateCCW,
		Overwrite:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, first, out)

	doc := openPath(t, first)
	assert.InDeltaSlice(t, append(widthsOf(100, 0, 1), widthsOf(300, 0)...), pageWidths(t, doc), 0.01)
	assert.Equal(t, []int{0, 0, 270}, pageRotations(t, doc))

	assert.NoFileExists(t, BackupPath(first))
	assert.NoFileExists(t, filepath.Join(dir, "one_two.pdf"))
}

func TestCombineFilesOverwriteFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	original := newFixture(t, 2, 100)
	first := filepath.Join(dir, "one.pdf")
	require.NoError(t, os.WriteFile(first, original, 0644))
	second := writeFixture(t, dir, "two.pdf", 1, 300)

	p := newTestProcessor()
	p.writeFile = func(string, func(io.Writer) error) error {
		return ErrWriteFailure
	}

	_, err := p.CombineFiles(CombineRequest{First: first, Second: second, Overwrite: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWriteFailure)
	assert.Contains(t, err.Error(), BackupPath(first))

	kept, err := os.ReadFile(BackupPath(first))
	require.NoError(t, err)
	assert.Equal(t, original, kept)
}

func TestCombineFilesValidationHasNoSideEffects(t *testing.T) {
	dir := t.TempDir()
	first := writeFixture(t, dir, "one.pdf", 2, 100)
	missing := filepath.Join(dir, "missing.pdf")

	_, err := newTestProcessor().CombineFiles(CombineRequest{First: first, Second: missing, Overwrite: true})
	assert.ErrorIs(t, err, ErrInputNotFound)

	assert.FileExists(t, first)
	assert.NoFileExists(t, BackupPath(first))
}

func TestCombineFilesSameInputTwice(t *testing.T) {
	dir := t.TempDir()
	first := writeFixture(t, dir, "one.pdf", 2, 100)

	out, err := newTestProcessor().CombineFiles(CombineRequest{First: first, Second: first, Overwrite: true})
	require.NoError(t, err)
	assert.InDeltaSlice(t, widthsOf(100, 0, 1, 0, 1), pageWidths(t, openPath(t, out)), 0.01)
}

func TestReorderFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "doc.pdf", 10, 100)

	out, err := newTestProcessor().ReorderFile(path, "2,1,3-10")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "doc_reorder.pdf"), out)
	assert.InDeltaSlice(t, widthsOf(100, 1, 0, 2, 3, 4, 5, 6, 7, 8, 9), pageWidths(t, openPath(t, out)), 0.01)
}

func TestReorderFileEmptySelection(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "doc.pdf", 4, 100)

	_, err := newTestProcessor().ReorderFile(path, "5")
	assert.ErrorIs(t, err, ErrEmptyPageSelection)
	assert.NoFileExists(t, filepath.Join(dir, "doc_reorder.pdf"))
}

func TestRotateFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "doc.pdf", 10, 100)

	out, err := newTestProcessor().RotateFile(path, "1-3, 7, 10", RotateCW)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "doc_rot.pdf"), out)

	doc := openPath(t, out)
	assert.Equal(t, []int{90, 90, 90, 0, 0, 0, 90, 0, 0, 90}, pageRotations(t, doc))
	assert.InDeltaSlice(t, widthsOf(100, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9), pageWidths(t, doc), 0.01)
}

func TestRotateFileRestricted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.pdf")
	require.NoError(t, os.WriteFile(path, encrypt(t, newFixture(t, 2, 100)), 0644))

	_, err := newTestProcessor().RotateFile(path, "1", RotateCW)
	assert.ErrorIs(t, err, ErrRestricted)
}

func TestRemovePagesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "doc.pdf", 5, 100)
	p := newTestProcessor()

	out, err := p.RemovePagesFile(path, "2, 4-5")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "doc_removed.pdf"), out)
	assert.InDeltaSlice(t, widthsOf(100, 0, 2), pageWidths(t, openPath(t, out)), 0.01)

	_, err = p.RemovePagesFile(path, "1-5")
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.ErrorIs(t, err, ErrEmptyPageSelection)
}

func TestInfoFile(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "doc.pdf", 3, 100)

	info, err := newTestProcessor().InfoFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, info.PageCount)
	assert.Equal(t, "Fixture", info.Metadata["Title"])
	assert.Equal(t, "pdftools tests", info.Metadata["Author"])

	_, err = newTestProcessor().InfoFile(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorIs(t, err, ErrInputNotFound)
}
