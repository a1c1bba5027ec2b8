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

func TestOutputPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("docs", "report_reorder.pdf"), SuffixedPath(filepath.Join("docs", "report.pdf"), ReorderSuffix))
	assert.Equal(t, filepath.Join("docs", "report_rot.pdf"), SuffixedPath(filepath.Join("docs", "report.pdf"), RotateSuffix))
	assert.Equal(t, "report_rot.pdf", SuffixedPath("report.pdf", RotateSuffix))
	assert.Equal(t, filepath.Join("a", "one_two.pdf"), CombinedPath(filepath.Join("a", "one.pdf"), filepath.Join("b", "two.PDF")))
	assert.Equal(t, filepath.Join("a", "one_old.pdf"), BackupPath(filepath.Join("a", "one.pdf")))
	assert.Equal(t, "archive.tar", Stem("/x/archive.tar.gz"))
}

func TestPlanOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

	plan, err := PlanOverwrite(path)
	require.NoError(t, err)
	assert.Equal(t, path, plan.Final)
	assert.Equal(t, filepath.Join(dir, "doc_old.pdf"), plan.Backup)

	assert.NoFileExists(t, path)
	data, err := os.ReadFile(plan.Backup)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	require.NoError(t, plan.Commit())
	assert.NoFileExists(t, plan.Backup)
	require.NoError(t, OutputPlan{Final: path}.Commit())
}

func TestPlanOverwriteKeepsExistingBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("new"), 0644))
	require.NoError(t, os.WriteFile(BackupPath(path), []byte("stale"), 0644))

	_, err := PlanOverwrite(path)
	require.Error(t, err)

	data, err := os.ReadFile(BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, "stale", string(data))
	assert.FileExists(t, path)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")

	require.NoError(t, WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "content")
		return err
	}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")

	err := WriteFile(path, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return errors.New("disk full")
	})
	assert.ErrorIs(t, err, ErrWriteFailure)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFileMissingDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "nope", "out.pdf"), func(w io.Writer) error { return nil })
	assert.ErrorIs(t, err, ErrWriteFailure)
}
