package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Stem returns the file name of path without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// dirOf returns the directory of path, "." when it has none.
func dirOf(path string) string {
	if dir := filepath.Dir(path); dir != "" {
		return dir
	}
	return "."
}

// SuffixedPath returns <dir>/<stem><suffix>.pdf for the input path.
func SuffixedPath(path, suffix string) string {
	return filepath.Join(dirOf(path), Stem(path)+suffix+PDFExtension)
}

// CombinedPath returns <dir1>/<stem1>_<stem2>.pdf.
func CombinedPath(first, second string) string {
	return filepath.Join(dirOf(first), Stem(first)+"_"+Stem(second)+PDFExtension)
}

// BackupPath is where the first input is kept while it is overwritten.
func BackupPath(path string) string {
	return SuffixedPath(path, BackupSuffix)
}

// OutputPlan describes where an operation writes. When Backup is set the
// original content of Final has been moved there and must be removed only
// after the new content is written.
type OutputPlan struct {
	Final  string
	Backup string
}

// PlanOverwrite moves path aside to its backup name so that new content can
// be written to path. It refuses to reuse an existing backup file, so a
// backup left behind by an earlier failed run is never destroyed.
//
// The backup name is deterministic; two concurrent overwrites of the same
// file are not supported.
func PlanOverwrite(path string) (OutputPlan, error) {
	backup := BackupPath(path)
	if _, err := os.Lstat(backup); err == nil {
		return OutputPlan{}, fmt.Errorf("backup file %s already exists", backup)
	} else if !errors.Is(err, os.ErrNotExist) {
		return OutputPlan{}, fmt.Errorf("failed to check backup file %s: %w", backup, err)
	}

	if err := os.Rename(path, backup); err != nil {
		return OutputPlan{}, fmt.Errorf("failed to move %s aside: %w", path, err)
	}
	return OutputPlan{Final: path, Backup: backup}, nil
}

// Commit removes the backup after a successful write.
func (p OutputPlan) Commit() error {
	if p.Backup == "" {
		return nil
	}
	if err := os.Remove(p.Backup); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove backup %s: %w", p.Backup, err)
	}
	return nil
}

// WriteFile writes the output produced by render to path. Content goes to
// a temporary sibling first and is renamed into place only when render and
// the flush both succeed, so a failure never leaves a truncated file.
// Every failure wraps ErrWriteFailure.
func WriteFile(path string, render func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(dirOf(path), "."+Stem(path)+"-*"+PDFExtension)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err = render(tmp); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	if err = tmp.Chmod(OutputFilePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	return nil
}
