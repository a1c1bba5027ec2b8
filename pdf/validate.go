package pdf

import (
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"
)

// Validator runs the pre-flight checks that must pass before any output
// is written or any input is renamed.
type Validator struct {
	conf   *model.Configuration
	logger arbor.ILogger
}

// NewValidator creates a Validator reading documents with conf.
func NewValidator(conf *model.Configuration, logger arbor.ILogger) *Validator {
	if conf == nil {
		conf = NewConfiguration(false)
	}
	return &Validator{conf: conf, logger: logger}
}

// ValidateFiles checks, for each path in turn, that it is a regular file,
// that it parses as a PDF and that it opens without a password. The first
// failure is returned as a *ValidationError.
func (v *Validator) ValidateFiles(paths ...string) error {
	for _, path := range paths {
		if _, err := v.checkFile(path); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSelection validates path and resolves spec against its page
// count. An empty selection fails with ErrEmptyPageSelection.
func (v *Validator) ValidateSelection(path, spec string) ([]int, error) {
	pageCount, err := v.checkFile(path)
	if err != nil {
		return nil, err
	}

	indices := v.resolve(spec, pageCount)
	if len(indices) == 0 {
		return nil, &ValidationError{Kind: ErrEmptyPageSelection, Path: path}
	}
	return indices, nil
}

// checkFile opens path for inspection only and returns its page count.
// The document is closed again before returning.
func (v *Validator) checkFile(path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return 0, &ValidationError{Kind: ErrInputNotFound, Path: path, Err: err}
	}

	doc, err := OpenFile(path, v.conf)
	if err != nil {
		kind := kindOf(err)
		if kind == nil {
			kind = ErrNotPDF
		}
		v.logger.Debug().Err(err).Str("path", path).Msg("Input failed validation")
		return 0, &ValidationError{Kind: kind, Path: path, Err: err}
	}
	defer doc.Close()

	return doc.PageCount(), nil
}

// resolve is ResolvePages with skipped tokens logged.
func (v *Validator) resolve(spec string, pageCount int) []int {
	indices, warnings := ResolvePages(spec, pageCount)
	for _, w := range warnings {
		v.logger.Warn().Str("token", w.Token).Str("reason", w.Reason).Msg("Skipping page specification token")
	}
	return indices
}
