package pdf

import (
	"errors"
	"fmt"
)

var (
	ErrInputNotFound      = errors.New("input file not found")
	ErrNotPDF             = errors.New("not a valid PDF")
	ErrRestricted         = errors.New("file is restricted")
	ErrEmptyPageSelection = errors.New("no pages to process")
	ErrWriteFailure       = errors.New("failed to write output")
)

// ValidationError is a failed pre-flight check for one input file.
// Its message is the status line shown to users.
type ValidationError struct {
	Kind error
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ErrInputNotFound:
		return fmt.Sprintf("Cannot find input file %s", e.Path)
	case ErrNotPDF:
		return fmt.Sprintf("%s does not look like a valid PDF.", e.Path)
	case ErrRestricted:
		return fmt.Sprintf("File is restricted: %s", e.Path)
	case ErrEmptyPageSelection:
		return "No pages to process. Check pages specification."
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Path
}

// Unwrap lets errors.Is match both the kind and the underlying cause.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// kindOf returns the sentinel wrapped by err, or nil.
func kindOf(err error) error {
	for _, kind := range []error{ErrInputNotFound, ErrRestricted, ErrNotPDF, ErrEmptyPageSelection, ErrWriteFailure} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
