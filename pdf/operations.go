package pdf

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"
)

// Processor runs the file level operations: validate the inputs, open
// them, transform, and write the output next to the first input.
type Processor struct {
	conf      *model.Configuration
	validator *Validator
	logger    arbor.ILogger
	writeFile func(path string, render func(io.Writer) error) error
}

// NewProcessor creates a Processor. A nil conf selects relaxed validation.
func NewProcessor(conf *model.Configuration, logger arbor.ILogger) *Processor {
	if conf == nil {
		conf = NewConfiguration(false)
	}
	return &Processor{
		conf:      conf,
		validator: NewValidator(conf, logger),
		logger:    logger,
		writeFile: WriteFile,
	}
}

// CombineRequest holds the inputs of a merge.
type CombineRequest struct {
	First        string
	Second       string
	RotateFirst  Rotation
	RotateSecond Rotation
	// Overwrite replaces First with the merged document instead of
	// writing <stem1>_<stem2>.pdf.
	Overwrite bool
}

// CombineFiles merges two files and returns the output path.
func (p *Processor) CombineFiles(req CombineRequest) (string, error) {
	if err := p.validator.ValidateFiles(req.First, req.Second); err != nil {
		return "", err
	}

	plan, err := p.combine(req)
	if err != nil {
		return "", err
	}

	if err := plan.Commit(); err != nil {
		p.logger.Warn().Err(err).Str("backup", plan.Backup).Msg("Failed to remove backup after overwrite")
	}
	return plan.Final, nil
}

// combine does the work of CombineFiles. Both documents are closed when
// it returns, before the caller removes any backup.
func (p *Processor) combine(req CombineRequest) (OutputPlan, error) {
	first, err := OpenFile(req.First, p.conf)
	if err != nil {
		return OutputPlan{}, err
	}
	defer first.Close()

	second, err := OpenFile(req.Second, p.conf)
	if err != nil {
		return OutputPlan{}, err
	}
	defer second.Close()

	plan := OutputPlan{Final: CombinedPath(req.First, req.Second)}
	if req.Overwrite {
		if plan, err = PlanOverwrite(req.First); err != nil {
			return OutputPlan{}, fmt.Errorf("%w: %v", ErrWriteFailure, err)
		}
	}

	err = p.writeFile(plan.Final, func(w io.Writer) error {
		return Combine(first, req.RotateFirst, second, req.RotateSecond, w, p.conf)
	})
	if err != nil {
		if plan.Backup != "" {
			p.logger.Error().Err(err).Str("backup", plan.Backup).Msg("Overwrite failed, original content kept at backup path")
			return OutputPlan{}, fmt.Errorf("%w; original content kept at %s", err, plan.Backup)
		}
		return OutputPlan{}, err
	}

	p.logger.Info().
		Str("first", req.First).
		Str("second", req.Second).
		Int("pages", first.PageCount()+second.PageCount()).
		Str("output", plan.Final).
		Msg("Combined documents")
	return plan, nil
}

// ReorderFile writes the pages selected by spec, in spec order, to
// <stem>_reorder.pdf and returns that path.
func (p *Processor) ReorderFile(path, spec string) (string, error) {
	indices, err := p.validator.ValidateSelection(path, spec)
	if err != nil {
		return "", err
	}

	out := SuffixedPath(path, ReorderSuffix)
	err = p.withDocument(path, func(doc *Document) error {
		return p.writeFile(out, func(w io.Writer) error {
			return Reorder(doc, indices, w, p.conf)
		})
	})
	if err != nil {
		return "", err
	}

	p.logger.Info().Str("input", path).Int("pages", len(indices)).Str("output", out).Msg("Reordered pages")
	return out, nil
}

// RotateFile rotates the pages selected by spec and writes the whole
// document to <stem>_rot.pdf, returning that path.
func (p *Processor) RotateFile(path, spec string, rot Rotation) (string, error) {
	indices, err := p.validator.ValidateSelection(path, spec)
	if err != nil {
		return "", err
	}

	out := SuffixedPath(path, RotateSuffix)
	err = p.withDocument(path, func(doc *Document) error {
		return p.writeFile(out, func(w io.Writer) error {
			return Rotate(doc, indices, rot, w, p.conf)
		})
	})
	if err != nil {
		return "", err
	}

	p.logger.Info().Str("input", path).Int("pages", len(indices)).Str("rotation", rot.String()).Str("output", out).Msg("Rotated pages")
	return out, nil
}

// RemovePagesFile drops the pages selected by spec and writes the rest to
// <stem>_removed.pdf, returning that path.
func (p *Processor) RemovePagesFile(path, spec string) (string, error) {
	indices, err := p.validator.ValidateSelection(path, spec)
	if err != nil {
		return "", err
	}

	out := SuffixedPath(path, RemoveSuffix)
	err = p.withDocument(path, func(doc *Document) error {
		if len(Complement(indices, doc.PageCount())) == 0 {
			return &ValidationError{Kind: ErrEmptyPageSelection, Path: path}
		}
		return p.writeFile(out, func(w io.Writer) error {
			return RemovePages(doc, indices, w, p.conf)
		})
	})
	if err != nil {
		return "", err
	}

	p.logger.Info().Str("input", path).Int("removed", len(indices)).Str("output", out).Msg("Removed pages")
	return out, nil
}

// InfoFile returns the page count and metadata of path.
func (p *Processor) InfoFile(path string) (Info, error) {
	if err := p.validator.ValidateFiles(path); err != nil {
		return Info{}, err
	}

	var info Info
	err := p.withDocument(path, func(doc *Document) error {
		info = Describe(doc)
		return nil
	})
	return info, err
}

// withDocument opens path, runs fn and closes the document on every path.
func (p *Processor) withDocument(path string, fn func(*Document) error) error {
	doc, err := OpenFile(path, p.conf)
	if err != nil {
		return err
	}
	defer doc.Close()

	return fn(doc)
}
