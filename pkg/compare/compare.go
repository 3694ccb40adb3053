package compare

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	apperr "github.com/matzehuels/sbomdiff/pkg/errors"
	"github.com/matzehuels/sbomdiff/pkg/observability"
	"github.com/matzehuels/sbomdiff/pkg/spdx"
)

// Options configures a comparison.
type Options struct {
	// Categories restricts the comparison to the named categories. Empty
	// means all of them.
	Categories []string

	// Parallel compares categories concurrently. Documents are only read.
	Parallel bool

	// ContinueOnError records a failing category in Report.Failures and
	// carries on with the others.
	ContinueOnError bool

	// MaxCellLength caps every rendered cell. Zero selects
	// render.DefaultMaxCellLength.
	MaxCellLength int

	Logger *log.Logger
}

// Compare aligns docs category by category. names labels the documents
// and must have exactly one unique entry per document; at least two
// documents are required.
func Compare(ctx context.Context, names []string, docs []*spdx.Document, opts Options) (*Report, error) {
	if err := apperr.ValidateDocumentNames(names, len(docs)); err != nil {
		return nil, err
	}
	for i, d := range docs {
		if d == nil {
			return nil, apperr.New(apperr.ErrCodeInvalidDocument, "document %q is nil", names[i])
		}
	}
	runners, err := selectCategories(opts.Categories)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	report := &Report{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Documents: append([]string(nil), names...),
	}
	logger.Debug("comparing documents", "id", report.ID, "documents", len(docs), "categories", len(runners))

	sections := make([]Section, len(runners))
	failures := make([]error, len(runners))

	compareOne := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r := runners[i]
		name := r.info().Name
		hooks := observability.Pipeline()
		hooks.OnCompareStart(ctx, name, len(docs))
		start := time.Now()
		s, err := r.run(ctx, docs, opts.MaxCellLength)
		hooks.OnCompareComplete(ctx, name, s.Stats.Rows, s.Stats.Different, time.Since(start), err)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			err = apperr.Wrap(apperr.ErrCodeCompareFailed, err, "category %s", name)
			if !opts.ContinueOnError {
				return err
			}
			logger.Warn("category failed", "category", name, "error", err)
			failures[i] = err
			return nil
		}
		sections[i] = s
		return nil
	}

	if opts.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i := range runners {
			g.Go(func() error { return compareOne(gctx, i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range runners {
			if err := compareOne(ctx, i); err != nil {
				return nil, err
			}
		}
	}

	for i, r := range runners {
		if failures[i] != nil {
			report.Failures = append(report.Failures, Failure{Category: r.info().Name, Error: failures[i].Error()})
			continue
		}
		report.Sections = append(report.Sections, sections[i])
	}
	return report, nil
}
