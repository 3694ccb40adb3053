// Package pipeline runs the load → compare → export flow shared by the CLI
// and the HTTP server.
//
// # Stages
//
//  1. Load: read and decode each SPDX document, hashing its content
//  2. Compare: align the documents category by category into a report
//  3. Export: render the report in the requested formats
//
// Reports are cached by document content and comparison options, so
// re-running a comparison on unchanged files skips stage 2.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Documents: []string{"app-1.0.spdx.json", "app-1.1.spdx.json"},
//	    Formats:   []string{"xlsx"},
//	})
//	if err != nil {
//	    return err
//	}
//	xlsx := result.Artifacts["xlsx"]
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sbomdiff/pkg/cache"
	"github.com/matzehuels/sbomdiff/pkg/compare"
	apperr "github.com/matzehuels/sbomdiff/pkg/errors"
	"github.com/matzehuels/sbomdiff/pkg/sink"
	"github.com/matzehuels/sbomdiff/pkg/spdx"
)

// DefaultFormat is the output format used when none is requested.
const DefaultFormat = sink.FormatXLSX

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a comparison run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Documents []string `json:"documents"`
	Names     []string `json:"names,omitempty"`

	// Compare options
	Categories      []string `json:"categories,omitempty"`
	Parallel        bool     `json:"parallel,omitempty"`
	ContinueOnError bool     `json:"continue_on_error,omitempty"`
	MaxCellLength   int      `json:"max_cell_length,omitempty"`
	Refresh         bool     `json:"refresh,omitempty"`

	// Export options
	Formats         []string `json:"formats,omitempty"`
	OnlyDifferences bool     `json:"only_differences,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Loaded is a decoded document with its content hash.
type Loaded struct {
	Path     string
	Name     string
	Hash     string
	Document *spdx.Document
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Report *compare.Report

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats Stats

	// CacheHit is true when the report came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Documents   int
	Rows        int
	Different   int
	LoadTime    time.Duration
	CompareTime time.Duration
	ExportTime  time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForExport(); err != nil {
		return err
	}
	for _, c := range o.Categories {
		if _, ok := compare.Category(c); !ok {
			return apperr.New(apperr.ErrCodeInvalidInput, "unknown category %q", c)
		}
	}
	if o.MaxCellLength < 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "max cell length must not be negative")
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the document list and derives missing names.
func (o *Options) ValidateForLoad() error {
	for _, p := range o.Documents {
		if err := apperr.ValidatePath(p); err != nil {
			return err
		}
	}
	if len(o.Names) == 0 {
		o.Names = DefaultNames(o.Documents)
	}
	if err := apperr.ValidateDocumentNames(o.Names, len(o.Documents)); err != nil {
		return err
	}
	o.setLogger()
	return nil
}

// SetExportDefaults sets default values for exporting.
func (o *Options) SetExportDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.setLogger()
}

// ValidateForExport validates and sets defaults for exporting.
func (o *Options) ValidateForExport() error {
	o.SetExportDefaults()
	return sink.ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// CompareOptions returns the options for compare.Compare.
func (o *Options) CompareOptions() compare.Options {
	return compare.Options{
		Categories:      o.Categories,
		Parallel:        o.Parallel,
		ContinueOnError: o.ContinueOnError,
		MaxCellLength:   o.MaxCellLength,
		Logger:          o.Logger,
	}
}

// ReportKeyOpts returns cache key options for the report.
func (o *Options) ReportKeyOpts() cache.ReportKeyOpts {
	return cache.ReportKeyOpts{
		Names:         o.Names,
		Categories:    o.Categories,
		MaxCellLength: o.MaxCellLength,
	}
}

// SinkOptions returns the options for the sinks.
func (o *Options) SinkOptions() []sink.Option {
	var opts []sink.Option
	if o.OnlyDifferences {
		opts = append(opts, sink.WithOnlyDifferences())
	}
	return opts
}

// DefaultNames derives document names from file names, dropping the
// directory and the serialization extensions. Repeated names get a
// numeric suffix: "app", "app-2".
func DefaultNames(paths []string) []string {
	names := make([]string, len(paths))
	used := make(map[string]bool, len(paths))
	for i, p := range paths {
		base := filepath.Base(p)
		for _, ext := range []string{".json", ".yaml", ".yml", ".spdx"} {
			base = strings.TrimSuffix(base, ext)
		}
		if base == "" || base == "." {
			base = fmt.Sprintf("doc%d", i+1)
		}
		name := base
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s-%d", base, n)
		}
		used[name] = true
		names[i] = name
	}
	return names
}
