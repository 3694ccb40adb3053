package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sbomdiff/pkg/cache"
	"github.com/matzehuels/sbomdiff/pkg/compare"
	"github.com/matzehuels/sbomdiff/pkg/observability"
	"github.com/matzehuels/sbomdiff/pkg/sink"
	"github.com/matzehuels/sbomdiff/pkg/spdx"
)

const keyTypeReport = "report"

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long computed reports stay cached.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLReport,
	}
}

// Execute runs the complete load → compare → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	docs, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.Documents = len(docs)
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded documents",
		"documents", len(docs),
		"duration", result.Stats.LoadTime)

	// Stage 2: Compare
	compareStart := time.Now()
	report, hit, err := r.CompareWithCacheInfo(ctx, docs, opts)
	if err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}
	result.Report = report
	result.CacheHit = hit
	result.Stats.CompareTime = time.Since(compareStart)
	for _, s := range report.Sections {
		result.Stats.Rows += s.Stats.Rows
		result.Stats.Different += s.Stats.Different
	}

	r.Logger.Info("compared documents",
		"rows", result.Stats.Rows,
		"different", result.Stats.Different,
		"cached", hit,
		"duration", result.Stats.CompareTime)

	// Stage 3: Export
	exportStart := time.Now()
	artifacts, err := r.Export(ctx, report, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)

	r.Logger.Info("exported report",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Load reads every document in opts. Documents are loaded in order and the
// first failure stops loading.
func (r *Runner) Load(ctx context.Context, opts Options) ([]Loaded, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()

	docs := make([]Loaded, 0, len(opts.Documents))
	for i, path := range opts.Documents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hooks.OnLoadStart(ctx, path)
		start := time.Now()
		doc, data, err := spdx.LoadBytes(path)
		hooks.OnLoadComplete(ctx, path, time.Since(start), err)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Loaded{
			Path:     path,
			Name:     opts.Names[i],
			Hash:     cache.Hash(data),
			Document: doc,
		})
	}
	return docs, nil
}

// Decode builds a Loaded document from raw content, for callers that do
// not read from disk.
func Decode(name string, data []byte, format spdx.Format) (Loaded, error) {
	doc, err := spdx.Read(bytes.NewReader(data), format)
	if err != nil {
		return Loaded{}, fmt.Errorf("%s: %w", name, err)
	}
	return Loaded{Name: name, Hash: cache.Hash(data), Document: doc}, nil
}

// CompareWithCacheInfo compares loaded documents, consulting the cache
// unless opts.Refresh is set, and reports whether the cache was hit.
func (r *Runner) CompareWithCacheInfo(ctx context.Context, docs []Loaded, opts Options) (*compare.Report, bool, error) {
	r.applyLogger(&opts)

	names := make([]string, len(docs))
	hashes := make([]string, len(docs))
	spdxDocs := make([]*spdx.Document, len(docs))
	for i, d := range docs {
		names[i], hashes[i], spdxDocs[i] = d.Name, d.Hash, d.Document
	}
	opts.Names = names
	cacheKey := r.Keyer.ReportKey(hashes, opts.ReportKeyOpts())
	cacheHooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			report, err := sink.ReadJSON(bytes.NewReader(data))
			if err == nil {
				cacheHooks.OnCacheHit(ctx, keyTypeReport)
				return report, true, nil
			}
			r.Logger.Debug("discarding unreadable cached report", "error", err)
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		cacheHooks.OnCacheMiss(ctx, keyTypeReport)
	}

	report, err := compare.Compare(ctx, names, spdxDocs, opts.CompareOptions())
	if err != nil {
		return nil, false, err
	}

	// Reports with failed categories are not cached so a fixed input
	// is compared again.
	if len(report.Failures) == 0 {
		if data, err := sink.RenderJSON(report); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, r.TTL); err != nil {
				r.Logger.Warn("cache write failed", "error", err)
			} else {
				cacheHooks.OnCacheSet(ctx, keyTypeReport, len(data))
			}
		}
	}
	return report, false, nil
}

// Compare is a convenience wrapper that calls CompareWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Compare(ctx context.Context, docs []Loaded, opts Options) (*compare.Report, error) {
	report, _, err := r.CompareWithCacheInfo(ctx, docs, opts)
	return report, err
}

// Export renders the report in every requested format.
func (r *Runner) Export(ctx context.Context, report *compare.Report, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForExport(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		var data []byte
		if data, err = sink.Render(report, format, opts.SinkOptions()...); err != nil {
			err = fmt.Errorf("%s: %w", format, err)
			break
		}
		artifacts[format] = data
	}

	hooks.OnExportComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
