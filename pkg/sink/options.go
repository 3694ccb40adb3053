package sink

import "github.com/matzehuels/sbomdiff/pkg/compare"

// Option configures a sink.
type Option func(*options)

type options struct {
	onlyDiff  bool
	cellWidth int
	color     bool
}

// WithOnlyDifferences drops equal rows. Section statistics are kept.
func WithOnlyDifferences() Option { return func(o *options) { o.onlyDiff = true } }

// WithCellWidth caps each terminal table cell line. Text output only.
func WithCellWidth(n int) Option { return func(o *options) { o.cellWidth = n } }

// WithColor enables row coloring in text output.
func WithColor() Option { return func(o *options) { o.color = true } }

const defaultCellWidth = 60

func newOptions(opts []Option) options {
	o := options{cellWidth: defaultCellWidth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) apply(r *compare.Report) *compare.Report {
	if o.onlyDiff {
		return r.OnlyDifferences()
	}
	return r
}
