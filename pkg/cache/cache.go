// Package cache stores comparison reports keyed by their inputs.
//
// Backends:
//   - [FileCache]: one file per entry under a directory, for CLI usage
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: never stores anything
//
// Keys are produced by a [Keyer] so callers never build key strings by hand.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the data for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// TTLReport is how long a comparison report stays cached.
const TTLReport = 7 * 24 * time.Hour

// ReportKeyOpts holds the options that change a report's content.
type ReportKeyOpts struct {
	Names         []string `json:"names"`
	Categories    []string `json:"categories,omitempty"`
	MaxCellLength int      `json:"max_cell_length,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ReportKey keys a report by the content hashes of its documents, in
	// document order, and the options that shaped it.
	ReportKey(docHashes []string, opts ReportKeyOpts) string
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ReportKey implements Keyer.
func (DefaultKeyer) ReportKey(docHashes []string, opts ReportKeyOpts) string {
	return hashKey("report", docHashes, opts)
}
