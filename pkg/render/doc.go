// Package render formats comparison records into display cells.
//
// Cells end up in spreadsheet cells, JSON strings and terminal tables, so
// every renderer bounds its output. A single long value is cut by
// [Truncate] and marked with [TruncatedMarker]. A cell built from several
// items (a file's annotations, for example) uses [Capped], which never
// splits an item and instead appends "[<n> more...]" for what did not fit.
//
// Renderers are display-only: nothing here takes part in alignment or in
// equality decisions.
package render
