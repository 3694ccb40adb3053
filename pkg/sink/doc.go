// Package sink writes comparison reports in their output formats.
//
// # Overview
//
// A "sink" transforms a [compare.Report] into bytes ready to be written to a
// file or terminal:
//
//   - XLSX: a workbook with a summary sheet and one sheet per category
//   - JSON: the report itself, re-readable with [ReadJSON]
//   - Text: lipgloss tables for the terminal
//
// # XLSX Output
//
// [RenderXLSX] writes a "Summary" sheet listing the documents and per-category
// counts, followed by one sheet per section. Each section sheet has a key
// column, one column per document, an equality column and a differences
// column. Equal rows are filled green, differing rows red. The header row
// and key column are frozen.
//
//	data, err := sink.RenderXLSX(report, sink.WithOnlyDifferences())
//
// # Formats
//
// [Render] dispatches on a format name; [ValidateFormat] rejects unknown
// names with an INVALID_FORMAT error.
//
// [compare.Report]: github.com/matzehuels/sbomdiff/pkg/compare.Report
package sink
