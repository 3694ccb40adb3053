// Package compare aligns the records of several SPDX documents category by
// category and classifies every aligned group as equal or different.
//
// # Categories
//
// Each category pairs a record extractor with an identity comparator, a
// value-equality predicate and a cell renderer:
//
//   - files: normalized file path ([NormalizePath])
//   - annotations: annotator, annotation type, comment
//   - relationships: relationship type, then the related element
//   - external-refs: namespace, then checksum value
//   - extracted-licenses: extracted license text
//   - creators: creator string
//
// The records of every document are sorted by the comparator and handed to
// the [align] engine, which emits one row per identity key.
//
// # Usage
//
//	report, err := compare.Compare(ctx, []string{"v1", "v2"}, docs, compare.Options{})
//	if err != nil {
//	    return err
//	}
//	for _, s := range report.Sections {
//	    fmt.Println(s.Title, s.Stats.Different)
//	}
//
// # Failures
//
// The document name list must match the documents one to one; a mismatch is
// rejected before any alignment. A comparator or predicate failure aborts
// the whole comparison unless [Options.ContinueOnError] is set, in which
// case the failing category is recorded in [Report.Failures] and skipped.
//
// [align]: github.com/matzehuels/sbomdiff/pkg/align
package compare
