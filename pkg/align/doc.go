// Package align merges several independently sorted record sequences into
// a single sequence of alignment rows.
//
// # Overview
//
// Comparing N documents category by category reduces to the same problem
// every time: each document contributes a sequence of records sorted by an
// identity key, and corresponding records must be lined up across all
// documents. This package implements that N-way merge once, parameterized
// by a [CompareFunc] over the identity key and an [EqualFunc] deciding
// whether two records sharing a key carry equal values.
//
// # Rows
//
// Each call to [Aligner.Next] selects the smallest current key across all
// documents and emits a [Row] with one [Slot] per document: the document's
// record when its current candidate compares equal to that key, otherwise
// an absent slot. Every matched cursor advances. A row is Equal only when
// every slot is present and every present record equals the first one:
//
//	a := align.New(seqs, cmp, eq)
//	for row, err := range a.Rows() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(row.Equal)
//	}
//
// Rows are emitted in ascending key order and every input record appears
// in exactly one row, so the number of rows never exceeds the total number
// of records.
//
// # Preconditions
//
// Input sequences must already be sorted by the comparator. The engine does
// not re-sort; use [Sort] to order a sequence and [CheckSorted] to reject
// unsorted input before aligning.
//
// # Failures
//
// Comparators and equality predicates may fail. The first failure stops the
// aligner: [Aligner.Next] returns a [*StepError] wrapping the cause, and
// every later call returns the same error. No partial row is emitted for
// the failing step.
//
// # Concurrency
//
// An [Aligner] is not safe for concurrent use. Separate aligners over the
// same read-only sequences may run in parallel; the engine never mutates
// its inputs.
package align
