package align

import (
	"fmt"
	"iter"
)

// CompareFunc orders two records by their identity key. It returns a
// negative number, zero or a positive number as a sorts before, with or
// after b.
type CompareFunc[T any] func(a, b T) (int, error)

// EqualFunc reports whether two records already known to share an identity
// key are value-equal. ai and bi are the indices of the documents the
// records came from.
type EqualFunc[T any] func(a T, ai int, b T, bi int) (bool, error)

// Slot holds one document's contribution to a row: a record or nothing.
type Slot[T any] struct {
	record  T
	present bool
}

// Present returns a slot holding r.
func Present[T any](r T) Slot[T] {
	return Slot[T]{record: r, present: true}
}

// Absent returns an empty slot.
func Absent[T any]() Slot[T] {
	return Slot[T]{}
}

// Get returns the record and whether the slot holds one.
func (s Slot[T]) Get() (T, bool) {
	return s.record, s.present
}

// IsPresent reports whether the slot holds a record.
func (s Slot[T]) IsPresent() bool {
	return s.present
}

// Record returns the held record, or the zero value for an absent slot.
func (s Slot[T]) Record() T {
	return s.record
}

// String renders the slot for debugging.
func (s Slot[T]) String() string {
	if !s.present {
		return "<absent>"
	}
	return fmt.Sprintf("%v", s.record)
}

// Row is the alignment of one identity key across all documents.
type Row[T any] struct {
	// Values has one slot per document, in document order.
	Values []Slot[T]

	// Equal is true only if every slot is present and all records are
	// value-equal.
	Equal bool
}

// Reference returns the first present record and its document index.
// Every emitted row has at least one present slot.
func (r Row[T]) Reference() (T, int, bool) {
	for d, s := range r.Values {
		if s.present {
			return s.record, d, true
		}
	}
	var zero T
	return zero, -1, false
}

// PresentCount returns the number of documents contributing to the row.
func (r Row[T]) PresentCount() int {
	n := 0
	for _, s := range r.Values {
		if s.present {
			n++
		}
	}
	return n
}

// Stats counts what an aligner has produced so far.
type Stats struct {
	Rows      int // rows emitted
	EqualRows int // rows with Equal set
	Records   int // input records consumed
}

// StepError reports a comparator or equality failure during a step.
type StepError struct {
	Step  int    // zero-based index of the failing step
	Op    string // "compare" or "equal"
	DocA  int    // document of the first record involved
	DocB  int    // document of the second record involved
	Cause error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("align step %d: %s documents %d and %d: %v", e.Step, e.Op, e.DocA, e.DocB, e.Cause)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}

// Aligner performs an N-way merge over sorted sequences. It borrows the
// sequences and never modifies them.
type Aligner[T any] struct {
	seqs    [][]T
	cursors []int
	cmp     CompareFunc[T]
	eq      EqualFunc[T]

	steps int
	stats Stats
	err   error
}

// New creates an aligner over seqs, one sequence per document. Every
// sequence must be sorted ascending by cmp.
func New[T any](seqs [][]T, cmp CompareFunc[T], eq EqualFunc[T]) *Aligner[T] {
	return &Aligner[T]{
		seqs:    seqs,
		cursors: make([]int, len(seqs)),
		cmp:     cmp,
		eq:      eq,
	}
}

// Documents returns the number of documents being aligned.
func (a *Aligner[T]) Documents() int {
	return len(a.seqs)
}

// Done reports whether every sequence has been consumed.
func (a *Aligner[T]) Done() bool {
	for d, seq := range a.seqs {
		if a.cursors[d] < len(seq) {
			return false
		}
	}
	return true
}

// Stats returns counters for the rows emitted so far.
func (a *Aligner[T]) Stats() Stats {
	return a.stats
}

// Err returns the error that stopped the aligner, if any.
func (a *Aligner[T]) Err() error {
	return a.err
}

// Next emits the row for the smallest remaining key. It returns ok=false
// once every sequence is exhausted. After a failure every call returns the
// same error.
func (a *Aligner[T]) Next() (Row[T], bool, error) {
	if a.err != nil {
		return Row[T]{}, false, a.err
	}

	minDoc := -1
	for d, seq := range a.seqs {
		if a.cursors[d] >= len(seq) {
			continue
		}
		if minDoc < 0 {
			minDoc = d
			continue
		}
		c, err := a.cmp(seq[a.cursors[d]], a.current(minDoc))
		if err != nil {
			return a.fail("compare", d, minDoc, err)
		}
		if c < 0 {
			minDoc = d
		}
	}
	if minDoc < 0 {
		return Row[T]{}, false, nil
	}

	least := a.current(minDoc)
	values := make([]Slot[T], len(a.seqs))
	values[minDoc] = Present(least)
	for d, seq := range a.seqs {
		if d == minDoc || a.cursors[d] >= len(seq) {
			continue
		}
		cand := seq[a.cursors[d]]
		c, err := a.cmp(cand, least)
		if err != nil {
			return a.fail("compare", d, minDoc, err)
		}
		if c == 0 {
			values[d] = Present(cand)
		}
	}

	equal, err := a.equal(values)
	if err != nil {
		return Row[T]{}, false, err
	}

	for d, s := range values {
		if s.present {
			a.cursors[d]++
			a.stats.Records++
		}
	}
	a.steps++
	a.stats.Rows++
	if equal {
		a.stats.EqualRows++
	}
	return Row[T]{Values: values, Equal: equal}, true, nil
}

// Rows returns an iterator over the remaining rows. Iteration stops after
// yielding the first error.
func (a *Aligner[T]) Rows() iter.Seq2[Row[T], error] {
	return func(yield func(Row[T], error) bool) {
		for {
			row, ok, err := a.Next()
			if err != nil {
				yield(Row[T]{}, err)
				return
			}
			if !ok || !yield(row, nil) {
				return
			}
		}
	}
}

// All aligns seqs and collects every row.
func All[T any](seqs [][]T, cmp CompareFunc[T], eq EqualFunc[T]) ([]Row[T], error) {
	a := New(seqs, cmp, eq)
	var rows []Row[T]
	for row, err := range a.Rows() {
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (a *Aligner[T]) current(d int) T {
	return a.seqs[d][a.cursors[d]]
}

// equal compares every present record against the first present one.
// Any absent slot makes the row unequal without consulting the predicate.
func (a *Aligner[T]) equal(values []Slot[T]) (bool, error) {
	for _, s := range values {
		if !s.present {
			return false, nil
		}
	}
	ref := values[0].record
	for d := 1; d < len(values); d++ {
		eq, err := a.eq(ref, 0, values[d].record, d)
		if err != nil {
			_, _, ferr := a.fail("equal", 0, d, err)
			return false, ferr
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

func (a *Aligner[T]) fail(op string, docA, docB int, cause error) (Row[T], bool, error) {
	a.err = &StepError{Step: a.steps, Op: op, DocA: docA, DocB: docB, Cause: cause}
	return Row[T]{}, false, a.err
}
