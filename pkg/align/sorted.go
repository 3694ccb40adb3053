package align

import (
	"slices"

	apperr "github.com/matzehuels/sbomdiff/pkg/errors"
)

// Sort orders seq in place by cmp, keeping equal keys in their original
// order. The first comparator error is returned and leaves seq in an
// unspecified order.
func Sort[T any](seq []T, cmp CompareFunc[T]) error {
	var firstErr error
	slices.SortStableFunc(seq, func(a, b T) int {
		if firstErr != nil {
			return 0
		}
		c, err := cmp(a, b)
		if err != nil {
			firstErr = err
			return 0
		}
		return c
	})
	return firstErr
}

// CheckSorted verifies that every sequence is ascending under cmp. It
// returns an UNSORTED_INPUT error naming the first inversion found.
func CheckSorted[T any](seqs [][]T, cmp CompareFunc[T]) error {
	for d, seq := range seqs {
		for i := 1; i < len(seq); i++ {
			c, err := cmp(seq[i-1], seq[i])
			if err != nil {
				return apperr.Wrap(apperr.ErrCodeCompareFailed, err, "document %d: comparing records %d and %d", d, i-1, i)
			}
			if c > 0 {
				return apperr.New(apperr.ErrCodeUnsortedInput, "document %d: record %d sorts after record %d", d, i-1, i)
			}
		}
	}
	return nil
}
