package spdx

import (
	"slices"
	"strings"

	apperr "github.com/matzehuels/sbomdiff/pkg/errors"
)

// Equivalent reports whether two annotations carry the same content.
func (a Annotation) Equivalent(o Annotation) bool {
	return a.Annotator == o.Annotator &&
		a.Type == o.Type &&
		a.Comment == o.Comment &&
		a.Date == o.Date
}

// EqualAnnotations reports whether two annotation collections hold the same
// annotations, ignoring order.
func EqualAnnotations(a, b []Annotation) bool {
	if len(a) != len(b) {
		return false
	}
	key := func(x Annotation) string {
		return x.Annotator + "\x00" + x.Type + "\x00" + x.Comment + "\x00" + x.Date
	}
	ka := make([]string, len(a))
	kb := make([]string, len(b))
	for i := range a {
		ka[i] = key(a[i])
		kb[i] = key(b[i])
	}
	slices.Sort(ka)
	slices.Sort(kb)
	return slices.Equal(ka, kb)
}

// EqualStringSets reports whether a and b contain the same strings,
// ignoring order and duplicates.
func EqualStringSets(a, b []string) bool {
	return slices.Equal(normalizeSet(a), normalizeSet(b))
}

func normalizeSet(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)
	return slices.Compact(out)
}

// ChecksumKeys returns the canonical "ALGORITHM:value" form of each
// checksum, sorted and de-duplicated. A checksum missing its algorithm or
// value is malformed.
func ChecksumKeys(cs []Checksum) ([]string, error) {
	keys := make([]string, 0, len(cs))
	for _, c := range cs {
		if c.Algorithm == "" || c.Value == "" {
			return nil, apperr.New(apperr.ErrCodeInvalidDocument, "malformed checksum %q:%q", c.Algorithm, c.Value)
		}
		keys = append(keys, strings.ToUpper(c.Algorithm)+":"+strings.ToLower(c.Value))
	}
	return normalizeSet(keys), nil
}

// EqualChecksums reports whether two checksum collections are the same set.
func EqualChecksums(a, b []Checksum) (bool, error) {
	ka, err := ChecksumKeys(a)
	if err != nil {
		return false, err
	}
	kb, err := ChecksumKeys(b)
	if err != nil {
		return false, err
	}
	return slices.Equal(ka, kb), nil
}
