package compare

import (
	"strings"

	"github.com/matzehuels/sbomdiff/pkg/spdx"
)

// compareNil orders nil before non-nil. done is false when both are
// non-nil and the caller must compare further.
func compareNil(aNil, bNil bool) (c int, done bool) {
	switch {
	case aNil && bNil:
		return 0, true
	case aNil:
		return -1, true
	case bNil:
		return 1, true
	}
	return 0, false
}

// CompareFiles orders files by normalized path.
func CompareFiles(a, b *spdx.File) (int, error) {
	if c, done := compareNil(a == nil, b == nil); done {
		return c, nil
	}
	return strings.Compare(NormalizePath(a.Name), NormalizePath(b.Name)), nil
}

// CompareAnnotations orders annotations by annotator, type and comment.
func CompareAnnotations(a, b spdx.Annotation) (int, error) {
	if c := strings.Compare(a.Annotator, b.Annotator); c != 0 {
		return c, nil
	}
	if c := strings.Compare(a.Type, b.Type); c != 0 {
		return c, nil
	}
	return strings.Compare(a.Comment, b.Comment), nil
}

// CompareRelationships orders relationships by type, then by related
// element. A relationship without a related element sorts after one with
// it. Equivalent elements compare equal; otherwise the element names are
// compared, a named element sorting after an unnamed one, and two unnamed
// elements are ordered by identifier. Equivalence failures are returned.
func CompareRelationships(a, b *spdx.DocumentRelationship) (int, error) {
	if c, done := compareNil(a == nil, b == nil); done {
		return c, nil
	}
	if c := strings.Compare(a.Type, b.Type); c != 0 {
		return c, nil
	}

	ra, rb := a.Related, b.Related
	switch {
	case ra == nil && rb == nil:
		return 0, nil
	case ra == nil:
		return 1, nil
	case rb == nil:
		return -1, nil
	}

	eq, err := ra.Equivalent(rb)
	if err != nil {
		return 0, err
	}
	if eq {
		return 0, nil
	}

	switch {
	case ra.Name != "" && rb.Name != "":
		return strings.Compare(ra.Name, rb.Name), nil
	case ra.Name != "":
		return 1, nil
	case rb.Name != "":
		return -1, nil
	}
	return strings.Compare(ra.ID, rb.ID), nil
}

// CompareExternalRefs orders external document references by namespace,
// then checksum value. A reference without a checksum sorts after one
// with it.
func CompareExternalRefs(a, b *spdx.ExternalDocumentRef) (int, error) {
	if c, done := compareNil(a == nil, b == nil); done {
		return c, nil
	}
	if c := strings.Compare(a.Namespace, b.Namespace); c != 0 {
		return c, nil
	}
	switch {
	case a.Checksum == nil && b.Checksum == nil:
		return 0, nil
	case a.Checksum == nil:
		return 1, nil
	case b.Checksum == nil:
		return -1, nil
	}
	return strings.Compare(a.Checksum.Value, b.Checksum.Value), nil
}

// CompareExtractedLicenses orders extracted licenses by their text; a
// license without text sorts first.
func CompareExtractedLicenses(a, b *spdx.ExtractedLicense) (int, error) {
	if c, done := compareNil(a == nil, b == nil); done {
		return c, nil
	}
	if c, done := compareNil(a.Text == nil, b.Text == nil); done {
		return c, nil
	}
	return strings.Compare(*a.Text, *b.Text), nil
}

// CompareCreators orders creator strings.
func CompareCreators(a, b string) (int, error) {
	return strings.Compare(a, b), nil
}
