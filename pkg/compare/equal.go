package compare

import (
	"strings"

	"github.com/matzehuels/sbomdiff/pkg/spdx"
)

// File fields reported by FileDifferences, in reporting order.
const (
	FieldChecksums    = "checksums"
	FieldFileTypes    = "file types"
	FieldLicense      = "license concluded"
	FieldLicenseInfo  = "license info in file"
	FieldCopyright    = "copyright"
	FieldComment      = "comment"
	FieldNotice       = "notice"
	FieldContributors = "contributors"
	FieldAnnotations  = "annotations"
)

// FileDifferences lists the fields in which two files with the same
// normalized path differ. List-valued fields are compared as sets. Malformed
// checksums are returned as an error.
func FileDifferences(a, b *spdx.File) ([]string, error) {
	var diffs []string
	eq, err := spdx.EqualChecksums(a.Checksums, b.Checksums)
	if err != nil {
		return nil, err
	}
	if !eq {
		diffs = append(diffs, FieldChecksums)
	}
	if !spdx.EqualStringSets(a.FileTypes, b.FileTypes) {
		diffs = append(diffs, FieldFileTypes)
	}
	if a.LicenseConcluded != b.LicenseConcluded {
		diffs = append(diffs, FieldLicense)
	}
	if !spdx.EqualStringSets(a.LicenseInfoInFiles, b.LicenseInfoInFiles) {
		diffs = append(diffs, FieldLicenseInfo)
	}
	if a.Copyright != b.Copyright {
		diffs = append(diffs, FieldCopyright)
	}
	if a.Comment != b.Comment {
		diffs = append(diffs, FieldComment)
	}
	if a.Notice != b.Notice {
		diffs = append(diffs, FieldNotice)
	}
	if !spdx.EqualStringSets(a.Contributors, b.Contributors) {
		diffs = append(diffs, FieldContributors)
	}
	if !spdx.EqualAnnotations(a.Annotations, b.Annotations) {
		diffs = append(diffs, FieldAnnotations)
	}
	return diffs, nil
}

// EqualFiles reports whether two files have no FileDifferences.
func EqualFiles(a *spdx.File, _ int, b *spdx.File, _ int) (bool, error) {
	diffs, err := FileDifferences(a, b)
	if err != nil {
		return false, err
	}
	return len(diffs) == 0, nil
}

// EqualAnnotationRecords compares all annotation fields, the date included.
func EqualAnnotationRecords(a spdx.Annotation, _ int, b spdx.Annotation, _ int) (bool, error) {
	return a.Equivalent(b), nil
}

// EqualRelationships compares relationship type, comment and related
// element equivalence.
func EqualRelationships(a *spdx.DocumentRelationship, _ int, b *spdx.DocumentRelationship, _ int) (bool, error) {
	if a.Type != b.Type || a.Comment != b.Comment {
		return false, nil
	}
	switch {
	case a.Related == nil && b.Related == nil:
		return a.RelatedID == b.RelatedID, nil
	case a.Related == nil || b.Related == nil:
		return false, nil
	}
	return a.Related.Equivalent(b.Related)
}

// EqualExternalRefs compares namespace and checksum. Checksum algorithms
// and values are matched case-insensitively; the reference identifier is
// document-local and ignored.
func EqualExternalRefs(a *spdx.ExternalDocumentRef, _ int, b *spdx.ExternalDocumentRef, _ int) (bool, error) {
	if a.Namespace != b.Namespace {
		return false, nil
	}
	switch {
	case a.Checksum == nil && b.Checksum == nil:
		return true, nil
	case a.Checksum == nil || b.Checksum == nil:
		return false, nil
	}
	return spdx.EqualChecksums([]spdx.Checksum{*a.Checksum}, []spdx.Checksum{*b.Checksum})
}

// EqualExtractedLicenses compares text, name, comment and see-also URLs.
// The license identifier is document-local and ignored.
func EqualExtractedLicenses(a *spdx.ExtractedLicense, _ int, b *spdx.ExtractedLicense, _ int) (bool, error) {
	if (a.Text == nil) != (b.Text == nil) {
		return false, nil
	}
	if a.Text != nil && *a.Text != *b.Text {
		return false, nil
	}
	return a.Name == b.Name &&
		a.Comment == b.Comment &&
		spdx.EqualStringSets(a.SeeAlso, b.SeeAlso), nil
}

// EqualCreators compares creator strings ignoring surrounding whitespace.
func EqualCreators(a string, _ int, b string, _ int) (bool, error) {
	return strings.TrimSpace(a) == strings.TrimSpace(b), nil
}
