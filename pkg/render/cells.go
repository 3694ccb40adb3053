package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/sbomdiff/pkg/spdx"
)

// lineSep separates the parts of a multi-line cell.
const lineSep = "\n"

// Checksums renders checksums as "ALG: value" pairs in input order.
func Checksums(cs []spdx.Checksum) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.Algorithm + ": " + c.Value
	}
	return strings.Join(parts, ", ")
}

// File renders the comparable fields of a file, one per line. Empty fields
// are omitted. Annotations follow, one per line, within what is left of
// the cap.
func File(f spdx.File, max int) string {
	c := NewCapped(max, lineSep)
	c.Add("id: " + f.ID)
	if len(f.Checksums) > 0 {
		c.Add("checksums: " + Checksums(f.Checksums))
	}
	if len(f.FileTypes) > 0 {
		c.Add("types: " + strings.Join(f.FileTypes, ", "))
	}
	if f.LicenseConcluded != "" {
		c.Add("license: " + f.LicenseConcluded)
	}
	if len(f.LicenseInfoInFiles) > 0 {
		c.Add("license info: " + strings.Join(f.LicenseInfoInFiles, ", "))
	}
	if f.Copyright != "" {
		c.Add("copyright: " + f.Copyright)
	}
	if len(f.Contributors) > 0 {
		c.Add("contributors: " + strings.Join(f.Contributors, ", "))
	}
	if f.Notice != "" {
		c.Add("notice: " + f.Notice)
	}
	if f.Comment != "" {
		c.Add("comment: " + f.Comment)
	}
	s := c.String()
	if len(f.Annotations) > 0 {
		head := s + lineSep + annotationsLabel + lineSep
		if rest := capOrDefault(max) - len(head); rest > 0 {
			s = head + Annotations(f.Annotations, rest)
		}
	}
	return Truncate(s, max)
}

const annotationsLabel = "annotations:"

func capOrDefault(max int) int {
	if max <= 0 {
		return DefaultMaxCellLength
	}
	return max
}

// Annotation renders one annotation on a single line.
func Annotation(a spdx.Annotation, max int) string {
	s := fmt.Sprintf("%s by %s (%s): %s", a.Type, a.Annotator, a.Date, a.Comment)
	return Truncate(s, max)
}

// Annotations joins several annotations into one cell, one per line,
// counting the ones that do not fit instead of cutting them.
func Annotations(as []spdx.Annotation, max int) string {
	c := NewCapped(max, lineSep)
	for _, a := range as {
		c.Add(Annotation(a, max))
	}
	return Truncate(c.String(), max)
}

// Relationship renders a document relationship as "TYPE target".
func Relationship(r spdx.DocumentRelationship, max int) string {
	target := r.RelatedID
	if r.Related != nil {
		target = r.Related.DisplayName()
		if r.Related.Version != "" {
			target += " " + r.Related.Version
		}
	}
	s := r.Type + " " + target
	if r.Comment != "" {
		s += " (" + r.Comment + ")"
	}
	return Truncate(s, max)
}

// ExternalRef renders an external document reference.
func ExternalRef(r spdx.ExternalDocumentRef, max int) string {
	s := r.ID + " -> " + r.Namespace
	if r.Checksum != nil {
		s += " (" + r.Checksum.Algorithm + ": " + r.Checksum.Value + ")"
	}
	return Truncate(s, max)
}

// ExtractedLicense renders a license header line followed by its text.
func ExtractedLicense(l spdx.ExtractedLicense, max int) string {
	head := l.ID
	if l.Name != "" {
		head += " (" + l.Name + ")"
	}
	if len(l.SeeAlso) > 0 {
		head += " see " + strings.Join(l.SeeAlso, ", ")
	}
	return Truncate(head+lineSep+l.ExtractedText(), max)
}

// Creator renders a creator string.
func Creator(s string, max int) string {
	return Truncate(s, max)
}
