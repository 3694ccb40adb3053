package spdx

import (
	"path"
	"strings"

	apperr "github.com/matzehuels/sbomdiff/pkg/errors"
)

// ElementKind classifies what an SPDX identifier points at.
type ElementKind string

const (
	KindDocument ElementKind = "document"
	KindPackage  ElementKind = "package"
	KindFile     ElementKind = "file"
	KindExternal ElementKind = "external" // DocumentRef-x:SPDXRef-y
)

// Element is a resolved relationship endpoint.
type Element struct {
	Kind      ElementKind
	ID        string
	Name      string
	Version   string
	Checksums []Checksum
}

// DisplayName returns the element name, falling back to its identifier.
func (e *Element) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// Equivalent reports whether e and o describe the same thing in two
// different documents. Identifiers are document-local and not compared,
// except for external references which are only known by identifier.
// An element without a kind is malformed and yields an INVALID_DOCUMENT
// error.
func (e *Element) Equivalent(o *Element) (bool, error) {
	if e == nil || o == nil {
		return e == nil && o == nil, nil
	}
	if e.Kind == "" {
		return false, apperr.New(apperr.ErrCodeInvalidDocument, "element %q has no kind", e.ID)
	}
	if o.Kind == "" {
		return false, apperr.New(apperr.ErrCodeInvalidDocument, "element %q has no kind", o.ID)
	}
	if e.Kind != o.Kind {
		return false, nil
	}

	switch e.Kind {
	case KindDocument:
		return e.Name == o.Name, nil
	case KindPackage:
		if e.Name != o.Name || e.Version != o.Version {
			return false, nil
		}
		return EqualChecksums(e.Checksums, o.Checksums)
	case KindFile:
		if baseName(e.Name) != baseName(o.Name) {
			return false, nil
		}
		return EqualChecksums(e.Checksums, o.Checksums)
	case KindExternal:
		return e.ID == o.ID, nil
	default:
		return false, apperr.New(apperr.ErrCodeInvalidDocument, "element %q has unknown kind %q", e.ID, e.Kind)
	}
}

func baseName(name string) string {
	return path.Base(strings.ReplaceAll(name, `\`, "/"))
}

// elementIndex maps SPDX identifiers to resolved elements.
type elementIndex map[string]*Element

func (d *Document) index() elementIndex {
	idx := make(elementIndex, 1+len(d.Packages)+len(d.Files))
	idx[d.ID] = &Element{Kind: KindDocument, ID: d.ID, Name: d.Name}
	for _, p := range d.Packages {
		idx[p.ID] = &Element{Kind: KindPackage, ID: p.ID, Name: p.Name, Version: p.Version, Checksums: p.Checksums}
	}
	for _, f := range d.Files {
		idx[f.ID] = &Element{Kind: KindFile, ID: f.ID, Name: f.FileName(), Checksums: f.Checksums}
	}
	return idx
}

func (idx elementIndex) resolve(id string) (*Element, bool) {
	switch {
	case id == "" || id == None || id == NoAssertion:
		return nil, false
	case strings.HasPrefix(id, "DocumentRef-") && strings.Contains(id, ":"):
		return &Element{Kind: KindExternal, ID: id}, true
	}
	e, ok := idx[id]
	return e, ok
}

// Element resolves an SPDX identifier within d. NONE, NOASSERTION and
// unknown identifiers resolve to nothing.
func (d *Document) Element(id string) (*Element, bool) {
	return d.index().resolve(id)
}

// DocumentRelationship is a relationship whose source is the document
// itself, with its target resolved. Related is nil when the target is
// NONE, NOASSERTION or unknown.
type DocumentRelationship struct {
	Type      string
	Related   *Element
	RelatedID string
	Comment   string
}

// DocumentRelationships returns the relationships whose source element is
// the document, in document order.
func (d *Document) DocumentRelationships() []DocumentRelationship {
	idx := d.index()
	var out []DocumentRelationship
	for _, r := range d.Relationships {
		if r.Element != d.ID {
			continue
		}
		related, _ := idx.resolve(r.Related)
		out = append(out, DocumentRelationship{
			Type:      r.Type,
			Related:   related,
			RelatedID: r.Related,
			Comment:   r.Comment,
		})
	}
	return out
}
