package compare

import (
	"context"
	"slices"
	"strings"

	"github.com/matzehuels/sbomdiff/pkg/align"
	apperr "github.com/matzehuels/sbomdiff/pkg/errors"
	"github.com/matzehuels/sbomdiff/pkg/render"
	"github.com/matzehuels/sbomdiff/pkg/spdx"
)

// Category names, in report order.
const (
	CategoryFiles             = "files"
	CategoryAnnotations       = "annotations"
	CategoryRelationships     = "relationships"
	CategoryExternalRefs      = "external-refs"
	CategoryExtractedLicenses = "extracted-licenses"
	CategoryCreators          = "creators"
)

// Info describes a category.
type Info struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// category is a comparable record kind. It is generic over the record
// type; runner erases the type so categories can share a registry.
type category[T any] struct {
	Info
	records func(*spdx.Document) []T
	key     func(T) string
	cell    func(T, int) string
	compare align.CompareFunc[T]
	equal   align.EqualFunc[T]
	diff    func(a, b T) ([]string, error) // optional
}

type runner interface {
	info() Info
	run(ctx context.Context, docs []*spdx.Document, maxCell int) (Section, error)
}

func (c category[T]) info() Info { return c.Info }

func (c category[T]) run(ctx context.Context, docs []*spdx.Document, maxCell int) (Section, error) {
	seqs := make([][]T, len(docs))
	for d, doc := range docs {
		seq := c.records(doc)
		if err := align.Sort(seq, c.compare); err != nil {
			return Section{}, apperr.Wrap(apperr.ErrCodeCompareFailed, err, "document %d: sorting records", d)
		}
		seqs[d] = seq
	}
	if err := align.CheckSorted(seqs, c.compare); err != nil {
		return Section{}, err
	}

	section := Section{Category: c.Name, Title: c.Title}
	a := align.New(seqs, c.compare, c.equal)
	for row, err := range a.Rows() {
		if err != nil {
			return Section{}, err
		}
		if err := ctx.Err(); err != nil {
			return Section{}, err
		}
		r, err := c.row(row, maxCell)
		if err != nil {
			return Section{}, err
		}
		section.Rows = append(section.Rows, r)
	}

	st := a.Stats()
	section.Stats = Stats{
		Rows:      st.Rows,
		Equal:     st.EqualRows,
		Different: st.Rows - st.EqualRows,
		Records:   make([]int, len(seqs)),
	}
	for d, seq := range seqs {
		section.Stats.Records[d] = len(seq)
	}
	return section, nil
}

func (c category[T]) row(row align.Row[T], maxCell int) (Row, error) {
	ref, refDoc, _ := row.Reference()
	out := Row{
		Key:     render.Truncate(c.key(ref), maxCell),
		Cells:   make([]string, len(row.Values)),
		Present: make([]bool, len(row.Values)),
		Equal:   row.Equal,
	}
	for d, slot := range row.Values {
		rec, ok := slot.Get()
		if !ok {
			continue
		}
		out.Present[d] = true
		out.Cells[d] = c.cell(rec, maxCell)
	}
	if c.diff == nil || row.Equal {
		return out, nil
	}

	seen := make(map[string]bool)
	for d, slot := range row.Values {
		rec, ok := slot.Get()
		if !ok || d == refDoc {
			continue
		}
		fields, err := c.diff(ref, rec)
		if err != nil {
			return Row{}, apperr.Wrap(apperr.ErrCodeCompareFailed, err, "row %q: documents %d and %d", out.Key, refDoc, d)
		}
		for _, f := range fields {
			if !seen[f] {
				seen[f] = true
				out.Differences = append(out.Differences, f)
			}
		}
	}
	return out, nil
}

// pointers returns pointers into s so records are not copied while sorting.
func pointers[T any](s []T) []*T {
	out := make([]*T, len(s))
	for i := range s {
		out[i] = &s[i]
	}
	return out
}

func deref[T any](f func(T, int) string) func(*T, int) string {
	return func(p *T, max int) string { return f(*p, max) }
}

var registry = []runner{
	category[*spdx.File]{
		Info: Info{
			Name:        CategoryFiles,
			Title:       "Files",
			Description: "Files keyed by normalized path; checksums, licenses, copyright and annotations compared",
		},
		records: func(d *spdx.Document) []*spdx.File { return pointers(d.Files) },
		key:     func(f *spdx.File) string { return NormalizePath(f.Name) },
		cell:    deref(render.File),
		compare: CompareFiles,
		equal:   EqualFiles,
		diff:    FileDifferences,
	},
	category[spdx.Annotation]{
		Info: Info{
			Name:        CategoryAnnotations,
			Title:       "Document Annotations",
			Description: "Document-level annotations keyed by annotator, type and comment",
		},
		records: func(d *spdx.Document) []spdx.Annotation { return slices.Clone(d.Annotations) },
		key: func(a spdx.Annotation) string {
			return a.Annotator + " / " + a.Type + " / " + a.Comment
		},
		cell:    render.Annotation,
		compare: CompareAnnotations,
		equal:   EqualAnnotationRecords,
	},
	category[*spdx.DocumentRelationship]{
		Info: Info{
			Name:        CategoryRelationships,
			Title:       "Document Relationships",
			Description: "Relationships from the document itself, keyed by type and related element",
		},
		records: func(d *spdx.Document) []*spdx.DocumentRelationship { return pointers(d.DocumentRelationships()) },
		key: func(r *spdx.DocumentRelationship) string {
			if r.Related != nil {
				return r.Type + " " + r.Related.DisplayName()
			}
			return r.Type + " " + r.RelatedID
		},
		cell:    deref(render.Relationship),
		compare: CompareRelationships,
		equal:   EqualRelationships,
	},
	category[*spdx.ExternalDocumentRef]{
		Info: Info{
			Name:        CategoryExternalRefs,
			Title:       "External Document References",
			Description: "External document references keyed by namespace and checksum",
		},
		records: func(d *spdx.Document) []*spdx.ExternalDocumentRef { return pointers(d.ExternalDocumentRefs) },
		key:     func(r *spdx.ExternalDocumentRef) string { return r.Namespace },
		cell:    deref(render.ExternalRef),
		compare: CompareExternalRefs,
		equal:   EqualExternalRefs,
	},
	category[*spdx.ExtractedLicense]{
		Info: Info{
			Name:        CategoryExtractedLicenses,
			Title:       "Extracted Licenses",
			Description: "Extracted licensing info keyed by license text",
		},
		records: func(d *spdx.Document) []*spdx.ExtractedLicense { return pointers(d.ExtractedLicenses) },
		key:     licenseKey,
		cell:    deref(render.ExtractedLicense),
		compare: CompareExtractedLicenses,
		equal:   EqualExtractedLicenses,
	},
	category[string]{
		Info: Info{
			Name:        CategoryCreators,
			Title:       "Creators",
			Description: "Creation info creators",
		},
		records: func(d *spdx.Document) []string { return slices.Clone(d.CreationInfo.Creators) },
		key:     func(s string) string { return s },
		cell:    render.Creator,
		compare: CompareCreators,
		equal:   EqualCreators,
	},
}

// licenseKey is the first line of the license text, cut to a readable
// length.
func licenseKey(l *spdx.ExtractedLicense) string {
	if l.Text == nil {
		return "[NO_TEXT]"
	}
	line, _, _ := strings.Cut(strings.TrimSpace(*l.Text), "\n")
	return render.Truncate(line, 80)
}

// Categories lists all categories in report order.
func Categories() []Info {
	out := make([]Info, len(registry))
	for i, r := range registry {
		out[i] = r.info()
	}
	return out
}

// Category looks up a category by name.
func Category(name string) (Info, bool) {
	for _, r := range registry {
		if r.info().Name == name {
			return r.info(), true
		}
	}
	return Info{}, false
}

// selectCategories returns the runners for names in report order, or all
// of them when names is empty.
func selectCategories(names []string) ([]runner, error) {
	if len(names) == 0 {
		return registry, nil
	}
	for _, n := range names {
		if _, ok := Category(n); !ok {
			return nil, apperr.New(apperr.ErrCodeInvalidInput, "unknown category %q", n)
		}
	}
	var out []runner
	for _, r := range registry {
		if slices.Contains(names, r.info().Name) {
			out = append(out, r)
		}
	}
	return out, nil
}
