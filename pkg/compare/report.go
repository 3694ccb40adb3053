package compare

import "time"

// Report is the outcome of comparing several documents.
type Report struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Documents []string  `json:"documents"`
	Sections  []Section `json:"sections"`

	// Failures lists categories skipped under Options.ContinueOnError.
	Failures []Failure `json:"failures,omitempty"`
}

// Section holds the aligned rows of one category.
type Section struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Rows     []Row  `json:"rows"`
	Stats    Stats  `json:"stats"`
}

// Row is one identity key aligned across documents. Cells and Present
// have one entry per document.
type Row struct {
	Key     string   `json:"key"`
	Cells   []string `json:"cells"`
	Present []bool   `json:"present"`
	Equal   bool     `json:"equal"`

	// Differences names the fields that differ from the first present
	// record. Only files report field-level differences.
	Differences []string `json:"differences,omitempty"`
}

// Stats summarizes a section.
type Stats struct {
	Rows      int   `json:"rows"`
	Equal     int   `json:"equal"`
	Different int   `json:"different"`
	Records   []int `json:"records"` // per document
}

// Failure records a category that could not be compared.
type Failure struct {
	Category string `json:"category"`
	Error    string `json:"error"`
}

// Equal reports whether every compared category found no differences and
// none failed.
func (r *Report) Equal() bool {
	if len(r.Failures) > 0 {
		return false
	}
	for _, s := range r.Sections {
		if s.Stats.Different > 0 {
			return false
		}
	}
	return true
}

// Section returns the section for a category name.
func (r *Report) Section(category string) (*Section, bool) {
	for i := range r.Sections {
		if r.Sections[i].Category == category {
			return &r.Sections[i], true
		}
	}
	return nil, false
}

// Differences returns the rows that are not equal.
func (s *Section) Differences() []Row {
	var out []Row
	for _, row := range s.Rows {
		if !row.Equal {
			out = append(out, row)
		}
	}
	return out
}

// OnlyDifferences returns a copy of r whose sections keep only rows that
// are not equal. Stats are left unchanged.
func (r *Report) OnlyDifferences() *Report {
	out := *r
	out.Sections = make([]Section, len(r.Sections))
	for i, s := range r.Sections {
		s.Rows = s.Differences()
		out.Sections[i] = s
	}
	return &out
}
