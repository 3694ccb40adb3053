package sink

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/sbomdiff/pkg/compare"
	apperr "github.com/matzehuels/sbomdiff/pkg/errors"
)

// RenderJSON writes the report as pretty-printed JSON.
func RenderJSON(report *compare.Report, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	return json.MarshalIndent(o.apply(report), "", "  ")
}

// ReadJSON decodes a report written by RenderJSON. Rows whose cell count
// does not match the document list are rejected.
func ReadJSON(r io.Reader) (*compare.Report, error) {
	var report compare.Report
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "decode report")
	}
	n := len(report.Documents)
	for _, s := range report.Sections {
		for i, row := range s.Rows {
			if len(row.Cells) != n || len(row.Present) != n {
				return nil, apperr.New(apperr.ErrCodeInvalidInput,
					"section %s row %d: expected %d cells, got %d", s.Category, i, n, len(row.Cells))
			}
		}
	}
	return &report, nil
}
