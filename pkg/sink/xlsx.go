package sink

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/sbomdiff/pkg/compare"
	apperr "github.com/matzehuels/sbomdiff/pkg/errors"
)

// SummarySheet is the name of the first workbook sheet.
const SummarySheet = "Summary"

const (
	fillEqual     = "#C6EFCE"
	fillDifferent = "#FFC7CE"
	fillHeader    = "#D9D9D9"
)

type xlsxStyles struct {
	header, equal, different int
}

// RenderXLSX writes the report as an Excel workbook.
func RenderXLSX(report *compare.Report, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	report = o.apply(report)

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newXLSXStyles(f)
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}
	if err := writeSummary(f, report, styles); err != nil {
		return nil, err
	}

	for _, s := range report.Sections {
		name, err := sheetName(s)
		if err != nil {
			return nil, err
		}
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
		if err := writeSection(f, name, report.Documents, s, styles); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	mk := func(fill string, bold bool) (int, error) {
		return f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: bold},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
			Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		})
	}
	var s xlsxStyles
	var err error
	if s.header, err = mk(fillHeader, true); err != nil {
		return s, fmt.Errorf("header style: %w", err)
	}
	if s.equal, err = mk(fillEqual, false); err != nil {
		return s, fmt.Errorf("equal style: %w", err)
	}
	if s.different, err = mk(fillDifferent, false); err != nil {
		return s, fmt.Errorf("different style: %w", err)
	}
	return s, nil
}

// sheetName derives a valid sheet name from the section title.
func sheetName(s compare.Section) (string, error) {
	name := s.Title
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	if err := apperr.ValidateSheetName(name); err != nil {
		return "", err
	}
	return name, nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func writeRow(f *excelize.File, sheet string, row int, values []any, style int) error {
	if err := f.SetSheetRow(sheet, cell(1, row), &values); err != nil {
		return err
	}
	if style == 0 {
		return nil
	}
	return f.SetCellStyle(sheet, cell(1, row), cell(len(values), row), style)
}

func writeSummary(f *excelize.File, r *compare.Report, st xlsxStyles) error {
	row := 1
	meta := [][]any{
		{"Report", r.ID},
		{"Created", r.CreatedAt.Format("2006-01-02 15:04:05 MST")},
	}
	for i, d := range r.Documents {
		meta = append(meta, []any{fmt.Sprintf("Document %d", i+1), d})
	}
	for _, m := range meta {
		if err := writeRow(f, SummarySheet, row, m, 0); err != nil {
			return err
		}
		row++
	}
	row++

	header := []any{"Category", "Rows", "Equal", "Different"}
	for _, d := range r.Documents {
		header = append(header, d+" records")
	}
	if err := writeRow(f, SummarySheet, row, header, st.header); err != nil {
		return err
	}
	row++

	for _, s := range r.Sections {
		values := []any{s.Title, s.Stats.Rows, s.Stats.Equal, s.Stats.Different}
		for _, n := range s.Stats.Records {
			values = append(values, n)
		}
		style := st.equal
		if s.Stats.Different > 0 {
			style = st.different
		}
		if err := writeRow(f, SummarySheet, row, values, style); err != nil {
			return err
		}
		row++
	}

	for _, fail := range r.Failures {
		if err := writeRow(f, SummarySheet, row, []any{fail.Category, "failed: " + fail.Error}, st.different); err != nil {
			return err
		}
		row++
	}
	return f.SetColWidth(SummarySheet, "A", "B", 32)
}

func writeSection(f *excelize.File, sheet string, docs []string, s compare.Section, st xlsxStyles) error {
	header := []any{"Key"}
	for _, d := range docs {
		header = append(header, d)
	}
	header = append(header, "Equal", "Differences")
	if err := writeRow(f, sheet, 1, header, st.header); err != nil {
		return err
	}

	for i, r := range s.Rows {
		values := []any{r.Key}
		for _, c := range r.Cells {
			values = append(values, c)
		}
		eq := "no"
		style := st.different
		if r.Equal {
			eq, style = "yes", st.equal
		}
		values = append(values, eq, strings.Join(r.Differences, ", "))
		if err := writeRow(f, sheet, i+2, values, style); err != nil {
			return err
		}
	}

	last, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetColWidth(sheet, "A", last, 40); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}
