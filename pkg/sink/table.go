package sink

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/sbomdiff/pkg/compare"
	"github.com/matzehuels/sbomdiff/pkg/render"
)

var (
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
	colorCyan  = lipgloss.Color("36")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// RenderTable renders every section as a terminal table. Rows are colored
// only with WithColor.
func RenderTable(report *compare.Report, opts ...Option) string {
	o := newOptions(opts)
	report = o.apply(report)

	var b strings.Builder
	for i, s := range report.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(o.style(titleStyle).Render(s.Title))
		b.WriteString(o.style(dimStyle).Render(fmt.Sprintf("  %d rows, %d equal, %d different",
			s.Stats.Rows, s.Stats.Equal, s.Stats.Different)))
		b.WriteString("\n")
		if len(s.Rows) == 0 {
			continue
		}
		b.WriteString(sectionTable(report.Documents, s, o).Render())
		b.WriteString("\n")
	}
	for _, f := range report.Failures {
		fmt.Fprintf(&b, "\n%s failed: %s\n", f.Category, f.Error)
	}
	return b.String()
}

func sectionTable(docs []string, s compare.Section, o options) *table.Table {
	headers := append([]string{"Key"}, docs...)
	headers = append(headers, "=")

	rows := make([][]string, len(s.Rows))
	for i, r := range s.Rows {
		row := []string{clip(r.Key, o.cellWidth)}
		for _, c := range r.Cells {
			row = append(row, clip(c, o.cellWidth))
		}
		mark := "✗"
		if r.Equal {
			mark = "✓"
		}
		rows[i] = append(row, mark)
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(o.style(dimStyle)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return o.style(headerStyle)
			}
			if !o.color || row < 0 || row >= len(s.Rows) {
				return lipgloss.NewStyle()
			}
			if s.Rows[row].Equal {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorRed)
		})
}

func (o options) style(s lipgloss.Style) lipgloss.Style {
	if o.color {
		return s
	}
	return lipgloss.NewStyle()
}

// clip caps every line of a cell.
func clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = render.Truncate(l, width)
	}
	return strings.Join(lines, "\n")
}
