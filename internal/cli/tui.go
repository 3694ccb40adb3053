package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/sbomdiff/pkg/compare"
)

// List styles
var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	listLabelStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

const (
	minListHeight = 5
	maxCellRunes  = 40
	detailLines   = 4
)

// =============================================================================
// ReportModel - Interactive report browser
// =============================================================================

// ReportModel is the bubbletea model for browsing a comparison report.
// It starts on the list of sections; enter opens a section's rows.
type ReportModel struct {
	Report *compare.Report

	// Section is the open section, or -1 on the section list.
	Section  int
	Cursor   int
	Offset   int
	Height   int
	OnlyDiff bool

	// sectionCursor restores the list position when leaving a section.
	sectionCursor int
}

// NewReportModel creates a browser positioned on the section list.
func NewReportModel(r *compare.Report) ReportModel {
	return ReportModel{
		Report:  r,
		Section: -1,
		Height:  15,
	}
}

func (m ReportModel) Init() tea.Cmd {
	return nil
}

// rows returns the rows of the open section, honoring OnlyDiff.
func (m ReportModel) rows() []compare.Row {
	if m.Section < 0 {
		return nil
	}
	s := &m.Report.Sections[m.Section]
	if m.OnlyDiff {
		return s.Differences()
	}
	return s.Rows
}

func (m ReportModel) length() int {
	if m.Section < 0 {
		return len(m.Report.Sections)
	}
	return len(m.rows())
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace", "left", "h":
			if m.Section >= 0 {
				m.Section = -1
				m.Cursor = m.sectionCursor
				m.Offset = 0
				m.scroll()
				return m, nil
			}
			if msg.String() == "esc" {
				return m, tea.Quit
			}
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m.scroll()
			}
		case "down", "j":
			if m.Cursor < m.length()-1 {
				m.Cursor++
				m.scroll()
			}
		case "enter", "right", "l":
			if m.Section < 0 && len(m.Report.Sections) > 0 {
				m.sectionCursor = m.Cursor
				m.Section = m.Cursor
				m.Cursor, m.Offset = 0, 0
			}
		case "d":
			m.OnlyDiff = !m.OnlyDiff
			if m.Section >= 0 {
				m.Cursor, m.Offset = 0, 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8 - detailLines
		if m.Height < minListHeight {
			m.Height = minListHeight
		}
		m.scroll()
	}
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *ReportModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m ReportModel) View() string {
	if m.Section < 0 {
		return m.sectionsView()
	}
	return m.rowsView()
}

func (m ReportModel) sectionsView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Report " + m.Report.ID))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Join(m.Report.Documents, " · ")))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  d differences only  q quit"))
	b.WriteString("\n\n")

	rows := [][]string{}
	for i, s := range m.Report.Sections {
		rows = append(rows, []string{
			cursorMark(i == m.Cursor),
			s.Title,
			fmt.Sprint(s.Stats.Rows),
			fmt.Sprint(s.Stats.Equal),
			fmt.Sprint(s.Stats.Different),
		})
	}

	t := m.table("", "Category", "Rows", "Equal", "Different").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listLabelStyle
			}
			base := lipgloss.NewStyle()
			if row == m.Cursor {
				base = base.Bold(true)
			}
			if col == 4 && m.Report.Sections[row].Stats.Different > 0 {
				return base.Foreground(colorRed)
			}
			return base
		})
	b.WriteString(t.Render())
	b.WriteString("\n")

	for _, f := range m.Report.Failures {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("%s %s failed: %s", iconWarning, f.Category, f.Error)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m ReportModel) rowsView() string {
	var b strings.Builder
	s := m.Report.Sections[m.Section]
	rows := m.rows()

	title := s.Title
	if m.OnlyDiff {
		title += " (differences)"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ← back  d differences only  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(rows) {
		end = len(rows)
	}

	cells := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := rows[i]
		line := []string{cursorMark(i == m.Cursor), clipCell(r.Key)}
		for j, c := range r.Cells {
			if !r.Present[j] {
				c = "—"
			}
			line = append(line, clipCell(c))
		}
		line = append(line, verdict(r.Equal))
		cells = append(cells, line)
	}

	headers := append([]string{"", "Key"}, m.Report.Documents...)
	headers = append(headers, "=")
	t := m.table(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listLabelStyle
			}
			idx := m.Offset + row
			if idx >= len(rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if idx == m.Cursor {
				base = base.Bold(true)
			}
			if rows[idx].Equal {
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorRed)
		})
	b.WriteString(t.Render())
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(listDimStyle.Render("  no rows"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(rows))))
	b.WriteString("\n")
	if d := rows[m.Cursor].Differences; len(d) > 0 {
		b.WriteString(listLabelStyle.Render("  differs in: "))
		b.WriteString(StyleDifferent.Render(strings.Join(d, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}

func (m ReportModel) table(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...)
}

// =============================================================================
// Helpers
// =============================================================================

func cursorMark(current bool) string {
	if current {
		return "▸"
	}
	return " "
}

func verdict(equal bool) string {
	if equal {
		return iconSuccess
	}
	return iconError
}

// clipCell reduces a cell to its first line and at most maxCellRunes runes.
func clipCell(s string) string {
	more := false
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s, more = s[:i], true
	}
	r := []rune(s)
	if len(r) > maxCellRunes {
		r, more = r[:maxCellRunes-1], true
	}
	if more {
		return string(r) + "…"
	}
	return string(r)
}
