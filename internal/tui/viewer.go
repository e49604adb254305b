// internal/tui/viewer.go

// Package tui provides the interactive percentile table behind 'benchpct view'.
package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/benchpct/internal/group"
	"github.com/mwiater/benchpct/internal/report"
	"github.com/mwiater/benchpct/internal/stats"
)

// viewState represents the current screen of the viewer.
type viewState int

const (
	viewTable  viewState = iota // viewTable lists the cases of the selected group.
	viewDetail                  // viewDetail shows the text report block of one case.
)

// allGroups is the filter value showing every group.
const allGroups = -1

var (
	baseStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Margin(1, 2)
)

// model is the Bubble Tea model of the viewer.
type model struct {
	title  string
	rows   []stats.Row
	groups []group.Group
	filter int // index into groups, or allGroups

	visible []stats.Row
	table   table.Model
	state   viewState

	width, height int
}

// initialModel builds the viewer for rows, grouped by group.Classify.
func initialModel(title string, rows []stats.Row) *model {
	m := &model{
		title:  title,
		rows:   rows,
		groups: group.Classify(rows),
		filter: allGroups,
	}

	cols := columns(rows)
	width := 0
	for _, c := range cols {
		width += c.Width + 2
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithWidth(width),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	m.table = t

	m.applyFilter()
	return m
}

func columns(rows []stats.Row) []table.Column {
	groupWidth, nameWidth := len("Group"), len(stats.CaseKey)
	for _, r := range rows {
		groupWidth = max(groupWidth, len(group.Key(r.Case)))
		nameWidth = max(nameWidth, len(r.Case))
	}
	cols := []table.Column{
		{Title: "Group", Width: groupWidth},
		{Title: stats.CaseKey, Width: nameWidth},
	}
	if len(rows) == 0 {
		return cols
	}
	for i := range rows[0].Percentiles {
		label := rows[0].Label(i)
		cols = append(cols, table.Column{Title: label, Width: max(len(label), 12)})
	}
	return cols
}

// applyFilter refreshes the table rows for the current group filter.
func (m *model) applyFilter() {
	if m.filter == allGroups {
		m.visible = m.rows
	} else {
		m.visible = m.groups[m.filter].Rows
	}

	trs := make([]table.Row, len(m.visible))
	for i, r := range m.visible {
		tr := table.Row{group.Key(r.Case), r.Case}
		for _, v := range r.Values {
			tr = append(tr, fmt.Sprintf("%.3f", v))
		}
		trs[i] = tr
	}
	m.table.SetRows(trs)
	m.table.SetCursor(0)
}

// cycle moves the group filter by step through all, groups[0], groups[1], ...
func (m *model) cycle(step int) {
	n := len(m.groups) + 1
	pos := (m.filter + 1 + step + n) % n
	m.filter = pos - 1
	m.applyFilter()
}

func (m *model) filterName() string {
	if m.filter == allGroups {
		return "all"
	}
	return m.groups[m.filter].Key
}

// selected returns the row under the cursor.
func (m *model) selected() (stats.Row, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return stats.Row{}, false
	}
	return m.visible[i], true
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and window resizes.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.state == viewDetail {
				m.state = viewTable
				return m, nil
			}
			return m, tea.Quit
		case "tab":
			if m.state == viewTable {
				m.cycle(1)
			}
			return m, nil
		case "shift+tab":
			if m.state == viewTable {
				m.cycle(-1)
			}
			return m, nil
		case "enter":
			if m.state == viewTable {
				if _, ok := m.selected(); ok {
					m.state = viewDetail
				}
			} else {
				m.state = viewTable
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		headerHeight := 2
		footerHeight := 4
		m.table.SetHeight(max(msg.Height-headerHeight-footerHeight, 3))
	}

	if m.state != viewTable {
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the current screen.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var b strings.Builder
	status := lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render(m.title),
		headerStyle.MarginLeft(1).Render("Group: "+m.filterName()),
	)

	switch m.state {
	case viewDetail:
		b.WriteString(status + helpStyle.Render(" (enter/esc to go back, q to quit)") + "\n")
		r, _ := m.selected()
		var buf bytes.Buffer
		if err := report.Encode(&buf, report.FormatText, []stats.Row{r}, r.Percentiles); err != nil {
			b.WriteString(err.Error())
			break
		}
		b.WriteString(detailStyle.Render(strings.TrimRight(buf.String(), "\n")))

	default:
		b.WriteString(status + helpStyle.Render(" (tab to cycle groups, enter for details, q to quit)") + "\n")
		if len(m.visible) == 0 {
			b.WriteString("\n  No benchmark cases.\n")
			break
		}
		b.WriteString(baseStyle.Render(m.table.View()) + "\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("  %d of %d cases, %d groups", len(m.visible), len(m.rows), len(m.groups))))
	}
	return b.String()
}

// Run starts the viewer over rows in the alternate screen and blocks until
// the user quits.
func Run(title string, rows []stats.Row) error {
	p := tea.NewProgram(initialModel(title, rows), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
