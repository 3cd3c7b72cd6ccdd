package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/graphslick/pkg/groupman"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// GroupBrowserModel - Interactive partition browser
// =============================================================================

// browseRow is one visible line: a super group heading, or one of its node
// groups when the heading is expanded.
type browseRow struct {
	super groupman.SuperRef
	group groupman.GroupRef // zero for headings
}

// GroupBrowserModel is the bubbletea model for browsing a partition.
type GroupBrowserModel struct {
	Manager  *groupman.Manager
	Forest   groupman.Forest
	Cursor   int
	Height   int
	Offset   int
	Selected groupman.GroupRef

	expanded map[groupman.SuperRef]bool
	rows     []browseRow
}

// NewGroupBrowserModel creates a browser over the path forest of m.
func NewGroupBrowserModel(m *groupman.Manager) GroupBrowserModel {
	model := GroupBrowserModel{
		Manager:  m,
		Forest:   groupman.PathForest,
		Height:   15,
		expanded: make(map[groupman.SuperRef]bool),
	}
	model.rebuild()
	return model
}

func (m *GroupBrowserModel) rebuild() {
	m.rows = nil
	for _, sg := range m.Manager.SuperGroups(m.Forest) {
		m.rows = append(m.rows, browseRow{super: sg})
		if !m.expanded[sg] {
			continue
		}
		for _, g := range m.Manager.Groups(sg) {
			m.rows = append(m.rows, browseRow{super: sg, group: g})
		}
	}
	if m.Cursor >= len(m.rows) {
		m.Cursor = max(len(m.rows)-1, 0)
	}
}

func (m GroupBrowserModel) Init() tea.Cmd {
	return nil
}

func (m GroupBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab":
			if m.Forest == groupman.PathForest {
				m.Forest = groupman.SimilarForest
			} else {
				m.Forest = groupman.PathForest
			}
			m.Cursor, m.Offset = 0, 0
			m.rebuild()
		case "enter", " ":
			if len(m.rows) == 0 {
				return m, nil
			}
			row := m.rows[m.Cursor]
			if row.group.IsZero() {
				m.expanded[row.super] = !m.expanded[row.super]
				m.rebuild()
				return m, nil
			}
			m.Selected = row.group
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m GroupBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse " + m.Forest.String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand/select  tab forest  q quit"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(listDimStyle.Render("  (empty)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.rows))
	for i := m.Offset; i < end; i++ {
		row := m.rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		var line string
		if row.group.IsZero() {
			marker := "+"
			if m.expanded[row.super] {
				marker = "-"
			}
			size := len(m.Manager.Groups(row.super))
			line = fmt.Sprintf("%s%s %s %s", cursor, marker, superLabel(m.Manager, row.super),
				listDimStyle.Render(fmt.Sprintf("%d groups", size)))
		} else {
			line = fmt.Sprintf("%s    %s", cursor, groupLabel(m.Manager, row.group, false))
		}

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if row := m.rows[m.Cursor]; !row.group.IsZero() {
		b.WriteString(listDimStyle.Render("  " + groupLabel(m.Manager, row.group, true)))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))
	return b.String()
}
