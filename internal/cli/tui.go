package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/visualencer/pkg/compiler"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	roleFilterStyle = lipgloss.NewStyle().Foreground(colorYellow)
)

// roleFilters is the cycle order of the tab key.
var roleFilters = []compiler.Role{"", compiler.RoleRoot, compiler.RoleChild, compiler.RoleUtility}

// =============================================================================
// CatalogModel - Interactive node type browser
// =============================================================================

// CatalogModel is the bubbletea model for browsing node types. The list
// shows one row per type; the pane below it shows the fields and default
// configuration of the row under the cursor.
type CatalogModel struct {
	All      []compiler.Descriptor
	Visible  []compiler.Descriptor
	Role     compiler.Role
	Cursor   int
	Offset   int
	Height   int
	Selected *compiler.Descriptor
}

// NewCatalogModel creates a browser over ds.
func NewCatalogModel(ds []compiler.Descriptor) CatalogModel {
	m := CatalogModel{All: ds, Height: 12}
	m.applyFilter()
	return m
}

func (m *CatalogModel) applyFilter() {
	m.Visible = nil
	for _, d := range m.All {
		if m.Role == "" || d.Role == m.Role {
			m.Visible = append(m.Visible, d)
		}
	}
	m.Cursor, m.Offset = 0, 0
}

func (m CatalogModel) Init() tea.Cmd {
	return nil
}

func (m CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab":
			for i, r := range roleFilters {
				if r == m.Role {
					m.Role = roleFilters[(i+1)%len(roleFilters)]
					break
				}
			}
			m.applyFilter()
		case "enter":
			if len(m.Visible) == 0 {
				return m, nil
			}
			d := m.Visible[m.Cursor]
			m.Selected = &d
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		// Leave room for the header, the table borders and the detail pane.
		m.Height = msg.Height - 18
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m CatalogModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Node Types"))
	filter := "all"
	if m.Role != "" {
		filter = string(m.Role)
	}
	b.WriteString("  " + roleFilterStyle.Render(filter))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab filter role  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if len(m.Visible) == 0 {
		b.WriteString(listDimStyle.Render("  no node types"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Visible))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		d := m.Visible[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, d.Type, string(d.Role), familyColumn(d)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Type", "Role", "Family").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 2 || col == 3 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Visible))))
	b.WriteString("\n")
	b.WriteString(detailBoxStyle.Render(detailView(m.Visible[m.Cursor])))

	return b.String()
}

// detailView summarizes one descriptor for the detail pane.
func detailView(d compiler.Descriptor) string {
	var lines []string
	lines = append(lines, StyleHighlight.Render(d.Label)+" "+StyleDim.Render(d.Category))
	if len(d.Fields) == 0 {
		lines = append(lines, StyleDim.Render("no fields"))
		return strings.Join(lines, "\n")
	}

	defaults := d.DefaultConfig()
	for _, f := range d.Fields {
		val := StyleDim.Render("—")
		if v, ok := defaults[f.Name]; ok {
			val = StyleValue.Render(fmt.Sprintf("%v", v))
		}
		lines = append(lines, fmt.Sprintf("%-18s %s", f.Name, val))
	}
	return strings.Join(lines, "\n")
}
