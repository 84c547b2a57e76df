package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/graphscape/pkg/graph"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodeListModel - Interactive node browsing
// =============================================================================

// nodeRow is a node plus the derived columns shown in the browser.
type nodeRow struct {
	Node    graph.Node
	Degree  int
	InLinks int
}

// NodeListModel is the bubbletea model for interactive node browsing.
type NodeListModel struct {
	Rows     []nodeRow
	Cursor   int
	Selected *graph.Node
	Height   int
	Offset   int
}

// NewNodeListModel builds the browser model from a graph, sorted by degree
// descending so hubs come first.
func NewNodeListModel(d graph.Data) NodeListModel {
	degrees := d.Degrees()
	inbound := make(map[string]int, len(d.Nodes))
	for _, l := range d.Links {
		inbound[l.Target]++
	}

	rows := make([]nodeRow, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		rows = append(rows, nodeRow{Node: n, Degree: degrees[n.ID], InLinks: inbound[n.ID]})
	}
	for i := 1; i < len(rows); i++ {
		for j := i; j > 0 && rows[j].Degree > rows[j-1].Degree; j-- {
			rows[j], rows[j-1] = rows[j-1], rows[j]
		}
	}

	return NodeListModel{
		Rows:   rows,
		Height: 15,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			node := m.Rows[m.Cursor].Node
			m.Selected = &node
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse Nodes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		cluster := r.Node.Cluster
		if cluster == "" {
			cluster = "—"
		}
		tags := "—"
		if len(r.Node.Metadata.Tags) > 0 {
			tags = strings.Join(r.Node.Metadata.Tags, ", ")
		}

		rows = append(rows, []string{
			cursor,
			r.Node.DisplayLabel(),
			string(r.Node.Type),
			fmt.Sprintf("%d", r.Degree),
			cluster,
			tags,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Type", "Degree", "Cluster", "Tags").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col >= 4 {
				base = base.Foreground(colorDim)
			}
			if actualIdx == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}
