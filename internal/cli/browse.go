package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depflow/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	layerHeaderStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

var detailBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorDim).
	Padding(0, 1).
	Width(48)

// browseCommand creates the interactive layer browser.
func (c *CLI) browseCommand() *cobra.Command {
	var directories bool

	cmd := &cobra.Command{
		Use:   "browse [graph.json]",
		Short: "Browse the layers of a saved graph interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}
			m := NewBrowseModel(g, directories)
			if len(m.rows) == 0 {
				printInfo("Graph has no positioned nodes, run '%s layout' first", appName)
				return nil
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&directories, "directories", false, "include directory nodes")
	return cmd
}

// =============================================================================
// BrowseModel - Interactive layer browser
// =============================================================================

type browseRow struct {
	layer int
	node  graph.Node
}

// BrowseModel is the bubbletea model listing nodes layer by layer, with the
// imports and importers of the selected node.
type BrowseModel struct {
	rows    []browseRow
	imports map[string][]graph.Link // source -> outgoing links
	users   map[string][]graph.Link // target -> incoming links
	Cursor  int
	Offset  int
	Height  int
}

// NewBrowseModel creates a browser over the positioned nodes of g.
func NewBrowseModel(g graph.Graph, directories bool) BrowseModel {
	m := BrowseModel{
		imports: make(map[string][]graph.Link),
		users:   make(map[string][]graph.Link),
		Height:  20,
	}
	for layer, nodes := range g.Layers() {
		for _, n := range nodes {
			if n.IsDir() && !directories {
				continue
			}
			m.rows = append(m.rows, browseRow{layer: layer, node: n})
		}
	}
	for _, l := range g.Links {
		m.imports[l.Source] = append(m.imports[l.Source], l)
		m.users[l.Target] = append(m.users[l.Target], l)
	}
	return m
}

// Selected returns the node under the cursor.
func (m BrowseModel) Selected() (graph.Node, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.rows) {
		return graph.Node{}, false
	}
	return m.rows[m.Cursor].node, true
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveTo(m.Cursor - 1)
		case "down", "j":
			m.moveTo(m.Cursor + 1)
		case "tab", "right", "l":
			m.moveTo(m.layerStart(+1))
		case "shift+tab", "left", "h":
			m.moveTo(m.layerStart(-1))
		case "home", "g":
			m.moveTo(0)
		case "end", "G":
			m.moveTo(len(m.rows) - 1)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m.moveTo(m.Cursor)
	}
	return m, nil
}

// moveTo places the cursor at i, clamped, and scrolls it into view.
func (m *BrowseModel) moveTo(i int) {
	m.Cursor = max(0, min(i, len(m.rows)-1))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// layerStart returns the first row of the layer dir steps away from the
// cursor's layer, or the cursor itself when there is none.
func (m BrowseModel) layerStart(dir int) int {
	if len(m.rows) == 0 {
		return 0
	}
	want := m.rows[m.Cursor].layer + dir
	for i, r := range m.rows {
		if r.layer == want {
			return i
		}
	}
	return m.Cursor
}

func (m BrowseModel) View() string {
	var list strings.Builder

	list.WriteString(StyleTitle.Render("Layers"))
	list.WriteString("\n")
	list.WriteString(listDimStyle.Render("↑/↓ node  ←/→ layer  q quit"))
	list.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	for i := m.Offset; i < end; i++ {
		r := m.rows[i]
		if i == m.Offset || m.rows[i-1].layer != r.layer {
			list.WriteString(layerHeaderStyle.Render(fmt.Sprintf("layer %d", r.layer)))
			list.WriteString("\n")
		}

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		marker := " "
		if r.node.Cyclic {
			marker = StyleError.Render("↻")
		}
		list.WriteString(cursor + marker + " " + style.Render(r.node.ID))
		list.WriteString("\n")
	}
	list.WriteString("\n")
	list.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))

	detail := m.detailView()
	if detail == "" {
		return list.String()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", detail)
}

// detailView renders the selected node's facts and links.
func (m BrowseModel) detailView() string {
	n, ok := m.Selected()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(n.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(n.Path))
	b.WriteString("\n\n")

	hex := lipgloss.NewStyle().Foreground(colorGray)
	if color, ok := hexColors[n.HexLayer]; ok {
		hex = hex.Foreground(color)
	}
	b.WriteString("hex layer  " + hex.Render(n.HexLayer) + "\n")
	if n.LineCount != nil {
		b.WriteString(fmt.Sprintf("lines      %s\n", StyleHighlight.Render(fmt.Sprint(*n.LineCount))))
	}
	if n.Exports != nil {
		b.WriteString(fmt.Sprintf("exports    %s\n", StyleHighlight.Render(fmt.Sprint(*n.Exports))))
	}
	if n.Cyclic {
		b.WriteString(StyleError.Render("on an import cycle") + "\n")
	}

	writeLinks := func(title string, links []graph.Link, other func(graph.Link) string) {
		b.WriteString("\n" + layerHeaderStyle.Render(fmt.Sprintf("%s (%d)", title, len(links))) + "\n")
		for _, l := range links {
			line := "  " + other(l)
			if l.Violation != "" {
				line += " " + StyleError.Render("✗ "+l.Violation)
			}
			b.WriteString(line + "\n")
		}
	}
	writeLinks("imports", m.imports[n.ID], func(l graph.Link) string { return l.Target })
	writeLinks("imported by", m.users[n.ID], func(l graph.Link) string { return l.Source })

	return detailBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
