package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/clusterpanel/pkg/frame"
	"github.com/matzehuels/clusterpanel/pkg/graph"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		pf      panelFlags
		plain   bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [data | layout.json]",
		Short: "Browse clusters and node positions",
		Long: `Browse the clusters and node positions of a layout.

The input is either a data file, which is laid out first, or a layout.json
written by 'layout'. Use --plain to print the table without the interactive
view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.loadInspectLayout(cmd, args[0], &pf, noCache)
			if err != nil {
				return err
			}
			if plain || !isTerminal() {
				fmt.Fprintln(stdout, renderInspectTable(inspectRows(l), -1, 0, len(l.Clusters)+l.NodeCount()))
				return nil
			}
			_, err = tea.NewProgram(NewInspectModel(l), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the table once instead of the interactive view")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	pf.register(cmd)

	return cmd
}

func (c *CLI) loadInspectLayout(cmd *cobra.Command, input string, pf *panelFlags, noCache bool) (graph.Layout, error) {
	if strings.HasSuffix(input, ".layout.json") {
		return graph.ReadLayoutFile(input)
	}

	data, err := frame.ReadFile(input)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("load data %s: %w", input, err)
	}
	opts, err := pf.resolve(cmd)
	if err != nil {
		return graph.Layout{}, err
	}
	opts.Logger = c.Logger

	runner, err := c.newRunner(noCache)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	return runner.Layout(cmd.Context(), data, opts)
}

// =============================================================================
// InspectModel - Interactive layout browser
// =============================================================================

// inspectRow is one line of the table: a cluster header or one of its nodes.
type inspectRow struct {
	cluster string
	node    string // empty for cluster rows
	x, y    float64
	targets []string
}

func inspectRows(l graph.Layout) []inspectRow {
	targets := make(map[string][]string)
	for _, e := range l.Edges {
		targets[e.Source] = append(targets[e.Source], e.Target)
	}

	var rows []inspectRow
	for _, cl := range l.Clusters {
		rows = append(rows, inspectRow{cluster: cl.Name, x: cl.X, y: cl.Y})
		for _, n := range cl.Nodes {
			rows = append(rows, inspectRow{
				cluster: cl.Name,
				node:    n.Name,
				x:       n.X,
				y:       n.Y,
				targets: targets[n.Name],
			})
		}
	}
	return rows
}

// InspectModel is the bubbletea model for browsing a layout.
type InspectModel struct {
	Layout graph.Layout
	Cursor int
	Height int
	Offset int

	rows []inspectRow
}

// NewInspectModel creates a new inspect model.
func NewInspectModel(l graph.Layout) InspectModel {
	return InspectModel{
		Layout: l,
		Height: 15,
		rows:   inspectRows(l),
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveTo(m.Cursor - 1)
		case "down", "j":
			m.moveTo(m.Cursor + 1)
		case "home", "g":
			m.moveTo(0)
		case "end", "G":
			m.moveTo(len(m.rows) - 1)
		case "tab", "n":
			m.moveTo(m.nextCluster())
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.moveTo(m.Cursor)
	}
	return m, nil
}

func (m *InspectModel) moveTo(i int) {
	if len(m.rows) == 0 {
		m.Cursor, m.Offset = 0, 0
		return
	}
	m.Cursor = min(max(i, 0), len(m.rows)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// nextCluster returns the index of the next cluster row, wrapping around.
func (m InspectModel) nextCluster() int {
	for step := 1; step <= len(m.rows); step++ {
		i := (m.Cursor + step) % len(m.rows)
		if m.rows[i].node == "" {
			return i
		}
	}
	return m.Cursor
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Cluster Layout"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%s×%s  ·  %s  ·  %s",
		strconv.FormatFloat(m.Layout.Width, 'f', -1, 64),
		strconv.FormatFloat(m.Layout.Height, 'f', -1, 64),
		plural(m.Layout.SeriesCount, "series"),
		plural(len(m.Layout.Clusters), "cluster"))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab next cluster  q quit"))
	b.WriteString("\n\n")

	if m.Layout.NoData || len(m.rows) == 0 {
		b.WriteString(StyleWarning.Render("No data"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(renderInspectTable(m.rows, m.Cursor, m.Offset, m.Height))
	b.WriteString("\n\n")

	row := m.rows[m.Cursor]
	footer := fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))
	if row.node != "" && len(row.targets) > 0 {
		footer += "  " + row.node + " " + iconArrow + " " + strings.Join(row.targets, ", ")
	}
	b.WriteString(listDimStyle.Render(footer))

	return b.String()
}

// renderInspectTable renders rows[offset:offset+height]. cursor < 0 renders
// without a selection marker.
func renderInspectTable(rows []inspectRow, cursor, offset, height int) string {
	end := min(offset+height, len(rows))

	var cells [][]string
	for i := offset; i < end; i++ {
		r := rows[i]
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		name := r.cluster
		kind := "cluster"
		if r.node != "" {
			name = "  " + r.node
			kind = "node"
		}
		cells = append(cells, []string{
			marker,
			name,
			kind,
			strconv.FormatFloat(r.x, 'f', -1, 64),
			strconv.FormatFloat(r.y, 'f', -1, 64),
			strconv.Itoa(len(r.targets)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Kind", "X", "Y", "Out").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			idx := offset + row
			if idx >= len(rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col >= 3 {
				base = base.Foreground(colorGray)
			}
			if rows[idx].node == "" {
				base = base.Foreground(colorCyan)
			}
			if idx == cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	return t.Render()
}

// isTerminal reports whether stdout is an interactive terminal.
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
