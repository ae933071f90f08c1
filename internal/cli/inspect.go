package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxflow/pkg/box"
	"github.com/matzehuels/boxflow/pkg/document"
	"github.com/matzehuels/boxflow/pkg/layout"
	"github.com/matzehuels/boxflow/pkg/pipeline"
	"github.com/matzehuels/boxflow/pkg/scroll"
)

var (
	inspectSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	inspectScrollStyle   = lipgloss.NewStyle().Foreground(colorOK)
	inspectDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
	inspectHeaderStyle   = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
)

// inspectCommand opens the interactive layout inspector.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		lf      layoutFlags
		restore string
		save    string
	)

	cmd := &cobra.Command{
		Use:   "inspect [document]",
		Short: "Browse a laid-out box tree and scroll its containers",
		Long: `Browse a laid-out box tree in the terminal.

Every node is listed with its computed position and size. Select a scrolling
container and use the arrow keys to scroll it; the container is reflowed
immediately and the table shows the new child positions.

--restore applies the scroll positions of a saved snapshot before the first
layout; --save writes the final snapshot when the inspector exits.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.Options()
			lf.apply(cmd, &opts)
			return c.runInspect(cmd.Context(), args[0], opts, restore, save)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&restore, "restore", "", "snapshot whose scroll positions are applied first")
	cmd.Flags().StringVar(&save, "save", "", "write the final snapshot to this file")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, opts pipeline.Options, restore, save string) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	doc, err := runner.Decode(ctx, input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}
	root, err := pipeline.Tree(doc)
	if err != nil {
		return err
	}

	if restore != "" {
		f, err := os.Open(restore)
		if err != nil {
			return fmt.Errorf("open snapshot: %w", err)
		}
		snap, err := document.ReadSnapshot(f)
		f.Close()
		if err != nil {
			return err
		}
		c.Logger.Debug("restored scroll positions", "nodes", snap.Apply(root))
	}

	engine, release := pipeline.NewEngine(doc, opts)
	defer release()

	m := newInspectModel(root, engine, opts.Viewport(doc), c.Config.Scroll)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("inspector: %w", err)
	}

	if save == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := document.WriteSnapshot(final.(inspectModel).snapshot(), &buf); err != nil {
		return err
	}
	if err := os.WriteFile(save, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	printSuccess("Saved snapshot")
	printFile(save, buf.Len())
	return nil
}

// inspectRow is one node of the flattened tree.
type inspectRow struct {
	node  *box.Node
	depth int
}

// inspectModel is the bubbletea model of the inspector.
type inspectModel struct {
	root     *box.Node
	engine   *layout.Engine
	ctrl     *scroll.Controller
	viewport box.Size

	rows   []inspectRow
	cursor int
	offset int
	height int
	status string
}

func newInspectModel(root *box.Node, engine *layout.Engine, viewport box.Size, cfg ScrollConfig) inspectModel {
	engine.Layout(root, box.Position{}, viewport)

	m := inspectModel{
		root:     root,
		engine:   engine,
		viewport: viewport,
		ctrl: scroll.New(engine, viewport,
			scroll.WithSensitivity(cfg.Sensitivity),
			scroll.WithIncrement(cfg.Increment)),
		height: 15,
	}
	m.rows = flatten(root, 0, nil)
	return m
}

func flatten(n *box.Node, depth int, rows []inspectRow) []inspectRow {
	rows = append(rows, inspectRow{node: n, depth: depth})
	for _, c := range n.Children() {
		rows = flatten(c, depth+1, rows)
	}
	return rows
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "left", "h":
			m.wheel(-1, 0)
		case "right", "l":
			m.wheel(1, 0)
		case "pgup", "K":
			m.wheel(0, -1)
		case "pgdown", "J":
			m.wheel(0, 1)
		case "r":
			m.reset()
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m *inspectModel) move(delta int) {
	m.cursor = min(max(m.cursor+delta, 0), len(m.rows)-1)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	m.status = ""
}

// wheel sends a wheel event at the center of the selected node.
func (m *inspectModel) wheel(dx, dy float64) {
	n := m.selected()
	pos, size := n.Bounds()
	ev := scroll.Event{
		Action: scroll.Wheel,
		X:      pos.X + size.Width/2,
		Y:      pos.Y + size.Height/2,
		DeltaX: dx,
		DeltaY: dy,
	}
	if !m.ctrl.Handle(n, ev) {
		m.status = fmt.Sprintf("%s does not scroll that way", n.ID)
		return
	}
	p := n.Scrollbar().CurrentScrollPosition
	m.status = fmt.Sprintf("%s scrolled to %.2f, %.2f", n.ID, p.X, p.Y)
}

// reset scrolls every container back to the origin and lays the tree out
// again.
func (m *inspectModel) reset() {
	m.root.Walk(func(n *box.Node) bool {
		sb := n.Scrollbar()
		sb.ScrollTo(box.Horizontal, 0)
		sb.ScrollTo(box.Vertical, 0)
		return true
	})
	m.engine.Layout(m.root, box.Position{}, m.viewport)
	m.status = "scroll positions reset"
}

func (m inspectModel) selected() *box.Node {
	return m.rows[m.cursor].node
}

func (m inspectModel) snapshot() *document.Snapshot {
	return document.Capture(m.root, m.viewport, document.WithPadding(func(n *box.Node) box.Insets {
		return m.engine.Padding(n, m.viewport)
	}))
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Layout %gx%g", m.viewport.Width, m.viewport.Height)))
	b.WriteString("\n")
	b.WriteString(inspectDimStyle.Render("↑/↓ select  ←/→ scroll x  pgup/pgdn scroll y  r reset  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.rows))
	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		pos, size := r.node.Bounds()
		rows = append(rows, []string{
			cursor,
			strings.Repeat("  ", r.depth) + r.node.ID,
			r.node.Kind.String(),
			formatNum(pos.X),
			formatNum(pos.Y),
			formatNum(size.Width),
			formatNum(size.Height),
			scrollSummary(r.node.Scrollbar()),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("", "Node", "Kind", "X", "Y", "W", "H", "Scroll").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return inspectHeaderStyle
			}
			idx := m.offset + row
			if idx >= len(m.rows) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.cursor:
				return inspectSelectedStyle
			case col == 7 && m.rows[idx].node.Scrollbar().Overflowing():
				return inspectScrollStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(m.detail())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(StyleWarning.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(inspectDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))

	return b.String()
}

// detail describes the selected node beyond the table columns.
func (m inspectModel) detail() string {
	n := m.selected()
	natural := n.NaturalSize()
	parts := []string{fmt.Sprintf("natural %sx%s", formatNum(natural.Width), formatNum(natural.Height))}
	if n.Kind == box.Text {
		f := n.Font()
		parts = append(parts, fmt.Sprintf("%d lines", len(n.Lines())), fmt.Sprintf("font %gpx", f.Size))
	}
	if n.Styles.Overflow != box.OverflowVisible {
		parts = append(parts, "overflow "+n.Styles.Overflow.String())
	}
	return inspectDimStyle.Render("  " + strings.Join(parts, " · "))
}

func scrollSummary(sb *box.ScrollbarState) string {
	if !sb.Overflowing() {
		return "—"
	}
	var parts []string
	if sb.IsOverflowing.Horizontal {
		parts = append(parts, fmt.Sprintf("x %.2f", sb.CurrentScrollPosition.X))
	}
	if sb.IsOverflowing.Vertical {
		parts = append(parts, fmt.Sprintf("y %.2f", sb.CurrentScrollPosition.Y))
	}
	return strings.Join(parts, " ")
}

func formatNum(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
