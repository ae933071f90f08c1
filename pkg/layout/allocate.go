package layout

import (
	"fmt"

	"github.com/matzehuels/boxflow/pkg/box"
)

// allocate gives n its final box and lays out its subtree, parent first.
func (p *pass) allocate(n *box.Node, pos box.Position, size box.Size) {
	if !n.Estimated() {
		panic(fmt.Sprintf("layout: allocate %q (%s) before estimate", n.ID, n.Kind))
	}
	n.SetBounds(pos, size)

	sb := n.Scrollbar()
	sb.Reset(box.Horizontal)
	sb.Reset(box.Vertical)

	switch {
	case n.IsPassThrough():
		p.allocate(n.Children()[0], pos, size)
	case n.IsTextWrapper():
		p.allocateTextWrapper(n)
	case n.Kind == box.Text:
		padding := p.units.insets(n.Styles.Padding)
		n.SetLines(p.textLines(n, max(0, n.Size().Width-padding.Horizontal())))
	case len(n.Children()) > 0:
		p.allocateChildren(n)
	}
}

// allocateTextWrapper hands the wrapper's content box to its text child.
func (p *pass) allocateTextWrapper(n *box.Node) {
	pos, size := n.Bounds()
	text := n.Children()[0]
	in := p.units.insets(n.Styles.Padding)
	m := p.margin(text)

	p.allocate(text,
		box.Position{X: pos.X + in.Left + m.Left, Y: pos.Y + in.Top + m.Top},
		box.Size{
			Width:  size.Width - in.Horizontal() - m.Horizontal(),
			Height: size.Height - in.Vertical() - m.Vertical(),
		})
}

// allocateChildren runs percentage, deficit and surplus resolution on a
// container and places its children along the main axis.
func (p *pass) allocateChildren(n *box.Node) {
	st := &n.Styles
	main := st.FlexDirection.MainAxis()
	cross := main.Cross()
	pos, size := n.Bounds()
	padding := p.units.insets(st.Padding)
	content := box.Size{
		Width:  max(0, size.Width-padding.Horizontal()),
		Height: max(0, size.Height-padding.Vertical()),
	}

	p.resolvePercentages(n, main, content)

	items := flexItems(n)
	allocated := size.Along(main)
	if st.FlexWrap != box.NoWrap && p.requestedMain(n, main, items) > allocated+epsilon {
		p.allocateWrapped(n, main)
		return
	}

	offset := p.resolveDeficit(n, main, items, allocated)
	children := n.Children()
	surplus := allocated - p.requestedMain(n, main, items)
	cursor, extra := resolveSurplus(st.JustifyContent, len(children), pos.Along(main)+padding.Start(main), surplus)
	cursor -= offset

	// A container that does not wrap is a single line whose cross extent is
	// set by its largest child.
	var lineCross float64
	var tallest box.Insets
	for i, c := range children {
		if s := items[i].Along(cross); i == 0 || s > lineCross {
			lineCross = s
			tallest = p.margin(c)
		}
	}

	clip := st.Overflow != box.OverflowVisible
	crossStart := pos.Along(cross) + padding.Start(cross)
	for i, c := range children {
		m := p.margin(c)
		if i > 0 {
			cursor += st.Spacing.Along(main) + extra
		}

		mainSize := items[i].Along(main)
		if clip {
			mainSize = min(mainSize, content.Along(main))
		}
		crossSize := items[i].Along(cross)
		mainPos := cursor + m.Start(main)
		crossPos := crossStart + alignOffset(st.AlignItems, lineCross, tallest, crossSize, m, cross)

		p.place(c, main, mainPos, crossPos, mainSize, crossSize)
		cursor = mainPos + mainSize + m.End(main)
	}
}

// alignOffset returns a child's cross-axis offset from the start of its
// line. lineCross is the line's cross extent and tallest the margins of the
// child that set it. Stretch and baseline align like flex-start.
func alignOffset(align box.AlignItems, lineCross float64, tallest box.Insets, size float64, m box.Insets, cross box.Axis) float64 {
	switch align {
	case box.AlignFlexEnd:
		return lineCross + tallest.Sum(cross) - size - m.End(cross)
	case box.AlignCenter:
		return (lineCross-size)/2 + tallest.Start(cross)
	default:
		return m.Start(cross)
	}
}

// place converts main/cross coordinates to a box and allocates c into it.
func (p *pass) place(c *box.Node, main box.Axis, mainPos, crossPos, mainSize, crossSize float64) {
	cross := main.Cross()
	pos := box.Position{}.With(main, mainPos).With(cross, crossPos)
	size := box.Size{}.With(main, mainSize).With(cross, crossSize)
	p.allocate(c, pos, size)
}

func (p *pass) margin(c *box.Node) box.Insets {
	return p.units.insets(c.Styles.Margin)
}
