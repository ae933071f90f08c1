package layout

import (
	"slices"

	"github.com/matzehuels/boxflow/pkg/box"
)

// Line is a run of children that share a main-axis line in a wrapping
// container.
type Line struct {
	// Indices are the positions of the line's children in the parent.
	Indices []int
	// Main is the main-axis extent including margins and spacing.
	Main float64
	// Cross is the largest effective cross size on the line.
	Cross float64
	// Tallest is the index of the child that set Cross.
	Tallest int
}

// WrapLines groups children greedily into lines no longer than available.
// A child starts a new line when adding it, with its margins and the
// spacing before it, would overflow a non-empty line. A child longer than
// available gets a line of its own.
func WrapLines(children []*box.Node, main box.Axis, gap, available float64, margins func(*box.Node) box.Insets) []Line {
	cross := main.Cross()

	var lines []Line
	cur := Line{Tallest: -1}
	for i, c := range children {
		eff := c.EffectiveSize()
		extent := eff.Along(main) + margins(c).Sum(main)

		need := extent
		if len(cur.Indices) > 0 {
			need += gap
			if cur.Main+need > available+epsilon {
				lines = append(lines, cur)
				cur = Line{Tallest: -1}
				need = extent
			}
		}

		cur.Indices = append(cur.Indices, i)
		cur.Main += need
		if size := eff.Along(cross); cur.Tallest < 0 || size > cur.Cross {
			cur.Cross = size
			cur.Tallest = i
		}
	}
	if len(cur.Indices) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// allocateWrapped lays out n's children in wrapped lines. Lines that do not
// fit on the cross axis make a scrollable container overflow on that axis.
func (p *pass) allocateWrapped(n *box.Node, main box.Axis) {
	st := &n.Styles
	cross := main.Cross()
	pos, size := n.Bounds()
	padding := p.units.insets(st.Padding)
	children := n.Children()

	lines := WrapLines(children, main, st.Spacing.Along(main), size.Along(main)-padding.Sum(main), p.margin)
	if st.FlexWrap == box.WrapReverse {
		slices.Reverse(lines)
	}

	crossGap := st.Spacing.Along(cross)
	extents := make([]float64, len(lines))
	total := padding.Sum(cross)
	for i, ln := range lines {
		extents[i] = ln.Cross + p.margin(children[ln.Tallest]).Sum(cross)
		total += extents[i]
		if i > 0 {
			total += crossGap
		}
	}

	sb := n.Scrollbar()
	var offset float64
	if allocated := size.Along(cross); total > allocated+epsilon && st.Overflow.Scrollable() {
		sb.SetOverflow(cross, allocated/total)
		offset = (total - allocated) * sb.CurrentScrollPosition.Along(cross)
	}

	mainStart := pos.Along(main) + padding.Start(main)
	lineCross := pos.Along(cross) + padding.Start(cross) - offset
	for i, ln := range lines {
		tallest := p.margin(children[ln.Tallest])
		surplus := size.Along(main) - padding.Sum(main) - ln.Main
		cursor, extra := resolveSurplus(st.JustifyContent, len(ln.Indices), mainStart, surplus)

		for k, idx := range ln.Indices {
			c := children[idx]
			m := p.margin(c)
			eff := c.EffectiveSize()
			if k > 0 {
				cursor += st.Spacing.Along(main) + extra
			}

			mainPos := cursor + m.Start(main)
			crossPos := lineCross + alignOffset(st.AlignItems, ln.Cross, tallest, eff.Along(cross), m, cross)

			p.place(c, main, mainPos, crossPos, eff.Along(main), eff.Along(cross))
			cursor = mainPos + eff.Along(main) + m.End(main)
		}
		lineCross += extents[i] + crossGap
	}
}
