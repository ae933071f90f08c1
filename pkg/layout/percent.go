package layout

import "github.com/matzehuels/boxflow/pkg/box"

// resolvePercentages replaces pending percentages on the direct children of
// n with pixels. Main-axis claims share the content box: when they add up to
// more than 100% every claim is scaled by 100/sum. Cross-axis claims do not
// compete and resolve independently.
func (p *pass) resolvePercentages(n *box.Node, main box.Axis, content box.Size) {
	children := n.Children()
	cross := main.Cross()

	var sum float64
	for _, c := range children {
		if d := sizingOf(c).Along(main); d != nil && d.IsPercent() {
			sum += d.Value
		}
	}

	if sum > 0 {
		scale := min(1, 100/sum)
		basis := content.Along(main)
		for _, c := range children {
			d := sizingOf(c).Along(main)
			if d == nil || !d.IsPercent() {
				continue
			}
			px := d.Value * scale / 100 * basis
			px = p.units.clampAxis(sizingOf(c), main, px, basis)
			c.SetRequestedSize(c.RequestedSize().With(main, box.Px(px).Ptr()))
		}
	}

	basis := content.Along(cross)
	for _, c := range children {
		d := sizingOf(c).Along(cross)
		if d == nil || !d.IsPercent() {
			continue
		}
		px := p.units.clampAxis(sizingOf(c), cross, d.Value/100*basis, basis)
		c.SetRequestedSize(c.RequestedSize().With(cross, box.Px(px).Ptr()))
	}
}

// sizingOf returns the sizing policy that determined c's requested size.
// Pass-through wrappers take theirs from the wrapped child.
func sizingOf(c *box.Node) box.SizingPolicy {
	for c.IsPassThrough() {
		c = c.Children()[0]
	}
	return c.Styles.Sizing
}
