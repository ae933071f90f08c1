package layout

import "github.com/matzehuels/boxflow/pkg/box"

// TextWrapperFloor is the narrowest width an overflowing container squeezes
// a text wrapper to before giving up and scrolling.
const TextWrapperFloor = 100.0

// epsilon absorbs floating point residue in deficit bookkeeping.
const epsilon = 1e-9

// flexItems returns the effective sizes of n's children. Deficit
// resolution shrinks these copies, so the estimation outputs on the nodes
// stay intact for the next allocation.
func flexItems(n *box.Node) []box.Size {
	items := make([]box.Size, len(n.Children()))
	for i, c := range n.Children() {
		items[i] = c.EffectiveSize()
	}
	return items
}

// requestedMain returns the main-axis extent n's children ask for:
// padding, inter-child spacing, margins and item sizes.
func (p *pass) requestedMain(n *box.Node, main box.Axis, items []box.Size) float64 {
	total := p.units.insets(n.Styles.Padding).Sum(main)
	gap := n.Styles.Spacing.Along(main)
	for i, c := range n.Children() {
		if i > 0 {
			total += gap
		}
		total += p.units.insets(c.Styles.Margin).Sum(main) + items[i].Along(main)
	}
	return total
}

// resolveDeficit shrinks items that ask for more than allocated and
// returns the main-axis scroll offset.
func (p *pass) resolveDeficit(n *box.Node, main box.Axis, items []box.Size, allocated float64) float64 {
	deficit := max(0, p.requestedMain(n, main, items)-allocated)
	if deficit > epsilon {
		content := allocated - p.units.insets(n.Styles.Padding).Sum(main)
		deficit -= p.flexShrink(n, main, items, deficit, content)
	}

	sb := n.Scrollbar()
	if deficit > epsilon && n.Styles.Overflow.Scrollable() {
		if main == box.Horizontal {
			p.shrinkTextWrappers(n, items, deficit)
		}
		if total := p.requestedMain(n, main, items); total > allocated+epsilon {
			sb.SetOverflow(main, allocated/total)
		}
	}

	if !sb.IsOverflowing.Along(main) {
		return 0
	}
	return max(0, p.requestedMain(n, main, items)-allocated) * sb.CurrentScrollPosition.Along(main)
}

// flexShrink distributes deficit over items with a positive shrink factor,
// weighted by factor × size. It returns the amount actually reclaimed, which
// is less than deficit when children hit their floor.
func (p *pass) flexShrink(n *box.Node, main box.Axis, items []box.Size, deficit, basis float64) float64 {
	var weight float64
	for i, c := range n.Children() {
		if c.Styles.FlexShrink > 0 {
			weight += c.Styles.FlexShrink * items[i].Along(main)
		}
	}
	if weight <= 0 {
		return 0
	}

	var reclaimed float64
	for i, c := range n.Children() {
		if c.Styles.FlexShrink <= 0 {
			continue
		}
		size := items[i].Along(main)
		share := c.Styles.FlexShrink * size / weight * deficit
		floor := p.units.minAxis(sizingOf(c), main, basis)
		next := max(floor, size-share)
		if next >= size {
			continue
		}
		reclaimed += size - next
		items[i] = items[i].With(main, next)
	}
	return reclaimed
}

// shrinkTextWrappers narrows wrapping text items toward [TextWrapperFloor]
// by a common ratio. A narrower wrapper grows taller to fit its rewrapped
// text unless its height is fixed.
func (p *pass) shrinkTextWrappers(n *box.Node, items []box.Size, deficit float64) {
	var reducible float64
	var candidates []int
	for i, c := range n.Children() {
		if !c.IsTextWrapper() || !c.Styles.WhiteSpace.Wraps() {
			continue
		}
		if w := items[i].Width; w > TextWrapperFloor {
			reducible += w - TextWrapperFloor
			candidates = append(candidates, i)
		}
	}
	if reducible <= 0 {
		return
	}

	ratio := min(1, deficit/reducible)
	for _, i := range candidates {
		c := n.Children()[i]
		width := items[i].Width - (items[i].Width-TextWrapperFloor)*ratio
		items[i].Width = width

		if c.RequestedSize().Height != nil {
			continue
		}
		text := c.Children()[0]
		wrapperPad := p.units.insets(c.Styles.Padding)
		textPad := p.units.insets(text.Styles.Padding)
		textMargin := p.units.insets(text.Styles.Margin)
		inner := width - wrapperPad.Horizontal() - textPad.Horizontal() - textMargin.Horizontal()
		height := p.wrappedHeight(text, max(0, inner)) +
			wrapperPad.Vertical() + textPad.Vertical() + textMargin.Vertical()
		items[i].Height = max(items[i].Height, height)
	}
}
