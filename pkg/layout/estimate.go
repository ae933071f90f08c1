package layout

import (
	"github.com/matzehuels/boxflow/pkg/box"
)

// noBasis marks a conversion made before the parent box is known.
const noBasis = -1

// estimate computes natural and requested sizes for n and its subtree,
// children first.
func (p *pass) estimate(n *box.Node, inherited box.Font) {
	font := p.units.font(n.Styles, inherited)
	n.SetFont(font)

	for _, c := range n.Children() {
		p.estimate(c, font)
	}
	defer n.MarkEstimated()

	if n.IsPassThrough() {
		c := n.Children()[0]
		n.SetNaturalSize(c.NaturalSize())
		n.SetRequestedSize(c.RequestedSize())
		return
	}

	n.SetNaturalSize(p.naturalSize(n))
	n.SetRequestedSize(p.requestedSize(n.Styles.Sizing))
}

func (p *pass) naturalSize(n *box.Node) box.Size {
	padding := p.units.insets(n.Styles.Padding)
	pad := box.Size{Width: padding.Horizontal(), Height: padding.Vertical()}

	switch n.Kind {
	case box.Text:
		content := p.measureText(n)
		return box.Size{Width: pad.Width + content.Width, Height: pad.Height + content.Height}
	case box.Image:
		content := p.measureImage(n)
		return box.Size{Width: pad.Width + content.Width, Height: pad.Height + content.Height}
	}

	children := n.Children()
	if len(children) == 0 {
		return pad
	}

	main := n.Styles.FlexDirection.MainAxis()
	cross := main.Cross()
	gap := n.Styles.Spacing.Along(main)

	var sumMain, maxCross float64
	for i, c := range children {
		if i > 0 {
			sumMain += gap
		}
		m := p.units.insets(c.Styles.Margin)
		eff := c.EffectiveSize()
		sumMain += m.Sum(main) + eff.Along(main)
		maxCross = max(maxCross, eff.Along(cross)+m.Sum(cross))
	}

	return box.Size{}.
		With(main, pad.Along(main)+sumMain).
		With(cross, pad.Along(cross)+maxCross)
}

// requestedSize converts a sizing policy. Percentages become pending zero
// percent dimensions; everything else is converted to pixels and clamped to
// the absolute min and max bounds.
func (p *pass) requestedSize(s box.SizingPolicy) box.OptionalSize {
	var req box.OptionalSize
	for _, a := range []box.Axis{box.Horizontal, box.Vertical} {
		d := s.Along(a)
		if d == nil {
			continue
		}
		if d.IsPercent() {
			req = req.With(a, box.Pct(0).Ptr())
			continue
		}
		px, _ := p.units.length(*d)
		req = req.With(a, box.Px(p.units.clampAxis(s, a, px, noBasis)).Ptr())
	}
	return req
}

func (p *pass) measureImage(n *box.Node) box.Size {
	if p.measurer == nil || len(n.Image) == 0 {
		return box.Size{}
	}
	size, err := p.measurer.ImageSize(n.Image)
	if err != nil {
		return box.Size{}
	}
	return size
}
