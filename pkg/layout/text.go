package layout

import (
	"strings"

	"github.com/matzehuels/boxflow/pkg/box"
)

// measureText returns the unwrapped extent of a text node's content.
// Preformatted text keeps its hard line breaks.
func (p *pass) measureText(n *box.Node) box.Size {
	if p.measurer == nil || n.Text == "" {
		return box.Size{}
	}
	var size box.Size
	for _, line := range hardLines(n.Text, n.Styles.WhiteSpace) {
		s := p.measurer.MeasureText(line, n.Font())
		size.Width = max(size.Width, s.Width)
		size.Height += s.Height
	}
	return size
}

// textLines breaks a text node's content for a content box width.
func (p *pass) textLines(n *box.Node, width float64) []box.TextLine {
	if p.measurer == nil || n.Text == "" {
		return nil
	}

	ws := n.Styles.WhiteSpace
	font := n.Font()
	var lines []box.TextLine
	var y float64
	for _, hard := range hardLines(n.Text, ws) {
		if ws.Wraps() {
			wrapped := p.measurer.WrapText(hard, font, width)
			if len(wrapped) == 0 {
				wrapped = []box.TextLine{{}}
			}
			for _, l := range wrapped {
				l.Y += y
				lines = append(lines, l)
			}
			y += p.linesHeight(wrapped, font)
			continue
		}
		s := p.measurer.MeasureText(hard, font)
		lines = append(lines, box.TextLine{Text: hard, Width: s.Width, Y: y})
		y += s.Height
	}
	return lines
}

// linesHeight returns the vertical extent of wrapped lines.
func (p *pass) linesHeight(lines []box.TextLine, font box.Font) float64 {
	if len(lines) == 0 {
		return 0
	}
	last := lines[len(lines)-1]
	return last.Y + p.measurer.MeasureText(last.Text, font).Height
}

// wrappedHeight returns the height of n's text when wrapped at width.
func (p *pass) wrappedHeight(n *box.Node, width float64) float64 {
	return p.linesHeight(p.textLines(n, width), n.Font())
}

// hardLines splits content the way white-space dictates: preformatted modes
// keep line breaks, the others collapse all whitespace into single spaces.
func hardLines(content string, ws box.WhiteSpace) []string {
	switch ws {
	case box.WhiteSpacePre, box.WhiteSpacePreWrap:
		return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	default:
		return []string{strings.Join(strings.Fields(content), " ")}
	}
}
