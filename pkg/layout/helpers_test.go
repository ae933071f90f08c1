package layout

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/boxflow/pkg/box"
)

// gridMeasurer treats every rune as a 10x20 cell. Images encode their size
// as "WxH".
type gridMeasurer struct{}

const (
	cellWidth  = 10.0
	lineHeight = 20.0
)

func (gridMeasurer) MeasureText(content string, _ box.Font) box.Size {
	return box.Size{Width: float64(len([]rune(content))) * cellWidth, Height: lineHeight}
}

func (m gridMeasurer) WrapText(content string, font box.Font, maxWidth float64) []box.TextLine {
	var lines []box.TextLine
	var cur []string
	flush := func() {
		text := strings.Join(cur, " ")
		lines = append(lines, box.TextLine{
			Text:  text,
			Width: m.MeasureText(text, font).Width,
			Y:     float64(len(lines)) * lineHeight,
		})
		cur = nil
	}
	for _, word := range strings.Fields(content) {
		candidate := strings.Join(append(append([]string(nil), cur...), word), " ")
		if len(cur) > 0 && m.MeasureText(candidate, font).Width > maxWidth {
			flush()
		}
		cur = append(cur, word)
	}
	if len(cur) > 0 {
		flush()
	}
	return lines
}

func (gridMeasurer) ImageSize(data []byte) (box.Size, error) {
	var s box.Size
	if _, err := fmt.Sscanf(string(data), "%gx%g", &s.Width, &s.Height); err != nil {
		return box.Size{}, err
	}
	return s, nil
}

func newEngine() *Engine {
	return New(WithMeasurer(gridMeasurer{}))
}

type rect struct {
	X, Y, W, H float64
}

func rectOf(n *box.Node) rect {
	pos, size := n.Bounds()
	return rect{X: pos.X, Y: pos.Y, W: size.Width, H: size.Height}
}

// geometry collects the allocated boxes of every node by ID.
func geometry(root *box.Node) map[string]rect {
	out := make(map[string]rect)
	root.Walk(func(n *box.Node) bool {
		out[n.ID] = rectOf(n)
		return true
	})
	return out
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func assertRects(t *testing.T, root *box.Node, want map[string]rect) {
	t.Helper()
	got := geometry(root)
	for id := range got {
		if _, ok := want[id]; !ok {
			delete(got, id)
		}
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("geometry mismatch (-want +got):\n%s", diff)
	}
}

// fixed returns a leaf with an explicit pixel size.
func fixed(id string, w, h float64) *box.Node {
	return box.NewContainer(id, box.Styles{
		Sizing: box.SizingPolicy{Width: box.Px(w).Ptr(), Height: box.Px(h).Ptr()},
	})
}

func row(id string, styles box.Styles, children ...*box.Node) *box.Node {
	styles.FlexDirection = box.Row
	return box.NewContainer(id, styles, children...)
}

func column(id string, styles box.Styles, children ...*box.Node) *box.Node {
	styles.FlexDirection = box.Column
	return box.NewContainer(id, styles, children...)
}

func viewport(w, h float64) box.Size { return box.Size{Width: w, Height: h} }
