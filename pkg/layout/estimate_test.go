package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/boxflow/pkg/box"
)

func TestEstimateNaturalSize(t *testing.T) {
	margin := func(n *box.Node, e box.Edges) *box.Node {
		n.Styles.Margin = e
		return n
	}

	tests := map[string]struct {
		node *box.Node
		want box.Size
	}{
		"padding only": {
			node: box.NewContainer("n", box.Styles{Padding: box.Edges{Top: box.Px(1), Right: box.Px(2), Bottom: box.Px(3), Left: box.Px(4)}}),
			want: box.Size{Width: 6, Height: 4},
		},
		"row sums width and maxes height": {
			node: row("n", box.Styles{Spacing: box.Spacing{X: 5}, Padding: box.Uniform(box.Px(1))},
				fixed("a", 10, 20),
				margin(fixed("b", 30, 5), box.Uniform(box.Px(2)))),
			want: box.Size{Width: 2 + 10 + 5 + 34, Height: 2 + 20},
		},
		"column sums height and maxes width": {
			node: column("n", box.Styles{Spacing: box.Spacing{Y: 3}},
				fixed("a", 10, 20),
				margin(fixed("b", 30, 5), box.Edges{Left: box.Px(7)})),
			want: box.Size{Width: 37, Height: 28},
		},
		"text measures content plus padding": {
			node: box.NewText("n", "hello", box.Styles{Padding: box.Uniform(box.Px(2))}),
			want: box.Size{Width: 54, Height: 24},
		},
		"text collapses whitespace": {
			node: box.NewText("n", "  a \n  b  ", box.Styles{}),
			want: box.Size{Width: 30, Height: 20},
		},
		"preformatted text keeps lines": {
			node: box.NewText("n", "abc\nde", box.Styles{WhiteSpace: box.WhiteSpacePre}),
			want: box.Size{Width: 30, Height: 40},
		},
		"image header": {
			node: box.NewImage("n", []byte("64x48"), box.Styles{}),
			want: box.Size{Width: 64, Height: 48},
		},
		"undecodable image is empty": {
			node: box.NewImage("n", []byte("garbage"), box.Styles{}),
			want: box.Size{},
		},
		"requested size feeds parent": {
			node: row("n", box.Styles{}, fixed("a", 12, 8), box.NewText("t", "ab", box.Styles{})),
			want: box.Size{Width: 32, Height: 20},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			newEngine().EstimateSizes(tt.node, viewport(800, 600))
			if diff := cmp.Diff(tt.want, tt.node.NaturalSize(), approx); diff != "" {
				t.Errorf("natural size mismatch (-want +got):\n%s", diff)
			}
			if !tt.node.Estimated() {
				t.Error("node should be marked estimated")
			}
		})
	}
}

func TestEstimateRequestedSize(t *testing.T) {
	tests := map[string]struct {
		sizing box.SizingPolicy
		want   box.OptionalSize
	}{
		"absent": {
			sizing: box.SizingPolicy{},
			want:   box.OptionalSize{},
		},
		"pixels": {
			sizing: box.SizingPolicy{Width: box.Px(40).Ptr()},
			want:   box.OptionalSize{Width: box.Px(40).Ptr()},
		},
		"percent stays pending": {
			sizing: box.SizingPolicy{Height: box.Pct(75).Ptr()},
			want:   box.OptionalSize{Height: box.Pct(0).Ptr()},
		},
		"viewport units": {
			sizing: box.SizingPolicy{Width: box.Vw(50).Ptr(), Height: box.Vh(10).Ptr()},
			want:   box.OptionalSize{Width: box.Px(400).Ptr(), Height: box.Px(60).Ptr()},
		},
		"rem": {
			sizing: box.SizingPolicy{Width: box.Rem(2).Ptr()},
			want:   box.OptionalSize{Width: box.Px(32).Ptr()},
		},
		"clamped to max": {
			sizing: box.SizingPolicy{Width: box.Px(500).Ptr(), MaxWidth: box.Px(300).Ptr()},
			want:   box.OptionalSize{Width: box.Px(300).Ptr()},
		},
		"clamped to min": {
			sizing: box.SizingPolicy{Width: box.Px(5).Ptr(), MinWidth: box.Rem(1).Ptr()},
			want:   box.OptionalSize{Width: box.Px(16).Ptr()},
		},
		"percent bounds wait for parent": {
			sizing: box.SizingPolicy{Width: box.Px(500).Ptr(), MaxWidth: box.Pct(50).Ptr()},
			want:   box.OptionalSize{Width: box.Px(500).Ptr()},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			n := box.NewContainer("n", box.Styles{Sizing: tt.sizing})
			newEngine().EstimateSizes(n, viewport(800, 600))
			if diff := cmp.Diff(tt.want, n.RequestedSize()); diff != "" {
				t.Errorf("requested size mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEstimateFontCascade(t *testing.T) {
	bold := 700
	italic := box.FontStyleItalic
	text := box.NewText("t", "x", box.Styles{FontSize: box.Pct(150).Ptr()})
	root := box.NewContainer("root", box.Styles{
		FontFamily: "mono",
		FontWeight: bold,
		FontStyle:  &italic,
	}, box.NewContainer("mid", box.Styles{FontSize: box.Rem(2).Ptr()}, text))

	New(WithRootFontSize(10)).EstimateSizes(root, viewport(100, 100))

	want := box.Font{Family: "mono", Size: 30, Weight: 700, Style: box.FontStyleItalic}
	if diff := cmp.Diff(want, text.Font()); diff != "" {
		t.Errorf("font mismatch (-want +got):\n%s", diff)
	}
	if got := root.Font().Size; got != 10 {
		t.Errorf("root font size = %v, want rem base 10", got)
	}
}

func TestEstimatePercentEdgesCountAsZero(t *testing.T) {
	n := box.NewContainer("n", box.Styles{Padding: box.Symmetric(box.Pct(10), box.Px(4))})
	newEngine().EstimateSizes(n, viewport(100, 100))
	if got := n.NaturalSize(); got != (box.Size{Width: 8, Height: 0}) {
		t.Errorf("natural = %v, want percent padding ignored", got)
	}
}
