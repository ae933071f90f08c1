package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/boxflow/pkg/box"
)

func TestWrapLines(t *testing.T) {
	noMargin := func(*box.Node) box.Insets { return box.Insets{} }

	tests := map[string]struct {
		widths    []float64
		gap       float64
		available float64
		want      [][]int
	}{
		"third child starts a new line": {
			widths:    []float64{40, 40, 40},
			available: 100,
			want:      [][]int{{0, 1}, {2}},
		},
		"exact fit stays on the line": {
			widths:    []float64{50, 50},
			available: 100,
			want:      [][]int{{0, 1}},
		},
		"gap counts against the line": {
			widths:    []float64{50, 50},
			gap:       1,
			available: 100,
			want:      [][]int{{0}, {1}},
		},
		"oversized child gets its own line": {
			widths:    []float64{30, 150, 30},
			available: 100,
			want:      [][]int{{0}, {1}, {2}},
		},
		"empty": {
			available: 100,
			want:      nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var children []*box.Node
			for _, w := range tt.widths {
				c := fixed("c", w, 10)
				newEngine().EstimateSizes(c, viewport(100, 100))
				children = append(children, c)
			}

			lines := WrapLines(children, box.Horizontal, tt.gap, tt.available, noMargin)

			var got [][]int
			for _, ln := range lines {
				got = append(got, ln.Indices)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("line grouping mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrapLinesRecordsExtents(t *testing.T) {
	children := []*box.Node{fixed("a", 30, 10), fixed("b", 30, 25), fixed("c", 30, 5)}
	for _, c := range children {
		newEngine().EstimateSizes(c, viewport(100, 100))
	}
	margins := func(c *box.Node) box.Insets {
		if c.ID == "a" {
			return box.Insets{Left: 5}
		}
		return box.Insets{}
	}

	lines := WrapLines(children, box.Horizontal, 2, 70, margins)

	want := []Line{
		{Indices: []int{0, 1}, Main: 35 + 2 + 30, Cross: 25, Tallest: 1},
		{Indices: []int{2}, Main: 30, Cross: 5, Tallest: 2},
	}
	if diff := cmp.Diff(want, lines, approx); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}
