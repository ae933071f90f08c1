package layout

import (
	"testing"

	"github.com/matzehuels/boxflow/pkg/box"
)

func TestResolveSurplus(t *testing.T) {
	tests := []struct {
		justify    box.JustifyContent
		count      int
		surplus    float64
		wantCursor float64
		wantExtra  float64
	}{
		{box.JustifyFlexStart, 3, 30, 10, 0},
		{box.JustifyFlexEnd, 3, 30, 40, 0},
		{box.JustifyCenter, 3, 30, 25, 0},
		{box.JustifySpaceBetween, 3, 30, 10, 15},
		{box.JustifySpaceBetween, 1, 30, 10, 0},
		{box.JustifySpaceAround, 2, 30, 20, 10},
		{box.JustifyFlexEnd, 3, -5, 10, 0},
		{box.JustifyCenter, 3, 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.justify.String(), func(t *testing.T) {
			cursor, extra := resolveSurplus(tt.justify, tt.count, 10, tt.surplus)
			if cursor != tt.wantCursor || extra != tt.wantExtra {
				t.Errorf("resolveSurplus(%v, %d, 10, %v) = (%v, %v), want (%v, %v)",
					tt.justify, tt.count, tt.surplus, cursor, extra, tt.wantCursor, tt.wantExtra)
			}
		})
	}
}

func TestJustifyContentPositions(t *testing.T) {
	tests := []struct {
		justify box.JustifyContent
		wantX   []float64
	}{
		{box.JustifyFlexStart, []float64{0, 20}},
		{box.JustifyFlexEnd, []float64{60, 80}},
		{box.JustifyCenter, []float64{30, 50}},
		{box.JustifySpaceBetween, []float64{0, 80}},
		{box.JustifySpaceAround, []float64{20, 60}},
	}

	for _, tt := range tests {
		t.Run(tt.justify.String(), func(t *testing.T) {
			root := row("root", box.Styles{JustifyContent: tt.justify}, fixed("a", 20, 10), fixed("b", 20, 10))
			newEngine().Layout(root, box.Position{}, viewport(100, 10))
			for i, c := range root.Children() {
				if got := c.Position().X; got != tt.wantX[i] {
					t.Errorf("child %d x = %v, want %v", i, got, tt.wantX[i])
				}
			}
		})
	}
}
