package scroll

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/boxflow/pkg/box"
	"github.com/matzehuels/boxflow/pkg/layout"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func fixed(id string, w, h float64) *box.Node {
	return box.NewContainer(id, box.Styles{
		Sizing: box.SizingPolicy{Width: box.Px(w).Ptr(), Height: box.Px(h).Ptr()},
	})
}

// scroller returns a 50x30 row whose two 40px children overflow it,
// leaving a thumb ratio of 0.625 and 30px of travel.
func scroller(t *testing.T) (*box.Node, *Controller) {
	t.Helper()
	root := box.NewContainer("row", box.Styles{
		FlexDirection: box.Row,
		Overflow:      box.OverflowAuto,
	}, fixed("a", 40, 20), fixed("b", 40, 20))

	engine := layout.New()
	viewport := box.Size{Width: 50, Height: 30}
	engine.Layout(root, box.Position{}, viewport)
	if !root.Scrollbar().IsOverflowing.Horizontal {
		t.Fatal("row should overflow horizontally")
	}
	return root, New(engine, viewport)
}

func childX(root *box.Node, id string) float64 {
	return root.Find(id).Position().X
}

func TestTrackOf(t *testing.T) {
	root, _ := scroller(t)
	root.Scrollbar().ScrollTo(box.Horizontal, 0.5)

	got, ok := TrackOf(root, box.Horizontal, DefaultThickness)
	if !ok {
		t.Fatal("expected a horizontal track")
	}
	want := Track{
		Axis:        box.Horizontal,
		Origin:      box.Position{X: 0, Y: 20},
		Size:        box.Size{Width: 50, Height: 10},
		ThumbStart:  0.5 * 18.75,
		ThumbLength: 31.25,
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("track mismatch (-want +got):\n%s", diff)
	}

	if _, ok := TrackOf(root, box.Vertical, DefaultThickness); ok {
		t.Error("row should have no vertical track")
	}
}

func TestTrackContains(t *testing.T) {
	tr := Track{Origin: box.Position{X: 10, Y: 20}, Size: box.Size{Width: 30, Height: 10}}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{39, 29, true},
		{40, 25, false},
		{20, 19, false},
	}
	for _, tt := range tests {
		if got := tr.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDragThumb(t *testing.T) {
	root, ctrl := scroller(t)
	sb := root.Scrollbar()

	if !ctrl.Handle(root, Event{Action: Press, X: 10, Y: 25}) {
		t.Fatal("press on thumb should be consumed")
	}
	if !sb.IsDragging || sb.DragAxis != box.Horizontal || sb.DragStartPosition != 10 {
		t.Fatalf("drag state = %+v", *sb)
	}

	if !ctrl.Handle(root, Event{Action: Drag, X: 20, Y: 25}) {
		t.Fatal("drag should be consumed")
	}
	pos := 10 / 18.75
	if diff := cmp.Diff(pos, sb.CurrentScrollPosition.X, approx); diff != "" {
		t.Errorf("scroll position mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{-30 * pos, 40 - 30*pos}, []float64{childX(root, "a"), childX(root, "b")}, approx); diff != "" {
		t.Errorf("children not shifted by the scroll offset (-want +got):\n%s", diff)
	}
	if !sb.IsDragging {
		t.Error("reflow must not end the drag")
	}

	// Dragging past the end clamps.
	ctrl.Handle(root, Event{Action: Drag, X: 500, Y: 0})
	if sb.CurrentScrollPosition.X != 1 {
		t.Errorf("position = %v, want clamped to 1", sb.CurrentScrollPosition.X)
	}
	if got := childX(root, "a"); got != -30 {
		t.Errorf("a.x = %v, want -30", got)
	}

	if !ctrl.Handle(root, Event{Action: Release}) {
		t.Error("release should end the drag")
	}
	if sb.IsDragging {
		t.Error("still dragging after release")
	}
	if ctrl.Handle(root, Event{Action: Drag, X: 0, Y: 25}) {
		t.Error("drag without press should be ignored")
	}
}

func TestPressOnTrackJumps(t *testing.T) {
	tests := map[string]struct {
		x    float64
		want float64
	}{
		"past the end clamps": {x: 45, want: 1},
		"centers thumb":       {x: 32.5, want: 0.9},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root, ctrl := scroller(t)
			root.Scrollbar().ScrollTo(box.Horizontal, 0)

			// Thumb spans [0, 31.25) so x lies on the bare track.
			if !ctrl.Handle(root, Event{Action: Press, X: tt.x, Y: 25}) {
				t.Fatal("press on track should be consumed")
			}
			sb := root.Scrollbar()
			if sb.IsDragging {
				t.Error("track press should not start a drag")
			}
			if diff := cmp.Diff(tt.want, sb.CurrentScrollPosition.X, approx); diff != "" {
				t.Errorf("position mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(-30*tt.want, childX(root, "a"), approx); diff != "" {
				t.Errorf("a.x mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPressOutsideTrack(t *testing.T) {
	root, ctrl := scroller(t)
	if ctrl.Handle(root, Event{Action: Press, X: 10, Y: 5}) {
		t.Error("press above the track should be ignored")
	}
	if root.Scrollbar().IsDragging {
		t.Error("drag started outside the track")
	}
}

func TestWheel(t *testing.T) {
	root, ctrl := scroller(t)
	sb := root.Scrollbar()

	// The row only overflows horizontally, so vertical wheel motion scrolls it.
	if !ctrl.Handle(root, Event{Action: Wheel, X: 25, Y: 10, DeltaY: 2}) {
		t.Fatal("wheel inside the container should be consumed")
	}
	if diff := cmp.Diff(0.1, sb.CurrentScrollPosition.X, approx); diff != "" {
		t.Errorf("position mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(-3.0, childX(root, "a"), approx); diff != "" {
		t.Errorf("a.x mismatch (-want +got):\n%s", diff)
	}

	if ctrl.Handle(root, Event{Action: Wheel, X: 80, Y: 10, DeltaY: 2}) {
		t.Error("wheel outside the container should be ignored")
	}

	ctrl.Handle(root, Event{Action: Wheel, X: 25, Y: 10, DeltaY: -10})
	if sb.CurrentScrollPosition.X != 0 {
		t.Errorf("position = %v, want clamped to 0", sb.CurrentScrollPosition.X)
	}
}

func TestWheelSensitivity(t *testing.T) {
	root := box.NewContainer("row", box.Styles{
		FlexDirection: box.Row,
		Overflow:      box.OverflowScroll,
	}, fixed("a", 40, 20), fixed("b", 40, 20))
	engine := layout.New()
	viewport := box.Size{Width: 50, Height: 30}
	engine.Layout(root, box.Position{}, viewport)

	ctrl := New(engine, viewport, WithIncrement(0.1), WithSensitivity(2))
	ctrl.Handle(root, Event{Action: Wheel, X: 1, Y: 1, DeltaX: 1})

	if diff := cmp.Diff(0.2, root.Scrollbar().CurrentScrollPosition.X, approx); diff != "" {
		t.Errorf("position mismatch (-want +got):\n%s", diff)
	}
}

func TestVerticalTrack(t *testing.T) {
	root := box.NewContainer("col", box.Styles{
		Overflow: box.OverflowScroll,
	}, fixed("a", 20, 40), fixed("b", 20, 40))
	engine := layout.New()
	viewport := box.Size{Width: 30, Height: 50}
	engine.Layout(root, box.Position{}, viewport)

	tr, ok := TrackOf(root, box.Vertical, DefaultThickness)
	if !ok {
		t.Fatal("column should overflow vertically")
	}
	if tr.Origin != (box.Position{X: 20, Y: 0}) || tr.Size != (box.Size{Width: 10, Height: 50}) {
		t.Errorf("track = %+v", tr)
	}

	ctrl := New(engine, viewport)
	if !ctrl.Handle(root, Event{Action: Press, X: 25, Y: 45}) {
		t.Fatal("press on vertical track should be consumed")
	}
	if got := root.Find("a").Position().Y; got != -30 {
		t.Errorf("a.y = %v, want -30", got)
	}
}

func TestDispatch(t *testing.T) {
	inner := box.NewContainer("inner", box.Styles{
		FlexDirection: box.Row,
		Overflow:      box.OverflowAuto,
		Sizing:        box.SizingPolicy{Width: box.Px(50).Ptr(), Height: box.Px(30).Ptr()},
	}, fixed("a", 40, 20), fixed("b", 40, 20))
	root := box.NewContainer("root", box.Styles{}, fixed("header", 100, 10), inner)

	engine := layout.New()
	viewport := box.Size{Width: 100, Height: 100}
	engine.Layout(root, box.Position{}, viewport)
	ctrl := New(engine, viewport)

	// inner sits at y=10, so its track spans y 30..40.
	if !ctrl.Dispatch(root, Event{Action: Press, X: 45, Y: 35}) {
		t.Fatal("dispatch should reach the nested scroller")
	}
	if got := inner.Scrollbar().CurrentScrollPosition.X; got != 1 {
		t.Errorf("inner position = %v, want 1", got)
	}
	if got := root.Find("a").Position().X; got != -30 {
		t.Errorf("a.x = %v, want -30", got)
	}

	if ctrl.Dispatch(root, Event{Action: Press, X: 90, Y: 90}) {
		t.Error("press outside every track should not be consumed")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Event{Action: Press, X: 1, Y: 2}, "press(1,2)"},
		{Event{Action: Wheel, X: 1, Y: 2, DeltaY: -1}, "wheel(1,2 Δ0,-1)"},
		{Event{Action: Action(9)}, "action(9)(0,0)"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTrackFor(t *testing.T) {
	sb := box.NewScrollbarState()
	sb.IsOverflowing.Vertical = true
	sb.ThumbRatio.Y = 0.5
	sb.CurrentScrollPosition.Y = 1

	pos := box.Position{X: 10, Y: 20}
	size := box.Size{Width: 100, Height: 60}

	if _, ok := TrackFor(pos, size, nil, box.Vertical, DefaultThickness); ok {
		t.Error("nil state should have no track")
	}
	if _, ok := TrackFor(pos, size, &sb, box.Horizontal, DefaultThickness); ok {
		t.Error("axis without overflow should have no track")
	}

	got, ok := TrackFor(pos, size, &sb, box.Vertical, DefaultThickness)
	if !ok {
		t.Fatal("expected a vertical track")
	}
	want := Track{
		Axis:        box.Vertical,
		Origin:      box.Position{X: 100, Y: 20},
		Size:        box.Size{Width: 10, Height: 60},
		ThumbStart:  50,
		ThumbLength: 30,
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("track mismatch (-want +got):\n%s", diff)
	}
	if got.PositionAt(got.ThumbStart) != 1 {
		t.Errorf("PositionAt(thumb start) = %v, want 1", got.PositionAt(got.ThumbStart))
	}
}
