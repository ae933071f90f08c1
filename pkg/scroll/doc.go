// Package scroll turns pointer input into scroll positions on overflowing
// containers.
//
// The layout engine marks a container as overflowing and sizes its
// scrollbar thumb; this package is the other half. A [Controller] hit-tests
// presses, drags and wheel events against the scrollbar tracks of a laid-out
// tree, moves the scroll position of the container that owns the track, and
// reflows that container so its children shift by the new offset.
//
// # Geometry
//
// The horizontal track runs along the bottom edge of a container and the
// vertical track along its right edge. Both are [DefaultThickness] pixels
// thick unless configured otherwise. The thumb covers ThumbRatio of the
// track and its start moves linearly with the scroll position:
//
//	thumbStart = trackStart + position * (trackLength - thumbLength)
//
// # Usage
//
//	ctrl := scroll.New(engine, viewport)
//	if ctrl.Dispatch(root, scroll.Event{Action: scroll.Press, X: x, Y: y}) {
//	    redraw()
//	}
package scroll
