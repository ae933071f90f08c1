package scroll

import "fmt"

// Action identifies the kind of pointer event.
type Action uint8

const (
	// Press is a button press at (X, Y).
	Press Action = iota
	// Drag is pointer motion while a button is held.
	Drag
	// Release ends a press.
	Release
	// Wheel carries DeltaX and DeltaY in wheel notches. Positive deltas
	// scroll toward the end of the content.
	Wheel
)

var actionNames = [...]string{"press", "drag", "release", "wheel"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", a)
}

// Event is a pointer event in the same coordinate space as the layout.
type Event struct {
	Action Action
	X, Y   float64
	DeltaX float64
	DeltaY float64
}

func (e Event) String() string {
	if e.Action == Wheel {
		return fmt.Sprintf("%s(%g,%g Δ%g,%g)", e.Action, e.X, e.Y, e.DeltaX, e.DeltaY)
	}
	return fmt.Sprintf("%s(%g,%g)", e.Action, e.X, e.Y)
}
