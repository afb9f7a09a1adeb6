package interaction

import "math"

// Button identifies the pointer button of an event
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// Modifiers are the keyboard modifiers held during a pointer event
type Modifiers struct {
	Shift, Ctrl, Alt, Meta bool
}

// Additive reports ctrl/cmd: extend the selection instead of replacing it
func (m Modifiers) Additive() bool {
	return m.Ctrl || m.Meta
}

// Pointer is a pointer event in canvas pixels (origin at the canvas
// top-left, label column and header strip included)
type Pointer struct {
	X, Y   float64
	Button Button
	Mods   Modifiers
}

// distance between two pointer positions
func (p Pointer) distance(x, y float64) float64 {
	return math.Hypot(p.X-x, p.Y-y)
}

// EventKind names a pointer event for overlay dispatch
type EventKind int

const (
	EventDown EventKind = iota
	EventMove
	EventUp
	EventLeave
)

func (k EventKind) String() string {
	switch k {
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	case EventLeave:
		return "leave"
	}
	return "unknown"
}
