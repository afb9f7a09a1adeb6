package interaction

// Mode is the interaction state machine's current state
type Mode int

const (
	ModeNoteTool Mode = iota
	ModeSelectedIdle
	ModeSelecting
	ModeDragging
	ModeSizing
	modeCount
)

var modeNames = [modeCount]string{
	ModeNoteTool:     "note-tool",
	ModeSelectedIdle: "selected-idle",
	ModeSelecting:    "selecting",
	ModeDragging:     "dragging",
	ModeSizing:       "sizing",
}

func (m Mode) String() string {
	if m < 0 || m >= modeCount {
		return "unknown"
	}
	return modeNames[m]
}

// Gesture reports whether the mode owns a button-held gesture
func (m Mode) Gesture() bool {
	return m == ModeSelecting || m == ModeDragging || m == ModeSizing
}

// Handler is one mode of the state machine. Pointer callbacks return the
// next mode; returning the handler's own mode stays put. OnExit runs before
// the next handler's OnEnter and must leave no partial edit behind.
type Handler interface {
	Mode() Mode
	OnEnter(ev Pointer)
	OnExit()
	OnMouseDown(ev Pointer) Mode
	OnMouseMove(ev Pointer) Mode
	OnMouseUp(ev Pointer) Mode
	OnMouseLeave(ev Pointer) Mode
}
