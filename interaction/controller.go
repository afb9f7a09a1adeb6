// Package interaction is the pointer/keyboard state machine of the piano
// roll. It turns canvas events into selection changes and note edits on a
// notes.Manager, keeping gesture previews out of the manager until commit.
package interaction

import (
	"errors"
	"fmt"

	"go-pianoroll/debug"
	"go-pianoroll/grid"
	"go-pianoroll/notes"
	"go-pianoroll/pitch"
)

// Options are the editor settings the handlers read on every event
type Options struct {
	Snap      grid.Snap
	Transpose grid.TransposeMode
	Keys      pitch.KeyMap // used by Harmonic transposition

	DragThreshold float64 // canvas pixels before a press becomes a drag
	EdgeThreshold float64 // trailing fraction of a note that resizes
	Velocity      int     // velocity of placed notes

	AutoScrollMargin float64 // canvas pixels from an edge
	AutoScrollSpeed  float64 // grid pixels per frame
}

// DefaultOptions: sixteenth snap, chromatic, 3px threshold
func DefaultOptions() Options {
	return Options{
		Snap:             grid.Snap{Resolution: 0.25},
		Transpose:        grid.Chromatic,
		DragThreshold:    3,
		EdgeThreshold:    notes.DefaultEdgeThreshold,
		Velocity:         notes.DefaultVelocity,
		AutoScrollMargin: 2,
		AutoScrollSpeed:  2,
	}
}

// Controller owns the mode handlers, the store and the viewport of one grid
type Controller struct {
	cfg     grid.Config
	opts    Options
	manager *notes.Manager
	store   *Store
	overlay *OverlayContext

	scroll       grid.Scroll
	viewW, viewH float64

	recorder Recorder
	history  History
	redraw   func()

	handlers [modeCount]Handler
	mode     Mode
	last     *Pointer
}

// New builds a controller in NoteTool mode
func New(cfg grid.Config, manager *notes.Manager, opts Options) (*Controller, error) {
	if manager == nil {
		return nil, errors.New("interaction: nil note manager")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("interaction: invalid grid config: %w", err)
	}
	c := &Controller{
		cfg:     cfg,
		opts:    opts,
		manager: manager,
		store:   &Store{},
		overlay: &OverlayContext{},
		viewW:   cfg.LabelWidth + cfg.ContentWidth(),
		viewH:   cfg.HeaderHeight + cfg.ContentHeight(),
	}
	c.handlers = [modeCount]Handler{
		ModeNoteTool:     newNoteTool(c),
		ModeSelectedIdle: newSelectedIdle(c),
		ModeSelecting:    &selecting{c: c},
		ModeDragging:     newDragging(c),
		ModeSizing:       newSizing(c),
	}
	return c, nil
}

// SetRecorder attaches the sink for committed edits
func (c *Controller) SetRecorder(r Recorder) { c.recorder = r }

// SetHistory attaches the undo/redo collaborator
func (c *Controller) SetHistory(h History) { c.history = h }

// SetRedraw sets the callback run after every handled event
func (c *Controller) SetRedraw(fn func()) { c.redraw = fn }

func (c *Controller) Mode() Mode                { return c.mode }
func (c *Controller) Store() *Store             { return c.store }
func (c *Controller) Manager() *notes.Manager   { return c.manager }
func (c *Controller) Overlay() *OverlayContext  { return c.overlay }
func (c *Controller) Config() grid.Config       { return c.cfg }
func (c *Controller) Scroll() grid.Scroll       { return c.scroll }
func (c *Controller) Snap() grid.Snap           { return c.opts.Snap }
func (c *Controller) Options() Options          { return c.opts }
func (c *Controller) Viewport() (w, h float64)  { return c.viewW, c.viewH }
func (c *Controller) SetOptions(opts Options)   { c.opts = opts }
func (c *Controller) SetSnap(s grid.Snap)       { c.opts.Snap = s }
func (c *Controller) SetKeys(keys pitch.KeyMap) { c.opts.Keys = keys }

// MouseDown routes a press: overlay first, then the active mode
func (c *Controller) MouseDown(ev Pointer) {
	c.last = &ev
	defer c.RequestRedraw()
	if c.overlay.Dispatch(EventDown, ev) {
		return
	}
	c.transition(c.handlers[c.mode].OnMouseDown(ev), ev)
}

// MouseMove routes a move. A move that changes mode is replayed once to the
// new handler so it starts from the current pointer.
func (c *Controller) MouseMove(ev Pointer) {
	c.last = &ev
	defer c.RequestRedraw()
	if c.overlay.Dispatch(EventMove, ev) {
		return
	}
	c.move(ev)
}

func (c *Controller) move(ev Pointer) {
	before := c.mode
	c.transition(c.handlers[c.mode].OnMouseMove(ev), ev)
	if c.mode != before {
		c.transition(c.handlers[c.mode].OnMouseMove(ev), ev)
	}
}

// MouseUp routes a release
func (c *Controller) MouseUp(ev Pointer) {
	c.last = &ev
	defer c.RequestRedraw()
	if c.overlay.Dispatch(EventUp, ev) {
		return
	}
	c.transition(c.handlers[c.mode].OnMouseUp(ev), ev)
}

// MouseLeave routes the pointer leaving the canvas
func (c *Controller) MouseLeave(ev Pointer) {
	c.last = nil
	defer c.RequestRedraw()
	if c.overlay.Dispatch(EventLeave, ev) {
		return
	}
	c.transition(c.handlers[c.mode].OnMouseLeave(ev), ev)
}

func (c *Controller) transition(next Mode, ev Pointer) {
	if next == c.mode {
		return
	}
	c.handlers[c.mode].OnExit()
	debug.Log("mode", "%s -> %s", c.mode, next)
	c.mode = next
	c.handlers[next].OnEnter(ev)
}

// Reset forces NoteTool, abandoning any gesture in progress
func (c *Controller) Reset() {
	c.transition(ModeNoteTool, Pointer{})
}

// RequestRedraw runs the redraw callback, if any
func (c *Controller) RequestRedraw() {
	if c.redraw != nil {
		c.redraw()
	}
}

// Frame is one auto-scroll step. While a gesture holds the pointer near a
// viewport edge the view scrolls and the last move is replayed. Returns
// false once there is nothing left to animate.
func (c *Controller) Frame() bool {
	if !c.mode.Gesture() || c.last == nil {
		return false
	}
	ev := *c.last
	margin, speed := c.opts.AutoScrollMargin, c.opts.AutoScrollSpeed

	var dx, dy float64
	switch {
	case ev.X < c.cfg.LabelWidth+margin:
		dx = -speed
	case ev.X > c.viewW-margin:
		dx = speed
	}
	switch {
	case ev.Y < c.cfg.HeaderHeight+margin:
		dy = -speed
	case ev.Y > c.viewH-margin:
		dy = speed
	}
	if dx == 0 && dy == 0 {
		return true
	}
	next := c.scroll.By(dx, dy, c.cfg, c.viewW, c.viewH)
	if next == c.scroll {
		return true
	}
	c.scroll = next
	debug.LogEvery(30, "grid", "auto-scroll to %.0f,%.0f", next.X, next.Y)
	c.move(ev)
	c.RequestRedraw()
	return true
}

// SetViewport sets the canvas size, label column and header included
func (c *Controller) SetViewport(w, h float64) {
	c.viewW, c.viewH = w, h
	c.scroll = c.scroll.Clamp(c.cfg, w, h)
}

// ScrollBy scrolls the grid, clamped to the content
func (c *Controller) ScrollBy(dx, dy float64) {
	c.scroll = c.scroll.By(dx, dy, c.cfg, c.viewW, c.viewH)
	c.RequestRedraw()
}

// SetZoom changes the horizontal zoom, keeping the beat at the left edge
func (c *Controller) SetZoom(zoom float64) {
	if zoom <= 0 || c.mode.Gesture() {
		return
	}
	left := c.scroll.X / c.cfg.CellWidth()
	top := c.scroll.Y / c.cfg.CellHeight()
	c.cfg = c.cfg.WithZoom(zoom)
	c.scroll = grid.Scroll{X: left * c.cfg.CellWidth(), Y: top * c.cfg.CellHeight()}.Clamp(c.cfg, c.viewW, c.viewH)
	c.RequestRedraw()
}

// ScrollToBeat centers the view on a beat, used to follow the playhead
func (c *Controller) ScrollToBeat(beat float64) {
	c.scroll = c.scroll.CenterOn(c.cfg.XForBeat(beat), c.scroll.Y+(c.viewH-c.cfg.HeaderHeight)/2, c.cfg, c.viewW, c.viewH)
}

// hit is a pointer event resolved against the grid
type hit struct {
	gx, gy float64
	beat   float64
	midi   int
	pitch  string
}

// locate resolves ev to a grid cell; false outside the grid area
func (c *Controller) locate(ev Pointer) (hit, bool) {
	gx, gy, ok := c.cfg.PointerToGrid(ev.X, ev.Y, c.scroll)
	if !ok {
		return hit{}, false
	}
	row, ok := c.cfg.RowAt(gy)
	if !ok {
		return hit{}, false
	}
	m, _ := c.cfg.MidiForRow(row)
	name, ok := c.pitchOf(m)
	if !ok {
		return hit{}, false
	}
	return hit{gx: gx, gy: gy, beat: c.cfg.BeatAt(gx), midi: m, pitch: name}, true
}

// gridLocal converts canvas to grid-local pixels without bounds checks, so
// gestures keep tracking past the grid edges
func (c *Controller) gridLocal(ev Pointer) (gx, gy float64) {
	return ev.X - c.cfg.LabelWidth + c.scroll.X, ev.Y - c.cfg.HeaderHeight + c.scroll.Y
}

func (c *Controller) pitchOf(m int) (string, bool) {
	return pitch.MidiToName(m)
}

// hover tracks the note and cell under an idle pointer
func (c *Controller) hover(ev Pointer) {
	h, ok := c.locate(ev)
	if !ok {
		c.store.HoveredKey = ""
		c.store.Cursor = nil
		return
	}
	c.store.Cursor = &GridPosition{Beat: c.opts.Snap.Floor(h.beat), Midi: h.midi, Pitch: h.pitch}
	if n, ok := c.manager.FindNoteUnderCursor(h.pitch, h.beat); ok {
		c.store.HoveredKey = n.Key()
	} else {
		c.store.HoveredKey = ""
	}
}

// record hands a committed edit to the recorder
func (c *Controller) record(forward Diff) {
	if c.recorder == nil || forward.Empty() {
		return
	}
	c.recorder.RecordDiff(forward, forward.Invert())
}
