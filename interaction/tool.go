package interaction

import (
	"go-pianoroll/debug"
	"go-pianoroll/notes"
)

// pressTarget is what a button press landed on
type pressTarget int

const (
	pressEmpty pressTarget = iota
	pressBody
	pressEdge
)

// toolHandler serves NoteTool and SelectedIdle. Both arm a gesture on press
// and only decide what it was once the pointer moves past the drag
// threshold or is released; they differ on a click in empty space.
type toolHandler struct {
	c      *Controller
	mode   Mode
	places bool // NoteTool places a note on an empty click

	pressed bool
	target  pressTarget
}

func newNoteTool(c *Controller) *toolHandler {
	return &toolHandler{c: c, mode: ModeNoteTool, places: true}
}

func newSelectedIdle(c *Controller) *toolHandler {
	return &toolHandler{c: c, mode: ModeSelectedIdle}
}

func (t *toolHandler) Mode() Mode { return t.mode }

func (t *toolHandler) OnEnter(ev Pointer) {
	t.pressed = false
}

// OnExit keeps store.Press: the gesture handler that follows reads it
func (t *toolHandler) OnExit() {
	t.pressed = false
}

func (t *toolHandler) OnMouseDown(ev Pointer) Mode {
	c := t.c
	h, ok := c.locate(ev)
	if !ok {
		return t.mode
	}
	opts := c.opts

	if ev.Button == ButtonRight {
		if n, ok := c.manager.FindNoteUnderCursor(h.pitch, h.beat); ok {
			c.deleteNotes([]notes.Note{n})
		}
		if t.mode == ModeSelectedIdle && !c.store.HasSelection() {
			return ModeNoteTool
		}
		return t.mode
	}
	if ev.Button != ButtonLeft {
		return t.mode
	}

	c.store.Press = &Press{X: ev.X, Y: ev.Y, GX: h.gx, GY: h.gy, Beat: h.beat, Midi: h.midi}
	t.pressed = true
	t.target = pressEmpty

	if n, ok := c.manager.FindNoteEdgeAtCursor(h.pitch, h.beat, opts.EdgeThreshold); ok {
		t.target = pressEdge
		c.store.HoveredKey = n.Key()
		t.pick(n, ev)
	} else if n, ok := c.manager.FindNoteUnderCursor(h.pitch, h.beat); ok {
		t.target = pressBody
		c.store.DragAnchorKey = n.Key()
		t.pick(n, ev)
	}
	return t.mode
}

// pick applies a press on a note to the selection and auditions it
func (t *toolHandler) pick(n notes.Note, ev Pointer) {
	s := t.c.store
	switch {
	case ev.Mods.Additive():
		s.Toggle(n)
	case !s.IsSelected(n.Key()):
		s.SetSelection([]notes.Note{n})
	}
	t.c.manager.PreviewNote(n.Pitch, n.Duration, n.Velocity, false)
}

func (t *toolHandler) OnMouseMove(ev Pointer) Mode {
	c := t.c
	if !t.pressed {
		c.hover(ev)
		return t.mode
	}
	p := c.store.Press
	if p == nil || ev.distance(p.X, p.Y) < c.opts.DragThreshold {
		return t.mode
	}
	t.pressed = false
	switch t.target {
	case pressBody:
		return ModeDragging
	case pressEdge:
		return ModeSizing
	}
	return ModeSelecting
}

func (t *toolHandler) OnMouseUp(ev Pointer) Mode {
	c := t.c
	if !t.pressed {
		return t.mode
	}
	t.pressed = false
	p := c.store.Press
	c.store.Press = nil
	c.store.DragAnchorKey = ""

	if t.target != pressEmpty {
		return t.idleMode()
	}
	if t.places && p != nil {
		c.placeNote(p)
		return ModeNoteTool
	}
	c.store.ClearSelection()
	return ModeNoteTool
}

func (t *toolHandler) OnMouseLeave(ev Pointer) Mode {
	t.pressed = false
	s := t.c.store
	s.Press = nil
	s.HoveredKey = ""
	s.DragAnchorKey = ""
	s.Cursor = nil
	return ModeNoteTool
}

// idleMode is where a completed click on a note settles
func (t *toolHandler) idleMode() Mode {
	if t.c.store.HasSelection() {
		return ModeSelectedIdle
	}
	return ModeNoteTool
}

// placeNote adds a one-step note at the snapped press position
func (c *Controller) placeNote(p *Press) {
	start := c.opts.Snap.Floor(p.Beat)
	dur := c.step()
	if total := c.cfg.TotalBeats(); start+dur > total {
		dur = total - start
	}
	name, ok := c.pitchOf(p.Midi)
	if !ok || dur <= 0 {
		return
	}
	if _, exists := c.manager.FindAtPosition(name, start); exists {
		debug.Log("edit", "place %s@%g: occupied", name, start)
		return
	}

	n := notes.Note{Pitch: name, Start: start, Duration: dur, Velocity: c.opts.Velocity}
	if !c.manager.Add(n) {
		return
	}
	stored, _ := c.manager.FindAtPosition(name, start)
	c.store.ClearSelection()
	c.manager.PreviewNote(stored.Pitch, stored.Duration, stored.Velocity, false)
	c.record(Diff{Added: []notes.Note{stored}})
	debug.Log("edit", "placed %s", stored.Key())
}

// deleteNotes removes ns from the manager and the selection
func (c *Controller) deleteNotes(ns []notes.Note) {
	removed := c.manager.RemoveAll(ns)
	if len(removed) == 0 {
		return
	}
	c.store.Deselect(removed)
	if c.store.HoveredKey != "" {
		if _, ok := c.manager.FindByKey(c.store.HoveredKey); !ok {
			c.store.HoveredKey = ""
		}
	}
	c.record(Diff{Removed: removed})
	debug.Log("edit", "deleted %d notes", len(removed))
}
