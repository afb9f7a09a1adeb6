package interaction

import (
	"go-pianoroll/debug"
	"go-pianoroll/grid"
	"go-pianoroll/notes"
)

// editGesture is the shared lifecycle of Dragging and Sizing: take the group
// out of the manager on enter, rebuild the preview on every move, commit on
// release, revert on anything else.
type editGesture struct {
	c      *Controller
	mode   Mode
	edit   *PendingEdit
	anchor notes.Note
	// lastMidi is the pitch the anchor was last auditioned at
	lastMidi int

	// anchorKey picks the grabbed note out of the store
	anchorKey func(s *Store) string
	// transform builds the preview from the originals
	transform func(ev Pointer) []notes.Note
}

func newDragging(c *Controller) *editGesture {
	g := &editGesture{c: c, mode: ModeDragging}
	g.anchorKey = func(s *Store) string { return s.DragAnchorKey }
	g.transform = g.move
	return g
}

func newSizing(c *Controller) *editGesture {
	g := &editGesture{c: c, mode: ModeSizing}
	g.anchorKey = func(s *Store) string { return s.HoveredKey }
	g.transform = g.resize
	return g
}

func (g *editGesture) Mode() Mode { return g.mode }

func (g *editGesture) OnEnter(ev Pointer) {
	c := g.c
	g.edit = nil
	anchor, ok := c.manager.FindByKey(g.anchorKey(c.store))
	if !ok || c.store.Press == nil {
		debug.Log("edit", "%s: no anchor", g.mode)
		return
	}
	edit, ok := BeginEdit(c.manager, c.gestureGroup(anchor))
	if !ok {
		return
	}
	g.edit = edit
	g.anchor = anchor
	g.lastMidi, _ = anchor.Midi()
	c.store.Preview = edit.Originals()
	debug.Log("edit", "%s %d notes from %s", g.mode, len(c.store.Preview), anchor.Key())
}

// OnExit reverts an edit that was not committed
func (g *editGesture) OnExit() {
	st := g.c.store
	if g.edit != nil && !g.edit.Settled() {
		g.edit.Revert()
		debug.Log("edit", "%s reverted", g.mode)
	}
	g.edit = nil
	st.Preview = nil
	st.Press = nil
	st.DragAnchorKey = ""
}

func (g *editGesture) OnMouseDown(ev Pointer) Mode { return g.mode }

func (g *editGesture) OnMouseMove(ev Pointer) Mode {
	if g.edit == nil {
		return ModeNoteTool
	}
	g.c.store.Preview = g.transform(ev)
	return g.mode
}

func (g *editGesture) OnMouseUp(ev Pointer) Mode {
	if g.edit == nil {
		return ModeNoteTool
	}
	result := g.transform(ev)
	g.c.finishEdit(g.edit, result)
	return ModeNoteTool
}

func (g *editGesture) OnMouseLeave(ev Pointer) Mode {
	return ModeNoteTool
}

// move places the anchor under the pointer, keeping the offset at which it
// was grabbed
func (g *editGesture) move(ev Pointer) []notes.Note {
	c := g.c
	p := c.store.Press
	gx, gy := c.gridLocal(ev)
	anchorMidi, _ := g.anchor.Midi()

	targetBeat := g.anchor.Start + c.opts.Snap.Beat(c.cfg.BeatAt(gx)-p.Beat)
	targetMidi := anchorMidi + c.cfg.MidiAtY(gy) - p.Midi

	preview := c.cfg.DragTransform(grid.DragInput{
		Originals:  g.edit.Originals(),
		Anchor:     g.anchor,
		TargetMidi: targetMidi,
		TargetBeat: targetBeat,
		Mode:       c.opts.Transpose,
		Keys:       c.opts.Keys,
	})
	if targetMidi = c.cfg.ClampMidi(targetMidi); targetMidi != g.lastMidi {
		g.lastMidi = targetMidi
		if name, ok := c.pitchOf(targetMidi); ok {
			c.manager.PreviewNote(name, g.anchor.Duration, g.anchor.Velocity, false)
		}
	}
	return preview
}

func (g *editGesture) resize(ev Pointer) []notes.Note {
	c := g.c
	gx, _ := c.gridLocal(ev)
	return c.cfg.ResizeTransform(g.edit.Originals(), gx-c.store.Press.GX, c.opts.Snap)
}

// gestureGroup is the selection when it holds the anchor, else the anchor
func (c *Controller) gestureGroup(anchor notes.Note) []notes.Note {
	if !c.store.IsSelected(anchor.Key()) {
		return []notes.Note{anchor}
	}
	c.store.Resolve(c.manager)
	return c.store.Selected()
}

// finishEdit commits result when it differs from the originals
func (c *Controller) finishEdit(edit *PendingEdit, result []notes.Note) {
	if notes.Equal(notes.Merge(result), edit.Originals()) {
		edit.Revert()
		debug.Log("edit", "no change")
		return
	}
	forward, reverse := edit.Commit(result)
	c.store.SetSelection(edit.Added())
	if c.recorder != nil {
		c.recorder.RecordDiff(forward, reverse)
	}
	debug.Log("edit", "committed -%d +%d", len(forward.Removed), len(forward.Added))
}
