package interaction

import (
	"go-pianoroll/debug"
	"go-pianoroll/grid"
	"go-pianoroll/notes"
	"go-pianoroll/pitch"
)

// Key handles a key press named the way bubbletea names them ("ctrl+z",
// "shift+up", "esc"). Returns false for keys it does not bind. Everything
// but escape is ignored while a gesture holds the pointer.
func (c *Controller) Key(name string) bool {
	if name == "esc" || name == "escape" {
		c.Reset()
		c.store.ClearSelection()
		c.RequestRedraw()
		return true
	}
	if c.mode.Gesture() {
		return false
	}

	handled := true
	switch name {
	case "delete", "backspace":
		c.DeleteSelection()
	case "ctrl+a":
		c.SelectAll()
	case "ctrl+c":
		c.Copy()
	case "ctrl+x":
		c.Cut()
	case "ctrl+v":
		c.Paste()
	case "up":
		c.Transpose(1)
	case "down":
		c.Transpose(-1)
	case "shift+up":
		c.TransposeOctave(1)
	case "shift+down":
		c.TransposeOctave(-1)
	case "left":
		c.Nudge(-1)
	case "right":
		c.Nudge(1)
	case "t":
		c.opts.Snap.Triplet = !c.opts.Snap.Triplet
	case "h":
		c.ToggleHarmonic()
	case "ctrl+z":
		c.Undo()
	case "ctrl+y", "ctrl+shift+z":
		c.Redo()
	default:
		handled = false
	}
	if handled {
		c.RequestRedraw()
	}
	return handled
}

// settle moves to SelectedIdle or NoteTool to match the selection
func (c *Controller) settle() {
	if c.store.HasSelection() {
		c.transition(ModeSelectedIdle, Pointer{})
	} else {
		c.transition(ModeNoteTool, Pointer{})
	}
}

// DeleteSelection removes every selected note
func (c *Controller) DeleteSelection() {
	c.store.Resolve(c.manager)
	c.deleteNotes(c.store.Selected())
	c.settle()
}

// SelectAll selects every note
func (c *Controller) SelectAll() {
	c.store.SetSelection(c.manager.All())
	c.settle()
}

// Copy puts the selection on the clipboard
func (c *Controller) Copy() {
	c.store.Resolve(c.manager)
	if c.store.HasSelection() {
		c.store.Clipboard = c.store.Selected()
	}
}

// Cut copies then deletes the selection
func (c *Controller) Cut() {
	c.Copy()
	c.DeleteSelection()
}

// Paste drops the clipboard at the cursor. Notes landing on an occupied key
// are skipped.
func (c *Controller) Paste() {
	cur := c.store.Cursor
	if cur == nil || len(c.store.Clipboard) == 0 {
		return
	}
	placed := c.cfg.PasteTransform(c.store.Clipboard, cur.Midi, cur.Beat, c.opts.Transpose, c.opts.Keys)
	var fresh []notes.Note
	for _, n := range placed {
		if _, taken := c.manager.FindAtPosition(n.Pitch, n.Start); !taken {
			fresh = append(fresh, n)
		}
	}
	added := c.manager.AddAll(fresh)
	if len(added) == 0 {
		return
	}
	c.store.SetSelection(added)
	c.record(Diff{Added: added})
	debug.Log("edit", "pasted %d notes at %s@%g", len(added), cur.Pitch, cur.Beat)
	c.settle()
}

// Transpose moves the selection by steps: semitones when chromatic, scale
// degrees when harmonic
func (c *Controller) Transpose(steps int) {
	harmonic := c.opts.Transpose == grid.Harmonic && c.opts.Keys != nil
	c.shiftSelection(func(anchorMidi int) (int, bool) {
		if harmonic {
			return c.degreeStep(anchorMidi, steps)
		}
		return anchorMidi + steps, true
	}, 0, harmonic)
}

// TransposeOctave moves the selection by whole octaves, always chromatic
func (c *Controller) TransposeOctave(octaves int) {
	c.shiftSelection(func(anchorMidi int) (int, bool) {
		return anchorMidi + 12*octaves, true
	}, 0, false)
}

// Nudge moves the selection by snap steps in time
func (c *Controller) Nudge(steps int) {
	c.shiftSelection(func(anchorMidi int) (int, bool) {
		return anchorMidi, true
	}, float64(steps)*c.step(), false)
}

// shiftSelection runs a keyboard move through the same pending edit a drag
// uses. target maps the anchor pitch to its destination.
func (c *Controller) shiftSelection(target func(anchorMidi int) (int, bool), beats float64, harmonic bool) {
	c.store.Resolve(c.manager)
	group := c.store.Selected()
	if len(group) == 0 {
		return
	}
	anchor := group[0]
	anchorMidi, ok := anchor.Midi()
	if !ok {
		return
	}
	to, ok := target(anchorMidi)
	if !ok {
		return
	}
	if !harmonic && !c.fitsRange(group, to-anchorMidi) {
		debug.Log("edit", "shift by %d leaves the pitch range", to-anchorMidi)
		return
	}

	mode := grid.Chromatic
	if harmonic {
		mode = grid.Harmonic
	}
	edit, ok := BeginEdit(c.manager, group)
	if !ok {
		return
	}
	result := c.cfg.DragTransform(grid.DragInput{
		Originals:  edit.Originals(),
		Anchor:     anchor,
		TargetMidi: to,
		TargetBeat: anchor.Start + beats,
		Mode:       mode,
		Keys:       c.opts.Keys,
	})
	// a keyboard move never loses notes: out-of-key drops and collapsed
	// keys cancel it
	if kept := len(notes.Merge(result)); kept != len(group) {
		edit.Revert()
		debug.Log("edit", "shift would drop %d notes", len(group)-kept)
		return
	}
	c.finishEdit(edit, result)
	c.settle()
}

// fitsRange reports whether every note in ns stays on the grid after
// moving semis semitones
func (c *Controller) fitsRange(ns []notes.Note, semis int) bool {
	for _, n := range ns {
		m, ok := n.Midi()
		if !ok || m+semis < c.cfg.LowestMidi || m+semis > c.cfg.HighestMidi {
			return false
		}
	}
	return true
}

// degreeStep walks steps scale degrees from m
func (c *Controller) degreeStep(m, steps int) (int, bool) {
	scale := pitch.InKeyDescending(c.opts.Keys, c.cfg.LowestMidi, c.cfg.HighestMidi)
	idx := -1
	for i, v := range scale {
		if v == m {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, false
	}
	// descending list: up is a lower index
	idx -= steps
	if idx < 0 || idx >= len(scale) {
		return 0, false
	}
	return scale[idx], true
}

// ToggleHarmonic flips between chromatic and harmonic transposition
func (c *Controller) ToggleHarmonic() {
	if c.opts.Transpose == grid.Harmonic {
		c.opts.Transpose = grid.Chromatic
	} else {
		c.opts.Transpose = grid.Harmonic
	}
	debug.Log("edit", "transpose mode %s", c.opts.Transpose)
}

// Undo steps the attached history back and prunes the selection
func (c *Controller) Undo() {
	if c.history == nil || c.mode.Gesture() {
		return
	}
	if c.history.Undo(c.manager) {
		c.store.Resolve(c.manager)
		c.settle()
	}
}

// Redo steps the attached history forward
func (c *Controller) Redo() {
	if c.history == nil || c.mode.Gesture() {
		return
	}
	if c.history.Redo(c.manager) {
		c.store.Resolve(c.manager)
		c.settle()
	}
}
