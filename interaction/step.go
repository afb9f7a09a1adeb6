package interaction

import (
	"go-pianoroll/debug"
	"go-pianoroll/notes"
)

// StepInput places a one-step note for a played key at the cursor beat.
// Keys played together stack into a chord until AdvanceCursor.
func (c *Controller) StepInput(midi, velocity int) bool {
	cur := c.store.Cursor
	if c.mode.Gesture() || cur == nil {
		return false
	}
	if _, ok := c.cfg.RowForMidi(midi); !ok {
		return false
	}
	name, ok := c.pitchOf(midi)
	if !ok {
		return false
	}
	total := c.cfg.TotalBeats()
	if cur.Beat >= total {
		return false
	}
	if _, taken := c.manager.FindAtPosition(name, cur.Beat); taken {
		return false
	}

	n := notes.Note{Pitch: name, Start: cur.Beat, Duration: min(c.step(), total-cur.Beat), Velocity: velocity}
	added := c.manager.AddAll([]notes.Note{n})
	if len(added) == 0 {
		return false
	}
	c.record(Diff{Added: added})
	debug.Log("edit", "step input %s", added[0].Key())
	c.RequestRedraw()
	return true
}

// AdvanceCursor moves the cursor one snap step later
func (c *Controller) AdvanceCursor() {
	cur := c.store.Cursor
	if cur == nil {
		return
	}
	next := c.opts.Snap.Beat(cur.Beat + c.step())
	if next >= c.cfg.TotalBeats() {
		return
	}
	cur.Beat = next
	c.RequestRedraw()
}

// step is the snap step, or one beat when snapping is off
func (c *Controller) step() float64 {
	if s := c.opts.Snap.Step(); s > 0 {
		return s
	}
	return 1
}
