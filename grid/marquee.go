package grid

import (
	"math"

	"go-pianoroll/notes"
)

// Box is a marquee rectangle in grid-local pixels. Start is where the drag
// began, Current follows the pointer; either corner may be the larger one.
type Box struct {
	StartX, StartY     float64
	CurrentX, CurrentY float64
}

// Normalized returns (minX, minY, maxX, maxY)
func (b Box) Normalized() (minX, minY, maxX, maxY float64) {
	return math.Min(b.StartX, b.CurrentX), math.Min(b.StartY, b.CurrentY),
		math.Max(b.StartX, b.CurrentX), math.Max(b.StartY, b.CurrentY)
}

// Bounds is a marquee resolved to beats and rows: [StartBeat, EndBeat),
// [TopRow, BottomRow]
type Bounds struct {
	StartBeat, EndBeat float64
	TopRow, BottomRow  int
}

// MarqueeBounds resolves a box through the same snapping and row mapping
// used for notes. The right edge is biased by half a cell before snapping,
// so the cell under the trailing pointer counts as covered.
func (c Config) MarqueeBounds(b Box, s Snap) Bounds {
	minX, minY, maxX, maxY := b.Normalized()
	cw := c.CellWidth()
	ch := c.CellHeight()

	return Bounds{
		StartBeat: s.Beat(minX / cw),
		EndBeat:   s.Beat((maxX + cw/2) / cw),
		TopRow:    int(math.Floor(minY / ch)),
		BottomRow: int(math.Floor(maxY / ch)),
	}
}

// Contains reports strict containment: the note's row is in range and the
// whole note lies inside [StartBeat, EndBeat). A note that starts inside but
// runs past the end is not contained.
func (bd Bounds) Contains(n notes.Note, c Config) bool {
	row, ok := c.RowForPitch(n.Pitch)
	if !ok || row < bd.TopRow || row > bd.BottomRow {
		return false
	}
	return n.Start >= bd.StartBeat && n.End() <= bd.EndBeat
}

// NotesInMarquee returns the notes strictly inside the box, in input order
func (c Config) NotesInMarquee(ns []notes.Note, b Box, s Snap) []notes.Note {
	bd := c.MarqueeBounds(b, s)
	var out []notes.Note
	for _, n := range ns {
		if bd.Contains(n, c) {
			out = append(out, n)
		}
	}
	return out
}

// VisibleNotes filters notes to those intersecting the viewport. viewportW
// and viewportH include the label and header insets.
func (c Config) VisibleNotes(ns []notes.Note, s Scroll, viewportW, viewportH float64) []notes.Note {
	firstBeat := c.BeatAt(s.X)
	lastBeat := c.BeatAt(s.X + gridSpan(viewportW, c.LabelWidth))
	topRow := int(math.Floor(s.Y / c.CellHeight()))
	bottomRow := int(math.Floor((s.Y + gridSpan(viewportH, c.HeaderHeight)) / c.CellHeight()))

	var out []notes.Note
	for _, n := range ns {
		row, ok := c.RowForPitch(n.Pitch)
		if !ok || row < topRow || row > bottomRow {
			continue
		}
		if n.End() <= firstBeat || n.Start >= lastBeat {
			continue
		}
		out = append(out, n)
	}
	return out
}
