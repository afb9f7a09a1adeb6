package interaction

import (
	"go-pianoroll/grid"
	"go-pianoroll/notes"
)

// GridPosition is a snapped pointer location on the grid
type GridPosition struct {
	Beat  float64
	Midi  int
	Pitch string
}

// Press is where the current button press started
type Press struct {
	X, Y   float64 // canvas pixels
	GX, GY float64 // grid-local pixels
	Beat   float64 // unsnapped
	Midi   int
}

// Store is the transient interaction state shared by the mode handlers and
// read by the renderer
type Store struct {
	selected []notes.Note

	// Highlighted are notes inside the live marquee
	Highlighted []notes.Note
	// Preview holds notes that are out of the manager during a gesture
	Preview []notes.Note
	Marquee *grid.Box

	// HoveredKey is the note under the pointer, also the resize anchor
	HoveredKey string
	// DragAnchorKey is the note grabbed to start a move
	DragAnchorKey string

	Cursor    *GridPosition
	Press     *Press
	Clipboard []notes.Note
}

// Selected returns a copy of the selection in selection order
func (s *Store) Selected() []notes.Note {
	return append([]notes.Note(nil), s.selected...)
}

// HasSelection reports whether any note is selected
func (s *Store) HasSelection() bool {
	return len(s.selected) > 0
}

// IsSelected reports whether a note with key is selected
func (s *Store) IsSelected(key string) bool {
	for _, n := range s.selected {
		if n.Key() == key {
			return true
		}
	}
	return false
}

// SetSelection replaces the selection; duplicate keys collapse
func (s *Store) SetSelection(ns []notes.Note) {
	s.selected = notes.Merge(ns)
}

// ClearSelection empties the selection
func (s *Store) ClearSelection() {
	s.selected = nil
}

// Toggle adds n to the selection, or removes it if present
func (s *Store) Toggle(n notes.Note) {
	if s.IsSelected(n.Key()) {
		s.Deselect([]notes.Note{n})
		return
	}
	s.selected = append(s.selected, n)
}

// Deselect drops the given notes from the selection
func (s *Store) Deselect(ns []notes.Note) {
	if len(ns) == 0 || len(s.selected) == 0 {
		return
	}
	drop := make(map[string]bool, len(ns))
	for _, n := range ns {
		drop[n.Key()] = true
	}
	kept := s.selected[:0]
	for _, n := range s.selected {
		if !drop[n.Key()] {
			kept = append(kept, n)
		}
	}
	s.selected = kept
}

// Resolve re-reads the selection from m, dropping notes it no longer holds
func (s *Store) Resolve(m *notes.Manager) {
	kept := s.selected[:0]
	for _, n := range s.selected {
		if stored, ok := m.FindByKey(n.Key()); ok {
			kept = append(kept, stored)
		}
	}
	s.selected = kept
}

// isHighlighted reports whether key is inside the live marquee
func (s *Store) isHighlighted(key string) bool {
	for _, n := range s.Highlighted {
		if n.Key() == key {
			return true
		}
	}
	return false
}

// NoteState is how the renderer should draw a stored note
type NoteState int

const (
	NoteIdle NoteState = iota
	NoteHovered
	NoteHighlighted
	NoteSelected
)

// StateOf classifies a stored note for drawing
func (s *Store) StateOf(n notes.Note) NoteState {
	key := n.Key()
	switch {
	case s.IsSelected(key):
		return NoteSelected
	case s.isHighlighted(key):
		return NoteHighlighted
	case s.HoveredKey == key:
		return NoteHovered
	}
	return NoteIdle
}
