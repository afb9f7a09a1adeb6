package interaction

import "go-pianoroll/notes"

// Diff is a plain-data edit: notes removed, then notes added
type Diff struct {
	Removed []notes.Note `json:"removed,omitempty"`
	Added   []notes.Note `json:"added,omitempty"`
}

// Empty reports whether the diff changes nothing
func (d Diff) Empty() bool {
	return len(d.Removed) == 0 && len(d.Added) == 0
}

// Invert swaps removed and added
func (d Diff) Invert() Diff {
	return Diff{Removed: d.Added, Added: d.Removed}
}

// Apply removes then adds through the manager so both indexes stay current
func (d Diff) Apply(m *notes.Manager) {
	m.RemoveAll(d.Removed)
	m.AddAll(d.Added)
}

// Recorder receives (forward, reverse) pairs for every committed edit
type Recorder interface {
	RecordDiff(forward, reverse Diff)
}

// History steps an undo log against a manager. Both return false when
// there is nothing to undo/redo.
type History interface {
	Undo(m *notes.Manager) bool
	Redo(m *notes.Manager) bool
}
