package interaction

import "go-pianoroll/notes"

// PendingEdit is an in-flight gesture on a group of notes. Begin takes the
// notes out of the manager; exactly one of Commit or Revert puts notes back.
// While pending, each affected note lives only in the preview buffer.
type PendingEdit struct {
	manager   *notes.Manager
	originals []notes.Note
	added     []notes.Note
	settled   bool
}

// BeginEdit removes group from the manager and captures the stored versions.
// Notes no longer in the manager are skipped; false if none were found.
func BeginEdit(m *notes.Manager, group []notes.Note) (*PendingEdit, bool) {
	originals := m.RemoveAll(group)
	if len(originals) == 0 {
		return nil, false
	}
	return &PendingEdit{manager: m, originals: originals}, true
}

// Originals returns a copy of the notes as they were before the gesture
func (e *PendingEdit) Originals() []notes.Note {
	return append([]notes.Note(nil), e.originals...)
}

// Added returns the notes stored by Commit
func (e *PendingEdit) Added() []notes.Note {
	return append([]notes.Note(nil), e.added...)
}

// Settled reports whether Commit or Revert has run
func (e *PendingEdit) Settled() bool {
	return e.settled
}

// Revert puts the original notes back. No-op once settled.
func (e *PendingEdit) Revert() {
	if e.settled {
		return
	}
	e.settled = true
	e.manager.AddAll(e.originals)
}

// Commit stores result in place of the originals. Notes already in the
// manager at a result key are displaced and reported as removed, so the
// reverse diff restores them. No-op once settled.
func (e *PendingEdit) Commit(result []notes.Note) (forward, reverse Diff) {
	if e.settled {
		return Diff{}, Diff{}
	}
	e.settled = true

	result = dedupe(result)
	var displaced []notes.Note
	for _, n := range result {
		if existing, ok := e.manager.FindAtPosition(n.Pitch, n.Start); ok {
			displaced = append(displaced, existing)
		}
	}
	displaced = e.manager.RemoveAll(displaced)
	e.added = e.manager.AddAll(result)

	removed := append(e.Originals(), displaced...)
	forward = Diff{Removed: removed, Added: e.Added()}
	return forward, forward.Invert()
}

// dedupe keeps the first note per key
func dedupe(ns []notes.Note) []notes.Note {
	return notes.Merge(ns)
}
