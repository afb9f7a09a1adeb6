// Package history keeps the undo/redo log for note edits. Entries are the
// (forward, reverse) diff pairs the interaction controller records.
package history

import (
	"sync"

	"go-pianoroll/debug"
	"go-pianoroll/interaction"
	"go-pianoroll/notes"
)

// DefaultLimit is how many edits are kept before the oldest drops off
const DefaultLimit = 256

type entry struct {
	forward, reverse interaction.Diff
}

// Log is a bounded undo/redo stack
type Log struct {
	mu    sync.Mutex
	limit int
	undo  []entry
	redo  []entry
}

// New creates a log keeping at most limit edits; limit <= 0 means DefaultLimit
func New(limit int) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Log{limit: limit}
}

// RecordDiff pushes an edit and clears the redo stack
func (l *Log) RecordDiff(forward, reverse interaction.Diff) {
	if forward.Empty() && reverse.Empty() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.undo = append(l.undo, entry{forward: forward, reverse: reverse})
	if len(l.undo) > l.limit {
		l.undo = l.undo[len(l.undo)-l.limit:]
	}
	l.redo = nil
	debug.Log("edit", "history: recorded -%d +%d (%d undoable)", len(forward.Removed), len(forward.Added), len(l.undo))
}

// Undo applies the newest reverse diff to m
func (l *Log) Undo(m *notes.Manager) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.undo) == 0 {
		return false
	}
	e := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	e.reverse.Apply(m)
	l.redo = append(l.redo, e)
	debug.Log("edit", "history: undo (%d left)", len(l.undo))
	return true
}

// Redo re-applies the newest undone forward diff to m
func (l *Log) Redo(m *notes.Manager) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.redo) == 0 {
		return false
	}
	e := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	e.forward.Apply(m)
	l.undo = append(l.undo, e)
	debug.Log("edit", "history: redo (%d left)", len(l.redo))
	return true
}

// CanUndo reports whether Undo would do anything
func (l *Log) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undo) > 0
}

// CanRedo reports whether Redo would do anything
func (l *Log) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.redo) > 0
}

// Clear drops both stacks
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.undo, l.redo = nil, nil
}
