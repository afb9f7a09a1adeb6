package notes

import (
	"sort"

	"go-pianoroll/debug"
	"go-pianoroll/pitch"
)

// DefaultEdgeThreshold is the trailing fraction of a note that counts as its
// resize edge
const DefaultEdgeThreshold = 0.25

// Auditioner plays a short preview of a note (external instrument)
type Auditioner interface {
	PlayNote(midi int, beats float64, velocity int, loop bool)
}

// Manager owns one track's notes plus two lookup indexes: exact
// "pitch:start" and per-pitch buckets. Both indexes always mirror notes.
type Manager struct {
	notes   []Note
	byKey   map[string]Note
	byPitch map[string][]Note

	audio Auditioner
}

// NewManager creates an empty manager
func NewManager() *Manager {
	return &Manager{
		byKey:   make(map[string]Note),
		byPitch: make(map[string][]Note),
	}
}

// SetAuditioner attaches the preview instrument (nil disables previews)
func (m *Manager) SetAuditioner(a Auditioner) {
	m.audio = a
}

// Set replaces every note and rebuilds both indexes
func (m *Manager) Set(ns []Note) {
	m.notes = append(make([]Note, 0, len(ns)), ns...)
	m.RebuildIndex()
}

// RebuildIndex recomputes both indexes from the note slice. Must be called
// after mutating the slice returned by Notes(); add/remove keep the
// indexes current on their own.
func (m *Manager) RebuildIndex() {
	m.byKey = make(map[string]Note, len(m.notes))
	m.byPitch = make(map[string][]Note)

	kept := m.notes[:0]
	for _, raw := range m.notes {
		n, ok := sanitize(raw)
		if !ok {
			debug.Log("notes", "rebuild: dropping invalid note %+v", raw)
			continue
		}
		if _, dup := m.byKey[n.Key()]; dup {
			debug.Log("notes", "rebuild: dropping duplicate %s", n.Key())
			continue
		}
		kept = append(kept, n)
		m.byKey[n.Key()] = n
		m.byPitch[n.Pitch] = append(m.byPitch[n.Pitch], n)
	}
	m.notes = kept
}

// Add inserts a note. Returns false (and changes nothing) if the note is
// invalid or another note already holds its key.
func (m *Manager) Add(n Note) bool {
	n, ok := sanitize(n)
	if !ok {
		return false
	}
	key := n.Key()
	if _, exists := m.byKey[key]; exists {
		return false
	}
	m.notes = append(m.notes, n)
	m.byKey[key] = n
	m.byPitch[n.Pitch] = append(m.byPitch[n.Pitch], n)
	return true
}

// AddAll adds each note, returning the ones actually stored
func (m *Manager) AddAll(ns []Note) []Note {
	var added []Note
	for _, n := range ns {
		if m.Add(n) {
			added = append(added, m.byKey[mustKey(n)])
		}
	}
	return added
}

// Remove deletes the note with n's key. Returns false if absent.
func (m *Manager) Remove(n Note) bool {
	key := mustKey(n)
	stored, ok := m.byKey[key]
	if !ok {
		return false
	}
	delete(m.byKey, key)

	bucket := m.byPitch[stored.Pitch]
	for i := range bucket {
		if bucket[i].Key() == key {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(m.byPitch, stored.Pitch)
	} else {
		m.byPitch[stored.Pitch] = bucket
	}

	for i := range m.notes {
		if m.notes[i].Key() == key {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			break
		}
	}
	return true
}

// RemoveAll removes each note, returning the stored versions that were removed
func (m *Manager) RemoveAll(ns []Note) []Note {
	var removed []Note
	for _, n := range ns {
		if stored, ok := m.byKey[mustKey(n)]; ok && m.Remove(stored) {
			removed = append(removed, stored)
		}
	}
	return removed
}

// All returns a copy of every note, in insertion order
func (m *Manager) All() []Note {
	return append([]Note(nil), m.notes...)
}

// Notes exposes the backing slice for bulk edits. Call RebuildIndex after
// changing it.
func (m *Manager) Notes() *[]Note {
	return &m.notes
}

// Len returns the number of notes
func (m *Manager) Len() int {
	return len(m.notes)
}

// FindAtPosition is the exact O(1) lookup by pitch and start
func (m *Manager) FindAtPosition(p string, start float64) (Note, bool) {
	if np, ok := pitch.Normalize(p); ok {
		p = np
	}
	n, ok := m.byKey[KeyOf(p, start)]
	return n, ok
}

// FindByKey looks up a note by its identity key
func (m *Manager) FindByKey(key string) (Note, bool) {
	n, ok := m.byKey[key]
	return n, ok
}

// FindNoteUnderCursor returns the note at pitch whose [start, end) holds beat.
// When notes overlap the latest-starting one wins.
func (m *Manager) FindNoteUnderCursor(p string, beat float64) (Note, bool) {
	var best Note
	found := false
	for _, n := range m.bucket(p) {
		if n.Contains(beat) && (!found || n.Start > best.Start) {
			best, found = n, true
		}
	}
	return best, found
}

// FindNoteEdgeAtCursor returns a note whose trailing threshold fraction
// holds beat. threshold <= 0 means DefaultEdgeThreshold.
func (m *Manager) FindNoteEdgeAtCursor(p string, beat, threshold float64) (Note, bool) {
	if threshold <= 0 {
		threshold = DefaultEdgeThreshold
	}
	for _, n := range m.bucket(p) {
		edge := n.End() - n.Duration*threshold
		if n.Contains(beat) && beat >= edge {
			return n, true
		}
	}
	return Note{}, false
}

// NotesInRange returns notes overlapping [start, end), sorted by start
func (m *Manager) NotesInRange(start, end float64) []Note {
	var out []Note
	for _, n := range m.notes {
		if n.Start < end && n.End() > start {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// MergeSelections unions a and b by key, keeping first-seen order
func (m *Manager) MergeSelections(a, b []Note) []Note {
	return Merge(a, b)
}

// Merge unions note lists by key, keeping first-seen order
func Merge(lists ...[]Note) []Note {
	seen := make(map[string]bool)
	var out []Note
	for _, list := range lists {
		for _, n := range list {
			key := n.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, n)
		}
	}
	return out
}

// PreviewNote auditions a pitch through the attached instrument.
// Fire-and-forget; unknown pitches and a missing instrument are ignored.
func (m *Manager) PreviewNote(p string, beats float64, velocity int, loop bool) {
	if m.audio == nil {
		return
	}
	midi, ok := pitch.NameToMidi(p)
	if !ok {
		return
	}
	if velocity <= 0 {
		velocity = DefaultVelocity
	}
	m.audio.PlayNote(midi, beats, velocity, loop)
}

func (m *Manager) bucket(p string) []Note {
	if np, ok := pitch.Normalize(p); ok {
		p = np
	}
	return m.byPitch[p]
}

// mustKey returns the key a note would be stored under
func mustKey(n Note) string {
	if np, ok := pitch.Normalize(n.Pitch); ok {
		return KeyOf(np, n.Start)
	}
	return n.Key()
}
