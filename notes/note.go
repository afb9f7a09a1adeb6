package notes

import (
	"strconv"

	"go-pianoroll/pitch"
)

// Velocity bounds
const (
	DefaultVelocity = 100
	MinVelocity     = 1
	MaxVelocity     = 127
)

// Note is a single placed note. Treat as a value: copy, don't share.
type Note struct {
	Pitch    string  `json:"pitch"`    // pitch class + octave, e.g. "C4"
	Start    float64 `json:"start"`    // beats, >= 0
	Duration float64 `json:"duration"` // beats, > 0
	Velocity int     `json:"velocity"` // 1-127
}

// Key returns the identity key "pitch:start"
func (n Note) Key() string {
	return KeyOf(n.Pitch, n.Start)
}

// KeyOf builds an identity key without a Note value
func KeyOf(p string, start float64) string {
	return p + ":" + strconv.FormatFloat(start, 'g', -1, 64)
}

// End returns Start + Duration
func (n Note) End() float64 {
	return n.Start + n.Duration
}

// Midi returns the MIDI number for the note's pitch
func (n Note) Midi() (int, bool) {
	return pitch.NameToMidi(n.Pitch)
}

// Contains reports whether beat falls in [Start, End)
func (n Note) Contains(beat float64) bool {
	return beat >= n.Start && beat < n.End()
}

// sanitize normalizes the pitch spelling and velocity; false if the note
// can't be stored
func sanitize(n Note) (Note, bool) {
	p, ok := pitch.Normalize(n.Pitch)
	if !ok || n.Start < 0 || n.Duration <= 0 {
		return Note{}, false
	}
	n.Pitch = p
	switch {
	case n.Velocity == 0:
		n.Velocity = DefaultVelocity
	case n.Velocity < MinVelocity:
		n.Velocity = MinVelocity
	case n.Velocity > MaxVelocity:
		n.Velocity = MaxVelocity
	}
	return n, true
}

// Equal compares two note sets by value, ignoring order
func Equal(a, b []Note) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[Note]int, len(a))
	for _, n := range a {
		counts[n]++
	}
	for _, n := range b {
		if counts[n] == 0 {
			return false
		}
		counts[n]--
	}
	return true
}

// Keys returns the identity keys of notes, in order
func Keys(ns []Note) []string {
	keys := make([]string, len(ns))
	for i, n := range ns {
		keys[i] = n.Key()
	}
	return keys
}
