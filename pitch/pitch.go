package pitch

import (
	"strconv"
	"strings"
)

// MIDI range
const (
	MinMidi = 0
	MaxMidi = 127
)

// Sharp spelling, index = pitch class
var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Semitone offsets from C for natural note letters
var letterOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// MidiToName converts a MIDI number to a sharp-spelled name (60 -> "C4")
func MidiToName(m int) (string, bool) {
	if m < MinMidi || m > MaxMidi {
		return "", false
	}
	return noteNames[m%12] + strconv.Itoa(m/12-1), true
}

// NameToMidi parses names like "C4", "f#3", "Bb2", "C-1".
// Returns false for anything unparseable or outside 0-127.
func NameToMidi(name string) (int, bool) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return 0, false
	}

	offset, ok := letterOffsets[upper(name[0])]
	if !ok {
		return 0, false
	}

	idx := 1
	switch name[idx] {
	case '#':
		offset++
		idx++
	case 'b':
		offset--
		idx++
	}
	if idx >= len(name) {
		return 0, false
	}

	octave, err := strconv.Atoi(name[idx:])
	if err != nil {
		return 0, false
	}

	m := (octave+1)*12 + offset
	if m < MinMidi || m > MaxMidi {
		return 0, false
	}
	return m, true
}

// Normalize re-spells a pitch name canonically ("Db4" -> "C#4")
func Normalize(name string) (string, bool) {
	m, ok := NameToMidi(name)
	if !ok {
		return "", false
	}
	return MidiToName(m)
}

// PitchClass returns the name without octave ("C#4" -> "C#")
func PitchClass(m int) string {
	if m < MinMidi || m > MaxMidi {
		return ""
	}
	return noteNames[m%12]
}

// IsBlackKey reports whether the MIDI pitch is a sharp/flat
func IsBlackKey(m int) bool {
	switch m % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
