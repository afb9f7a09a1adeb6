package pitch

import (
	"fmt"
	"strings"
)

// ScaleType identifies a scale in the key service
type ScaleType int

const (
	ScaleChromatic ScaleType = iota
	ScaleMajor
	ScaleMinor
	ScalePentatonic
	ScaleDorian
	ScalePhrygian
	ScaleLydian
	ScaleMixolydian
	ScaleLocrian
	ScaleHarmonicMinor
	ScaleMelodicMinor
	ScaleBlues
	ScaleWholeTone
	ScaleCount
)

// Scale intervals from root (semitones, within one octave)
var scales = map[ScaleType][]int{
	ScaleChromatic:     {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	ScaleMajor:         {0, 2, 4, 5, 7, 9, 11},
	ScaleMinor:         {0, 2, 3, 5, 7, 8, 10},
	ScalePentatonic:    {0, 2, 4, 7, 9},
	ScaleDorian:        {0, 2, 3, 5, 7, 9, 10},
	ScalePhrygian:      {0, 1, 3, 5, 7, 8, 10},
	ScaleLydian:        {0, 2, 4, 6, 7, 9, 11},
	ScaleMixolydian:    {0, 2, 4, 5, 7, 9, 10},
	ScaleLocrian:       {0, 1, 3, 5, 6, 8, 10},
	ScaleHarmonicMinor: {0, 2, 3, 5, 7, 8, 11},
	ScaleMelodicMinor:  {0, 2, 3, 5, 7, 9, 11},
	ScaleBlues:         {0, 3, 5, 6, 7, 10},
	ScaleWholeTone:     {0, 2, 4, 6, 8, 10},
}

var scaleNames = map[ScaleType]string{
	ScaleChromatic:     "chromatic",
	ScaleMajor:         "major",
	ScaleMinor:         "minor",
	ScalePentatonic:    "pentatonic",
	ScaleDorian:        "dorian",
	ScalePhrygian:      "phrygian",
	ScaleLydian:        "lydian",
	ScaleMixolydian:    "mixolydian",
	ScaleLocrian:       "locrian",
	ScaleHarmonicMinor: "harmonic-minor",
	ScaleMelodicMinor:  "melodic-minor",
	ScaleBlues:         "blues",
	ScaleWholeTone:     "whole-tone",
}

func (s ScaleType) String() string {
	if name, ok := scaleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("scale(%d)", int(s))
}

// ScaleNames lists every known scale name, in ScaleType order
func ScaleNames() []string {
	names := make([]string, 0, ScaleCount)
	for s := ScaleType(0); s < ScaleCount; s++ {
		names = append(names, s.String())
	}
	return names
}

// ParseScale looks up a scale by name (case-insensitive)
func ParseScale(name string) (ScaleType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range scaleNames {
		if n == name {
			return s, true
		}
	}
	return ScaleChromatic, false
}

// KeyMap answers in-key membership for MIDI pitches
type KeyMap interface {
	InKey(midi int) bool
}

// Key is a root pitch class plus a scale
type Key struct {
	Root  int // pitch class 0-11, 0 = C
	Scale ScaleType

	member [12]bool
}

// NewKey builds a key from a root name ("C", "F#", "Bb") and a scale
func NewKey(root string, scale ScaleType) (*Key, error) {
	m, ok := NameToMidi(root + "4")
	if !ok {
		return nil, fmt.Errorf("invalid key root %q", root)
	}
	intervals, ok := scales[scale]
	if !ok {
		return nil, fmt.Errorf("unknown scale %d", int(scale))
	}

	k := &Key{Root: m % 12, Scale: scale}
	for _, iv := range intervals {
		k.member[(k.Root+iv)%12] = true
	}
	return k, nil
}

// InKey reports whether the pitch class of midi belongs to the key
func (k *Key) InKey(midi int) bool {
	if midi < MinMidi || midi > MaxMidi {
		return false
	}
	return k.member[midi%12]
}

func (k *Key) String() string {
	return fmt.Sprintf("%s %s", noteNames[k.Root], k.Scale)
}

// InKeyDescending lists the in-key MIDI pitches in [lowest, highest],
// highest first (row order)
func InKeyDescending(keys KeyMap, lowest, highest int) []int {
	var out []int
	for m := highest; m >= lowest; m-- {
		if keys.InKey(m) {
			out = append(out, m)
		}
	}
	return out
}
