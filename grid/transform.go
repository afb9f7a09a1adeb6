package grid

import (
	"math"
	"sort"

	"go-pianoroll/debug"
	"go-pianoroll/notes"
	"go-pianoroll/pitch"
)

// TransposeMode selects how pitch deltas are applied to a note group
type TransposeMode int

const (
	// Chromatic shifts by semitones, clamping each note into the grid
	Chromatic TransposeMode = iota
	// Harmonic shifts by scale degree within a key; out-of-key notes drop
	Harmonic
)

func (m TransposeMode) String() string {
	if m == Harmonic {
		return "harmonic"
	}
	return "chromatic"
}

// DragInput describes a group move
type DragInput struct {
	Originals  []notes.Note
	Anchor     notes.Note
	TargetMidi int
	TargetBeat float64
	Mode       TransposeMode
	Keys       pitch.KeyMap // required for Harmonic
}

// DragTransform moves a group so the anchor lands on (TargetMidi,
// TargetBeat). The time delta is clamped for the group as a whole so
// spacing is preserved.
func (c Config) DragTransform(in DragInput) []notes.Note {
	anchorMidi, ok := in.Anchor.Midi()
	if !ok || len(in.Originals) == 0 {
		return nil
	}
	delta := c.clampGroupDelta(in.Originals, in.TargetBeat-in.Anchor.Start)

	if in.Mode == Harmonic && in.Keys != nil {
		return c.harmonicShift(in.Originals, anchorMidi, in.TargetMidi, delta, in.Keys)
	}
	return c.chromaticShift(in.Originals, in.TargetMidi-anchorMidi, delta)
}

// PasteTransform places clipboard notes so the earliest one (lowest pitch
// breaks ties) lands on the target
func (c Config) PasteTransform(clip []notes.Note, targetMidi int, targetBeat float64, mode TransposeMode, keys pitch.KeyMap) []notes.Note {
	if len(clip) == 0 {
		return nil
	}
	return c.DragTransform(DragInput{
		Originals:  clip,
		Anchor:     PasteAnchor(clip),
		TargetMidi: targetMidi,
		TargetBeat: targetBeat,
		Mode:       mode,
		Keys:       keys,
	})
}

// PasteAnchor picks the reference note for a paste: earliest start, then
// highest pitch
func PasteAnchor(clip []notes.Note) notes.Note {
	sorted := append([]notes.Note(nil), clip...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		mi, _ := sorted[i].Midi()
		mj, _ := sorted[j].Midi()
		return mi > mj
	})
	return sorted[0]
}

// ResizeTransform changes only durations. deltaPx is the cumulative pointer
// travel since the gesture began; the beat delta is snapped and every
// result is at least one snap step long and ends inside the song.
func (c Config) ResizeTransform(originals []notes.Note, deltaPx float64, s Snap) []notes.Note {
	deltaBeats := s.Beat(deltaPx / c.CellWidth())
	minDur := s.Step()
	if minDur == 0 {
		minDur = 1e-3
	}

	out := make([]notes.Note, 0, len(originals))
	for _, n := range originals {
		dur := n.Duration + deltaBeats
		dur = math.Min(dur, c.TotalBeats()-n.Start)
		dur = math.Max(dur, minDur)
		n.Duration = tidy(dur)
		out = append(out, n)
	}
	return out
}

// clampGroupDelta limits a time delta so no note starts before 0 or ends
// after the song
func (c Config) clampGroupDelta(ns []notes.Note, delta float64) float64 {
	minStart := math.Inf(1)
	maxEnd := math.Inf(-1)
	for _, n := range ns {
		minStart = math.Min(minStart, n.Start)
		maxEnd = math.Max(maxEnd, n.End())
	}
	if maxEnd+delta > c.TotalBeats() {
		delta = c.TotalBeats() - maxEnd
	}
	if minStart+delta < 0 {
		delta = -minStart
	}
	return delta
}

func (c Config) chromaticShift(ns []notes.Note, semis int, delta float64) []notes.Note {
	out := make([]notes.Note, 0, len(ns))
	for _, n := range ns {
		m, ok := n.Midi()
		if !ok {
			debug.Log("grid", "chromatic: skipping unparseable pitch %q", n.Pitch)
			continue
		}
		name, _ := pitch.MidiToName(c.ClampMidi(m + semis))
		n.Pitch = name
		n.Start = tidy(n.Start + delta)
		out = append(out, n)
	}
	return out
}

func (c Config) harmonicShift(ns []notes.Note, anchorMidi, targetMidi int, delta float64, keys pitch.KeyMap) []notes.Note {
	scale := pitch.InKeyDescending(keys, c.LowestMidi, c.HighestMidi)
	if len(scale) == 0 {
		return nil
	}
	steps := degreeIndex(scale, targetMidi) - degreeIndex(scale, anchorMidi)

	out := make([]notes.Note, 0, len(ns))
	for _, n := range ns {
		m, ok := n.Midi()
		if !ok || !keys.InKey(m) {
			continue
		}
		idx := degreeIndex(scale, m)
		if idx >= len(scale) || scale[idx] != m {
			continue // outside the grid's pitch range
		}
		idx += steps
		if idx < 0 || idx >= len(scale) {
			continue
		}
		name, _ := pitch.MidiToName(scale[idx])
		n.Pitch = name
		n.Start = tidy(n.Start + delta)
		out = append(out, n)
	}
	return out
}

// degreeIndex finds m in a descending in-key list. Pitches not in the list
// get their insertion index: the count of in-key pitches above them.
func degreeIndex(scale []int, m int) int {
	return sort.Search(len(scale), func(i int) bool { return scale[i] <= m })
}
