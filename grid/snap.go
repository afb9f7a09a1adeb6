package grid

import "math"

// tripletScale turns a straight subdivision into its triplet equivalent
const tripletScale = 2.0 / 3.0

// Snap is the beat quantization in effect
type Snap struct {
	Resolution float64 // beats, e.g. 0.25 for sixteenths
	Triplet    bool
}

// Step is the effective snap step in beats
func (s Snap) Step() float64 {
	if s.Resolution <= 0 {
		return 0
	}
	if s.Triplet {
		return s.Resolution * tripletScale
	}
	return s.Resolution
}

// Beat rounds to the nearest step. A non-positive resolution disables snapping.
func (s Snap) Beat(beat float64) float64 {
	step := s.Step()
	if step == 0 {
		return beat
	}
	return tidy(math.Round(beat/step) * step)
}

// Floor snaps down to the step containing beat (the cell under the pointer)
func (s Snap) Floor(beat float64) float64 {
	step := s.Step()
	if step == 0 {
		return beat
	}
	// Nudge so float noise just under a step boundary floors into that step
	return tidy(math.Floor(beat/step+1e-6) * step)
}

// tidy drops float noise below 1e-9 so snapped values compare and key cleanly
func tidy(v float64) float64 {
	r := math.Round(v*1e9) / 1e9
	if r == 0 {
		return 0 // no -0
	}
	return r
}

// Resolutions are the snap choices offered by the editor, coarse to fine
var Resolutions = []float64{4, 2, 1, 0.5, 0.25, 0.125, 0.0625}

// FormatResolution renders a resolution as a note fraction ("1/16")
func FormatResolution(r float64) string {
	switch r {
	case 4:
		return "1/1"
	case 2:
		return "1/2"
	case 1:
		return "1/4"
	case 0.5:
		return "1/8"
	case 0.25:
		return "1/16"
	case 0.125:
		return "1/32"
	case 0.0625:
		return "1/64"
	}
	return "free"
}
