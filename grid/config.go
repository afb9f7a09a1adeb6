// Package grid maps between pointer pixels, grid-local pixels, beats and
// pitch rows, and computes note-group transforms. Everything here is pure.
package grid

import (
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"go-pianoroll/pitch"
)

// Config is the static layout of one grid. One cell spans one beat
// horizontally and one semitone vertically.
type Config struct {
	BaseCellWidth     float64 `yaml:"base_cell_width"`     // pixels per beat at zoom 1
	VerticalCellRatio float64 `yaml:"vertical_cell_ratio"` // cell width / cell height
	LowestMidi        int     `yaml:"lowest_midi"`
	HighestMidi       int     `yaml:"highest_midi"`
	LabelWidth        float64 `yaml:"label_width"`   // pitch labels, left inset
	HeaderHeight      float64 `yaml:"header_height"` // seek strip, top inset
	Zoom              float64 `yaml:"zoom"`
	TotalMeasures     int     `yaml:"total_measures"`
	BeatsPerMeasure   int     `yaml:"beats_per_measure"`
}

// DefaultConfig returns a two-octave, eight-measure grid in terminal cells
func DefaultConfig() Config {
	return Config{
		BaseCellWidth:     8,
		VerticalCellRatio: 8,
		LowestMidi:        48, // C3
		HighestMidi:       84, // C6
		LabelWidth:        5,
		HeaderHeight:      1,
		Zoom:              1,
		TotalMeasures:     8,
		BeatsPerMeasure:   4,
	}
}

// Validate checks the layout is usable
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseCellWidth, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&c.VerticalCellRatio, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&c.LowestMidi, validation.Min(pitch.MinMidi), validation.Max(c.HighestMidi)),
		validation.Field(&c.HighestMidi, validation.Max(pitch.MaxMidi)),
		validation.Field(&c.LabelWidth, validation.Min(0.0)),
		validation.Field(&c.HeaderHeight, validation.Min(0.0)),
		validation.Field(&c.Zoom, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&c.TotalMeasures, validation.Required, validation.Min(1)),
		validation.Field(&c.BeatsPerMeasure, validation.Required, validation.Min(1)),
	)
}

// CellWidth is pixels per beat at the current zoom
func (c Config) CellWidth() float64 {
	return c.BaseCellWidth * c.Zoom
}

// CellHeight is pixels per pitch row
func (c Config) CellHeight() float64 {
	return c.CellWidth() / c.VerticalCellRatio
}

// Rows is the number of pitch rows
func (c Config) Rows() int {
	return c.HighestMidi - c.LowestMidi + 1
}

// TotalBeats is the song length in beats
func (c Config) TotalBeats() float64 {
	return float64(c.TotalMeasures * c.BeatsPerMeasure)
}

// ContentWidth is the full scrollable grid width in pixels
func (c Config) ContentWidth() float64 {
	return c.TotalBeats() * c.CellWidth()
}

// ContentHeight is the full scrollable grid height in pixels
func (c Config) ContentHeight() float64 {
	return float64(c.Rows()) * c.CellHeight()
}

// WithZoom returns a copy at a different zoom
func (c Config) WithZoom(zoom float64) Config {
	if zoom > 0 {
		c.Zoom = zoom
	}
	return c
}

// PointerToGrid converts a pointer position on the canvas into grid-local
// (content) pixels. ok is false when the pointer is over the label column,
// the header strip, or past the content.
func (c Config) PointerToGrid(x, y float64, s Scroll) (gx, gy float64, ok bool) {
	if x < c.LabelWidth || y < c.HeaderHeight {
		return 0, 0, false
	}
	gx = x - c.LabelWidth + s.X
	gy = y - c.HeaderHeight + s.Y
	if gx >= c.ContentWidth() || gy >= c.ContentHeight() {
		return 0, 0, false
	}
	return gx, gy, true
}

// GridToPointer is the inverse of PointerToGrid
func (c Config) GridToPointer(gx, gy float64, s Scroll) (x, y float64) {
	return gx + c.LabelWidth - s.X, gy + c.HeaderHeight - s.Y
}

// BeatAt converts a grid-local x to an unsnapped beat
func (c Config) BeatAt(gx float64) float64 {
	return gx / c.CellWidth()
}

// XForBeat converts a beat to grid-local x
func (c Config) XForBeat(beat float64) float64 {
	return beat * c.CellWidth()
}

// RowAt converts a grid-local y to a pitch row; false outside the rows
func (c Config) RowAt(gy float64) (int, bool) {
	if gy < 0 {
		return 0, false
	}
	row := int(math.Floor(gy / c.CellHeight()))
	if row >= c.Rows() {
		return 0, false
	}
	return row, true
}

// YForRow converts a row to grid-local y (top edge)
func (c Config) YForRow(row int) float64 {
	return float64(row) * c.CellHeight()
}

// MidiForRow maps row 0 to HighestMidi, increasing rows going down
func (c Config) MidiForRow(row int) (int, bool) {
	if row < 0 || row >= c.Rows() {
		return 0, false
	}
	return c.HighestMidi - row, true
}

// RowForMidi is the inverse of MidiForRow
func (c Config) RowForMidi(m int) (int, bool) {
	if m < c.LowestMidi || m > c.HighestMidi {
		return 0, false
	}
	return c.HighestMidi - m, true
}

// PitchForRow returns the pitch name on a row
func (c Config) PitchForRow(row int) (string, bool) {
	m, ok := c.MidiForRow(row)
	if !ok {
		return "", false
	}
	return pitch.MidiToName(m)
}

// RowForPitch returns the row of a pitch name
func (c Config) RowForPitch(p string) (int, bool) {
	m, ok := pitch.NameToMidi(p)
	if !ok {
		return 0, false
	}
	return c.RowForMidi(m)
}

// ClampMidi pins m into [LowestMidi, HighestMidi]
func (c Config) ClampMidi(m int) int {
	return max(c.LowestMidi, min(m, c.HighestMidi))
}

// MidiAtY is RowAt + MidiForRow, clamped to the grid's pitch range so a
// drag past the top or bottom keeps tracking the edge row
func (c Config) MidiAtY(gy float64) int {
	row := int(math.Floor(gy / c.CellHeight()))
	return c.ClampMidi(c.HighestMidi - row)
}
