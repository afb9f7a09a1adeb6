package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pianoroll/notes"
	"go-pianoroll/pitch"
)

// whiteKeys is a key map holding only the natural pitch classes
type whiteKeys struct{}

func (whiteKeys) InKey(m int) bool { return !pitch.IsBlackKey(m) }

func TestDragTransformChromatic(t *testing.T) {
	c := testConfig()
	group := []notes.Note{nt("C4", 1, 1), nt("E4", 2, 1)}

	got := c.DragTransform(DragInput{
		Originals:  group,
		Anchor:     group[0],
		TargetMidi: 62, // D4
		TargetBeat: 3,
	})
	assert.Equal(t, []notes.Note{nt("D4", 3, 1), nt("F#4", 4, 1)}, got)
}

func TestDragTransformRoundTrip(t *testing.T) {
	c := testConfig()
	group := []notes.Note{nt("C4", 1, 1), nt("E4", 2.5, 0.5), nt("G4", 0.25, 2)}
	anchor := group[0]

	moved := c.DragTransform(DragInput{Originals: group, Anchor: anchor, TargetMidi: 62, TargetBeat: 7})
	require.Len(t, moved, 3)

	back := c.DragTransform(DragInput{Originals: moved, Anchor: moved[0], TargetMidi: 60, TargetBeat: 1})
	assert.True(t, notes.Equal(group, back), "%v != %v", group, back)
}

func TestDragTransformClampsGroupUniformly(t *testing.T) {
	c := testConfig() // 16 beats
	group := []notes.Note{nt("C4", 2, 1), nt("D4", 4, 2)}

	left := c.DragTransform(DragInput{Originals: group, Anchor: group[1], TargetMidi: 62, TargetBeat: 0})
	assert.Equal(t, []notes.Note{nt("C4", 0, 1), nt("D4", 2, 2)}, left, "spacing kept when hitting 0")

	right := c.DragTransform(DragInput{Originals: group, Anchor: group[0], TargetMidi: 60, TargetBeat: 20})
	assert.Equal(t, []notes.Note{nt("C4", 12, 1), nt("D4", 14, 2)}, right, "last note ends at the song end")
}

func TestDragTransformChromaticClamp(t *testing.T) {
	c := testConfig() // C3..C5
	group := []notes.Note{nt("A4", 0, 1), nt("C4", 0, 1)}

	got := c.DragTransform(DragInput{Originals: group, Anchor: group[1], TargetMidi: 66, TargetBeat: 0})
	require.Len(t, got, 2, "clamped, never dropped")
	assert.Equal(t, "C5", got[0].Pitch, "A4+6 clamps to highest")
	assert.Equal(t, "F#4", got[1].Pitch)
}

func TestDragTransformHarmonic(t *testing.T) {
	c := testConfig()
	group := []notes.Note{nt("C4", 0, 1), nt("E4", 0, 1)}

	got := c.DragTransform(DragInput{
		Originals:  group,
		Anchor:     group[0],
		TargetMidi: 62, // D4: one scale degree up
		TargetBeat: 0,
		Mode:       Harmonic,
		Keys:       whiteKeys{},
	})
	assert.Equal(t, []notes.Note{nt("D4", 0, 1), nt("F4", 0, 1)}, got, "E4 moves a degree to F4, not a tone")
}

func TestDragTransformHarmonicDropsOutOfKey(t *testing.T) {
	c := testConfig()
	sharp := []notes.Note{nt("C#4", 0, 1)}

	got := c.DragTransform(DragInput{
		Originals:  sharp,
		Anchor:     sharp[0],
		TargetMidi: 64,
		TargetBeat: 1,
		Mode:       Harmonic,
		Keys:       whiteKeys{},
	})
	assert.Empty(t, got)

	mixed := []notes.Note{nt("C#4", 0, 1), nt("D4", 0, 1)}
	got = c.DragTransform(DragInput{
		Originals:  mixed,
		Anchor:     mixed[0],
		TargetMidi: 62, // C#4 takes C4's slot, so D4 is one degree up
		TargetBeat: 0,
		Mode:       Harmonic,
		Keys:       whiteKeys{},
	})
	assert.Equal(t, []notes.Note{nt("E4", 0, 1)}, got)
}

func TestDragTransformHarmonicOverflowDrops(t *testing.T) {
	c := testConfig() // top in-key pitch is C5
	group := []notes.Note{nt("A4", 0, 1), nt("C4", 0, 1)}

	got := c.DragTransform(DragInput{
		Originals:  group,
		Anchor:     group[1],
		TargetMidi: 67, // G4: four degrees up
		TargetBeat: 0,
		Mode:       Harmonic,
		Keys:       whiteKeys{},
	})
	assert.Equal(t, []notes.Note{nt("G4", 0, 1)}, got, "A4 + 4 degrees runs off the grid")
}

func TestDragTransformBadAnchor(t *testing.T) {
	c := testConfig()
	got := c.DragTransform(DragInput{Originals: []notes.Note{nt("C4", 0, 1)}, Anchor: nt("??", 0, 1)})
	assert.Nil(t, got)
}

func TestPasteTransform(t *testing.T) {
	c := testConfig()
	clip := []notes.Note{nt("E4", 2, 1), nt("C4", 1, 1), nt("G4", 1, 1)}

	assert.Equal(t, nt("G4", 1, 1), PasteAnchor(clip))

	got := c.PasteTransform(clip, 72, 8, Chromatic, nil)
	assert.Equal(t, []notes.Note{nt("A4", 9, 1), nt("F4", 8, 1), nt("C5", 8, 1)}, got)

	assert.Nil(t, c.PasteTransform(nil, 60, 0, Chromatic, nil))
}

func TestResizeTransform(t *testing.T) {
	c := testConfig() // 40px per beat
	s := Snap{Resolution: 0.25}
	group := []notes.Note{nt("C4", 0, 1), nt("D4", 14, 1)}

	got := c.ResizeTransform(group, 45, s) // 1.125 beats snaps to 1.25
	assert.Equal(t, 2.25, got[0].Duration)
	assert.Equal(t, 2.0, got[1].Duration, "clamped to the song end")
	assert.Equal(t, 0.0, got[0].Start, "only duration changes")

	shrunk := c.ResizeTransform(group, -400, s)
	assert.Equal(t, 0.25, shrunk[0].Duration, "never below one step")
	assert.Equal(t, 0.25, shrunk[1].Duration)

	none := c.ResizeTransform(group, 3, s)
	assert.True(t, notes.Equal(group, none))
}
