package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMidiToName(t *testing.T) {
	tests := []struct {
		midi int
		want string
	}{
		{60, "C4"},
		{61, "C#4"},
		{64, "E4"},
		{0, "C-1"},
		{127, "G9"},
		{69, "A4"},
	}
	for _, tt := range tests {
		got, ok := MidiToName(tt.midi)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got)
	}

	_, ok := MidiToName(-1)
	assert.False(t, ok)
	_, ok = MidiToName(128)
	assert.False(t, ok)
}

func TestNameToMidi(t *testing.T) {
	tests := []struct {
		name string
		want int
		ok   bool
	}{
		{"C4", 60, true},
		{"c4", 60, true},
		{"C#4", 61, true},
		{"Db4", 61, true},
		{"Bb2", 46, true},
		{"C-1", 0, true},
		{"G9", 127, true},
		{"G#9", 0, false},
		{"H4", 0, false},
		{"C", 0, false},
		{"C#", 0, false},
		{"", 0, false},
		{"Cx4", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NameToMidi(tt.name)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNameRoundTrip(t *testing.T) {
	for m := MinMidi; m <= MaxMidi; m++ {
		name, ok := MidiToName(m)
		require.True(t, ok)
		back, ok := NameToMidi(name)
		require.True(t, ok, name)
		assert.Equal(t, m, back, name)
	}
}

func TestNormalize(t *testing.T) {
	got, ok := Normalize("Db4")
	assert.True(t, ok)
	assert.Equal(t, "C#4", got)

	_, ok = Normalize("nope")
	assert.False(t, ok)
}

func TestKeyMembership(t *testing.T) {
	k, err := NewKey("C", ScaleMajor)
	require.NoError(t, err)

	assert.True(t, k.InKey(60))  // C4
	assert.False(t, k.InKey(61)) // C#4
	assert.True(t, k.InKey(71))  // B4
	assert.False(t, k.InKey(-3))

	d, err := NewKey("D", ScaleMajor)
	require.NoError(t, err)
	assert.True(t, d.InKey(66)) // F#4
	assert.False(t, d.InKey(65))

	_, err = NewKey("Q", ScaleMajor)
	assert.Error(t, err)
}

func TestInKeyDescending(t *testing.T) {
	k, err := NewKey("C", ScaleMajor)
	require.NoError(t, err)

	got := InKeyDescending(k, 60, 72)
	assert.Equal(t, []int{72, 71, 69, 67, 65, 64, 62, 60}, got)
}

func TestParseScale(t *testing.T) {
	s, ok := ParseScale("Harmonic-Minor")
	assert.True(t, ok)
	assert.Equal(t, ScaleHarmonicMinor, s)

	_, ok = ParseScale("klingon")
	assert.False(t, ok)

	assert.Len(t, ScaleNames(), int(ScaleCount))
}
