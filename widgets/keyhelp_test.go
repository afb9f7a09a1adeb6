package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionFromBindings(t *testing.T) {
	play := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause"))
	hidden := key.NewBinding(key.WithKeys("x"))
	off := key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "nope"), key.WithDisabled())

	sec := Section("Transport", play, hidden, off)
	assert.Equal(t, "Transport", sec.Title)
	require.Len(t, sec.Keys, 1)
	assert.Equal(t, KeyBinding{Key: "space", Desc: "play/pause"}, sec.Keys[0])
}

func TestRenderKeyHelp(t *testing.T) {
	out := RenderKeyHelp([]KeySection{
		{Title: "Edit", Keys: []KeyBinding{{Key: "ctrl+z", Desc: "undo"}}},
		{Title: "View", Keys: []KeyBinding{{Key: "]", Desc: "zoom in"}}},
	})
	lines := strings.Split(out, "\n")
	assert.Equal(t, []string{
		"Edit",
		"  ctrl+z       undo",
		"",
		"View",
		"  ]            zoom in",
	}, lines)
}

func TestRenderColumns(t *testing.T) {
	out := RenderColumns(2, "a\nb", "c")
	assert.Equal(t, 2, lipgloss.Height(out))
	assert.True(t, strings.HasPrefix(out, "a  c"))
}
