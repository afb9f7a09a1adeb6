package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"go-pianoroll/widgets"
)

func binding(help string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help))
}

// keyMap holds the host keys. Anything unmatched goes to the controller.
type keyMap struct {
	Quit      key.Binding
	Play      key.Binding
	Stop      key.Binding
	TempoUp   key.Binding
	TempoDown key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Snap      key.Binding
	Follow    key.Binding
	Help      key.Binding
}

func newKeyMap() keyMap {
	km := keyMap{
		Quit:      binding("quit", "q", "ctrl+q"),
		Play:      binding("play/pause", " "),
		Stop:      binding("stop", "s"),
		TempoUp:   binding("tempo +5", "+", "="),
		TempoDown: binding("tempo -5", "-", "_"),
		ZoomIn:    binding("zoom in", "]"),
		ZoomOut:   binding("zoom out", "["),
		Snap:      binding("cycle snap", "g"),
		Follow:    binding("follow playhead", "f"),
		Help:      binding("toggle help", "?"),
	}
	km.Play.SetHelp("space", "play/pause")
	return km
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Snap, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Stop, k.TempoUp, k.TempoDown},
		{k.ZoomIn, k.ZoomOut, k.Snap, k.Follow},
		{k.Help, k.Quit},
	}
}

// editorKeys documents the keys interaction.Controller.Key handles
var editorKeys = []widgets.KeyBinding{
	{Key: "esc", Desc: "abort gesture, clear selection"},
	{Key: "del", Desc: "delete selection"},
	{Key: "ctrl+a", Desc: "select all"},
	{Key: "ctrl+c/x/v", Desc: "copy, cut, paste at cursor"},
	{Key: "up/down", Desc: "transpose"},
	{Key: "shift+up/dn", Desc: "transpose octave"},
	{Key: "left/right", Desc: "nudge one step"},
	{Key: "t", Desc: "triplet snap"},
	{Key: "h", Desc: "chromatic/harmonic"},
	{Key: "ctrl+z", Desc: "undo"},
	{Key: "ctrl+y", Desc: "redo"},
}

var mouseKeys = []widgets.KeyBinding{
	{Key: "click", Desc: "place note / select"},
	{Key: "ctrl+click", Desc: "toggle selection"},
	{Key: "drag", Desc: "move, resize or marquee"},
	{Key: "right click", Desc: "delete note"},
	{Key: "wheel", Desc: "scroll (shift: horizontal)"},
	{Key: "header", Desc: "scrub playhead"},
}

// helpSections is the full-screen help
func (k keyMap) helpSections() []widgets.KeySection {
	return []widgets.KeySection{
		widgets.Section("Transport", k.Play, k.Stop, k.TempoUp, k.TempoDown),
		widgets.Section("View", k.ZoomIn, k.ZoomOut, k.Snap, k.Follow, k.Help, k.Quit),
		{Title: "Edit", Keys: editorKeys},
		{Title: "Mouse", Keys: mouseKeys},
	}
}
