// Package widgets renders small text blocks shared by the TUI views.
package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeySection is a titled group of key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is one help line
type KeyBinding struct {
	Key  string
	Desc string
}

// Section builds a KeySection from bubbles key bindings, skipping disabled
// ones and those without help text
func Section(title string, bindings ...key.Binding) KeySection {
	sec := KeySection{Title: title}
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		sec.Keys = append(sec.Keys, KeyBinding{Key: h.Key, Desc: h.Desc})
	}
	return sec
}

// RenderKeyHelp renders sections as an aligned key list
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for i, sec := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderColumns lays rendered blocks side by side with a gap
func RenderColumns(gap int, blocks ...string) string {
	spaced := make([]string, 0, len(blocks)*2)
	for i, b := range blocks {
		if i > 0 {
			spaced = append(spaced, strings.Repeat(" ", gap))
		}
		spaced = append(spaced, b)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}
