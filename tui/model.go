// Package tui hosts the piano roll in a bubbletea program: it maps terminal
// mouse and key events onto the interaction controller, drives frame ticks
// and renders the grid with lipgloss.
package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-pianoroll/config"
	"go-pianoroll/debug"
	"go-pianoroll/grid"
	"go-pianoroll/history"
	"go-pianoroll/interaction"
	"go-pianoroll/midi"
	"go-pianoroll/theme"
	"go-pianoroll/transport"
)

const (
	frameInterval = time.Second / 30
	footerHeight  = 2
	wheelRows     = 3
	tempoStep     = 5
)

var zoomLevels = []float64{0.25, 0.5, 1, 2, 4}

// mouseState tracks what bubbletea does not report: which button is held
// and whether the pointer is over the canvas
type mouseState struct {
	inside bool
	held   interaction.Button
}

type Model struct {
	Controller *interaction.Controller
	Transport  *transport.Transport
	History    *history.Log
	Theme      *theme.Theme
	Keyboard   *midi.Keyboard         // step input, may be nil
	Seek       *interaction.SeekStrip // header scrubbing, may be nil
	Output     string                 // preview port name for the status line

	keys     keyMap
	help     help.Model
	showHelp bool
	follow   bool
	width    int
	height   int
	mouse    mouseState
	ticking  bool
	held     map[uint8]bool
	quitting bool

	applied *config.Config // last config taken from disk
	pending *config.Config // reload held back by a gesture
}

type frameMsg time.Time

// NoteMsg is a key played on the step-input keyboard
type NoteMsg midi.NoteEvent

// ConfigMsg carries a config reloaded from disk
type ConfigMsg struct {
	Config *config.Config
}

func NewModel(ctrl *interaction.Controller, tp *transport.Transport, th *theme.Theme) Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(th.FG())
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(th.Muted())
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(th.Muted())
	return Model{
		Controller: ctrl,
		Transport:  tp,
		Theme:      th,
		keys:       newKeyMap(),
		help:       h,
		follow:     true,
		held:       make(map[uint8]bool),
	}
}

// SetConfig records the config the editor started from. Reloads only
// override the settings the file changed since.
func (m *Model) SetConfig(cfg *config.Config) {
	m.applied = cfg
	m.follow = cfg.Editor.FollowPlayhead
}

func ListenForNotes(kb *midi.Keyboard) tea.Cmd {
	if kb == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-kb.NoteEvents()
		if !ok {
			return nil
		}
		return NoteMsg(ev)
	}
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return ListenForNotes(m.Keyboard)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.Controller.SetViewport(float64(m.width), float64(m.canvasHeight()))
		debug.Log("tui", "resize %dx%d", msg.Width, msg.Height)

	case tea.KeyMsg:
		if quit := m.handleKey(msg); quit {
			m.quitting = true
			m.Transport.Stop()
			return m, tea.Quit
		}
		m.flushConfig()
		return m.animate()

	case tea.MouseMsg:
		m = m.handleMouse(msg)
		m.flushConfig()
		return m.animate()

	case frameMsg:
		m.Controller.Frame()
		if m.follow && m.Transport.IsActive() && !m.Controller.Mode().Gesture() {
			m.followPlayhead()
		}
		if !m.animating() {
			m.ticking = false
			return m, nil
		}
		return m, frame()

	case NoteMsg:
		m.stepInput(midi.NoteEvent(msg))
		return m, ListenForNotes(m.Keyboard)

	case ConfigMsg:
		m.applyConfig(msg.Config)
	}

	return m, nil
}

// handleKey runs host bindings and hands the rest to the controller.
// Returns true to quit.
func (m *Model) handleKey(msg tea.KeyMsg) bool {
	c := m.Controller
	switch {
	case key.Matches(msg, m.keys.Quit):
		return true
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case m.showHelp:
		// help swallows everything else
	case key.Matches(msg, m.keys.Play):
		m.Transport.Toggle()
	case key.Matches(msg, m.keys.Stop):
		m.Transport.Stop()
	case key.Matches(msg, m.keys.TempoUp):
		m.Transport.SetTempo(m.Transport.Tempo() + tempoStep)
	case key.Matches(msg, m.keys.TempoDown):
		m.Transport.SetTempo(m.Transport.Tempo() - tempoStep)
	case key.Matches(msg, m.keys.ZoomIn):
		c.SetZoom(stepZoom(c.Config().Zoom, 1))
	case key.Matches(msg, m.keys.ZoomOut):
		c.SetZoom(stepZoom(c.Config().Zoom, -1))
	case key.Matches(msg, m.keys.Snap):
		c.SetSnap(nextSnap(c.Snap()))
	case key.Matches(msg, m.keys.Follow):
		m.follow = !m.follow
	default:
		if !c.Key(msg.String()) {
			debug.Log("tui", "unbound key %q", msg.String())
		}
	}
	return false
}

// handleMouse feeds one terminal mouse event to the controller. Leaving the
// canvas (into the footer or off-screen) is reported as a leave.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	c := m.Controller
	if m.showHelp {
		return m
	}
	ev := pointerOf(msg)

	if !m.onCanvas(msg.X, msg.Y) {
		if m.mouse.inside {
			c.MouseLeave(ev)
			m.mouse = mouseState{}
		}
		return m
	}
	m.mouse.inside = true

	if isWheel(msg.Button) {
		if msg.Action == tea.MouseActionPress {
			m.wheel(msg)
		}
		return m
	}

	switch msg.Action {
	case tea.MouseActionPress:
		m.mouse.held = ev.Button
		c.MouseDown(ev)
	case tea.MouseActionRelease:
		if ev.Button == interaction.ButtonNone {
			ev.Button = m.mouse.held
		}
		m.mouse.held = interaction.ButtonNone
		c.MouseUp(ev)
	case tea.MouseActionMotion:
		ev.Button = m.mouse.held
		c.MouseMove(ev)
	}
	return m
}

// wheel scrolls three rows, or one beat sideways with shift
func (m Model) wheel(msg tea.MouseMsg) {
	cfg := m.Controller.Config()
	dir := 1.0
	horizontal := msg.Shift
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		dir = -1
	case tea.MouseButtonWheelLeft:
		dir, horizontal = -1, true
	case tea.MouseButtonWheelRight:
		horizontal = true
	}
	if horizontal {
		m.Controller.ScrollBy(dir*cfg.CellWidth(), 0)
		return
	}
	m.Controller.ScrollBy(0, dir*wheelRows*cfg.CellHeight())
}

// pointerOf converts a bubbletea mouse message to canvas pixels; one
// terminal cell is one pixel
func pointerOf(msg tea.MouseMsg) interaction.Pointer {
	ev := interaction.Pointer{
		X:    float64(msg.X),
		Y:    float64(msg.Y),
		Mods: interaction.Modifiers{Shift: msg.Shift, Ctrl: msg.Ctrl, Alt: msg.Alt},
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		ev.Button = interaction.ButtonLeft
	case tea.MouseButtonRight:
		ev.Button = interaction.ButtonRight
	case tea.MouseButtonMiddle:
		ev.Button = interaction.ButtonMiddle
	}
	return ev
}

func isWheel(b tea.MouseButton) bool {
	switch b {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown, tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		return true
	}
	return false
}

func (m Model) onCanvas(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.canvasHeight()
}

func (m Model) canvasHeight() int {
	return max(m.height-footerHeight, 0)
}

// stepInput places played keys at the cursor. A chord stacks at one beat;
// the cursor advances once every key is up.
func (m *Model) stepInput(ev midi.NoteEvent) {
	if ev.Velocity > 0 {
		m.held[ev.Note] = true
		m.Controller.StepInput(int(ev.Note), int(ev.Velocity))
		return
	}
	if !m.held[ev.Note] {
		return
	}
	delete(m.held, ev.Note)
	if len(m.held) == 0 {
		m.Controller.AdvanceCursor()
	}
}

// applyConfig takes the live-editable parts of a reloaded config: editor
// options, tempo and follow. A setting changed from the keyboard is kept
// unless the file changed it too. Reloads wait for a gesture to finish;
// grid layout changes need a restart.
func (m *Model) applyConfig(cfg *config.Config) {
	c := m.Controller
	if c.Mode().Gesture() {
		m.pending = cfg
		debug.Log("tui", "config reload held until the gesture ends")
		return
	}
	m.pending = nil

	opts, err := cfg.Editor.Options()
	if err != nil {
		debug.Log("tui", "config reload: %v", err)
		return
	}
	follow := cfg.Editor.FollowPlayhead != m.follow
	tempo := true
	if prev := m.applied; prev != nil {
		cur := c.Options()
		if cfg.Editor.Snap == prev.Editor.Snap {
			opts.Snap.Resolution = cur.Snap.Resolution
		}
		if cfg.Editor.Triplet == prev.Editor.Triplet {
			opts.Snap.Triplet = cur.Snap.Triplet
		}
		if cfg.Editor.Harmonic == prev.Editor.Harmonic {
			opts.Transpose = cur.Transpose
		}
		follow = cfg.Editor.FollowPlayhead != prev.Editor.FollowPlayhead
		tempo = cfg.Transport.Tempo != prev.Transport.Tempo
	}
	c.SetOptions(opts)
	if follow {
		m.follow = cfg.Editor.FollowPlayhead
	}
	if tempo {
		m.Transport.SetTempo(cfg.Transport.Tempo)
	}
	if cfg.Grid != c.Config().WithZoom(cfg.Grid.Zoom) {
		debug.Log("tui", "grid changes apply on restart")
	}
	m.applied = cfg
}

// flushConfig applies a reload held back by a gesture that has ended
func (m *Model) flushConfig() {
	if m.pending != nil && !m.Controller.Mode().Gesture() {
		m.applyConfig(m.pending)
	}
}

// animating reports whether frame ticks have work to do
func (m Model) animating() bool {
	return m.Controller.Mode().Gesture() || m.Transport.IsActive()
}

// animate starts the frame loop if something needs it and it isn't running
func (m Model) animate() (tea.Model, tea.Cmd) {
	if m.ticking || !m.animating() {
		return m, nil
	}
	m.ticking = true
	return m, frame()
}

// followPlayhead recenters once the playhead leaves the view
func (m Model) followPlayhead() {
	c := m.Controller
	cfg := c.Config()
	w, _ := c.Viewport()
	x := cfg.XForBeat(m.Transport.CurrentBeat())
	s := c.Scroll()
	if x < s.X || x >= s.X+w-cfg.LabelWidth {
		c.ScrollToBeat(m.Transport.CurrentBeat())
	}
}

// stepZoom moves to the next zoom level in dir
func stepZoom(current float64, dir int) float64 {
	best := 0
	for i, z := range zoomLevels {
		if math.Abs(z-current) < math.Abs(zoomLevels[best]-current) {
			best = i
		}
	}
	next := min(max(best+dir, 0), len(zoomLevels)-1)
	return zoomLevels[next]
}

// nextSnap cycles coarse to fine, then off, then back to coarsest
func nextSnap(s grid.Snap) grid.Snap {
	if s.Resolution <= 0 {
		s.Resolution = grid.Resolutions[0]
		return s
	}
	for i, r := range grid.Resolutions {
		if r == s.Resolution {
			if i+1 < len(grid.Resolutions) {
				s.Resolution = grid.Resolutions[i+1]
			} else {
				s.Resolution = 0
			}
			return s
		}
	}
	s.Resolution = grid.Resolutions[0]
	return s
}

func (m Model) snapLabel() string {
	s := m.Controller.Snap()
	label := grid.FormatResolution(s.Resolution)
	if s.Triplet && s.Resolution > 0 {
		label += "T"
	}
	return label
}

func (m Model) keyLabel() string {
	if k, ok := m.Controller.Options().Keys.(fmt.Stringer); ok {
		return k.String()
	}
	return "no key"
}
