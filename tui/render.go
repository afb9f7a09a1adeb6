package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-pianoroll/grid"
	"go-pianoroll/interaction"
	"go-pianoroll/notes"
	"go-pianoroll/pitch"
	"go-pianoroll/theme"
	"go-pianoroll/widgets"
)

type cellKind int

const (
	kindEmpty cellKind = iota
	kindBlackRow
	kindBeat
	kindMeasure
	kindBeyond
	kindLabel
	kindLabelBlack
	kindLabelC
	kindHeader
	kindMeasureNum
	kindNote
	kindHovered
	kindHighlighted
	kindSelected
	kindPreview
	kindMarquee
	kindCursor
	kindPlayhead
	kindCount
)

// background kinds may be painted over by the cursor and playhead
func (k cellKind) background() bool {
	return k <= kindBeyond
}

type cell struct {
	r    rune
	kind cellKind
}

// canvas is a grid of styled runes, one per terminal cell
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	return &canvas{w: w, h: h, cells: make([]cell, w*h)}
}

func (cv *canvas) set(x, y int, r rune, k cellKind) {
	if x < 0 || y < 0 || x >= cv.w || y >= cv.h {
		return
	}
	cv.cells[y*cv.w+x] = cell{r: r, kind: k}
}

func (cv *canvas) at(x, y int) cell {
	if x < 0 || y < 0 || x >= cv.w || y >= cv.h {
		return cell{}
	}
	return cv.cells[y*cv.w+x]
}

func (cv *canvas) text(x, y int, s string, k cellKind) {
	for i, r := range []rune(s) {
		cv.set(x+i, y, r, k)
	}
}

// render joins runs of equally styled cells into one lipgloss render each
func (cv *canvas) render(styles *[kindCount]lipgloss.Style) string {
	var out strings.Builder
	var run strings.Builder
	for y := 0; y < cv.h; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		kind := cellKind(-1)
		for x := 0; x < cv.w; x++ {
			c := cv.cells[y*cv.w+x]
			if c.kind != kind && run.Len() > 0 {
				out.WriteString(styles[kind].Render(run.String()))
				run.Reset()
			}
			kind = c.kind
			r := c.r
			if r == 0 {
				r = ' '
			}
			run.WriteRune(r)
		}
		if run.Len() > 0 {
			out.WriteString(styles[kind].Render(run.String()))
			run.Reset()
		}
	}
	return out.String()
}

func newStyles(th *theme.Theme) *[kindCount]lipgloss.Style {
	var s [kindCount]lipgloss.Style
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	s[kindEmpty] = lipgloss.NewStyle()
	s[kindBlackRow] = lipgloss.NewStyle().Background(th.BG())
	s[kindBeat] = fg(th.Muted())
	s[kindMeasure] = fg(th.FG())
	s[kindBeyond] = lipgloss.NewStyle()
	s[kindLabel] = fg(th.FG())
	s[kindLabelBlack] = fg(th.Muted())
	s[kindLabelC] = fg(th.Accent()).Bold(true)
	s[kindHeader] = lipgloss.NewStyle().Background(th.Surface())
	s[kindMeasureNum] = fg(th.FG()).Background(th.Surface())
	s[kindNote] = fg(th.Accent())
	s[kindHovered] = fg(th.Cursor())
	s[kindHighlighted] = fg(th.Warning())
	s[kindSelected] = fg(th.Success())
	s[kindPreview] = fg(th.Active())
	s[kindMarquee] = fg(th.Warning())
	s[kindCursor] = fg(th.Cursor())
	s[kindPlayhead] = fg(th.Success()).Background(th.Surface())
	return &s
}

// view maps grid-local pixels to canvas cells for one frame
type view struct {
	cfg           grid.Config
	scroll        grid.Scroll
	label, header int
}

func (v view) x(gx float64) int {
	return int(math.Round(gx - v.scroll.X + v.cfg.LabelWidth))
}

func (v view) y(gy float64) int {
	return int(math.Round(gy - v.scroll.Y + v.cfg.HeaderHeight))
}

// renderCanvas draws the header strip, the pitch labels and the grid
func (m Model) renderCanvas() string {
	c := m.Controller
	cfg := c.Config()
	w, h := m.width, m.canvasHeight()
	cv := newCanvas(w, h)
	v := view{cfg: cfg, scroll: c.Scroll(), label: int(cfg.LabelWidth), header: int(cfg.HeaderHeight)}

	m.drawHeader(cv, v)
	m.drawRows(cv, v)
	m.drawNotes(cv, v)
	drawMarquee(cv, v, c.Store().Marquee)
	if !c.Mode().Gesture() {
		m.drawCursor(cv, v)
	}
	m.drawPlayhead(cv, v)

	return cv.render(newStyles(m.Theme))
}

func (m Model) drawHeader(cv *canvas, v view) {
	for y := 0; y < v.header; y++ {
		for x := 0; x < cv.w; x++ {
			cv.set(x, y, ' ', kindHeader)
		}
	}
	if v.header == 0 {
		return
	}
	cfg := v.cfg
	for i := 0; i < cfg.TotalMeasures; i++ {
		x := v.x(cfg.XForBeat(float64(i * cfg.BeatsPerMeasure)))
		if x >= v.label {
			cv.text(x, 0, strconv.Itoa(i+1), kindMeasureNum)
		}
	}
}

func (m Model) drawRows(cv *canvas, v view) {
	cfg := v.cfg
	sym := m.Theme.Symbols
	total := cfg.TotalBeats()
	lastRow := -1
	for y := v.header; y < cv.h; y++ {
		gy := float64(y-v.header) + v.scroll.Y
		row, ok := cfg.RowAt(gy)
		if !ok {
			continue
		}
		num, _ := cfg.MidiForRow(row)
		black := pitch.IsBlackKey(num)

		if row != lastRow {
			drawLabel(cv, v.label, y, num, sym.Label)
			lastRow = row
		}

		for x := v.label; x < cv.w; x++ {
			gx := float64(x-v.label) + v.scroll.X
			start, end := cfg.BeatAt(gx), cfg.BeatAt(gx+1)
			switch boundary := math.Ceil(start); {
			case start >= total:
				cv.set(x, y, sym.Beyond, kindBeyond)
			case boundary < end && int(boundary)%cfg.BeatsPerMeasure == 0:
				cv.set(x, y, sym.MeasureLine, kindMeasure)
			case boundary < end:
				cv.set(x, y, sym.BeatLine, kindBeat)
			case black:
				cv.set(x, y, sym.Empty, kindBlackRow)
			default:
				cv.set(x, y, sym.Empty, kindEmpty)
			}
		}
	}
}

func drawLabel(cv *canvas, width, y, num int, sep rune) {
	if width <= 0 {
		return
	}
	name, _ := pitch.MidiToName(num)
	kind := kindLabel
	switch {
	case pitch.IsBlackKey(num):
		kind = kindLabelBlack
	case pitch.PitchClass(num) == "C":
		kind = kindLabelC
	}
	text := fmt.Sprintf("%-*s", width-1, name)
	if len(text) > width-1 {
		text = text[:width-1]
	}
	cv.text(0, y, text, kind)
	cv.set(width-1, y, sep, kindLabel)
}

func (m Model) drawNotes(cv *canvas, v view) {
	c := m.Controller
	store := c.Store()
	w, h := c.Viewport()
	first := v.cfg.BeatAt(v.scroll.X)
	last := v.cfg.BeatAt(v.scroll.X + w)
	for _, n := range v.cfg.VisibleNotes(c.Manager().NotesInRange(first, last), v.scroll, w, h) {
		kind := kindNote
		switch store.StateOf(n) {
		case interaction.NoteSelected:
			kind = kindSelected
		case interaction.NoteHighlighted:
			kind = kindHighlighted
		case interaction.NoteHovered:
			kind = kindHovered
		}
		m.drawNote(cv, v, n, kind)
	}
	for _, n := range store.Preview {
		m.drawNote(cv, v, n, kindPreview)
	}
}

// drawNote fills a note's cells, marking the last column as its resize edge
func (m Model) drawNote(cv *canvas, v view, n notes.Note, kind cellKind) {
	row, ok := v.cfg.RowForPitch(n.Pitch)
	if !ok {
		return
	}
	sym := m.Theme.Symbols
	y0 := v.y(v.cfg.YForRow(row))
	y1 := max(v.y(v.cfg.YForRow(row+1)), y0+1)
	x0 := v.x(v.cfg.XForBeat(n.Start))
	x1 := max(v.x(v.cfg.XForBeat(n.End())), x0+1)

	for y := max(y0, v.header); y < y1; y++ {
		for x := max(x0, v.label); x < x1; x++ {
			r := sym.NoteBody
			if x == x1-1 && x1-x0 > 1 {
				r = sym.NoteEdge
			}
			cv.set(x, y, r, kind)
		}
	}
}

func drawMarquee(cv *canvas, v view, box *grid.Box) {
	if box == nil {
		return
	}
	minX, minY, maxX, maxY := box.Normalized()
	x0, y0, x1, y1 := v.x(minX), v.y(minY), v.x(maxX), v.y(maxY)
	put := func(x, y int, r rune) {
		if x >= v.label && y >= v.header {
			cv.set(x, y, r, kindMarquee)
		}
	}
	for x := x0; x <= x1; x++ {
		put(x, y0, '─')
		put(x, y1, '─')
	}
	for y := y0; y <= y1; y++ {
		put(x0, y, '│')
		put(x1, y, '│')
	}
	put(x0, y0, '┌')
	put(x1, y0, '┐')
	put(x0, y1, '└')
	put(x1, y1, '┘')
}

func (m Model) drawCursor(cv *canvas, v view) {
	cur := m.Controller.Store().Cursor
	if cur == nil {
		return
	}
	row, ok := v.cfg.RowForMidi(cur.Midi)
	if !ok {
		return
	}
	x, y := v.x(v.cfg.XForBeat(cur.Beat)), v.y(v.cfg.YForRow(row))
	if x < v.label || y < v.header {
		return
	}
	if cv.at(x, y).kind.background() {
		cv.set(x, y, m.Theme.Symbols.Cursor, kindCursor)
	}
}

func (m Model) drawPlayhead(cv *canvas, v view) {
	beat := m.Transport.CurrentBeat()
	if !m.Transport.IsActive() && beat == 0 {
		return
	}
	x := v.x(v.cfg.XForBeat(beat))
	if x < v.label || x >= cv.w {
		return
	}
	sym := m.Theme.Symbols
	if v.header > 0 {
		cv.set(x, 0, sym.Playhead, kindPlayhead)
	}
	for y := v.header; y < cv.h; y++ {
		if cv.at(x, y).kind.background() {
			cv.set(x, y, sym.PlayheadLine, kindPlayhead)
		}
	}
}

// statusLine summarizes transport and editor state
func (m Model) statusLine() string {
	c := m.Controller
	th := m.Theme
	headerStyle := lipgloss.NewStyle().Foreground(th.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(th.Muted())

	playState := "STOP"
	switch {
	case m.Seek != nil && m.Seek.Scrubbing():
		playState = "SEEK"
	case m.Transport.IsActive():
		playState = "PLAY"
	case m.Transport.CurrentBeat() > 0:
		playState = "PAUS"
	}

	left := headerStyle.Render(fmt.Sprintf("go-pianoroll  %s  %3dbpm  %6.2f",
		playState, m.Transport.Tempo(), m.Transport.CurrentBeat()))

	parts := []string{
		c.Mode().String(),
		"snap " + m.snapLabel(),
		c.Options().Transpose.String(),
		m.keyLabel(),
	}
	if n := len(c.Store().Selected()); n > 0 {
		parts = append(parts, fmt.Sprintf("sel %d", n))
	}
	if cur := c.Store().Cursor; cur != nil {
		parts = append(parts, fmt.Sprintf("%s@%g", cur.Pitch, cur.Beat))
	}
	if m.History != nil && m.History.CanUndo() {
		parts = append(parts, "undo")
	}
	if m.follow {
		parts = append(parts, "follow")
	}
	if m.Output != "" {
		parts = append(parts, "out:"+m.Output)
	}
	if m.Keyboard != nil {
		parts = append(parts, "in:"+m.Keyboard.Name())
	}
	return left + "  " + dimStyle.Render(strings.Join(parts, "  "))
}

func (m Model) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(m.Theme.Accent()).Render("go-pianoroll  keys")
	sections := m.keys.helpSections()
	cols := make([]string, 0, 2)
	cols = append(cols, widgets.RenderKeyHelp(sections[:2]), widgets.RenderKeyHelp(sections[2:]))
	dim := lipgloss.NewStyle().Foreground(m.Theme.Muted()).Render("? to close")
	return "\n" + title + "\n\n" + widgets.RenderColumns(4, cols...) + "\n\n" + dim
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var out strings.Builder
	if m.canvasHeight() > 0 && m.width > 0 {
		out.WriteString(m.renderCanvas())
		out.WriteString("\n")
	}
	out.WriteString(m.statusLine())
	out.WriteString("\n")
	out.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return out.String()
}
