package interaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pianoroll/grid"
	"go-pianoroll/notes"
	"go-pianoroll/pitch"
)

// testConfig: 40px per beat, 20px rows, C5 (72) on row 0 down to C3 (48),
// 50px label column, 30px header
func testConfig() grid.Config {
	return grid.Config{
		BaseCellWidth:     40,
		VerticalCellRatio: 2,
		LowestMidi:        48,
		HighestMidi:       72,
		LabelWidth:        50,
		HeaderHeight:      30,
		Zoom:              1,
		TotalMeasures:     4,
		BeatsPerMeasure:   4,
	}
}

func nt(p string, start, dur float64) notes.Note {
	return notes.Note{Pitch: p, Start: start, Duration: dur, Velocity: 100}
}

// at is a left-button pointer over beat in the middle of midi's row
func at(beat float64, midi int) Pointer {
	return Pointer{X: 50 + beat*40, Y: 30 + float64(72-midi)*20 + 10, Button: ButtonLeft}
}

type whiteKeys struct{}

func (whiteKeys) InKey(m int) bool { return !pitch.IsBlackKey(m) }

// diffLog is a minimal undo stack
type diffLog struct {
	undo, redo [][2]Diff
}

func (l *diffLog) RecordDiff(forward, reverse Diff) {
	l.undo = append(l.undo, [2]Diff{forward, reverse})
	l.redo = nil
}

func (l *diffLog) Undo(m *notes.Manager) bool {
	if len(l.undo) == 0 {
		return false
	}
	e := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	e[1].Apply(m)
	l.redo = append(l.redo, e)
	return true
}

func (l *diffLog) Redo(m *notes.Manager) bool {
	if len(l.redo) == 0 {
		return false
	}
	e := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	e[0].Apply(m)
	l.undo = append(l.undo, e)
	return true
}

type earAuditioner struct {
	heard []int
}

func (a *earAuditioner) PlayNote(midi int, beats float64, velocity int, loop bool) {
	a.heard = append(a.heard, midi)
}

type fixture struct {
	c      *Controller
	m      *notes.Manager
	log    *diffLog
	ear    *earAuditioner
	redraw int
}

func newFixture(t *testing.T, ns ...notes.Note) *fixture {
	t.Helper()
	f := &fixture{m: notes.NewManager(), log: &diffLog{}, ear: &earAuditioner{}}
	f.m.Set(ns)
	f.m.SetAuditioner(f.ear)

	c, err := New(testConfig(), f.m, DefaultOptions())
	require.NoError(t, err)
	c.SetRecorder(f.log)
	c.SetHistory(f.log)
	c.SetRedraw(func() { f.redraw++ })
	f.c = c
	return f
}

func (f *fixture) click(p Pointer) {
	f.c.MouseDown(p)
	f.c.MouseUp(p)
}

func (f *fixture) drag(from, to Pointer) {
	f.c.MouseDown(from)
	f.c.MouseMove(to)
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(testConfig(), nil, DefaultOptions())
	assert.Error(t, err)

	cfg := testConfig()
	cfg.Zoom = 0
	_, err = New(cfg, notes.NewManager(), DefaultOptions())
	assert.Error(t, err)
}

func TestClickPlacesNote(t *testing.T) {
	f := newFixture(t)

	f.click(at(1.1, 60))

	n, ok := f.m.FindAtPosition("C4", 1)
	require.True(t, ok, "floored to the sixteenth")
	assert.Equal(t, 0.25, n.Duration, "one snap step")
	assert.Equal(t, notes.DefaultVelocity, n.Velocity)
	assert.Equal(t, ModeNoteTool, f.c.Mode())
	assert.Equal(t, []int{60}, f.ear.heard)
	require.Len(t, f.log.undo, 1)
	assert.Equal(t, []notes.Note{n}, f.log.undo[0][0].Added)
	assert.Greater(t, f.redraw, 0)

	f.click(at(1.2, 60))
	assert.Equal(t, 1, f.m.Len(), "same cell twice is a no-op")
}

func TestClickOutsideGridIgnored(t *testing.T) {
	f := newFixture(t)
	f.click(Pointer{X: 10, Y: 100, Button: ButtonLeft})
	assert.Zero(t, f.m.Len())
	assert.Equal(t, ModeNoteTool, f.c.Mode())
}

func TestClickNoteSelects(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1))

	f.click(at(0.5, 60))
	assert.Equal(t, ModeSelectedIdle, f.c.Mode())
	assert.Equal(t, []string{"C4:0"}, notes.Keys(f.c.Store().Selected()))
	assert.Equal(t, 1, f.m.Len(), "no note placed")

	// empty click in SelectedIdle only deselects
	f.click(at(3, 60))
	assert.Equal(t, ModeNoteTool, f.c.Mode())
	assert.False(t, f.c.Store().HasSelection())
	assert.Equal(t, 1, f.m.Len())
}

func TestAdditiveClickToggles(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1), nt("E4", 0, 1))

	f.click(at(0.5, 60))
	p := at(0.5, 64)
	p.Mods.Ctrl = true
	f.click(p)
	assert.ElementsMatch(t, []string{"C4:0", "E4:0"}, notes.Keys(f.c.Store().Selected()))

	f.click(p)
	assert.Equal(t, []string{"C4:0"}, notes.Keys(f.c.Store().Selected()))
}

func TestRightClickDeletes(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1))

	p := at(0.5, 60)
	p.Button = ButtonRight
	f.c.MouseDown(p)

	assert.Zero(t, f.m.Len())
	require.Len(t, f.log.undo, 1)
	assert.Equal(t, []string{"C4:0"}, notes.Keys(f.log.undo[0][0].Removed))
}

func TestDragMovesNote(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1))

	f.drag(at(0.5, 60), at(2.5, 62))
	require.Equal(t, ModeDragging, f.c.Mode())

	// the note lives only in the preview while dragging
	_, inManager := f.m.FindByKey("C4:0")
	assert.False(t, inManager)
	assert.Equal(t, []notes.Note{nt("D4", 2, 1)}, f.c.Store().Preview)
	assert.Contains(t, f.ear.heard, 62)

	f.c.MouseUp(at(2.5, 62))
	assert.Equal(t, ModeNoteTool, f.c.Mode())
	assert.Equal(t, []string{"D4:2"}, notes.Keys(f.m.All()))
	assert.Equal(t, []string{"D4:2"}, notes.Keys(f.c.Store().Selected()))
	assert.Nil(t, f.c.Store().Preview)

	require.Len(t, f.log.undo, 1)
	fwd, rev := f.log.undo[0][0], f.log.undo[0][1]
	assert.Equal(t, []string{"C4:0"}, notes.Keys(fwd.Removed))
	assert.Equal(t, []string{"D4:2"}, notes.Keys(fwd.Added))
	assert.Equal(t, fwd.Invert(), rev)
}

func TestDragMovesWholeSelection(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1), nt("E4", 1, 1), nt("G4", 8, 1))

	f.c.Key("ctrl+a")
	f.c.Store().Deselect([]notes.Note{nt("G4", 8, 1)})

	f.drag(at(0.5, 60), at(4.5, 60))
	f.c.MouseUp(at(4.5, 60))

	assert.ElementsMatch(t, []string{"C4:4", "E4:5", "G4:8"}, notes.Keys(f.m.All()))
}

func TestDragOntoNoteReplacesIt(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1), nt("C4", 2, 0.5))

	f.drag(at(0.5, 60), at(2.5, 60))
	f.c.MouseUp(at(2.5, 60))

	all := f.m.All()
	require.Len(t, all, 1)
	assert.Equal(t, nt("C4", 2, 1), all[0])

	require.Len(t, f.log.undo, 1)
	assert.ElementsMatch(t, []string{"C4:0", "C4:2"}, notes.Keys(f.log.undo[0][0].Removed))

	f.c.Key("ctrl+z")
	assert.True(t, notes.Equal([]notes.Note{nt("C4", 0, 1), nt("C4", 2, 0.5)}, f.m.All()), "undo brings the replaced note back")
}

func TestDragAbortRestoresExactly(t *testing.T) {
	before := []notes.Note{nt("C4", 0, 1), nt("E4", 1, 1)}
	f := newFixture(t, before...)
	f.c.Key("ctrl+a")

	f.drag(at(0.5, 60), at(6.5, 66))
	require.Equal(t, ModeDragging, f.c.Mode())
	f.c.MouseLeave(at(6.5, 66))

	assert.Equal(t, ModeNoteTool, f.c.Mode())
	assert.True(t, notes.Equal(before, f.m.All()))
	assert.Nil(t, f.c.Store().Preview)
	assert.Empty(t, f.log.undo)
}

func TestEscapeAbortsDrag(t *testing.T) {
	before := []notes.Note{nt("C4", 0, 1)}
	f := newFixture(t, before...)

	f.drag(at(0.5, 60), at(2.5, 60))
	assert.True(t, f.c.Key("esc"))

	assert.Equal(t, ModeNoteTool, f.c.Mode())
	assert.True(t, notes.Equal(before, f.m.All()))
	assert.False(t, f.c.Store().HasSelection())
}

func TestDragBackIsNoChange(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1))

	f.drag(at(0.5, 60), at(2.5, 62))
	f.c.MouseMove(at(0.5, 60))
	f.c.MouseUp(at(0.5, 60))

	assert.Equal(t, []string{"C4:0"}, notes.Keys(f.m.All()))
	assert.Empty(t, f.log.undo, "nothing recorded")
}

func TestHarmonicDragDropsOutOfKeyNote(t *testing.T) {
	f := newFixture(t, nt("C#4", 0, 1))
	f.c.SetKeys(whiteKeys{})
	f.c.Key("h")

	f.drag(at(0.5, 61), at(1.5, 64))
	require.Equal(t, ModeDragging, f.c.Mode())
	assert.Empty(t, f.c.Store().Preview)

	f.c.MouseLeave(at(1.5, 64))
	assert.Equal(t, []string{"C#4:0"}, notes.Keys(f.m.All()), "abort brings it back")
}

func TestResizeFromTrailingEdge(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1))

	press := at(0.9, 60)
	f.c.MouseDown(press)
	move := press
	move.X += 45
	f.c.MouseMove(move)
	require.Equal(t, ModeSizing, f.c.Mode())
	f.c.MouseUp(move)

	n, ok := f.m.FindAtPosition("C4", 0)
	require.True(t, ok)
	assert.Equal(t, 2.25, n.Duration)
	assert.Len(t, f.log.undo, 1)
}

func TestResizeAbortRestoresExactly(t *testing.T) {
	before := []notes.Note{nt("C4", 0, 1), nt("E4", 1, 1)}
	f := newFixture(t, before...)
	f.c.Key("ctrl+a")

	press := at(0.9, 60)
	f.c.MouseDown(press)
	move := press
	move.X += 85
	f.c.MouseMove(move)
	require.Equal(t, ModeSizing, f.c.Mode())
	assert.ElementsMatch(t, []notes.Note{nt("C4", 0, 3.25), nt("E4", 1, 3.25)}, f.c.Store().Preview)

	f.c.MouseLeave(move)

	assert.Equal(t, ModeNoteTool, f.c.Mode())
	assert.True(t, notes.Equal(before, f.m.All()))
	assert.Nil(t, f.c.Store().Preview)
	assert.Empty(t, f.log.undo)
}

func TestResizeBelowOneStepIsNoChange(t *testing.T) {
	before := []notes.Note{nt("C4", 0, 1)}
	f := newFixture(t, before...)

	press := at(0.9, 60)
	f.c.MouseDown(press)
	move := press
	move.X += 4
	f.c.MouseMove(move)
	require.Equal(t, ModeSizing, f.c.Mode())
	f.c.MouseUp(move)

	assert.Equal(t, ModeNoteTool, f.c.Mode())
	assert.True(t, notes.Equal(before, f.m.All()))
	assert.Nil(t, f.c.Store().Preview)
	assert.Empty(t, f.log.undo, "nothing recorded")
}

func TestMarqueeSelects(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1), nt("D4", 1, 1), nt("F4", 0, 1))

	// empty E4 cell at beat 0, then drag down to the C4 row past beat 1
	f.drag(Pointer{X: 50, Y: 30 + 161, Button: ButtonLeft}, Pointer{X: 50 + 59, Y: 30 + 250, Button: ButtonLeft})
	require.Equal(t, ModeSelecting, f.c.Mode())
	st := f.c.Store()
	require.NotNil(t, st.Marquee)
	assert.ElementsMatch(t, []string{"C4:0", "D4:1"}, notes.Keys(st.Highlighted))
	assert.False(t, st.HasSelection(), "selection only changes on release")

	f.c.MouseUp(Pointer{X: 50 + 59, Y: 30 + 250, Button: ButtonLeft})
	assert.Equal(t, ModeSelectedIdle, f.c.Mode())
	assert.ElementsMatch(t, []string{"C4:0", "D4:1"}, notes.Keys(st.Selected()))
	assert.Nil(t, st.Marquee)
	assert.Nil(t, st.Highlighted)
}

func TestAdditiveMarqueeMerges(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1), nt("D4", 1, 1), nt("F4", 0, 1))
	f.click(at(0.5, 65))

	from := Pointer{X: 50, Y: 30 + 161, Button: ButtonLeft, Mods: Modifiers{Ctrl: true}}
	to := Pointer{X: 50 + 59, Y: 30 + 250, Button: ButtonLeft, Mods: Modifiers{Ctrl: true}}
	f.drag(from, to)
	f.c.MouseUp(to)

	assert.ElementsMatch(t, []string{"F4:0", "C4:0", "D4:1"}, notes.Keys(f.c.Store().Selected()))
}

func TestEmptyMarqueeClears(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1))
	f.click(at(0.5, 60))

	f.drag(at(8, 50), at(10, 49))
	f.c.MouseUp(at(10, 49))

	assert.Equal(t, ModeNoteTool, f.c.Mode())
	assert.False(t, f.c.Store().HasSelection())
	assert.Equal(t, 1, f.m.Len(), "marquee places nothing")
}

func TestMarqueeLeaveKeepsPriorSelection(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1), nt("D4", 1, 1))
	f.click(at(0.5, 60))

	f.drag(at(6, 66), at(0, 50))
	f.c.MouseLeave(at(0, 50))

	assert.Equal(t, ModeNoteTool, f.c.Mode())
	assert.Equal(t, []string{"C4:0"}, notes.Keys(f.c.Store().Selected()))
}

func TestDeleteKey(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1), nt("E4", 0, 1))
	f.click(at(0.5, 60))

	assert.True(t, f.c.Key("delete"))
	assert.Equal(t, []string{"E4:0"}, notes.Keys(f.m.All()))
	assert.Equal(t, ModeNoteTool, f.c.Mode())

	f.c.Key("ctrl+z")
	assert.Equal(t, 2, f.m.Len())
}

func TestUndoRedoDrag(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1))
	f.drag(at(0.5, 60), at(2.5, 62))
	f.c.MouseUp(at(2.5, 62))

	f.c.Key("ctrl+z")
	assert.Equal(t, []string{"C4:0"}, notes.Keys(f.m.All()))
	assert.False(t, f.c.Store().HasSelection(), "D4:2 no longer exists")

	f.c.Key("ctrl+y")
	assert.Equal(t, []string{"D4:2"}, notes.Keys(f.m.All()))
}

func TestTransposeKeys(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1))
	f.c.Key("ctrl+a")
	require.Equal(t, ModeSelectedIdle, f.c.Mode())

	f.c.Key("up")
	assert.Equal(t, []string{"C#4:0"}, notes.Keys(f.m.All()))
	f.c.Key("shift+down")
	assert.Equal(t, []string{"C#3:0"}, notes.Keys(f.m.All()))
	f.c.Key("right")
	assert.Equal(t, []string{"C#3:0.25"}, notes.Keys(f.m.All()))
	assert.Equal(t, []string{"C#3:0.25"}, notes.Keys(f.c.Store().Selected()))
	assert.Len(t, f.log.undo, 3)

	f.c.Key("left")
	f.c.Key("left")
	assert.Equal(t, []string{"C#3:0"}, notes.Keys(f.m.All()), "clamped at beat 0")
	assert.Len(t, f.log.undo, 4, "the clamped nudge records nothing")
}

func TestHarmonicTransposeKey(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1), nt("E4", 0, 1))
	f.c.SetKeys(whiteKeys{})
	f.c.Key("h")
	f.c.Key("ctrl+a")

	f.c.Key("up")
	assert.ElementsMatch(t, []string{"D4:0", "F4:0"}, notes.Keys(f.m.All()))
}

func TestTransposeStopsAtRangeEdge(t *testing.T) {
	cases := map[string]struct {
		notes []notes.Note
		key   string
	}{
		"top":    {[]notes.Note{nt("C5", 0, 1), nt("B4", 0, 1)}, "up"},
		"bottom": {[]notes.Note{nt("C4", 0, 1), nt("C3", 0, 1)}, "shift+down"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, tc.notes...)
			f.c.Key("ctrl+a")

			assert.True(t, f.c.Key(tc.key))
			assert.True(t, notes.Equal(tc.notes, f.m.All()), "no note lost or moved")
			assert.Len(t, f.c.Store().Selected(), 2)
			assert.Empty(t, f.log.undo)
		})
	}
}

func TestHarmonicTransposeKeepsOutOfKeyNotes(t *testing.T) {
	before := []notes.Note{nt("E4", 0, 1), nt("C#4", 1, 1)}
	f := newFixture(t, before...)
	f.c.SetKeys(whiteKeys{})
	f.c.Key("h")
	f.c.Key("ctrl+a")

	f.c.Key("up")
	assert.True(t, notes.Equal(before, f.m.All()))
	assert.Empty(t, f.log.undo)
}

func TestCopyPasteAtCursor(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1), nt("E4", 1, 1))
	f.c.Key("ctrl+a")
	f.c.Key("ctrl+c")

	hover := at(4.1, 67)
	hover.Button = ButtonNone
	f.c.MouseMove(hover)
	require.NotNil(t, f.c.Store().Cursor)

	f.c.Key("ctrl+v")
	assert.ElementsMatch(t, []string{"C4:0", "E4:1", "G4:4", "B4:5"}, notes.Keys(f.m.All()))
	assert.ElementsMatch(t, []string{"G4:4", "B4:5"}, notes.Keys(f.c.Store().Selected()))

	f.c.Key("ctrl+v")
	assert.Equal(t, 4, f.m.Len(), "occupied keys are skipped")
}

func TestCut(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1))
	f.c.Key("ctrl+a")
	f.c.Key("ctrl+x")

	assert.Zero(t, f.m.Len())
	assert.Len(t, f.c.Store().Clipboard, 1)
}

func TestKeysIgnoredMidGesture(t *testing.T) {
	f := newFixture(t, nt("C4", 0, 1))
	f.drag(at(0.5, 60), at(2.5, 60))

	assert.False(t, f.c.Key("delete"))
	assert.False(t, f.c.Key("ctrl+z"))
	assert.Equal(t, ModeDragging, f.c.Mode())
}

func TestTripletToggle(t *testing.T) {
	f := newFixture(t)
	f.c.Key("t")
	assert.True(t, f.c.Snap().Triplet)
	f.c.Key("t")
	assert.False(t, f.c.Snap().Triplet)
}

func TestFrameAutoScroll(t *testing.T) {
	f := newFixture(t)
	f.c.SetViewport(50+160, 30+100)

	assert.False(t, f.c.Frame(), "idle")

	f.drag(at(0.5, 70), Pointer{X: 209, Y: 80, Button: ButtonLeft})
	require.Equal(t, ModeSelecting, f.c.Mode())

	assert.True(t, f.c.Frame())
	assert.Equal(t, 2.0, f.c.Scroll().X)
	assert.Equal(t, 209-50+2.0, f.c.Store().Marquee.CurrentX, "move replayed after scrolling")

	f.c.MouseUp(Pointer{X: 209, Y: 80, Button: ButtonLeft})
	assert.False(t, f.c.Frame())
}

func TestSetZoomKeepsLeftBeat(t *testing.T) {
	f := newFixture(t)
	f.c.SetViewport(50+160, 30+100)
	f.c.ScrollBy(80, 0) // beat 2 at the left edge

	f.c.SetZoom(2)
	assert.Equal(t, 80.0, f.c.Config().CellWidth())
	assert.Equal(t, 160.0, f.c.Scroll().X)
}

type fakePlayback struct {
	active  bool
	beats   []float64
	pauses  int
	resumes int
}

func (p *fakePlayback) Seek(beat float64) { p.beats = append(p.beats, beat) }
func (p *fakePlayback) Pause(ctx context.Context) error {
	p.pauses++
	p.active = false
	return nil
}
func (p *fakePlayback) Resume(ctx context.Context) error {
	p.resumes++
	p.active = true
	return nil
}
func (p *fakePlayback) IsActive() bool       { return p.active }
func (p *fakePlayback) CurrentBeat() float64 { return 0 }

func TestSeekStripScrubs(t *testing.T) {
	f := newFixture(t)
	pb := &fakePlayback{active: true}
	strip := NewSeekStrip(context.Background(), pb, f.c)
	f.c.Overlay().Register(strip)

	f.c.MouseDown(Pointer{X: 50 + 80, Y: 10, Button: ButtonLeft})
	assert.True(t, strip.Scrubbing())
	assert.Equal(t, 1, pb.pauses)

	f.c.MouseMove(Pointer{X: 50 + 122, Y: 10, Button: ButtonLeft})
	f.c.MouseUp(Pointer{X: 50 + 122, Y: 10, Button: ButtonLeft})

	assert.Equal(t, []float64{2, 3, 3}, pb.beats)
	assert.Equal(t, 1, pb.resumes)
	assert.False(t, strip.Scrubbing())
	assert.Zero(t, f.m.Len(), "grid never saw the click")
	assert.Equal(t, ModeNoteTool, f.c.Mode())
}

func TestSeekStripLeavesGridAlone(t *testing.T) {
	f := newFixture(t)
	pb := &fakePlayback{}
	f.c.Overlay().Register(NewSeekStrip(context.Background(), pb, f.c))

	f.click(at(1, 60))
	assert.Empty(t, pb.beats)
	assert.Equal(t, 1, f.m.Len())

	// paused playback stays paused after a scrub
	f.click(Pointer{X: 50 + 40, Y: 10, Button: ButtonLeft})
	assert.Zero(t, pb.pauses)
	assert.Zero(t, pb.resumes)
}

type claimAll struct {
	OverlayBase
	downs int
}

func (o *claimAll) OnMouseDown(Pointer) bool {
	o.downs++
	return true
}

func TestOverlayPriority(t *testing.T) {
	f := newFixture(t)
	first, second := &claimAll{}, &claimAll{}
	f.c.Overlay().Register(first)
	f.c.Overlay().Register(second)

	f.c.MouseDown(at(1, 60))
	assert.Equal(t, 1, first.downs)
	assert.Zero(t, second.downs)

	// OverlayBase passes the release through to the mode handler
	f.c.MouseUp(at(1, 60))
	assert.Zero(t, f.m.Len(), "no press was armed")
}

func TestStepInput(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.c.StepInput(60, 90), "no cursor yet")

	hover := at(2, 60)
	hover.Button = ButtonNone
	f.c.MouseMove(hover)

	require.True(t, f.c.StepInput(60, 90))
	require.True(t, f.c.StepInput(64, 90))
	assert.False(t, f.c.StepInput(64, 90), "already there")
	assert.False(t, f.c.StepInput(100, 90), "off the grid")
	f.c.AdvanceCursor()
	require.True(t, f.c.StepInput(67, 90))

	assert.ElementsMatch(t, []string{"C4:2", "E4:2", "G4:2.25"}, notes.Keys(f.m.All()))
	n, _ := f.m.FindByKey("G4:2.25")
	assert.Equal(t, 0.25, n.Duration)
	assert.Equal(t, 90, n.Velocity)
	assert.Len(t, f.log.undo, 3)
}
