package interaction

import (
	"context"
	"math"

	"go-pianoroll/debug"
	"go-pianoroll/grid"
)

// OverlayHandler gets pointer events before the mode handlers. Returning
// true claims the event.
type OverlayHandler interface {
	OnMouseDown(ev Pointer) bool
	OnMouseMove(ev Pointer) bool
	OnMouseUp(ev Pointer) bool
	OnMouseLeave(ev Pointer) bool
}

// OverlayBase passes every event through; embed it and override what you need
type OverlayBase struct{}

func (OverlayBase) OnMouseDown(Pointer) bool  { return false }
func (OverlayBase) OnMouseMove(Pointer) bool  { return false }
func (OverlayBase) OnMouseUp(Pointer) bool    { return false }
func (OverlayBase) OnMouseLeave(Pointer) bool { return false }

// OverlayContext holds overlay handlers in priority order
type OverlayContext struct {
	handlers []OverlayHandler
}

// Register appends h below the handlers already registered
func (o *OverlayContext) Register(h OverlayHandler) {
	o.handlers = append(o.handlers, h)
}

// Dispatch offers ev to each handler until one claims it
func (o *OverlayContext) Dispatch(kind EventKind, ev Pointer) bool {
	for i, h := range o.handlers {
		var claimed bool
		switch kind {
		case EventDown:
			claimed = h.OnMouseDown(ev)
		case EventMove:
			claimed = h.OnMouseMove(ev)
		case EventUp:
			claimed = h.OnMouseUp(ev)
		case EventLeave:
			claimed = h.OnMouseLeave(ev)
		}
		if claimed {
			if kind != EventMove {
				debug.Log("overlay", "%s claimed by #%d", kind, i)
			}
			return true
		}
	}
	return false
}

// Playback is the transport the seek strip scrubs
type Playback interface {
	Seek(beat float64)
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	IsActive() bool
	CurrentBeat() float64
}

// Geometry is the live view the seek strip maps pointer x through
type Geometry interface {
	Config() grid.Config
	Scroll() grid.Scroll
	Snap() grid.Snap
}

// SeekStrip scrubs playback from the header band. Playback paused by a
// scrub resumes on release.
type SeekStrip struct {
	OverlayBase

	ctx    context.Context
	player Playback
	view   Geometry

	scrubbing bool
	resume    bool
}

// NewSeekStrip binds a strip to a transport and the controller's view
func NewSeekStrip(ctx context.Context, player Playback, view Geometry) *SeekStrip {
	return &SeekStrip{ctx: ctx, player: player, view: view}
}

// Scrubbing reports whether a press on the strip is held
func (s *SeekStrip) Scrubbing() bool {
	return s.scrubbing
}

func (s *SeekStrip) OnMouseDown(ev Pointer) bool {
	cfg := s.view.Config()
	if ev.Button != ButtonLeft || ev.Y < 0 || ev.Y >= cfg.HeaderHeight || ev.X < cfg.LabelWidth {
		return false
	}
	s.scrubbing = true
	s.resume = false
	if s.player.IsActive() {
		if err := s.player.Pause(s.ctx); err != nil {
			debug.Log("overlay", "seek: pause failed: %v", err)
		} else {
			s.resume = true
		}
	}
	s.seek(ev)
	return true
}

func (s *SeekStrip) OnMouseMove(ev Pointer) bool {
	if !s.scrubbing {
		return false
	}
	s.seek(ev)
	return true
}

func (s *SeekStrip) OnMouseUp(ev Pointer) bool {
	if !s.scrubbing {
		return false
	}
	s.seek(ev)
	s.release()
	return true
}

func (s *SeekStrip) OnMouseLeave(ev Pointer) bool {
	if !s.scrubbing {
		return false
	}
	s.release()
	return true
}

func (s *SeekStrip) release() {
	s.scrubbing = false
	if !s.resume {
		return
	}
	s.resume = false
	if err := s.player.Resume(s.ctx); err != nil {
		debug.Log("overlay", "seek: resume failed: %v", err)
	}
}

// seek moves playback to the snapped beat under the pointer
func (s *SeekStrip) seek(ev Pointer) {
	cfg := s.view.Config()
	gx := ev.X - cfg.LabelWidth + s.view.Scroll().X
	beat := s.view.Snap().Beat(cfg.BeatAt(gx))
	beat = math.Max(0, math.Min(beat, cfg.TotalBeats()))
	s.player.Seek(beat)
	debug.LogEvery(10, "overlay", "seek %.3f", beat)
}
