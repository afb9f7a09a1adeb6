// Package transport is the playback clock: a playhead position in beats
// that advances with wall time at the current tempo.
package transport

import (
	"context"
	"math"
	"sync"
	"time"

	"go-pianoroll/debug"
)

const (
	MinTempo     = 20
	MaxTempo     = 300
	DefaultTempo = 120
)

// Transport is safe for concurrent use
type Transport struct {
	mu      sync.Mutex
	tempo   int
	length  float64 // beats; the playhead wraps here
	playing bool

	// the playhead was at anchorBeat at anchorTime
	anchorBeat float64
	anchorTime time.Time

	now func() time.Time
}

// New creates a stopped transport at beat 0. length <= 0 disables looping.
func New(tempo int, length float64) *Transport {
	return &Transport{
		tempo:  clampTempo(tempo),
		length: length,
		now:    time.Now,
	}
}

func clampTempo(bpm int) int {
	if bpm <= 0 {
		return DefaultTempo
	}
	return max(MinTempo, min(MaxTempo, bpm))
}

// SetTempo changes BPM without moving the playhead
func (t *Transport) SetTempo(bpm int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rebase()
	t.tempo = clampTempo(bpm)
}

// Tempo returns the BPM
func (t *Transport) Tempo() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tempo
}

// BeatDuration is the wall time of one beat at the current tempo
func (t *Transport) BeatDuration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return beatDuration(t.tempo)
}

func beatDuration(bpm int) time.Duration {
	return time.Minute / time.Duration(bpm)
}

// Play starts from the current position
func (t *Transport) Play() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.playing {
		return
	}
	t.playing = true
	t.anchorTime = t.now()
	debug.Log("transport", "play from %.3f at %d bpm", t.anchorBeat, t.tempo)
}

// Stop halts playback and rewinds to beat 0
func (t *Transport) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.playing = false
	t.anchorBeat = 0
	debug.Log("transport", "stop")
}

// Toggle plays when stopped and pauses when playing
func (t *Transport) Toggle() {
	if t.IsActive() {
		_ = t.Pause(context.Background())
		return
	}
	t.Play()
}

// Pause freezes the playhead where it is
func (t *Transport) Pause(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.playing {
		return nil
	}
	t.rebase()
	t.playing = false
	return nil
}

// Resume continues from the frozen position
func (t *Transport) Resume(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.Play()
	return nil
}

// Seek moves the playhead; playback continues from there if running
func (t *Transport) Seek(beat float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.anchorBeat = t.wrap(math.Max(0, beat))
	t.anchorTime = t.now()
}

// IsActive reports whether the playhead is moving
func (t *Transport) IsActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing
}

// CurrentBeat is the playhead position
func (t *Transport) CurrentBeat() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.position()
}

func (t *Transport) position() float64 {
	if !t.playing {
		return t.anchorBeat
	}
	elapsed := t.now().Sub(t.anchorTime)
	return t.wrap(t.anchorBeat + float64(elapsed)/float64(beatDuration(t.tempo)))
}

// rebase folds elapsed time into the anchor
func (t *Transport) rebase() {
	t.anchorBeat = t.position()
	t.anchorTime = t.now()
}

func (t *Transport) wrap(beat float64) float64 {
	if t.length <= 0 {
		return beat
	}
	return math.Mod(beat, t.length)
}
