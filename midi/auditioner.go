package midi

import (
	"fmt"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-pianoroll/debug"
)

// DefaultGate caps how long a preview rings
const DefaultGate = 400 * time.Millisecond

// Auditioner plays note previews on one output port and channel. It
// implements notes.Auditioner and is safe for concurrent use.
type Auditioner struct {
	mu      sync.Mutex
	send    func(gomidi.Message) error
	channel uint8

	// beat gives the current beat length, usually from the transport
	beat func() time.Duration
	gate time.Duration

	held    bool // a looped preview is sounding
	heldKey uint8
}

// Open connects to the named output port. channel is 1-based as in the UI.
func Open(port string, channel int, beat func() time.Duration) (*Auditioner, error) {
	out, err := findOut(port)
	if err != nil {
		return nil, err
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("open output %q: %w", port, err)
	}
	debug.Log("midi", "opened %s ch %d", port, channel)
	return newAuditioner(send, channel, beat), nil
}

func newAuditioner(send func(gomidi.Message) error, channel int, beat func() time.Duration) *Auditioner {
	if beat == nil {
		beat = func() time.Duration { return 500 * time.Millisecond }
	}
	return &Auditioner{
		send:    send,
		channel: uint8(max(0, min(15, channel-1))),
		beat:    beat,
		gate:    DefaultGate,
	}
}

// SetGate changes the preview length cap; <= 0 means DefaultGate
func (a *Auditioner) SetGate(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if d <= 0 {
		d = DefaultGate
	}
	a.gate = d
}

// PlayNote sounds key for beats at the current tempo, capped at the gate.
// A looped preview is held until the next PlayNote or Silence.
func (a *Auditioner) PlayNote(key int, beats float64, velocity int, loop bool) {
	if key < 0 || key > 127 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	a.releaseLocked()
	k := uint8(key)
	vel := uint8(max(1, min(127, velocity)))
	if err := a.send(gomidi.NoteOn(a.channel, k, vel)); err != nil {
		debug.Log("midi", "note on %d: %v", key, err)
		return
	}
	if loop {
		a.held, a.heldKey = true, k
		return
	}

	length := min(time.Duration(beats*float64(a.beat())), a.gate)
	go func(send func(gomidi.Message) error, ch, n uint8) {
		time.Sleep(length)
		send(gomidi.NoteOff(ch, n))
	}(a.send, a.channel, k)
}

// Silence releases a held preview
func (a *Auditioner) Silence() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.releaseLocked()
}

func (a *Auditioner) releaseLocked() {
	if !a.held {
		return
	}
	a.held = false
	if err := a.send(gomidi.NoteOff(a.channel, a.heldKey)); err != nil {
		debug.Log("midi", "note off %d: %v", a.heldKey, err)
	}
}
