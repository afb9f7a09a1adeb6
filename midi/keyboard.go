package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-pianoroll/debug"
)

// Keyboard reads notes from a MIDI input device
type Keyboard struct {
	name     string
	stopFunc func()
	noteChan chan NoteEvent
}

// OpenKeyboard starts listening on the named input port
func OpenKeyboard(port string) (*Keyboard, error) {
	in, err := findIn(port)
	if err != nil {
		return nil, err
	}
	kb := newKeyboard(port)
	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		kb.handle(msg)
	})
	if err != nil {
		return nil, fmt.Errorf("open input %q: %w", port, err)
	}
	kb.stopFunc = stop
	debug.Log("midi", "listening on %s", port)
	return kb, nil
}

func newKeyboard(name string) *Keyboard {
	return &Keyboard{name: name, noteChan: make(chan NoteEvent, 32)}
}

// handle turns note starts and ends into events. A full channel drops the
// event rather than blocking the driver callback.
func (kb *Keyboard) handle(msg gomidi.Message) {
	var ch, key, vel uint8
	var ev NoteEvent
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		ev = NoteEvent{Note: key, Velocity: vel, Channel: ch}
	case msg.GetNoteEnd(&ch, &key):
		ev = NoteEvent{Note: key, Channel: ch}
	default:
		return
	}
	select {
	case kb.noteChan <- ev:
	default:
		debug.Log("midi", "%s: dropped note %d", kb.name, key)
	}
}

// Name is the input port name
func (kb *Keyboard) Name() string {
	return kb.name
}

// NoteEvents delivers played notes
func (kb *Keyboard) NoteEvents() <-chan NoteEvent {
	return kb.noteChan
}

// Close stops listening and closes the event channel
func (kb *Keyboard) Close() error {
	if kb.stopFunc != nil {
		kb.stopFunc()
	}
	close(kb.noteChan)
	return nil
}
