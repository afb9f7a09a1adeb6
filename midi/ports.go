// Package midi sends note previews to a MIDI output port and reads notes
// from a MIDI keyboard, through gomidi's rtmidi driver.
package midi

import (
	"fmt"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-pianoroll/debug"
)

// scanTimeout bounds port enumeration; CoreMIDI can hang
const scanTimeout = 3 * time.Second

// NoteEvent is a note played on an input device
type NoteEvent struct {
	Note     uint8
	Velocity uint8 // 0 for note off
	Channel  uint8
}

type portsResult struct {
	in  []drivers.In
	out []drivers.Out
}

func scan() (portsResult, error) {
	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{in: gomidi.GetInPorts(), out: gomidi.GetOutPorts()}
	}()
	select {
	case r := <-ch:
		return r, nil
	case <-time.After(scanTimeout):
		return portsResult{}, fmt.Errorf("midi port scan timed out after %s", scanTimeout)
	}
}

// OutPorts lists output port names
func OutPorts() ([]string, error) {
	r, err := scan()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(r.out))
	for i, p := range r.out {
		names[i] = p.String()
	}
	return names, nil
}

// InPorts lists input port names
func InPorts() ([]string, error) {
	r, err := scan()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(r.in))
	for i, p := range r.in {
		names[i] = p.String()
	}
	return names, nil
}

func findOut(name string) (drivers.Out, error) {
	r, err := scan()
	if err != nil {
		return nil, err
	}
	for _, p := range r.out {
		if p.String() == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("midi output %q not found", name)
}

func findIn(name string) (drivers.In, error) {
	r, err := scan()
	if err != nil {
		return nil, err
	}
	for _, p := range r.in {
		if p.String() == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("midi input %q not found", name)
}

// CloseDriver releases the MIDI driver; call once on exit
func CloseDriver() {
	gomidi.CloseDriver()
	debug.Log("midi", "driver closed")
}
