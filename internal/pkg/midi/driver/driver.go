package driver

import (
	"fmt"
	"strings"
)

type MIDIPort interface {
	Name() string
	Open() error
	Close() error
}

type MIDIIn interface {
	MIDIPort
	ReceiveChannel() <-chan []byte
}

type MIDIOut interface {
	MIDIPort
	SendChannel() chan<- []byte
}

type Port struct {
	// specific port may be nil if unavailable
	Input  MIDIIn
	Output MIDIOut
}

func (p *Port) String() string {
	switch {
	case p.Input == nil && p.Output == nil:
		return "(none)"
	case p.Input == nil:
		return fmt.Sprintf("%s (Output only)", p.Output.Name())
	case p.Output == nil:
		return fmt.Sprintf("%s (Input only)", p.Input.Name())
	}

	inName, outName := p.Input.Name(), p.Output.Name()

	var common int
	for common < min(len(inName), len(outName)) && inName[common] == outName[common] {
		common++
	}
	return fmt.Sprintf("%s (Input/Output)", strings.TrimSpace(inName[:common]))
}
