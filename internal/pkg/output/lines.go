package output

import (
	"fmt"

	"github.com/gethiox/mfx/internal/pkg/logger"
	"github.com/gethiox/mfx/internal/pkg/midi"
	"github.com/gethiox/mfx/internal/pkg/preset"
)

var log = logger.GetLogger()

// Lines receives parameter values (0-255) and program selector (0-7)
type Lines interface {
	SetParam(n int, value uint8)
	SetProgram(program uint8)
}

// Multi fans every call out to all of its lines
type Multi []Lines

func (m Multi) SetParam(n int, value uint8) {
	for _, l := range m {
		l.SetParam(n, value)
	}
}

func (m Multi) SetProgram(program uint8) {
	for _, l := range m {
		l.SetProgram(program)
	}
}

// FirstParamController is a CC number of the first parameter, the rest follows
const FirstParamController = 20

// MidiLines mirrors outputs as midi messages: parameters as control changes, program as program change
type MidiLines struct {
	channel uint8
	events  chan<- midi.Event
}

func NewMidiLines(channel uint8, events chan<- midi.Event) *MidiLines {
	return &MidiLines{channel: channel, events: events}
}

func scale(value uint8) uint8 {
	return uint8(int(value) * 127 / preset.MaxParam)
}

func (m *MidiLines) send(ev midi.Event) {
	select {
	case m.events <- ev:
	default:
		log.Info(fmt.Sprintf("midi output is congested, dropped: %s", ev), logger.Warning)
	}
}

func (m *MidiLines) SetParam(n int, value uint8) {
	m.send(midi.ControlChangeEvent(m.channel, uint8(FirstParamController+n-1), scale(value)))
}

func (m *MidiLines) SetProgram(program uint8) {
	m.send(midi.ProgramChangeEvent(m.channel, program&preset.MaxProgram))
}

// Log writes every output change to the log, used when no hardware lines are present
type Log struct{}

func (Log) SetParam(n int, value uint8) {
	log.Info(fmt.Sprintf("param %d: %d", n, value), logger.Action)
}

func (Log) SetProgram(program uint8) {
	log.Info(fmt.Sprintf("program: %d", program+1), logger.Action)
}
