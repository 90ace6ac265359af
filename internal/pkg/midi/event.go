package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

const (
	// message types
	NoteOff         uint8 = 0b1000 << 4
	NoteOn          uint8 = 0b1001 << 4
	ControlChange   uint8 = 0b1011 << 4
	ProgramChange   uint8 = 0b1100 << 4
	ChannelPressure uint8 = 0b1101 << 4 // After-touch

	// ControlChange
	AllNotesOff         uint8 = 0b01111011
	ResetAllControllers uint8 = 0b01111001
)

type Event []byte

func (e Event) String() string {
	if len(e) == 0 {
		return fmt.Sprintf("Warning: empty Midi event, it should be not emitted")
	}
	channel := e[0]&0b1111 + 1
	switch x := e[0] & 0b11110000; x {
	case ControlChange:
		var value string
		if len(e) == 3 {
			value = fmt.Sprintf("%3d", e[2])
		} else {
			value = "---"
		}
		return fmt.Sprintf("Control Change: %3d, value: %s (channel: %2d)", e[1], value, channel)
	case ProgramChange:
		if len(e) < 2 {
			return "Program Change: --- (truncated)"
		}
		return fmt.Sprintf("Program Change: %3d (channel: %2d)", e[1], channel)
	default:
		return fmt.Sprintf("Other: %s", gomidi.Message(e).String())
	}
}

// ProgramChange decodes program change message, program number is zero based
func (e Event) ProgramChange() (channel, program uint8, ok bool) {
	ok = gomidi.Message(e).GetProgramChange(&channel, &program)
	return channel, program, ok
}

func ControlChangeEvent(channel, function, value uint8) Event {
	return Event(gomidi.ControlChange(channel&0b1111, function&0b01111111, value&0b01111111))
}

func ProgramChangeEvent(channel, program uint8) Event {
	return Event(gomidi.ProgramChange(channel&0b1111, program&0b01111111))
}
