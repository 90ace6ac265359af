package input

import (
	"fmt"
	"time"
)

type SampleKind int

const (
	SampleTick SampleKind = iota
	SampleButton
	SampleEncoderDelta
	SampleEncoderValue
	SampleProgram
)

func (k SampleKind) String() string {
	switch k {
	case SampleTick:
		return "tick"
	case SampleButton:
		return "button"
	case SampleEncoderDelta:
		return "encoder delta"
	case SampleEncoderValue:
		return "encoder value"
	case SampleProgram:
		return "program change"
	default:
		return "unknown"
	}
}

type Button int

const (
	ButtonPrimary Button = iota
	ButtonModifier
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonModifier:
		return "modifier"
	default:
		return "unknown"
	}
}

// Sample is a raw hardware observation, sources push them into a single queue
type Sample struct {
	Kind SampleKind
	At   time.Time

	// SampleButton, Pressed is a logical level, sources take care of active-low wiring
	Button  Button
	Pressed bool

	// SampleEncoderDelta (Value is a delta) and SampleEncoderValue (Value is an absolute position)
	Channel Channel
	Value   int

	// SampleProgram
	MidiChannel uint8
	Program     uint8
}

func (s Sample) String() string {
	switch s.Kind {
	case SampleButton:
		return fmt.Sprintf("%s button pressed: %t", s.Button, s.Pressed)
	case SampleEncoderDelta:
		return fmt.Sprintf("%s encoder delta: %+d", s.Channel, s.Value)
	case SampleEncoderValue:
		return fmt.Sprintf("%s encoder value: %d", s.Channel, s.Value)
	case SampleProgram:
		return fmt.Sprintf("program change: %d (channel: %d)", s.Program, s.MidiChannel+1)
	default:
		return s.Kind.String()
	}
}

func Tick(at time.Time) Sample {
	return Sample{Kind: SampleTick, At: at}
}

func ButtonLevel(b Button, pressed bool, at time.Time) Sample {
	return Sample{Kind: SampleButton, Button: b, Pressed: pressed, At: at}
}

func EncoderDelta(ch Channel, delta int, at time.Time) Sample {
	return Sample{Kind: SampleEncoderDelta, Channel: ch, Value: delta, At: at}
}

func EncoderValue(ch Channel, value int, at time.Time) Sample {
	return Sample{Kind: SampleEncoderValue, Channel: ch, Value: value, At: at}
}

func ProgramChange(channel, program uint8, at time.Time) Sample {
	return Sample{Kind: SampleProgram, MidiChannel: channel, Program: program, At: at}
}
