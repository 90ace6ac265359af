package event

// Event is a discrete, debounced input occurrence consumed by the mode state machine
type Event int

const (
	TurnPrimary Event = iota
	TurnPrimaryWithModifier
	TurnParam1
	TurnParam2
	TurnParam3
	PressPrimary
	PressModifier
	LongPressPrimary
	LongPressPrimaryWithModifier
	OperationFinished
	MidiProgramReceived
)

// All lists every event kind, in declaration order
var All = []Event{
	TurnPrimary,
	TurnPrimaryWithModifier,
	TurnParam1,
	TurnParam2,
	TurnParam3,
	PressPrimary,
	PressModifier,
	LongPressPrimary,
	LongPressPrimaryWithModifier,
	OperationFinished,
	MidiProgramReceived,
}

func (e Event) String() string {
	switch e {
	case TurnPrimary:
		return "turn-primary"
	case TurnPrimaryWithModifier:
		return "turn-primary-with-modifier"
	case TurnParam1:
		return "turn-param1"
	case TurnParam2:
		return "turn-param2"
	case TurnParam3:
		return "turn-param3"
	case PressPrimary:
		return "press-primary"
	case PressModifier:
		return "press-modifier"
	case LongPressPrimary:
		return "long-press-primary"
	case LongPressPrimaryWithModifier:
		return "long-press-primary-with-modifier"
	case OperationFinished:
		return "operation-finished"
	case MidiProgramReceived:
		return "midi-program-received"
	default:
		return "unknown"
	}
}
