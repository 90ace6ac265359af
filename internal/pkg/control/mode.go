package control

// Mode is the current top-level UI state of the device
type Mode int

const (
	Start Mode = iota
	SelectPresetToOpen
	SelectPresetToSave
	EditParam1
	EditParam2
	EditParam3
	EditMidiMapping
	EditProgram
	OpeningPreset
	SavingPreset
	SavingMidiMapping
	RestoringMidiMapping
	ProcessingMidiCommand
)

var AllModes = []Mode{
	Start,
	SelectPresetToOpen,
	SelectPresetToSave,
	EditParam1,
	EditParam2,
	EditParam3,
	EditMidiMapping,
	EditProgram,
	OpeningPreset,
	SavingPreset,
	SavingMidiMapping,
	RestoringMidiMapping,
	ProcessingMidiCommand,
}

func (m Mode) String() string {
	switch m {
	case Start:
		return "Start"
	case SelectPresetToOpen:
		return "SelectPresetToOpen"
	case SelectPresetToSave:
		return "SelectPresetToSave"
	case EditParam1:
		return "EditParam1"
	case EditParam2:
		return "EditParam2"
	case EditParam3:
		return "EditParam3"
	case EditMidiMapping:
		return "EditMidiMapping"
	case EditProgram:
		return "EditProgram"
	case OpeningPreset:
		return "OpeningPreset"
	case SavingPreset:
		return "SavingPreset"
	case SavingMidiMapping:
		return "SavingMidiMapping"
	case RestoringMidiMapping:
		return "RestoringMidiMapping"
	case ProcessingMidiCommand:
		return "ProcessingMidiCommand"
	default:
		return "Unknown"
	}
}

// param returns parameter number edited in given mode, 0 if mode does not edit any
func (m Mode) param() int {
	switch m {
	case EditParam1:
		return 1
	case EditParam2:
		return 2
	case EditParam3:
		return 3
	default:
		return 0
	}
}

// IsOperation tells if mode only sequences a side effect and returns on its own
func (m Mode) IsOperation() bool {
	switch m {
	case OpeningPreset, SavingPreset, SavingMidiMapping, RestoringMidiMapping, ProcessingMidiCommand:
		return true
	default:
		return false
	}
}
