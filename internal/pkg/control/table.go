package control

import (
	"errors"
	"fmt"

	"github.com/gethiox/mfx/internal/pkg/event"
)

// Action identifies a transition handler, see Controller.perform
type Action int

const (
	ReturnToStart Action = iota
	BrowseToOpen
	BrowseToSave
	UpdateCandidate
	OpenSelected
	SaveSelected
	BeginEditParam
	UpdateParam
	BeginEditProgram
	UpdateProgram
	BeginEditMidiMapping
	SelectMappingIndex
	UpdateMappingTarget
	SaveMidiMapping
	RestoreMidiMapping
	ResolveMidiProgram
	OpenMapped
)

func (a Action) String() string {
	switch a {
	case ReturnToStart:
		return "return-to-start"
	case BrowseToOpen:
		return "browse-to-open"
	case BrowseToSave:
		return "browse-to-save"
	case UpdateCandidate:
		return "update-candidate"
	case OpenSelected:
		return "open-selected"
	case SaveSelected:
		return "save-selected"
	case BeginEditParam:
		return "begin-edit-param"
	case UpdateParam:
		return "update-param"
	case BeginEditProgram:
		return "begin-edit-program"
	case UpdateProgram:
		return "update-program"
	case BeginEditMidiMapping:
		return "begin-edit-midi-mapping"
	case SelectMappingIndex:
		return "select-mapping-index"
	case UpdateMappingTarget:
		return "update-mapping-target"
	case SaveMidiMapping:
		return "save-midi-mapping"
	case RestoreMidiMapping:
		return "restore-midi-mapping"
	case ResolveMidiProgram:
		return "resolve-midi-program"
	case OpenMapped:
		return "open-mapped"
	default:
		return "unknown"
	}
}

type Transition struct {
	From   Mode
	On     event.Event
	To     Mode
	Action Action
}

func (t Transition) String() string {
	return fmt.Sprintf("%s --%s--> %s (%s)", t.From, t.On, t.To, t.Action)
}

var ErrDuplicateTransition = errors.New("duplicate transition")

type key struct {
	mode  Mode
	event event.Event
}

// Table is an unambiguous set of transitions, at most one per (mode, event) pair
type Table struct {
	transitions []Transition
	index       map[key]int
}

func NewTable(transitions []Transition) (*Table, error) {
	t := &Table{
		transitions: make([]Transition, 0, len(transitions)),
		index:       make(map[key]int, len(transitions)),
	}
	for _, tr := range transitions {
		k := key{mode: tr.From, event: tr.On}
		if i, ok := t.index[k]; ok {
			return nil, fmt.Errorf("%w: %s clashes with %s", ErrDuplicateTransition, tr, t.transitions[i])
		}
		t.index[k] = len(t.transitions)
		t.transitions = append(t.transitions, tr)
	}
	return t, nil
}

func (t *Table) Lookup(mode Mode, ev event.Event) (Transition, bool) {
	i, ok := t.index[key{mode: mode, event: ev}]
	if !ok {
		return Transition{}, false
	}
	return t.transitions[i], true
}

func (t *Table) Transitions() []Transition {
	var c = make([]Transition, len(t.transitions))
	copy(c, t.transitions)
	return c
}

var DefaultTransitions = []Transition{
	// branching from start
	{Start, event.TurnPrimary, SelectPresetToOpen, BrowseToOpen},
	{Start, event.TurnParam1, EditParam1, BeginEditParam},
	{Start, event.TurnParam2, EditParam2, BeginEditParam},
	{Start, event.TurnParam3, EditParam3, BeginEditParam},
	{Start, event.LongPressPrimary, SelectPresetToSave, BrowseToSave},
	{Start, event.LongPressPrimaryWithModifier, EditMidiMapping, BeginEditMidiMapping},
	{Start, event.TurnPrimaryWithModifier, EditProgram, BeginEditProgram},
	{Start, event.MidiProgramReceived, ProcessingMidiCommand, ResolveMidiProgram},

	{SelectPresetToOpen, event.TurnPrimary, SelectPresetToOpen, UpdateCandidate},
	{SelectPresetToOpen, event.PressPrimary, OpeningPreset, OpenSelected},
	{SelectPresetToOpen, event.PressModifier, Start, ReturnToStart},

	{SelectPresetToSave, event.TurnPrimary, SelectPresetToSave, UpdateCandidate},
	{SelectPresetToSave, event.PressPrimary, SavingPreset, SaveSelected},
	{SelectPresetToSave, event.PressModifier, Start, ReturnToStart},

	{EditParam1, event.TurnParam1, EditParam1, UpdateParam},
	{EditParam1, event.PressModifier, Start, ReturnToStart},
	{EditParam2, event.TurnParam2, EditParam2, UpdateParam},
	{EditParam2, event.PressModifier, Start, ReturnToStart},
	{EditParam3, event.TurnParam3, EditParam3, UpdateParam},
	{EditParam3, event.PressModifier, Start, ReturnToStart},

	{EditProgram, event.TurnPrimaryWithModifier, EditProgram, UpdateProgram},
	{EditProgram, event.PressModifier, Start, ReturnToStart},

	{EditMidiMapping, event.TurnParam1, EditMidiMapping, SelectMappingIndex},
	{EditMidiMapping, event.TurnPrimary, EditMidiMapping, UpdateMappingTarget},
	{EditMidiMapping, event.PressModifier, RestoringMidiMapping, RestoreMidiMapping},
	{EditMidiMapping, event.LongPressPrimary, SavingMidiMapping, SaveMidiMapping},

	// operations return on their own
	{OpeningPreset, event.OperationFinished, Start, ReturnToStart},
	{SavingPreset, event.OperationFinished, Start, ReturnToStart},
	{RestoringMidiMapping, event.OperationFinished, Start, ReturnToStart},
	{SavingMidiMapping, event.OperationFinished, Start, ReturnToStart},
	{ProcessingMidiCommand, event.OperationFinished, OpeningPreset, OpenMapped},
}

// DefaultTable returns transition table of the device
func DefaultTable() *Table {
	t, err := NewTable(DefaultTransitions)
	if err != nil {
		panic(err)
	}
	return t
}
