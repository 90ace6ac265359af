package control

import (
	"errors"
	"testing"

	"github.com/gethiox/mfx/internal/pkg/event"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTableIsUnambiguous(t *testing.T) {
	table, err := NewTable(DefaultTransitions)
	assert.Equal(t, nil, err)
	assert.Equal(t, len(DefaultTransitions), len(table.Transitions()))
}

func TestNewTableRejectsDuplicates(t *testing.T) {
	_, err := NewTable([]Transition{
		{Start, event.TurnPrimary, SelectPresetToOpen, BrowseToOpen},
		{EditParam1, event.PressModifier, Start, ReturnToStart},
		{Start, event.TurnPrimary, EditProgram, BeginEditProgram},
	})
	assert.Equal(t, true, errors.Is(err, ErrDuplicateTransition))
}

func TestLookup(t *testing.T) {
	table := DefaultTable()

	tr, ok := table.Lookup(Start, event.LongPressPrimaryWithModifier)
	assert.Equal(t, true, ok)
	assert.Equal(t, EditMidiMapping, tr.To)
	assert.Equal(t, BeginEditMidiMapping, tr.Action)

	tr, ok = table.Lookup(ProcessingMidiCommand, event.OperationFinished)
	assert.Equal(t, true, ok)
	assert.Equal(t, OpeningPreset, tr.To)

	_, ok = table.Lookup(EditProgram, event.TurnPrimary)
	assert.Equal(t, false, ok)
}

func TestOperationModesReturnOnTheirOwn(t *testing.T) {
	table := DefaultTable()
	for _, mode := range AllModes {
		_, ok := table.Lookup(mode, event.OperationFinished)
		assert.Equal(t, mode.IsOperation(), ok, mode.String())
	}
}

func TestEveryModeIsReachable(t *testing.T) {
	var reached = map[Mode]bool{Start: true}
	for _, tr := range DefaultTransitions {
		reached[tr.To] = true
	}
	for _, mode := range AllModes {
		assert.Equal(t, true, reached[mode], mode.String())
	}
}
