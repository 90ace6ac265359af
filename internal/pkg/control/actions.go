package control

import (
	"fmt"

	"github.com/gethiox/mfx/internal/pkg/display"
	"github.com/gethiox/mfx/internal/pkg/input"
	"github.com/gethiox/mfx/internal/pkg/logger"
	"go.uber.org/zap"
)

func (c *Controller) perform(t Transition) {
	switch t.Action {
	case ReturnToStart:
		c.enterStart()
	case BrowseToOpen, BrowseToSave:
		c.browse()
	case UpdateCandidate:
		c.candidate = c.inputs.Value(input.Primary)
		c.sink.ShowNumber(c.candidate+1, display.DotNone)
	case OpenSelected:
		c.candidate = c.inputs.Value(input.Primary)
		c.open(c.candidate)
	case SaveSelected:
		c.candidate = c.inputs.Value(input.Primary)
		c.save(c.candidate)
	case BeginEditParam:
		c.beginEditParam(t.To.param())
	case UpdateParam:
		c.updateParam(t.To.param())
	case BeginEditProgram:
		c.sink.Blink(false)
		c.inputs.Configure(input.Primary, MaxProgramValue, int(c.current.Program))
		c.sink.ShowNumber(int(c.current.Program)+1, display.DotFourth)
	case UpdateProgram:
		c.current.Program = uint8(c.inputs.Value(input.Primary))
		c.lines.SetProgram(c.current.Program)
		c.sink.ShowNumber(int(c.current.Program)+1, display.DotFourth)
	case BeginEditMidiMapping:
		c.mappingIndex = FirstMappingIndex
		c.sink.Blink(false)
		c.inputs.Configure(input.Param1, MaxPresetValue, c.mappingIndex)
		c.inputs.Configure(input.Primary, MaxPresetValue, int(c.midiMap[c.mappingIndex]))
		c.showMapping()
	case SelectMappingIndex:
		c.mappingIndex = c.inputs.Value(input.Param1)
		c.inputs.Configure(input.Primary, MaxPresetValue, int(c.midiMap[c.mappingIndex]))
		c.showMapping()
	case UpdateMappingTarget:
		c.midiMap[c.mappingIndex] = uint8(c.inputs.Value(input.Primary))
		c.showMapping()
	case SaveMidiMapping:
		c.saveMidiMapping()
	case RestoreMidiMapping:
		c.sink.HideSeparator()
		c.midiMap = c.committedMap
		if !c.noLogs {
			log.Info("midi mapping edits discarded", logger.Action)
		}
		c.pulse()
		c.finish()
	case ResolveMidiProgram:
		program := c.inputs.Program()
		c.candidate = int(c.midiMap[program])
		if !c.noLogs {
			log.Info(fmt.Sprintf("program change %d mapped to preset %d", program, c.candidate+1), logger.Action)
		}
		c.finish()
	case OpenMapped:
		c.open(c.candidate)
	default:
		panic(fmt.Sprintf("unhandled action: %s", t.Action))
	}
}

func (c *Controller) enterStart() {
	c.sink.Blink(false)
	c.sink.HideSeparator()
	c.inputs.Configure(input.Primary, MaxPresetValue, c.slot)
	c.sink.ShowNumber(c.slot+1, display.DotNone)
}

func (c *Controller) browse() {
	c.candidate = c.slot
	c.sink.Blink(true)
	c.inputs.Configure(input.Primary, MaxPresetValue, c.slot)
	c.sink.ShowNumber(c.slot+1, display.DotNone)
}

var paramDots = map[int]display.Dot{
	1: display.DotFirst,
	2: display.DotSecond,
	3: display.DotThird,
}

func (c *Controller) beginEditParam(n int) {
	c.sink.Blink(false)
	value := c.current.Param(n)
	c.inputs.Configure(input.ParamChannel(n), MaxParameterValue, int(value))
	c.sink.ShowNumber(int(value), paramDots[n])
}

func (c *Controller) updateParam(n int) {
	value := uint8(c.inputs.Value(input.ParamChannel(n)))
	c.current.SetParam(n, value)
	c.lines.SetParam(n, value)
	c.sink.ShowNumber(int(value), paramDots[n])
}

func (c *Controller) showMapping() {
	c.sink.ShowPair(c.mappingIndex+1, int(c.midiMap[c.mappingIndex])+1)
}

// applyOutputs pushes whole current preset to output lines
func (c *Controller) applyOutputs() {
	c.lines.SetProgram(c.current.Program)
	for n := 1; n <= 3; n++ {
		c.lines.SetParam(n, c.current.Param(n))
	}
}

func (c *Controller) open(slot int) {
	defer c.finish()
	c.sink.Blink(false)

	p, err := c.store.ReadPreset(slot)
	if err != nil {
		log.Info(fmt.Sprintf("failed to load preset %d: %v", slot+1, err), logger.Error)
		return
	}
	c.current = p
	c.slot = slot
	c.applyOutputs()
	if !c.noLogs {
		log.Info(fmt.Sprintf("preset loaded: %s", p), logger.Action, zap.Int("slot", slot+1))
	}

	err = c.store.WriteLastUsedIndex(slot)
	if err != nil {
		log.Info(fmt.Sprintf("failed to persist last used preset: %v", err), logger.Error)
		return
	}
	c.pulse()
}

func (c *Controller) save(slot int) {
	defer c.finish()
	c.sink.Blink(false)

	err := c.store.WritePreset(c.current, slot)
	if err != nil {
		log.Info(fmt.Sprintf("failed to save preset %d: %v", slot+1, err), logger.Error)
		return
	}
	c.slot = slot
	if !c.noLogs {
		log.Info(fmt.Sprintf("preset saved: %s", c.current), logger.Action, zap.Int("slot", slot+1))
	}

	err = c.store.WriteLastUsedIndex(slot)
	if err != nil {
		log.Info(fmt.Sprintf("failed to persist last used preset: %v", err), logger.Error)
		return
	}
	c.pulse()
}

func (c *Controller) saveMidiMapping() {
	defer c.finish()
	c.sink.HideSeparator()

	err := c.store.WriteMidiMap(c.midiMap)
	if err != nil {
		log.Info(fmt.Sprintf("failed to save midi mapping: %v", err), logger.Error)
		return
	}
	c.committedMap = c.midiMap
	if !c.noLogs {
		log.Info("midi mapping saved", logger.Action)
	}
	c.pulse()
}
