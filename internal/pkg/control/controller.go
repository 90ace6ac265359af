package control

import (
	"context"
	"fmt"
	"time"

	"github.com/gethiox/mfx/internal/pkg/display"
	"github.com/gethiox/mfx/internal/pkg/event"
	"github.com/gethiox/mfx/internal/pkg/input"
	"github.com/gethiox/mfx/internal/pkg/logger"
	"github.com/gethiox/mfx/internal/pkg/output"
	"github.com/gethiox/mfx/internal/pkg/preset"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

const DoneDisplayTime = 300 * time.Millisecond

// encoder ranges per mode
const (
	MaxPresetValue    = preset.MaxSlot
	MaxParameterValue = preset.MaxParam
	MaxProgramValue   = preset.MaxProgram
)

// FirstMappingIndex is the map entry shown when midi mapping edit begins
const FirstMappingIndex = 1

type Store interface {
	IsInitialized() (bool, error)
	FactoryReset() error
	WritePreset(p preset.Preset, index int) error
	ReadPreset(index int) (preset.Preset, error)
	WriteMidiMap(m preset.MidiMap) error
	ReadMidiMap() (preset.MidiMap, error)
	WriteLastUsedIndex(index int) error
	ReadLastUsedIndex() (int, error)
}

// Inputs derives events from samples and holds encoder state, see input.Deriver
type Inputs interface {
	Handle(s input.Sample) []event.Event
	Value(ch input.Channel) int
	Program() uint8
	Configure(ch input.Channel, max, value int)
}

// Controller owns every piece of mutable device state, all of it is touched
// from a single goroutine only.
type Controller struct {
	table  *Table
	store  Store
	inputs Inputs
	sink   display.Sink
	lines  output.Lines
	noLogs bool

	// replaced in tests
	sleep func(time.Duration)
	now   func() time.Time

	mode         Mode
	current      preset.Preset
	slot         int
	candidate    int
	midiMap      preset.MidiMap
	committedMap preset.MidiMap
	mappingIndex int

	pending   []event.Event
	busyUntil time.Time
}

func NewController(table *Table, store Store, inputs Inputs, sink display.Sink, lines output.Lines, noLogs bool) *Controller {
	return &Controller{
		table:   table,
		store:   store,
		inputs:  inputs,
		sink:    sink,
		lines:   lines,
		noLogs:  noLogs,
		sleep:   time.Sleep,
		now:     time.Now,
		mode:    Start,
		midiMap: preset.IdentityMap(),

		committedMap: preset.IdentityMap(),
	}
}

func (c *Controller) Mode() Mode {
	return c.mode
}

func (c *Controller) Current() preset.Preset {
	return c.current
}

// Slot returns index of the currently selected preset
func (c *Controller) Slot() int {
	return c.slot
}

func (c *Controller) MidiMap() preset.MidiMap {
	return c.midiMap
}

// Dispatch processes event and every follow-up event queued by actions, one at a time
func (c *Controller) Dispatch(ev event.Event) {
	c.pending = append(c.pending, ev)
	for len(c.pending) > 0 {
		next := c.pending[0]
		c.pending = c.pending[1:]
		c.dispatch(next)
	}
}

func (c *Controller) dispatch(ev event.Event) {
	t, ok := c.table.Lookup(c.mode, ev)
	if !ok {
		if !c.noLogs {
			log.Info(fmt.Sprintf("event %s ignored in %s mode", ev, c.mode), logger.Debug)
		}
		return
	}

	c.mode = t.To
	if !c.noLogs {
		log.Info("transition", logger.Action,
			zap.String("from", t.From.String()),
			zap.String("event", ev.String()),
			zap.String("mode", t.To.String()),
			zap.String("action", t.Action.String()),
		)
	}
	c.perform(t)
}

// finish queues operation-finished, it is dispatched after the current action returns
func (c *Controller) finish() {
	c.pending = append(c.pending, event.OperationFinished)
}

// pulse shows the completion glyph and holds the loop, input sampled meanwhile is discarded
func (c *Controller) pulse() {
	c.sink.ShowDone()
	c.sleep(DoneDisplayTime)
	c.busyUntil = c.now()
}

// HandleSample derives events from a single sample and dispatches them.
// Button levels sampled during the done pause still update button state,
// only events derived from them are dropped.
func (c *Controller) HandleSample(s input.Sample) {
	busy := s.Kind != input.SampleTick && !s.At.IsZero() && s.At.Before(c.busyUntil)
	if busy && s.Kind != input.SampleButton {
		if !c.noLogs {
			log.Info(fmt.Sprintf("sample %s discarded, controller was busy", s), logger.Debug)
		}
		return
	}

	events := c.inputs.Handle(s)
	if busy {
		if !c.noLogs && len(events) > 0 {
			log.Info(fmt.Sprintf("events %v discarded, controller was busy", events), logger.Debug)
		}
		return
	}

	for _, ev := range events {
		if !c.noLogs {
			log.Info(fmt.Sprintf("event %s", ev), logger.Input, zap.String("mode", c.mode.String()))
		}
		c.Dispatch(ev)
	}
}

// Run consumes samples until context is cancelled or samples channel is closed.
// Ticks are generated internally with given rate to let time based events fire.
func (c *Controller) Run(ctx context.Context, samples <-chan input.Sample, tickRate time.Duration) {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	log.Info("controller engaged", logger.Debug)
root:
	for {
		select {
		case <-ctx.Done():
			break root
		case s, ok := <-samples:
			if !ok {
				break root
			}
			c.HandleSample(s)
		case now := <-ticker.C:
			c.HandleSample(input.Tick(now))
		}
	}
	log.Info("controller stopped", logger.Debug)
}
