package input

import (
	"fmt"
	"time"

	"github.com/gethiox/mfx/internal/pkg/event"
	"github.com/gethiox/mfx/internal/pkg/logger"
	"github.com/gethiox/mfx/internal/pkg/preset"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

const LongPressTime = 2000 * time.Millisecond

// ReconfigureFunc pushes a new encoder precision down to the hardware, if it has any notion of it
type ReconfigureFunc func(ch Channel, max, value int)

// Deriver turns raw samples into events. It is not safe for concurrent use,
// all samples have to be delivered from a single goroutine.
type Deriver struct {
	longPress   time.Duration
	reconfigure ReconfigureFunc
	noLogs      bool

	primaryDown  bool
	modifierDown bool

	primaryPressedAt  time.Time
	longPressConsumed bool // long press already fired in this primary hold-cycle
	chordConsumed     bool // modifier hold already used together with other input

	encoders [ChannelCount]Encoder
	// last raw position of absolute encoders, their readings are applied as deltas
	raw      [ChannelCount]int
	rawKnown [ChannelCount]bool
	muted    bool
	program  uint8
}

func NewDeriver(longPress time.Duration, reconfigure ReconfigureFunc, noLogs bool) *Deriver {
	return &Deriver{
		longPress:   longPress,
		reconfigure: reconfigure,
		noLogs:      noLogs,
	}
}

// Handle consumes one sample and returns derived events in order of occurrence
func (d *Deriver) Handle(s Sample) []event.Event {
	var events []event.Event

	switch s.Kind {
	case SampleButton:
		events = d.handleButton(s, events)
	case SampleEncoderDelta, SampleEncoderValue:
		events = d.handleEncoder(s, events)
	case SampleProgram:
		if s.Program >= preset.Count {
			if !d.noLogs {
				log.Info(fmt.Sprintf("program change %d has no midi map entry, ignored", s.Program), logger.Input)
			}
			break
		}
		d.program = s.Program
		events = append(events, event.MidiProgramReceived)
	case SampleTick:
		break
	}

	return d.checkLongPress(s.At, events)
}

func (d *Deriver) handleButton(s Sample, events []event.Event) []event.Event {
	switch s.Button {
	case ButtonPrimary:
		if s.Pressed == d.primaryDown {
			return events
		}
		d.primaryDown = s.Pressed
		if s.Pressed {
			d.primaryPressedAt = s.At
			d.longPressConsumed = false
			return events
		}
		if !d.longPressConsumed {
			events = append(events, event.PressPrimary)
		}
		d.longPressConsumed = false
	case ButtonModifier:
		if s.Pressed == d.modifierDown {
			return events
		}
		d.modifierDown = s.Pressed
		if s.Pressed {
			d.chordConsumed = false
			return events
		}
		if !d.chordConsumed {
			events = append(events, event.PressModifier)
		}
		d.chordConsumed = false
	}
	return events
}

func (d *Deriver) checkLongPress(now time.Time, events []event.Event) []event.Event {
	if !d.primaryDown || d.longPressConsumed {
		return events
	}
	if now.Sub(d.primaryPressedAt) < d.longPress {
		return events
	}

	d.longPressConsumed = true
	if d.modifierDown {
		d.chordConsumed = true
		return append(events, event.LongPressPrimaryWithModifier)
	}
	return append(events, event.LongPressPrimary)
}

func (d *Deriver) handleEncoder(s Sample, events []event.Event) []event.Event {
	if s.Channel < 0 || s.Channel >= ChannelCount {
		return events
	}

	delta := s.Value
	if s.Kind == SampleEncoderValue {
		known := d.rawKnown[s.Channel]
		delta = s.Value - d.raw[s.Channel]
		d.raw[s.Channel], d.rawKnown[s.Channel] = s.Value, true
		if !known {
			// first reading only establishes the hardware position
			return events
		}
	}

	if d.muted {
		if !d.noLogs {
			log.Info("encoder sample dropped during reconfiguration", logger.Debug, zap.String("channel", s.Channel.String()))
		}
		return events
	}

	if delta == 0 {
		return events
	}
	d.encoders[s.Channel].Apply(delta)

	switch s.Channel {
	case Primary:
		if d.modifierDown {
			d.chordConsumed = true
			return append(events, event.TurnPrimaryWithModifier)
		}
		return append(events, event.TurnPrimary)
	case Param1:
		return append(events, event.TurnParam1)
	case Param2:
		return append(events, event.TurnParam2)
	case Param3:
		return append(events, event.TurnParam3)
	}
	return events
}

// Configure changes encoder precision, samples delivered while hardware is being
// reconfigured are dropped.
func (d *Deriver) Configure(ch Channel, max, value int) {
	d.muted = true
	defer func() { d.muted = false }()

	if d.reconfigure != nil {
		d.reconfigure(ch, max, value)
	}
	d.encoders[ch].Configure(max, value)
}

// Value returns last encoder value
func (d *Deriver) Value(ch Channel) int {
	return d.encoders[ch].Value()
}

// Program returns last received midi program number
func (d *Deriver) Program() uint8 {
	return d.program
}

func (d *Deriver) Pressed(b Button) bool {
	switch b {
	case ButtonPrimary:
		return d.primaryDown
	case ButtonModifier:
		return d.modifierDown
	}
	return false
}
