package midi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gethiox/mfx/internal/pkg/input"
	"github.com/gethiox/mfx/internal/pkg/logger"
	"github.com/gethiox/mfx/internal/pkg/midi/driver"
)

var log = logger.GetLogger()

type Score struct {
	ProgramChangesReceived uint
	MidiEventsEmitted      uint
}

// ProcessMidiEvents pumps output events into the port and turns received program changes into samples.
// Either side of the port may be missing.
func ProcessMidiEvents(ctx context.Context, wg *sync.WaitGroup, port driver.Port,
	midiEventsOut <-chan Event, samples chan<- input.Sample, score *Score) error {

	if port.Output != nil {
		err := port.Output.Open()
		if err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer port.Output.Close()
			portOut := port.Output.SendChannel()

		root:
			for {
				select {
				case <-ctx.Done():
					break root
				case ev, ok := <-midiEventsOut:
					if !ok {
						break root
					}
					portOut <- ev
					score.MidiEventsEmitted++
					log.Info(fmt.Sprintf("output event: %s", ev), logger.Debug)
				}
			}

			log.Info("Processing output midi events stopped", logger.Debug)
		}()
	}

	if port.Input != nil {
		err := port.Input.Open()
		if err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer port.Input.Close()
			inEvents := port.Input.ReceiveChannel()

		root:
			for {
				select {
				case <-ctx.Done():
					break root
				case raw, ok := <-inEvents:
					if !ok {
						break root
					}
					if s, ok := programSample(Event(raw), time.Now()); ok {
						score.ProgramChangesReceived++
						select {
						case samples <- s:
						case <-ctx.Done():
							break root
						}
					}
				}
			}

			log.Info("Processing input midi events stopped", logger.Debug)
		}()
	}
	return nil
}

func programSample(ev Event, at time.Time) (input.Sample, bool) {
	channel, program, ok := ev.ProgramChange()
	if !ok {
		log.Info(fmt.Sprintf("input event ignored: %s", ev), logger.Debug)
		return input.Sample{}, false
	}
	log.Info(fmt.Sprintf("input event: %s", ev), logger.Input)
	return input.ProgramChange(channel, program, at), true
}
