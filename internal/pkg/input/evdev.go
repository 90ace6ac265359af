package input

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gethiox/mfx/internal/pkg/logger"
	"github.com/holoplot/go-evdev"
	"go.uber.org/zap"
)

// Button codes expected from gpio-keys overlay
const (
	PrimaryButtonCode  = evdev.BTN_0
	ModifierButtonCode = evdev.BTN_1
)

// translate converts kernel input event coming from rotary-encoder (relative or absolute axis)
// or gpio-keys driver into a Sample.
func translate(ev *evdev.InputEvent, ch Channel, at time.Time) (Sample, bool) {
	switch ev.Type {
	case evdev.EV_REL:
		if ev.Value == 0 {
			return Sample{}, false
		}
		return EncoderDelta(ch, int(ev.Value), at), true
	case evdev.EV_ABS:
		return EncoderValue(ch, int(ev.Value), at), true
	case evdev.EV_KEY:
		if ev.Value == 2 { // repeat
			return Sample{}, false
		}
		switch ev.Code {
		case PrimaryButtonCode:
			return ButtonLevel(ButtonPrimary, ev.Value == 1, at), true
		case ModifierButtonCode:
			return ButtonLevel(ButtonModifier, ev.Value == 1, at), true
		}
	}
	return Sample{}, false
}

// EvdevSource reads one input device node (eg. /dev/input/by-path/platform-rotary@17-event)
// and feeds samples for the given encoder channel.
type EvdevSource struct {
	Path    string
	Channel Channel
}

func (e EvdevSource) String() string {
	return fmt.Sprintf("%s (%s)", e.Path, e.Channel)
}

// Run blocks until context is cancelled or the device disappears
func (e EvdevSource) Run(ctx context.Context, samples chan<- Sample) error {
	dev, err := evdev.Open(e.Path)
	if err != nil {
		return fmt.Errorf("opening \"%s\" failed: %w", e.Path, err)
	}

	go func() {
		<-ctx.Done()
		err := dev.Close()
		if err != nil {
			log.Info(fmt.Sprintf("closing \"%s\" failed: %v", e.Path, err), logger.Debug)
		}
	}()

	name, _ := dev.Name()
	name = strings.Trim(name, "\x00")
	log.Info("Reading encoder events", zap.String("handler_name", name), zap.String("channel", e.Channel.String()), logger.Debug)

	for {
		ev, err := dev.ReadOne()
		if err != nil {
			break
		}

		s, ok := translate(ev, e.Channel, time.Now())
		if !ok {
			continue
		}

		select {
		case samples <- s:
		case <-ctx.Done():
			return nil
		}
	}

	log.Info("Reading encoder events finished", zap.String("handler_name", name), logger.Debug)
	return nil
}
