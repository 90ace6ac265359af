//go:build arm || arm64

package input

import (
	"context"
	"fmt"
	"time"

	"github.com/gethiox/mfx/internal/pkg/logger"
	"github.com/kidoman/embd"
	_ "github.com/kidoman/embd/host/rpi"
)

// BCM pin numbers of the buttons, wired active-low with pull-ups
const (
	PrimaryButtonPin  = 8
	ModifierButtonPin = 7
)

// GPIOButtons polls both buttons on a fixed rate
type GPIOButtons struct {
	primary, modifier embd.DigitalPin
}

func NewGPIOButtons() (*GPIOButtons, error) {
	err := embd.InitGPIO()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gpio: %w", err)
	}

	var pins = make([]embd.DigitalPin, 2)
	for i, n := range []int{PrimaryButtonPin, ModifierButtonPin} {
		pin, err := embd.NewDigitalPin(n)
		if err != nil {
			return nil, fmt.Errorf("failed to open pin %d: %w", n, err)
		}
		err = pin.SetDirection(embd.In)
		if err != nil {
			return nil, fmt.Errorf("failed to set pin %d direction: %w", n, err)
		}
		pins[i] = pin
	}

	return &GPIOButtons{primary: pins[0], modifier: pins[1]}, nil
}

func pressed(pin embd.DigitalPin) (bool, error) {
	v, err := pin.Read()
	if err != nil {
		return false, err
	}
	return v == embd.Low, nil
}

// Run samples both buttons every tick until context is cancelled
func (b *GPIOButtons) Run(ctx context.Context, rate time.Duration, samples chan<- Sample) {
	ticker := time.NewTicker(rate)
	defer ticker.Stop()
	defer b.close()

	log.Info("[GPIO] button polling engaged", logger.Debug)
root:
	for {
		select {
		case <-ctx.Done():
			break root
		case now := <-ticker.C:
			for _, x := range []struct {
				button Button
				pin    embd.DigitalPin
			}{
				{ButtonPrimary, b.primary},
				{ButtonModifier, b.modifier},
			} {
				p, err := pressed(x.pin)
				if err != nil {
					log.Info(fmt.Sprintf("[GPIO] reading %s button failed: %v", x.button, err), logger.Warning)
					continue
				}
				select {
				case samples <- ButtonLevel(x.button, p, now):
				case <-ctx.Done():
					break root
				}
			}
		}
	}
	log.Info("[GPIO] button polling stopped", logger.Debug)
}

func (b *GPIOButtons) close() {
	b.primary.Close()
	b.modifier.Close()
	embd.CloseGPIO()
}
