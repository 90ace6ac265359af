//go:build arm || arm64

package output

import (
	"fmt"

	"github.com/gethiox/mfx/internal/pkg/logger"
	"github.com/kidoman/embd"
	_ "github.com/kidoman/embd/host/rpi"
)

// BCM pin numbers of program selector bits S0, S1, S2
var ProgramSelectPins = [3]int{17, 27, 22}

// ProgramPins drives 3-bit program selector of the analog switch
type ProgramPins struct {
	pins [3]embd.DigitalPin
}

func NewProgramPins() (*ProgramPins, error) {
	err := embd.InitGPIO()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gpio: %w", err)
	}

	var p ProgramPins
	for i, n := range ProgramSelectPins {
		pin, err := embd.NewDigitalPin(n)
		if err != nil {
			return nil, fmt.Errorf("failed to open pin %d: %w", n, err)
		}
		err = pin.SetDirection(embd.Out)
		if err != nil {
			return nil, fmt.Errorf("failed to set pin %d direction: %w", n, err)
		}
		p.pins[i] = pin
	}
	return &p, nil
}

func (p *ProgramPins) SetParam(n int, value uint8) {}

func (p *ProgramPins) SetProgram(program uint8) {
	for i, bit := range selectBits(program) {
		var level = embd.Low
		if bit {
			level = embd.High
		}
		err := p.pins[i].Write(level)
		if err != nil {
			log.Info(fmt.Sprintf("[GPIO] failed to write program bit S%d: %v", i, err), logger.Error)
		}
	}
}

func (p *ProgramPins) Close() error {
	for _, pin := range p.pins {
		pin.Close()
	}
	return nil
}
