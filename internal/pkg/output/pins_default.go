//go:build !arm && !arm64

package output

import "errors"

type ProgramPins struct{}

func NewProgramPins() (*ProgramPins, error) {
	return nil, errors.New("hardware not supported")
}

func (p *ProgramPins) SetParam(n int, value uint8) {}
func (p *ProgramPins) SetProgram(program uint8)    {}
func (p *ProgramPins) Close() error                { return nil }
