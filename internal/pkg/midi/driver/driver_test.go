package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type named string

func (n named) Name() string                  { return string(n) }
func (n named) Open() error                   { return nil }
func (n named) Close() error                  { return nil }
func (n named) ReceiveChannel() <-chan []byte { return nil }
func (n named) SendChannel() chan<- []byte    { return nil }

func TestPort_String(t *testing.T) {
	for _, tc := range []struct {
		port     Port
		expected string
	}{
		{Port{}, "(none)"},
		{Port{Input: named("MFX:in 128:0")}, "MFX:in 128:0 (Input only)"},
		{Port{Output: named("MFX:out 128:1")}, "MFX:out 128:1 (Output only)"},
		{Port{Input: named("Pedal MIDI 1 20:0"), Output: named("Pedal MIDI 1 20:1")}, "Pedal MIDI 1 20: (Input/Output)"},
	} {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.port.String())
		})
	}
}
