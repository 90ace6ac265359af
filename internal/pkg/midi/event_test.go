package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_String(t *testing.T) {
	for _, tc := range []struct {
		midiEvent Event
		expected  string
	}{
		{
			midiEvent: []byte{0b10110000, 0b00000000, 0b00000000},
			expected:  "Control Change:   0, value:   0 (channel:  1)",
		}, {
			midiEvent: []byte{0b10111111, 20, 127},
			expected:  "Control Change:  20, value: 127 (channel: 16)",
		}, {
			midiEvent: []byte{0b10110001, 21},
			expected:  "Control Change:  21, value: --- (channel:  2)",
		}, {
			midiEvent: []byte{0b11000000, 0},
			expected:  "Program Change:   0 (channel:  1)",
		}, {
			midiEvent: []byte{0b11001001, 31},
			expected:  "Program Change:  31 (channel: 10)",
		}, {
			midiEvent: []byte{},
			expected:  "Warning: empty Midi event, it should be not emitted",
		},
	} {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.midiEvent.String())
		})
	}
}

func TestEvent_ProgramChange(t *testing.T) {
	for _, tc := range []struct {
		name            string
		midiEvent       Event
		ok              bool
		channel, number uint8
	}{
		{"first channel", Event{0xC0, 5}, true, 0, 5},
		{"last channel", Event{0xCF, 31}, true, 15, 31},
		{"high program", Event{0xC3, 127}, true, 3, 127},
		{"control change", Event{0xB0, 5, 10}, false, 0, 0},
		{"note on", Event{0x90, 60, 100}, false, 0, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			channel, program, ok := tc.midiEvent.ProgramChange()
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.channel, channel)
				assert.Equal(t, tc.number, program)
			}
		})
	}
}

func TestEventConstructors(t *testing.T) {
	assert.Equal(t, Event{0xB2, 20, 64}, ControlChangeEvent(2, 20, 64))
	assert.Equal(t, Event{0xC0, 7}, ProgramChangeEvent(0, 7))
}
