package alsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceName(t *testing.T) {
	for _, tc := range []struct {
		port     string
		expected string
	}{
		{"Pedal MIDI 1 20:0", "Pedal MIDI 1"},
		{"Midi Through:Midi Through Port-0 14:0", "Midi Through:Midi Through Port-0"},
		{"MFX", "MFX"},
		{"", ""},
	} {
		t.Run(tc.port, func(t *testing.T) {
			assert.Equal(t, tc.expected, deviceName(tc.port))
		})
	}
}

func TestGroupDevices(t *testing.T) {
	ins := []endpoint{
		{0, "Midi Through:Midi Through Port-0 14:0"},
		{1, "Pedal MIDI 1 20:0"},
		{2, "MFX 128:0"},
		{3, "Keys:Keys MIDI 1 24:0"},
	}
	outs := []endpoint{
		{0, "Midi Through:Midi Through Port-0 14:0"},
		{1, "Amp:Amp MIDI 1 28:0"},
		{2, "Pedal MIDI 1 20:1"},
		{3, "MFX 128:1"},
	}

	devices := groupDevices(ins, outs, "MFX")
	assert.Equal(t, []device{
		{name: "Amp:Amp MIDI 1", in: -1, out: 1},
		{name: "Keys:Keys MIDI 1", in: 3, out: -1},
		{name: "Pedal MIDI 1", in: 1, out: 2},
	}, devices)
}

func TestGroupDevicesKeepsFirstDuplicate(t *testing.T) {
	ins := []endpoint{{4, "Pedal 20:0"}, {5, "Pedal 20:1"}}

	devices := groupDevices(ins, nil, "")
	assert.Equal(t, []device{{name: "Pedal", in: 4, out: -1}}, devices)
}

func TestPickDevice(t *testing.T) {
	devices := []device{{name: "Pedal", in: 1, out: 2}}

	d, err := pickDevice(devices, 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, "Pedal", d.name)

	_, err = pickDevice(devices, 1)
	assert.EqualError(t, err, "midi port ID 1 doesn't exist (1 available)")
}

func TestChannelMessage(t *testing.T) {
	assert.Equal(t, true, channelMessage([]byte{0xC3, 5}))
	assert.Equal(t, true, channelMessage([]byte{0xB0, 7, 100}))
	assert.Equal(t, false, channelMessage([]byte{0xF8}))
	assert.Equal(t, false, channelMessage([]byte{0xF0, 0x7E, 0xF7}))
	assert.Equal(t, false, channelMessage([]byte{0x40}))
	assert.Equal(t, false, channelMessage(nil))
}
