package alsa

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// rtmidi appends sequencer address "client:port" to every port name
var addressSuffix = regexp.MustCompile(`\s+\d+:\d+$`)

const throughPort = "Midi Through"

type endpoint struct {
	number int
	name   string
}

// device is a physical MIDI interface, in or out is -1 when the direction is missing
type device struct {
	name    string
	in, out int
}

func deviceName(port string) string {
	return strings.TrimSpace(addressSuffix.ReplaceAllString(port, ""))
}

// skipped reports ports that must never be used as a controller link:
// kernel loopback and our own virtual port, which would echo programs back to us.
func skipped(name, self string) bool {
	if strings.HasPrefix(name, throughPort) {
		return true
	}
	return self != "" && strings.HasPrefix(name, self)
}

// groupDevices joins inputs and outputs reported under the same device name,
// result is sorted by name so indexes stay stable across replugging of other devices.
func groupDevices(ins, outs []endpoint, self string) []device {
	byName := make(map[string]*device)
	get := func(name string) *device {
		d, ok := byName[name]
		if !ok {
			d = &device{name: name, in: -1, out: -1}
			byName[name] = d
		}
		return d
	}

	for _, e := range ins {
		name := deviceName(e.name)
		if skipped(name, self) {
			continue
		}
		if d := get(name); d.in < 0 {
			d.in = e.number
		}
	}
	for _, e := range outs {
		name := deviceName(e.name)
		if skipped(name, self) {
			continue
		}
		if d := get(name); d.out < 0 {
			d.out = e.number
		}
	}

	devices := make([]device, 0, len(byName))
	for _, d := range byName {
		devices = append(devices, *d)
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].name < devices[j].name })
	return devices
}

func pickDevice(devices []device, idx int) (device, error) {
	if idx >= len(devices) {
		return device{}, fmt.Errorf("midi port ID %d doesn't exist (%d available)", idx, len(devices))
	}
	return devices[idx], nil
}

// channelMessage reports voice messages addressed to one of 16 channels, realtime and system messages are not
func channelMessage(msg []byte) bool {
	return len(msg) > 0 && msg[0] >= 0x80 && msg[0] < 0xF0
}
