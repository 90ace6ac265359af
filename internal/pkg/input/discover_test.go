package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const devices = `I: Bus=0019 Vendor=0000 Product=0000 Version=0000
N: Name="rotary@11"
P: Phys=
S: Sysfs=/devices/platform/rotary@11/input/input0
U: Uniq=
H: Handlers=event0 
B: PROP=0
B: EV=5
B: REL=1

I: Bus=0019 Vendor=0000 Product=0000 Version=0000
N: Name="rotary@16"
P: Phys=
S: Sysfs=/devices/platform/rotary@16/input/input1
U: Uniq=
H: Handlers=event1 
B: PROP=0
B: EV=5
B: REL=1

I: Bus=0003 Vendor=046d Product=c52b Version=0111
N: Name="Logitech USB Receiver"
P: Phys=usb-3f980000.usb-1.3/input0
S: Sysfs=/devices/platform/soc/3f980000.usb/usb1/1-1/1-1.3/1-1.3:1.0/0003:046D:C52B.0001/input/input2
U: Uniq=
H: Handlers=sysrq kbd leds 
B: PROP=0
B: EV=120013

`

func TestParseDevices(t *testing.T) {
	d := parseDevices(devices)
	assert.Equal(t, 3, len(d))
	assert.Equal(t, DeviceInfo{Name: "rotary@11", Phys: "", Handlers: []string{"event0"}}, d[0])
	assert.Equal(t, "/dev/input/event1", d[1].EventPath())
	assert.Equal(t, "usb-3f980000.usb-1.3/input0", d[2].Phys)
	assert.Equal(t, []string{"sysrq", "kbd", "leds"}, d[2].Handlers)
	assert.Equal(t, "", d[2].EventPath())

	assert.Equal(t, 0, len(parseDevices("")))
}

func TestResolve(t *testing.T) {
	d := parseDevices(devices)

	for _, tc := range []struct {
		value, path string
		err         bool
	}{
		{value: "/dev/input/by-path/platform-rotary@11-event", path: "/dev/input/by-path/platform-rotary@11-event"},
		{value: "name:rotary@16", path: "/dev/input/event1"},
		{value: "name:rotary@17", err: true},
		{value: "name:Logitech USB Receiver", err: true},
	} {
		t.Run(tc.value, func(t *testing.T) {
			path, err := resolve(tc.value, d)
			if tc.err {
				assert.NotEqual(t, nil, err)
				return
			}
			assert.Equal(t, nil, err)
			assert.Equal(t, tc.path, path)
		})
	}
}
