package input

import (
	"fmt"
	"os"
	"strings"
)

const devicesFile = "/proc/bus/input/devices"

// NamePrefix marks encoder config value as device name instead of event path, eg. "name:rotary@11"
const NamePrefix = "name:"

// DeviceInfo is a single record of /proc/bus/input/devices
type DeviceInfo struct {
	Name     string
	Phys     string
	Handlers []string
}

// EventPath returns /dev/input/eventN path of the device, empty if device has no event handler
func (d DeviceInfo) EventPath() string {
	for _, h := range d.Handlers {
		if strings.HasPrefix(h, "event") {
			return "/dev/input/" + h
		}
	}
	return ""
}

// parseDevices parses /proc/bus/input/devices content, records are separated by an empty line
func parseDevices(data string) []DeviceInfo {
	var devices []DeviceInfo
	var device DeviceInfo
	var started bool

	flush := func() {
		if started {
			devices = append(devices, device)
		}
		device = DeviceInfo{}
		started = false
	}

	for _, line := range strings.Split(data, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if len(line) < 3 || line[1] != ':' {
			continue
		}
		started = true

		info := line[3:]
		switch line[0] {
		case 'N':
			device.Name = strings.Trim(strings.TrimPrefix(info, "Name="), "\"")
		case 'P':
			device.Phys = strings.TrimPrefix(info, "Phys=")
		case 'H':
			device.Handlers = strings.Fields(strings.TrimPrefix(info, "Handlers="))
		}
	}
	flush()
	return devices
}

func resolve(value string, devices []DeviceInfo) (string, error) {
	if !strings.HasPrefix(value, NamePrefix) {
		return value, nil
	}
	name := strings.TrimPrefix(value, NamePrefix)
	for _, d := range devices {
		if d.Name != name {
			continue
		}
		path := d.EventPath()
		if path == "" {
			return "", fmt.Errorf("input device \"%s\" has no event handler", name)
		}
		return path, nil
	}
	return "", fmt.Errorf("input device \"%s\" not found", name)
}

// ResolveDevicePath turns encoder config value into event device path.
// Values without NamePrefix are returned as they are.
func ResolveDevicePath(value string) (string, error) {
	if !strings.HasPrefix(value, NamePrefix) {
		return value, nil
	}
	data, err := os.ReadFile(devicesFile)
	if err != nil {
		return "", err
	}
	return resolve(value, parseDevices(string(data)))
}
