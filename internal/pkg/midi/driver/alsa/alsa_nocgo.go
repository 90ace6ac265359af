//go:build !cgo

package alsa

import (
	"errors"

	"github.com/gethiox/mfx/internal/pkg/midi/driver"
)

var errNoCgo = errors.New("rtmidi driver requires cgo, use raw midi backend instead")

func CreateVirtualPort(name string) (driver.Port, error) {
	return driver.Port{}, errNoCgo
}

func GetPorts() []driver.Port {
	return nil
}

func PickMidiPort(idx int, name string) (driver.Port, error) {
	return driver.Port{}, errNoCgo
}
