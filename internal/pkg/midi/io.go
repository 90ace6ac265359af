package midi

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gethiox/mfx/internal/pkg/logger"
	"github.com/gethiox/mfx/internal/pkg/midi/driver"
)

// DetectDevices lists raw midi character devices, it works without any midi library
func DetectDevices(dir string) ([]IODevice, error) {
	fd, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	entries, err := fd.ReadDir(0)
	if err != nil {
		return nil, err
	}

	var devices = make([]IODevice, 0)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if strings.HasPrefix(entry.Name(), "midi") {
			devices = append(devices, IODevice{path: fmt.Sprintf("%s/%s", dir, entry.Name())})
		}
	}

	return devices, nil
}

type IODevice struct {
	path string
}

func (d *IODevice) Name() string {
	return d.path
}

func (d *IODevice) Open() (*os.File, error) {
	return os.OpenFile(d.path, os.O_RDWR|os.O_SYNC, 0)
}

// dataLength returns number of data bytes following given status byte, -1 for messages without fixed length
func dataLength(status byte) int {
	switch status & 0b11110000 {
	case ProgramChange, ChannelPressure:
		return 1
	case 0xF0:
		switch status {
		case 0xF1, 0xF3:
			return 1
		case 0xF2:
			return 2
		case 0xF0, 0xF7:
			return -1
		default:
			return 0
		}
	default:
		return 2
	}
}

// splitMessages cuts raw byte stream into complete messages, running status is supported
// and system exclusive data is dropped.
func splitMessages(r io.ByteReader, out chan<- []byte) error {
	var (
		status  byte
		pending []byte
		need    int
		sysex   bool
	)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}

		switch {
		case b >= 0xF8: // realtime, may appear anywhere
			continue
		case b&0x80 != 0:
			if b == 0xF7 {
				sysex = false
				continue
			}
			sysex = b == 0xF0
			need = dataLength(b)
			if b >= 0xF0 {
				status = 0 // system common messages cancel running status
				if need == 0 {
					continue
				}
			} else {
				status = b
			}
			pending = []byte{b}
			continue
		case sysex:
			continue
		}

		if len(pending) == 0 {
			if status == 0 {
				continue
			}
			pending = []byte{status}
			need = dataLength(status)
		}
		pending = append(pending, b)
		if len(pending)-1 == need {
			if pending[0] < 0xF0 {
				out <- pending
			}
			pending = nil
		}
	}
}

type rawIn struct {
	device *IODevice
	file   *os.File
	c      chan []byte
}

func (in *rawIn) Name() string { return in.device.Name() }

func (in *rawIn) Open() error {
	f, err := in.device.Open()
	if err != nil {
		return fmt.Errorf("failed to open raw midi device: %w", err)
	}
	in.file = f
	go func() {
		defer close(in.c)
		err := splitMessages(bufio.NewReader(f), in.c)
		log.Info(fmt.Sprintf("raw midi input closed: %v", err), logger.Debug)
	}()
	return nil
}

func (in *rawIn) Close() error {
	if in.file == nil {
		return nil
	}
	return in.file.Close()
}

func (in *rawIn) ReceiveChannel() <-chan []byte { return in.c }

type rawOut struct {
	device *IODevice
	file   *os.File
	c      chan []byte
}

func (out *rawOut) Name() string { return out.device.Name() }

func (out *rawOut) Open() error {
	f, err := out.device.Open()
	if err != nil {
		return fmt.Errorf("failed to open raw midi device: %w", err)
	}
	out.file = f
	go func() {
		for ev := range out.c {
			_, err := f.Write(ev)
			if err != nil {
				log.Info(fmt.Sprintf("failed to write midi event: %v", err), logger.Warning)
			}
		}
	}()
	return nil
}

func (out *rawOut) Close() error {
	close(out.c)
	if out.file == nil {
		return nil
	}
	return out.file.Close()
}

func (out *rawOut) SendChannel() chan<- []byte { return out.c }

// RawPort wraps raw midi device into port pair
func RawPort(d IODevice) driver.Port {
	return driver.Port{
		Input:  &rawIn{device: &d, c: make(chan []byte, 16)},
		Output: &rawOut{device: &d, c: make(chan []byte, 16)},
	}
}
