//go:build cgo

package alsa

import (
	"fmt"
	"sync"

	"github.com/gethiox/mfx/internal/pkg/logger"
	"github.com/gethiox/mfx/internal/pkg/midi/driver"
	gomidi "gitlab.com/gomidi/midi/v2"

	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var log = logger.GetLogger()

const portBuffer = 16

// seqIn forwards channel voice messages of a sequencer input, anything else never reaches the controller
type seqIn struct {
	port    drivers.In
	msgs    chan []byte
	stop    func()
	dropped int
}

func newInPort(port drivers.In) driver.MIDIIn {
	return &seqIn{port: port, msgs: make(chan []byte, portBuffer)}
}

func (in *seqIn) Name() string { return in.port.String() }

func (in *seqIn) ReceiveChannel() <-chan []byte { return in.msgs }

func (in *seqIn) Open() error {
	if err := in.port.Open(); err != nil {
		return fmt.Errorf("failed to open input %q: %w", in.port, err)
	}

	stop, err := in.port.Listen(in.receive, drivers.ListenConfig{
		OnErr: func(err error) {
			log.Info(fmt.Sprintf("midi input %q: %s", in.port, err), logger.Warning)
		},
	})
	if err != nil {
		_ = in.port.Close()
		return fmt.Errorf("failed to listen on input %q: %w", in.port, err)
	}
	in.stop = stop
	return nil
}

func (in *seqIn) receive(msg []byte, _ int32) {
	if !channelMessage(msg) {
		return
	}
	select {
	case in.msgs <- msg:
	default:
		in.dropped++
		log.Info(fmt.Sprintf("midi input %q overflow, %d messages dropped", in.port, in.dropped), logger.Warning)
	}
}

func (in *seqIn) Close() error {
	if in.stop != nil {
		in.stop()
		in.stop = nil
	}
	return in.port.Close()
}

// seqOut writes queued messages to a sequencer output until closed
type seqOut struct {
	port drivers.Out
	msgs chan []byte
	once sync.Once
}

func newOutPort(port drivers.Out) driver.MIDIOut {
	return &seqOut{port: port, msgs: make(chan []byte, portBuffer)}
}

func (out *seqOut) Name() string { return out.port.String() }

func (out *seqOut) SendChannel() chan<- []byte { return out.msgs }

func (out *seqOut) Open() error {
	if err := out.port.Open(); err != nil {
		return fmt.Errorf("failed to open output %q: %w", out.port, err)
	}

	go func() {
		for msg := range out.msgs {
			if err := out.port.Send(msg); err != nil {
				log.Info(fmt.Sprintf("midi output %q: %s", out.port, err), logger.Warning)
			}
		}
	}()
	return nil
}

func (out *seqOut) Close() error {
	out.once.Do(func() { close(out.msgs) })
	return out.port.Close()
}

// CreateVirtualPort registers in/out port pair visible to other applications under given name
func CreateVirtualPort(name string) (driver.Port, error) {
	d := drivers.Get()
	if d == nil {
		return driver.Port{}, fmt.Errorf("failed to get driver")
	}

	rtmidid, ok := d.(*rtmididrv.Driver)
	if !ok {
		return driver.Port{}, fmt.Errorf("failed to convert driver")
	}

	in, err := rtmidid.OpenVirtualIn(name)
	if err != nil {
		return driver.Port{}, fmt.Errorf("failed to open virtual input: %w", err)
	}
	out, err := rtmidid.OpenVirtualOut(name)
	if err != nil {
		return driver.Port{}, fmt.Errorf("failed to open virtual output: %w", err)
	}

	return driver.Port{
		Input:  newInPort(in),
		Output: newOutPort(out),
	}, nil
}

func endpoints[T drivers.Port](ports []T) []endpoint {
	list := make([]endpoint, 0, len(ports))
	for _, p := range ports {
		list = append(list, endpoint{number: p.Number(), name: p.String()})
	}
	return list
}

// listDevices reads the sequencer ports, own virtual port named self is left out
func listDevices(self string) ([]device, gomidi.InPorts, gomidi.OutPorts) {
	inPorts, outPorts := gomidi.GetInPorts(), gomidi.GetOutPorts()
	return groupDevices(endpoints[drivers.In](inPorts), endpoints[drivers.Out](outPorts), self), inPorts, outPorts
}

func openDevice(d device, inPorts gomidi.InPorts, outPorts gomidi.OutPorts) driver.Port {
	var port driver.Port
	for _, in := range inPorts {
		if d.in >= 0 && in.Number() == d.in {
			port.Input = newInPort(in)
		}
	}
	for _, out := range outPorts {
		if d.out >= 0 && out.Number() == d.out {
			port.Output = newOutPort(out)
		}
	}
	return port
}

// GetPorts returns one port pair per connected MIDI device, sorted by device name
func GetPorts() []driver.Port {
	devices, inPorts, outPorts := listDevices("")
	ports := make([]driver.Port, 0, len(devices))
	for _, d := range devices {
		ports = append(ports, openDevice(d, inPorts, outPorts))
	}
	return ports
}

// PickMidiPort returns port pair of idx-th device, negative idx creates virtual port called name instead
func PickMidiPort(idx int, name string) (driver.Port, error) {
	if idx < 0 {
		return CreateVirtualPort(name)
	}

	devices, inPorts, outPorts := listDevices(name)
	d, err := pickDevice(devices, idx)
	if err != nil {
		return driver.Port{}, err
	}
	log.Info(fmt.Sprintf("using midi device %q", d.name), logger.Info)
	return openDevice(d, inPorts, outPorts), nil
}
