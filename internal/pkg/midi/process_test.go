package midi

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gethiox/mfx/internal/pkg/input"
	"github.com/gethiox/mfx/internal/pkg/midi/driver"
	"github.com/stretchr/testify/assert"
)

type fakeIn struct {
	c      chan []byte
	opened bool
}

func (f *fakeIn) Name() string { return "fake in" }

func (f *fakeIn) Open() error {
	f.opened = true
	return nil
}

func (f *fakeIn) Close() error                  { return nil }
func (f *fakeIn) ReceiveChannel() <-chan []byte { return f.c }

type fakeOut struct {
	c chan []byte
}

func (f *fakeOut) Name() string               { return "fake out" }
func (f *fakeOut) Open() error                { return nil }
func (f *fakeOut) Close() error               { return nil }
func (f *fakeOut) SendChannel() chan<- []byte { return f.c }

func TestProgramSample(t *testing.T) {
	var at = time.Unix(10, 0)

	s, ok := programSample(Event{0xC2, 9}, at)
	assert.Equal(t, true, ok)
	assert.Equal(t, input.ProgramChange(2, 9, at), s)

	_, ok = programSample(Event{0xB0, 20, 1}, at)
	assert.Equal(t, false, ok)
}

func TestProcessMidiEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	in := &fakeIn{c: make(chan []byte, 4)}
	out := &fakeOut{c: make(chan []byte, 4)}
	eventsOut := make(chan Event, 4)
	samples := make(chan input.Sample, 4)
	score := Score{}

	err := ProcessMidiEvents(ctx, &wg, driver.Port{Input: in, Output: out}, eventsOut, samples, &score)
	assert.Equal(t, nil, err)

	in.c <- []byte{0xB0, 1, 1}
	in.c <- []byte{0xC0, 3}
	s := <-samples
	assert.Equal(t, input.SampleProgram, s.Kind)
	assert.Equal(t, uint8(3), s.Program)

	eventsOut <- ProgramChangeEvent(0, 4)
	assert.Equal(t, []byte{0xC0, 4}, <-out.c)

	cancel()
	wg.Wait()
	assert.Equal(t, uint(1), score.ProgramChangesReceived)
	assert.Equal(t, uint(1), score.MidiEventsEmitted)
	assert.Equal(t, true, in.opened)
}
