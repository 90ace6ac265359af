package main

import (
	"testing"
	"time"

	"github.com/gethiox/mfx/internal/pkg/input"
	"github.com/stretchr/testify/assert"
)

func press(t *testing.T, s *simulator, key rune) {
	for _, b := range s.bindings() {
		if b.key == key {
			b.action()
			return
		}
	}
	t.Fatalf("no binding for %q", key)
}

func TestSimulatorBindings(t *testing.T) {
	at := time.Unix(100, 0)
	samples := make(chan input.Sample, 16)
	s := newSimulator(samples)
	s.now = func() time.Time { return at }

	press(t, s, 'w')
	assert.Equal(t, input.EncoderDelta(input.Primary, 1, at), <-samples)

	press(t, s, 'E')
	assert.Equal(t, input.EncoderDelta(input.Param1, -10, at), <-samples)

	press(t, s, 'i')
	assert.Equal(t, input.EncoderDelta(input.Param3, 1, at), <-samples)

	press(t, s, '7')
	assert.Equal(t, input.ProgramChange(0, 7, at), <-samples)

	press(t, s, ' ')
	assert.Equal(t, input.ButtonLevel(input.ButtonPrimary, true, at), <-samples)
	assert.Contains(t, s.status(), "primary: down")

	press(t, s, ' ')
	assert.Equal(t, input.ButtonLevel(input.ButtonPrimary, false, at), <-samples)

	press(t, s, 'm')
	assert.Equal(t, input.ButtonLevel(input.ButtonModifier, true, at), <-samples)
	assert.Contains(t, s.status(), "modifier: down")
}

func TestSimulatorUniqueKeys(t *testing.T) {
	s := newSimulator(make(chan input.Sample, 1))
	var seen = map[rune]bool{}
	for _, b := range s.bindings() {
		assert.False(t, seen[b.key], "duplicated key %q", b.key)
		seen[b.key] = true
	}
}

func TestSimulatorQueueFull(t *testing.T) {
	samples := make(chan input.Sample, 1)
	s := newSimulator(samples)

	press(t, s, 'w')
	press(t, s, 'w') // dropped, must not block
	assert.Equal(t, 1, len(samples))
}
