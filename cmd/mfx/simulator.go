package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gethiox/mfx/internal/pkg/input"
	"github.com/gethiox/mfx/internal/pkg/logger"
)

type binding struct {
	key         rune
	description string
	action      func()
}

// simulator turns keyboard input of -ui mode into samples.
// Terminal does not report key releases, so buttons are toggled.
type simulator struct {
	samples chan<- input.Sample
	now     func() time.Time

	mu       sync.Mutex
	pressed  [2]bool
	lastSent string
}

func newSimulator(samples chan<- input.Sample) *simulator {
	return &simulator{samples: samples, now: time.Now}
}

func (s *simulator) send(sample input.Sample) {
	s.mu.Lock()
	s.lastSent = sample.String()
	s.mu.Unlock()

	select {
	case s.samples <- sample:
	default:
		log.Info(fmt.Sprintf("[SIM] sample queue is full, dropped: %s", sample), logger.Warning)
	}
}

func (s *simulator) turn(ch input.Channel, delta int) func() {
	return func() {
		s.send(input.EncoderDelta(ch, delta, s.now()))
	}
}

func (s *simulator) toggle(b input.Button) func() {
	return func() {
		s.mu.Lock()
		s.pressed[b] = !s.pressed[b]
		pressed := s.pressed[b]
		s.mu.Unlock()
		s.send(input.ButtonLevel(b, pressed, s.now()))
	}
}

func (s *simulator) program(n uint8) func() {
	return func() {
		s.send(input.ProgramChange(0, n, s.now()))
	}
}

func (s *simulator) bindings() []binding {
	var b = []binding{
		{'q', "primary -1", s.turn(input.Primary, -1)},
		{'w', "primary +1", s.turn(input.Primary, 1)},
		{'e', "param1 -1", s.turn(input.Param1, -1)},
		{'r', "param1 +1", s.turn(input.Param1, 1)},
		{'E', "param1 -10", s.turn(input.Param1, -10)},
		{'R', "param1 +10", s.turn(input.Param1, 10)},
		{'t', "param2 -1", s.turn(input.Param2, -1)},
		{'y', "param2 +1", s.turn(input.Param2, 1)},
		{'T', "param2 -10", s.turn(input.Param2, -10)},
		{'Y', "param2 +10", s.turn(input.Param2, 10)},
		{'u', "param3 -1", s.turn(input.Param3, -1)},
		{'i', "param3 +1", s.turn(input.Param3, 1)},
		{'U', "param3 -10", s.turn(input.Param3, -10)},
		{'I', "param3 +10", s.turn(input.Param3, 10)},
		{' ', "toggle primary button", s.toggle(input.ButtonPrimary)},
		{'m', "toggle modifier button", s.toggle(input.ButtonModifier)},
	}
	for i := uint8(0); i < 10; i++ {
		b = append(b, binding{rune('0' + i), fmt.Sprintf("midi program %d", i), s.program(i)})
	}
	return b
}

func (s *simulator) status() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := func(p bool) string {
		if p {
			return "down"
		}
		return "up"
	}
	return fmt.Sprintf("primary: %-4s modifier: %-4s last: %s",
		state(s.pressed[input.ButtonPrimary]), state(s.pressed[input.ButtonModifier]), s.lastSent)
}

func (s *simulator) help() string {
	var lines = []string{
		"q/w primary, e/r t/y u/i params (shift: x10)",
		"space: primary button, m: modifier button (toggle)",
		"0-9: midi program change, ctrl+c: exit",
	}
	return strings.Join(lines, "\n")
}
