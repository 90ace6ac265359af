package output

import (
	"fmt"
	"sync"
)

// Levels remembers last values written to the lines, safe to read from other goroutines
type Levels struct {
	mu      sync.Mutex
	params  [3]uint8
	program uint8
}

func (l *Levels) SetParam(n int, value uint8) {
	if n < 1 || n > 3 {
		return
	}
	l.mu.Lock()
	l.params[n-1] = value
	l.mu.Unlock()
}

func (l *Levels) SetProgram(program uint8) {
	l.mu.Lock()
	l.program = program
	l.mu.Unlock()
}

func (l *Levels) Get() (params [3]uint8, program uint8) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.params, l.program
}

func (l *Levels) String() string {
	params, program := l.Get()
	return fmt.Sprintf("program: %d, params: %3d/%3d/%3d", program+1, params[0], params[1], params[2])
}
