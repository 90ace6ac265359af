package input

import "fmt"

// Channel identifies one of the rotary encoders
type Channel int

const (
	Primary Channel = iota
	Param1
	Param2
	Param3

	ChannelCount = 4
)

func (c Channel) String() string {
	switch c {
	case Primary:
		return "primary"
	case Param1:
		return "param1"
	case Param2:
		return "param2"
	case Param3:
		return "param3"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// ParamChannel returns encoder channel of n-th parameter (1-3)
func ParamChannel(n int) Channel {
	return Channel(n)
}

// Encoder keeps value of one encoder within [0, max] range (its precision)
type Encoder struct {
	max   int
	value int
}

func (e *Encoder) clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > e.max:
		return e.max
	default:
		return v
	}
}

// Configure changes precision of the encoder and sets its initial value
func (e *Encoder) Configure(max, value int) {
	if max < 0 {
		max = 0
	}
	e.max = max
	e.value = e.clamp(value)
}

// Apply moves encoder by given delta and returns the new value
func (e *Encoder) Apply(delta int) int {
	e.value = e.clamp(e.value + delta)
	return e.value
}

func (e *Encoder) Value() int {
	return e.value
}

func (e *Encoder) Max() int {
	return e.max
}
