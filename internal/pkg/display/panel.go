package display

import (
	"strings"
	"sync"
)

// Dot selects which digit position carries a decimal point
type Dot int

const (
	DotNone Dot = iota - 1
	DotFirst
	DotSecond
	DotThird
	DotFourth
)

// Sink accepts fire-and-forget feedback commands
type Sink interface {
	ShowNumber(value int, dot Dot)
	ShowPair(left, right int)
	Blink(on bool)
	ShowDone()
	HideSeparator()
}

const (
	DigitCount = 4
	MaxNumber  = 9999
)

// Frame is a full state of the 4-digit panel, colon sits between second and third digit
type Frame struct {
	Digits [DigitCount]byte
	Dots   [DigitCount]bool
	Colon  bool
	Blink  bool
}

func (f Frame) String() string {
	var b strings.Builder
	for i, d := range f.Digits {
		if i == 2 {
			if f.Colon {
				b.WriteByte(':')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte(d)
		if f.Dots[i] {
			b.WriteByte('.')
		}
	}
	return b.String()
}

func blankFrame() Frame {
	return Frame{Digits: [DigitCount]byte{' ', ' ', ' ', ' '}}
}

// Panel implements Sink by keeping a Frame and publishing every change.
// Publishing never blocks, a slow consumer only gets the most recent frame.
type Panel struct {
	mu     sync.Mutex
	frame  Frame
	frames chan Frame
}

func NewPanel() *Panel {
	return &Panel{
		frame:  blankFrame(),
		frames: make(chan Frame, 1),
	}
}

// Frames returns channel of published frames, intended for a single consumer
func (p *Panel) Frames() <-chan Frame {
	return p.frames
}

func (p *Panel) Frame() Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame
}

func (p *Panel) update(f func(frame *Frame)) {
	p.mu.Lock()
	f(&p.frame)
	var frame = p.frame
	p.mu.Unlock()

	select {
	case p.frames <- frame:
	default:
		select {
		case <-p.frames:
		default:
		}
		select {
		case p.frames <- frame:
		default:
		}
	}
}

// ShowNumber draws right aligned value without leading zeros, colon is left untouched
func (p *Panel) ShowNumber(value int, dot Dot) {
	if value < 0 {
		value = 0
	}
	if value > MaxNumber {
		value = MaxNumber
	}

	p.update(func(frame *Frame) {
		var divisor = 1000
		for i := 0; i < DigitCount; i++ {
			digit := value / divisor % 10
			if value < divisor && i < DigitCount-1 {
				frame.Digits[i] = ' '
			} else {
				frame.Digits[i] = byte('0' + digit)
			}
			frame.Dots[i] = Dot(i) == dot
			divisor /= 10
		}
	})
}

func twoDigits(value int) (byte, byte) {
	value %= 100
	if value < 0 {
		value = -value
	}
	var tens byte = ' '
	if value > 9 {
		tens = byte('0' + value/10)
	}
	return tens, byte('0' + value%10)
}

// ShowPair draws two 2-digit values separated by colon
func (p *Panel) ShowPair(left, right int) {
	p.update(func(frame *Frame) {
		frame.Digits[0], frame.Digits[1] = twoDigits(left)
		frame.Digits[2], frame.Digits[3] = twoDigits(right)
		frame.Dots = [DigitCount]bool{}
		frame.Colon = true
	})
}

func (p *Panel) Blink(on bool) {
	p.update(func(frame *Frame) {
		frame.Blink = on
	})
}

func (p *Panel) ShowDone() {
	p.update(func(frame *Frame) {
		frame.Digits = [DigitCount]byte{'d', 'o', 'n', 'E'}
		frame.Dots = [DigitCount]bool{}
	})
}

func (p *Panel) HideSeparator() {
	p.update(func(frame *Frame) {
		frame.Colon = false
	})
}
