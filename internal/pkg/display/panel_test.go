package display

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShowNumber(t *testing.T) {
	for _, tc := range []struct {
		value    int
		dot      Dot
		expected string
	}{
		{1, DotNone, "    1"},
		{32, DotNone, "   32"},
		{255, DotFirst, " .2 55"},
		{7, DotFourth, "    7."},
		{100, DotSecond, " 1. 00"},
		{1000, DotNone, "10 00"},
		{12345, DotNone, "99 99"},
		{-3, DotNone, "    0"},
		{0, DotThird, "    .0"},
		{5, DotThird, "    .5"},
	} {
		t.Run(fmt.Sprintf("%d-%d", tc.value, tc.dot), func(t *testing.T) {
			p := NewPanel()
			p.ShowNumber(tc.value, tc.dot)
			assert.Equal(t, tc.expected, p.Frame().String())
		})
	}
}

func TestShowPair(t *testing.T) {
	p := NewPanel()
	p.ShowNumber(88, DotFirst)
	p.ShowPair(2, 12)
	assert.Equal(t, " 2:12", p.Frame().String())

	p.HideSeparator()
	assert.Equal(t, " 2 12", p.Frame().String())
}

func TestShowDoneAndBlink(t *testing.T) {
	p := NewPanel()
	p.Blink(true)
	p.ShowNumber(3, DotFourth)
	assert.Equal(t, true, p.Frame().Blink)

	p.Blink(false)
	p.ShowDone()
	assert.Equal(t, "do nE", p.Frame().String())
	assert.Equal(t, false, p.Frame().Blink)
}

func TestFramesKeepLatest(t *testing.T) {
	p := NewPanel()
	p.ShowNumber(1, DotNone)
	p.ShowNumber(2, DotNone)
	p.ShowNumber(3, DotNone)

	f := <-p.Frames()
	assert.Equal(t, "    3", f.String())
	select {
	case f := <-p.Frames():
		t.Fatalf("unexpected frame: %s", f)
	default:
	}
}

func TestRender(t *testing.T) {
	var frame = blankFrame()
	frame.Digits = [DigitCount]byte{' ', ' ', '1', '2'}

	lines := render(frame, 16, false)
	assert.Equal(t, "        12     ", lines[0][:15])
	assert.Equal(t, 16, len(lines[0]))

	frame.Blink = true
	lines = render(frame, 16, true)
	assert.Equal(t, "               ●", lines[0])
}
