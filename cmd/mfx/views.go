package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/awesome-gocui/gocui"
	"github.com/gethiox/mfx/internal/pkg/display"
	"github.com/gethiox/mfx/internal/pkg/logger"
	"github.com/gethiox/mfx/internal/pkg/output"
	"github.com/logrusorgru/aurora"
)

func logView(g *gocui.Gui, color bool, logLevel, bufSize int, rate time.Duration) {
	feeder, err := NewFeeder(g, ViewLogs, logLevel, aurora.NewAurora(color))
	if err != nil {
		panic(err)
	}

	buf := newLogBuffer(bufSize)

	var newMessage = make(chan bool, 1)
	go func() {
		for msg := range logger.Messages {
			buf.WriteMessage(msg)
			select {
			case newMessage <- true:
			default:
			}
		}
		close(newMessage)
	}()

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	var lastX, lastY int
	for {
		select {
		case _, ok := <-newMessage:
			if !ok {
				return
			}
		case <-ticker.C:
			x, y := feeder.view.Size()
			if x == lastX && y == lastY {
				continue
			}
			lastX, lastY = x, y
		}

		g.Update(func(g *gocui.Gui) error {
			feeder.view.Clear()
			_, y := feeder.view.Size()
			for _, msg := range buf.ReadLastMessages(y) {
				feeder.Write(msg)
			}
			return nil
		})
	}
}

// panelLines draws 4-digit frame with big colon and blink phase
func panelLines(frame display.Frame, hidden bool, au aurora.Aurora) []string {
	text := frame.String()
	if hidden {
		text = strings.Repeat(" ", len(text))
	}
	var blink = "     "
	if frame.Blink {
		blink = "blink"
	}
	return []string{
		"",
		fmt.Sprintf("   [ %s ]   %s", au.Bold(au.Red(text)).String(), au.Gray(12, blink).String()),
		"",
	}
}

func panelView(g *gocui.Gui, colors bool, panel *display.Panel, levels *output.Levels, sim *simulator, rate time.Duration) {
	au := aurora.NewAurora(colors)
	var hidden bool
	var lastToggle time.Time

	for {
		time.Sleep(rate)

		frame := panel.Frame()
		if frame.Blink && time.Since(lastToggle) > 250*time.Millisecond {
			hidden = !hidden
			lastToggle = time.Now()
		}
		if !frame.Blink {
			hidden = false
		}

		lines := panelLines(frame, hidden, au)
		lines = append(lines, "  "+levels.String())

		status, help := sim.status(), sim.help()
		g.Update(func(g *gocui.Gui) error {
			v, err := g.View(ViewPanel)
			if err != nil {
				return err
			}
			v.Clear()
			for _, l := range lines {
				fmt.Fprintln(v, l)
			}

			k, err := g.View(ViewKeys)
			if err != nil {
				return err
			}
			k.Clear()
			fmt.Fprintln(k, status)
			fmt.Fprintln(k, help)
			return nil
		})
	}
}
