package display

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	device "github.com/d2r2/go-hd44780"
	"github.com/d2r2/go-i2c"
	shittyLogger "github.com/d2r2/go-logger"
	"github.com/gethiox/mfx/internal/pkg/logger"
)

var log = logger.GetLogger()

func getDisplay(addr uint8, bus int, lcdType device.LcdType) (*device.Lcd, *i2c.I2C, error) {
	shittyLogger.ChangePackageLogLevel("i2c", shittyLogger.InfoLevel)

	lcdRaw, err := i2c.NewI2C(addr, bus)
	if err != nil {
		return nil, nil, err
	}

	lcd, err := device.NewLcd(lcdRaw, lcdType)
	if err != nil {
		return nil, lcdRaw, err
	}

	return lcd, lcdRaw, nil
}

func loadCustomCharacters(lcd *device.Lcd, characters [][]byte) {
	for i, char := range characters {
		var location = uint8(i) & 0x7

		lcd.Command(device.CMD_CGRAM_Set | (location << 3))
		lcd.Write(char)
	}
}

var conversionMap = map[rune]byte{
	'●': 0,
}

func replaceCharsForDisplay(s string) string {
	var ns string
	for _, r := range s {
		n, ok := conversionMap[r]
		if ok {
			ns += string(n)
		} else {
			ns += string(r)
		}
	}
	return ns
}

// render lays frame out on LCD lines, hidden is the "off" phase of blinking
func render(frame Frame, width int, hidden bool) [2]string {
	var text = frame.String()
	if hidden {
		text = strings.Repeat(" ", len(text))
	}

	var marker = " "
	if frame.Blink {
		marker = "●"
	}

	var pad = (width - len(text)) / 2
	if pad < 0 {
		pad = 0
	}
	top := strings.Repeat(" ", pad) + text
	top += strings.Repeat(" ", width-len(top)-1) + marker
	return [2]string{top, strings.Repeat(" ", width)}
}

// HandleDisplay renders panel frames on HD44780 LCD until frames channel is closed or context is done
func HandleDisplay(ctx context.Context, wg *sync.WaitGroup, cfg ScreenConfig, frames <-chan Frame) {
	defer wg.Done()
	lcd, bus, err := getDisplay(cfg.Address, cfg.Bus, cfg.LcdType)
	if err != nil {
		log.Info(fmt.Sprintf("[LCD] failed to open display: %v", err), logger.Error)
		if bus != nil {
			bus.Close()
		}
		return
	}
	defer bus.Close()

	loadCustomCharacters(lcd, [][]byte{
		{0x00, 0x00, 0x0E, 0x1F, 0x1F, 0x1F, 0x0E, 0x00}, // "●"
	})

	lcd.BacklightOn()
	lcd.Clear()

	var rate = cfg.BlinkRate
	if rate <= 0 {
		rate = 250 * time.Millisecond
	}
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	var (
		frame  = blankFrame()
		hidden bool
		width  = cfg.width()
	)

	draw := func() {
		for i, s := range render(frame, width, hidden) {
			lcd.SetPosition(i, 0)
			lcd.Write([]byte(replaceCharsForDisplay(s)))
		}
	}

root:
	for {
		select {
		case <-ctx.Done():
			break root
		case f, ok := <-frames:
			if !ok {
				break root
			}
			frame = f
			hidden = false
			draw()
		case <-ticker.C:
			if !frame.Blink {
				if hidden {
					hidden = false
					draw()
				}
				continue
			}
			hidden = !hidden
			draw()
		}
	}

	lcd.Clear()
	log.Info("[LCD] display closed", logger.Debug)
}
