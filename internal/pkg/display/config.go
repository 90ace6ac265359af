package display

import (
	"fmt"
	"time"

	"github.com/d2r2/go-hd44780"
)

type ScreenConfig struct {
	Enabled   bool
	LcdType   hd44780.LcdType
	Bus       int
	Address   uint8
	BlinkRate time.Duration
}

// ParseLcdType accepts "16x2" and "20x4" notation
func ParseLcdType(s string) (hd44780.LcdType, error) {
	switch s {
	case "16x2":
		return hd44780.LCD_16x2, nil
	case "20x4":
		return hd44780.LCD_20x4, nil
	default:
		return 0, fmt.Errorf("unsupported lcd type: %q", s)
	}
}

func (s *ScreenConfig) width() int {
	if s.LcdType == hd44780.LCD_20x4 {
		return 20
	}
	return 16
}
