package store

import (
	"fmt"
	"io"
	"time"

	"github.com/d2r2/go-i2c"
	shittyLogger "github.com/d2r2/go-logger"
	"github.com/gethiox/mfx/internal/pkg/logger"
	"go.uber.org/zap"
)

// AT24 family defaults (AT24C32 and bigger use two address bytes)
const (
	DefaultEEPROMAddress = 0x50
	eepromPageSize       = 32
	eepromWriteCycle     = 5 * time.Millisecond
)

// bus is satisfied by *i2c.I2C
type bus interface {
	WriteBytes(buf []byte) (int, error)
	ReadBytes(buf []byte) (int, error)
	Close() error
}

// EEPROM is an I2C AT24 serial eeprom medium. Writes are split on page boundaries,
// every page write is followed by the write cycle delay.
type EEPROM struct {
	bus   bus
	size  int
	sleep func(time.Duration)
}

func OpenEEPROM(address uint8, busNumber int, size int) (*EEPROM, error) {
	shittyLogger.ChangePackageLogLevel("i2c", shittyLogger.InfoLevel)

	raw, err := i2c.NewI2C(address, busNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to open i2c bus %d (address 0x%02x): %w", busNumber, address, err)
	}

	log.Info("eeprom opened", logger.Debug, zap.Int("bus", busNumber), zap.Uint8("address", address))
	return newEEPROM(raw, size), nil
}

func newEEPROM(b bus, size int) *EEPROM {
	return &EEPROM{bus: b, size: size, sleep: time.Sleep}
}

func (e *EEPROM) setAddress(off int64) error {
	_, err := e.bus.WriteBytes([]byte{byte(off >> 8), byte(off)})
	return err
}

func (e *EEPROM) ReadAt(p []byte, off int64) (int, error) {
	if err := checkRange(off, len(p), e.size); err != nil {
		return 0, err
	}

	var total int
	for total < len(p) {
		chunk := len(p) - total
		if chunk > eepromPageSize {
			chunk = eepromPageSize
		}

		err := e.setAddress(off + int64(total))
		if err != nil {
			return total, fmt.Errorf("failed to set read address: %w", err)
		}

		n, err := e.bus.ReadBytes(p[total : total+chunk])
		total += n
		if err != nil {
			return total, fmt.Errorf("failed to read: %w", err)
		}
		if n == 0 {
			return total, fmt.Errorf("failed to read at 0x%04x: %w", off+int64(total), io.ErrUnexpectedEOF)
		}
	}
	return total, nil
}

func (e *EEPROM) WriteAt(p []byte, off int64) (int, error) {
	if err := checkRange(off, len(p), e.size); err != nil {
		return 0, err
	}

	var total int
	for total < len(p) {
		addr := off + int64(total)
		// page writes wrap around within the page, never cross its boundary
		chunk := eepromPageSize - int(addr%eepromPageSize)
		if rest := len(p) - total; chunk > rest {
			chunk = rest
		}

		var buf = make([]byte, 0, chunk+2)
		buf = append(buf, byte(addr>>8), byte(addr))
		buf = append(buf, p[total:total+chunk]...)

		_, err := e.bus.WriteBytes(buf)
		if err != nil {
			return total, fmt.Errorf("failed to write page at 0x%04x: %w", addr, err)
		}
		total += chunk
		e.sleep(eepromWriteCycle)
	}
	return total, nil
}

func (e *EEPROM) Close() error {
	return e.bus.Close()
}
