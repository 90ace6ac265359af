package store

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeBus emulates AT24 behaviour: two address bytes followed by optional data,
// page writes wrap within the page.
type fakeBus struct {
	mem     []byte
	pointer int
	writes  [][]byte
}

func (b *fakeBus) WriteBytes(buf []byte) (int, error) {
	b.writes = append(b.writes, append([]byte{}, buf...))
	addr := int(buf[0])<<8 | int(buf[1])
	data := buf[2:]
	page := addr - addr%eepromPageSize
	for i, v := range data {
		b.mem[page+(addr-page+i)%eepromPageSize] = v
	}
	b.pointer = addr
	return len(buf), nil
}

func (b *fakeBus) ReadBytes(buf []byte) (int, error) {
	n := copy(buf, b.mem[b.pointer:])
	b.pointer += n
	return n, nil
}

func (b *fakeBus) Close() error {
	return nil
}

func newFakeEEPROM() (*EEPROM, *fakeBus) {
	bus := &fakeBus{mem: make([]byte, 4096)}
	e := newEEPROM(bus, Size)
	e.sleep = func(time.Duration) {}
	return e, bus
}

func TestEEPROMPageSplit(t *testing.T) {
	e, bus := newFakeEEPROM()

	var data = make([]byte, 40)
	for i := range data {
		data[i] = byte(i + 1)
	}

	n, err := e.WriteAt(data, 30)
	assert.Equal(t, nil, err)
	assert.Equal(t, 40, n)

	// 30-31, 32-63, 64-69
	assert.Equal(t, 3, len(bus.writes))
	assert.Equal(t, 2+2, len(bus.writes[0]))
	assert.Equal(t, 2+32, len(bus.writes[1]))
	assert.Equal(t, 2+6, len(bus.writes[2]))
	assert.Equal(t, []byte{0, 32}, bus.writes[1][:2])

	var got = make([]byte, 40)
	n, err = e.ReadAt(got, 30)
	assert.Equal(t, nil, err)
	assert.Equal(t, 40, n)
	assert.Equal(t, data, got)
}

func TestEEPROMStore(t *testing.T) {
	e, _ := newFakeEEPROM()
	s := New(e)
	assert.Equal(t, nil, s.FactoryReset())

	ok, err := s.IsInitialized()
	assert.Equal(t, nil, err)
	assert.True(t, ok)

	m, err := s.ReadMidiMap()
	assert.Equal(t, nil, err)
	for i, v := range m {
		assert.Equal(t, uint8(i), v)
	}

	_, err = e.WriteAt([]byte{1}, int64(Size))
	assert.NotEqual(t, nil, err)
}

// silentBus acknowledges every transfer but never delivers data
type silentBus struct {
	fakeBus
}

func (b *silentBus) ReadBytes(buf []byte) (int, error) {
	return 0, nil
}

func TestEEPROMReadNoProgress(t *testing.T) {
	bus := &silentBus{fakeBus{mem: make([]byte, 4096)}}
	e := newEEPROM(bus, Size)
	e.sleep = func(time.Duration) {}

	n, err := e.ReadAt(make([]byte, 8), 10)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
