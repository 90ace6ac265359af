package preset

import (
	"errors"
	"fmt"
)

const (
	// Count is a number of preset slots in the bank, also a size of the midi map
	Count = 32
	// RecordLength is a size of one serialized preset
	RecordLength = 4

	MaxProgram = 7
	MaxParam   = 255
	MaxSlot    = Count - 1
)

var ErrInvalidPreset = errors.New("invalid preset")

// Preset is one saved configuration slot
type Preset struct {
	Program uint8 `yaml:"program" toml:"program"`
	Param1  uint8 `yaml:"param1" toml:"param1"`
	Param2  uint8 `yaml:"param2" toml:"param2"`
	Param3  uint8 `yaml:"param3" toml:"param3"`
}

func (p Preset) String() string {
	return fmt.Sprintf("program: %d, params: %3d/%3d/%3d", p.Program+1, p.Param1, p.Param2, p.Param3)
}

func (p Preset) Validate() error {
	if p.Program > MaxProgram {
		return fmt.Errorf("%w: program %d outside of 0-%d range", ErrInvalidPreset, p.Program, MaxProgram)
	}
	return nil
}

// Param returns n-th parameter, n in 1-3 range
func (p Preset) Param(n int) uint8 {
	switch n {
	case 1:
		return p.Param1
	case 2:
		return p.Param2
	case 3:
		return p.Param3
	default:
		panic(fmt.Sprintf("parameter %d does not exist", n))
	}
}

func (p *Preset) SetParam(n int, value uint8) {
	switch n {
	case 1:
		p.Param1 = value
	case 2:
		p.Param2 = value
	case 3:
		p.Param3 = value
	default:
		panic(fmt.Sprintf("parameter %d does not exist", n))
	}
}

// Bytes returns on-media record: program, param1, param2, param3
func (p Preset) Bytes() [RecordLength]byte {
	return [RecordLength]byte{p.Program, p.Param1, p.Param2, p.Param3}
}

func FromBytes(b []byte) (Preset, error) {
	if len(b) != RecordLength {
		return Preset{}, fmt.Errorf("preset record has to be %d bytes long, got %d", RecordLength, len(b))
	}
	return Preset{Program: b[0], Param1: b[1], Param2: b[2], Param3: b[3]}, nil
}

// Bank is a fixed sequence of preset slots, zero preset is a valid entry
type Bank [Count]Preset

// MidiMap maps received midi program number into preset slot
type MidiMap [Count]uint8

func IdentityMap() MidiMap {
	var m MidiMap
	for i := range m {
		m[i] = uint8(i)
	}
	return m
}

func (m MidiMap) Validate() error {
	for i, slot := range m {
		if slot > MaxSlot {
			return fmt.Errorf("midi map entry %d points to slot %d outside of 0-%d range", i, slot, MaxSlot)
		}
	}
	return nil
}
