package preset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks snapshot format by file extension
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported snapshot extension: \"%s\"", ext)
	}
}

// Snapshot is a human-editable backup of the whole persisted state
type Snapshot struct {
	LastUsed int      `yaml:"last_used" toml:"last_used"`
	MidiMap  []int    `yaml:"midi_map" toml:"midi_map"`
	Presets  []Preset `yaml:"presets" toml:"presets"`
}

func NewSnapshot(bank Bank, m MidiMap, lastUsed uint8) Snapshot {
	s := Snapshot{
		LastUsed: int(lastUsed) + 1,
		MidiMap:  make([]int, Count),
		Presets:  make([]Preset, Count),
	}
	for i := 0; i < Count; i++ {
		s.MidiMap[i] = int(m[i]) + 1 // 1-based, the same way display shows it
		s.Presets[i] = bank[i]
	}
	return s
}

// Unpack validates snapshot and converts it back to the in-memory model
func (s Snapshot) Unpack() (Bank, MidiMap, uint8, error) {
	var bank Bank
	var m MidiMap

	if len(s.Presets) != Count {
		return bank, m, 0, fmt.Errorf("%w: expected %d presets, got %d", ErrInvalidSnapshot, Count, len(s.Presets))
	}
	if len(s.MidiMap) != Count {
		return bank, m, 0, fmt.Errorf("%w: expected %d midi map entries, got %d", ErrInvalidSnapshot, Count, len(s.MidiMap))
	}
	if s.LastUsed < 1 || s.LastUsed > Count {
		return bank, m, 0, fmt.Errorf("%w: last used preset %d outside of 1-%d range", ErrInvalidSnapshot, s.LastUsed, Count)
	}

	for i, p := range s.Presets {
		if err := p.Validate(); err != nil {
			return bank, m, 0, fmt.Errorf("%w: preset %d: %v", ErrInvalidSnapshot, i+1, err)
		}
		bank[i] = p
	}
	for i, slot := range s.MidiMap {
		if slot < 1 || slot > Count {
			return bank, m, 0, fmt.Errorf("%w: midi map entry %d points to preset %d", ErrInvalidSnapshot, i+1, slot)
		}
		m[i] = uint8(slot - 1)
	}

	return bank, m, uint8(s.LastUsed - 1), nil
}

func (s Snapshot) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(s)
	case FormatTOML:
		return toml.Marshal(s)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func UnmarshalSnapshot(data []byte, format Format) (Snapshot, error) {
	var s Snapshot
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &s)
	case FormatTOML:
		err = toml.Unmarshal(data, &s)
	default:
		return s, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return s, fmt.Errorf("failed to parse %s snapshot: %w", format, err)
	}
	return s, nil
}
