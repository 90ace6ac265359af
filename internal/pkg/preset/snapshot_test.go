package preset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func exampleState() (Bank, MidiMap) {
	var bank Bank
	bank[0] = Preset{Program: 1, Param1: 10, Param2: 20, Param3: 30}
	bank[7] = Preset{Program: 7, Param1: 255, Param2: 0, Param3: 128}
	m := IdentityMap()
	m[3] = 7
	return bank, m
}

func TestSnapshotFormats(t *testing.T) {
	bank, m := exampleState()

	for _, format := range []Format{FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := NewSnapshot(bank, m, 7).Marshal(format)
			assert.Equal(t, nil, err)

			s, err := UnmarshalSnapshot(data, format)
			assert.Equal(t, nil, err)
			assert.Equal(t, 8, s.LastUsed)
			assert.Equal(t, 8, s.MidiMap[3])

			gotBank, gotMap, lastUsed, err := s.Unpack()
			assert.Equal(t, nil, err)
			assert.Equal(t, bank, gotBank)
			assert.Equal(t, m, gotMap)
			assert.Equal(t, uint8(7), lastUsed)
		})
	}
}

func TestSnapshotYAMLDocument(t *testing.T) {
	doc := []byte(`
last_used: 1
midi_map: [1, 2, 3, 8, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16,
           17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32]
presets:
` + presetsYAML(Count))

	s, err := UnmarshalSnapshot(doc, FormatYAML)
	assert.Equal(t, nil, err)

	_, m, lastUsed, err := s.Unpack()
	assert.Equal(t, nil, err)
	assert.Equal(t, uint8(0), lastUsed)
	assert.Equal(t, uint8(7), m[3])
}

func presetsYAML(n int) string {
	var s string
	for i := 0; i < n; i++ {
		s += "  - {program: 0, param1: 0, param2: 0, param3: 0}\n"
	}
	return s
}

func TestSnapshotValidation(t *testing.T) {
	bank, m := exampleState()

	for _, tc := range []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{name: "missing presets", mutate: func(s *Snapshot) { s.Presets = s.Presets[:5] }},
		{name: "missing map entries", mutate: func(s *Snapshot) { s.MidiMap = s.MidiMap[:31] }},
		{name: "last used zero", mutate: func(s *Snapshot) { s.LastUsed = 0 }},
		{name: "last used too big", mutate: func(s *Snapshot) { s.LastUsed = 33 }},
		{name: "map entry zero", mutate: func(s *Snapshot) { s.MidiMap[0] = 0 }},
		{name: "map entry too big", mutate: func(s *Snapshot) { s.MidiMap[0] = 33 }},
		{name: "program too big", mutate: func(s *Snapshot) { s.Presets[2].Program = 8 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSnapshot(bank, m, 0)
			tc.mutate(&s)
			_, _, _, err := s.Unpack()
			assert.True(t, errors.Is(err, ErrInvalidSnapshot), "got: %v", err)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("backup.YAML")
	assert.Equal(t, nil, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatFromPath("/tmp/backup.toml")
	assert.Equal(t, nil, err)
	assert.Equal(t, FormatTOML, f)

	_, err = FormatFromPath("backup.json")
	assert.NotEqual(t, nil, err)
}
