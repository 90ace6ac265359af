package preset

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresetBytes(t *testing.T) {
	p := Preset{Program: 5, Param1: 1, Param2: 128, Param3: 255}
	assert.Equal(t, [RecordLength]byte{5, 1, 128, 255}, p.Bytes())

	b := p.Bytes()
	restored, err := FromBytes(b[:])
	assert.Equal(t, nil, err)
	assert.Equal(t, p, restored)

	_, err = FromBytes([]byte{1, 2, 3})
	assert.NotEqual(t, nil, err)
}

func TestPresetValidate(t *testing.T) {
	for _, tc := range []struct {
		preset Preset
		valid  bool
	}{
		{preset: Preset{}, valid: true},
		{preset: Preset{Program: MaxProgram, Param1: 255, Param2: 255, Param3: 255}, valid: true},
		{preset: Preset{Program: MaxProgram + 1}, valid: false},
		{preset: Preset{Program: 255}, valid: false},
	} {
		t.Run(tc.preset.String(), func(t *testing.T) {
			err := tc.preset.Validate()
			if tc.valid {
				assert.Equal(t, nil, err)
			} else {
				assert.True(t, errors.Is(err, ErrInvalidPreset))
			}
		})
	}
}

func TestPresetParams(t *testing.T) {
	var p Preset
	for n := 1; n <= 3; n++ {
		p.SetParam(n, uint8(n*10))
	}
	assert.Equal(t, Preset{Param1: 10, Param2: 20, Param3: 30}, p)
	for n := 1; n <= 3; n++ {
		assert.Equal(t, uint8(n*10), p.Param(n))
	}
	assert.Panics(t, func() { p.Param(4) })
}

func TestIdentityMap(t *testing.T) {
	m := IdentityMap()
	for i := 0; i < Count; i++ {
		assert.Equal(t, uint8(i), m[i], fmt.Sprintf("entry %d", i))
	}
	assert.Equal(t, nil, m.Validate())

	m[3] = Count
	assert.NotEqual(t, nil, m.Validate())
}
