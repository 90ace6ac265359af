package midi

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitMessages(t *testing.T) {
	for _, tc := range []struct {
		name     string
		stream   []byte
		expected [][]byte
	}{
		{
			name:     "program change",
			stream:   []byte{0xC0, 5},
			expected: [][]byte{{0xC0, 5}},
		}, {
			name:     "running status",
			stream:   []byte{0xC1, 1, 2, 3},
			expected: [][]byte{{0xC1, 1}, {0xC1, 2}, {0xC1, 3}},
		}, {
			name:     "mixed with realtime",
			stream:   []byte{0xB0, 20, 0xF8, 64, 0xC0, 0xFE, 7},
			expected: [][]byte{{0xB0, 20, 64}, {0xC0, 7}},
		}, {
			name:     "sysex dropped",
			stream:   []byte{0xF0, 0x43, 0x10, 0x4C, 0xF7, 0xC2, 9},
			expected: [][]byte{{0xC2, 9}},
		}, {
			name:     "system common cancels running status",
			stream:   []byte{0xC0, 1, 0xF3, 4, 2},
			expected: [][]byte{{0xC0, 1}},
		}, {
			name:     "stray data",
			stream:   []byte{1, 2, 0xC0, 3},
			expected: [][]byte{{0xC0, 3}},
		}, {
			name:     "truncated",
			stream:   []byte{0xB0, 20},
			expected: nil,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out := make(chan []byte, 16)
			err := splitMessages(bytes.NewReader(tc.stream), out)
			assert.Equal(t, io.EOF, err)
			close(out)

			var got [][]byte
			for m := range out {
				got = append(got, m)
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestDetectDevices(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"midiC1D0", "pcmC0D0p", "midiC2D0", "controlC0"} {
		assert.Equal(t, nil, os.WriteFile(filepath.Join(dir, name), nil, 0o666))
	}
	assert.Equal(t, nil, os.Mkdir(filepath.Join(dir, "midi-dir"), 0o777))

	devices, err := DetectDevices(dir)
	assert.Equal(t, nil, err)

	var names []string
	for _, d := range devices {
		names = append(names, filepath.Base(d.Name()))
	}
	assert.ElementsMatch(t, []string{"midiC1D0", "midiC2D0"}, names)
}
