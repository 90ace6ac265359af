package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func template(t *testing.T) string {
	data, err := fs.ReadFile(templateConfig, configFile)
	assert.Equal(t, nil, err)
	return string(data)
}

func TestParseTemplateConfig(t *testing.T) {
	cfg, err := ParseMFXConfig([]byte(template(t)))
	assert.Equal(t, nil, err)

	assert.Equal(t, time.Second/200, cfg.MFX.PollRate)
	assert.Equal(t, time.Second/30, cfg.MFX.LogViewRate)
	assert.Equal(t, 1000, cfg.MFX.LogBufferSize)

	assert.Equal(t, StoreConfig{Backend: "file", Path: "./mfx-config/mfx.eeprom", Bus: 1, Address: 0x50}, cfg.Store)

	assert.Equal(t, false, cfg.Screen.Enabled)
	assert.Equal(t, 1, cfg.Screen.Bus)
	assert.Equal(t, uint8(0x27), cfg.Screen.Address)
	assert.Equal(t, time.Second/4, cfg.Screen.BlinkRate)

	assert.Equal(t, [4]string{}, cfg.Encoders)
	assert.Equal(t, false, cfg.Buttons)
	assert.Equal(t, false, cfg.Program)
	assert.Equal(t, MidiConfig{Backend: "rtmidi", Device: -1, Channel: 0}, cfg.Midi)
}

func TestParseConfigErrors(t *testing.T) {
	for _, tc := range []struct {
		name, from, to, errPart string
	}{
		{"store backend", "backend = file", "backend = floppy", "unsupported backend"},
		{"midi backend", "backend = rtmidi", "backend = serial", "unsupported backend"},
		{"midi channel", "channel = 1", "channel = 17", "1-16"},
		{"poll rate", "poll_rate = 200", "poll_rate = 0", "positive"},
		{"screen type", "type = 16x2", "type = 40x2", "40x2"},
		{"missing key", "log_buffer_size = 1000", "", "log_buffer_size"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			data := strings.Replace(template(t), tc.from, tc.to, 1)
			_, err := ParseMFXConfig([]byte(data))
			if assert.NotEqual(t, nil, err) {
				assert.Contains(t, err.Error(), tc.errPart)
			}
		})
	}
}

func TestParseConfigEncoders(t *testing.T) {
	data := strings.Replace(template(t), "param2 =", "param2 = /dev/input/by-path/platform-rotary@12-event", 1)
	cfg, err := ParseMFXConfig([]byte(data))
	assert.Equal(t, nil, err)
	assert.Equal(t, [4]string{"", "", "/dev/input/by-path/platform-rotary@12-event", ""}, cfg.Encoders)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mfx.config")
	err := os.WriteFile(path, []byte(template(t)), 0o644)
	assert.Equal(t, nil, err)

	cfg, err := LoadMFXConfig(path)
	assert.Equal(t, nil, err)
	assert.Equal(t, "rtmidi", cfg.Midi.Backend)

	_, err = LoadMFXConfig(filepath.Join(t.TempDir(), "missing.config"))
	assert.NotEqual(t, nil, err)
}

func TestEffectiveLogLevel(t *testing.T) {
	assert.Equal(t, 2, effectiveLogLevel(0))
	assert.Equal(t, 3, effectiveLogLevel(1))
	assert.Equal(t, 5, effectiveLogLevel(3))
	assert.Equal(t, 378, effectiveLogLevel(4))
}
