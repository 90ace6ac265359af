package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/gethiox/mfx/internal/pkg/display"
	"github.com/gethiox/mfx/internal/pkg/input"
	"github.com/gethiox/mfx/internal/pkg/logger"
	"github.com/go-ini/ini"
)

type MFX struct {
	PollRate      time.Duration
	LogViewRate   time.Duration
	LogBufferSize int
}

type StoreConfig struct {
	Backend string
	Path    string
	Bus     int
	Address uint8
}

type MidiConfig struct {
	Backend string
	Device  int
	Channel uint8 // zero based
}

type MFXConfig struct {
	MFX      MFX
	Store    StoreConfig
	Screen   display.ScreenConfig
	Encoders [input.ChannelCount]string
	Buttons  bool
	Program  bool
	Midi     MidiConfig
}

type section struct {
	*ini.Section
}

func (s section) key(name string) (*ini.Key, error) {
	k, err := s.GetKey(name)
	if err != nil {
		return nil, fmt.Errorf("[%s] %w", s.Name(), err)
	}
	return k, nil
}

func (s section) String(name string) (string, error) {
	k, err := s.key(name)
	if err != nil {
		return "", err
	}
	return k.String(), nil
}

func (s section) Int(name string) (int, error) {
	k, err := s.key(name)
	if err != nil {
		return 0, err
	}
	i, err := k.Int()
	if err != nil {
		return 0, fmt.Errorf("[%s] %s: %w", s.Name(), name, err)
	}
	return i, nil
}

func (s section) Bool(name string) (bool, error) {
	k, err := s.key(name)
	if err != nil {
		return false, err
	}
	b, err := k.Bool()
	if err != nil {
		return false, fmt.Errorf("[%s] %s: %w", s.Name(), name, err)
	}
	return b, nil
}

// Rate reads frequency in Hz as a period
func (s section) Rate(name string) (time.Duration, error) {
	i, err := s.Int(name)
	if err != nil {
		return 0, err
	}
	if i <= 0 {
		return 0, fmt.Errorf("[%s] %s: rate has to be positive, got %d", s.Name(), name, i)
	}
	return time.Second / time.Duration(i), nil
}

func getSection(cfg *ini.File, name string) (section, error) {
	s, err := cfg.GetSection(name)
	if err != nil {
		return section{}, err
	}
	return section{s}, nil
}

// errs collects first error of a sequence of reads
type errs struct {
	err error
}

func (e *errs) check(err error) {
	if e.err == nil && err != nil {
		e.err = err
	}
}

func ParseMFXConfig(data []byte) (MFXConfig, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return MFXConfig{}, err
	}

	var c MFXConfig
	var e errs
	var i int

	// [MFX]
	mfx, err := getSection(cfg, "MFX")
	if err != nil {
		return c, err
	}
	c.MFX.PollRate, err = mfx.Rate("poll_rate")
	e.check(err)
	c.MFX.LogViewRate, err = mfx.Rate("log_view_rate")
	e.check(err)
	c.MFX.LogBufferSize, err = mfx.Int("log_buffer_size")
	e.check(err)

	// [store]
	st, err := getSection(cfg, "store")
	if err != nil {
		return c, err
	}
	c.Store.Backend, err = st.String("backend")
	e.check(err)
	switch c.Store.Backend {
	case "memory", "file", "eeprom":
	default:
		e.check(fmt.Errorf("[store] unsupported backend: %q", c.Store.Backend))
	}
	c.Store.Path, err = st.String("path")
	e.check(err)
	c.Store.Bus, err = st.Int("bus")
	e.check(err)
	i, err = st.Int("address")
	e.check(err)
	c.Store.Address = uint8(i)

	// [screen]
	screen, err := getSection(cfg, "screen")
	if err != nil {
		return c, err
	}
	c.Screen.Enabled, err = screen.Bool("enabled")
	e.check(err)
	screenType, err := screen.String("type")
	e.check(err)
	c.Screen.LcdType, err = display.ParseLcdType(screenType)
	e.check(err)
	c.Screen.Bus, err = screen.Int("bus")
	e.check(err)
	i, err = screen.Int("address")
	e.check(err)
	c.Screen.Address = uint8(i)
	c.Screen.BlinkRate, err = screen.Rate("blink_rate")
	e.check(err)

	// [encoders]
	encoders, err := getSection(cfg, "encoders")
	if err != nil {
		return c, err
	}
	for ch := input.Primary; ch < input.ChannelCount; ch++ {
		c.Encoders[ch], err = encoders.String(ch.String())
		e.check(err)
	}

	// [buttons], [program]
	buttons, err := getSection(cfg, "buttons")
	if err != nil {
		return c, err
	}
	c.Buttons, err = buttons.Bool("enabled")
	e.check(err)
	program, err := getSection(cfg, "program")
	if err != nil {
		return c, err
	}
	c.Program, err = program.Bool("enabled")
	e.check(err)

	// [midi]
	midi, err := getSection(cfg, "midi")
	if err != nil {
		return c, err
	}
	c.Midi.Backend, err = midi.String("backend")
	e.check(err)
	switch c.Midi.Backend {
	case "rtmidi", "raw", "none":
	default:
		e.check(fmt.Errorf("[midi] unsupported backend: %q", c.Midi.Backend))
	}
	c.Midi.Device, err = midi.Int("device")
	e.check(err)
	i, err = midi.Int("channel")
	e.check(err)
	if i < 1 || i > 16 {
		e.check(fmt.Errorf("[midi] channel has to be in 1-16 range, got %d", i))
	} else {
		c.Midi.Channel = uint8(i - 1)
	}

	return c, e.err
}

func LoadMFXConfig(path string) (MFXConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MFXConfig{}, err
	}
	return ParseMFXConfig(data)
}

//go:embed mfx-config/mfx.config
var templateConfig embed.FS

const (
	configDir  = "mfx-config"
	configFile = configDir + "/mfx.config"
)

// createConfigDirectoryIfNeeded writes default config on first run, existing config stays intact
func createConfigDirectoryIfNeeded() error {
	_, err := os.Stat(configFile)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cannot open config file: %w", err)
	}
	log.Info("config not exist, generating default one...", logger.Info)

	err = os.MkdirAll(configDir, 0o777)
	if err != nil {
		return fmt.Errorf("cannot create \"%s\" directory: %w", configDir, err)
	}

	data, err := fs.ReadFile(templateConfig, configFile)
	if err != nil {
		return fmt.Errorf("cannot read \"%s\" template file: %w", configFile, err)
	}

	err = os.WriteFile(configFile, data, 0o666)
	if err != nil {
		return fmt.Errorf("cannot write data into \"%s\" file: %w", configFile, err)
	}

	log.Info(fmt.Sprintf("Created \"%s\" file", configFile), logger.Debug)
	return nil
}
