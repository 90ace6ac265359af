package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/awesome-gocui/gocui"
	"github.com/gethiox/mfx/internal/pkg/control"
	"github.com/gethiox/mfx/internal/pkg/display"
	"github.com/gethiox/mfx/internal/pkg/input"
	"github.com/gethiox/mfx/internal/pkg/logger"
	"github.com/gethiox/mfx/internal/pkg/midi"
	"github.com/gethiox/mfx/internal/pkg/midi/driver"
	"github.com/gethiox/mfx/internal/pkg/midi/driver/alsa"
	"github.com/gethiox/mfx/internal/pkg/output"
	"github.com/gethiox/mfx/internal/pkg/store"
	"github.com/logrusorgru/aurora"
)

var log = logger.GetLogger()

func handleSigs(wg *sync.WaitGroup, sigs <-chan os.Signal, cancel func(), g *gocui.Gui) {
	defer wg.Done()
	var counter int
	for sig := range sigs {
		if counter > 0 {
			fmt.Println("Dirty exit")
			os.Exit(1)
		}
		log.Info(fmt.Sprintf("signal received: %v", sig), logger.Debug)
		cancel()
		if g != nil {
			g.Close()
		}
		counter++
	}
}

func runUI(sim *simulator, sigs chan os.Signal) *gocui.Gui {
	g, err := GetCli(sim)
	if err != nil {
		panic(err)
	}

	go func() {
		if err := g.MainLoop(); err != nil {
			if err != gocui.ErrQuit {
				panic(err)
			}
			sigs <- syscall.SIGINT // pretend that we received signal when exited from gui
		}
	}()

	time.Sleep(time.Millisecond * 500) // waiting for view init
	return g
}

func openMedium(cfg StoreConfig) (store.Medium, error) {
	switch cfg.Backend {
	case "memory":
		log.Info("using volatile memory store, nothing will survive restart", logger.Warning)
		return store.NewMemory(store.Size), nil
	case "file":
		return store.OpenFile(cfg.Path, store.Size)
	case "eeprom":
		return store.OpenEEPROM(cfg.Address, cfg.Bus, store.Size)
	default:
		return nil, fmt.Errorf("unsupported store backend: %q", cfg.Backend)
	}
}

func openMidiPort(cfg MidiConfig) (driver.Port, error) {
	switch cfg.Backend {
	case "rtmidi":
		return alsa.PickMidiPort(cfg.Device, "MFX")
	case "raw":
		devices, err := midi.DetectDevices("/dev/snd")
		if err != nil {
			return driver.Port{}, err
		}
		if cfg.Device < 0 || cfg.Device >= len(devices) {
			return driver.Port{}, fmt.Errorf(
				"MIDI device with \"%d\" ID does not exist. There is %d MIDI devices available in total",
				cfg.Device, len(devices),
			)
		}
		return midi.RawPort(devices[cfg.Device]), nil
	default:
		return driver.Port{}, nil
	}
}

var (
	ui           = flag.Bool("ui", false, "engage debug ui with input simulator")
	nocolor      = flag.Bool("nocolor", false, "disable color")
	silent       = flag.Bool("silent", false, "no output logging")
	factoryReset = flag.Bool("factory-reset", false, "wipe presets and midi mapping before start")
	configPath   = flag.String("config", configFile, "path to config file")
	logLevel     = flag.Int("loglevel", 1,
		"logging level, each level enables additional information class (0-4, default: 1)\n"+
			"\navailable options:\n"+
			"0: general info (eg. boot, devices)\n"+
			"1: actions (mode transitions, presets loaded and saved)\n"+
			"2: input events\n"+
			"3: storage access\n"+
			"4: debug",
	)
)

func effectiveLogLevel(flagLevel int) int {
	if flagLevel >= 4 {
		return logger.DebugLvl
	}
	return flagLevel + logger.InfoLvl
}

func printLogs(colors bool, level int) {
	au := aurora.NewAurora(colors)
	for data := range logger.Messages {
		msg, err := unpack(data)
		if err != nil {
			fmt.Printf("%s\n", string(data))
			continue
		}
		m := prepareString(msg, au, -1, level)
		if m != "" {
			fmt.Printf("%s\n", m)
		}
	}
}

func main() {
	flag.Parse()
	level := effectiveLogLevel(*logLevel)
	withUI := *ui && !*silent

	if *configPath == configFile {
		err := createConfigDirectoryIfNeeded()
		if err != nil {
			fmt.Printf("%v\n", err)
			os.Exit(1)
		}
	}

	cfg, err := LoadMFXConfig(*configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	var sigs = make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())

	var samples = make(chan input.Sample, 64)
	sim := newSimulator(samples)

	var g *gocui.Gui
	if withUI {
		g = runUI(sim, sigs)
	}

	// this wait-group has to be propagated everywhere where usual logging appear
	wg := sync.WaitGroup{}

	wg.Add(1)
	go handleSigs(&wg, sigs, cancel, g)

	switch {
	case *silent:
		go func() {
			for range logger.Messages {
			}
		}()
	case withUI:
		go logView(g, !*nocolor, level, cfg.MFX.LogBufferSize, cfg.MFX.LogViewRate)
	default:
		fmt.Printf("for input simulator use -ui flag\n")
		go printLogs(!*nocolor, level)
	}

	log.Info(fmt.Sprintf("MFX config: %+v", cfg), logger.Debug)

	medium, err := openMedium(cfg.Store)
	if err != nil {
		log.Info(fmt.Sprintf("failed to open store: %v", err), logger.Error)
		time.Sleep(100 * time.Millisecond)
		os.Exit(1)
	}
	st := store.New(medium)

	if *factoryReset {
		err = st.FactoryReset()
		if err != nil {
			log.Info(fmt.Sprintf("factory reset failed: %v", err), logger.Error)
		}
	}

	// outputs
	levels := &output.Levels{}
	lines := output.Multi{levels}
	if cfg.Program {
		pins, err := output.NewProgramPins()
		if err != nil {
			log.Info(fmt.Sprintf("program select lines unavailable: %v", err), logger.Warning)
		} else {
			defer pins.Close()
			lines = append(lines, pins)
		}
	}
	if !withUI {
		lines = append(lines, output.Log{})
	}

	// midi
	var score midi.Score
	var midiOut = make(chan midi.Event, 16)
	port, err := openMidiPort(cfg.Midi)
	if err != nil {
		log.Info(fmt.Sprintf("midi unavailable: %v", err), logger.Warning)
	} else if port.Input != nil || port.Output != nil {
		err = midi.ProcessMidiEvents(ctx, &wg, port, midiOut, samples, &score)
		if err != nil {
			log.Info(fmt.Sprintf("failed to open midi port %s: %v", port.String(), err), logger.Warning)
		} else {
			log.Info(fmt.Sprintf("midi port: %s", port.String()), logger.Info)
			if port.Output != nil {
				lines = append(lines, output.NewMidiLines(cfg.Midi.Channel, midiOut))
			}
		}
	}

	// inputs
	for ch, path := range cfg.Encoders {
		if path == "" {
			continue
		}
		path, err := input.ResolveDevicePath(path)
		if err != nil {
			log.Info(fmt.Sprintf("%s encoder unavailable: %v", input.Channel(ch), err), logger.Warning)
			continue
		}
		source := input.EvdevSource{Path: path, Channel: input.Channel(ch)}
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := source.Run(ctx, samples)
			if err != nil {
				log.Info(fmt.Sprintf("encoder %s stopped: %v", source, err), logger.Warning)
			}
		}()
	}
	if cfg.Buttons {
		buttons, err := input.NewGPIOButtons()
		if err != nil {
			log.Info(fmt.Sprintf("buttons unavailable: %v", err), logger.Warning)
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				buttons.Run(ctx, cfg.MFX.PollRate, samples)
			}()
		}
	}

	// feedback
	panel := display.NewPanel()
	if cfg.Screen.Enabled {
		wg.Add(1)
		go display.HandleDisplay(ctx, &wg, cfg.Screen, panel.Frames())
	}
	if withUI {
		go panelView(g, !*nocolor, panel, levels, sim, cfg.MFX.LogViewRate)
	}

	monitorConfigChanges(ctx, &wg, *configPath)

	deriver := input.NewDeriver(input.LongPressTime, nil, *silent)
	controller := control.NewController(control.DefaultTable(), st, deriver, panel, lines, *silent)
	err = controller.Boot()
	if err != nil {
		log.Info(fmt.Sprintf("boot failed: %v", err), logger.Error)
		cancel()
	} else {
		controller.Run(ctx, samples, cfg.MFX.PollRate)
	}

	log.Info("waiting...", logger.Debug)
	signal.Stop(sigs)
	close(sigs)
	wg.Wait()

	err = st.Close()
	if err != nil {
		fmt.Printf("failed to close store: %v\n", err)
	}
	log.Info(fmt.Sprintf("midi program changes received: %d, events emitted: %d",
		score.ProgramChangesReceived, score.MidiEventsEmitted), logger.Info)

	// closing logger can be safely invoked only when all internally running goroutines (that may emit logs) are done
	time.Sleep(50 * time.Millisecond)
	close(logger.Messages)
	time.Sleep(50 * time.Millisecond)
}
