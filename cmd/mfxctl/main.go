package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gethiox/mfx/internal/pkg/preset"
	"github.com/gethiox/mfx/internal/pkg/store"
	"github.com/logrusorgru/aurora"
)

const usage = `usage: mfxctl [flags] <command>

commands:
  init           factory reset, all presets and midi mapping are lost
  show           print presets, midi mapping and last used preset
  export <file>  write backup (.yaml, .yml or .toml)
  import <file>  overwrite whole store with backup

flags:
`

type options struct {
	backend string
	path    string
	bus     int
	address uint
	nocolor bool
}

func openStore(o options) (*store.Store, error) {
	var medium store.Medium
	var err error

	switch o.backend {
	case "file":
		medium, err = store.OpenFile(o.path, store.Size)
	case "eeprom":
		medium, err = store.OpenEEPROM(uint8(o.address), o.bus, store.Size)
	default:
		return nil, fmt.Errorf("unsupported store backend: %q", o.backend)
	}
	if err != nil {
		return nil, err
	}
	return store.New(medium), nil
}

func show(s *store.Store, out io.Writer, au aurora.Aurora) error {
	snapshot, err := s.Snapshot()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%-6s %-6s %-6s %-6s %-8s %s\n", "slot", "p1", "p2", "p3", "program", "midi")
	for i, p := range snapshot.Presets {
		line := fmt.Sprintf("%-6d %-6d %-6d %-6d %-8d %d",
			i+1, p.Param1, p.Param2, p.Param3, p.Program+1, snapshot.MidiMap[i])
		if i+1 == snapshot.LastUsed {
			line = au.Bold(line + " *").String()
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func export(s *store.Store, path string) error {
	format, err := preset.FormatFromPath(path)
	if err != nil {
		return err
	}
	snapshot, err := s.Snapshot()
	if err != nil {
		return err
	}
	data, err := snapshot.Marshal(format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func restore(s *store.Store, path string) error {
	format, err := preset.FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	snapshot, err := preset.UnmarshalSnapshot(data, format)
	if err != nil {
		return err
	}
	return s.Restore(snapshot)
}

var errUsage = errors.New("invalid usage")

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("mfxctl", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprint(out, usage)
		fs.PrintDefaults()
	}

	var o options
	fs.StringVar(&o.backend, "backend", "file", "store backend: file or eeprom")
	fs.StringVar(&o.path, "path", "./mfx-config/mfx.eeprom", "image path of file backend")
	fs.IntVar(&o.bus, "bus", 1, "I2C bus of eeprom backend")
	fs.UintVar(&o.address, "address", 0x50, "I2C address of eeprom backend")
	fs.BoolVar(&o.nocolor, "nocolor", false, "disable color")

	err := fs.Parse(args)
	if err != nil {
		return err
	}

	cmd := fs.Args()
	if len(cmd) == 0 {
		fs.Usage()
		return errUsage
	}
	var argc = map[string]int{"init": 1, "show": 1, "export": 2, "import": 2}
	n, ok := argc[cmd[0]]
	if !ok || len(cmd) != n {
		fs.Usage()
		return errUsage
	}

	s, err := openStore(o)
	if err != nil {
		return err
	}
	defer s.Close()

	switch cmd[0] {
	case "init":
		err = s.FactoryReset()
	case "show":
		err = show(s, out, aurora.NewAurora(!o.nocolor))
	case "export":
		err = export(s, cmd[1])
	case "import":
		err = restore(s, cmd[1])
	}
	if err != nil {
		return fmt.Errorf("%s: %w", cmd[0], err)
	}
	return nil
}

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1)
	}
}
