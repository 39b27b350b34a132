// Package interactive provides the interactive inspection shell for hwinfo.
package interactive

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/hwdb-project/hwinfo-go/pkg/devicetree"
	"github.com/hwdb-project/hwinfo-go/pkg/hwdb"
	"github.com/hwdb-project/hwinfo-go/pkg/hwinfo"
	"github.com/hwdb-project/hwinfo-go/pkg/revision"
)

// Shell handles interactive mode for hwinfo.
type Shell struct {
	opts hwinfo.Options
	rl   *readline.Instance

	dev   devicetree.Device
	devOK bool
	db    *hwdb.Database
	dbErr error
}

// New creates a new interactive shell and loads the initial state.
func New(opts hwinfo.Options) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "hwinfo> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := &Shell{
		opts: opts,
		rl:   rl,
	}
	s.reload()

	return s, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop. It returns when the user quits.
func (s *Shell) Run() {
	defer s.rl.Close()

	s.printStatus()
	fmt.Fprintln(s.rl.Stdout(), "Type 'help' for commands.")

	for {
		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "device", "d":
			s.cmdDevice()

		case "pins", "p":
			s.cmdPins()

		case "pin":
			s.cmdPin(args)

		case "resolve", "r":
			s.cmdResolve(args)

		case "revisions", "revs":
			s.cmdRevisions(args)

		case "types", "t":
			s.cmdTypes()

		case "reload":
			s.reload()
			s.printStatus()

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

// reload re-reads the device identity and the hardware database.
func (s *Shell) reload() {
	s.dev, s.devOK = devicetree.ReadDevice(s.opts.DeviceTree)
	s.db, s.dbErr = hwdb.Load(s.opts.Database, s.opts.Schema)
}

func (s *Shell) printStatus() {
	if s.devOK {
		fmt.Fprintf(s.rl.Stdout(), "Device: %s %s\n", s.dev.Type, s.dev.Revision)
	} else {
		fmt.Fprintln(s.rl.Stdout(), "Device: none")
	}
	if s.dbErr != nil {
		fmt.Fprintf(s.rl.Stdout(), "Database: unavailable (%v)\n", s.dbErr)
	} else {
		fmt.Fprintf(s.rl.Stdout(), "Database: %d type(s) loaded\n", len(s.db.Types()))
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
hwinfo Commands:
  Device:
    device             - Show the device identity
    pins               - Show the pin table for the device
    pin <name>         - Look up a single pin by name

  Database:
    resolve <rev> [type] - Dry-run the revision resolution
    revisions [type]     - List revisions recorded for a type
    types                - List device types in the database
    reload               - Re-read the device tree and database

  General:
    help               - Show this help
    quit               - Exit`)
}

// cmdDevice shows the device identity.
func (s *Shell) cmdDevice() {
	if !s.devOK {
		fmt.Fprintln(s.rl.Stdout(), "No hardware device found.")
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Device type: %s\n", s.dev.Type)
	fmt.Fprintf(s.rl.Stdout(), "Device revision: %s\n", s.dev.Revision)
}

// resolveDevice resolves the local device against the loaded database.
func (s *Shell) resolveDevice() (*hwdb.RevisionEntry, bool) {
	if !s.devOK {
		fmt.Fprintln(s.rl.Stdout(), "No hardware device found.")
		return nil, false
	}
	if s.dbErr != nil {
		fmt.Fprintf(s.rl.Stdout(), "Database unavailable: %v\n", s.dbErr)
		return nil, false
	}

	entry, ok, err := s.db.Resolve(s.dev.Type, s.dev.Revision)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return nil, false
	}
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "No compatible revision for %s %s\n", s.dev.Type, s.dev.Revision)
		return nil, false
	}
	return entry, true
}

// cmdPins shows the pin table for the device.
func (s *Shell) cmdPins() {
	entry, ok := s.resolveDevice()
	if !ok {
		return
	}

	pins := entry.Pins()
	if len(pins) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "No pins recorded for this revision.")
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "Revision %s:\n", entry.Revision())
	fmt.Fprint(s.rl.Stdout(), hwinfo.FormatPinTable(pins))
}

// cmdPin looks up a single pin by name.
func (s *Shell) cmdPin(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: pin <name>")
		return
	}

	entry, ok := s.resolveDevice()
	if !ok {
		return
	}

	pin, ok := entry.Pins().ByName(args[0])
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "Pin not found: %s\n", args[0])
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "%s = GPIO %d (%s)\n", pin.Name, pin.Number, pin.Description)
}

// cmdResolve dry-runs the revision resolution for an arbitrary revision.
func (s *Shell) cmdResolve(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: resolve <revision> [type]")
		fmt.Fprintln(s.rl.Stdout(), "  Example: resolve 1.9.0")
		return
	}
	if s.dbErr != nil {
		fmt.Fprintf(s.rl.Stdout(), "Database unavailable: %v\n", s.dbErr)
		return
	}

	requested, err := revision.Parse(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid revision: %v\n", err)
		return
	}

	hwType := ""
	if len(args) >= 2 {
		hwType = args[1]
	} else if s.devOK {
		hwType = s.dev.Type
	} else {
		fmt.Fprintln(s.rl.Stdout(), "No device present, specify a type: resolve <revision> <type>")
		return
	}

	entry, ok, err := s.db.Resolve(hwType, requested)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "%s %s -> no compatible revision\n", hwType, requested)
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "%s %s -> %s (%d pins)\n", hwType, requested, entry.Revision(), len(entry.Pins()))
}

// cmdRevisions lists the revisions recorded for a type.
func (s *Shell) cmdRevisions(args []string) {
	if s.dbErr != nil {
		fmt.Fprintf(s.rl.Stdout(), "Database unavailable: %v\n", s.dbErr)
		return
	}

	hwType := ""
	if len(args) >= 1 {
		hwType = args[0]
	} else if s.devOK {
		hwType = s.dev.Type
	} else {
		fmt.Fprintln(s.rl.Stdout(), "No device present, specify a type: revisions <type>")
		return
	}

	revs, ok := s.db.Revisions(hwType)
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "Unknown type: %s\n", hwType)
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "Revisions for %s (%d):\n", hwType, len(revs))
	for _, r := range revs {
		fmt.Fprintf(s.rl.Stdout(), "  %s\n", r)
	}
}

// cmdTypes lists the device types in the database.
func (s *Shell) cmdTypes() {
	if s.dbErr != nil {
		fmt.Fprintf(s.rl.Stdout(), "Database unavailable: %v\n", s.dbErr)
		return
	}

	types := s.db.Types()
	if len(types) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "Database is empty.")
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "Device types (%d):\n", len(types))
	for _, t := range types {
		marker := ""
		if s.devOK && t == s.dev.Type {
			marker = "  <- this device"
		}
		fmt.Fprintf(s.rl.Stdout(), "  %s%s\n", t, marker)
	}
}
