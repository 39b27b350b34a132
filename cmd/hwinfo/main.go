// Command hwinfo prints the pin assignment of the local hardware.
//
// It reads the device identity from the firmware device tree, loads the
// schema-validated hardware database, resolves the closest compatible
// revision and prints the resulting pin table.
//
// Usage:
//
//	hwinfo [flags]
//
// Flags:
//
//	-devicetree string  Device tree base path (default "/proc/device-tree/hardware")
//	-db string          Hardware database path (default "/etc/hwinfo/hwdb.json")
//	-schema string      Database schema path (default "/etc/hwinfo/hwdb-schema.json")
//	-config string      Configuration file path (default "/etc/hwinfo/config.yaml")
//	-o string           Output format: table, json, cbor (default "table")
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-i                  Enter the interactive inspection shell
//
// Examples:
//
//	# Print the pin table for the local device
//	hwinfo
//
//	# Query against a development database
//	hwinfo -devicetree ./testdata/tree -db ./hwdb.json -schema ./hwdb-schema.json
//
//	# Emit the machine-readable document
//	hwinfo -o json
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hwdb-project/hwinfo-go/cmd/hwinfo/interactive"
	"github.com/hwdb-project/hwinfo-go/pkg/config"
	"github.com/hwdb-project/hwinfo-go/pkg/devicetree"
	"github.com/hwdb-project/hwinfo-go/pkg/hwdb"
	"github.com/hwdb-project/hwinfo-go/pkg/hwinfo"
)

// Flags holds the command-line configuration.
type Flags struct {
	DeviceTree  string
	Database    string
	Schema      string
	ConfigFile  string
	Output      string
	LogLevel    string
	Interactive bool
}

var flags Flags

func init() {
	flag.StringVar(&flags.DeviceTree, "devicetree", "", "Device tree base path")
	flag.StringVar(&flags.Database, "db", "", "Hardware database path")
	flag.StringVar(&flags.Schema, "schema", "", "Database schema path")
	flag.StringVar(&flags.ConfigFile, "config", config.DefaultPath, "Configuration file path")
	flag.StringVar(&flags.Output, "o", "table", "Output format: table, json, cbor")
	flag.StringVar(&flags.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&flags.Interactive, "i", false, "Enter the interactive inspection shell")
}

func main() {
	flag.Parse()

	setupLogging(flags.LogLevel, os.Stderr)

	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hwinfo: %v\n", err)
		os.Exit(2)
	}

	// Flags win over the config file, the config file wins over defaults.
	opts := hwinfo.Options{
		DeviceTree: firstNonEmpty(flags.DeviceTree, cfg.DeviceTree, devicetree.DefaultPath),
		Database:   firstNonEmpty(flags.Database, cfg.Database, hwdb.DefaultDatabasePath),
		Schema:     firstNonEmpty(flags.Schema, cfg.Schema, hwdb.DefaultSchemaPath),
	}

	if flags.Interactive {
		shell, err := interactive.New(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hwinfo: %v\n", err)
			os.Exit(2)
		}
		// Redirect log output through readline to avoid interfering with input
		setupLogging(flags.LogLevel, shell.Stdout())
		shell.Run()
		return
	}

	os.Exit(run(opts, flags.Output))
}

func setupLogging(level string, w io.Writer) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func run(opts hwinfo.Options, format string) int {
	switch format {
	case "table":
		return runTable(opts)
	case "json", "cbor":
		return runMachine(opts, format)
	default:
		fmt.Fprintf(os.Stderr, "hwinfo: unknown output format %q (use: table, json, cbor)\n", format)
		return 2
	}
}

// runTable prints the human-readable report. Database problems are benign
// here: the identity header is still useful on a machine without hwdb files.
func runTable(opts hwinfo.Options) int {
	dev, ok := devicetree.ReadDevice(opts.DeviceTree)
	if !ok {
		fmt.Println("No hardware device found.")
		return 1
	}

	fmt.Printf("Device type: %s\n", dev.Type)
	fmt.Printf("Device revision: %s\n", dev.Revision)

	info, err := hwinfo.Get(opts)
	if err != nil {
		slog.Debug("pin lookup failed", "error", err)
	}
	if info == nil || len(info.Pins) == 0 {
		fmt.Println("\nNo pin information available for this device.")
		return 0
	}

	fmt.Println()
	fmt.Print(hwinfo.FormatPinTable(info.Pins))
	return 0
}

// runMachine emits the Info document. Unlike the table path, database
// problems are hard errors: tooling consuming the document must not mistake
// a broken database for an absent device.
func runMachine(opts hwinfo.Options, format string) int {
	info, err := hwinfo.Get(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hwinfo: %v\n", err)
		return 1
	}
	if info == nil {
		fmt.Fprintln(os.Stderr, "hwinfo: no hardware device found")
		return 1
	}

	switch format {
	case "json":
		err = hwinfo.WriteJSON(os.Stdout, info)
	case "cbor":
		err = hwinfo.WriteCBOR(os.Stdout, info)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "hwinfo: %v\n", err)
		return 1
	}
	return 0
}
