package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/hwdb-project/hwinfo-go/pkg/hwdb"
	"github.com/hwdb-project/hwinfo-go/pkg/revision"
)

func main() {
	dbPath := flag.String("db", hwdb.DefaultDatabasePath, "Path to the hardware database")
	schemaPath := flag.String("schema", hwdb.DefaultSchemaPath, "Path to the database schema")
	hwType := flag.String("type", "", "Device type to resolve")
	revStr := flag.String("revision", "", "Device revision to resolve (major.minor.patch)")
	pkg := flag.String("package", "pins", "Package name for the generated file")
	output := flag.String("output", "", "Output path for the generated Go file (default stdout)")
	flag.Parse()

	if *hwType == "" || *revStr == "" {
		fmt.Fprintln(os.Stderr, "Usage: hwdb-gen -type <name> -revision <major.minor.patch> [-db <path>] [-schema <path>] [-package <name>] [-output <path>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*dbPath, *schemaPath, *hwType, *revStr, *pkg, *output); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(dbPath, schemaPath, hwType, revStr, pkg, output string) error {
	requested, err := revision.Parse(revStr)
	if err != nil {
		return fmt.Errorf("parsing revision: %w", err)
	}

	db, err := hwdb.Load(dbPath, schemaPath)
	if err != nil {
		return fmt.Errorf("loading database: %w", err)
	}

	entry, ok, err := db.Resolve(hwType, requested)
	if err != nil {
		return fmt.Errorf("resolving %s %s: %w", hwType, requested, err)
	}
	if !ok {
		return fmt.Errorf("no compatible revision for %s %s", hwType, requested)
	}

	pins := entry.Pins()
	code, err := GeneratePins(pkg, hwType, entry.Revision(), pins)
	if err != nil {
		return fmt.Errorf("generating pins: %w", err)
	}

	if output == "" {
		formatted, err := imports.Process(pkg+"_gen.go", []byte(code), nil)
		if err != nil {
			return fmt.Errorf("goimports: %w", err)
		}
		_, err = os.Stdout.Write(formatted)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := writeFormatted(output, code); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(output), err)
	}
	fmt.Printf("  resolved %s %s -> %s (%d pins)\n", hwType, requested, entry.Revision(), len(pins))
	fmt.Printf("  generated %s\n", output)
	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
