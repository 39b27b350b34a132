// Package hwinfo answers one question: which pin assignments apply to
// the device this process runs on. It combines the hardware identity
// read from the device tree with the validated hardware database and
// resolves the best matching revision entry.
package hwinfo

import (
	"github.com/hwdb-project/hwinfo-go/pkg/devicetree"
	"github.com/hwdb-project/hwinfo-go/pkg/hwdb"
)

// Options locates the identity files and the database. Zero-value
// fields fall back to the package defaults.
type Options struct {
	DeviceTree string // base path of the identity files
	Database   string // hardware database JSON
	Schema     string // JSON Schema the database must satisfy
}

func (o Options) withDefaults() Options {
	if o.DeviceTree == "" {
		o.DeviceTree = devicetree.DefaultPath
	}
	if o.Database == "" {
		o.Database = hwdb.DefaultDatabasePath
	}
	if o.Schema == "" {
		o.Schema = hwdb.DefaultSchemaPath
	}
	return o
}

// Info is the result of one hardware query.
type Info struct {
	Device devicetree.Device `json:"device" cbor:"1,keyasint"`
	Pins   hwdb.PinSet       `json:"pins" cbor:"2,keyasint"`
}

// Get resolves the pin assignments for the local device. It returns
// (nil, nil) when no device identity is present, an Info with empty
// pins when the device type or a compatible revision is not recorded,
// and an error for structural database failures.
//
// The device tree and the database are read fresh on every call; no
// state is cached between queries.
func Get(opts Options) (*Info, error) {
	opts = opts.withDefaults()

	dev, ok := devicetree.ReadDevice(opts.DeviceTree)
	if !ok {
		return nil, nil
	}

	db, err := hwdb.Load(opts.Database, opts.Schema)
	if err != nil {
		return nil, err
	}

	info := &Info{Device: dev, Pins: hwdb.PinSet{}}
	entry, ok, err := db.Resolve(dev.Type, dev.Revision)
	if err != nil {
		return nil, err
	}
	if ok {
		info.Pins = entry.Pins()
	}
	return info, nil
}
