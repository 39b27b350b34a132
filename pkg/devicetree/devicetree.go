// Package devicetree reads the local hardware identity published by the
// boot firmware under a device-tree style directory.
//
// The identity consists of four files below a base path: "type" holds a
// text name, and "revision-major", "revision-minor", "revision-patch"
// each hold one four-byte big-endian cell. A device is either fully
// present or absent; there is no partial identity and no error case.
package devicetree

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"

	"github.com/hwdb-project/hwinfo-go/pkg/revision"
)

// DefaultPath is where the boot firmware publishes the hardware identity.
const DefaultPath = "/proc/device-tree/hardware"

// Device identifies the local hardware unit: its type name and board
// revision.
type Device struct {
	Type     string            `json:"type" cbor:"1,keyasint"`
	Revision revision.Revision `json:"revision" cbor:"2,keyasint"`
}

// ReadDevice reads the hardware identity from the four well-known files
// under basePath. The second return is false when any file is missing,
// unreadable, or the wrong size, and when the type trims to empty.
// Running on hardware without an identity is a normal condition, so a
// partially readable identity reports absent rather than an error.
func ReadDevice(basePath string) (Device, bool) {
	raw, err := os.ReadFile(filepath.Join(basePath, "type"))
	if err != nil {
		return Device{}, false
	}
	// Firmware strings are NUL terminated and often newline padded.
	hwType := strings.TrimRight(string(raw), "\x00 \t\n\v\f\r")
	if hwType == "" {
		return Device{}, false
	}

	major, ok := readCell(filepath.Join(basePath, "revision-major"))
	if !ok {
		return Device{}, false
	}
	minor, ok := readCell(filepath.Join(basePath, "revision-minor"))
	if !ok {
		return Device{}, false
	}
	patch, ok := readCell(filepath.Join(basePath, "revision-patch"))
	if !ok {
		return Device{}, false
	}

	return Device{
		Type: hwType,
		Revision: revision.Revision{
			Major: uint64(major),
			Minor: uint64(minor),
			Patch: uint64(patch),
		},
	}, true
}

// readCell reads one fixed-width device-tree cell: exactly four bytes,
// big-endian. Any other length means the cell is unusable.
func readCell(path string) (uint32, bool) {
	data, err := os.ReadFile(path)
	if err != nil || len(data) != 4 {
		return 0, false
	}
	return binary.BigEndian.Uint32(data), true
}
