// Package testutil provides on-disk fixtures shared by tests: synthetic
// device trees and hardware database files with a matching schema.
package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Schema is a hardware database schema accepting the canonical layout:
// device types mapping revision keys to pin blocks.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "additionalProperties": {
      "type": "object",
      "properties": {
        "pins": {
          "type": "object",
          "additionalProperties": {
            "type": "object",
            "properties": {
              "description": { "type": "string" },
              "value": { "type": "integer", "minimum": 0 }
            },
            "required": ["description", "value"]
          }
        }
      },
      "required": ["pins"]
    }
  }
}`

// Database is a single-type, single-revision database matching Schema.
const Database = `{
  "test-board": {
    "1.2.3": {
      "pins": {
        "LED": { "description": "Status LED", "value": 17 }
      }
    }
  }
}`

// WriteDeviceTree lays out a complete hardware identity under dir: the
// type file plus three big-endian revision cells.
func WriteDeviceTree(t *testing.T, dir, hwType string, major, minor, patch uint32) {
	t.Helper()
	WriteFile(t, filepath.Join(dir, "type"), []byte(hwType))
	WriteCell(t, filepath.Join(dir, "revision-major"), major)
	WriteCell(t, filepath.Join(dir, "revision-minor"), minor)
	WriteCell(t, filepath.Join(dir, "revision-patch"), patch)
}

// WriteCell writes a single four-byte big-endian value, the on-disk form
// of one device-tree cell.
func WriteCell(t *testing.T, path string, v uint32) {
	t.Helper()
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	WriteFile(t, path, buf[:])
}

// WriteDatabase writes db as the database file and Schema next to it,
// returning the two paths.
func WriteDatabase(t *testing.T, dir, db string) (dbPath, schemaPath string) {
	t.Helper()
	dbPath = filepath.Join(dir, "hwdb.json")
	schemaPath = filepath.Join(dir, "hwdb-schema.json")
	WriteFile(t, dbPath, []byte(db))
	WriteFile(t, schemaPath, []byte(Schema))
	return dbPath, schemaPath
}

// WriteFile writes path, creating parent directories as needed.
func WriteFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}
