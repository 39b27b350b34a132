package devicetree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hwdb-project/hwinfo-go/internal/testutil"
	"github.com/hwdb-project/hwinfo-go/pkg/revision"
)

func TestReadDevice_Complete(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDeviceTree(t, dir, "test-board", 1, 2, 3)

	dev, ok := ReadDevice(dir)
	if !ok {
		t.Fatal("ReadDevice reported absent for a complete identity")
	}
	if dev.Type != "test-board" {
		t.Errorf("Type = %q, want %q", dev.Type, "test-board")
	}
	if want := (revision.Revision{Major: 1, Minor: 2, Patch: 3}); dev.Revision != want {
		t.Errorf("Revision = %v, want %v", dev.Revision, want)
	}
}

func TestReadDevice_TypeTrimming(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"nul terminated", "test-board\x00", "test-board"},
		{"newline", "test-board\n", "test-board"},
		{"nul then newline", "test-board\x00\n", "test-board"},
		{"spaces and tabs", "test-board \t ", "test-board"},
		{"several nuls", "b\x00\x00\x00", "b"},
		{"interior space kept", "test board\n", "test board"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			testutil.WriteDeviceTree(t, dir, "x", 1, 0, 0)
			testutil.WriteFile(t, filepath.Join(dir, "type"), []byte(tt.raw))

			dev, ok := ReadDevice(dir)
			if !ok {
				t.Fatalf("ReadDevice reported absent for type %q", tt.raw)
			}
			if dev.Type != tt.want {
				t.Errorf("Type = %q, want %q", dev.Type, tt.want)
			}
		})
	}
}

func TestReadDevice_EmptyType(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty file", ""},
		{"only nul", "\x00"},
		{"only whitespace", " \t\n"},
		{"nul and whitespace", "\x00\n\x00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			testutil.WriteDeviceTree(t, dir, "x", 1, 0, 0)
			testutil.WriteFile(t, filepath.Join(dir, "type"), []byte(tt.raw))

			if _, ok := ReadDevice(dir); ok {
				t.Errorf("ReadDevice should report absent for type %q", tt.raw)
			}
		})
	}
}

func TestReadDevice_MissingFile(t *testing.T) {
	files := []string{"type", "revision-major", "revision-minor", "revision-patch"}

	for _, missing := range files {
		t.Run(missing, func(t *testing.T) {
			dir := t.TempDir()
			testutil.WriteDeviceTree(t, dir, "test-board", 1, 2, 3)
			if err := os.Remove(filepath.Join(dir, missing)); err != nil {
				t.Fatal(err)
			}

			if _, ok := ReadDevice(dir); ok {
				t.Errorf("ReadDevice should report absent without %s", missing)
			}
		})
	}
}

func TestReadDevice_MissingBasePath(t *testing.T) {
	if _, ok := ReadDevice(filepath.Join(t.TempDir(), "nonexistent")); ok {
		t.Error("ReadDevice should report absent for a missing base path")
	}
}

func TestReadDevice_CellWrongSize(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte{0, 0, 1}},
		{"long", []byte{0, 0, 0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			testutil.WriteDeviceTree(t, dir, "test-board", 1, 2, 3)
			testutil.WriteFile(t, filepath.Join(dir, "revision-minor"), tt.data)

			if _, ok := ReadDevice(dir); ok {
				t.Errorf("ReadDevice should report absent for a %d-byte cell", len(tt.data))
			}
		})
	}
}

func TestReadDevice_BigEndianCells(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDeviceTree(t, dir, "test-board", 0, 0, 0)
	testutil.WriteFile(t, filepath.Join(dir, "revision-major"), []byte{0x00, 0x00, 0x01, 0x02})
	testutil.WriteFile(t, filepath.Join(dir, "revision-minor"), []byte{0xff, 0xff, 0xff, 0xff})

	dev, ok := ReadDevice(dir)
	if !ok {
		t.Fatal("ReadDevice reported absent")
	}
	if dev.Revision.Major != 258 {
		t.Errorf("Major = %d, want 258", dev.Revision.Major)
	}
	if dev.Revision.Minor != 4294967295 {
		t.Errorf("Minor = %d, want 4294967295", dev.Revision.Minor)
	}
}
