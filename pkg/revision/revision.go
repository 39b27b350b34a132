// Package revision parses, formats, and compares "major.minor.patch"
// hardware revision strings.
package revision

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed reports a string that does not match the
// "major.minor.patch" form. Errors returned by Parse wrap it and carry
// the offending input.
var ErrMalformed = errors.New("malformed revision")

// Revision is a parsed "major.minor.patch" hardware revision.
//
// Components compare numerically, so "1.10.0" orders after "1.9.0" and
// "1.02.0" parses equal to "1.2.0".
type Revision struct {
	Major uint64 `cbor:"1,keyasint"`
	Minor uint64 `cbor:"2,keyasint"`
	Patch uint64 `cbor:"3,keyasint"`
}

// Parse parses a "major.minor.patch" revision string. Each component is
// a run of decimal digits; signs, whitespace, and empty components are
// rejected.
func Parse(s string) (Revision, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Revision{}, fmt.Errorf("%w %q: expected major.minor.patch", ErrMalformed, s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return Revision{}, fmt.Errorf("%w %q: bad major component", ErrMalformed, s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return Revision{}, fmt.Errorf("%w %q: bad minor component", ErrMalformed, s)
	}

	patch, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return Revision{}, fmt.Errorf("%w %q: bad patch component", ErrMalformed, s)
	}

	return Revision{Major: major, Minor: minor, Patch: patch}, nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// fixed revisions in tests and generated code.
func MustParse(s string) Revision {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the revision as "major.minor.patch". Parsing the result
// yields r back.
func (r Revision) String() string {
	return fmt.Sprintf("%d.%d.%d", r.Major, r.Minor, r.Patch)
}

// Compare orders r against other lexicographically over
// (major, minor, patch). It returns -1, 0, or 1.
func (r Revision) Compare(other Revision) int {
	switch {
	case r.Major != other.Major:
		return cmpUint(r.Major, other.Major)
	case r.Minor != other.Minor:
		return cmpUint(r.Minor, other.Minor)
	default:
		return cmpUint(r.Patch, other.Patch)
	}
}

// Less reports whether r orders before other.
func (r Revision) Less(other Revision) bool {
	return r.Compare(other) < 0
}

// SameMajor reports whether both revisions share a major component.
func (r Revision) SameMajor(other Revision) bool {
	return r.Major == other.Major
}

// MarshalText implements encoding.TextMarshaler using the canonical
// dotted form.
func (r Revision) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Revision) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
