package main

import (
	"fmt"
	"strings"

	"github.com/hwdb-project/hwinfo-go/pkg/hwdb"
	"github.com/hwdb-project/hwinfo-go/pkg/revision"
)

// GeneratePins renders the Go source for the pin assignments of one
// resolved revision.
func GeneratePins(pkg, hwType string, rev revision.Revision, pins hwdb.PinSet) (string, error) {
	data := pinsFileData{
		Package:  pkg,
		Type:     hwType,
		Revision: rev.String(),
	}

	seenNames := make(map[string]string, len(pins))
	seenNumbers := make(map[uint32]bool, len(pins))

	for _, pin := range pins {
		constName := pinConstName(pin.Name)
		if prev, ok := seenNames[constName]; ok {
			return "", fmt.Errorf("pin constant collision: %q and %q both map to %s", prev, pin.Name, constName)
		}
		seenNames[constName] = pin.Name

		pd := pinConstData{
			ConstName:   constName,
			Name:        pin.Name,
			Number:      pin.Number,
			Description: pin.Description,
		}
		data.Pins = append(data.Pins, pd)

		// Two names can share a line; only the first gets a String case.
		if !seenNumbers[pin.Number] {
			seenNumbers[pin.Number] = true
			data.Cases = append(data.Cases, pd)
		}
	}

	var b strings.Builder
	renderTemplate(&b, "pins", data)
	return b.String(), nil
}

// pinConstName converts a database pin name to an exported Go constant
// name: "STATUS_LED" becomes "PinStatusLed". Runs of non-alphanumeric
// characters separate words; a digit ends the word it appears in.
func pinConstName(name string) string {
	var b strings.Builder
	b.WriteString("Pin")

	newWord := true
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			if newWord {
				r = r - 'a' + 'A'
			}
			b.WriteRune(r)
			newWord = false
		case r >= 'A' && r <= 'Z':
			if !newWord {
				r = r - 'A' + 'a'
			}
			b.WriteRune(r)
			newWord = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			newWord = true
		default:
			newWord = true
		}
	}
	return b.String()
}

// firstLower lowercases the first character of s.
func firstLower(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
