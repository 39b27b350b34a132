package hwinfo

import (
	"fmt"
	"strings"

	"github.com/hwdb-project/hwinfo-go/pkg/hwdb"
)

// Minimum column widths, matching the header labels.
const (
	minNameWidth = len("Name")
	minDescWidth = len("Description")
	gpioWidth    = len("GPIO#")
)

// FormatPinTable renders the pin table with columns sized to their content.
// The GPIO# column is right-aligned, name and description are left-aligned.
func FormatPinTable(pins hwdb.PinSet) string {
	nameWidth := minNameWidth
	descWidth := minDescWidth
	for _, pin := range pins {
		if len(pin.Name) > nameWidth {
			nameWidth = len(pin.Name)
		}
		if len(pin.Description) > descWidth {
			descWidth = len(pin.Description)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-*s  %*s  %-*s\n", nameWidth, "Name", gpioWidth, "GPIO#", descWidth, "Description")
	fmt.Fprintf(&sb, "%s  %s  %s\n",
		strings.Repeat("-", nameWidth),
		strings.Repeat("-", gpioWidth),
		strings.Repeat("-", descWidth))

	for _, pin := range pins {
		fmt.Fprintf(&sb, "%-*s  %*d  %-*s\n", nameWidth, pin.Name, gpioWidth, pin.Number, descWidth, pin.Description)
	}
	return sb.String()
}
