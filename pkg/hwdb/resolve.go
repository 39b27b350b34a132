package hwdb

import (
	"fmt"
	"sort"

	"github.com/hwdb-project/hwinfo-go/pkg/revision"
)

// RevisionEntry is the pin block of one resolved database revision.
type RevisionEntry struct {
	rev  revision.Revision
	pins map[string]pinRecord
}

// Revision returns the revision the entry is recorded under.
func (e *RevisionEntry) Revision() revision.Revision { return e.rev }

// Pins extracts the entry's pin assignments, ordered by name.
func (e *RevisionEntry) Pins() PinSet {
	pins := make(PinSet, 0, len(e.pins))
	for name, rec := range e.pins {
		pins = append(pins, Pin{
			Name:        name,
			Number:      *rec.Value,
			Description: *rec.Description,
		})
	}
	sort.Slice(pins, func(i, j int) bool { return pins[i].Name < pins[j].Name })
	return pins
}

// ResolveRevision picks the revision governing requested out of the
// available set of revision strings.
//
// An exact match wins. Otherwise the nearest recorded revision above the
// request is selected if it shares the requested major, else the highest
// recorded revision below the request with that major. Revisions under a
// different major are never compatible; the second return is false when
// none qualifies, which is an expected outcome rather than an error.
//
// Every available string must parse: by the time resolution runs the
// database has passed schema validation, so an unparseable key reports
// ErrInconsistent.
func ResolveRevision(requested revision.Revision, available []string) (revision.Revision, bool, error) {
	revs := make([]revision.Revision, 0, len(available))
	for _, s := range available {
		r, err := revision.Parse(s)
		if err != nil {
			return revision.Revision{}, false, fmt.Errorf("%w: revision key %q: %v", ErrInconsistent, s, err)
		}
		revs = append(revs, r)
	}
	sort.Slice(revs, func(i, j int) bool { return revs[i].Less(revs[j]) })

	// Distinct keys may canonicalize to one revision ("1.0.0", "01.0.0").
	uniq := revs[:0]
	for _, r := range revs {
		if len(uniq) == 0 || uniq[len(uniq)-1] != r {
			uniq = append(uniq, r)
		}
	}
	revs = uniq

	i := sort.Search(len(revs), func(i int) bool { return requested.Compare(revs[i]) <= 0 })

	// Lower bound: the exact match or the nearest revision above the
	// request, usable when it shares the requested major.
	if i < len(revs) && revs[i].SameMajor(requested) {
		return revs[i], true, nil
	}

	// Highest same-major revision below the request.
	for j := i - 1; j >= 0; j-- {
		if revs[j].SameMajor(requested) {
			return revs[j], true, nil
		}
	}

	return revision.Revision{}, false, nil
}

// Resolve selects the revision entry governing requested for the given
// device type. The boolean is false when the type is unknown or no
// same-major revision is recorded; both are expected outcomes that the
// caller surfaces as an empty pin set.
func (db *Database) Resolve(hwType string, requested revision.Revision) (*RevisionEntry, bool, error) {
	table, ok := db.types[hwType]
	if !ok {
		return nil, false, nil
	}

	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	resolved, ok, err := ResolveRevision(requested, keys)
	if err != nil {
		return nil, false, fmt.Errorf("type %q: %w", hwType, err)
	}
	if !ok {
		return nil, false, nil
	}

	key := resolved.String()
	rec, ok := table[key]
	if !ok {
		// The selected revision exists only under a non-canonical
		// spelling of its key.
		return nil, false, fmt.Errorf("%w: computed revision %s not recorded for type %q", ErrInconsistent, key, hwType)
	}
	if rec.Pins == nil {
		return nil, false, fmt.Errorf("%w: revision %s of type %q has no pins table", ErrInconsistent, key, hwType)
	}
	for name, p := range rec.Pins {
		if p.Value == nil || p.Description == nil {
			return nil, false, fmt.Errorf("%w: pin %q of %s/%s is missing value or description", ErrInconsistent, name, hwType, key)
		}
	}

	return &RevisionEntry{rev: resolved, pins: rec.Pins}, true, nil
}
