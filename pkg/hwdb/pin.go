package hwdb

import "sort"

// Pin is one named GPIO assignment of a resolved revision.
type Pin struct {
	Name        string `json:"name" cbor:"1,keyasint"`
	Number      uint32 `json:"number" cbor:"2,keyasint"`
	Description string `json:"description" cbor:"3,keyasint"`
}

// PinSet holds the pins of one resolved revision, ordered by name.
type PinSet []Pin

// ByName returns the pin with the given name.
func (s PinSet) ByName(name string) (Pin, bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i].Name >= name })
	if i < len(s) && s[i].Name == name {
		return s[i], true
	}
	return Pin{}, false
}
