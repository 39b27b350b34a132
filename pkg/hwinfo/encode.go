package hwinfo

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder mode for Info documents. Configured for
// deterministic encoding so identical hardware states produce identical
// bytes.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for Info documents.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyQuiet,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// MarshalCBOR encodes an Info document to deterministic CBOR.
func MarshalCBOR(info *Info) ([]byte, error) {
	return encMode.Marshal(info)
}

// UnmarshalCBOR decodes CBOR bytes produced by MarshalCBOR.
func UnmarshalCBOR(data []byte) (*Info, error) {
	var info Info
	if err := decMode.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to decode info: %w", err)
	}
	return &info, nil
}

// WriteCBOR writes an Info document to w as deterministic CBOR.
func WriteCBOR(w io.Writer, info *Info) error {
	return encMode.NewEncoder(w).Encode(info)
}

// WriteJSON writes an Info document to w as indented JSON.
func WriteJSON(w io.Writer, info *Info) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}
