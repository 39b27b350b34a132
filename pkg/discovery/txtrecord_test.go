package discovery

import (
	"errors"
	"strings"
	"testing"

	"github.com/hwdb-project/hwinfo-go/pkg/revision"
)

func TestEncodeAgentTXTFull(t *testing.T) {
	info := &AgentInfo{
		InstanceID: "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		Type:       "gateway-2",
		Revision:   revision.MustParse("1.4.0"),
		PinCount:   12,
		Name:       "Lab Gateway",
	}

	txt := EncodeAgentTXT(info)

	want := TXTRecordMap{
		TXTKeyVersion:    "1",
		TXTKeyType:       "gateway-2",
		TXTKeyRevision:   "1.4.0",
		TXTKeyInstanceID: "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		TXTKeyPinCount:   "12",
		TXTKeyName:       "Lab Gateway",
	}
	if len(txt) != len(want) {
		t.Fatalf("EncodeAgentTXT returned %d records, want %d", len(txt), len(want))
	}
	for k, v := range want {
		if txt[k] != v {
			t.Errorf("txt[%q] = %q, want %q", k, txt[k], v)
		}
	}
}

func TestEncodeAgentTXTMinimal(t *testing.T) {
	info := &AgentInfo{
		InstanceID: "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		Type:       "sensor-hub",
		Revision:   revision.MustParse("2.0.1"),
	}

	txt := EncodeAgentTXT(info)

	if _, ok := txt[TXTKeyPinCount]; ok {
		t.Errorf("txt contains %q for zero pin count", TXTKeyPinCount)
	}
	if _, ok := txt[TXTKeyName]; ok {
		t.Errorf("txt contains %q for empty name", TXTKeyName)
	}
	if len(txt) != 4 {
		t.Errorf("EncodeAgentTXT returned %d records, want 4", len(txt))
	}
}

func TestDecodeAgentTXTRoundTrip(t *testing.T) {
	info := &AgentInfo{
		InstanceID: "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		Type:       "gateway-2",
		Revision:   revision.MustParse("1.4.0"),
		PinCount:   12,
		Name:       "Lab Gateway",
	}

	decoded, err := DecodeAgentTXT(EncodeAgentTXT(info))
	if err != nil {
		t.Fatalf("DecodeAgentTXT error = %v", err)
	}

	if decoded.InstanceID != info.InstanceID {
		t.Errorf("InstanceID = %q, want %q", decoded.InstanceID, info.InstanceID)
	}
	if decoded.Type != info.Type {
		t.Errorf("Type = %q, want %q", decoded.Type, info.Type)
	}
	if decoded.Revision != info.Revision {
		t.Errorf("Revision = %v, want %v", decoded.Revision, info.Revision)
	}
	if decoded.PinCount != info.PinCount {
		t.Errorf("PinCount = %d, want %d", decoded.PinCount, info.PinCount)
	}
	if decoded.Name != info.Name {
		t.Errorf("Name = %q, want %q", decoded.Name, info.Name)
	}
}

func TestDecodeAgentTXTMissingRequired(t *testing.T) {
	valid := TXTRecordMap{
		TXTKeyVersion:    "1",
		TXTKeyType:       "gateway-2",
		TXTKeyRevision:   "1.4.0",
		TXTKeyInstanceID: "f47ac10b-58cc-4372-a567-0e02b2c3d479",
	}

	for _, key := range []string{TXTKeyVersion, TXTKeyType, TXTKeyRevision, TXTKeyInstanceID} {
		t.Run(key, func(t *testing.T) {
			txt := make(TXTRecordMap, len(valid))
			for k, v := range valid {
				txt[k] = v
			}
			delete(txt, key)

			_, err := DecodeAgentTXT(txt)
			if !errors.Is(err, ErrMissingRequired) {
				t.Errorf("DecodeAgentTXT error = %v, want ErrMissingRequired", err)
			}
		})
	}
}

func TestDecodeAgentTXTEmptyRequired(t *testing.T) {
	txt := TXTRecordMap{
		TXTKeyVersion:    "1",
		TXTKeyType:       "",
		TXTKeyRevision:   "1.4.0",
		TXTKeyInstanceID: "f47ac10b-58cc-4372-a567-0e02b2c3d479",
	}

	_, err := DecodeAgentTXT(txt)
	if !errors.Is(err, ErrMissingRequired) {
		t.Errorf("DecodeAgentTXT error = %v, want ErrMissingRequired", err)
	}
}

func TestDecodeAgentTXTUnsupportedVersion(t *testing.T) {
	txt := TXTRecordMap{
		TXTKeyVersion:    "2",
		TXTKeyType:       "gateway-2",
		TXTKeyRevision:   "1.4.0",
		TXTKeyInstanceID: "f47ac10b-58cc-4372-a567-0e02b2c3d479",
	}

	_, err := DecodeAgentTXT(txt)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("DecodeAgentTXT error = %v, want ErrUnsupportedVersion", err)
	}
}

func TestDecodeAgentTXTInvalidRevision(t *testing.T) {
	for _, bad := range []string{"1.4", "1.4.0.2", "v1.4.0", "one.two.three", ""} {
		t.Run(bad, func(t *testing.T) {
			txt := TXTRecordMap{
				TXTKeyVersion:    "1",
				TXTKeyType:       "gateway-2",
				TXTKeyRevision:   bad,
				TXTKeyInstanceID: "f47ac10b-58cc-4372-a567-0e02b2c3d479",
			}

			_, err := DecodeAgentTXT(txt)
			if !errors.Is(err, ErrInvalidTXTRecord) {
				t.Errorf("DecodeAgentTXT error = %v, want ErrInvalidTXTRecord", err)
			}
		})
	}
}

func TestDecodeAgentTXTBadPinCountIgnored(t *testing.T) {
	txt := TXTRecordMap{
		TXTKeyVersion:    "1",
		TXTKeyType:       "gateway-2",
		TXTKeyRevision:   "1.4.0",
		TXTKeyInstanceID: "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		TXTKeyPinCount:   "lots",
	}

	info, err := DecodeAgentTXT(txt)
	if err != nil {
		t.Fatalf("DecodeAgentTXT error = %v", err)
	}
	if info.PinCount != 0 {
		t.Errorf("PinCount = %d, want 0", info.PinCount)
	}
}

func TestTXTRecordStringsRoundTrip(t *testing.T) {
	txt := TXTRecordMap{
		"tv": "1",
		"ty": "gateway-2",
		"nm": "has=equals",
	}

	got := StringsToTXTRecords(TXTRecordsToStrings(txt))

	if len(got) != len(txt) {
		t.Fatalf("round trip produced %d records, want %d", len(got), len(txt))
	}
	for k, v := range txt {
		if got[k] != v {
			t.Errorf("got[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestStringsToTXTRecordsFlags(t *testing.T) {
	txt := StringsToTXTRecords([]string{"flag", "k=v", ""})

	if v, ok := txt["flag"]; !ok || v != "" {
		t.Errorf("txt[\"flag\"] = %q, %v, want \"\", true", v, ok)
	}
	if txt["k"] != "v" {
		t.Errorf("txt[\"k\"] = %q, want %q", txt["k"], "v")
	}
	if len(txt) != 2 {
		t.Errorf("len(txt) = %d, want 2", len(txt))
	}
}

func TestAgentInstanceName(t *testing.T) {
	tests := []struct {
		name string
		info AgentInfo
		want string
	}{
		{
			"FromUUID",
			AgentInfo{InstanceID: "f47ac10b-58cc-4372-a567-0e02b2c3d479"},
			"hwinfo-f47ac10b",
		},
		{
			"FromOpaqueID",
			AgentInfo{InstanceID: "boot0001"},
			"hwinfo-boot0001",
		},
		{
			"NameWins",
			AgentInfo{InstanceID: "f47ac10b-58cc-4372-a567-0e02b2c3d479", Name: "Lab Gateway"},
			"Lab Gateway",
		},
		{
			"LongNameTruncated",
			AgentInfo{InstanceID: "f47ac10b", Name: strings.Repeat("x", 80)},
			strings.Repeat("x", MaxInstanceNameLen),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AgentInstanceName(&tt.info)
			if got != tt.want {
				t.Errorf("AgentInstanceName() = %q, want %q", got, tt.want)
			}
			if err := ValidateInstanceName(got); err != nil {
				t.Errorf("ValidateInstanceName(%q) error = %v", got, err)
			}
		})
	}
}

func TestValidateInstanceName(t *testing.T) {
	if err := ValidateInstanceName(""); !errors.Is(err, ErrMissingRequired) {
		t.Errorf("ValidateInstanceName(\"\") error = %v, want ErrMissingRequired", err)
	}
	if err := ValidateInstanceName(strings.Repeat("a", 64)); !errors.Is(err, ErrInstanceNameTooLong) {
		t.Errorf("ValidateInstanceName(64 chars) error = %v, want ErrInstanceNameTooLong", err)
	}
	if err := ValidateInstanceName(strings.Repeat("a", 63)); err != nil {
		t.Errorf("ValidateInstanceName(63 chars) error = %v", err)
	}
}
