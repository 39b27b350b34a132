package discovery

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hwdb-project/hwinfo-go/pkg/revision"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeAgentTXT creates TXT records for agent discovery.
func EncodeAgentTXT(info *AgentInfo) TXTRecordMap {
	txt := make(TXTRecordMap)

	// Required fields
	txt[TXTKeyVersion] = TXTSchemaVersion
	txt[TXTKeyType] = info.Type
	txt[TXTKeyRevision] = info.Revision.String()
	txt[TXTKeyInstanceID] = info.InstanceID

	// Optional fields
	if info.PinCount > 0 {
		txt[TXTKeyPinCount] = strconv.Itoa(info.PinCount)
	}
	if info.Name != "" {
		txt[TXTKeyName] = info.Name
	}

	return txt
}

// DecodeAgentTXT parses TXT records from agent discovery.
func DecodeAgentTXT(txt TXTRecordMap) (*AgentInfo, error) {
	info := &AgentInfo{}

	// Parse TXT schema version (required)
	v, ok := txt[TXTKeyVersion]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyVersion)
	}
	if v != TXTSchemaVersion {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, v)
	}

	// Parse hardware type (required)
	info.Type, ok = txt[TXTKeyType]
	if !ok || info.Type == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyType)
	}

	// Parse revision (required)
	revStr, ok := txt[TXTKeyRevision]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyRevision)
	}
	rev, err := revision.Parse(revStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid revision %q", ErrInvalidTXTRecord, revStr)
	}
	info.Revision = rev

	// Parse instance ID (required)
	info.InstanceID, ok = txt[TXTKeyInstanceID]
	if !ok || info.InstanceID == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyInstanceID)
	}

	// Optional fields
	info.Name = txt[TXTKeyName]

	if pcStr, ok := txt[TXTKeyPinCount]; ok {
		pc, err := strconv.ParseUint(pcStr, 10, 16)
		if err == nil {
			info.PinCount = int(pc)
		}
	}

	return info, nil
}

// AgentInstanceName derives the mDNS instance name for an agent.
// The configured device name wins when present, otherwise the name is
// "hwinfo-<short id>" using the leading segment of the instance UUID.
func AgentInstanceName(info *AgentInfo) string {
	name := info.Name
	if name == "" {
		shortID := info.InstanceID
		if i := strings.IndexByte(shortID, '-'); i > 0 {
			shortID = shortID[:i]
		}
		name = "hwinfo-" + shortID
	}
	if len(name) > MaxInstanceNameLen {
		name = name[:MaxInstanceNameLen]
	}
	return name
}

// TXTRecordsToStrings converts a TXTRecordMap to a slice of "key=value" strings.
// This format is commonly used by mDNS libraries.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	return result
}

// StringsToTXTRecords parses a slice of "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			txt[parts[0]] = parts[1]
		} else if len(parts) == 1 && parts[0] != "" {
			// Key without value (boolean flag)
			txt[parts[0]] = ""
		}
	}
	return txt
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty instance name", ErrMissingRequired)
	}
	if len(name) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}
