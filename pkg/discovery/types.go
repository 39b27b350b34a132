package discovery

import (
	"errors"
	"time"

	"github.com/hwdb-project/hwinfo-go/pkg/revision"
)

// Service type constants for mDNS.
const (
	// ServiceTypeAgent is the service type advertised by hwinfo agents.
	ServiceTypeAgent = "_hwinfo._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// DefaultPort is the default agent HTTP port.
	DefaultPort = 8417
)

// TXT record key constants.
const (
	TXTKeyVersion    = "tv"  // TXT schema version
	TXTKeyType       = "ty"  // Hardware type identifier
	TXTKeyRevision   = "rev" // Hardware revision "major.minor.patch"
	TXTKeyPinCount   = "pc"  // Resolved pin count (optional)
	TXTKeyInstanceID = "id"  // Agent instance UUID
	TXTKeyName       = "nm"  // Device name (optional, user-configurable)
)

// TXTSchemaVersion is the TXT record layout version announced under the
// tv key. Browsers reject announcements carrying any other version.
const TXTSchemaVersion = "1"

// Timing constants.
const (
	// BrowseTimeout is the default timeout for mDNS browsing.
	BrowseTimeout = 10 * time.Second
)

// Limits.
const (
	// MaxInstanceNameLen is the DNS label limit.
	MaxInstanceNameLen = 63

	// MaxTXTRecordSize is the maximum total TXT record size.
	MaxTXTRecordSize = 400
)

// Discovery errors.
var (
	ErrInvalidTXTRecord    = errors.New("invalid TXT record format")
	ErrMissingRequired     = errors.New("missing required field")
	ErrUnsupportedVersion  = errors.New("unsupported TXT schema version")
	ErrInstanceNameTooLong = errors.New("instance name exceeds 63 characters")
	ErrNotFound            = errors.New("service not found")
	ErrNotAnnounced        = errors.New("service not announced")
)

// AgentInfo contains the information an agent announces about its hardware.
type AgentInfo struct {
	// InstanceID uniquely identifies this agent process (UUID, fresh per start).
	InstanceID string

	// Type is the hardware type identifier from the device tree.
	Type string

	// Revision is the hardware revision from the device tree.
	Revision revision.Revision

	// PinCount is the number of pins resolved for this device.
	PinCount int

	// Name is an optional user-configurable device name.
	Name string

	// Port is the service port.
	Port uint16
}

// Validate checks if the AgentInfo is complete enough to announce.
func (a *AgentInfo) Validate() error {
	if a.InstanceID == "" {
		return ErrMissingRequired
	}
	if a.Type == "" {
		return ErrMissingRequired
	}
	return nil
}

// AgentService represents an hwinfo agent found via mDNS.
type AgentService struct {
	// InstanceName is the mDNS instance name (e.g., "hwinfo-f47ac10b").
	InstanceName string

	// Host is the hostname (e.g., "gateway-001.local").
	Host string

	// Port is the service port.
	Port uint16

	// Addresses contains resolved IP addresses.
	Addresses []string

	// InstanceID is the agent instance UUID (from TXT "id").
	InstanceID string

	// Type is the hardware type identifier (from TXT "ty").
	Type string

	// Revision is the hardware revision (from TXT "rev").
	Revision revision.Revision

	// PinCount is the resolved pin count (from TXT "pc").
	PinCount int

	// Name is the optional device name (from TXT "nm").
	Name string
}
