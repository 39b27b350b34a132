package discovery

import (
	"context"
	"time"
)

// Announcer advertises the local agent over mDNS.
type Announcer interface {
	// Announce starts advertising the agent service.
	// Calling Announce again replaces the previous announcement.
	Announce(ctx context.Context, info *AgentInfo) error

	// Update refreshes the TXT records of the current announcement.
	Update(info *AgentInfo) error

	// Stop withdraws the announcement.
	Stop()
}

// AnnouncerConfig configures announcer behavior.
type AnnouncerConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration
}

// DefaultAnnouncerConfig returns the default announcer configuration.
func DefaultAnnouncerConfig() AnnouncerConfig {
	return AnnouncerConfig{
		Interface: "",
		TTL:       120 * time.Second,
	}
}

// Browser finds hwinfo agents over mDNS.
type Browser interface {
	// BrowseAgents searches for agents on the local network.
	// The channel is closed when the context is cancelled.
	BrowseAgents(ctx context.Context) (<-chan *AgentService, error)

	// FindByType searches for the first agent reporting the given
	// hardware type. Returns when found or when the context is
	// cancelled or the browse timeout expires.
	FindByType(ctx context.Context, hwType string) (*AgentService, error)

	// Stop stops all active browsing operations.
	Stop()
}

// BrowserConfig configures browser behavior.
type BrowserConfig struct {
	// BrowseTimeout bounds FindByType searches.
	// Default: 10 seconds.
	BrowseTimeout time.Duration

	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string
}

// DefaultBrowserConfig returns the default browser configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		BrowseTimeout: BrowseTimeout,
		Interface:     "",
	}
}
