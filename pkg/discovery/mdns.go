package discovery

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/enbility/zeroconf/v3"
)

// MDNSAnnouncer implements the Announcer interface using zeroconf.
type MDNSAnnouncer struct {
	config AnnouncerConfig

	mu     sync.Mutex
	server *zeroconf.Server
}

// NewMDNSAnnouncer creates a new mDNS announcer.
func NewMDNSAnnouncer(config AnnouncerConfig) (*MDNSAnnouncer, error) {
	return &MDNSAnnouncer{
		config: config,
	}, nil
}

// getInterfaces returns the network interfaces to use for announcing.
// Returns nil to use all interfaces.
func (a *MDNSAnnouncer) getInterfaces() []net.Interface {
	if a.config.Interface == "" {
		return nil
	}

	iface, err := net.InterfaceByName(a.config.Interface)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

// Announce starts advertising the agent service.
func (a *MDNSAnnouncer) Announce(ctx context.Context, info *AgentInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Stop existing if any
	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	instanceName := AgentInstanceName(info)

	// Build TXT records
	txtRecords := EncodeAgentTXT(info)
	txtStrings := TXTRecordsToStrings(txtRecords)

	// Determine port
	port := int(info.Port)
	if port == 0 {
		port = DefaultPort
	}

	// Register service
	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	// Get interfaces (nil means all interfaces)
	ifaces := a.getInterfaces()

	server, err := zeroconf.Register(
		instanceName,
		ServiceTypeAgent,
		Domain,
		port,
		txtStrings,
		ifaces,
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register agent service: %w", err)
	}

	a.server = server
	return nil
}

// Update refreshes the TXT records of the current announcement.
func (a *MDNSAnnouncer) Update(info *AgentInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return ErrNotAnnounced
	}

	txtRecords := EncodeAgentTXT(info)
	txtStrings := TXTRecordsToStrings(txtRecords)
	a.server.SetText(txtStrings)

	return nil
}

// Stop withdraws the announcement.
func (a *MDNSAnnouncer) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}

// MDNSBrowser implements the Browser interface using zeroconf.
type MDNSBrowser struct {
	config BrowserConfig

	mu      sync.Mutex
	cancels []context.CancelFunc
}

// NewMDNSBrowser creates a new mDNS browser.
func NewMDNSBrowser(config BrowserConfig) (*MDNSBrowser, error) {
	return &MDNSBrowser{
		config: config,
	}, nil
}

// BrowseAgents searches for agents on the local network.
// Services are aggregated by instance name - addresses from multiple
// interfaces are combined into a single entry, and dropped again when the
// interface that contributed them disappears.
func (b *MDNSBrowser) BrowseAgents(ctx context.Context) (<-chan *AgentService, error) {
	ctx, cancel := context.WithCancel(ctx)

	b.mu.Lock()
	b.cancels = append(b.cancels, cancel)
	b.mu.Unlock()

	out := make(chan *AgentService)

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	opts := b.browserOptions()

	// Process entries with aggregation
	go func() {
		defer close(out)

		// Track services by instance name, aggregating addresses
		services := make(map[string]*AgentService)

		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				svc := b.entryToAgent(entry)
				if svc == nil {
					continue
				}

				existing, found := services[svc.InstanceName]
				if found {
					// Merge addresses into existing entry
					existing.Addresses = mergeAddresses(existing.Addresses, svc.Addresses)
				} else {
					// New service - store and emit
					services[svc.InstanceName] = svc
					select {
					case out <- svc:
					case <-ctx.Done():
						return
					}
				}

			case entry, ok := <-removed:
				if !ok {
					continue
				}
				// Remove addresses that came from this interface
				if existing, found := services[entry.Instance]; found {
					existing.Addresses = removeAddresses(existing.Addresses, collectAddresses(entry))
					// If no addresses remain, remove the service
					if len(existing.Addresses) == 0 {
						delete(services, entry.Instance)
					}
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	// Start browsing in background
	go func() {
		_ = zeroconf.Browse(ctx, ServiceTypeAgent, Domain, entries, removed, opts...)
	}()

	return out, nil
}

// FindByType searches for the first agent reporting the given hardware type.
func (b *MDNSBrowser) FindByType(ctx context.Context, hwType string) (*AgentService, error) {
	if b.config.BrowseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.config.BrowseTimeout)
		defer cancel()
	}

	results, err := b.BrowseAgents(ctx)
	if err != nil {
		return nil, err
	}

	for {
		select {
		case svc, ok := <-results:
			if !ok {
				return nil, ErrNotFound
			}
			if svc.Type == hwType {
				return svc, nil
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Stop stops all active browsing operations.
func (b *MDNSBrowser) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, cancel := range b.cancels {
		cancel()
	}
	b.cancels = nil
}

// browserOptions returns zeroconf client options based on config.
func (b *MDNSBrowser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption

	// Select specific interface if configured
	if b.config.Interface != "" {
		iface, err := net.InterfaceByName(b.config.Interface)
		if err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}

	return opts
}

// entryToAgent converts a zeroconf entry to AgentService.
// Entries with malformed TXT records are dropped.
func (b *MDNSBrowser) entryToAgent(entry *zeroconf.ServiceEntry) *AgentService {
	txt := StringsToTXTRecords(entry.Text)
	info, err := DecodeAgentTXT(txt)
	if err != nil {
		return nil
	}

	return &AgentService{
		InstanceName: entry.Instance,
		Host:         entry.HostName,
		Port:         uint16(entry.Port),
		Addresses:    collectAddresses(entry),
		InstanceID:   info.InstanceID,
		Type:         info.Type,
		Revision:     info.Revision,
		PinCount:     info.PinCount,
		Name:         info.Name,
	}
}

// collectAddresses flattens the IPv4 and IPv6 addresses of an entry.
func collectAddresses(entry *zeroconf.ServiceEntry) []string {
	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}
	return addrs
}

// mergeAddresses adds new addresses to the existing list, avoiding duplicates.
func mergeAddresses(existing, latest []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, addr := range existing {
		seen[addr] = true
	}

	for _, addr := range latest {
		if !seen[addr] {
			existing = append(existing, addr)
			seen[addr] = true
		}
	}
	return existing
}

// removeAddresses filters the gone addresses out of the list.
func removeAddresses(addresses, gone []string) []string {
	toRemove := make(map[string]bool, len(gone))
	for _, addr := range gone {
		toRemove[addr] = true
	}

	result := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if !toRemove[addr] {
			result = append(result, addr)
		}
	}
	return result
}

// Ensure MDNSAnnouncer implements Announcer interface.
var _ Announcer = (*MDNSAnnouncer)(nil)

// Ensure MDNSBrowser implements Browser interface.
var _ Browser = (*MDNSBrowser)(nil)
