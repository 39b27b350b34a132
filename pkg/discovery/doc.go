// Package discovery implements mDNS/DNS-SD discovery for hwinfo agents.
//
// # Agent Discovery (_hwinfo._tcp)
//
// Each agent advertises a single service instance describing the hardware
// it runs on. Instance name format: the configured device name, or
// "hwinfo-<short id>" where <short id> is the leading segment of the
// agent's per-start instance UUID.
// TXT records include: tv (TXT schema version), ty (hardware type),
// rev (hardware revision), id (instance UUID), and optionally
// pc (resolved pin count) and nm (device name).
//
// # TXT Schema Versioning
//
// The tv record carries the TXT layout version. Browsers reject
// announcements with a version they do not understand, so the layout can
// evolve without silently confusing older tooling.
package discovery
