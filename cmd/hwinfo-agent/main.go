// Command hwinfo-agent publishes the local hardware identity on the
// network.
//
// The agent reads the device identity from the firmware device tree,
// resolves the pin assignments against the hardware database, and
// announces the result over mDNS as a _hwinfo._tcp service. The same
// information is served as JSON over HTTP for fleet tooling that
// prefers a request/response interface.
//
// Usage:
//
//	hwinfo-agent [flags]
//
// Flags:
//
//	-port int          HTTP and announcement port (default 8417)
//	-name string       Instance name to announce (default derived from the instance ID)
//	-interface string  Restrict mDNS traffic to one network interface
//	-config string     Configuration file path (default "/etc/hwinfo/config.yaml")
//	-devicetree string Device tree base path
//	-db string         Hardware database path
//	-schema string     Database schema path
//	-log-level string  Log level: debug, info, warn, error (default "info")
//	-browse            List agents on the network instead of announcing
//	-timeout duration  How long to browse in -browse mode (default 10s)
//	-version           Show version information
//
// Examples:
//
//	# Announce this device with defaults
//	hwinfo-agent
//
//	# Announce under a fixed name on a specific interface
//	hwinfo-agent -name lab-bench-3 -interface eth0
//
//	# List every agent currently on the network
//	hwinfo-agent -browse
//
// SIGHUP re-reads the hardware database and refreshes the announced
// pin count without restarting the service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/hwdb-project/hwinfo-go/pkg/config"
	"github.com/hwdb-project/hwinfo-go/pkg/devicetree"
	"github.com/hwdb-project/hwinfo-go/pkg/discovery"
	"github.com/hwdb-project/hwinfo-go/pkg/hwdb"
	"github.com/hwdb-project/hwinfo-go/pkg/hwinfo"
)

// Version information - set at build time via ldflags
var (
	Version   = "0.1.0"
	BuildDate = "dev"
	GitCommit = "unknown"
)

var (
	port        = flag.Int("port", 0, "HTTP and announcement port (default 8417)")
	name        = flag.String("name", "", "instance name to announce (default derived from the instance ID)")
	ifaceName   = flag.String("interface", "", "restrict mDNS traffic to one network interface")
	configFile  = flag.String("config", config.DefaultPath, "configuration file path")
	dtPath      = flag.String("devicetree", "", "device tree base path")
	dbPath      = flag.String("db", "", "hardware database path")
	schemaPath  = flag.String("schema", "", "database schema path")
	logLevel    = flag.String("log-level", "info", "log level: debug, info, warn, error")
	browse      = flag.Bool("browse", false, "list agents on the network instead of announcing")
	browseFor   = flag.Duration("timeout", discovery.BrowseTimeout, "how long to browse in -browse mode")
	showVersion = flag.Bool("version", false, "show version information")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if *showVersion {
		fmt.Printf("hwinfo-agent %s (built %s, commit %s)\n", Version, BuildDate, GitCommit)
		return 0
	}

	setupLogging(*logLevel)

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	// Flags win over the config file, the config file wins over defaults.
	opts := hwinfo.Options{
		DeviceTree: firstNonEmpty(*dtPath, cfg.DeviceTree, devicetree.DefaultPath),
		Database:   firstNonEmpty(*dbPath, cfg.Database, hwdb.DefaultDatabasePath),
		Schema:     firstNonEmpty(*schemaPath, cfg.Schema, hwdb.DefaultSchemaPath),
	}
	iface := firstNonEmpty(*ifaceName, cfg.Agent.Interface)

	if *browse {
		return runBrowse(*browseFor, iface)
	}

	agentPort := *port
	if agentPort == 0 {
		agentPort = cfg.Agent.Port
	}
	if agentPort == 0 {
		agentPort = discovery.DefaultPort
	}

	dev, ok := devicetree.ReadDevice(opts.DeviceTree)
	if !ok {
		slog.Error("no hardware identity found", "path", opts.DeviceTree)
		return 1
	}

	info := &discovery.AgentInfo{
		InstanceID: uuid.NewString(),
		Type:       dev.Type,
		Revision:   dev.Revision,
		PinCount:   resolvePinCount(opts, dev),
		Name:       firstNonEmpty(*name, cfg.Agent.Name),
		Port:       uint16(agentPort),
	}

	annCfg := discovery.DefaultAnnouncerConfig()
	annCfg.Interface = iface

	announcer, err := discovery.NewMDNSAnnouncer(annCfg)
	if err != nil {
		slog.Error("failed to create announcer", "error", err)
		return 1
	}

	if err := announcer.Announce(context.Background(), info); err != nil {
		slog.Error("failed to announce agent", "error", err)
		return 1
	}
	defer announcer.Stop()

	slog.Info("announcing agent",
		"instance", discovery.AgentInstanceName(info),
		"type", dev.Type,
		"revision", dev.Revision.String(),
		"pins", info.PinCount,
		"port", agentPort)

	srv := NewServer(ServerConfig{
		Port:       agentPort,
		Options:    opts,
		Version:    Version,
		InstanceID: info.InstanceID,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	slog.Info("serving http", "addr", fmt.Sprintf(":%d", agentPort))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for {
		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("http server failed", "error", err)
				return 1
			}
			return 0

		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				info.PinCount = resolvePinCount(opts, dev)
				if err := announcer.Update(info); err != nil {
					slog.Warn("failed to refresh announcement", "error", err)
				} else {
					slog.Info("announcement refreshed", "pins", info.PinCount)
				}
				continue
			}

			slog.Info("shutting down", "signal", sig.String())
			announcer.Stop()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("http shutdown incomplete", "error", err)
			}
			return 0
		}
	}
}

// runBrowse lists every agent visible on the network for the given
// duration, then prints a summary count.
func runBrowse(timeout time.Duration, ifaceName string) int {
	browserCfg := discovery.DefaultBrowserConfig()
	browserCfg.Interface = ifaceName

	browser, err := discovery.NewMDNSBrowser(browserCfg)
	if err != nil {
		slog.Error("failed to create browser", "error", err)
		return 1
	}
	defer browser.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	agents, err := browser.BrowseAgents(ctx)
	if err != nil {
		slog.Error("failed to browse", "error", err)
		return 1
	}

	fmt.Printf("Browsing for agents (%s)...\n\n", timeout)

	count := 0
	for svc := range agents {
		count++
		fmt.Printf("%s\n", svc.InstanceName)
		fmt.Printf("  Type:     %s %s\n", svc.Type, svc.Revision)
		fmt.Printf("  Pins:     %d\n", svc.PinCount)
		if len(svc.Addresses) > 0 {
			fmt.Printf("  Address:  %s:%d\n", svc.Addresses[0], svc.Port)
		}
		fmt.Printf("  ID:       %s\n", svc.InstanceID)
		fmt.Println()
	}

	fmt.Printf("%d agent(s) found.\n", count)
	return 0
}

// resolvePinCount returns the number of pins resolved for the device,
// or zero when the database cannot answer. A broken database does not
// stop the agent; the identity is still worth publishing.
func resolvePinCount(opts hwinfo.Options, dev devicetree.Device) int {
	db, err := hwdb.Load(opts.Database, opts.Schema)
	if err != nil {
		slog.Warn("hardware database unavailable", "error", err)
		return 0
	}

	entry, ok, err := db.Resolve(dev.Type, dev.Revision)
	if err != nil {
		slog.Warn("pin resolution failed", "error", err)
		return 0
	}
	if !ok {
		return 0
	}
	return len(entry.Pins())
}

// setupLogging configures the structured logger from the level flag.
func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// firstNonEmpty returns the first value that is not empty.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
