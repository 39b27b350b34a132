package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hwdb-project/hwinfo-go/pkg/hwinfo"
)

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port       int
	Options    hwinfo.Options
	Version    string
	InstanceID string
}

// Server serves the hardware identity of this host over HTTP.
type Server struct {
	config ServerConfig
	mux    *http.ServeMux
	server *http.Server
}

// NewServer creates the HTTP server and registers its routes.
func NewServer(cfg ServerConfig) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}
	s.registerRoutes()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.mux,
	}
	return s
}

// registerRoutes sets up the API routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/api/v1/health", s.handleHealth)
	s.mux.HandleFunc("/api/v1/info", s.handleInfo)
}

// ListenAndServe starts the HTTP server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown stops the HTTP server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.config.Version,
	})
}

// handleInfo returns the hardware identity and pin assignments of this
// host. The device tree and database are read fresh on every request,
// so the response always reflects the current state on disk.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	info, err := hwinfo.Get(s.config.Options)
	if err != nil {
		slog.Error("hardware query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "hardware query failed",
		})
		return
	}
	if info == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "no hardware device found",
		})
		return
	}

	writeJSON(w, http.StatusOK, infoResponse{
		InstanceID: s.config.InstanceID,
		Info:       info,
	})
}

// infoResponse wraps the hardware document with the agent's identity.
type infoResponse struct {
	InstanceID string `json:"instance_id"`
	*hwinfo.Info
}

// writeJSON writes data as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
