// Package config loads the optional tool configuration file shared by
// the hwinfo binaries.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the conventional location of the configuration file.
const DefaultPath = "/etc/hwinfo/config.yaml"

// Config carries path overrides and agent settings. A zero field means
// "use the built-in default"; command-line flags override both.
type Config struct {
	DeviceTree string      `yaml:"devicetree"`
	Database   string      `yaml:"database"`
	Schema     string      `yaml:"schema"`
	Agent      AgentConfig `yaml:"agent"`
}

// AgentConfig configures the fleet identity agent.
type AgentConfig struct {
	Port      int    `yaml:"port"`
	Name      string `yaml:"name"`
	Interface string `yaml:"interface"`
}

// Load reads the configuration file at path. A missing or empty file
// yields the zero configuration, since running without one is the
// common deployment. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &cfg, nil
}
