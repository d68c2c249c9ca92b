// Package config loads orchestrator settings from YAML.
//
// All fields have defaults matching the connection subsystem's shipped
// policy; a missing file or empty document yields DefaultConfig().
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable settings for the connection subsystem.
type Config struct {
	// Timeouts configures the per-phase deadlines.
	Timeouts TimeoutConfig `yaml:"timeouts"`

	// MTUTarget is the transfer size requested during negotiation.
	MTUTarget int `yaml:"mtu_target"`

	// PersistPath is the JSON file for the last-known device reference.
	PersistPath string `yaml:"persist_path"`

	// LogPath is the CBOR event log file. Empty disables file logging.
	LogPath string `yaml:"log_path,omitempty"`
}

// TimeoutConfig configures the per-phase deadlines.
type TimeoutConfig struct {
	// Connection spans the whole connect sequence (pairing + link +
	// discovery + negotiation).
	Connection time.Duration `yaml:"connection"`

	// Link bounds raw link establishment.
	Link time.Duration `yaml:"link"`

	// Discovery bounds service discovery.
	Discovery time.Duration `yaml:"discovery"`

	// Pairing bounds the platform bonding flow.
	Pairing time.Duration `yaml:"pairing"`
}

// DefaultConfig returns the shipped settings.
func DefaultConfig() Config {
	return Config{
		Timeouts: TimeoutConfig{
			Connection: 35 * time.Second,
			Link:       30 * time.Second,
			Discovery:  10 * time.Second,
			Pairing:    30 * time.Second,
		},
		MTUTarget:   512,
		PersistPath: "blelink-device.json",
	}
}

// Load reads a YAML config file and fills unset fields with defaults.
// A missing file yields DefaultConfig() without error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyDefaults fills zero-valued fields with defaults so a partial YAML
// document only overrides what it names.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Timeouts.Connection == 0 {
		c.Timeouts.Connection = def.Timeouts.Connection
	}
	if c.Timeouts.Link == 0 {
		c.Timeouts.Link = def.Timeouts.Link
	}
	if c.Timeouts.Discovery == 0 {
		c.Timeouts.Discovery = def.Timeouts.Discovery
	}
	if c.Timeouts.Pairing == 0 {
		c.Timeouts.Pairing = def.Timeouts.Pairing
	}
	if c.MTUTarget == 0 {
		c.MTUTarget = def.MTUTarget
	}
	if c.PersistPath == "" {
		c.PersistPath = def.PersistPath
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Timeouts.Connection <= 0 || c.Timeouts.Link <= 0 ||
		c.Timeouts.Discovery <= 0 || c.Timeouts.Pairing <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.Timeouts.Link > c.Timeouts.Connection {
		return fmt.Errorf("link timeout %v exceeds connection timeout %v",
			c.Timeouts.Link, c.Timeouts.Connection)
	}
	if c.MTUTarget < 23 || c.MTUTarget > 517 {
		return fmt.Errorf("mtu_target %d out of range [23, 517]", c.MTUTarget)
	}
	return nil
}
