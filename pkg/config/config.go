// Package config loads engine configuration from a TOML file.
//
// Configuration is optional: every field has a working default, and a
// missing file yields the default configuration without error. The file is
// looked up at $XDG_CONFIG_HOME/graphscape/config.toml (falling back to
// ~/.config/graphscape/config.toml) unless an explicit path is given.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	gserrors "github.com/matzehuels/graphscape/pkg/errors"
)

// LayoutConfig holds layout engine defaults.
type LayoutConfig struct {
	// Algorithm is the default layout algorithm name.
	Algorithm string `toml:"algorithm"`

	// Seed makes layout and clustering reproducible.
	Seed int64 `toml:"seed"`

	// Iterations overrides the force-directed iteration count when > 0.
	Iterations int `toml:"iterations"`
}

// OptimizerConfig holds render optimizer defaults.
type OptimizerConfig struct {
	// Mode is the default performance mode: quality, performance, or auto.
	Mode string `toml:"mode"`

	// BaseRadius is the cluster-gathering radius in world units.
	BaseRadius float64 `toml:"base_radius"`

	// DeviceTier overrides device detection: mobile, tablet, or desktop.
	DeviceTier string `toml:"device_tier"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of: memory, file, redis, none.
	Backend string `toml:"backend"`

	// Dir is the file backend's directory. Empty uses the default cache
	// directory.
	Dir string `toml:"dir"`

	// RedisURL is the redis backend's connection URL.
	RedisURL string `toml:"redis_url"`

	// TTLSeconds is the entry lifetime; zero means no expiration.
	TTLSeconds int `toml:"ttl_seconds"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	// Addr is the listen address, host:port.
	Addr string `toml:"addr"`
}

// Config is the full application configuration.
type Config struct {
	Layout    LayoutConfig    `toml:"layout"`
	Optimizer OptimizerConfig `toml:"optimizer"`
	Cache     CacheConfig     `toml:"cache"`
	Server    ServerConfig    `toml:"server"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Layout:    LayoutConfig{Algorithm: "force", Seed: 42},
		Optimizer: OptimizerConfig{Mode: "auto", BaseRadius: 100},
		Cache:     CacheConfig{Backend: "memory"},
		Server:    ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns the standard config file location, honoring
// XDG_CONFIG_HOME.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "graphscape", "config.toml")
}

// Load reads configuration from path, layered over the defaults. An empty
// path uses [DefaultPath]; a missing file returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, gserrors.Wrap(gserrors.ErrCodeInvalidInput, err, "load config %s", path)
	}
	return cfg, nil
}
