// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
// Pointer fields distinguish "unset" from zero values so flags can fall back
// to built-in defaults.
type FileConfig struct {
	Year    *int          `toml:"year"`
	Output  *string       `toml:"output"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
	AniList AniListConfig `toml:"anilist"`
}

// CacheConfig maps response cache settings.
type CacheConfig struct {
	TTL      *string `toml:"ttl"`       // Go duration, e.g. "1h"
	RedisURL *string `toml:"redis_url"` // use Redis instead of the file cache
	Disabled *bool   `toml:"disabled"`
}

// ServerConfig maps HTTP server settings.
type ServerConfig struct {
	Addr *string `toml:"addr"`
}

// AniListConfig maps upstream API settings.
type AniListConfig struct {
	Endpoint *string `toml:"endpoint"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be verified by decoding alone.
func (c FileConfig) Validate() error {
	if c.Cache.TTL != nil {
		if _, err := time.ParseDuration(*c.Cache.TTL); err != nil {
			return fmt.Errorf("invalid cache.ttl %q: %w", *c.Cache.TTL, err)
		}
	}
	if c.Year != nil && *c.Year <= 0 {
		return fmt.Errorf("invalid year %d", *c.Year)
	}
	return nil
}

// CacheTTL returns the configured TTL, or fallback when unset.
func (c FileConfig) CacheTTL(fallback time.Duration) time.Duration {
	if c.Cache.TTL == nil {
		return fallback
	}
	d, err := time.ParseDuration(*c.Cache.TTL)
	if err != nil {
		return fallback
	}
	return d
}

// DefaultTemplate returns a commented config file listing every key.
func DefaultTemplate(year int, addr, endpoint string) string {
	return fmt.Sprintf(`# wrapped configuration
# Uncomment a value to enable it. CLI flags override config values.

# year = %d                  # Completion year to summarize
# output = "."                 # Directory for exported pages

[cache]
# ttl = "1h"                   # How long fetched lists stay fresh
# redis_url = "redis://localhost:6379/0"  # Share the cache through Redis
# disabled = false

[server]
# addr = %q              # Listen address for "wrapped serve"

[anilist]
# endpoint = %q
`, year, addr, endpoint)
}
