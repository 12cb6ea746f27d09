// Package cache provides byte-level caching of upstream responses.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a local directory (CLI default)
//   - [RedisCache]: a shared Redis instance (HTTP server deployments)
//   - [NullCache]: never stores anything (--no-cache and tests)
//
// All backends implement [Cache] and honor a per-entry TTL. A TTL of 0 means
// the entry never expires.
//
// # Keys
//
// Keys are built by a [Keyer] so every component agrees on the layout:
//
//	k := cache.NewDefaultKeyer()
//	key := k.QueryKey("anilist", "Josh")  // "query:anilist:<sha256>"
//
// [NewScopedKeyer] isolates key spaces; the AniList client uses it to keep
// entries fetched from a non-default endpoint apart.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTTL is how long fetched lists stay fresh.
const DefaultTTL = time.Hour

// Cache stores opaque byte payloads by key.
//
// Get reports a miss as (nil, false, nil); an error means the backend itself
// failed. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer generates cache keys for list queries.
type Keyer interface {
	// QueryKey returns the key for a user's list query against source.
	// Usernames are case-insensitive upstream, so keys are too.
	QueryKey(source, user string) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// QueryKey returns "query:<source>:<hash>" where hash covers the lowercased user.
func (DefaultKeyer) QueryKey(source, user string) string {
	return hashKey("query:"+source, strings.ToLower(user))
}

// ScopedKeyer wraps a Keyer with a prefix for key space isolation. The
// AniList client scopes its keys this way when pointed at a mirror, so a
// mirror and the public API never answer from each other's entries.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// QueryKey generates a prefixed key for list query caching.
func (k *ScopedKeyer) QueryKey(source, user string) string {
	return k.prefix + k.inner.QueryKey(source, user)
}

// DefaultDir returns the default file cache directory using the XDG
// standard ($XDG_CACHE_HOME/wrapped, else ~/.cache/wrapped).
func DefaultDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "wrapped"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "wrapped"), nil
}
