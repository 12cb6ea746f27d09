package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrCacheMiss is returned by helpers that require a hit.
	ErrCacheMiss = errors.New("cache miss")

	// ErrClosed is returned when a closed backend is used.
	ErrClosed = errors.New("cache closed")
)
