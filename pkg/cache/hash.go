package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// hashKey returns "prefix:sha256(parts)". Parts are joined with NUL so
// ("ab", "c") and ("a", "bc") never share a key.
//
// Callers normalize parts before hashing. Query keys pass the lowercased
// username, since AniList resolves "Josh" and "josh" to the same profile and
// both spellings must hit the same cached lists.
func hashKey(prefix string, parts ...string) string {
	return prefix + ":" + Hash([]byte(strings.Join(parts, "\x00")))
}

// Hash returns the hex-encoded SHA-256 of data (64 characters). It also
// derives the key scope for a non-default AniList endpoint.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
