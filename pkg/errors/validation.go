package errors

import (
	"regexp"
	"strings"
)

// maxUsernameLength bounds usernames well above AniList's own limit so the
// upstream API, not this check, has the final word on valid names.
const maxUsernameLength = 64

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// NormalizeUsername trims surrounding whitespace from a username.
func NormalizeUsername(name string) string {
	return strings.TrimSpace(name)
}

// ValidateUsername checks a (normalized) AniList username.
//
// Rules:
//   - Not empty
//   - At most 64 characters
//   - Letters, digits, underscore and dash only
func ValidateUsername(name string) error {
	if name == "" {
		return New(ErrCodeInvalidUsername, EmptyUsernameMessage)
	}
	if len(name) > maxUsernameLength {
		return New(ErrCodeInvalidUsername, "username too long (max %d characters)", maxUsernameLength)
	}
	if !usernameRegex.MatchString(name) {
		return New(ErrCodeInvalidUsername, "invalid username: %q", name)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
