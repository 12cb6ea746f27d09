// Package errors provides structured error types for the Wrapped application.
//
// Error codes let the CLI, the terminal preview and the HTTP server react to
// failures uniformly without string matching:
//   - INVALID_*: input validation failures (username, page index)
//   - NOT_FOUND: unknown user or stored result
//   - FETCH_ERROR: the upstream call failed or returned no usable data
//   - RATE_LIMITED: the upstream API throttled the request
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "page %d out of range", n)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFetch, origErr, "query %s", user)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidUsername Code = "INVALID_USERNAME"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Upstream errors. ErrCodeFetch covers every way the data fetch can fail:
	// transport errors, bad status codes, malformed bodies and responses
	// without a data payload.
	ErrCodeFetch       Code = "FETCH_ERROR"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// FetchFailedMessage is the fixed message shown to users when the data fetch fails.
const FetchFailedMessage = "Failed to load AniList data. Check username or try again later."

// EmptyUsernameMessage is shown when generation is requested without a username.
const EmptyUsernameMessage = "Please enter an AniList username."

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-facing message for err.
// Fetch and rate-limit failures collapse to [FetchFailedMessage]; other
// *Error values return their message without the code prefix.
func UserMessage(err error) string {
	if IsFetch(err) {
		return FetchFailedMessage
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsFetch reports whether err is a fetch or data failure.
func IsFetch(err error) bool {
	var rl *RateLimitedError
	return Is(err, ErrCodeFetch) || errors.As(err, &rl)
}

// RateLimitedError provides additional information for rate-limited responses.
type RateLimitedError struct {
	RetryAfter int // Seconds to wait before retrying
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
