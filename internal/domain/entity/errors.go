package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrRemoteService is matched by every *RemoteServiceError via errors.Is.
	ErrRemoteService = errors.New("remote service error")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is reports whether target is ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// RemoteServiceError wraps any failure reported by the scraping or the
// summarization API: transport errors, non-2xx responses, API-level error
// payloads and malformed bodies alike.
type RemoteServiceError struct {
	// Service names the remote collaborator, e.g. "firecrawl" or "gemini".
	Service string
	// Operation names the call that failed, e.g. "scrape" or "summarize".
	Operation string
	// StatusCode is the HTTP status when one was received, otherwise 0.
	StatusCode int
	// Message is the remote error text when the API returned one.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// Error returns a formatted error message.
func (e *RemoteServiceError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Service, e.Operation)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// HTTPStatus returns the HTTP status code, or 0 when none was received.
func (e *RemoteServiceError) HTTPStatus() int {
	return e.StatusCode
}

// Unwrap returns the underlying cause.
func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRemoteService.
func (e *RemoteServiceError) Is(target error) bool {
	return target == ErrRemoteService
}
