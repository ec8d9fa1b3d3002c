package config

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports a missing or malformed setting. It is returned
// by Load before any network client is constructed.
type ConfigurationError struct {
	Key    string
	Reason string
	Err    error
}

// Error returns a formatted error message naming the offending key.
func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %s: %v", e.Key, e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
}

// Unwrap returns the underlying parse error, if any.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func missing(key string) *ConfigurationError {
	return &ConfigurationError{Key: key, Reason: "missing required environment variable"}
}
