package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// GetString returns the trimmed value of key, or defaultValue if the key is
// missing or blank.
//
// Example:
//
//	model := GetString(src, "LLM_MODEL", "gemini-2.5-flash")
func GetString(src Source, key, defaultValue string) string {
	value, ok := src.Lookup(key)
	if !ok {
		return defaultValue
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetInt returns the value of key parsed as an integer.
//
// Unlike GetDuration, a malformed value is reported as an error rather than
// replaced by the default: integer settings such as limits change what the
// program does, so silently substituting them would hide operator mistakes.
//
// Example:
//
//	limit, err := GetInt(src, "DEFAULT_LIMIT", 5)
func GetInt(src Source, key string, defaultValue int) (int, error) {
	valueStr := GetString(src, key, "")
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid integer value for %s=%q: %w", key, valueStr, err)
	}
	return value, nil
}

// GetDuration returns the value of key as a time.Duration.
//
// The value must be parseable by time.ParseDuration (e.g., "1m", "30s").
// If the key is missing, empty, unparseable, or rejected by validator, the
// default is returned and a warning is logged.
//
// Example:
//
//	timeout := GetDuration(src, "REQUEST_TIMEOUT", 60*time.Second, ValidatePositiveDuration)
func GetDuration(src Source, key string, defaultValue time.Duration, validator func(time.Duration) error) time.Duration {
	valueStr := GetString(src, key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err == nil && validator != nil {
		err = validator(value)
	}
	if err != nil {
		slog.Warn("invalid duration value for configuration key, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.String("default", defaultValue.String()),
			slog.String("error", err.Error()))
		return defaultValue
	}

	return value
}
