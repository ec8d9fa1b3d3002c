// Package config provides small, dependency-light helpers for reading
// configuration values from the environment and from flat YAML files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source resolves a configuration key to its raw string value.
// The boolean reports whether the key was present at all.
type Source interface {
	Lookup(key string) (string, bool)
}

// EnvSource reads keys from the process environment.
type EnvSource struct{}

// Lookup implements Source.
func (EnvSource) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapSource serves keys from an in-memory map. It is used for parsed config
// files and in tests.
type MapSource map[string]string

// Lookup implements Source.
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Layered consults each source in order and returns the first non-blank hit,
// so an exported-but-empty environment variable does not mask a file value.
type Layered []Source

// Lookup implements Source.
func (l Layered) Lookup(key string) (string, bool) {
	for _, src := range l {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(key); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// LoadYAMLFile reads a flat YAML mapping (KEY: value) into a MapSource.
// Scalar values of any YAML type are converted to their string form so that
// `DEFAULT_LIMIT: 5` and `DEFAULT_LIMIT: "5"` behave the same.
//
// Example file:
//
//	SCRAPE_API_KEY: fc-xxxx
//	LLM_MODEL: gemini-2.5-flash
//	DEFAULT_LIMIT: 3
func LoadYAMLFile(path string) (MapSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	out := make(MapSource, len(raw))
	for k, v := range raw {
		switch tv := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = tv
		case int:
			out[k] = strconv.Itoa(tv)
		case bool:
			out[k] = strconv.FormatBool(tv)
		case float64:
			out[k] = strconv.FormatFloat(tv, 'f', -1, 64)
		default:
			return nil, fmt.Errorf("parsing config %s: key %q must be a scalar, got %T", path, k, v)
		}
	}
	return out, nil
}
