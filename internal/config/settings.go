// Package config loads the digest settings from the environment and an
// optional YAML file.
package config

import (
	"fmt"
	"strings"
	"time"

	pkgconfig "news-digest/pkg/config"
)

// Configuration keys.
const (
	KeyScrapeAPIKey    = "SCRAPE_API_KEY"
	KeyScrapeAPIURL    = "SCRAPE_API_URL"
	KeyScrapeBackend   = "SCRAPE_BACKEND"
	KeyScrapeRateLimit = "SCRAPE_RATE_LIMIT"
	KeyLLMAPIKey       = "LLM_API_KEY"
	KeyLLMProvider     = "LLM_PROVIDER"
	KeyLLMModel        = "LLM_MODEL"
	KeyLLMBaseURL      = "LLM_BASE_URL"
	KeyLLMMaxTokens    = "LLM_MAX_TOKENS"
	KeyDefaultLimit    = "DEFAULT_LIMIT"
	KeyRequestTimeout  = "REQUEST_TIMEOUT"
	KeyMaxAttempts     = "MAX_ATTEMPTS"
)

// Scrape backends.
const (
	BackendFirecrawl = "firecrawl"
	BackendDirect    = "direct"
)

// LLM providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

// Defaults.
const (
	DefaultScrapeAPIURL   = "https://api.firecrawl.dev"
	DefaultLimit          = 5
	DefaultMaxTokens      = 256
	DefaultRequestTimeout = 60 * time.Second
	DefaultMaxAttempts    = 1

	maxLLMMaxTokens = 32768
	maxMaxAttempts  = 10
)

// defaultModels maps each provider to the model used when LLM_MODEL is unset.
var defaultModels = map[string]string{
	ProviderGemini: "gemini-2.5-flash-preview-04-17",
	ProviderOpenAI: "gpt-4o-mini",
	ProviderClaude: "claude-haiku-4-5-20251001",
}

// Settings is the immutable configuration for one CLI invocation.
type Settings struct {
	// ScrapeBackend selects the headline/body source: "firecrawl" (remote
	// scraping API) or "direct" (fetch pages locally).
	ScrapeBackend string
	// ScrapeAPIKey authenticates against the remote scraping API.
	// Required when ScrapeBackend is "firecrawl".
	ScrapeAPIKey string
	// ScrapeAPIURL is the base URL of the remote scraping API.
	ScrapeAPIURL string
	// ScrapeRateLimit caps scrape requests per minute. Zero disables pacing.
	ScrapeRateLimit int

	// LLMProvider selects the summarization backend.
	LLMProvider string
	// LLMAPIKey authenticates against the summarization API. Always required.
	LLMAPIKey string
	// LLMModel is the model identifier sent with every summarization request.
	LLMModel string
	// LLMBaseURL overrides the provider endpoint. Empty means provider default.
	LLMBaseURL string
	// LLMMaxTokens caps the length of each generated summary.
	LLMMaxTokens int

	// DefaultLimit is the headline limit used when -n is not given.
	DefaultLimit int
	// RequestTimeout bounds each remote call.
	RequestTimeout time.Duration
	// MaxAttempts is the number of attempts per remote call. 1 disables retry.
	MaxAttempts int
}

// Load builds Settings from src. Required keys are checked first, so a
// missing key is reported before any optional value is parsed.
func Load(src pkgconfig.Source) (*Settings, error) {
	backend := strings.ToLower(pkgconfig.GetString(src, KeyScrapeBackend, BackendFirecrawl))
	if backend != BackendFirecrawl && backend != BackendDirect {
		return nil, &ConfigurationError{
			Key:    KeyScrapeBackend,
			Reason: fmt.Sprintf("unknown backend %q (valid: %s, %s)", backend, BackendFirecrawl, BackendDirect),
		}
	}

	scrapeKey := pkgconfig.GetString(src, KeyScrapeAPIKey, "")
	if scrapeKey == "" && backend == BackendFirecrawl {
		return nil, missing(KeyScrapeAPIKey)
	}

	llmKey := pkgconfig.GetString(src, KeyLLMAPIKey, "")
	if llmKey == "" {
		return nil, missing(KeyLLMAPIKey)
	}

	provider := strings.ToLower(pkgconfig.GetString(src, KeyLLMProvider, ProviderGemini))
	defaultModel, ok := defaultModels[provider]
	if !ok {
		return nil, &ConfigurationError{
			Key:    KeyLLMProvider,
			Reason: fmt.Sprintf("unknown provider %q (valid: %s, %s, %s)", provider, ProviderGemini, ProviderOpenAI, ProviderClaude),
		}
	}

	limit, err := nonNegativeInt(src, KeyDefaultLimit, DefaultLimit)
	if err != nil {
		return nil, err
	}
	maxTokens, err := boundedInt(src, KeyLLMMaxTokens, DefaultMaxTokens, 1, maxLLMMaxTokens)
	if err != nil {
		return nil, err
	}
	rateLimit, err := nonNegativeInt(src, KeyScrapeRateLimit, 0)
	if err != nil {
		return nil, err
	}
	attempts, err := boundedInt(src, KeyMaxAttempts, DefaultMaxAttempts, 1, maxMaxAttempts)
	if err != nil {
		return nil, err
	}

	return &Settings{
		ScrapeBackend:   backend,
		ScrapeAPIKey:    scrapeKey,
		ScrapeAPIURL:    strings.TrimRight(pkgconfig.GetString(src, KeyScrapeAPIURL, DefaultScrapeAPIURL), "/"),
		ScrapeRateLimit: rateLimit,
		LLMProvider:     provider,
		LLMAPIKey:       llmKey,
		LLMModel:        pkgconfig.GetString(src, KeyLLMModel, defaultModel),
		LLMBaseURL:      pkgconfig.GetString(src, KeyLLMBaseURL, ""),
		LLMMaxTokens:    maxTokens,
		DefaultLimit:    limit,
		RequestTimeout:  pkgconfig.GetDuration(src, KeyRequestTimeout, DefaultRequestTimeout, pkgconfig.ValidatePositiveDuration),
		MaxAttempts:     attempts,
	}, nil
}

// LoadFile layers the environment over the YAML file at path and loads
// Settings from the result. An empty path reads the environment only.
func LoadFile(path string) (*Settings, error) {
	if path == "" {
		return Load(pkgconfig.EnvSource{})
	}
	file, err := pkgconfig.LoadYAMLFile(path)
	if err != nil {
		return nil, &ConfigurationError{Key: "config file", Reason: path, Err: err}
	}
	return Load(pkgconfig.Layered{pkgconfig.EnvSource{}, file})
}

func nonNegativeInt(src pkgconfig.Source, key string, def int) (int, error) {
	v, err := pkgconfig.GetInt(src, key, def)
	if err != nil {
		return 0, &ConfigurationError{Key: key, Reason: "must be an integer", Err: err}
	}
	if v < 0 {
		return 0, &ConfigurationError{Key: key, Reason: fmt.Sprintf("must not be negative, got %d", v)}
	}
	return v, nil
}

func boundedInt(src pkgconfig.Source, key string, def, min, max int) (int, error) {
	v, err := nonNegativeInt(src, key, def)
	if err != nil {
		return 0, err
	}
	if err := pkgconfig.ValidateIntRange(v, min, max); err != nil {
		return 0, &ConfigurationError{Key: key, Reason: "out of range", Err: err}
	}
	return v, nil
}
