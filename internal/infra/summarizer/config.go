package summarizer

import (
	"fmt"
	"time"
)

// Supported providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

const (
	// DefaultMaxTokens caps a summary when the caller passes no positive limit.
	DefaultMaxTokens = 256

	// GeminiBaseURL is Gemini's OpenAI-compatible endpoint.
	GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

	defaultTimeout = 60 * time.Second
)

// Config holds the settings shared by every provider.
type Config struct {
	// Provider is one of ProviderGemini, ProviderOpenAI or ProviderClaude.
	Provider string

	// APIKey authenticates against the provider.
	APIKey string

	// Model is the provider model identifier sent with every request.
	Model string

	// BaseURL overrides the provider endpoint. Empty means the provider default.
	BaseURL string

	// Timeout bounds a single summarization call.
	Timeout time.Duration

	// MaxAttempts is the number of attempts per call. Values below 2 disable retry.
	MaxAttempts int
}

// Validate checks the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderClaude:
	default:
		return fmt.Errorf("unsupported provider %q", c.Provider)
	}

	if c.APIKey == "" {
		return fmt.Errorf("api key cannot be empty")
	}

	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", c.Timeout)
	}

	return nil
}

func (c *Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}
