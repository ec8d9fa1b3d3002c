// Package summarizer turns article bodies into short bullet-point summaries
// using a hosted language model. Gemini and OpenAI are reached through
// go-openai (Gemini via its OpenAI-compatible endpoint); Claude through the
// Anthropic SDK. Every client wraps its calls in a circuit breaker and the
// opt-in retry policy, and reports failures as *entity.RemoteServiceError.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker"

	"news-digest/internal/domain/entity"
	"news-digest/internal/resilience/circuitbreaker"
	"news-digest/internal/resilience/retry"
)

// promptPrefix is prepended to every article body.
const promptPrefix = "Summarize the following news article in three crisp bullet points. Do not add commentary.\n\n"

// Summarizer produces a summary of an article body.
type Summarizer interface {
	// Summarize returns the model's summary of body, trimmed of surrounding
	// whitespace. maxTokens <= 0 means DefaultMaxTokens.
	Summarize(ctx context.Context, body string, maxTokens int) (string, error)
}

// New returns the Summarizer for cfg.Provider.
func New(cfg Config) (Summarizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid summarizer configuration: %w", err)
	}

	slog.Debug("initialized summarizer",
		slog.String("provider", cfg.Provider),
		slog.String("model", cfg.Model))

	switch cfg.Provider {
	case ProviderClaude:
		return NewClaude(cfg), nil
	default:
		return NewOpenAI(cfg), nil
	}
}

// BuildPrompt returns the instruction sent to the model for body.
func BuildPrompt(body string) string {
	return promptPrefix + body
}

func effectiveMaxTokens(maxTokens int) int {
	if maxTokens <= 0 {
		return DefaultMaxTokens
	}
	return maxTokens
}

// call runs fn through the retry policy and circuit breaker shared by every provider.
func call(ctx context.Context, provider string, cb *circuitbreaker.CircuitBreaker, retryConfig retry.Config, fn func() (string, error)) (string, error) {
	var result string

	err := retry.WithBackoff(ctx, retryConfig, func() error {
		cbResult, err := cb.Execute(func() (interface{}, error) {
			return fn()
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.WarnContext(ctx, "llm api circuit breaker open, request rejected",
					slog.String("service", provider),
					slog.String("state", cb.State().String()))
				return &entity.RemoteServiceError{
					Service:   provider,
					Operation: "summarize",
					Message:   "service unavailable: circuit breaker open",
					Err:       err,
				}
			}
			return err
		}
		result = cbResult.(string)
		return nil
	})

	if err != nil {
		return "", err
	}
	return result, nil
}
