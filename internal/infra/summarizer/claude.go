package summarizer

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"news-digest/internal/domain/entity"
	"news-digest/internal/resilience/circuitbreaker"
	"news-digest/internal/resilience/retry"
	"news-digest/internal/utils/text"
)

// Claude implements Summarizer using Anthropic's Messages API.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	config          Config
	metricsRecorder SummaryMetricsRecorder
}

// NewClaude creates a Claude summarizer. The SDK's own retries are disabled;
// retries are governed by cfg.MaxAttempts like every other remote call.
func NewClaude(cfg Config) *Claude {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.timeout()}),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Claude{
		client:          anthropic.NewClient(opts...),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.LLMAPIConfig(cfg.Provider)),
		retryConfig:     retry.Attempts(cfg.MaxAttempts),
		config:          cfg,
		metricsRecorder: NewPrometheusSummaryMetrics(cfg.Provider),
	}
}

// WithMetricsRecorder replaces the metrics recorder. Intended for tests.
func (c *Claude) WithMetricsRecorder(r SummaryMetricsRecorder) *Claude {
	c.metricsRecorder = r
	return c
}

// Summarize implements Summarizer.
func (c *Claude) Summarize(ctx context.Context, body string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout())
	defer cancel()

	return call(ctx, c.config.Provider, c.circuitBreaker, c.retryConfig, func() (string, error) {
		return c.doSummarize(ctx, body, effectiveMaxTokens(maxTokens))
	})
}

// doSummarize performs the actual API call without retry or circuit breaker.
func (c *Claude) doSummarize(ctx context.Context, body string, maxTokens int) (string, error) {
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "Starting summarization",
		slog.String("request_id", requestID),
		slog.String("provider", c.config.Provider),
		slog.String("model", c.config.Model),
		slog.Int("input_length", text.CountRunes(body)),
		slog.Int("max_tokens", maxTokens))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(BuildPrompt(body)),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Summarization failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		remoteErr := &entity.RemoteServiceError{
			Service:   c.config.Provider,
			Operation: "summarize",
			Err:       err,
		}
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			remoteErr.StatusCode = apiErr.StatusCode
		}
		c.metricsRecorder.RecordRequest(duration, remoteErr)
		return "", remoteErr
	}

	var parts []string
	for _, block := range message.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
			parts = append(parts, textBlock.Text)
		}
	}
	if len(parts) == 0 {
		slog.ErrorContext(ctx, "Claude API returned no text content",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		remoteErr := &entity.RemoteServiceError{
			Service:   c.config.Provider,
			Operation: "summarize",
			Message:   "empty response",
		}
		c.metricsRecorder.RecordRequest(duration, remoteErr)
		return "", remoteErr
	}

	summary := strings.TrimSpace(strings.Join(parts, ""))
	summaryLength := text.CountRunes(summary)

	slog.InfoContext(ctx, "Summarization completed",
		slog.String("request_id", requestID),
		slog.Int("summary_length", summaryLength),
		slog.String("stop_reason", string(message.StopReason)),
		slog.Duration("duration", duration))

	c.metricsRecorder.RecordRequest(duration, nil)
	c.metricsRecorder.RecordLength(summaryLength)

	return summary, nil
}
