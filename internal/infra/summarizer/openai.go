package summarizer

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"news-digest/internal/domain/entity"
	"news-digest/internal/resilience/circuitbreaker"
	"news-digest/internal/resilience/retry"
	"news-digest/internal/utils/text"
)

// OpenAI implements Summarizer against an OpenAI-compatible chat completions
// API. It serves both the "openai" and the "gemini" providers.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	config          Config
	metricsRecorder SummaryMetricsRecorder
}

// NewOpenAI creates an OpenAI-compatible summarizer. The Gemini provider
// defaults to GeminiBaseURL; cfg.BaseURL overrides either default.
func NewOpenAI(cfg Config) *OpenAI {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	switch {
	case cfg.BaseURL != "":
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	case cfg.Provider == ProviderGemini:
		clientConfig.BaseURL = GeminiBaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.timeout()}

	return &OpenAI{
		client:          openai.NewClientWithConfig(clientConfig),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.LLMAPIConfig(cfg.Provider)),
		retryConfig:     retry.Attempts(cfg.MaxAttempts),
		config:          cfg,
		metricsRecorder: NewPrometheusSummaryMetrics(cfg.Provider),
	}
}

// WithMetricsRecorder replaces the metrics recorder. Intended for tests.
func (o *OpenAI) WithMetricsRecorder(r SummaryMetricsRecorder) *OpenAI {
	o.metricsRecorder = r
	return o
}

// Summarize implements Summarizer.
func (o *OpenAI) Summarize(ctx context.Context, body string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.timeout())
	defer cancel()

	return call(ctx, o.config.Provider, o.circuitBreaker, o.retryConfig, func() (string, error) {
		return o.doSummarize(ctx, body, effectiveMaxTokens(maxTokens))
	})
}

// doSummarize performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doSummarize(ctx context.Context, body string, maxTokens int) (string, error) {
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "Starting summarization",
		slog.String("request_id", requestID),
		slog.String("provider", o.config.Provider),
		slog.String("model", o.config.Model),
		slog.Int("input_length", text.CountRunes(body)),
		slog.Int("max_tokens", maxTokens))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.config.Model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: BuildPrompt(body),
		}},
		MaxTokens: maxTokens,
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Summarization failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		remoteErr := o.remoteError(err)
		o.metricsRecorder.RecordRequest(duration, remoteErr)
		return "", remoteErr
	}

	if len(resp.Choices) == 0 {
		slog.ErrorContext(ctx, "LLM API returned empty response",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		remoteErr := &entity.RemoteServiceError{
			Service:   o.config.Provider,
			Operation: "summarize",
			Message:   "empty response",
		}
		o.metricsRecorder.RecordRequest(duration, remoteErr)
		return "", remoteErr
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	summaryLength := text.CountRunes(summary)

	slog.InfoContext(ctx, "Summarization completed",
		slog.String("request_id", requestID),
		slog.Int("summary_length", summaryLength),
		slog.String("finish_reason", string(resp.Choices[0].FinishReason)),
		slog.Duration("duration", duration))

	o.metricsRecorder.RecordRequest(duration, nil)
	o.metricsRecorder.RecordLength(summaryLength)

	return summary, nil
}

// remoteError converts a go-openai error into a RemoteServiceError,
// keeping the HTTP status for retry classification.
func (o *OpenAI) remoteError(err error) *entity.RemoteServiceError {
	remoteErr := &entity.RemoteServiceError{
		Service:   o.config.Provider,
		Operation: "summarize",
		Err:       err,
	}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		remoteErr.StatusCode = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		remoteErr.StatusCode = reqErr.HTTPStatusCode
	}
	return remoteErr
}
