// Package scrapeapi is a client for a Firecrawl-compatible remote scraping API.
// It lists the links on a news homepage and fetches article bodies as Markdown.
package scrapeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"news-digest/internal/domain/entity"
	"news-digest/internal/observability/metrics"
	"news-digest/internal/resilience/circuitbreaker"
	"news-digest/internal/resilience/retry"
)

const (
	// ServiceName identifies this client in errors, logs and metrics.
	ServiceName = "firecrawl"

	scrapePath = "/v1/scrape"

	formatLinks    = "links"
	formatMarkdown = "markdown"

	// maxResponseSize bounds how much of a response body is read.
	maxResponseSize = 20 * 1024 * 1024

	// maxErrorBodyChars bounds the raw body quoted in error messages.
	maxErrorBodyChars = 200
)

// Config holds the connection settings for the scraping API.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.firecrawl.dev".
	BaseURL string
	// APIKey is sent as a bearer token.
	APIKey string
	// Timeout bounds each HTTP request.
	Timeout time.Duration
	// RequestsPerMinute paces requests. Zero disables pacing.
	RequestsPerMinute int
	// MaxAttempts is the number of attempts per call. Values below 2 disable retry.
	MaxAttempts int
}

// Client talks to the scraping API. It is safe for concurrent use.
type Client struct {
	baseURL        string
	apiKey         string
	httpClient     *http.Client
	limiter        *rate.Limiter
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewClient creates a Client from cfg.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}

	return &Client{
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		httpClient:     &http.Client{Timeout: timeout},
		limiter:        limiter,
		circuitBreaker: circuitbreaker.New(circuitbreaker.ScrapeAPIConfig()),
		retryConfig:    retry.Attempts(cfg.MaxAttempts),
	}
}

// scrapeRequest is the JSON body of a scrape call.
type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

// FetchTopHeadlines scrapes sourceURL and returns up to limit distinct
// http(s) links in the order they appear on the page.
// A limit of zero or less returns an empty slice without calling the API.
func (c *Client) FetchTopHeadlines(ctx context.Context, sourceURL string, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}

	data, err := c.scrape(ctx, "headlines", sourceURL, formatLinks)
	if err != nil {
		return nil, err
	}

	var raw []string
	for _, link := range data.Get("links").Array() {
		if link.Type == gjson.String {
			raw = append(raw, link.String())
		}
	}

	links := entity.CleanLinks(raw, limit)
	slog.DebugContext(ctx, "headlines fetched",
		slog.String("source_url", sourceURL),
		slog.Int("raw_links", len(raw)),
		slog.Int("kept_links", len(links)))
	return links, nil
}

// FetchArticleBody scrapes articleURL and returns its Markdown body.
// A response without a markdown field yields an empty string.
func (c *Client) FetchArticleBody(ctx context.Context, articleURL string) (string, error) {
	data, err := c.scrape(ctx, "article", articleURL, formatMarkdown)
	if err != nil {
		return "", err
	}
	markdown := data.Get("markdown").String()
	metrics.RecordArticleBodySize(len(markdown))
	return markdown, nil
}

// scrape runs one scrape call through the retry and circuit breaker layers
// and returns the response payload (the "data" object when present).
func (c *Client) scrape(ctx context.Context, operation, target string, formats ...string) (gjson.Result, error) {
	var result gjson.Result
	start := time.Now()

	err := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doScrape(ctx, operation, target, formats)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.WarnContext(ctx, "scrape api circuit breaker open, request rejected",
					slog.String("service", ServiceName),
					slog.String("state", c.circuitBreaker.State().String()))
				return &entity.RemoteServiceError{
					Service:   ServiceName,
					Operation: operation,
					Message:   "service unavailable: circuit breaker open",
					Err:       err,
				}
			}
			return err
		}
		result = cbResult.(gjson.Result)
		return nil
	})

	metrics.RecordRemoteRequest("scrape", operation, time.Since(start), err)
	if err != nil {
		return gjson.Result{}, err
	}
	return result, nil
}

// doScrape performs a single HTTP call without retry or circuit breaker.
func (c *Client) doScrape(ctx context.Context, operation, target string, formats []string) (gjson.Result, error) {
	requestID := uuid.New().String()
	fail := func(status int, msg string, cause error) error {
		return &entity.RemoteServiceError{
			Service:    ServiceName,
			Operation:  operation,
			StatusCode: status,
			Message:    msg,
			Err:        cause,
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return gjson.Result{}, fmt.Errorf("scrape pacing: %w", err)
		}
	}

	payload, err := json.Marshal(scrapeRequest{URL: target, Formats: formats})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("encode scrape request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+scrapePath, bytes.NewReader(payload))
	if err != nil {
		return gjson.Result{}, fail(0, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	slog.DebugContext(ctx, "scrape request",
		slog.String("request_id", requestID),
		slog.String("operation", operation),
		slog.String("url", target))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "scrape request failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()))
		return gjson.Result{}, fail(0, "", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return gjson.Result{}, fail(resp.StatusCode, "read response body", err)
	}

	slog.DebugContext(ctx, "scrape response",
		slog.String("request_id", requestID),
		slog.Int("status", resp.StatusCode),
		slog.Int("body_bytes", len(body)),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return gjson.Result{}, fail(resp.StatusCode, errorMessage(body), nil)
	}

	data, apiErr := parseResponse(body)
	if apiErr != "" {
		return gjson.Result{}, fail(resp.StatusCode, apiErr, nil)
	}
	return data, nil
}

// parseResponse validates a 2xx body and returns its payload.
// The second return value is a non-empty message when the API reported failure.
func parseResponse(body []byte) (gjson.Result, string) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, "malformed response body"
	}
	res := gjson.ParseBytes(body)
	if !res.IsObject() {
		return gjson.Result{}, "unexpected response shape"
	}
	if success := res.Get("success"); success.Exists() && !success.Bool() {
		msg := res.Get("error").String()
		if msg == "" {
			msg = "scrape reported failure"
		}
		return gjson.Result{}, msg
	}
	if data := res.Get("data"); data.IsObject() {
		return data, ""
	}
	return res, ""
}

// errorMessage extracts a human-readable message from a non-2xx body.
func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		res := gjson.ParseBytes(body)
		for _, key := range []string{"error", "message", "error.message"} {
			if msg := res.Get(key); msg.Type == gjson.String && msg.String() != "" {
				return msg.String()
			}
		}
	}
	msg := strings.TrimSpace(string(body))
	if runes := []rune(msg); len(runes) > maxErrorBodyChars {
		msg = string(runes[:maxErrorBodyChars]) + "..."
	}
	return msg
}
