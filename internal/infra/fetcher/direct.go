// Package fetcher scrapes news pages directly, without a remote scraping API.
// Homepages are reduced to their links with goquery (or gofeed when the source
// is an RSS/Atom feed) and article bodies are extracted with go-readability.
package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"news-digest/internal/domain/entity"
	"news-digest/internal/observability/metrics"
	"news-digest/internal/resilience/circuitbreaker"
	"news-digest/internal/resilience/retry"
)

// ServiceName identifies the direct backend in errors, logs and metrics.
const ServiceName = "direct"

// page is a fetched HTTP response body together with its final URL.
type page struct {
	url         *url.URL
	contentType string
	body        []byte
}

// DirectScraper fetches homepages and articles over plain HTTP.
// It is safe for concurrent use.
type DirectScraper struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         Config
}

// NewDirectScraper creates a DirectScraper. Redirect targets are validated
// with the same SSRF rules as the initial URL.
func NewDirectScraper(config Config) *DirectScraper {
	s := &DirectScraper{
		circuitBreaker: circuitbreaker.New(circuitbreaker.DirectFetchConfig()),
		retryConfig:    retry.Attempts(config.MaxAttempts),
		config:         config,
	}

	s.client = &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= s.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.URL.String(), s.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	return s
}

// FetchTopHeadlines returns up to limit distinct http(s) links found on
// sourceURL, in page order. Feeds yield their item links; HTML pages yield
// every anchor resolved against the final page URL.
// A limit of zero or less returns an empty slice without fetching.
func (s *DirectScraper) FetchTopHeadlines(ctx context.Context, sourceURL string, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}

	p, err := s.fetch(ctx, "headlines", sourceURL)
	if err != nil {
		return nil, err
	}

	var raw []string
	if isFeed(p) {
		raw, err = feedLinks(p)
	} else {
		raw, err = anchorLinks(p)
	}
	if err != nil {
		return nil, &entity.RemoteServiceError{Service: ServiceName, Operation: "headlines", Message: "parse page", Err: err}
	}

	links := entity.CleanLinks(raw, limit)
	slog.DebugContext(ctx, "headlines extracted",
		slog.String("source_url", sourceURL),
		slog.Bool("feed", isFeed(p)),
		slog.Int("raw_links", len(raw)),
		slog.Int("kept_links", len(links)))
	return links, nil
}

// FetchArticleBody returns the readable text of articleURL.
// A page without extractable content yields an empty string.
func (s *DirectScraper) FetchArticleBody(ctx context.Context, articleURL string) (string, error) {
	p, err := s.fetch(ctx, "article", articleURL)
	if err != nil {
		return "", err
	}

	article, err := readability.FromReader(io.NopCloser(bytes.NewReader(p.body)), p.url)
	if err != nil {
		slog.WarnContext(ctx, "no readable content found",
			slog.String("url", articleURL),
			slog.String("error", err.Error()))
		return "", nil
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		slog.DebugContext(ctx, "readability returned empty text",
			slog.String("url", articleURL))
	}
	return text, nil
}

// fetch validates target and downloads it through retry and the circuit breaker.
func (s *DirectScraper) fetch(ctx context.Context, operation, target string) (*page, error) {
	if err := validateURL(target, s.config.DenyPrivateIPs); err != nil {
		return nil, &entity.RemoteServiceError{Service: ServiceName, Operation: operation, Err: err}
	}

	var result *page
	start := time.Now()

	err := retry.WithBackoff(ctx, s.retryConfig, func() error {
		cbResult, err := s.circuitBreaker.Execute(func() (interface{}, error) {
			return s.doFetch(ctx, operation, target)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.WarnContext(ctx, "direct fetch circuit breaker open, request rejected",
					slog.String("service", ServiceName),
					slog.String("url", target),
					slog.String("state", s.circuitBreaker.State().String()))
				return &entity.RemoteServiceError{
					Service:   ServiceName,
					Operation: operation,
					Message:   "service unavailable: circuit breaker open",
					Err:       err,
				}
			}
			return err
		}
		result = cbResult.(*page)
		return nil
	})

	metrics.RecordRemoteRequest(ServiceName, operation, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// doFetch performs the HTTP request without retry or circuit breaker.
func (s *DirectScraper) doFetch(ctx context.Context, operation, target string) (*page, error) {
	fail := func(status int, msg string, cause error) error {
		return &entity.RemoteServiceError{
			Service:    ServiceName,
			Operation:  operation,
			StatusCode: status,
			Message:    msg,
			Err:        cause,
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fail(0, "build request", fmt.Errorf("%w: %v", ErrInvalidURL, err))
	}
	req.Header.Set("User-Agent", s.config.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fail(0, "", fmt.Errorf("%w: request exceeded %v", ErrTimeout, s.config.Timeout))
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Err != nil {
			return nil, fail(0, "", urlErr.Err)
		}
		return nil, fail(0, "", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fail(resp.StatusCode, resp.Status, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.config.MaxBodySize+1))
	if err != nil {
		return nil, fail(resp.StatusCode, "read response body", err)
	}
	if int64(len(body)) > s.config.MaxBodySize {
		return nil, fail(resp.StatusCode, "", fmt.Errorf("%w: response exceeds %d bytes", ErrBodyTooLarge, s.config.MaxBodySize))
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	metrics.RecordArticleBodySize(len(body))
	return &page{
		url:         finalURL,
		contentType: resp.Header.Get("Content-Type"),
		body:        body,
	}, nil
}

// isFeed reports whether p looks like an RSS or Atom document.
func isFeed(p *page) bool {
	ct := strings.ToLower(p.contentType)
	if strings.Contains(ct, "rss") || strings.Contains(ct, "atom") {
		return true
	}
	if strings.Contains(ct, "html") {
		return false
	}
	head := strings.ToLower(string(p.body[:min(len(p.body), 512)]))
	return strings.Contains(head, "<rss") || strings.Contains(head, "<feed") || strings.Contains(head, "<rdf:rdf")
}

// feedLinks returns the item links of an RSS/Atom feed.
func feedLinks(p *page) ([]string, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(p.body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	links := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		link := item.Link
		if link == "" && len(item.Links) > 0 {
			link = item.Links[0]
		}
		if link != "" {
			links = append(links, resolve(p.url, link))
		}
	}
	return links, nil
}

// anchorLinks returns every a[href] on an HTML page, resolved against its URL
// and stripped of fragments.
func anchorLinks(p *page) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	var links []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		links = append(links, resolve(p.url, href))
	})
	return links, nil
}

// resolve makes href absolute against base. Unparseable hrefs are returned
// unchanged and later rejected by entity.CleanLinks.
func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	ref.Fragment = ""
	return ref.String()
}
