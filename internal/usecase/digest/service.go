// Package digest builds a Markdown news digest: it lists the headline links
// on a homepage, fetches and summarizes each article in turn, and renders
// the result.
package digest

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"news-digest/internal/domain/entity"
	"news-digest/internal/observability/logging"
	"news-digest/internal/observability/metrics"
	"news-digest/internal/observability/tracing"
)

// Scraper lists headline links and fetches article bodies.
type Scraper interface {
	FetchTopHeadlines(ctx context.Context, sourceURL string, limit int) ([]string, error)
	FetchArticleBody(ctx context.Context, articleURL string) (string, error)
}

// Summarizer condenses an article body.
type Summarizer interface {
	Summarize(ctx context.Context, body string, maxTokens int) (string, error)
}

// Service runs the digest pipeline. Articles are processed strictly one
// after another, and the first failure aborts the run.
type Service struct {
	Scraper    Scraper
	Summarizer Summarizer
	// MaxTokens caps each summary. Zero means the summarizer default.
	MaxTokens int
}

// NewService creates a digest Service.
func NewService(scraper Scraper, summarizer Summarizer, maxTokens int) Service {
	return Service{
		Scraper:    scraper,
		Summarizer: summarizer,
		MaxTokens:  maxTokens,
	}
}

// Run fetches up to limit headlines from sourceURL, summarizes each article
// and returns the Markdown digest. No partial digest is returned on error.
// Quota and rate-limit failures come back as *QuotaExceededError; every
// other error is returned as the collaborator reported it.
func (s *Service) Run(ctx context.Context, sourceURL string, limit int) (string, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	ctx, span := tracing.StartSpan(ctx, "digest.run",
		attribute.String("source.url", sourceURL),
		attribute.Int("digest.limit", limit))
	defer span.End()

	d, err := s.build(ctx, logger, sourceURL, limit)
	if err != nil {
		err = translateError(err)
		tracing.RecordError(span, err)
		metrics.RecordRun(false, time.Since(start))
		logger.Error("digest run failed",
			slog.String("source_url", sourceURL),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err))
		return "", err
	}

	markdown := d.Markdown()
	span.SetAttributes(attribute.Int("digest.entries", d.Len()))
	metrics.RecordRun(true, time.Since(start))
	logger.Info("digest generated",
		slog.String("source_url", sourceURL),
		slog.Int("entries", d.Len()),
		slog.Int("markdown_bytes", len(markdown)),
		slog.Duration("duration", time.Since(start)))

	return markdown, nil
}

// build runs the fetch and summarize steps and returns the assembled digest.
func (s *Service) build(ctx context.Context, logger *slog.Logger, sourceURL string, limit int) (*entity.Digest, error) {
	links, err := s.fetchHeadlines(ctx, sourceURL, limit)
	if err != nil {
		return nil, err
	}
	metrics.RecordHeadlinesFetched(len(links))
	logger.Info("headlines fetched",
		slog.String("source_url", sourceURL),
		slog.Int("count", len(links)))

	d := entity.NewDigest(sourceURL, len(links))
	for i, link := range links {
		summary, err := s.processArticle(ctx, link)
		if err != nil {
			logger.Warn("article processing failed, aborting run",
				slog.Int("index", i),
				slog.String("url", link),
				slog.Any("error", err))
			return nil, err
		}
		d.Add(link, summary)
		logger.Debug("article summarized",
			slog.Int("index", i),
			slog.String("url", link))
	}
	return d, nil
}

func (s *Service) fetchHeadlines(ctx context.Context, sourceURL string, limit int) ([]string, error) {
	ctx, span := tracing.StartSpan(ctx, "digest.fetch_headlines")
	defer span.End()

	links, err := s.Scraper.FetchTopHeadlines(ctx, sourceURL, limit)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("headlines.count", len(links)))
	return links, nil
}

// processArticle fetches one article body and summarizes it.
func (s *Service) processArticle(ctx context.Context, link string) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "digest.article",
		attribute.String("article.url", link))
	defer span.End()

	body, err := s.Scraper.FetchArticleBody(ctx, link)
	if err != nil {
		tracing.RecordError(span, err)
		return "", err
	}
	span.SetAttributes(attribute.Int("article.body_bytes", len(body)))

	summary, err := s.Summarizer.Summarize(ctx, body, s.MaxTokens)
	metrics.RecordArticleSummarized(err == nil)
	if err != nil {
		tracing.RecordError(span, err)
		return "", err
	}
	return summary, nil
}
