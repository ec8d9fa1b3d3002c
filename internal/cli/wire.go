package cli

import (
	"io"
	"os"

	"news-digest/internal/config"
	"news-digest/internal/infra/fetcher"
	"news-digest/internal/infra/scrapeapi"
	"news-digest/internal/infra/summarizer"
	"news-digest/internal/usecase/digest"
)

// Deps holds the I/O streams and client constructors used by the commands.
// Tests replace the constructors with fakes.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer

	NewScraper    func(s *config.Settings) (digest.Scraper, error)
	NewSummarizer func(s *config.Settings) (digest.Summarizer, error)
}

// DefaultDeps wires the real clients to the process streams.
func DefaultDeps() Deps {
	return Deps{
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		NewScraper:    newScraper,
		NewSummarizer: newSummarizer,
	}
}

// newScraper builds the scrape backend selected by SCRAPE_BACKEND.
func newScraper(s *config.Settings) (digest.Scraper, error) {
	if s.ScrapeBackend == config.BackendDirect {
		cfg := fetcher.DefaultConfig()
		cfg.Timeout = s.RequestTimeout
		cfg.MaxAttempts = s.MaxAttempts
		if err := cfg.Validate(); err != nil {
			return nil, &config.ConfigurationError{Key: config.KeyRequestTimeout, Reason: "invalid direct fetch settings", Err: err}
		}
		return fetcher.NewDirectScraper(cfg), nil
	}
	return scrapeapi.NewClient(scrapeapi.Config{
		BaseURL:           s.ScrapeAPIURL,
		APIKey:            s.ScrapeAPIKey,
		Timeout:           s.RequestTimeout,
		RequestsPerMinute: s.ScrapeRateLimit,
		MaxAttempts:       s.MaxAttempts,
	}), nil
}

// newSummarizer builds the summarizer for LLM_PROVIDER.
func newSummarizer(s *config.Settings) (digest.Summarizer, error) {
	sum, err := summarizer.New(summarizer.Config{
		Provider:    s.LLMProvider,
		APIKey:      s.LLMAPIKey,
		Model:       s.LLMModel,
		BaseURL:     s.LLMBaseURL,
		Timeout:     s.RequestTimeout,
		MaxAttempts: s.MaxAttempts,
	})
	if err != nil {
		return nil, err
	}
	return sum, nil
}
