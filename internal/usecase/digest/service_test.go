package digest_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"news-digest/internal/domain/entity"
	"news-digest/internal/infra/scrapeapi"
	"news-digest/internal/usecase/digest"
)

/* ───────── fakes ───────── */

type fakeScraper struct {
	links       []string
	headlineErr error
	bodies      map[string]string
	bodyErrs    map[string]error

	gotLimit     int
	fetchedBody  []string
	headlineHits int
}

func (f *fakeScraper) FetchTopHeadlines(_ context.Context, _ string, limit int) ([]string, error) {
	f.headlineHits++
	f.gotLimit = limit
	if f.headlineErr != nil {
		return nil, f.headlineErr
	}
	if limit <= 0 {
		return []string{}, nil
	}
	return entity.CleanLinks(f.links, limit), nil
}

func (f *fakeScraper) FetchArticleBody(_ context.Context, url string) (string, error) {
	f.fetchedBody = append(f.fetchedBody, url)
	if err := f.bodyErrs[url]; err != nil {
		return "", err
	}
	return f.bodies[url], nil
}

type summarizeCall struct {
	body      string
	maxTokens int
}

type fakeSummarizer struct {
	errOnCall map[int]error
	calls     []summarizeCall
}

func (f *fakeSummarizer) Summarize(_ context.Context, body string, maxTokens int) (string, error) {
	f.calls = append(f.calls, summarizeCall{body: body, maxTokens: maxTokens})
	if err := f.errOnCall[len(f.calls)]; err != nil {
		return "", err
	}
	return "- summary of " + body, nil
}

func threeArticleScraper() *fakeScraper {
	return &fakeScraper{
		links: []string{
			"https://news.example.com/a",
			"https://news.example.com/b",
			"https://news.example.com/c",
		},
		bodies: map[string]string{
			"https://news.example.com/a": "body a",
			"https://news.example.com/b": "body b",
			"https://news.example.com/c": "body c",
		},
	}
}

/* ───────── Run ───────── */

func TestRun_EndToEnd(t *testing.T) {
	scraper := threeArticleScraper()
	summarizer := &fakeSummarizer{}
	svc := digest.NewService(scraper, summarizer, 256)

	got, err := svc.Run(context.Background(), "https://news.example.com", 3)
	require.NoError(t, err)

	want := "### https://news.example.com/a\n\n- summary of body a\n\n" +
		"### https://news.example.com/b\n\n- summary of body b\n\n" +
		"### https://news.example.com/c\n\n- summary of body c"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("digest mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 3, scraper.gotLimit)
	assert.Equal(t, []summarizeCall{
		{body: "body a", maxTokens: 256},
		{body: "body b", maxTokens: 256},
		{body: "body c", maxTokens: 256},
	}, summarizer.calls)
}

func TestRun_EmptyBodyStillSummarized(t *testing.T) {
	scraper := &fakeScraper{
		links:  []string{"https://x.example/1"},
		bodies: map[string]string{},
	}
	summarizer := &fakeSummarizer{}
	svc := digest.NewService(scraper, summarizer, 0)

	got, err := svc.Run(context.Background(), "https://x.example", 5)
	require.NoError(t, err)
	assert.Equal(t, "### https://x.example/1\n\n- summary of ", got)
	require.Len(t, summarizer.calls, 1)
	assert.Equal(t, "", summarizer.calls[0].body)
}

func TestRun_NoHeadlines(t *testing.T) {
	for _, limit := range []int{0, -3} {
		t.Run(fmt.Sprintf("limit %d", limit), func(t *testing.T) {
			scraper := threeArticleScraper()
			summarizer := &fakeSummarizer{}
			svc := digest.NewService(scraper, summarizer, 0)

			got, err := svc.Run(context.Background(), "https://news.example.com", limit)
			require.NoError(t, err)
			assert.Equal(t, "", got)
			assert.Empty(t, scraper.fetchedBody)
			assert.Empty(t, summarizer.calls)
		})
	}
}

func TestRun_HeadlineFailurePropagatesUnchanged(t *testing.T) {
	remoteErr := &entity.RemoteServiceError{Service: "firecrawl", Operation: "headlines", StatusCode: 500}
	scraper := &fakeScraper{headlineErr: remoteErr}
	summarizer := &fakeSummarizer{}
	svc := digest.NewService(scraper, summarizer, 0)

	got, err := svc.Run(context.Background(), "https://news.example.com", 3)
	assert.Equal(t, "", got)
	assert.Same(t, remoteErr, err)
	assert.Empty(t, summarizer.calls)
}

func TestRun_SummarizeFailureAborts(t *testing.T) {
	scraper := threeArticleScraper()
	boom := errors.New("llm exploded")
	summarizer := &fakeSummarizer{errOnCall: map[int]error{2: boom}}
	svc := digest.NewService(scraper, summarizer, 0)

	got, err := svc.Run(context.Background(), "https://news.example.com", 3)
	assert.Equal(t, "", got)
	assert.Same(t, boom, err)

	// The third article is never touched.
	assert.Equal(t, []string{"https://news.example.com/a", "https://news.example.com/b"}, scraper.fetchedBody)
	assert.Len(t, summarizer.calls, 2)
}

func TestRun_BodyFailureAborts(t *testing.T) {
	scraper := threeArticleScraper()
	bodyErr := &entity.RemoteServiceError{Service: "firecrawl", Operation: "article", StatusCode: 404}
	scraper.bodyErrs = map[string]error{"https://news.example.com/a": bodyErr}
	summarizer := &fakeSummarizer{}
	svc := digest.NewService(scraper, summarizer, 0)

	_, err := svc.Run(context.Background(), "https://news.example.com", 3)
	assert.Same(t, bodyErr, err)
	assert.Empty(t, summarizer.calls)
}

func TestRun_QuotaTranslation(t *testing.T) {
	tests := []struct {
		name  string
		cause error
	}{
		{name: "quota", cause: errors.New("429: Resource has been exhausted (e.g. check quota).")},
		{name: "rate limit mixed case", cause: errors.New("Rate Limit exceeded for model")},
		{name: "wrapped remote error", cause: &entity.RemoteServiceError{
			Service: "gemini", Operation: "summarize", StatusCode: 429, Message: "QUOTA_EXCEEDED",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scraper := threeArticleScraper()
			summarizer := &fakeSummarizer{errOnCall: map[int]error{1: tt.cause}}
			svc := digest.NewService(scraper, summarizer, 0)

			got, err := svc.Run(context.Background(), "https://news.example.com", 3)
			assert.Equal(t, "", got)
			require.Error(t, err)

			var quotaErr *digest.QuotaExceededError
			require.True(t, errors.As(err, &quotaErr))
			assert.Same(t, tt.cause, quotaErr.Err)
			assert.ErrorIs(t, err, digest.ErrQuotaExceeded)
			assert.ErrorIs(t, err, tt.cause)
			assert.Contains(t, err.Error(), digest.QuotaGuidance)
		})
	}
}

func TestRun_QuotaOnHeadlines(t *testing.T) {
	scraper := &fakeScraper{headlineErr: &entity.RemoteServiceError{
		Service: "firecrawl", Operation: "headlines", StatusCode: 429, Message: "Rate limit exceeded",
	}}
	svc := digest.NewService(scraper, &fakeSummarizer{}, 0)

	_, err := svc.Run(context.Background(), "https://news.example.com", 3)
	assert.ErrorIs(t, err, digest.ErrQuotaExceeded)
	assert.ErrorIs(t, err, entity.ErrRemoteService)
}

func TestRun_ClientPacingTimeoutIsNotQuota(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"links": ["https://news.example.com/a", "https://news.example.com/b"]}}`))
	}))
	t.Cleanup(srv.Close)

	scraper := scrapeapi.NewClient(scrapeapi.Config{
		BaseURL:           srv.URL,
		APIKey:            "test-key",
		Timeout:           5 * time.Second,
		RequestsPerMinute: 1,
		MaxAttempts:       1,
	})
	summarizer := &fakeSummarizer{}
	svc := digest.NewService(scraper, summarizer, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	got, err := svc.Run(ctx, "https://news.example.com", 2)
	assert.Equal(t, "", got)
	require.Error(t, err)
	assert.False(t, errors.Is(err, digest.ErrQuotaExceeded), "pacing timeout reported as quota: %v", err)

	var quotaErr *digest.QuotaExceededError
	assert.False(t, errors.As(err, &quotaErr))
	assert.Empty(t, summarizer.calls)
}

func TestRun_RecordsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	scraper := threeArticleScraper()
	summarizer := &fakeSummarizer{errOnCall: map[int]error{2: errors.New("boom")}}
	svc := digest.NewService(scraper, summarizer, 0)

	_, err := svc.Run(context.Background(), "https://news.example.com", 3)
	require.Error(t, err)

	names := map[string]int{}
	var runSpan sdktrace.ReadOnlySpan
	for _, s := range exporter.GetSpans().Snapshots() {
		names[s.Name()]++
		if s.Name() == "digest.run" {
			runSpan = s
		}
	}
	assert.Equal(t, 1, names["digest.run"])
	assert.Equal(t, 1, names["digest.fetch_headlines"])
	assert.Equal(t, 2, names["digest.article"])
	require.NotNil(t, runSpan)
	assert.Equal(t, codes.Error, runSpan.Status().Code)
}
