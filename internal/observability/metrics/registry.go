package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every metric recorded by the digest pipeline.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// Pipeline metrics track digest runs end to end
var (
	// RunsTotal counts digest runs by status
	RunsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_runs_total",
			Help: "Total number of digest runs",
		},
		[]string{"status"}, // status: success, failure
	)

	// RunDuration measures the wall time of a digest run
	RunDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "digest_run_duration_seconds",
			Help:    "Time taken to generate a digest",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	// LastSuccessTimestamp records when the last digest was produced
	LastSuccessTimestamp = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "digest_last_success_timestamp_seconds",
			Help: "Unix time of the last successful digest run",
		},
	)

	// HeadlinesFetchedTotal counts headline links kept after cleaning
	HeadlinesFetchedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "digest_headlines_fetched_total",
			Help: "Total number of headline links fetched from source pages",
		},
	)

	// ArticlesSummarizedTotal counts articles summarized by status
	ArticlesSummarizedTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_articles_summarized_total",
			Help: "Total number of articles summarized",
		},
		[]string{"status"},
	)
)

// Remote call metrics track the scrape and LLM APIs
var (
	// RemoteRequestsTotal counts remote calls by service, operation and result
	RemoteRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_remote_requests_total",
			Help: "Total number of remote API requests",
		},
		[]string{"service", "operation", "result"},
	)

	// RemoteRequestDuration measures remote call latency
	RemoteRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "digest_remote_request_duration_seconds",
			Help:    "Remote API request duration in seconds",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8, 25.6, 51.2},
		},
		[]string{"service", "operation"},
	)

	// ArticleBodySize measures fetched article body size in bytes
	ArticleBodySize = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name: "digest_article_body_size_bytes",
			Help: "Fetched article body size in bytes",
			Buckets: []float64{
				100, 400, 1600, 6400, 25600, 102400, 409600, 1638400,
			},
		},
	)

	// SummaryLength measures summary length in characters
	SummaryLength = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "digest_summary_length_characters",
			Help:    "Length of generated summaries in characters",
			Buckets: []float64{50, 100, 200, 400, 800, 1600},
		},
		[]string{"provider"},
	)
)
