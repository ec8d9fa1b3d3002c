package summarizer

import (
	"time"

	"news-digest/internal/observability/metrics"
)

// SummaryMetricsRecorder records summary-related metrics.
// Tests inject a recorder to observe calls without touching Prometheus.
type SummaryMetricsRecorder interface {
	// RecordLength records the length of a generated summary in characters.
	RecordLength(length int)

	// RecordRequest records one API call and its outcome.
	RecordRequest(duration time.Duration, err error)
}

// PrometheusSummaryMetrics implements SummaryMetricsRecorder on the
// observability metrics registry, labelled by provider.
type PrometheusSummaryMetrics struct {
	provider string
}

// NewPrometheusSummaryMetrics creates a recorder for provider.
func NewPrometheusSummaryMetrics(provider string) *PrometheusSummaryMetrics {
	return &PrometheusSummaryMetrics{provider: provider}
}

// RecordLength implements SummaryMetricsRecorder.RecordLength
func (p *PrometheusSummaryMetrics) RecordLength(length int) {
	metrics.RecordSummaryLength(p.provider, length)
}

// RecordRequest implements SummaryMetricsRecorder.RecordRequest
func (p *PrometheusSummaryMetrics) RecordRequest(duration time.Duration, err error) {
	metrics.RecordRemoteRequest(p.provider, "summarize", duration, err)
}
