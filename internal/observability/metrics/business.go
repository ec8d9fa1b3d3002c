package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecordRun records the outcome and duration of a digest run.
func RecordRun(success bool, duration time.Duration) {
	RunsTotal.WithLabelValues(statusLabel(success)).Inc()
	RunDuration.Observe(duration.Seconds())
	if success {
		LastSuccessTimestamp.SetToCurrentTime()
	}
}

// RecordHeadlinesFetched records the number of headline links kept for a run.
func RecordHeadlinesFetched(count int) {
	HeadlinesFetchedTotal.Add(float64(count))
}

// RecordArticleSummarized records the result of an article summarization operation.
// Status should be either "success" or "failure".
func RecordArticleSummarized(success bool) {
	ArticlesSummarizedTotal.WithLabelValues(statusLabel(success)).Inc()
}

// RecordRemoteRequest records a call to a remote API.
// Service is "scrape" or an LLM provider name; operation names the call.
func RecordRemoteRequest(service, operation string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	RemoteRequestsTotal.WithLabelValues(service, operation, result).Inc()
	RemoteRequestDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordArticleBodySize records the size of a fetched article body.
func RecordArticleBodySize(bytes int) {
	ArticleBodySize.Observe(float64(bytes))
}

// RecordSummaryLength records the length of a generated summary.
func RecordSummaryLength(provider string, length int) {
	SummaryLength.WithLabelValues(provider).Observe(float64(length))
}

// WriteTextfile writes the current registry contents to path in the
// Prometheus text exposition format, for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
