// Package tracing provides OpenTelemetry tracing helpers for the digest pipeline.
//
// Spans are created against the globally registered TracerProvider. Without a
// provider installed they are no-ops; tests install an in-memory exporter.
//
// Example usage:
//
//	ctx, span := tracing.StartSpan(ctx, "digest.summarize",
//	    attribute.String("article.url", link))
//	defer span.End()
//	if err != nil {
//	    tracing.RecordError(span, err)
//	}
package tracing
