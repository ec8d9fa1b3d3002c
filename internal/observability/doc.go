// Package observability groups the logging, metrics and tracing helpers used
// by the digest pipeline.
//
// Subpackages:
//   - logging: slog handlers, run IDs and context propagation
//   - metrics: a dedicated Prometheus registry and textfile export
//   - tracing: OpenTelemetry tracer access
package observability
