// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Key features:
//   - JSON and text output formats (LOG_FORMAT=json|text)
//   - Configurable log levels (LOG_LEVEL=debug|info|warn|error)
//   - Per-run IDs attached to every record of a digest run
//   - Context-aware logging
//
// Example usage:
//
//	logger := logging.NewLogger(os.Stderr)
//	ctx, runID := logging.StartRun(context.Background(), logger)
//	logging.FromContext(ctx).Info("generating digest", slog.String("run_id", runID))
package logging
