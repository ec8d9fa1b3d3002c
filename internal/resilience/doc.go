// Package resilience provides fault tolerance patterns for calls to the remote
// scraping and summarization services.
//
// The package supports:
//   - Circuit breakers for external API calls (scrape API, LLM providers, direct fetches)
//   - Opt-in retry with exponential backoff and jitter
//
// Both are applied the same way by every client:
//
//	err := retry.WithBackoff(ctx, retry.Attempts(cfg.MaxAttempts), func() error {
//	    res, err := cb.Execute(func() (interface{}, error) {
//	        return doCall(ctx)
//	    })
//	    ...
//	})
//
// With the default of one attempt, WithBackoff runs the call exactly once and
// returns its error unchanged, so failures surface to the caller as-is.
package resilience
