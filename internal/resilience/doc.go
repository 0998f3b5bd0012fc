// Package resilience groups the fault tolerance helpers used around remote
// calls: circuit breakers for the fact-check API, article fetching and the
// Redis session store, and retry with exponential backoff and jitter for the
// idempotent ones.
//
// Upstream POSTs to the fact-check API are never retried; a second identical
// submission is a new user action.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.ArticleFetchConfig())
//	err := retry.WithBackoff(ctx, retry.ArticleFetchConfig(), func() error {
//	    return cb.Do(func() error { return fetch(ctx) })
//	})
package resilience
