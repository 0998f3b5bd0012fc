// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size, rate limiting)
//   - Fact-check API metrics (calls per operation and outcome, latency)
//   - Session metrics (live sessions, stale responses, in-flight rejections)
//   - Article fetch metrics for the review flow
//   - Resilience metrics (retry attempts, circuit breaker state)
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "factcheck-web/internal/observability/metrics"
//
//	func verify(ctx context.Context) {
//	    start := time.Now()
//	    // ... call the fact-check API ...
//	    metrics.RecordUpstreamCall("verify", "success", time.Since(start))
//	}
package metrics
