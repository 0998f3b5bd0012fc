package metrics

import (
	"time"
)

// RecordUpstreamCall records one fact-check API call.
// Operation is verify, compose_news, compose_tweet or review.
func RecordUpstreamCall(operation, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(operation, outcome).Inc()
	UpstreamDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCoalesced records a verify request that joined an identical in-flight call.
func RecordCoalesced() {
	CoalescedRequestsTotal.Inc()
}

// RecordStaleResponse records a response dropped because a newer request of the
// same kind was issued for the session.
func RecordStaleResponse(kind string) {
	StaleResponsesTotal.WithLabelValues(kind).Inc()
}

// RecordInFlightRejection records a submission refused with ErrInFlight.
func RecordInFlightRejection(kind string) {
	InFlightRejectionsTotal.WithLabelValues(kind).Inc()
}

// UpdateSessionsActive sets the live session gauge.
// The memory store calls it after each sweep.
func UpdateSessionsActive(count int) {
	SessionsActive.Set(float64(count))
}

// RecordRateLimitRejection records a request rejected with 429.
func RecordRateLimitRejection() {
	RateLimitRejectionsTotal.Inc()
}

// SetCircuitState publishes a breaker state (0 closed, 1 half-open, 2 open).
func SetCircuitState(circuit string, state int) {
	CircuitState.WithLabelValues(circuit).Set(float64(state))
}

// RecordRetry records one retried attempt of operation.
func RecordRetry(operation string) {
	RetriesTotal.WithLabelValues(operation).Inc()
}

// RecordArticleFetchSuccess records a successful article fetch operation.
// This tracks both the duration and size of extracted content.
//
// Example:
//
//	start := time.Now()
//	content, err := fetcher.FetchContent(ctx, url)
//	if err == nil {
//	    RecordArticleFetchSuccess(time.Since(start), len(content))
//	}
func RecordArticleFetchSuccess(duration time.Duration, size int) {
	ArticleFetchAttemptsTotal.WithLabelValues("success").Inc()
	ArticleFetchDuration.Observe(duration.Seconds())
	ArticleFetchSize.Observe(float64(size))
}

// RecordArticleFetchFailed records a failed article fetch operation.
func RecordArticleFetchFailed(duration time.Duration) {
	ArticleFetchAttemptsTotal.WithLabelValues("failure").Inc()
	ArticleFetchDuration.Observe(duration.Seconds())
}
