// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds.
	// Verification pages wait on the upstream, so buckets reach two minutes.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks the current number of HTTP requests being processed.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// RateLimitRejectionsTotal counts requests rejected by the IP rate limiter
	RateLimitRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// Fact-check metrics track calls to the remote fact-check API and session bookkeeping
var (
	// UpstreamRequestsTotal counts fact-check API calls by operation and outcome.
	// outcome: success, http_error, transport_error, invalid_response, canceled, circuit_open
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "factcheck_upstream_requests_total",
			Help: "Total number of fact-check API calls",
		},
		[]string{"operation", "outcome"},
	)

	// UpstreamDuration measures fact-check API call latency
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "factcheck_upstream_duration_seconds",
			Help:    "Fact-check API call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"operation"},
	)

	// CoalescedRequestsTotal counts verify calls that shared an in-flight upstream call
	CoalescedRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "factcheck_coalesced_requests_total",
			Help: "Total number of verify requests served by an identical in-flight call",
		},
	)

	// StaleResponsesTotal counts responses discarded because a newer request superseded them
	StaleResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "factcheck_stale_responses_total",
			Help: "Total number of superseded responses that were discarded",
		},
		[]string{"kind"},
	)

	// InFlightRejectionsTotal counts submissions refused because the same action was running
	InFlightRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "factcheck_inflight_rejections_total",
			Help: "Total number of submissions rejected while the same action was in flight",
		},
		[]string{"kind"},
	)

	// SessionsActive tracks live sessions held by the session store
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "factcheck_sessions_active",
			Help: "Number of live sessions in the session store",
		},
	)
)

// CircuitState reports each circuit breaker's state: 0 closed, 1 half-open, 2 open
var CircuitState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
	},
	[]string{"circuit"},
)

// RetriesTotal counts repeated attempts of idempotent calls by operation
var RetriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "retry_attempts_total",
		Help: "Total number of retried attempts after a transient failure",
	},
	[]string{"operation"},
)

// Article fetch metrics track readability extraction for the review flow
var (
	// ArticleFetchAttemptsTotal counts article fetch attempts by result
	ArticleFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_fetch_attempts_total",
			Help: "Total number of article fetch attempts",
		},
		[]string{"result"}, // result: success, failure
	)

	// ArticleFetchDuration measures time to fetch article content
	ArticleFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "article_fetch_duration_seconds",
			Help:    "Time taken to fetch article content",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)

	// ArticleFetchSize measures extracted content size in bytes
	ArticleFetchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "article_fetch_size_bytes",
			Help:    "Extracted article content size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 2, 17), // up to ~6.5MB
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}
