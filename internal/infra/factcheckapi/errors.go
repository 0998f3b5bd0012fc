package factcheckapi

import (
	"errors"
	"fmt"
	"net/http"

	"factcheck-web/internal/resilience/circuitbreaker"
)

var (
	// ErrEmptyResponse is returned when the API answers 2xx with an empty body.
	ErrEmptyResponse = errors.New("server returned empty response")

	// ErrInvalidResponse is returned when the body is not valid JSON.
	ErrInvalidResponse = errors.New("invalid JSON response from server")

	// ErrTransport wraps network failures: DNS, connection, timeouts.
	ErrTransport = errors.New("fact-check api unreachable")

	// ErrUnavailable is returned while the circuit breaker rejects calls.
	ErrUnavailable = errors.New("fact-check api unavailable: circuit breaker open")
)

// HTTPError is a non-2xx answer from the API.
type HTTPError struct {
	StatusCode int
	Status     string
}

// Error formats as "HTTP <code>: <status text>".
func (e *HTTPError) Error() string {
	text := e.Status
	if text == "" {
		text = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, text)
}

// APIError is a well-formed answer that reports failure, either with ok=false
// or without the field the operation expects. Message is the API's own error
// text and may be empty.
type APIError struct {
	Op      string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return e.Op + ": request failed"
	}
	return e.Message
}

// UserMessage returns the API's error text, or fallback when it sent none.
func (e *APIError) UserMessage(fallback string) string {
	if e.Message == "" {
		return fallback
	}
	return e.Message
}

// isBreakerSuccess keeps answers that prove the API is up from tripping the
// breaker: logical failures and client errors are the caller's problem.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode < 500 && httpErr.StatusCode != http.StatusTooManyRequests
	}
	return circuitbreaker.IgnoreCancellation(err)
}
