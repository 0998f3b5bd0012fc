// Package retry re-runs idempotent operations after transient failures,
// waiting with exponential backoff and jitter between attempts.
//
// Only article page fetches and session store reads use it. Calls to the
// fact-check API are POSTs with side effects upstream and are never retried.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"syscall"
	"time"

	"factcheck-web/internal/observability/metrics"
)

// ErrExhausted wraps the last error once every attempt has failed.
var ErrExhausted = errors.New("retry attempts exhausted")

// Config describes one retry policy.
type Config struct {
	// Op labels log lines and the retry metric.
	Op string

	// MaxAttempts counts the first call. Values below 1 mean a single call.
	MaxAttempts int

	InitialDelay time.Duration
	MaxDelay     time.Duration

	// Multiplier grows the delay after each failed attempt.
	Multiplier float64

	// JitterFraction adds up to this fraction of the delay at random (0 to 1).
	JitterFraction float64

	// Retryable classifies errors. Nil uses IsRetryable.
	Retryable func(error) bool
}

// ArticleFetchConfig retries page fetches: a few attempts, seconds apart.
func ArticleFetchConfig() Config {
	return Config{
		Op:             "article_fetch",
		MaxAttempts:    3,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       4 * time.Second,
		Multiplier:     2,
		JitterFraction: 0.2,
	}
}

// SessionStoreConfig retries session reads quickly; a page render is waiting.
func SessionStoreConfig() Config {
	return Config{
		Op:             "session_store",
		MaxAttempts:    3,
		InitialDelay:   25 * time.Millisecond,
		MaxDelay:       200 * time.Millisecond,
		Multiplier:     2,
		JitterFraction: 0.2,
	}
}

// Backoff returns the wait before attempt n+1 without jitter, for n >= 1.
func (c Config) Backoff(n int) time.Duration {
	d := float64(c.InitialDelay)
	mult := c.Multiplier
	if mult < 1 {
		mult = 1
	}
	for i := 1; i < n; i++ {
		d *= mult
		if c.MaxDelay > 0 && d >= float64(c.MaxDelay) {
			return c.MaxDelay
		}
	}
	return time.Duration(d)
}

// WithBackoff calls fn until it succeeds, fails with a non-retryable error,
// runs out of attempts or ctx ends.
//
// A non-retryable error is returned as is. Running out of attempts returns
// ErrExhausted wrapping the last error; both stay visible to errors.Is/As.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	retryable := cfg.Retryable
	if retryable == nil {
		retryable = IsRetryable
	}
	attempts := max(cfg.MaxAttempts, 1)

	var err error
	for n := 1; ; n++ {
		if err = fn(); err == nil {
			if n > 1 {
				slog.InfoContext(ctx, "retry succeeded",
					slog.String("op", cfg.Op),
					slog.Int("attempt", n))
			}
			return nil
		}
		if !retryable(err) {
			return err
		}
		if n == attempts {
			break
		}

		wait := jitter(cfg.Backoff(n), cfg.JitterFraction)
		slog.WarnContext(ctx, "transient failure, retrying",
			slog.String("op", cfg.Op),
			slog.Int("attempt", n),
			slog.Int("max_attempts", attempts),
			slog.Duration("wait", wait),
			slog.Any("error", err))

		if werr := sleep(ctx, wait); werr != nil {
			return fmt.Errorf("retry %s: %w", cfg.Op, werr)
		}
		metrics.RecordRetry(cfg.Op)
	}
	return fmt.Errorf("%w (%s, %d attempts): %w", ErrExhausted, cfg.Op, attempts, err)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// retryableStatus lists HTTP statuses worth another attempt.
var retryableStatus = map[int]bool{
	http.StatusRequestTimeout:      true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// IsRetryable reports whether err looks transient: network timeouts,
// refused or reset connections, and HTTPError with 408, 429 or 5xx gateway
// statuses. Context errors never are.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ETIMEDOUT),
		errors.Is(err, syscall.ENETUNREACH):
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return retryableStatus[httpErr.StatusCode]
	}
	return false
}

// HTTPError is a non-2xx response from an idempotent request.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func jitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 || d <= 0 {
		return d
	}
	fraction = min(fraction, 1)
	// #nosec G404 -- backoff jitter needs no cryptographic randomness
	return d + time.Duration(rand.Float64()*fraction*float64(d))
}
