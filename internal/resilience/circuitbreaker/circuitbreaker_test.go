package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factcheck-web/internal/observability/metrics"
)

var errUpstream = errors.New("upstream failed")

func fail() error { return errUpstream }

// trip drives cb open by failing n times.
func trip(t *testing.T, cb *CircuitBreaker, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_ = cb.Do(fail)
	}
	require.Equal(t, gobreaker.StateOpen, cb.State())
}

func TestPresets(t *testing.T) {
	tests := []struct {
		cfg         Config
		name        string
		maxRequests uint32
		timeout     time.Duration
		threshold   float64
		minRequests uint32
		consecutive uint32
	}{
		{FactCheckAPIConfig(), "factcheck-api", 2, 30 * time.Second, 0.6, 5, 0},
		{ArticleFetchConfig(), "article-fetch", 3, 120 * time.Second, 0.8, 10, 0},
		{SessionStoreConfig(), "session-store", 3, 30 * time.Second, 0, 0, 5},
		{DefaultConfig("x"), "x", 3, 60 * time.Second, 0.6, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.cfg.Name)
			assert.Equal(t, tt.maxRequests, tt.cfg.MaxRequests)
			assert.Equal(t, tt.timeout, tt.cfg.Timeout)
			assert.InDelta(t, tt.threshold, tt.cfg.FailureThreshold, 1e-9)
			assert.Equal(t, tt.minRequests, tt.cfg.MinRequests)
			assert.Equal(t, tt.consecutive, tt.cfg.ConsecutiveFailures)
		})
	}
}

func TestNew_StartsClosed(t *testing.T) {
	cb := New(DefaultConfig("cb-new"))

	assert.Equal(t, "cb-new", cb.Name())
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.False(t, cb.IsOpen())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.CircuitState.WithLabelValues("cb-new")))
}

func TestExecute_PassesThroughResult(t *testing.T) {
	cb := New(DefaultConfig("cb-exec"))

	got, err := cb.Execute(func() (interface{}, error) { return "verdict", nil })
	require.NoError(t, err)
	assert.Equal(t, "verdict", got)

	_, err = cb.Execute(func() (interface{}, error) { return nil, errUpstream })
	assert.ErrorIs(t, err, errUpstream)
}

func TestRatioTrip(t *testing.T) {
	cfg := DefaultConfig("cb-ratio")
	cfg.MinRequests = 4
	cfg.FailureThreshold = 0.5
	cb := New(cfg)

	// 1 failure of 3 requests is below MinRequests.
	require.NoError(t, cb.Do(func() error { return nil }))
	require.NoError(t, cb.Do(func() error { return nil }))
	_ = cb.Do(fail)
	assert.Equal(t, gobreaker.StateClosed, cb.State())

	// 2 of 4 reaches the threshold.
	_ = cb.Do(fail)
	assert.Equal(t, gobreaker.StateOpen, cb.State())
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.CircuitState.WithLabelValues("cb-ratio")))

	called := false
	err := cb.Do(func() error { called = true; return nil })
	assert.False(t, called, "open circuit must not call through")
	assert.ErrorIs(t, err, ErrOpen)
	assert.True(t, IsOpenError(err))
}

func TestConsecutiveTrip(t *testing.T) {
	cfg := SessionStoreConfig()
	cfg.Name = "cb-consecutive"
	cb := New(cfg)

	for i := 0; i < 4; i++ {
		_ = cb.Do(fail)
	}
	// A success resets the run.
	require.NoError(t, cb.Do(func() error { return nil }))
	for i := 0; i < 4; i++ {
		_ = cb.Do(fail)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())

	_ = cb.Do(fail)
	assert.True(t, cb.IsOpen())
}

func TestHalfOpenRecovery(t *testing.T) {
	cfg := DefaultConfig("cb-half-open")
	cfg.MinRequests = 1
	cfg.FailureThreshold = 1
	cfg.MaxRequests = 1
	cfg.Timeout = 20 * time.Millisecond
	cb := New(cfg)

	trip(t, cb, 1)

	require.Eventually(t, func() bool {
		return cb.State() == gobreaker.StateHalfOpen
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, cb.Do(func() error { return nil }))
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.CircuitState.WithLabelValues("cb-half-open")))
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cfg := DefaultConfig("cb-reopen")
	cfg.MinRequests = 1
	cfg.FailureThreshold = 1
	cfg.Timeout = 20 * time.Millisecond
	cb := New(cfg)

	trip(t, cb, 1)
	require.Eventually(t, func() bool {
		return cb.State() == gobreaker.StateHalfOpen
	}, time.Second, 5*time.Millisecond)

	_ = cb.Do(fail)
	assert.Equal(t, gobreaker.StateOpen, cb.State())
}

func TestCancellationDoesNotTrip(t *testing.T) {
	cfg := DefaultConfig("cb-cancel")
	cfg.MinRequests = 1
	cfg.FailureThreshold = 0.1
	cb := New(cfg)

	for i := 0; i < 10; i++ {
		err := cb.Do(func() error {
			return fmt.Errorf("verify: %w", context.Canceled)
		})
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCustomIsSuccessful(t *testing.T) {
	errNotFound := errors.New("not found")

	cfg := DefaultConfig("cb-custom")
	cfg.MinRequests = 1
	cfg.FailureThreshold = 0.1
	cfg.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, errNotFound)
	}
	cb := New(cfg)

	for i := 0; i < 5; i++ {
		_ = cb.Do(func() error { return errNotFound })
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())

	_ = cb.Do(fail)
	assert.Equal(t, gobreaker.StateOpen, cb.State())
}

func TestIgnoreCancellation(t *testing.T) {
	assert.True(t, IgnoreCancellation(nil))
	assert.True(t, IgnoreCancellation(context.Canceled))
	assert.True(t, IgnoreCancellation(fmt.Errorf("wrapped: %w", context.Canceled)))
	assert.False(t, IgnoreCancellation(context.DeadlineExceeded))
	assert.False(t, IgnoreCancellation(errUpstream))
}

func TestIsOpenError(t *testing.T) {
	assert.True(t, IsOpenError(gobreaker.ErrOpenState))
	assert.True(t, IsOpenError(gobreaker.ErrTooManyRequests))
	assert.True(t, IsOpenError(fmt.Errorf("fetch: %w", gobreaker.ErrOpenState)))
	assert.False(t, IsOpenError(errUpstream))
	assert.False(t, IsOpenError(nil))
}

func TestReadyToTrip_ZeroThresholdNeverTripsOnRatio(t *testing.T) {
	rule := readyToTrip(Config{MinRequests: 1})
	assert.False(t, rule(gobreaker.Counts{Requests: 100, TotalFailures: 100}))

	rule = readyToTrip(Config{ConsecutiveFailures: 3})
	assert.True(t, rule(gobreaker.Counts{Requests: 3, TotalFailures: 3, ConsecutiveFailures: 3}))
}
