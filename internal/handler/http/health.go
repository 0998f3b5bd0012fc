// Package http provides the cross-cutting HTTP layer of the web application:
// access logging, panic recovery, input limits, per-IP rate limiting,
// Prometheus request metrics and the health, readiness and liveness endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"factcheck-web/internal/handler/http/respond"

	"github.com/sony/gobreaker"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Pinger is implemented by dependencies that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CircuitReporter exposes a circuit breaker's name and state.
type CircuitReporter interface {
	Name() string
	State() gobreaker.State
}

// HealthHandler reports upstream circuit state, session store reachability,
// and the rate limiter and CSP configuration.
//
// An open upstream circuit degrades the service but does not make it
// unhealthy; an unreachable session store does.
type HealthHandler struct {
	Version string

	Sessions Pinger
	Circuits []CircuitReporter

	RateLimiter   *RateLimiter
	CSPEnabled    bool
	CSPReportOnly bool
}

// ServeHTTP performs health checks and returns the application health status.
// Returns 200 OK when healthy or degraded, 503 Service Unavailable otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	healthy, degraded := true, false

	if h.Sessions != nil {
		check := checkPinger(ctx, h.Sessions)
		checks["session_store"] = check
		if check.Status != "healthy" {
			healthy = false
		}
	} else {
		checks["session_store"] = CheckStatus{Status: "unhealthy", Message: "not configured"}
		healthy = false
	}

	for _, c := range h.Circuits {
		check := checkCircuit(c)
		checks["circuit_"+c.Name()] = check
		if check.Status != "healthy" {
			degraded = true
		}
	}

	if h.RateLimiter != nil {
		checks["rate_limiter"] = CheckStatus{
			Status:  "healthy",
			Details: map[string]any{"active_keys": h.RateLimiter.ActiveClients()},
		}
	}

	if h.CSPEnabled {
		checks["csp"] = CheckStatus{
			Status:  "healthy",
			Details: map[string]any{"report_only": h.CSPReportOnly},
		}
	}

	status, code := "healthy", http.StatusOK
	switch {
	case !healthy:
		status, code = "unhealthy", http.StatusServiceUnavailable
	case degraded:
		status = "degraded"
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func checkPinger(ctx context.Context, p Pinger) CheckStatus {
	start := time.Now()
	if err := p.Ping(ctx); err != nil {
		return CheckStatus{Status: "unhealthy", Message: respond.SanitizeError(err)}
	}
	return CheckStatus{
		Status:  "healthy",
		Details: map[string]any{"latency_ms": time.Since(start).Milliseconds()},
	}
}

func checkCircuit(c CircuitReporter) CheckStatus {
	state := c.State()
	check := CheckStatus{Details: map[string]any{"state": state.String()}}
	switch state {
	case gobreaker.StateClosed:
		check.Status = "healthy"
	case gobreaker.StateHalfOpen:
		check.Status = "degraded"
		check.Message = "probing upstream after failures"
	default:
		check.Status = "degraded"
		check.Message = "circuit open, requests fail fast"
	}
	return check
}

// ReadyHandler handles readiness probe requests.
// The service is ready once its session store answers.
type ReadyHandler struct {
	Sessions Pinger
}

// ServeHTTP returns 200 OK if ready, or 503 Service Unavailable otherwise.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Sessions == nil {
		respond.Text(w, http.StatusServiceUnavailable, "session store not configured")
		return
	}

	if err := h.Sessions.Ping(ctx); err != nil {
		slog.Warn("readiness check failed", slog.String("error", respond.SanitizeError(err)))
		respond.Text(w, http.StatusServiceUnavailable, "session store not ready")
		return
	}

	respond.Text(w, http.StatusOK, "ready")
}

// LiveHandler handles liveness probe requests.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK while the process can respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.Text(w, http.StatusOK, "alive")
}
