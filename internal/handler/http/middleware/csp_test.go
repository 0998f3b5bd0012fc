package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"factcheck-web/pkg/security/csp"

	"github.com/stretchr/testify/assert"
)

func serveCSP(m *CSPMiddleware, path string) *httptest.ResponseRecorder {
	handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func appConfig() CSPMiddlewareConfig {
	return CSPMiddlewareConfig{
		Enabled:       true,
		DefaultPolicy: csp.WebAppPolicy("https://icons.duckduckgo.com"),
		PathPolicies: map[string]*csp.CSPBuilder{
			"/swagger/": csp.SwaggerUIPolicy(),
			"/api/":     csp.StrictPolicy(),
			"/api/v1/":  csp.NewCSPBuilder().DefaultSrc("'none'"),
		},
	}
}

func TestCSPMiddleware_Disabled(t *testing.T) {
	cfg := appConfig()
	cfg.Enabled = false

	rec := serveCSP(NewCSPMiddleware(cfg), "/")

	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCSPMiddleware_PathBasedPolicySelection(t *testing.T) {
	m := NewCSPMiddleware(appConfig())

	tests := []struct {
		path string
		want string
	}{
		{path: "/", want: csp.WebAppPolicy("https://icons.duckduckgo.com").Build()},
		{path: "/check", want: csp.WebAppPolicy("https://icons.duckduckgo.com").Build()},
		{path: "/swagger/index.html", want: csp.SwaggerUIPolicy().Build()},
		{path: "/api/review", want: csp.StrictPolicy().Build()},
		{path: "/api/v1/fact-check", want: "default-src 'none'"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serveCSP(m, tt.path)
			assert.Equal(t, tt.want, rec.Header().Get("Content-Security-Policy"))
		})
	}
}

func TestCSPMiddleware_ReportOnlyDoesNotMutateBuilders(t *testing.T) {
	shared := csp.StrictPolicy()
	m := NewCSPMiddleware(CSPMiddlewareConfig{
		Enabled:       true,
		DefaultPolicy: shared,
		ReportOnly:    true,
	})

	rec := serveCSP(m, "/health")

	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
	assert.Equal(t, shared.Build(), rec.Header().Get("Content-Security-Policy-Report-Only"))
	assert.Equal(t, "Content-Security-Policy", shared.HeaderName(), "configured builder must stay enforcing")
}

func TestCSPMiddleware_EmptyPolicySkipped(t *testing.T) {
	m := NewCSPMiddleware(CSPMiddlewareConfig{
		Enabled:       true,
		DefaultPolicy: csp.NewCSPBuilder(),
	})

	rec := serveCSP(m, "/")
	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestCSPMiddleware_NilDefault(t *testing.T) {
	m := NewCSPMiddleware(CSPMiddlewareConfig{Enabled: true})
	rec := serveCSP(m, "/anything")
	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestCSPMiddleware_ConcurrentRequests(t *testing.T) {
	m := NewCSPMiddleware(appConfig())
	want := csp.SwaggerUIPolicy().Build()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := serveCSP(m, "/swagger/doc.json")
			assert.Equal(t, want, rec.Header().Get("Content-Security-Policy"))
		}()
	}
	wg.Wait()
}
