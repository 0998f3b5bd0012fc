// Package middleware holds HTTP middlewares that need their own configuration
// types, as opposed to the simple wrappers in the parent http package.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"factcheck-web/pkg/security/csp"
)

// CSPMiddlewareConfig holds configuration for CSP middleware.
// It supports path-based policy selection and report-only mode for testing.
type CSPMiddlewareConfig struct {
	// Enabled controls whether CSP headers are applied.
	Enabled bool

	// DefaultPolicy is used when no path-specific policy matches.
	DefaultPolicy *csp.CSPBuilder

	// PathPolicies maps path prefixes to specific CSP policies.
	// The longest matching prefix wins.
	PathPolicies map[string]*csp.CSPBuilder

	// ReportOnly sends Content-Security-Policy-Report-Only instead of enforcing.
	ReportOnly bool
}

// compiledPolicy is a policy rendered once at construction time.
type compiledPolicy struct {
	prefix string
	header string
	value  string
}

// CSPMiddleware applies Content-Security-Policy headers to HTTP responses.
type CSPMiddleware struct {
	enabled  bool
	fallback *compiledPolicy
	byPath   []compiledPolicy // sorted by descending prefix length
}

// NewCSPMiddleware creates a new CSP middleware with the provided configuration.
// Policies are rendered up front so requests never touch the builders.
//
// Example:
//
//	cspMiddleware := NewCSPMiddleware(CSPMiddlewareConfig{
//	    Enabled:       true,
//	    DefaultPolicy: csp.WebAppPolicy("https://icons.duckduckgo.com"),
//	    PathPolicies: map[string]*csp.CSPBuilder{
//	        "/swagger/": csp.SwaggerUIPolicy(),
//	        "/api/":     csp.StrictPolicy(),
//	    },
//	})
//	handler = cspMiddleware.Middleware()(handler)
func NewCSPMiddleware(config CSPMiddlewareConfig) *CSPMiddleware {
	m := &CSPMiddleware{enabled: config.Enabled}

	compile := func(prefix string, b *csp.CSPBuilder) *compiledPolicy {
		if b == nil {
			return nil
		}
		b = b.Clone().ReportOnly(config.ReportOnly)
		value := b.Build()
		if value == "" {
			return nil
		}
		return &compiledPolicy{prefix: prefix, header: b.HeaderName(), value: value}
	}

	m.fallback = compile("", config.DefaultPolicy)
	for prefix, b := range config.PathPolicies {
		if p := compile(prefix, b); p != nil {
			m.byPath = append(m.byPath, *p)
		}
	}
	// insertion sort by prefix length, longest first
	for i := 1; i < len(m.byPath); i++ {
		for j := i; j > 0 && len(m.byPath[j].prefix) > len(m.byPath[j-1].prefix); j-- {
			m.byPath[j], m.byPath[j-1] = m.byPath[j-1], m.byPath[j]
		}
	}
	return m
}

// Middleware returns an HTTP middleware handler that applies CSP headers.
func (m *CSPMiddleware) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.enabled {
				if p := m.selectPolicy(r.URL.Path); p != nil {
					w.Header().Set(p.header, p.value)
					slog.Debug("CSP header applied",
						slog.String("path", r.URL.Path),
						slog.String("header", p.header))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *CSPMiddleware) selectPolicy(path string) *compiledPolicy {
	for i := range m.byPath {
		if strings.HasPrefix(path, m.byPath[i].prefix) {
			return &m.byPath[i]
		}
	}
	return m.fallback
}
