package csp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSPBuilder_EmptyBuild(t *testing.T) {
	assert.Equal(t, "", NewCSPBuilder().Build())
}

func TestCSPBuilder_DirectiveOrder(t *testing.T) {
	// Set in reverse order; output order must still be canonical.
	got := NewCSPBuilder().
		ObjectSrc("'none'").
		ImgSrc("'self'", "https://icons.duckduckgo.com").
		DefaultSrc("'self'").
		Build()

	assert.Equal(t, "default-src 'self'; img-src 'self' https://icons.duckduckgo.com; object-src 'none'", got)
}

func TestCSPBuilder_EmptySourcesOmitted(t *testing.T) {
	got := NewCSPBuilder().DefaultSrc("'self'").ScriptSrc().Build()
	assert.Equal(t, "default-src 'self'", got)
}

func TestCSPBuilder_OverwriteDirective(t *testing.T) {
	got := NewCSPBuilder().DefaultSrc("'self'").DefaultSrc("'none'").Build()
	assert.Equal(t, "default-src 'none'", got)
}

func TestCSPBuilder_HeaderName(t *testing.T) {
	b := NewCSPBuilder()
	assert.Equal(t, "Content-Security-Policy", b.HeaderName())
	assert.Equal(t, "Content-Security-Policy-Report-Only", b.ReportOnly(true).HeaderName())
}

func TestCSPBuilder_CloneIsIndependent(t *testing.T) {
	orig := StrictPolicy()
	clone := orig.Clone().ReportOnly(true).ImgSrc("'self'")

	assert.Equal(t, "Content-Security-Policy", orig.HeaderName())
	assert.NotContains(t, orig.Build(), "img-src")
	assert.Contains(t, clone.Build(), "img-src 'self'")
}

func TestWebAppPolicy(t *testing.T) {
	policy := WebAppPolicy("https://icons.duckduckgo.com").Build()

	assert.Contains(t, policy, "img-src 'self' data: https://icons.duckduckgo.com")
	assert.Contains(t, policy, "script-src 'self'")
	assert.Contains(t, policy, "frame-ancestors 'none'")
	assert.Contains(t, policy, "form-action 'self'")
	assert.NotContains(t, policy, "unsafe-inline")
}

func TestWebAppPolicy_NoIconHost(t *testing.T) {
	policy := WebAppPolicy("").Build()
	assert.Contains(t, policy, "img-src 'self' data:;")
}

func TestSwaggerUIPolicy(t *testing.T) {
	policy := SwaggerUIPolicy().Build()
	assert.Contains(t, policy, "script-src 'self' 'unsafe-inline'")
	assert.Contains(t, policy, "object-src 'none'")
}

func TestStrictPolicy(t *testing.T) {
	policy := StrictPolicy().Build()
	assert.True(t, strings.HasPrefix(policy, "default-src 'none'"))
	assert.NotContains(t, policy, "script-src")
}

func BenchmarkWebAppPolicy_Build(b *testing.B) {
	p := WebAppPolicy("https://icons.duckduckgo.com")
	for i := 0; i < b.N; i++ {
		_ = p.Build()
	}
}
