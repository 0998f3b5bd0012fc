package fetcher

import (
	"fmt"
	"time"

	"factcheck-web/internal/resilience/retry"
)

// ContentFetchConfig controls article fetching for the review flow.
type ContentFetchConfig struct {
	// Enabled turns URL submission on. When false FetchContent returns ErrDisabled.
	Enabled bool

	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration

	// MaxBodySize is enforced while reading, not from Content-Length.
	MaxBodySize int64

	// MaxRedirects is the longest redirect chain followed. Each hop is
	// re-validated.
	MaxRedirects int

	// DenyPrivateIPs rejects URLs that resolve to private, loopback or
	// link-local addresses, both before the request and at dial time.
	// Only tests against httptest servers turn it off.
	DenyPrivateIPs bool

	UserAgent string

	Retry retry.Config
}

// DefaultConfig returns production defaults.
func DefaultConfig() ContentFetchConfig {
	return ContentFetchConfig{
		Enabled:        true,
		Timeout:        10 * time.Second,
		MaxBodySize:    10 * 1024 * 1024, // 10MB
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      "FactCheckWebBot/1.0",
		Retry:          retry.ArticleFetchConfig(),
	}
}

// Validate checks if the configuration values are valid and safe.
//
// Validation rules:
//   - Timeout: > 0
//   - MaxBodySize: 1KB-100MB
//   - MaxRedirects: 0-10
func (c *ContentFetchConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	minBodySize := int64(1024)              // 1KB
	maxBodySize := int64(100 * 1024 * 1024) // 100MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	return nil
}
