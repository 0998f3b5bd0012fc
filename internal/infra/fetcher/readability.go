// Package fetcher extracts readable article text from a web page. The review
// flow uses it when the user submits a URL instead of pasting the article.
package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"go.opentelemetry.io/otel/attribute"

	"factcheck-web/internal/observability/metrics"
	"factcheck-web/internal/observability/tracing"
	"factcheck-web/internal/resilience/circuitbreaker"
	"factcheck-web/internal/resilience/retry"
)

// ReadabilityFetcher fetches a page and extracts its article text with the
// Mozilla Readability algorithm.
//
// Features:
//   - SSRF prevention before the request, on every redirect and at dial time
//   - Retry with backoff for transient failures (GET only)
//   - Circuit breaker around the whole fetch
//   - Size limiting while reading the body
//
// Thread safety: ReadabilityFetcher is safe for concurrent use.
type ReadabilityFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         ContentFetchConfig
}

// NewReadabilityFetcher creates a new ReadabilityFetcher with the given configuration.
//
// Example:
//
//	f := NewReadabilityFetcher(DefaultConfig())
//	text, err := f.FetchContent(ctx, "https://example.com/article")
func NewReadabilityFetcher(config ContentFetchConfig) *ReadabilityFetcher {
	cbConfig := circuitbreaker.ArticleFetchConfig()
	cbConfig.IsSuccessful = isFetchBreakerSuccess

	fetcher := &ReadabilityFetcher{
		circuitBreaker: circuitbreaker.New(cbConfig),
		config:         config,
	}

	dialer := &net.Dialer{Timeout: 5 * time.Second}
	if config.DenyPrivateIPs {
		dialer.Control = denyPrivateControl
	}

	fetcher.client = &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			DialContext:         dialer.DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12, // Enforce TLS 1.2+
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= fetcher.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.Context(), req.URL.String(), fetcher.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	return fetcher
}

// Breaker exposes the circuit breaker for health reporting.
func (f *ReadabilityFetcher) Breaker() *circuitbreaker.CircuitBreaker {
	return f.circuitBreaker
}

// FetchContent fetches urlStr and returns its article text.
//
// Errors:
//   - ErrDisabled: fetching is turned off
//   - ErrInvalidURL, ErrPrivateIP: the URL was refused
//   - ErrTooManyRedirects, ErrBodyTooLarge, ErrTimeout: the fetch was aborted
//   - ErrReadabilityFailed: the page had no article content
//   - circuit breaker open errors (see circuitbreaker.IsOpenError)
func (f *ReadabilityFetcher) FetchContent(ctx context.Context, urlStr string) (content string, err error) {
	if !f.config.Enabled {
		return "", ErrDisabled
	}

	if err := validateURL(ctx, urlStr, f.config.DenyPrivateIPs); err != nil {
		return "", err
	}

	ctx, span := tracing.GetTracer().Start(ctx, "fetcher.FetchContent")
	span.SetAttributes(attribute.String("url.full", urlStr))
	defer func() { tracing.EndSpan(span, err) }()

	start := time.Now()
	err = retry.WithBackoff(ctx, f.config.Retry, func() error {
		text, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, urlStr)
		})
		if err != nil {
			return err
		}
		content = text.(string)
		return nil
	})
	duration := time.Since(start)

	if err != nil {
		metrics.RecordArticleFetchFailed(duration)
		slog.WarnContext(ctx, "article fetch failed",
			slog.String("url", urlStr),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return "", err
	}

	metrics.RecordArticleFetchSuccess(duration, len(content))
	return content, nil
}

// doFetch performs one HTTP attempt and the extraction.
func (f *ReadabilityFetcher) doFetch(ctx context.Context, urlStr string) (interface{}, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return "", fmt.Errorf("%w: request exceeded %v", ErrTimeout, f.config.Timeout)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Err != nil {
			return "", urlErr.Err
		}
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	limitedReader := io.LimitReader(resp.Body, f.config.MaxBodySize+1)
	htmlBytes, err := io.ReadAll(limitedReader)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(htmlBytes)) > f.config.MaxBodySize {
		return "", fmt.Errorf("%w: response exceeds %d bytes", ErrBodyTooLarge, f.config.MaxBodySize)
	}

	// The final URL after redirects resolves relative links.
	pageURL := resp.Request.URL
	if pageURL == nil {
		pageURL, _ = url.Parse(urlStr)
	}

	article, err := readability.FromReader(bytes.NewReader(htmlBytes), pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadabilityFailed, err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", ErrReadabilityFailed
	}
	if title := strings.TrimSpace(article.Title); title != "" && !strings.HasPrefix(text, title) {
		text = title + "\n\n" + text
	}
	return text, nil
}

// isFetchBreakerSuccess keeps per-URL problems from opening the breaker for
// every other site.
func isFetchBreakerSuccess(err error) bool {
	if circuitbreaker.IgnoreCancellation(err) {
		return true
	}
	if errors.Is(err, ErrPrivateIP) || errors.Is(err, ErrTooManyRedirects) ||
		errors.Is(err, ErrBodyTooLarge) || errors.Is(err, ErrReadabilityFailed) {
		return true
	}
	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode < 500
	}
	return false
}
