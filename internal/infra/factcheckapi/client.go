// Package factcheckapi is the JSON client for the remote fact-check service.
//
// The service exposes four POST endpoints: verify a claim, compose a news
// article, compose a short post, and review an article. Every call goes
// through a client-side token bucket and a circuit breaker, is traced as a
// client span and is counted in Prometheus. Calls are never retried: each
// failure is reported to the user, who decides whether to submit again.
package factcheckapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"factcheck-web/internal/domain/entity"
	"factcheck-web/internal/observability/metrics"
	"factcheck-web/internal/observability/tracing"
	"factcheck-web/internal/resilience/circuitbreaker"
)

// Upstream paths.
const (
	PathVerify       = "/fact_check/"
	PathComposeNews  = "/fact_check/compose_news/"
	PathComposeTweet = "/fact_check/compose_tweet/"
	PathReview       = "/api/review"
)

// Operation names used in logs, spans and metric labels.
const (
	OpVerify       = "verify"
	OpComposeNews  = "compose_news"
	OpComposeTweet = "compose_tweet"
	OpReview       = "review"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 10 << 20

// Config configures a Client.
type Config struct {
	BaseURL string
	// Timeout bounds one call including reading the body.
	Timeout time.Duration
	// RatePerSecond and Burst shape outgoing calls. Zero rate disables the limiter.
	RatePerSecond float64
	Burst         int
	// HTTPClient overrides the default client. Its Timeout is left untouched.
	HTTPClient *http.Client
	// Breaker overrides the default circuit breaker configuration.
	Breaker *circuitbreaker.Config
}

// Client talks to the fact-check API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	breaker *circuitbreaker.CircuitBreaker
}

// New returns a Client for cfg.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	cbCfg := circuitbreaker.FactCheckAPIConfig()
	if cfg.Breaker != nil {
		cbCfg = *cfg.Breaker
	}
	cbCfg.IsSuccessful = isBreakerSuccess

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		limiter: rate.NewLimiter(limit, burst),
		breaker: circuitbreaker.New(cbCfg),
	}
}

// Breaker exposes the circuit breaker for health reporting.
func (c *Client) Breaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

type verifyRequest struct {
	Query string `json:"query"`
}

type verifyResponse struct {
	OK          bool                     `json:"ok"`
	Error       string                   `json:"error"`
	Case        string                   `json:"case"`
	Talk        string                   `json:"talk"`
	Sources     json.RawMessage          `json:"sources"`
	NewsArticle string                   `json:"news_article"`
	XTweet      string                   `json:"x_tweet"`
	Statistics  json.RawMessage          `json:"source_statistics"`
}

// Verify submits a claim. Missing case and talk are returned empty; the
// caller fills localized defaults. A sources value that is not an array
// becomes an empty list and malformed statistics are dropped.
func (c *Client) Verify(ctx context.Context, query string) (*entity.VerificationResult, error) {
	var resp verifyResponse
	if err := c.call(ctx, OpVerify, PathVerify, verifyRequest{Query: query}, &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, c.logical(ctx, OpVerify, resp.Error)
	}
	return &entity.VerificationResult{
		Case:        resp.Case,
		Talk:        resp.Talk,
		Sources:     decodeSources(resp.Sources),
		NewsArticle: resp.NewsArticle,
		XTweet:      resp.XTweet,
		Statistics:  decodeStatistics(ctx, resp.Statistics),
	}, nil
}

type composeResponse struct {
	OK          bool   `json:"ok"`
	Error       string `json:"error"`
	NewsArticle string `json:"news_article"`
	XTweet      string `json:"x_tweet"`
}

// ComposeNews asks for a news article written from a verified result.
func (c *Client) ComposeNews(ctx context.Context, req entity.ComposeRequest) (string, error) {
	var resp composeResponse
	if err := c.call(ctx, OpComposeNews, PathComposeNews, req, &resp); err != nil {
		return "", err
	}
	if !resp.OK || resp.NewsArticle == "" {
		return "", c.logical(ctx, OpComposeNews, resp.Error)
	}
	return resp.NewsArticle, nil
}

// ComposeTweet asks for a short social post written from a verified result.
func (c *Client) ComposeTweet(ctx context.Context, req entity.ComposeRequest) (string, error) {
	var resp composeResponse
	if err := c.call(ctx, OpComposeTweet, PathComposeTweet, req, &resp); err != nil {
		return "", err
	}
	if !resp.OK || resp.XTweet == "" {
		return "", c.logical(ctx, OpComposeTweet, resp.Error)
	}
	return resp.XTweet, nil
}

type reviewRequest struct {
	NewsText string `json:"news_text"`
}

type reviewResponse struct {
	Review string `json:"review"`
	Error  string `json:"error"`
}

// Review submits article text for review.
func (c *Client) Review(ctx context.Context, newsText string) (*entity.ReviewResult, error) {
	var resp reviewResponse
	if err := c.call(ctx, OpReview, PathReview, reviewRequest{NewsText: newsText}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" || resp.Review == "" {
		return nil, c.logical(ctx, OpReview, resp.Error)
	}
	return &entity.ReviewResult{Review: resp.Review}, nil
}

func (c *Client) logical(ctx context.Context, op, message string) error {
	slog.WarnContext(ctx, "fact-check api reported failure",
		slog.String("operation", op),
		slog.String("message", message))
	return &APIError{Op: op, Message: message}
}

// call posts body to path and decodes the JSON answer into out.
func (c *Client) call(ctx context.Context, op, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.RecordUpstreamCall(op, "canceled", 0)
		return fmt.Errorf("%s: %w", op, err)
	}

	start := time.Now()
	err = c.breaker.Do(func() error {
		return c.do(ctx, op, path, payload, out)
	})
	duration := time.Since(start)

	outcome := outcomeOf(err)
	metrics.RecordUpstreamCall(op, outcome, duration)

	if err != nil {
		if circuitbreaker.IsOpenError(err) {
			slog.WarnContext(ctx, "fact-check api circuit breaker open, request rejected",
				slog.String("operation", op),
				slog.String("state", c.breaker.State().String()))
			return ErrUnavailable
		}
		slog.WarnContext(ctx, "fact-check api call failed",
			slog.String("operation", op),
			slog.String("outcome", outcome),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return err
	}

	slog.DebugContext(ctx, "fact-check api call completed",
		slog.String("operation", op),
		slog.Duration("duration", duration))
	return nil
}

func (c *Client) do(ctx context.Context, op, path string, payload []byte, out any) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	ctx, span := tracing.StartClientSpan(ctx, "factcheckapi."+op, req.Header,
		attribute.String("http.request.method", http.MethodPost),
		attribute.String("url.path", path),
	)
	defer func() { tracing.EndSpan(span, err) }()
	req = req.WithContext(ctx)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.Canceled) {
			return fmt.Errorf("%s: %w", op, context.Canceled)
		}
		return fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return &HTTPError{StatusCode: resp.StatusCode, Status: statusText(resp.Status, resp.StatusCode)}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s: read body: %w: %w", op, ErrTransport, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// statusText strips the numeric prefix from resp.Status ("404 Not Found").
func statusText(status string, code int) string {
	if _, text, ok := strings.Cut(status, " "); ok && text != "" {
		return text
	}
	return http.StatusText(code)
}

func decodeSources(raw json.RawMessage) []entity.Source {
	sources := []entity.Source{}
	if len(raw) == 0 {
		return sources
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return sources
	}
	for _, item := range items {
		var s entity.Source
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		sources = append(sources, s)
	}
	return sources
}

// statisticsWire accepts any JSON number for every field; counts such as
// 2.0 are rounded.
type statisticsWire struct {
	SupportingPercentage float64 `json:"supporting_percentage"`
	OpposingPercentage   float64 `json:"opposing_percentage"`
	NeutralPercentage    float64 `json:"neutral_percentage"`
	SupportingCount      float64 `json:"supporting_count"`
	OpposingCount        float64 `json:"opposing_count"`
	NeutralCount         float64 `json:"neutral_count"`
	TotalSources         float64 `json:"total_sources"`
}

func decodeStatistics(ctx context.Context, raw json.RawMessage) *entity.SourceStatistics {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	var w statisticsWire
	if err := json.Unmarshal(raw, &w); err != nil {
		slog.WarnContext(ctx, "dropping malformed source statistics", slog.Any("error", err))
		return nil
	}
	count := func(f float64) int { return int(math.Round(f)) }
	return &entity.SourceStatistics{
		SupportingPercentage: w.SupportingPercentage,
		OpposingPercentage:   w.OpposingPercentage,
		NeutralPercentage:    w.NeutralPercentage,
		SupportingCount:      count(w.SupportingCount),
		OpposingCount:        count(w.OpposingCount),
		NeutralCount:         count(w.NeutralCount),
		TotalSources:         count(w.TotalSources),
	}
}

func outcomeOf(err error) string {
	var httpErr *HTTPError
	switch {
	case err == nil:
		return "success"
	case circuitbreaker.IsOpenError(err):
		return "circuit_open"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &httpErr):
		return "http_error"
	case errors.Is(err, ErrEmptyResponse), errors.Is(err, ErrInvalidResponse):
		return "invalid_response"
	default:
		return "transport_error"
	}
}
