// Package factcheck implements the fact-check use cases: verifying a claim,
// composing a news article or short post from a verdict, reviewing an
// article, and exporting a result as plain text.
package factcheck

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"factcheck-web/internal/domain/entity"
	"factcheck-web/internal/i18n"
	"factcheck-web/internal/observability/metrics"
	"factcheck-web/internal/utils/text"
)

// API is the remote fact-check service.
type API interface {
	Verify(ctx context.Context, query string) (*entity.VerificationResult, error)
	ComposeNews(ctx context.Context, req entity.ComposeRequest) (string, error)
	ComposeTweet(ctx context.Context, req entity.ComposeRequest) (string, error)
	Review(ctx context.Context, newsText string) (*entity.ReviewResult, error)
}

// ArticleFetcher extracts article text from a URL.
type ArticleFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// Service provides the fact-check use cases.
// Fetcher is optional; without it Review accepts text only.
type Service struct {
	API     API
	Fetcher ArticleFetcher

	verifyGroup singleflight.Group
}

// Verify checks query and returns the verdict with localized defaults filled
// in for a missing verdict label or explanation.
//
// Identical queries already in flight share one upstream call. A caller that
// gives up stops waiting but does not cancel the shared call.
func (s *Service) Verify(ctx context.Context, query string, lang i18n.Language) (*entity.VerificationResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if err := entity.ValidateClaim(query); err != nil {
		return nil, err
	}

	ch := s.verifyGroup.DoChan(query, func() (interface{}, error) {
		return s.API.Verify(context.WithoutCancel(ctx), query)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if res.Shared {
		metrics.RecordCoalesced()
	}
	if res.Err != nil {
		return nil, fmt.Errorf("verify: %w", res.Err)
	}

	// The shared value is read by every waiter, so each gets its own copy.
	result := res.Val.(*entity.VerificationResult).Clone()
	applyDefaults(result, lang.Messages())

	slog.InfoContext(ctx, "claim verified",
		slog.String("case", result.Case),
		slog.Int("sources", len(result.Sources)),
		slog.Bool("shared", res.Shared))
	return result, nil
}

func applyDefaults(r *entity.VerificationResult, m *i18n.Messages) {
	if strings.TrimSpace(r.Case) == "" {
		r.Case = m.DefaultCase
	}
	if strings.TrimSpace(r.Talk) == "" {
		r.Talk = m.DefaultTalk
	}
	if r.Sources == nil {
		r.Sources = []entity.Source{}
	}
}

// ComposeNews asks for a news article about claim written from result and
// returns a copy of result carrying it. result itself is never modified.
func (s *Service) ComposeNews(ctx context.Context, claim string, result *entity.VerificationResult, lang i18n.Language) (*entity.VerificationResult, error) {
	if result == nil {
		return nil, ErrNoResult
	}
	article, err := s.API.ComposeNews(ctx, entity.NewComposeRequest(claim, result, lang.Code()))
	if err != nil {
		return nil, fmt.Errorf("compose news: %w", err)
	}
	return result.WithNewsArticle(article), nil
}

// ComposePost asks for a short social post about claim written from result
// and returns a copy of result carrying it.
func (s *Service) ComposePost(ctx context.Context, claim string, result *entity.VerificationResult, lang i18n.Language) (*entity.VerificationResult, error) {
	if result == nil {
		return nil, ErrNoResult
	}
	post, err := s.API.ComposeTweet(ctx, entity.NewComposeRequest(claim, result, lang.Code()))
	if err != nil {
		return nil, fmt.Errorf("compose post: %w", err)
	}
	return result.WithXTweet(post), nil
}

// ReviewInput is an article to review, given as text or as a URL.
// Text wins when both are set.
type ReviewInput struct {
	NewsText string
	NewsURL  string
}

// Review submits an article for review. A URL-only input is fetched and its
// readable text is reviewed; fetched text longer than MaxNewsTextRunes is
// truncated.
func (s *Service) Review(ctx context.Context, in ReviewInput) (*entity.ReviewResult, error) {
	body := strings.TrimSpace(in.NewsText)
	rawURL := strings.TrimSpace(in.NewsURL)

	if body == "" && rawURL != "" {
		fetched, err := s.fetchArticle(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		body = text.Truncate(fetched, entity.MaxNewsTextRunes)
	}

	if body == "" {
		return nil, ErrEmptyQuery
	}
	if err := entity.ValidateNewsText(body); err != nil {
		return nil, err
	}

	res, err := s.API.Review(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("review: %w", err)
	}
	return res, nil
}

func (s *Service) fetchArticle(ctx context.Context, rawURL string) (string, error) {
	if s.Fetcher == nil {
		return "", ErrFetchUnavailable
	}
	if err := entity.ValidateURL(ctx, rawURL, nil); err != nil {
		return "", err
	}
	content, err := s.Fetcher.FetchContent(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("fetch article: %w", err)
	}
	return strings.TrimSpace(content), nil
}
