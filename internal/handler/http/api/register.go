// Package api serves the JSON endpoints used by scripts and the terminal
// client. Requests are stateless unless they carry an X-Session-ID header,
// in which case verification is tracked in that session like a page submit.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"factcheck-web/internal/domain/entity"
	"factcheck-web/internal/i18n"
	"factcheck-web/internal/infra/session"
	fcUC "factcheck-web/internal/usecase/factcheck"
)

// SessionHeader names the optional session id header.
const SessionHeader = "X-Session-ID"

// Service is the fact-check use case.
type Service interface {
	Verify(ctx context.Context, query string, lang i18n.Language) (*entity.VerificationResult, error)
	ComposeNews(ctx context.Context, claim string, result *entity.VerificationResult, lang i18n.Language) (*entity.VerificationResult, error)
	ComposePost(ctx context.Context, claim string, result *entity.VerificationResult, lang i18n.Language) (*entity.VerificationResult, error)
	Review(ctx context.Context, in fcUC.ReviewInput) (*entity.ReviewResult, error)
}

// Handler serves the JSON API.
type Handler struct {
	Svc Service
	// Sessions is optional. Without it X-Session-ID is ignored.
	Sessions session.Store
	Logger   *slog.Logger
	// Lease is how long an in-flight flag blocks a second verify.
	Lease time.Duration

	now func() time.Time
}

// Register mounts the JSON routes on mux.
func Register(mux *http.ServeMux, h *Handler) {
	if h.Logger == nil {
		h.Logger = slog.Default()
	}
	if h.Lease <= 0 {
		h.Lease = session.DefaultLease
	}
	if h.now == nil {
		h.now = time.Now
	}

	mux.HandleFunc("POST /api/v1/fact-check", h.factCheck)
	mux.HandleFunc("POST /api/v1/compose/news", h.composeNews)
	mux.HandleFunc("POST /api/v1/compose/tweet", h.composeTweet)
	mux.HandleFunc("POST /api/review", h.review)
	mux.HandleFunc("POST /api/v1/render", h.render)
}
