// Package web serves the server-rendered fact-check pages.
//
// Each visitor gets a session cookie; the session holds the query, the
// current result and the in-flight flags of the three request kinds. Forms
// post to /check, /compose/news and /compose/tweet and are answered with a
// redirect back to the page, so a reload never re-submits.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"factcheck-web/internal/domain/entity"
	"factcheck-web/internal/handler/http/respond"
	"factcheck-web/internal/i18n"
	"factcheck-web/internal/infra/session"
	"factcheck-web/internal/markup"
	"factcheck-web/internal/observability/metrics"
	fcUC "factcheck-web/internal/usecase/factcheck"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// SessionCookieName holds the session id.
const SessionCookieName = "fc_session"

const languageCookieMaxAge = 365 * 24 * 60 * 60

// Service is the fact-check use case.
type Service interface {
	Verify(ctx context.Context, query string, lang i18n.Language) (*entity.VerificationResult, error)
	ComposeNews(ctx context.Context, claim string, result *entity.VerificationResult, lang i18n.Language) (*entity.VerificationResult, error)
	ComposePost(ctx context.Context, claim string, result *entity.VerificationResult, lang i18n.Language) (*entity.VerificationResult, error)
	Review(ctx context.Context, in fcUC.ReviewInput) (*entity.ReviewResult, error)
}

// Config configures a Handler.
type Config struct {
	Service  Service
	Sessions session.Store
	Logger   *slog.Logger
	// CookieSecure marks cookies Secure; enable behind HTTPS.
	CookieSecure bool
	// SessionTTL is the session cookie lifetime.
	SessionTTL time.Duration
	// Lease is how long an in-flight flag blocks resubmission.
	Lease time.Duration
}

// Handler serves the web pages.
type Handler struct {
	svc      Service
	sessions session.Store
	logger   *slog.Logger
	secure   bool
	ttl      time.Duration
	lease    time.Duration
	tmpl     *template.Template
	now      func() time.Time
}

// New parses the embedded templates and returns a Handler.
func New(cfg Config) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	lease := cfg.Lease
	if lease <= 0 {
		lease = session.DefaultLease
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Handler{
		svc:      cfg.Service,
		sessions: cfg.Sessions,
		logger:   logger,
		secure:   cfg.CookieSecure,
		ttl:      ttl,
		lease:    lease,
		tmpl:     tmpl,
		now:      time.Now,
	}, nil
}

// Register mounts the web routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("POST /check", h.check)
	mux.HandleFunc("POST /compose/news", h.composeNews)
	mux.HandleFunc("POST /compose/tweet", h.composeTweet)
	mux.HandleFunc("POST /lang", h.setLanguage)
	mux.HandleFunc("GET /result.txt", h.exportText)
	mux.HandleFunc("GET /review", h.reviewForm)
	mux.HandleFunc("POST /review", h.review)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	lang := language(r)
	st, err := h.loadSession(w, r)
	if err != nil {
		h.storeFailure(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "index", newPage(lang, "/").withState(st))
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	lang := language(r)
	id := h.sessionID(w, r)
	query := strings.TrimSpace(r.PostFormValue("query"))

	if query == "" {
		_, err := h.sessions.Update(r.Context(), id, func(s *session.State) error {
			s.Query = ""
			s.Err = lang.Messages().ErrorNoQuery
			return nil
		})
		h.finish(w, r, err)
		return
	}

	var ticket session.Ticket
	_, err := h.sessions.Update(r.Context(), id, func(s *session.State) error {
		t, err := s.Begin(session.KindVerify, h.now(), h.lease)
		if err != nil {
			return err
		}
		ticket = t
		s.Query = query
		s.Language = lang.String()
		return nil
	})
	if err != nil {
		h.beginFailure(w, r, lang, id, session.KindVerify, err)
		return
	}

	result, callErr := h.svc.Verify(r.Context(), query, lang)

	// Record the outcome even when the visitor has gone away.
	ctx := context.WithoutCancel(r.Context())
	_, err = h.sessions.Update(ctx, id, func(s *session.State) error {
		if callErr != nil {
			h.applied(ctx, session.KindVerify, s.Fail(ticket, fcUC.UserMessage(callErr, lang), h.now()))
			return nil
		}
		h.applied(ctx, session.KindVerify, s.FinishVerify(ticket, query, result, h.now()))
		return nil
	})
	if callErr != nil {
		h.logger.WarnContext(r.Context(), "verify failed", slog.Any("error", callErr))
	}
	h.finish(w, r, err)
}

func (h *Handler) composeNews(w http.ResponseWriter, r *http.Request) {
	h.compose(w, r, session.KindComposeNews, h.svc.ComposeNews)
}

func (h *Handler) composeTweet(w http.ResponseWriter, r *http.Request) {
	h.compose(w, r, session.KindComposeTweet, h.svc.ComposePost)
}

type composeFunc func(ctx context.Context, claim string, result *entity.VerificationResult, lang i18n.Language) (*entity.VerificationResult, error)

func (h *Handler) compose(w http.ResponseWriter, r *http.Request, kind session.Kind, call composeFunc) {
	lang := language(r)
	id := h.sessionID(w, r)

	var (
		ticket session.Ticket
		claim  string
		prior  *entity.VerificationResult
	)
	_, err := h.sessions.Update(r.Context(), id, func(s *session.State) error {
		if s.Result == nil {
			return fcUC.ErrNoResult
		}
		t, err := s.Begin(kind, h.now(), h.lease)
		if err != nil {
			return err
		}
		ticket, claim, prior = t, s.ResultQuery, s.Result.Clone()
		return nil
	})
	if err != nil {
		h.beginFailure(w, r, lang, id, kind, err)
		return
	}

	merged, callErr := call(r.Context(), claim, prior, lang)

	ctx := context.WithoutCancel(r.Context())
	_, err = h.sessions.Update(ctx, id, func(s *session.State) error {
		if callErr != nil {
			h.applied(ctx, kind, s.Fail(ticket, fcUC.UserMessage(callErr, lang), h.now()))
			return nil
		}
		text := merged.NewsArticle
		if kind == session.KindComposeTweet {
			text = merged.XTweet
		}
		h.applied(ctx, kind, s.FinishCompose(ticket, text, h.now()))
		return nil
	})
	if callErr != nil {
		h.logger.WarnContext(r.Context(), "compose failed",
			slog.String("kind", string(kind)),
			slog.Any("error", callErr))
	}
	h.finish(w, r, err)
}

// beginFailure answers a submission that could not start.
func (h *Handler) beginFailure(w http.ResponseWriter, r *http.Request, lang i18n.Language, id string, kind session.Kind, err error) {
	m := lang.Messages()
	status := http.StatusConflict
	var msg string
	switch {
	case errors.Is(err, session.ErrInFlight):
		metrics.RecordInFlightRejection(string(kind))
		msg = m.ErrorInFlight
	case errors.Is(err, fcUC.ErrNoResult):
		status = http.StatusBadRequest
		msg = m.ErrorNoResult
	default:
		h.storeFailure(w, r, err)
		return
	}

	st, getErr := h.sessions.Get(r.Context(), id)
	if getErr != nil && !errors.Is(getErr, session.ErrNotFound) {
		h.storeFailure(w, r, getErr)
		return
	}
	p := newPage(lang, "/").withState(st)
	p.Err = msg
	h.render(w, r, status, "index", p)
}

// applied logs responses dropped because a newer request superseded them.
func (h *Handler) applied(ctx context.Context, kind session.Kind, ok bool) {
	if ok {
		return
	}
	metrics.RecordStaleResponse(string(kind))
	h.logger.InfoContext(ctx, "discarded stale response", slog.String("kind", string(kind)))
}

// finish redirects back to the page after a successful session write.
func (h *Handler) finish(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		h.storeFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) setLanguage(w http.ResponseWriter, r *http.Request) {
	lang, ok := i18n.Parse(r.PostFormValue("language"))
	if !ok {
		lang = language(r).Toggle()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     i18n.CookieName,
		Value:    lang.String(),
		Path:     "/",
		MaxAge:   languageCookieMaxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, safeReturn(r.PostFormValue("return")), http.StatusSeeOther)
}

// safeReturn accepts only local absolute paths.
func safeReturn(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}

func (h *Handler) exportText(w http.ResponseWriter, r *http.Request) {
	lang := language(r)
	st, err := h.loadSession(w, r)
	if err != nil {
		h.storeFailure(w, r, err)
		return
	}
	if st == nil || st.Result == nil {
		respond.Text(w, http.StatusNotFound, lang.Messages().ErrorNoResult)
		return
	}
	w.Header().Set("Content-Disposition", `inline; filename="result.txt"`)
	respond.Text(w, http.StatusOK, fcUC.ExportText(st.Result, lang))
}

func (h *Handler) reviewForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "review", newPage(language(r), "/review"))
}

func (h *Handler) review(w http.ResponseWriter, r *http.Request) {
	lang := language(r)
	p := newPage(lang, "/review")
	p.NewsText = r.PostFormValue("news_text")
	p.NewsURL = strings.TrimSpace(r.PostFormValue("news_url"))

	res, err := h.svc.Review(r.Context(), fcUC.ReviewInput{NewsText: p.NewsText, NewsURL: p.NewsURL})
	if err != nil {
		h.logger.WarnContext(r.Context(), "review failed", slog.Any("error", err))
		p.Err = fcUC.UserMessage(err, lang)
		h.render(w, r, reviewStatus(err), "review", p)
		return
	}
	p.Review = markup.Render(res.Review)
	h.render(w, r, http.StatusOK, "review", p)
}

func reviewStatus(err error) int {
	if errors.Is(err, fcUC.ErrEmptyQuery) || errors.Is(err, entity.ErrValidationFailed) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, p *page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, name, p); err != nil {
		h.logger.ErrorContext(r.Context(), "template execution failed",
			slog.String("template", name),
			slog.Any("error", err))
	}
}

func (h *Handler) storeFailure(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "session store failure", slog.Any("error", err))
	respond.SafeError(w, http.StatusServiceUnavailable, err)
}

// language picks the request language from the cookie and Accept-Language.
func language(r *http.Request) i18n.Language {
	var cookie string
	if c, err := r.Cookie(i18n.CookieName); err == nil {
		cookie = c.Value
	}
	return i18n.Negotiate(cookie, r.Header.Get("Accept-Language"))
}

// sessionID returns the visitor's session id, issuing a new cookie when the
// request has none or an invalid one.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && session.ValidID(c.Value) {
		return c.Value
	}
	id := session.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// loadSession returns the visitor's state, or nil for a new visitor.
func (h *Handler) loadSession(w http.ResponseWriter, r *http.Request) (*session.State, error) {
	id := h.sessionID(w, r)
	st, err := h.sessions.Get(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		return nil, nil
	}
	return st, err
}
