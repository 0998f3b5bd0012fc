package api

import (
	"context"
	"log/slog"
	"net/http"

	"factcheck-web/internal/domain/entity"
	"factcheck-web/internal/handler/http/respond"
	"factcheck-web/internal/i18n"
	"factcheck-web/internal/infra/session"
	fcUC "factcheck-web/internal/usecase/factcheck"
)

// factCheck verifies a claim.
// @Summary      Verify a claim
// @Description  Sends the claim to the fact-check service and returns the verdict, explanation, sources and statistics.
// @Description  With X-Session-ID the request is tracked in that session and a second verify while one is running is rejected.
// @Tags         fact-check
// @Accept       json
// @Produce      json
// @Param        X-Session-ID header string false "Session to record the result in"
// @Param        request body FactCheckRequest true "Claim"
// @Success      200 {object} entity.VerificationResult
// @Failure      400 {object} respond.ErrorBody "Empty or too long query"
// @Failure      409 {object} respond.ErrorBody "A verification is already running for this session"
// @Failure      429 {object} respond.ErrorBody "Rate limit exceeded"
// @Failure      502 {object} respond.ErrorBody "Upstream failure"
// @Failure      503 {object} respond.ErrorBody "Upstream circuit open"
// @Router       /api/v1/fact-check [post]
func (h *Handler) factCheck(w http.ResponseWriter, r *http.Request) {
	var req FactCheckRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, language(r, ""), err)
		return
	}
	lang := language(r, req.Lang)

	id := r.Header.Get(SessionHeader)
	if h.Sessions == nil || !session.ValidID(id) {
		result, err := h.Svc.Verify(r.Context(), req.Query, lang)
		if err != nil {
			h.fail(w, r, lang, err)
			return
		}
		respond.JSON(w, http.StatusOK, result)
		return
	}

	result, err := h.trackedVerify(r.Context(), id, req.Query, lang)
	if err != nil {
		h.fail(w, r, lang, err)
		return
	}
	respond.JSON(w, http.StatusOK, result)
}

// trackedVerify runs a verify bracketed by the session's in-flight bookkeeping.
func (h *Handler) trackedVerify(ctx context.Context, id, query string, lang i18n.Language) (*entity.VerificationResult, error) {
	var ticket session.Ticket
	_, err := h.Sessions.Update(ctx, id, func(s *session.State) error {
		t, err := s.Begin(session.KindVerify, h.now(), h.Lease)
		if err != nil {
			return err
		}
		ticket = t
		s.Query = query
		s.Language = lang.String()
		return nil
	})
	if err != nil {
		return nil, err
	}

	result, callErr := h.Svc.Verify(ctx, query, lang)

	bg := context.WithoutCancel(ctx)
	if _, err := h.Sessions.Update(bg, id, func(s *session.State) error {
		if callErr != nil {
			s.Fail(ticket, fcUC.UserMessage(callErr, lang), h.now())
			return nil
		}
		if !s.FinishVerify(ticket, query, result, h.now()) {
			h.Logger.InfoContext(bg, "discarded stale response", slog.String("kind", string(session.KindVerify)))
		}
		return nil
	}); err != nil {
		h.Logger.ErrorContext(bg, "session update failed", slog.Any("error", err))
	}
	return result, callErr
}
