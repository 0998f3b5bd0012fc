package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"factcheck-web/internal/domain/entity"
	"factcheck-web/internal/handler/http/respond"
	"factcheck-web/internal/i18n"
	"factcheck-web/internal/infra/factcheckapi"
	"factcheck-web/internal/infra/fetcher"
	"factcheck-web/internal/infra/session"
	"factcheck-web/internal/observability/metrics"
	fcUC "factcheck-web/internal/usecase/factcheck"
)

var errBadBody = errors.New("invalid JSON body")

// statusFor maps a use case error to the response status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadBody),
		errors.Is(err, fcUC.ErrEmptyQuery),
		errors.Is(err, fcUC.ErrNoResult),
		errors.Is(err, entity.ErrValidationFailed),
		errors.Is(err, fetcher.ErrInvalidURL),
		errors.Is(err, fetcher.ErrPrivateIP):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrInFlight):
		return http.StatusConflict
	case errors.Is(err, factcheckapi.ErrUnavailable),
		errors.Is(err, fcUC.ErrFetchUnavailable),
		errors.Is(err, fetcher.ErrDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, lang i18n.Language, err error) {
	status := statusFor(err)
	msg := fcUC.UserMessage(err, lang)
	switch {
	case errors.Is(err, errBadBody):
		msg = errBadBody.Error()
	case errors.Is(err, session.ErrInFlight):
		metrics.RecordInFlightRejection(string(session.KindVerify))
		msg = lang.Messages().ErrorInFlight
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.Logger.LogAttrs(r.Context(), level, "api request failed",
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("error", respond.SanitizeError(err)))

	respond.JSON(w, status, respond.ErrorBody{Error: msg})
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errBadBody
	}
	return nil
}

// language resolves an explicit lang field, else Accept-Language.
func language(r *http.Request, explicit string) i18n.Language {
	if l, ok := i18n.Parse(explicit); ok {
		return l
	}
	return i18n.Negotiate("", r.Header.Get("Accept-Language"))
}
