package factcheck

import (
	"context"
	"errors"

	"factcheck-web/internal/domain/entity"
	"factcheck-web/internal/i18n"
	"factcheck-web/internal/infra/factcheckapi"
	"factcheck-web/internal/infra/fetcher"
	"factcheck-web/internal/resilience/circuitbreaker"
)

// UserMessage maps an error from this package to the text shown to the user.
//
// HTTP failures show their status line and API failures show the API's own
// error text, as the browser client always did. Everything else gets a
// localized message.
func UserMessage(err error, lang i18n.Language) string {
	m := lang.Messages()

	var (
		apiErr  *factcheckapi.APIError
		httpErr *factcheckapi.HTTPError
		valErr  *entity.ValidationError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyQuery):
		return m.ErrorNoQuery
	case errors.Is(err, ErrNoResult):
		return m.ErrorNoResult
	case errors.As(err, &apiErr):
		return apiErr.UserMessage(m.ErrorFetch)
	case errors.As(err, &httpErr):
		return httpErr.Error()
	case errors.Is(err, factcheckapi.ErrEmptyResponse):
		return m.ErrorEmptyResponse
	case errors.Is(err, factcheckapi.ErrInvalidResponse):
		return m.ErrorInvalidResponse
	case errors.Is(err, factcheckapi.ErrUnavailable):
		return m.ErrorUnavailable
	case errors.As(err, &valErr):
		if valErr.Field == "url" {
			return m.ErrorFetchArticle
		}
		return m.ErrorTooLong
	case errors.Is(err, ErrFetchUnavailable),
		errors.Is(err, fetcher.ErrDisabled),
		errors.Is(err, fetcher.ErrInvalidURL),
		errors.Is(err, fetcher.ErrPrivateIP),
		errors.Is(err, fetcher.ErrTooManyRedirects),
		errors.Is(err, fetcher.ErrBodyTooLarge),
		errors.Is(err, fetcher.ErrTimeout),
		errors.Is(err, fetcher.ErrReadabilityFailed),
		circuitbreaker.IsOpenError(err):
		return m.ErrorFetchArticle
	case errors.Is(err, factcheckapi.ErrTransport), errors.Is(err, context.DeadlineExceeded):
		return m.ErrorFetch
	default:
		return m.ErrorUnexpected
	}
}
