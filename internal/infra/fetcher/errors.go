package fetcher

import "errors"

// Sentinel errors for article fetching. Callers use errors.Is to pick a
// user-facing message.
var (
	ErrInvalidURL        = errors.New("invalid URL")
	ErrPrivateIP         = errors.New("URL resolves to a private address")
	ErrTooManyRedirects  = errors.New("too many redirects")
	ErrBodyTooLarge      = errors.New("response body too large")
	ErrTimeout           = errors.New("article fetch timed out")
	ErrReadabilityFailed = errors.New("no readable article content")
	ErrDisabled          = errors.New("article fetching is disabled")
)
