package http

import (
	"net/http"

	"factcheck-web/internal/handler/http/respond"
)

const (
	maxCookieHeaderBytes = 4096
	maxPathBytes         = 2048
	// DefaultMaxBodyBytes bounds form and JSON bodies. Long articles submitted
	// for review are the largest legitimate payloads.
	DefaultMaxBodyBytes int64 = 1 << 20
)

// InputValidation returns middleware that validates and limits request inputs.
// It enforces limits on:
// - Cookie header size (4KB; the app only sets session and language cookies)
// - URI path length (2KB)
// - Request body size (maxBody, DefaultMaxBodyBytes when <= 0)
func InputValidation(maxBody int64) func(http.Handler) http.Handler {
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Cookie")) > maxCookieHeaderBytes {
				respond.JSON(w, http.StatusRequestHeaderFieldsTooLarge, respond.ErrorBody{Error: "cookie header too large"})
				return
			}

			if len(r.URL.Path) > maxPathBytes {
				respond.JSON(w, http.StatusRequestURITooLong, respond.ErrorBody{Error: "URI too long"})
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBody)
			next.ServeHTTP(w, r)
		})
	}
}
