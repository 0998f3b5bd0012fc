package factcheck

import "errors"

// Sentinel errors for fact-check use case operations.
var (
	// ErrEmptyQuery indicates the claim or article text was blank. No request
	// is sent upstream.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrNoResult indicates a compose was requested before any verification.
	ErrNoResult = errors.New("no verification result to compose from")

	// ErrFetchUnavailable indicates a URL was submitted for review but no
	// article fetcher is configured.
	ErrFetchUnavailable = errors.New("article fetching is not available")
)
