package session

import (
	"context"

	"github.com/google/uuid"
)

// Store persists session state.
type Store interface {
	// Get returns the state for id, or ErrNotFound.
	Get(ctx context.Context, id string) (*State, error)

	// Update runs fn on the state for id and saves the result atomically.
	// A missing session starts as NewState(id). When fn returns an error
	// nothing is saved and the error is returned.
	Update(ctx context.Context, id string, fn func(*State) error) (*State, error)

	// Delete removes id. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	Ping(ctx context.Context) error
}

// NewID returns a random session identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one NewID produced. Cookies that
// fail it are replaced rather than looked up.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}
