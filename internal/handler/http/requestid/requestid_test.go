package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		expected string
	}{
		{
			name:     "with request ID",
			ctx:      WithRequestID(context.Background(), "test-id-123"),
			expected: "test-id-123",
		},
		{
			name:     "without request ID",
			ctx:      context.Background(),
			expected: "",
		},
		{
			name:     "with invalid type in context",
			ctx:      context.WithValue(context.Background(), RequestIDKey, 12345),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromContext(tt.ctx))
		})
	}
}

// captureID runs the middleware once and returns the ID seen by the handler
// together with the response header value.
func captureID(t *testing.T, incoming string) (ctxID, headerID string) {
	t.Helper()

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/check", nil)
	if incoming != "" {
		req.Header.Set(RequestIDHeader, incoming)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return ctxID, rec.Header().Get(RequestIDHeader)
}

func TestMiddleware_PropagatesWellFormedID(t *testing.T) {
	for _, id := range []string{"existing-request-id-456", "abc_DEF.123", "550e8400-e29b-41d4-a716-446655440000"} {
		ctxID, headerID := captureID(t, id)
		assert.Equal(t, id, ctxID)
		assert.Equal(t, id, headerID)
	}
}

func TestMiddleware_GeneratesNewRequestID(t *testing.T) {
	ctxID, headerID := captureID(t, "")

	_, err := uuid.Parse(ctxID)
	assert.NoError(t, err, "generated ID should be a valid UUID")
	assert.Equal(t, ctxID, headerID)
}

func TestMiddleware_ReplacesMalformedID(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{name: "newline injection", id: "abc\nlevel=ERROR"},
		{name: "spaces", id: "has spaces"},
		{name: "non-ascii", id: "معرف"},
		{name: "too long", id: strings.Repeat("a", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctxID, headerID := captureID(t, tt.id)

			assert.NotEqual(t, tt.id, ctxID)
			_, err := uuid.Parse(ctxID)
			assert.NoError(t, err)
			assert.Equal(t, ctxID, headerID)
		})
	}
}

func TestMiddleware_UniquePerRequest(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		id, _ := captureID(t, "")
		seen[id] = true
	}
	assert.Len(t, seen, 10)
}
