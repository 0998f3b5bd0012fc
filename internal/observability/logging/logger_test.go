package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"factcheck-web/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected slog.Level
	}{
		{in: "", expected: slog.LevelInfo},
		{in: "debug", expected: slog.LevelDebug},
		{in: "DEBUG", expected: slog.LevelDebug},
		{in: "warn", expected: slog.LevelWarn},
		{in: "warning", expected: slog.LevelWarn},
		{in: " error ", expected: slog.LevelError},
		{in: "invalid", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger_UsesEnvLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	logger := NewLogger()

	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestNewJSONLogger_FiltersBelowLevel(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, slog.LevelInfo)

	// Act
	logger.Debug("this should not appear")
	logger.Info("verify finished", slog.String("verdict", "false"))

	// Assert
	output := buf.String()
	assert.NotContains(t, output, "this should not appear")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "output should be valid JSON")
	assert.Equal(t, "verify finished", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "false", entry["verdict"])
	assert.NotEmpty(t, entry["time"])
}

func TestNewTextLogger_WritesToGivenWriter(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	var buf bytes.Buffer

	NewTextLogger(&buf).Warn("upstream slow", slog.Int("seconds", 42))

	assert.Contains(t, buf.String(), "upstream slow")
	assert.Contains(t, buf.String(), "seconds=42")
}

func TestWithRequestID(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	base := NewJSONLogger(&buf, slog.LevelInfo)
	ctx := requestid.WithRequestID(context.Background(), "test-request-123")

	// Act
	WithRequestID(ctx, base).Info("test message")

	// Assert
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-request-123", entry["request_id"])
}

func TestWithRequestID_EmptyRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := NewJSONLogger(&buf, slog.LevelInfo)

	logger := WithRequestID(context.Background(), base)
	logger.Info("test message")

	assert.Same(t, base, logger, "logger without request ID should be returned as is")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewJSONLogger(&buf, slog.LevelInfo)

	WithFields(base, map[string]interface{}{
		"operation": "compose_news",
		"lang":      "ar",
	}).Info("compose requested")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "compose_news", entry["operation"])
	assert.Equal(t, "ar", entry["lang"])
}

func TestFromContext(t *testing.T) {
	t.Run("returns stored logger", func(t *testing.T) {
		logger := NewJSONLogger(&bytes.Buffer{}, slog.LevelInfo)
		ctx := WithLogger(context.Background(), logger)
		assert.Same(t, logger, FromContext(ctx))
	})

	t.Run("falls back to default", func(t *testing.T) {
		assert.Same(t, slog.Default(), FromContext(context.Background()))
	})
}
