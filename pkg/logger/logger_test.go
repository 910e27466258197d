package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCaptureLogger(t *testing.T) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := NewWithConfig(Config{
		Name:   "test",
		Format: FormatJSON,
		Level:  slog.LevelDebug,
		Writer: &buf,
	})
	return log, &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestNew_Success(t *testing.T) {
	log := New("test-package")

	assert.NotNil(t, log)
	assert.IsType(t, &SlogLogger{}, log)
}

func TestNewWithConfig_Formats(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatText} {
		log := NewWithConfig(Config{Name: "test-service", Format: format})
		assert.NotNil(t, log)
	}
}

func TestRedaction_SensitiveKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "password key", key: "password"},
		{name: "token key", key: "token"},
		{name: "secret key", key: "secret"},
		{name: "api_key key", key: "api_key"},
		{name: "session key", key: "session"},
		{name: "uppercase key", key: "Password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := newCaptureLogger(t)

			log.Info("login attempt", tt.key, "super-sensitive-value")

			record := decodeLine(t, buf)
			assert.Equal(t, RedactionMarker, record[tt.key])
			assert.NotContains(t, buf.String(), "super-sensitive-value")
		})
	}
}

func TestRedaction_NonSensitiveKeysUntouched(t *testing.T) {
	log, buf := newCaptureLogger(t)

	log.Info("booking created", "bookingID", "abc-123", "serviceType", "standard")

	record := decodeLine(t, buf)
	assert.Equal(t, "abc-123", record["bookingID"])
	assert.Equal(t, "standard", record["serviceType"])
}

func TestRedaction_MapValues(t *testing.T) {
	log, buf := newCaptureLogger(t)

	log.Info("request context", "context", map[string]any{
		"password": "hunter2",
		"userID":   "user-1",
		"nested":   map[string]any{"token": "jwt-value"},
	})

	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "jwt-value")
	assert.Contains(t, out, "user-1")
	assert.Contains(t, out, RedactionMarker)
}

func TestRedaction_WithChainedAttrs(t *testing.T) {
	log, buf := newCaptureLogger(t)

	log.With("token", "chained-secret").Info("chained")

	assert.NotContains(t, buf.String(), "chained-secret")
	assert.Contains(t, buf.String(), RedactionMarker)
}

func TestErr_ReturnsOriginalError(t *testing.T) {
	log, _ := newCaptureLogger(t)
	original := errors.New("boom")

	err := log.Err("operation failed", original)

	assert.Equal(t, original, err)
}

func TestErrorWithType_WrapsSentinel(t *testing.T) {
	log, _ := newCaptureLogger(t)
	sentinel := errors.New("validation error")

	err := log.ErrorWithType(sentinel, "bad input")

	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "bad input")
}

func TestTraceFromContext(t *testing.T) {
	log, buf := newCaptureLogger(t)
	ctx := ContextWithTraceID(context.Background(), "trace-42")

	log.TraceFromContext(ctx).Info("traced message")

	record := decodeLine(t, buf)
	assert.Equal(t, "trace-42", record["traceID"])
}

func TestTraceFromContext_MissingTraceID(t *testing.T) {
	log, buf := newCaptureLogger(t)

	log.TraceFromContext(context.Background()).Info("untraced message")

	record := decodeLine(t, buf)
	_, hasTrace := record["traceID"]
	assert.False(t, hasTrace)
}
