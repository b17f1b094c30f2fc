package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, parseLogLevel(tc.input), "level %q", tc.input)
	}
}

func TestTraceIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctx = WithTraceID(ctx, "abc-123")
	assert.Equal(t, "abc-123", GetTraceID(ctx))
}

func TestTraceHandlerInjectsTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&traceHandler{Handler: slog.NewJSONHandler(&buf, nil)})

	ctx := WithTraceID(context.Background(), "trace-xyz")
	logger.InfoContext(ctx, "hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "trace-xyz", entry["trace_id"])
	assert.Equal(t, "hello", entry["msg"])
}

func TestTraceHandlerWithoutTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&traceHandler{Handler: slog.NewJSONHandler(&buf, nil)})

	logger.Info("no trace")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, present := entry["trace_id"]
	assert.False(t, present)
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	WithComponent(logger, "ingest").Info("working")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ingest", entry["component"])
}

func TestGenerateTraceID(t *testing.T) {
	a := GenerateTraceID()
	b := GenerateTraceID()

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
