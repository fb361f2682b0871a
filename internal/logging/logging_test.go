package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for input, want := range cases {
		assert.Equal(t, want, ParseLevel(input), input)
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Writer: &buf, Format: "json", Level: "info"})

	logger.Debug("hidden")
	logger.Info("listing approved", "kind", "designer")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "listing approved", entry["msg"])
	assert.Equal(t, "designer", entry["kind"])
}

func TestFromContextFallsBack(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	assert.Same(t, fallback, FromContext(context.Background(), fallback))

	scoped := fallback.With("trace_id", "abc")
	assert.Same(t, scoped, FromContext(WithLogger(context.Background(), scoped), fallback))
	assert.Equal(t, "", TraceID(context.Background()))
}

func TestRequestLoggerKeepsValidTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Writer: &buf, Format: "json"})
	incoming := uuid.NewString()

	var seen string
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceID(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))
	req := httptest.NewRequest(http.MethodPost, "/listings/designer", nil)
	req.Header.Set(TraceHeader, incoming)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, incoming, seen)
	assert.Equal(t, incoming, rec.Header().Get(TraceHeader))
	assert.Contains(t, buf.String(), `"status_code":201`)
	assert.Contains(t, buf.String(), incoming)
}

func TestRequestLoggerReplacesMalformedTraceID(t *testing.T) {
	logger := New(Options{Writer: &bytes.Buffer{}, Format: "json"})

	var seen string
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(TraceHeader, "not-a-uuid")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.NotEqual(t, "not-a-uuid", seen)
}
