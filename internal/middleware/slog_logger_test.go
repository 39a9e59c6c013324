package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/middleware"
)

// serveLogged runs one request through the SlogLogger middleware wrapped
// around next and returns the decoded log line.
func serveLogged(t *testing.T, req *http.Request, next http.HandlerFunc) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	rec := httptest.NewRecorder()
	middleware.NewSlogLogger(logger)(next).ServeHTTP(rec, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestSlogLogger_logsRequestFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	// Simulate what chimiddleware.RequestID does: inject a known ID into context.
	ctx := context.WithValue(req.Context(), chimiddleware.RequestIDKey, "test-req-id")
	req = req.WithContext(ctx)

	entry := serveLogged(t, req, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/healthz", entry["path"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
	assert.Equal(t, "test-req-id", entry["request_id"])
	assert.NotNil(t, entry["duration_ms"])
}

func TestSlogLogger_redirectLogsLocation(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/trips/abc/confirm", nil)

	entry := serveLogged(t, req, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "http://localhost:5173/trips/abc")
		w.WriteHeader(http.StatusFound)
	})

	assert.EqualValues(t, http.StatusFound, entry["status"])
	assert.Equal(t, "http://localhost:5173/trips/abc", entry["location"])
}

func TestSlogLogger_levelFollowsStatus(t *testing.T) {
	cases := []struct {
		status int
		level  string
	}{
		{http.StatusCreated, "INFO"},
		{http.StatusNotFound, "WARN"},
		{http.StatusUnprocessableEntity, "WARN"},
		{http.StatusBadGateway, "ERROR"},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/trips", nil)
			entry := serveLogged(t, req, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})
			assert.Equal(t, tc.level, entry["level"])
		})
	}
}

func TestSlogLogger_implicitOK(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	entry := serveLogged(t, req, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	assert.EqualValues(t, http.StatusOK, entry["status"])
	assert.EqualValues(t, 2, entry["bytes"])
}
