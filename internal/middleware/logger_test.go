package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := NewStructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/PPPS.php", nil)
	req.Header.Set("X-Request-Id", "req-1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusTeapot, w.Code)
	require.Equal(t, "req-1", w.Header().Get("X-Request-Id"))
	require.Contains(t, buf.String(), "request_id=req-1")
	require.Contains(t, buf.String(), "status=418")
	require.Contains(t, buf.String(), "path=/PPPS.php")
}

func TestStructuredLogger_GeneratesRequestID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := NewStructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/live", nil))
	require.Len(t, w.Header().Get("X-Request-Id"), 36)
}
