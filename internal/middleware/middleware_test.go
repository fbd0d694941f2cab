package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TerritoryScout/TS-Backend/internal/middleware"
)

// call wraps a simple inner handler in the provided middleware, optionally
// setting an Origin header, and returns the recorded response.
func call(t *testing.T, mw func(http.Handler) http.Handler, method, origin string) *httptest.ResponseRecorder {
	t.Helper()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hi"))
	})

	handler := mw(inner)
	req := httptest.NewRequest(method, "/test", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// TestCORSMiddleware_AllowedOrigin verifies that a known origin is echoed back
// with credentials enabled.
func TestCORSMiddleware_AllowedOrigin(t *testing.T) {
	rec := call(t, func(h http.Handler) http.Handler { return middleware.CORSMiddleware(h) },
		http.MethodGet, "http://localhost:5173")

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("expected origin echoed back, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("expected credentials allowed, got %q", got)
	}
}

// TestCORSMiddleware_UnknownOrigin verifies that an unlisted origin gets no
// Allow-Origin header at all.
func TestCORSMiddleware_UnknownOrigin(t *testing.T) {
	rec := call(t, func(h http.Handler) http.Handler { return middleware.CORSMiddleware(h) },
		http.MethodGet, "https://evil.example.com")

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no Allow-Origin header, got %q", got)
	}
}

// TestCORSMiddleware_Preflight verifies that OPTIONS requests short-circuit
// with 204 and never reach the inner handler.
func TestCORSMiddleware_Preflight(t *testing.T) {
	rec := call(t, func(h http.Handler) http.Handler { return middleware.CORSMiddleware(h) },
		http.MethodOptions, "http://localhost:5173")

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty preflight body, got %q", rec.Body.String())
	}
}

// TestAccessLogMiddleware verifies that the logged line carries the real status
// code and path, not the defaults.
func TestAccessLogMiddleware(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))

	rec := call(t, middleware.AccessLogMiddleware(l), http.MethodGet, "")

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected inner status to pass through, got %d", rec.Code)
	}
	line := buf.String()
	if !strings.Contains(line, "status=418") {
		t.Errorf("expected logged status 418, got: %s", line)
	}
	if !strings.Contains(line, "path=/test") {
		t.Errorf("expected logged path /test, got: %s", line)
	}
}
