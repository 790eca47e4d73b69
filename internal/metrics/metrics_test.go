package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNormalizeRoute(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		// Known exact routes.
		{"/healthz", "/healthz"},
		{"/readyz", "/readyz"},
		{"/metrics", "/metrics"},
		{"/api/v1/bodies", "/api/v1/bodies"},
		{"/api/v1/positions", "/api/v1/positions"},
		{"/api/v1/simulation/speed", "/api/v1/simulation/speed"},
		{"/api/v1/simulation/date", "/api/v1/simulation/date"},
		{"/api/v1/simulation/date/skip", "/api/v1/simulation/date/skip"},
		{"/api/v1/stream/positions", "/api/v1/stream/positions"},

		// Unknown/bot paths collapse to "other".
		{"/", "other"},
		{"/wp-admin", "other"},
		{"/robots.txt", "other"},
		{"/.env", "other"},
		{"/api/v2/something", "other"},
		{"/favicon.ico", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := normalizeRoute(tt.path)
			if got != tt.want {
				t.Errorf("normalizeRoute(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// TestMetricsCardinality verifies that arbitrary unknown paths produce
// exactly 1 distinct label, not one per path.
func TestMetricsCardinality(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		label := normalizeRoute("/scan/" + string(rune('a'+i%26)))
		seen[label] = true
	}
	if len(seen) != 1 {
		t.Errorf("expected 1 unique label for unknown paths, got %d: %v", len(seen), seen)
	}
}

// TestMiddlewarePreservesFlusher verifies the instrumented writer still
// satisfies http.Flusher and forwards flushes, so SSE handlers behind the
// middleware can stream.
func TestMiddlewarePreservesFlusher(t *testing.T) {
	var sawFlusher bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, ok := w.(http.Flusher)
		sawFlusher = ok
		if ok {
			f.Flush()
		}
	})

	rec := httptest.NewRecorder()
	Middleware(inner).ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/stream/positions", nil))

	if !sawFlusher {
		t.Fatal("handler behind Middleware does not see http.Flusher")
	}
	if !rec.Flushed {
		t.Error("Flush did not reach the underlying writer")
	}
}

// deadlineWriter records SetWriteDeadline calls, standing in for the real
// connection writer.
type deadlineWriter struct {
	*httptest.ResponseRecorder
	deadlines []time.Time
}

func (dw *deadlineWriter) SetWriteDeadline(t time.Time) error {
	dw.deadlines = append(dw.deadlines, t)
	return nil
}

// TestMiddlewareUnwrapsForResponseController verifies the instrumented
// writer exposes the underlying connection to http.ResponseController, so
// stream handlers can clear the server write deadline.
func TestMiddlewareUnwrapsForResponseController(t *testing.T) {
	dw := &deadlineWriter{ResponseRecorder: httptest.NewRecorder()}
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
			t.Errorf("SetWriteDeadline through middleware: %v", err)
		}
	})

	Middleware(inner).ServeHTTP(dw, httptest.NewRequest("GET", "/api/v1/stream/positions", nil))

	if len(dw.deadlines) != 1 || !dw.deadlines[0].IsZero() {
		t.Errorf("deadline calls = %v, want one zero-time call", dw.deadlines)
	}
}
