package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
)

func TestShouldTraceRequest_HealthPaths(t *testing.T) {
	paths := []string{"/healthz", "/health", "/livez", "/readyz", " /healthz "}
	for _, path := range paths {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
}

func TestShouldTraceRequest_NonHealthPaths(t *testing.T) {
	paths := []string{"/v1/recommendations", "/v1/internal/jobs/snapshot", "/"}
	for _, path := range paths {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}

func TestStatusRecorder_TracksStatusAndBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	recorder := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}

	recorder.WriteHeader(http.StatusUnprocessableEntity)
	_, _ = recorder.Write([]byte(`{"error":{}}`))
	_, _ = recorder.Write([]byte("\n"))

	if recorder.status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", recorder.status)
	}
	if recorder.bytes != 13 {
		t.Fatalf("bytes = %d, want 13", recorder.bytes)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("underlying status = %d", rec.Code)
	}
}

func TestRequestLogging_SkipsHealthAndPassesThrough(t *testing.T) {
	var sawPath string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequestLogging(logging.NewNop(), next)

	for _, path := range []string{"/healthz", "/v1/assets/scores"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		if rec.Code != http.StatusNoContent || sawPath != path {
			t.Fatalf("path %s: code=%d saw=%s", path, rec.Code, sawPath)
		}
	}
}
