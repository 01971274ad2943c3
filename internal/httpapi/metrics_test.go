package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMetricsMiddleware_CountsByStatus(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	rr := httptest.NewRecorder()
	MetricsMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/brew", nil))
	if rr.Code != http.StatusTeapot {
		t.Fatalf("status=%d", rr.Code)
	}

	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", w.Code)
	}
	want := `recipebot_http_requests_total{method="GET",path="/brew",status="418"} 1`
	if !bytes.Contains(w.Body.Bytes(), []byte(want)) {
		t.Fatalf("missing %q in /metrics", want)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("recipebot_http_request_duration_seconds")) {
		t.Fatalf("missing duration histogram in /metrics")
	}
}
