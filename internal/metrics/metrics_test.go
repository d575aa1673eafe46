package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveStage(t *testing.T) {
	before := testutil.ToFloat64(StageOutcomes.WithLabelValues("retrieve", "degraded"))
	ObserveStage("retrieve", "degraded", 150*time.Millisecond)
	after := testutil.ToFloat64(StageOutcomes.WithLabelValues("retrieve", "degraded"))
	if after-before != 1 {
		t.Errorf("counter delta = %v, want 1", after-before)
	}
}

func TestFilter(t *testing.T) {
	h := Filter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/search-news", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
	if n := testutil.CollectAndCount(httpRequestDuration); n == 0 {
		t.Error("no http duration samples collected")
	}
}

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"/api/generate-content": "/api/generate-content",
		"/api/unknown":          "/api/other",
		"/static/app.js":        "other",
		"/metrics":              "/metrics",
	}
	for in, want := range cases {
		if got := normalizePath(in); got != want {
			t.Errorf("normalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}
