package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kimeasyn/settleup/internal/infrastructure/metrics"
)

func newTestMetrics(t *testing.T) *metrics.Metrics {
	t.Helper()

	// Swap the default registerer so repeated metric registration in
	// tests does not panic.
	orig := prometheus.DefaultRegisterer
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	t.Cleanup(func() { prometheus.DefaultRegisterer = orig })

	return metrics.New()
}

func TestMetricsMiddleware_RecordsRequests(t *testing.T) {
	m := newTestMetrics(t)
	mw := NewMetricsMiddleware(m)

	h := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/settlements", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	count := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/api/v1/settlements", "201"))
	if count != 1 {
		t.Fatalf("expected 1 recorded request, got %v", count)
	}
}

func TestRoutePattern_FallsBackToRawPath(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/no-chi-context", nil)
	if got := routePattern(req); got != "/no-chi-context" {
		t.Fatalf("expected raw path fallback, got %s", got)
	}
}
