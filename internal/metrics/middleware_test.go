package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/content/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodGet, "/content/"+id, http.NoBody)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/content/{id}", "200"))
	if val < 3 {
		t.Errorf("expected http_requests_total{route=/content/{id}} >= 3, got %f", val)
	}
	if testutil.ToFloat64(httpRequestsInFlight) != 0 {
		t.Errorf("in-flight gauge should return to 0, got %f", testutil.ToFloat64(httpRequestsInFlight))
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/ai-search", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	r.Post("/ai-assistant", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	tests := []struct {
		path   string
		status string
	}{
		{"/ai-search", "400"},
		{"/ai-assistant", "200"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.path, http.NoBody)
			r.ServeHTTP(httptest.NewRecorder(), req)

			val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", tc.path, tc.status))
			if val < 1 {
				t.Errorf("expected requests_total for %s/%s >= 1, got %f", tc.path, tc.status, val)
			}
		})
	}
}

func TestNormalizeRoute(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unknown"},
		{"/*", "unknown"},
		{"/content/{id}", "/content/{id}"},
		{"/health", "/health"},
	}
	for _, tc := range tests {
		if got := normalizeRoute(tc.input); got != tc.expected {
			t.Errorf("normalizeRoute(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestRankMetrics_Observe(t *testing.T) {
	RankMatches.WithLabelValues("test").Observe(3)
	if n := testutil.CollectAndCount(RankMatches); n == 0 {
		t.Error("expected rank_matches to have series")
	}
}
