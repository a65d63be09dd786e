package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relgraph/infrastructure/observability"
)

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	collector := observability.NewCollector("relgraph")
	counter := collector.HTTPRequests.WithLabelValues(http.MethodGet, "/characters/{name}", "200")
	before := testutil.ToFloat64(counter)

	router := chi.NewRouter()
	router.Use(Metrics(collector))
	router.Get("/characters/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/characters/Arya", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// Counted under the route pattern, not the concrete path.
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMetrics_NilCollectorPassesThrough(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Metrics(nil))
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
