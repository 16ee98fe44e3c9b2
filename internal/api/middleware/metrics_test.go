package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"loan-offers/internal/infrastructure/monitoring"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware())
	r.Get("/customers/{customerID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	counter := monitoring.HTTP.RequestsTotal.WithLabelValues(http.MethodGet, "/customers/{customerID}", "200")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/"+id, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, before+3, testutil.ToFloat64(counter))
}

func TestMetricsMiddleware_Unmatched(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})

	counter := monitoring.HTTP.RequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
