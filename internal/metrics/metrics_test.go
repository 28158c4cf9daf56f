package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	c := NewCollector("wishkeeper")

	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/api/items", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/items?id=123", nil))
	}

	got := testutil.ToFloat64(c.HTTPRequests.WithLabelValues(http.MethodGet, "/api/items", "418"))
	assert.Equal(t, float64(3), got)
}

func TestObserveStore(t *testing.T) {
	c := NewCollector("wishkeeper")

	c.ObserveStore("get", time.Now(), nil)
	c.ObserveStore("update", time.Now(), errors.New("boom"))
	c.IncStoreConflict()

	assert.Equal(t, float64(1), testutil.ToFloat64(c.StoreOperations.WithLabelValues("get", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.StoreOperations.WithLabelValues("update", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.StoreConflicts))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	c.ObserveStore("get", time.Now(), nil)
	c.IncStoreConflict()
	c.IncLogin("success")
	c.IncExtraction("failure")
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector("wishkeeper")
	c.IncLogin("success")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `wishkeeper_logins_total{outcome="success"} 1`))
}
