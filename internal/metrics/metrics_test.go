package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGateway(t *testing.T) {
	m := NewMetrics()

	m.ObserveGateway("ListStands", time.Now(), nil)
	m.ObserveGateway("ListStands", time.Now(), errors.New("boom"))
	m.ObserveGateway("ListStands", time.Now(), nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.GatewayRequests.WithLabelValues("ListStands", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayRequests.WithLabelValues("ListStands", "error")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveGateway("DeleteStand", time.Now(), nil)
		m.ObserveViewFetch("stands", false)
		m.SetGatewayUp(true)
	})
}

func TestSetGatewayUp(t *testing.T) {
	m := NewMetrics()
	m.SetGatewayUp(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayUp))
	m.SetGatewayUp(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.GatewayUp))
}

func TestMiddleware_LabelsByRouteTemplate(t *testing.T) {
	m := NewMetrics()
	router := mux.NewRouter()
	router.Use(m.Middleware)
	router.HandleFunc("/stands/{id}/delete", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)
	router.Handle("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stands/s1/delete", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/stands/{id}/delete", "GET", "418")))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "market_stand_admin_http_requests_total"))
}
