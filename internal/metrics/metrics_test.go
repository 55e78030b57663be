package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentLabelsByRouteTemplate(t *testing.T) {
	m := New()

	r := mux.NewRouter()
	r.Use(m.Instrument)
	r.HandleFunc("/players/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/players/"+id, nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/players/{id}", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.RateLimited()
	m.RateLimited()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "playerbase_http_rate_limited_total 2")
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
