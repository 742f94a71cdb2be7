package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_FetchAndOutcomes(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r := New(reg)

	r.ObserveFetch("ok", 120*time.Millisecond)
	r.ObserveFetch("ok", 80*time.Millisecond)
	r.ObserveFetch("error", time.Second)
	r.RecordEntityOutcome("ok")
	r.RecordEntityOutcome("no_data")
	r.RecordEntityOutcome("no_data")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.fetches.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetches.WithLabelValues("error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.fetches.WithLabelValues("empty")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.outcomes.WithLabelValues("no_data")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.fetchDuration))
}

func TestRecorder_Middleware(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	r := New(reg)

	router := gin.New()
	router.Use(r.Middleware())
	router.GET("/insights", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	router.GET("/symbols", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		path string
	}{
		{path: "/insights?symbols=META"},
		{path: "/insights?symbols=AAPL"},
		{path: "/symbols"},
		{path: "/nope"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("/insights", "GET", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("/symbols", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("unmatched", "GET", "404")))
}

func TestNew_RegistersOnInjectedRegistry(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r := New(reg)
	r.RecordEntityOutcome("fault")

	n, err := testutil.GatherAndCount(reg, "stock_insight_entity_outcomes_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	// 同じレジストリへの二重登録はpanicする
	assert.Panics(t, func() { New(reg) })
}
