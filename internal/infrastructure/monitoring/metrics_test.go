package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobLifecycleMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.JobSubmitted()
	m.JobSubmitted()
	m.JobFinished("completed")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.JobsSubmitted))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.JobsActive))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.JobsFinished.WithLabelValues("completed")))

	snap := m.Snapshot()
	assert.Equal(t, int64(1), snap.ActiveJobs)
	assert.Equal(t, int64(1), snap.CompletedJobs)
	assert.Zero(t, snap.FailedJobs)
}

func TestCacheLookupLabels(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordCacheLookup(true)
	m.RecordCacheLookup(false)
	m.RecordCacheLookup(false)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics(prometheus.NewRegistry())

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/jobs/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs/"+id, nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/jobs/:id", "404")))
	assert.Equal(t, int64(3), m.Snapshot().TotalErrors)
}

func TestTimerRecordsStage(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	NewTimer(m, "scrape").Stop("success")

	assert.Equal(t, 1, testutil.CollectAndCount(m.StageDuration, "sitecloner_stage_duration_seconds"))
}

func TestNilTimerMetrics(t *testing.T) {
	assert.NotPanics(t, func() {
		NewTimer(nil, "generate").Stop("failure")
	})
}
