package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(planRequestsTotal.WithLabelValues("ok"))
	IncPlanOutcome("ok")
	assert.Equal(t, before+1, testutil.ToFloat64(planRequestsTotal.WithLabelValues("ok")))

	before = testutil.ToFloat64(planRepairTotal.WithLabelValues("default"))
	IncRepairBranch("default")
	assert.Equal(t, before+1, testutil.ToFloat64(planRepairTotal.WithLabelValues("default")))

	before = testutil.ToFloat64(progressUpdatesTotal)
	IncProgressUpdate()
	assert.Equal(t, before+1, testutil.ToFloat64(progressUpdatesTotal))
}

func TestHandlerRendersPrometheusText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncChartRender("ok")
	ObserveLLMDuration(1500 * time.Millisecond)
	ObserveHTTPRequest(http.MethodGet, "", http.StatusNotFound)

	r := gin.New()
	r.GET("/metrics", Handler())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	for _, name := range []string{
		"career_progress_charts_total",
		"career_llm_duration_seconds_bucket",
		`career_http_requests_total{method="GET",route="unmatched",status="404"}`,
	} {
		assert.True(t, strings.Contains(body, name), "missing %s", name)
	}
}
