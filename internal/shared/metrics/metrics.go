package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "career"

// Private registry so tests and the /metrics endpoint only see this service's series.
var registry = prometheus.NewRegistry()

var (
	planRequestsTotal = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "plan_requests_total",
		Help:      "Plan generation requests by outcome.",
	}, []string{"outcome"})

	planRepairTotal = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "plan_repair_total",
		Help:      "Recommendation records by the repair tier that produced them.",
	}, []string{"branch"})

	llmDuration = promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "llm_duration_seconds",
		Help:      "Latency of generation service calls.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
	})

	progressUpdatesTotal = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "progress_updates_total",
		Help:      "Accepted progress ledger updates.",
	})

	progressChartsTotal = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "progress_charts_total",
		Help:      "Progress chart renders by outcome.",
	}, []string{"outcome"})

	httpRequestsTotal = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
)

func init() {
	registry.MustRegister(collectors.NewGoCollector())
}

// IncPlanOutcome counts a finished plan request (ok, invalid, upstream_error).
func IncPlanOutcome(outcome string) {
	planRequestsTotal.WithLabelValues(outcome).Inc()
}

// IncRepairBranch counts which repair tier produced a recommendation.
func IncRepairBranch(branch string) {
	planRepairTotal.WithLabelValues(branch).Inc()
}

// ObserveLLMDuration records a generation service call latency.
func ObserveLLMDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	llmDuration.Observe(d.Seconds())
}

// IncProgressUpdate counts an accepted ledger update.
func IncProgressUpdate() {
	progressUpdatesTotal.Inc()
}

// IncChartRender counts a chart request (ok, no_data, unauthenticated, error).
func IncChartRender(outcome string) {
	progressChartsTotal.WithLabelValues(outcome).Inc()
}

// ObserveHTTPRequest counts a completed HTTP request. route should be the
// registered pattern, not the raw path, to keep cardinality bounded.
func ObserveHTTPRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
