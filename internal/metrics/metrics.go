package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "besfit",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "besfit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "besfit",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	ledgerMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "besfit",
			Subsystem: "ledger",
			Name:      "mutations_total",
			Help:      "Ledger and profile mutations by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	snapshotWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "besfit",
			Subsystem: "ledger",
			Name:      "snapshot_writes_total",
			Help:      "Snapshot persistence attempts by outcome.",
		},
		[]string{"outcome"},
	)

	catalogSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "besfit",
			Subsystem: "catalog",
			Name:      "items",
			Help:      "Number of items currently loaded in the catalog.",
		},
		[]string{"kind"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		ledgerMutations,
		snapshotWrites,
		catalogSize,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request count, latency and in-flight requests.
// Routes are labelled by their registered pattern so ids do not explode
// label cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := strings.ToUpper(c.Request.Method)
		httpRequests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordMutation counts a ledger/profile operation.
func RecordMutation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	ledgerMutations.WithLabelValues(operation, outcome).Inc()
}

// RecordSnapshotWrite counts a snapshot persistence attempt.
func RecordSnapshotWrite(outcome string) {
	snapshotWrites.WithLabelValues(outcome).Inc()
}

// SetCatalogSize publishes the number of loaded foods and exercises.
func SetCatalogSize(foods, exercises int) {
	catalogSize.WithLabelValues("food").Set(float64(foods))
	catalogSize.WithLabelValues("exercise").Set(float64(exercises))
}
