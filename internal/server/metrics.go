package server

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "guidekit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "guidekit",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	resolves = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "guidekit",
			Name:      "resolves_total",
			Help:      "Total resolve calls served.",
		},
	)
	cacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "guidekit",
			Name:      "resolve_cache_hits_total",
			Help:      "Resolve calls served from the resolution cache.",
		},
	)
	manifestReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "guidekit",
			Name:      "manifest_reloads_total",
			Help:      "Manifest reload attempts by result.",
		},
		[]string{"result"},
	)
)

// RegisterMetrics registers the server's collectors with the default
// prometheus registry. Safe to call more than once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, resolves, cacheHits, manifestReloads)
	})
}

func recordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

func recordReload(err error) {
	RegisterMetrics()
	result := "ok"
	if err != nil {
		result = "error"
	}
	manifestReloads.WithLabelValues(result).Inc()
}
