// Package telemetry records Prometheus metrics for marketplace calls, both
// on the client side (via gateway hooks) and for the mock backend's handlers.
package telemetry

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hongminglow/ubu-lite/internal/gateway"
)

// Collector holds the client-side call metrics.
type Collector struct {
	inflight prometheus.Gauge
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewCollector creates the collectors and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ubu",
			Subsystem: "client",
			Name:      "inflight_requests",
			Help:      "Marketplace calls currently awaiting a response.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ubu",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Marketplace calls that received a response.",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ubu",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Time from sending a marketplace call to reading its body.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "path"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ubu",
			Subsystem: "client",
			Name:      "transport_failures_total",
			Help:      "Marketplace calls that failed before a response arrived.",
		}, []string{"method", "path"}),
	}
	reg.MustRegister(c.inflight, c.requests, c.duration, c.failures)
	return c
}

// Hooks returns gateway hooks feeding this collector.
func (c *Collector) Hooks() gateway.Hooks {
	return gateway.Hooks{
		OnRequest: func(context.Context, *http.Request) {
			c.inflight.Inc()
		},
		OnResponse: func(_ context.Context, req *http.Request, resp *http.Response, d time.Duration) {
			c.inflight.Dec()
			path := CanonicalPath(req.URL.Path)
			c.requests.WithLabelValues(req.Method, path, strconv.Itoa(resp.StatusCode)).Inc()
			c.duration.WithLabelValues(req.Method, path).Observe(d.Seconds())
		},
		OnError: func(_ context.Context, req *http.Request, _ error) {
			c.inflight.Dec()
			c.failures.WithLabelValues(req.Method, CanonicalPath(req.URL.Path)).Inc()
		},
	}
}

// CanonicalPath replaces numeric path segments with {id} to keep label
// cardinality bounded.
func CanonicalPath(path string) string {
	if path == "" {
		return "/"
	}
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if _, err := strconv.ParseInt(p, 10, 64); err == nil {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}
