package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for HTTP traffic.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewMetrics creates the collectors on a dedicated registry, alongside the Go
// runtime and process collectors.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
	}

	registry.MustRegister(
		m.requests,
		m.duration,
		m.inFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// WithMetrics records request count, latency and in-flight requests.
func (m *Metrics) WithMetrics(excludedRoutes ...string) fiber.Handler {
	excluded := make(map[string]struct{}, len(excludedRoutes))
	for _, r := range excludedRoutes {
		excluded[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if _, skip := excluded[c.Path()]; skip {
			return c.Next()
		}

		start := time.Now()

		m.inFlight.Inc()
		defer m.inFlight.Dec()

		renderChainError(c, c.Next())

		status := c.Response().StatusCode()
		route := routeLabel(c, status)
		method := c.Method()

		m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

		return nil
	}
}

// Handler serves the Prometheus exposition of the registry.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry}))
}

// routeLabel keeps label cardinality bounded: requests that matched no route
// share a single label instead of their raw path.
func routeLabel(c *fiber.Ctx, status int) string {
	if status == fiber.StatusNotFound {
		return "unmatched"
	}

	return c.Route().Path
}
