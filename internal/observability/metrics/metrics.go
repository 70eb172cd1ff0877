// Package metrics exposes the process metrics registry. Each instance
// owns its registry so tests can construct one without colliding with
// the default global registerer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

var Module = fx.Provide(New)

type Metrics struct {
	registry *prometheus.Registry

	InvoicesRendered prometheus.Counter
	PagesPerInvoice  prometheus.Histogram
	LayoutWarnings   prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		InvoicesRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inkbill_invoices_rendered_total",
			Help: "Number of invoices rendered to PDF.",
		}),
		PagesPerInvoice: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "inkbill_pages_per_invoice",
			Help:    "Page count of paginated invoice documents.",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		LayoutWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inkbill_layout_warnings_total",
			Help: "Rows that exceeded the page row capacity.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inkbill_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inkbill_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		m.InvoicesRendered,
		m.PagesPerInvoice,
		m.LayoutWarnings,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Handler serves this registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware records request counts and latency per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
