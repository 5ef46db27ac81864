package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "inventory",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	LowStockAlerts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "low_stock_alerts_total",
		Help:      "Low-stock alerts raised, by delivery channel.",
	}, []string{"channel"})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "rate_limited_requests_total",
		Help:      "Requests rejected by the per-client rate limiter.",
	})
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
