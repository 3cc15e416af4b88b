package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "code"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "code"},
	)

	// Publication notification pipeline
	notificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_notifications_total",
			Help: "Ledger rows written per content kind and outcome status.",
		},
		[]string{"kind", "status"},
	)
	notificationsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_notifications_skipped_total",
			Help: "Dispatches skipped because a ledger row already exists.",
		},
		[]string{"kind"},
	)

	// Newsletter provider
	providerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsletter_provider_requests_total",
			Help: "Outbound newsletter provider calls.",
		},
		[]string{"provider", "operation", "outcome"},
	)
	providerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsletter_provider_request_duration_seconds",
			Help:    "Newsletter provider call duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "operation"},
	)
)

var registerOnce sync.Once

// Register registers all collectors on the default registry.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			httpDuration,
			notificationsTotal,
			notificationsSkipped,
			providerRequests,
			providerDuration,
		)
	})
}

// Handler exposes the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveHTTPRequest(method, route, code string, d time.Duration) {
	httpRequests.WithLabelValues(method, route, code).Inc()
	httpDuration.WithLabelValues(method, route, code).Observe(d.Seconds())
}

func IncNotification(kind, status string) {
	notificationsTotal.WithLabelValues(kind, status).Inc()
}

func IncNotificationSkipped(kind string) {
	notificationsSkipped.WithLabelValues(kind).Inc()
}

func ObserveProviderRequest(provider, operation string, err error, d time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	providerRequests.WithLabelValues(provider, operation, outcome).Inc()
	providerDuration.WithLabelValues(provider, operation).Observe(d.Seconds())
}

func fmtInt(n int64) string { return strconv.FormatInt(n, 10) }
