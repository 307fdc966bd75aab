package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AuthEvents counts authentication attempts by event (login, register,
	// forgot-password, reset-password) and outcome (success, failure, rate_limited).
	AuthEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_events_total",
			Help: "Total number of authentication events by outcome",
		},
		[]string{"event", "outcome"},
	)
)

const (
	OutcomeSuccess     = "success"
	OutcomeFailure     = "failure"
	OutcomeRateLimited = "rate_limited"
)

var (
	// uuid segments (products, files) and numeric ids
	idPathSegment = regexp.MustCompile(`/([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}|[0-9]+)(/|$)`)
	// reset tokens are unbounded cardinality and secret
	resetTokenPath = regexp.MustCompile(`^/reset-password/[^/]+`)
	initOnce       sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, AuthEvents)
	})
}

// NormalizePath reduces cardinality by replacing id path segments with {id}.
// E.g. /api/products/3f0c...-... -> /api/products/{id}.
func NormalizePath(path string) string {
	path = resetTokenPath.ReplaceAllString(path, "/reset-password/{token}")
	return idPathSegment.ReplaceAllString(path, "/{id}$2")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordAuth increments the auth event counter.
func RecordAuth(event, outcome string) {
	AuthEvents.WithLabelValues(event, outcome).Inc()
}
