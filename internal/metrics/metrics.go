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

	// AuthAttempts counts register and login attempts by outcome.
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_auth_attempts_total",
			Help: "Register and login attempts by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	// ContentRows holds the last refreshed row count per table (users, posts, comments).
	ContentRows = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "blog_content_rows",
			Help: "Row count per table at the last stats refresh",
		},
		[]string{"table"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, AuthAttempts, ContentRows)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /posts/123/comments -> /posts/{id}/comments, /users/45/posts -> /users/{id}/posts.
func NormalizePath(path string) string {
	// Run twice: adjacent numeric segments share the separating slash.
	path = numericPathSegment.ReplaceAllString(path, "/{id}$1")
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncAuth records one register or login attempt; outcome is e.g. success, conflict, invalid.
func IncAuth(action, outcome string) {
	AuthAttempts.WithLabelValues(action, outcome).Inc()
}

// SetContentRows publishes the latest table sizes.
func SetContentRows(users, posts, comments int64) {
	ContentRows.WithLabelValues("users").Set(float64(users))
	ContentRows.WithLabelValues("posts").Set(float64(posts))
	ContentRows.WithLabelValues("comments").Set(float64(comments))
}
