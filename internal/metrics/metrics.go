// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// RequestsTotal counts HTTP requests by method, route template and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration records request latency in seconds.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AuthOutcomesTotal counts identity resolutions and logins by outcome
	// (ok, anonymous, unauthenticated, forbidden, invalid_credentials, error).
	AuthOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_auth_outcomes_total",
			Help: "Authentication outcomes",
		},
		[]string{"stage", "outcome"},
	)

	// RateLimitRejectedTotal counts requests rejected by the token bucket.
	RateLimitRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_ratelimit_rejected_total",
			Help: "Rate limit rejections",
		},
		[]string{"route"},
	)

	// EventsPublishedTotal counts inbox events handed to the broker.
	EventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_events_published_total",
			Help: "Published domain events",
		},
		[]string{"type", "result"},
	)

	// UploadsTotal counts media uploads by result.
	UploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_media_uploads_total",
			Help: "Media uploads",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		AuthOutcomesTotal,
		RateLimitRejectedTotal,
		EventsPublishedTotal,
		UploadsTotal,
	)
}

// StatusClass folds a status code into 2xx, 4xx and so on.
func StatusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	case code >= 200:
		return "2xx"
	}
	return "1xx"
}
