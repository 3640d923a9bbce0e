package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request counter
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTP request duration histogram
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	// Geocoding strategy attempts, labeled by strategy name and outcome
	// (hit, miss, error)
	GeocodeAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_attempts_total",
			Help: "Postal-code geocoding attempts per strategy",
		},
		[]string{"strategy", "outcome"},
	)

	// External API calls (googlemaps, twilio, deepseek, postcodesio,
	// nominatim) by outcome
	ExternalCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "external_api_calls_total",
			Help: "Calls made to external services",
		},
		[]string{"service", "outcome"},
	)

	// Provider cache lookups by result (hit, miss)
	ProviderCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_cache_lookups_total",
			Help: "Provider searches answered from the local cache vs. live search",
		},
		[]string{"result"},
	)

	// SMS messages by direction (inbound, outbound) and outcome
	SMSMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sms_messages_total",
			Help: "SMS messages processed",
		},
		[]string{"direction", "outcome"},
	)

	// Rate-limited requests
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)
