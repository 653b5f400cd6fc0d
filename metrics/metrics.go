package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsTotal counts registration attempts by event and outcome
	// ("success" or "rejected").
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nexus",
		Name:      "registrations_total",
		Help:      "Registration attempts by event and outcome.",
	}, []string{"event", "status"})

	// HTTPRequestDuration observes handler latency by route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nexus",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
