// Package metrics holds the service's domain counters. HTTP request metrics
// come from fiberprometheus in the server package.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "smart_reviewer"

var (
	// FeedbackSubmitted counts stored reviews by rating
	FeedbackSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_submitted_total",
		Help:      "Customer reviews stored, by rating.",
	}, []string{"rating"})

	// AnalyticsEvents counts recorded QR scans and redirects
	AnalyticsEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analytics_events_total",
		Help:      "Daily analytics increments, by event kind.",
	}, []string{"kind"})

	// Logins counts dashboard login attempts by outcome
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Business dashboard login attempts, by result.",
	}, []string{"result"})

	// StoreErrors counts failures surfaced by the data-access layer, by kind
	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_errors_total",
		Help:      "Data-access failures returned to handlers, by error kind.",
	}, []string{"kind"})
)
