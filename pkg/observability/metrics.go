// Package observability exposes the service's Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	WebhooksReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "runtimeexceptions",
		Subsystem: "webhook",
		Name:      "requests_total",
		Help:      "Number of webhook requests received, by outcome.",
	}, []string{"outcome"})

	EventsPersisted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "runtimeexceptions",
		Subsystem: "webhook",
		Name:      "events_persisted_total",
		Help:      "Number of push events written to the event log.",
	})

	JobsEnqueued = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "runtimeexceptions",
		Subsystem: "webhook",
		Name:      "jobs_enqueued_total",
		Help:      "Number of enrichment jobs published, by topic.",
	}, []string{"topic"})

	JobsProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "runtimeexceptions",
		Subsystem: "worker",
		Name:      "jobs_processed_total",
		Help:      "Number of enrichment jobs handled by the worker, by topic and outcome.",
	}, []string{"topic", "outcome"})
)

func init() {
	prometheus.MustRegister(WebhooksReceived, EventsPersisted, JobsEnqueued, JobsProcessed)
}
