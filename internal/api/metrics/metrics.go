// Package metrics defines all custom Prometheus metrics for the exercise
// tracker API. It is the single source of truth for metric names, labels,
// and help strings; registration happens via promauto at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fittrack"

// ── Core operation metrics ───────────────────────────────────────────────────

// UsersCreatedTotal counts successfully created users.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
)

// ExercisesLoggedTotal counts successfully appended exercises.
var ExercisesLoggedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exercises_logged_total",
		Help:      "Total number of exercises appended to user logs.",
	},
)

// LogQueriesTotal counts log retrievals.
// Label:
//   - filtered: "true" when a from/to/limit parameter was supplied
var LogQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "log_queries_total",
		Help:      "Total number of exercise log queries, by whether filters were applied.",
	},
	[]string{"filtered"},
)

// ── Audit pipeline metrics ───────────────────────────────────────────────────

// AuditQueueDepth tracks the events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsWrittenTotal counts audit events persisted successfully.
var AuditEventsWrittenTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_written_total",
		Help:      "Total number of audit events written to the store.",
	},
)

// AuditEventsErrorsTotal counts audit events that failed to persist.
var AuditEventsErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_errors_total",
		Help:      "Total number of audit events whose write failed.",
	},
)

// AuditEventsDroppedTotal counts audit events dropped because a worker
// channel was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to a full worker queue.",
	},
)
