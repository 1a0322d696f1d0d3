// Package metrics defines and registers all custom Prometheus metrics for the
// FlatFinder API. Metrics are registered with the default registry on import
// and exposed on /metrics together with the echo request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "flatfinder"

// ── Authorization ─────────────────────────────────────────────────────────────

// AuthzDecisionsTotal counts authorization decisions.
// Labels:
//   - rule: rule name (e.g. "listing.update")
//   - outcome: "allowed" or "denied"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization decisions, by rule and outcome.",
	},
	[]string{"rule", "outcome"},
)

// ── Accounts ──────────────────────────────────────────────────────────────────

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Cleanup workers ───────────────────────────────────────────────────────────

// CleanupJobsTotal counts processed cascade jobs.
// Labels:
//   - kind: "user_deleted" or "listing_deleted"
//   - result: "ok" or "error"
var CleanupJobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cleanup_jobs_total",
		Help:      "Total number of cleanup jobs processed, by kind and result.",
	},
	[]string{"kind", "result"},
)

// CleanupDuration measures how long one cleanup job takes.
var CleanupDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cleanup_duration_seconds",
		Help:      "Duration of cleanup jobs from dequeue to completion.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// CleanupQueueDepth tracks jobs waiting in each worker channel.
var CleanupQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cleanup_queue_depth",
		Help:      "Current number of jobs pending in each cleanup worker channel.",
	},
	[]string{"worker_id"},
)
