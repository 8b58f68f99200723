// Package metrics defines and registers all custom Prometheus metrics for the
// Food Critique web client. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry at package init through
// promauto, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "critique"

// ── Remote API metrics ────────────────────────────────────────────────────────

// RemoteRequestsTotal counts calls made to the restaurant-review API.
// Labels:
//   - method: HTTP method
//   - route: path with ids collapsed (e.g. "/restaurant/:id")
//   - code: response status, or "error" when no response arrived
var RemoteRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "remote_requests_total",
		Help:      "Total number of calls to the remote API, by route and status.",
	},
	[]string{"method", "route", "code"},
)

// RemoteRequestDuration measures round-trip latency of remote API calls.
var RemoteRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "remote_request_duration_seconds",
		Help:      "Latency of calls to the remote API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsActive tracks visitor sessions currently held by the registry.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Number of visitor sessions held in memory.",
	},
)

// SessionTransitionsTotal counts session state machine transitions.
// Labels:
//   - to: the state entered ("authenticated", "unauthenticated")
//   - cause: what triggered it ("bootstrap", "login", "signup", "logout", "unauthorized")
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session state transitions.",
	},
	[]string{"to", "cause"},
)

// NotificationsTotal counts transient notifications raised to visitors.
var NotificationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of transient notifications raised.",
	},
)
