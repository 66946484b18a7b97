// Package metrics defines and registers all custom Prometheus metrics for
// the marketplace admin gateway. It is the single source of truth for
// metric names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at package load;
// the /metrics endpoint exposes them alongside the HTTP middleware metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "admin_gateway"

// ── Access-control metrics ────────────────────────────────────────────────────

// EdgeDecisionsTotal counts edge gatekeeper outcomes.
// Label:
//   - action: "pass", "redirect_login", or "redirect_dashboard"
var EdgeDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "edge_decisions_total",
		Help:      "Total number of edge gatekeeper decisions, by action taken.",
	},
	[]string{"action"},
)

// GuardDecisionsTotal counts route guard outcomes on protected pages.
// Labels:
//   - category: the route category being guarded (e.g. "user-management")
//   - result: "granted", "denied", or "invalid_role"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by category and result.",
	},
	[]string{"category", "result"},
)

// SessionResolutionsTotal counts identity resolution attempts.
// Label:
//   - result: "resolved", "unauthenticated" (no credential), or "invalid"
//     (credential present but rejected upstream)
var SessionResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolutions_total",
		Help:      "Total number of session identity resolutions, by result.",
	},
	[]string{"result"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestDuration measures round trips to the marketplace API.
// Label:
//   - op: upstream operation name (e.g. "profile", "list_users")
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the upstream marketplace API.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"op"},
)

// UpstreamErrorsTotal counts upstream calls that failed at the transport
// level or returned a 5xx.
// Label:
//   - op: upstream operation name
var UpstreamErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_errors_total",
		Help:      "Total number of failed requests to the upstream marketplace API.",
	},
	[]string{"op"},
)

// ── Directory metrics ─────────────────────────────────────────────────────────

// RosterRollbacksTotal counts optimistic roster mutations that were rolled
// back after the upstream rejected the operation.
// Label:
//   - op: "create", "update", or "delete"
var RosterRollbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_rollbacks_total",
		Help:      "Total number of optimistic roster mutations rolled back on failure.",
	},
	[]string{"op"},
)
