// Package metrics defines and registers all custom Prometheus metrics for
// the passport API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "passport"

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

// TokenVerificationsTotal counts token verifications performed by the
// authentication middleware and the refresh endpoint.
// Labels:
//   - token_type: "access" or "refresh"
//   - result: "valid" or "invalid"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of token verifications, by token type and result.",
	},
	[]string{"token_type", "result"},
)

// AuthzDecisionsTotal counts authorization guard decisions.
// Label:
//   - result: "allowed", "bypassed" (admin role) or "denied"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization decisions, by result.",
	},
	[]string{"result"},
)

// BootstrapRunsTotal counts bootstrap executions.
// Label:
//   - result: "ok" or "error"
var BootstrapRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bootstrap_runs_total",
		Help:      "Total number of bootstrap runs, by result.",
	},
	[]string{"result"},
)
