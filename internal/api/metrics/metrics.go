// Package metrics defines and registers all custom Prometheus metrics of the
// resident portal. It is the single source of truth for metric names, labels
// and help strings. Metrics register with the default registry on import.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bluemoon/resident-portal/internal/core/domain"
)

const namespace = "portal"

// ── Navigation metrics ───────────────────────────────────────────────────────

// NavigationsTotal counts settled navigations.
// Labels:
//   - route: the route pattern (e.g. "/dashboard/fees/info/:feeId")
//   - state: the terminal state ("rendered", "redirected", "discarded")
var NavigationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "navigations_total",
		Help:      "Total number of navigations, by route pattern and terminal state.",
	},
	[]string{"route", "state"},
)

// NavigationDuration measures guard plus loader time of a navigation.
// Label:
//   - route: the route pattern
var NavigationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "navigation_duration_seconds",
		Help:      "Duration of guard evaluation and data loading per navigation.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route"},
)

// ── Command metrics ──────────────────────────────────────────────────────────

// CommandsTotal counts commands issued to the backend.
// Labels:
//   - command: the command name (e.g. "get_fees")
//   - result: "ok", "unauthenticated" or "error"
var CommandsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_total",
		Help:      "Total number of backend commands, by command and result.",
	},
	[]string{"command", "result"},
)

// CommandDuration measures backend round trips.
// Label:
//   - command: the command name
var CommandDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "command_duration_seconds",
		Help:      "Duration of backend commands including token refresh.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"command"},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login form submissions.
// Label:
//   - result: "success", "failed", "inactive", "invalid" or "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// NoticesTotal counts flashed notices.
// Label:
//   - variant: "default" or "destructive"
var NoticesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notices_total",
		Help:      "Total number of notices queued for display.",
	},
	[]string{"variant"},
)

// AuditDroppedTotal counts navigation audit records dropped on a full queue.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of navigation audit records dropped.",
	},
)

// ObserveNavigation records a settled navigation.
func ObserveNavigation(route, state string, elapsed time.Duration) {
	NavigationsTotal.WithLabelValues(route, state).Inc()
	NavigationDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveCommand records a backend command; it matches backend.Hook.
func ObserveCommand(command string, elapsed time.Duration, err error) {
	CommandsTotal.WithLabelValues(command, commandResult(err)).Inc()
	CommandDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}

func commandResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotAuthenticated):
		return "unauthenticated"
	default:
		return "error"
	}
}
