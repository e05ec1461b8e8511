// Package metrics defines and registers all custom Prometheus metrics for the
// identity service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry via promauto at
// package load time; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// Result label values shared by the counters below.
const (
	ResultSuccess            = "success"
	ResultInvalidCredentials = "invalid_credentials"
	ResultDuplicate          = "duplicate"
	ResultInvalid            = "invalid"
	ResultMismatch           = "mismatch"
	ResultNotFound           = "not_found"
	ResultExpired            = "expired"
	ResultBadSignature       = "invalid_signature"
	ResultMalformed          = "malformed"
	ResultError              = "error"
)

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "success", "invalid_credentials", or "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// SignUpsTotal counts registration attempts.
// Label:
//   - result: "success", "duplicate", "invalid", or "error"
var SignUpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of sign-up attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer token verifications performed by the
// authentication middleware.
// Label:
//   - result: "success", "expired", "invalid_signature", or "malformed"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of token verifications, by result.",
	},
	[]string{"result"},
)

// PasswordUpdatesTotal counts password-change attempts.
// Label:
//   - result: "success", "mismatch", "invalid_credentials", "not_found", or "error"
var PasswordUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_updates_total",
		Help:      "Total number of password update attempts, by result.",
	},
	[]string{"result"},
)

// SignInDuration measures end-to-end sign-in latency. The bcrypt comparison
// dominates this histogram, so it makes a misconfigured cost factor visible.
var SignInDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "signin_duration_seconds",
		Help:      "Duration of sign-in requests, including password verification.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
)
