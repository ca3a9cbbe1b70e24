package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sign-in flow metrics
var (
	// LoginAttemptsTotal tracks sign-in attempts by outcome. Outcome is
	// "success" or the failure's error code.
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_login_attempts_total",
			Help: "Total admin sign-in attempts by outcome",
		},
		[]string{"outcome"},
	)

	// SessionPersistFailuresTotal tracks session persistence failures after
	// admission, which leave the client in an inconsistent state.
	SessionPersistFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "console_session_persist_failures_total",
			Help: "Total admin session persistence failures after admission",
		},
	)

	// RealtimeReconnectsTotal tracks background realtime reconnect outcomes.
	RealtimeReconnectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_realtime_reconnects_total",
			Help: "Total realtime reconnect attempts by status",
		},
		[]string{"status"},
	)
)
