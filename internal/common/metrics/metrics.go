// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DispatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_dispatches_total",
			Help: "Total number of dispatch attempts by channel and status",
		},
		[]string{"channel", "status"},
	)

	MatchesComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_matches_computed_total",
			Help: "Total number of opportunity/contact matches produced per feed",
		},
		[]string{"feed"},
	)

	OverrideCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_override_commands_total",
			Help: "Total number of override console commands by outcome",
		},
		[]string{"outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"route", "method", "status"},
	)
)
