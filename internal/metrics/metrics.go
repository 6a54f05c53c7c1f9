// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Collectors are registered once at package load.
var (
	// Poll cycle metrics.
	PollCyclesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentry_poll_cycles_total",
			Help: "Total number of completed sensor poll cycles",
		},
	)

	PollCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentry_poll_cycle_duration_seconds",
			Help:    "Duration of a sensor poll cycle in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	// Store gateway metrics.
	StoreReadFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentry_store_read_failures_total",
			Help: "Total number of state document reads that degraded to defaults",
		},
	)

	StoreWriteFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentry_store_write_failures_total",
			Help: "Total number of state document writes that were dropped",
		},
	)

	// Notification metrics.
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentry_notifications_total",
			Help: "Total number of alert notifications produced, by kind",
		},
		[]string{"kind"},
	)

	DeliveryFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentry_delivery_failures_total",
			Help: "Total number of failed chat message deliveries",
		},
	)

	// Command metrics.
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentry_commands_total",
			Help: "Total number of executed operator commands, by name",
		},
		[]string{"command"},
	)

	// Recorder metrics.
	SnapshotRecordFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentry_snapshot_record_failures_total",
			Help: "Total number of snapshot points that failed to persist",
		},
	)
)
