// Package monitor owns the sensor poll cycle: read the state document,
// classify it, advance the alert state and broadcast the resulting
// notifications. The loop is the sole owner of the alert state; nothing
// else reads or writes it.
package monitor

import (
	"context"
	"time"

	"github.com/oshokin/transformer-sentry/internal/domain/safety"
	"github.com/oshokin/transformer-sentry/internal/logger"
	"github.com/oshokin/transformer-sentry/internal/metrics"
	"github.com/oshokin/transformer-sentry/internal/store"
)

// Broadcaster fans a notification text out to the recipient set.
type Broadcaster interface {
	Broadcast(ctx context.Context, text string)
}

// Recorder persists a polled snapshot. Optional.
type Recorder interface {
	Record(ctx context.Context, s *safety.Snapshot)
}

// Monitor drives the periodic classification cycle.
type Monitor struct {
	// gateway serves the sensor state document.
	gateway store.Gateway
	// broadcaster delivers alert notifications.
	broadcaster Broadcaster
	// recorder archives snapshots; nil disables recording.
	recorder Recorder
	// thresholds parameterize classification.
	thresholds safety.Thresholds
	// interval is the poll cycle period.
	interval time.Duration
	// state is the alert state advanced once per cycle.
	// Only Run's goroutine touches it.
	state safety.AlertState
}

// New creates a poll driver. recorder may be nil.
func New(
	gateway store.Gateway,
	broadcaster Broadcaster,
	recorder Recorder,
	thresholds safety.Thresholds,
	interval time.Duration,
) *Monitor {
	return &Monitor{
		gateway:     gateway,
		broadcaster: broadcaster,
		recorder:    recorder,
		thresholds:  thresholds,
		interval:    interval,
	}
}

// Run polls at the fixed interval until the context is canceled.
// Cancellation is honored between cycles only, so a cycle either completes
// its notifications and state commit or never starts.
func (m *Monitor) Run(ctx context.Context) {
	logger.InfoKV(ctx, "Polling sensor state", "interval", m.interval.String())

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// First cycle immediately; the ticker paces the rest.
	m.cycle(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Poll loop stopped")

			return
		case <-ticker.C:
			m.cycle(ctx)
		}
	}
}

// cycle performs one read -> classify -> advance -> broadcast -> commit pass.
func (m *Monitor) cycle(ctx context.Context) {
	started := time.Now()

	snapshot := m.gateway.Read(ctx)

	if m.recorder != nil {
		m.recorder.Record(ctx, snapshot)
	}

	classification := safety.Classify(snapshot, m.thresholds)

	notes, next := safety.Advance(classification, m.state)
	for _, note := range notes {
		metrics.NotificationsTotal.WithLabelValues(string(note.Kind)).Inc()
		logger.InfoKV(ctx, "Alert notification", "kind", note.Kind, "text", note.Text)
		m.broadcaster.Broadcast(ctx, note.Text)
	}

	// Commit only after the notification decision is finalized.
	m.state = next

	metrics.PollCyclesTotal.Inc()
	metrics.PollCycleDuration.Observe(time.Since(started).Seconds())
}
