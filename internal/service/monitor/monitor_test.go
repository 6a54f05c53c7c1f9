package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/transformer-sentry/internal/domain/safety"
)

// scriptedGateway serves a programmed sequence of state documents.
type scriptedGateway struct {
	// docs is the per-cycle document sequence; the last entry repeats.
	docs []map[string]any
	// reads counts Read calls.
	reads int
}

func (g *scriptedGateway) Read(context.Context) *safety.Snapshot {
	i := g.reads
	if i >= len(g.docs) {
		i = len(g.docs) - 1
	}

	g.reads++

	if i < 0 {
		return &safety.Snapshot{}
	}

	return safety.SnapshotFromDocument(g.docs[i])
}

func (g *scriptedGateway) Write(context.Context, map[string]any) {}

// collectingBroadcaster records broadcast texts.
type collectingBroadcaster struct {
	// texts collects every broadcast message in order.
	texts []string
}

func (b *collectingBroadcaster) Broadcast(_ context.Context, text string) {
	b.texts = append(b.texts, text)
}

// testThresholds are the limits used across the monitor tests.
func testThresholds() safety.Thresholds {
	return safety.Thresholds{
		CurrentThresholdA: 2.0,
		TempThresholdC:    50.0,
		WarningZoneCM:     1000,
		DangerZoneCM:      500,
	}
}

// TestMonitor_EdgeTriggeredCycles drives cycles directly and verifies exactly
// one notification per transition, never per tick.
func TestMonitor_EdgeTriggeredCycles(t *testing.T) {
	t.Parallel()

	gateway := &scriptedGateway{docs: []map[string]any{
		{},                           // quiet
		{"distance_cm": 300.0},       // enters danger directly
		{"distance_cm": 280.0},       // still danger, no repeat
		{"distance_cm": float64(-1)}, // sensor glitch, zone resets silently
		{"current_a": 2.5},           // overcurrent rising edge
		{"current_a": 2.5},           // still high, no repeat
	}}
	broadcaster := new(collectingBroadcaster)

	m := New(gateway, broadcaster, nil, testThresholds(), time.Second)

	ctx := context.Background()
	for range gateway.docs {
		m.cycle(ctx)
	}

	require.Equal(t, []string{
		"DANGER: human at 3.00 m — Relay OPEN & Earth rod ENGAGED",
		"Overcurrent: 2.50 A — Relay opened",
	}, broadcaster.texts)
	require.Equal(t, safety.ZoneNone, m.state.LastZone)
	require.True(t, m.state.OvercurrentActive)
}

// TestMonitor_StateCommittedAfterBroadcast verifies the alert state reflects
// the latest completed cycle.
func TestMonitor_StateCommittedAfterBroadcast(t *testing.T) {
	t.Parallel()

	gateway := &scriptedGateway{docs: []map[string]any{
		{"distance_cm": 900.0, "temperature_c": 55.0},
	}}
	broadcaster := new(collectingBroadcaster)

	m := New(gateway, broadcaster, nil, testThresholds(), time.Second)
	m.cycle(context.Background())

	require.Len(t, broadcaster.texts, 2)
	require.Equal(t, safety.ZoneWarning, m.state.LastZone)
	require.True(t, m.state.TempHighActive)
	require.False(t, m.state.OvercurrentActive)
}

// TestMonitor_RunStopsBetweenCycles verifies Run exits on cancellation and
// keeps polling until then.
func TestMonitor_RunStopsBetweenCycles(t *testing.T) {
	t.Parallel()

	gateway := &scriptedGateway{docs: []map[string]any{{}}}
	m := New(gateway, new(collectingBroadcaster), nil, testThresholds(), time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})

	go func() {
		m.Run(ctx)
		close(done)
	}()

	// Let a few cycles pass, then stop.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poll loop did not stop after cancellation")
	}

	require.GreaterOrEqual(t, gateway.reads, 2)
}
