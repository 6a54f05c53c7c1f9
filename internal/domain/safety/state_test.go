package safety

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// advanceAll feeds a sequence of classifications through Advance and
// collects every produced notification.
func advanceAll(classifications []Classification) ([]Notification, AlertState) {
	var (
		all   []Notification
		state AlertState
	)

	for _, c := range classifications {
		var notes []Notification

		notes, state = Advance(c, state)
		all = append(all, notes...)
	}

	return all, state
}

// TestAdvance_Idempotence verifies the same classification twice in a row
// yields zero notifications on the second call.
func TestAdvance_Idempotence(t *testing.T) {
	t.Parallel()

	c := Classification{Zone: ZoneWarning, Overcurrent: true, TempHigh: true, DistanceM: 7.5, CurrentA: 3, TemperatureC: 60}

	notes, state := Advance(c, AlertState{})
	require.Len(t, notes, 3)

	notes, state = Advance(c, state)
	require.Empty(t, notes)
	require.Equal(t, ZoneWarning, state.LastZone)
	require.True(t, state.OvercurrentActive)
	require.True(t, state.TempHighActive)
}

// TestAdvance_DirectJumpRule verifies none->danger emits only the danger
// message and danger->none emits nothing.
func TestAdvance_DirectJumpRule(t *testing.T) {
	t.Parallel()

	notes, state := advanceAll([]Classification{
		{Zone: ZoneNone},
		{Zone: ZoneDanger, DistanceM: 3.21},
	})

	require.Len(t, notes, 1)
	require.Equal(t, KindZoneDanger, notes[0].Kind)
	require.Equal(t, "DANGER: human at 3.21 m — Relay OPEN & Earth rod ENGAGED", notes[0].Text)
	require.Equal(t, ZoneDanger, state.LastZone)

	notes, state = Advance(Classification{Zone: ZoneNone}, state)

	require.Empty(t, notes)
	require.Equal(t, ZoneNone, state.LastZone)
}

// TestAdvance_ZoneTransitions verifies warning and danger entries each emit
// exactly one message with the new zone's wording.
func TestAdvance_ZoneTransitions(t *testing.T) {
	t.Parallel()

	notes, _ := advanceAll([]Classification{
		{Zone: ZoneWarning, DistanceM: 8.00},
		{Zone: ZoneDanger, DistanceM: 4.50},
		{Zone: ZoneDanger, DistanceM: 4.40},
		{Zone: ZoneWarning, DistanceM: 9.10},
	})

	require.Len(t, notes, 3)
	require.Equal(t, "Warning: human at 8.00 m — Buzzer ON", notes[0].Text)
	require.Equal(t, KindZoneDanger, notes[1].Kind)
	require.Equal(t, KindZoneWarning, notes[2].Kind)
	require.Equal(t, "Warning: human at 9.10 m — Buzzer ON", notes[2].Text)
}

// TestAdvance_FallingEdgeSilence verifies overcurrent false->true->false
// yields exactly one notification, on the rising edge.
func TestAdvance_FallingEdgeSilence(t *testing.T) {
	t.Parallel()

	notes, state := advanceAll([]Classification{
		{Overcurrent: false},
		{Overcurrent: true, CurrentA: 2.75},
		{Overcurrent: false},
	})

	require.Len(t, notes, 1)
	require.Equal(t, KindOvercurrent, notes[0].Kind)
	require.Equal(t, "Overcurrent: 2.75 A — Relay opened", notes[0].Text)
	require.False(t, state.OvercurrentActive)

	// The next rising edge notifies again.
	notes, _ = Advance(Classification{Overcurrent: true, CurrentA: 3.10}, state)

	require.Len(t, notes, 1)
}

// TestAdvance_TemperatureRisingEdge mirrors the overcurrent policy for
// the temperature flag.
func TestAdvance_TemperatureRisingEdge(t *testing.T) {
	t.Parallel()

	notes, state := advanceAll([]Classification{
		{TempHigh: true, TemperatureC: 51.4},
		{TempHigh: true, TemperatureC: 55.0},
		{TempHigh: false},
	})

	require.Len(t, notes, 1)
	require.Equal(t, "HIGH TEMP: 51.4 °C", notes[0].Text)
	require.False(t, state.TempHighActive)
}

// TestAdvance_Independence verifies each detector fires regardless of what
// the other two are doing in the same cycle.
func TestAdvance_Independence(t *testing.T) {
	t.Parallel()

	state := AlertState{LastZone: ZoneDanger, TempHighActive: true}

	// Zone unchanged, temperature still high, only overcurrent rises.
	notes, next := Advance(Classification{
		Zone:         ZoneDanger,
		Overcurrent:  true,
		TempHigh:     true,
		DistanceM:    2,
		CurrentA:     4,
		TemperatureC: 70,
	}, state)

	require.Len(t, notes, 1)
	require.Equal(t, KindOvercurrent, notes[0].Kind)
	require.Equal(t, ZoneDanger, next.LastZone)
	require.True(t, next.TempHighActive)

	// Temperature rises while the zone clears silently.
	notes, next = Advance(Classification{TempHigh: true, TemperatureC: 52.0}, AlertState{LastZone: ZoneWarning})

	require.Len(t, notes, 1)
	require.Equal(t, KindTempHigh, notes[0].Kind)
	require.Equal(t, ZoneNone, next.LastZone)
}
