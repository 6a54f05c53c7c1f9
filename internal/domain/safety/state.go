package safety

import "fmt"

// NotificationKind labels a notification for logging and metrics.
type NotificationKind string

const (
	// KindZoneWarning marks entry into the warning band.
	KindZoneWarning NotificationKind = "zone_warning"
	// KindZoneDanger marks entry into the danger band.
	KindZoneDanger NotificationKind = "zone_danger"
	// KindOvercurrent marks a rising overcurrent edge.
	KindOvercurrent NotificationKind = "overcurrent"
	// KindTempHigh marks a rising high-temperature edge.
	KindTempHigh NotificationKind = "temp_high"
)

// Notification is a broadcast-ready alert message.
type Notification struct {
	// Kind labels the triggering edge.
	Kind NotificationKind
	// Text is the message delivered to every recipient.
	Text string
}

// AlertState is the last-reported classification. It is owned exclusively
// by the poll driver and advanced as a value, never shared.
type AlertState struct {
	// LastZone is the zone reported by the previous cycle.
	LastZone Zone
	// OvercurrentActive is set while the overcurrent condition holds.
	OvercurrentActive bool
	// TempHighActive is set while the high-temperature condition holds.
	TempHighActive bool
}

// Advance runs the three edge detectors against the classification and
// returns the notifications plus the next state. Each detector emits at most
// one notification per call, only on the documented edges:
//
//   - zone: compares by direct equality against the previous zone, so a jump
//     straight from none to danger emits only the danger message and a return
//     to none emits nothing while still resetting the state;
//   - overcurrent and temperature: rising edge only, falling edges reset
//     silently.
//
// All three checks read the same incoming classification before any part of
// the state is replaced, so the returned state is never half-updated.
func Advance(c Classification, s AlertState) ([]Notification, AlertState) {
	var notes []Notification

	next := s

	switch {
	case c.Zone == ZoneWarning && s.LastZone != ZoneWarning:
		notes = append(notes, Notification{
			Kind: KindZoneWarning,
			Text: fmt.Sprintf("Warning: human at %.2f m — Buzzer ON", c.DistanceM),
		})
		next.LastZone = ZoneWarning
	case c.Zone == ZoneDanger && s.LastZone != ZoneDanger:
		notes = append(notes, Notification{
			Kind: KindZoneDanger,
			Text: fmt.Sprintf("DANGER: human at %.2f m — Relay OPEN & Earth rod ENGAGED", c.DistanceM),
		})
		next.LastZone = ZoneDanger
	case c.Zone == ZoneNone:
		next.LastZone = ZoneNone
	}

	if c.Overcurrent && !s.OvercurrentActive {
		notes = append(notes, Notification{
			Kind: KindOvercurrent,
			Text: fmt.Sprintf("Overcurrent: %.2f A — Relay opened", c.CurrentA),
		})
		next.OvercurrentActive = true
	} else if !c.Overcurrent {
		next.OvercurrentActive = false
	}

	if c.TempHigh && !s.TempHighActive {
		notes = append(notes, Notification{
			Kind: KindTempHigh,
			Text: fmt.Sprintf("HIGH TEMP: %.1f °C", c.TemperatureC),
		})
		next.TempHighActive = true
	} else if !c.TempHigh {
		next.TempHighActive = false
	}

	return notes, next
}
