package command

import (
	"fmt"
	"strings"

	"github.com/oshokin/transformer-sentry/internal/domain/safety"
)

// Report renders a snapshot into the multi-line status reply.
// Missing or non-positive readings render as "N/A"; the temperature line
// carries a high marker at or above the threshold. Purely presentational.
func Report(s *safety.Snapshot, t safety.Thresholds) string {
	lines := make([]string, 0, 9)

	lines = append(lines, "Transformer Status")

	if d := s.DistanceCM; d != nil && *d > 0 {
		lines = append(lines, fmt.Sprintf("Distance: %.2f m", *d/100))
	} else {
		lines = append(lines, "Distance: N/A")
	}

	lines = append(lines, "Human detected: "+yesNo(s.HumanDetected))

	if c := s.CurrentA; c != nil {
		lines = append(lines, fmt.Sprintf("Current: %.2f A", *c))
	} else {
		lines = append(lines, "Current: N/A")
	}

	if temp := s.TemperatureC; temp != nil {
		marker := ""
		if *temp >= t.TempThresholdC {
			marker = " (HIGH!)"
		}

		lines = append(lines, fmt.Sprintf("Temperature: %.1f °C%s", *temp, marker))
	} else {
		lines = append(lines, "Temperature: N/A")
	}

	lines = append(lines,
		"Overcurrent: "+yesNo(s.CurrentFault),
		"Relay (closed): "+yesNo(s.RelayClosed),
		"Earth rod engaged: "+yesNo(s.EarthRodEngaged),
		"Maintenance mode: "+onOff(s.MaintenanceMode),
	)

	return strings.Join(lines, "\n")
}

func yesNo(v bool) string {
	if v {
		return "YES"
	}

	return "NO"
}

func onOff(v bool) string {
	if v {
		return "ON"
	}

	return "OFF"
}
