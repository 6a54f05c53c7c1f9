package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/transformer-sentry/internal/domain/safety"
)

// reportThresholds are the limits used by the formatter tests.
func reportThresholds() safety.Thresholds {
	return safety.Thresholds{TempThresholdC: 50.0}
}

// fp returns a pointer to the provided float value.
func fp(v float64) *float64 {
	return &v
}

// TestReport_FullSnapshot verifies line order and formatting of a complete reading.
func TestReport_FullSnapshot(t *testing.T) {
	t.Parallel()

	s := &safety.Snapshot{
		DistanceCM:      fp(432),
		TemperatureC:    fp(36.4),
		CurrentA:        fp(1.5),
		HumanDetected:   true,
		CurrentFault:    false,
		RelayClosed:     true,
		EarthRodEngaged: false,
		MaintenanceMode: true,
	}

	lines := strings.Split(Report(s, reportThresholds()), "\n")

	require.Equal(t, []string{
		"Transformer Status",
		"Distance: 4.32 m",
		"Human detected: YES",
		"Current: 1.50 A",
		"Temperature: 36.4 °C",
		"Overcurrent: NO",
		"Relay (closed): YES",
		"Earth rod engaged: NO",
		"Maintenance mode: ON",
	}, lines)
}

// TestReport_DegradedSnapshot verifies N/A rendering and the high marker.
func TestReport_DegradedSnapshot(t *testing.T) {
	t.Parallel()

	// Zero distance is as invalid as a missing one.
	s := &safety.Snapshot{
		DistanceCM:   fp(0),
		TemperatureC: fp(50.0),
	}

	report := Report(s, reportThresholds())

	require.Contains(t, report, "Distance: N/A")
	require.Contains(t, report, "Current: N/A")
	require.Contains(t, report, "Temperature: 50.0 °C (HIGH!)")
	require.Contains(t, report, "Maintenance mode: OFF")

	// Nothing at all still renders every line.
	lines := strings.Split(Report(&safety.Snapshot{}, reportThresholds()), "\n")
	require.Len(t, lines, 9)
	require.Equal(t, "Temperature: N/A", lines[4])
}
