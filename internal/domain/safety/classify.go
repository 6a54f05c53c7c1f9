package safety

// Zone classifies the human-proximity distance into bands.
type Zone int

const (
	// ZoneNone means nobody is within the configured bands.
	ZoneNone Zone = iota
	// ZoneWarning means a person is inside the warning band.
	ZoneWarning
	// ZoneDanger means a person is inside the danger band.
	ZoneDanger
)

// String returns the lowercase band name.
func (z Zone) String() string {
	switch z {
	case ZoneWarning:
		return "warning"
	case ZoneDanger:
		return "danger"
	default:
		return "none"
	}
}

// Thresholds holds the fixed classification limits.
type Thresholds struct {
	// CurrentThresholdA is the overcurrent limit in amps.
	CurrentThresholdA float64
	// TempThresholdC is the high-temperature limit in degrees Celsius.
	TempThresholdC float64
	// WarningZoneCM is the outer proximity band in centimeters.
	WarningZoneCM float64
	// DangerZoneCM is the inner proximity band in centimeters.
	DangerZoneCM float64
}

// Classification is the evaluation of one snapshot against the thresholds.
// It is recomputed every cycle and never stored.
type Classification struct {
	// Zone is the proximity band of the current distance reading.
	Zone Zone
	// Overcurrent reports current draw above the threshold.
	Overcurrent bool
	// TempHigh reports temperature at or above the threshold.
	TempHigh bool
	// DistanceM is the distance in meters, valid only for a positive reading.
	DistanceM float64
	// CurrentA is the current draw after defaulting (missing reads as 0).
	CurrentA float64
	// TemperatureC is the temperature after defaulting (missing reads as 0).
	TemperatureC float64
}

// Classify evaluates a snapshot against the thresholds.
// Missing or non-positive distance yields ZoneNone; missing current and
// temperature read as zero. Pure and deterministic.
func Classify(s *Snapshot, t Thresholds) Classification {
	var c Classification

	if s.CurrentA != nil {
		c.CurrentA = *s.CurrentA
	}

	if s.TemperatureC != nil {
		c.TemperatureC = *s.TemperatureC
	}

	if d := s.DistanceCM; d != nil && *d > 0 {
		c.DistanceM = *d / 100

		switch {
		case *d <= t.DangerZoneCM:
			c.Zone = ZoneDanger
		case *d <= t.WarningZoneCM:
			c.Zone = ZoneWarning
		}
	}

	c.Overcurrent = c.CurrentA > t.CurrentThresholdA
	c.TempHigh = c.TemperatureC >= t.TempThresholdC

	return c
}
