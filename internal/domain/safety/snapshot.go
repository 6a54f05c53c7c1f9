package safety

// Store document field names. Sensor fields are written by the external
// feed; control fields are written by the command dispatcher.
const (
	FieldDistanceCM      = "distance_cm"
	FieldTemperatureC    = "temperature_c"
	FieldCurrentA        = "current_a"
	FieldHumanDetected   = "human_detected"
	FieldCurrentFault    = "current_fault"
	FieldRelayStatus     = "relay_status"
	FieldRelayOn         = "relay_on"
	FieldEarthRodStatus  = "earth_rod_status"
	FieldMaintenanceMode = "maintenance_mode"
)

// Snapshot is a read-only view of the sensor state document.
// Numeric fields are nil when absent or not decodable as numbers;
// boolean fields default to false.
type Snapshot struct {
	// DistanceCM is the measured human-proximity distance in centimeters.
	DistanceCM *float64
	// TemperatureC is the measured temperature in degrees Celsius.
	TemperatureC *float64
	// CurrentA is the measured current draw in amps.
	CurrentA *float64
	// HumanDetected reports whether the proximity sensor sees a person.
	HumanDetected bool
	// CurrentFault reports the sensor-side overcurrent flag.
	CurrentFault bool
	// RelayClosed reports whether the relay is closed.
	RelayClosed bool
	// EarthRodEngaged reports whether the earth rod is engaged.
	EarthRodEngaged bool
	// MaintenanceMode reports whether maintenance mode is on.
	MaintenanceMode bool
}

// SnapshotFromDocument decodes a state document into a Snapshot.
// Defaulting happens here, once: missing or malformed fields degrade to
// "unknown" (nil numbers, false booleans) and never fail.
func SnapshotFromDocument(doc map[string]any) *Snapshot {
	if doc == nil {
		return &Snapshot{}
	}

	return &Snapshot{
		DistanceCM:      numberField(doc, FieldDistanceCM),
		TemperatureC:    numberField(doc, FieldTemperatureC),
		CurrentA:        numberField(doc, FieldCurrentA),
		HumanDetected:   boolField(doc, FieldHumanDetected),
		CurrentFault:    boolField(doc, FieldCurrentFault),
		RelayClosed:     boolField(doc, FieldRelayStatus),
		EarthRodEngaged: boolField(doc, FieldEarthRodStatus),
		MaintenanceMode: boolField(doc, FieldMaintenanceMode),
	}
}

// numberField extracts a numeric document value, nil when absent or non-numeric.
func numberField(doc map[string]any, key string) *float64 {
	switch v := doc[key].(type) {
	case float64:
		return &v
	case float32:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	default:
		return nil
	}
}

// boolField extracts a boolean document value; numeric 0/1 is accepted
// because the sensor feed writes its flags as numbers.
func boolField(doc map[string]any, key string) bool {
	switch v := doc[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	default:
		return false
	}
}
