// Package recorder archives polled snapshots to InfluxDB.
//
// Recording is optional and soft-failing: a write error is logged and
// counted, never surfaced to the poll cycle. Alert-state history is not
// persisted, only raw sensor telemetry.
package recorder

import (
	"context"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/oshokin/transformer-sentry/internal/config"
	"github.com/oshokin/transformer-sentry/internal/domain/safety"
	"github.com/oshokin/transformer-sentry/internal/logger"
	"github.com/oshokin/transformer-sentry/internal/metrics"
)

// defaultMeasurement names the written measurement when not configured.
const defaultMeasurement = "transformer_safety"

// Recorder writes snapshot points through the blocking write API.
type Recorder struct {
	// client owns the underlying connection pool.
	client influxdb2.Client
	// writeAPI performs the blocking point writes.
	writeAPI api.WriteAPIBlocking
	// measurement is the target measurement name.
	measurement string
}

// New creates a recorder from the influx settings block.
func New(cfg config.InfluxConfig) *Recorder {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)

	measurement := cfg.Measurement
	if measurement == "" {
		measurement = defaultMeasurement
	}

	return &Recorder{
		client:      client,
		writeAPI:    client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		measurement: measurement,
	}
}

// Record writes one snapshot as a point. Only present readings become
// fields, so gaps in the feed stay gaps in the series.
func (r *Recorder) Record(ctx context.Context, s *safety.Snapshot) {
	fields := map[string]any{
		safety.FieldHumanDetected:   s.HumanDetected,
		safety.FieldCurrentFault:    s.CurrentFault,
		safety.FieldRelayStatus:     s.RelayClosed,
		safety.FieldEarthRodStatus:  s.EarthRodEngaged,
		safety.FieldMaintenanceMode: s.MaintenanceMode,
	}

	if s.DistanceCM != nil {
		fields[safety.FieldDistanceCM] = *s.DistanceCM
	}

	if s.TemperatureC != nil {
		fields[safety.FieldTemperatureC] = *s.TemperatureC
	}

	if s.CurrentA != nil {
		fields[safety.FieldCurrentA] = *s.CurrentA
	}

	point := influxdb2.NewPoint(r.measurement, nil, fields, time.Now())

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		metrics.SnapshotRecordFailuresTotal.Inc()
		logger.WarnKV(ctx, "Snapshot point not persisted", "error", err)
	}
}

// Close releases the underlying connections.
func (r *Recorder) Close() {
	r.client.Close()
}
