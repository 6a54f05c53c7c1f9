// Package simulator generates a synthetic sensor feed for development.
//
// It publishes the same state document the real installation would write,
// random-walking the readings so zone and threshold transitions actually
// happen while poking at the monitor.
package simulator

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/oshokin/transformer-sentry/internal/domain/safety"
	"github.com/oshokin/transformer-sentry/internal/logger"
)

const (
	// publishQoS matches the state document delivery level.
	publishQoS byte = 1

	// dropoutChance is the per-cycle probability of omitting the distance
	// reading, imitating the flaky proximity sensor.
	dropoutChance = 0.1
)

// Generator random-walks a plausible set of sensor readings.
type Generator struct {
	// rng drives the walk; seeded for reproducible runs.
	rng *rand.Rand

	// distanceCM, temperatureC and currentA are the walked readings.
	distanceCM   float64
	temperatureC float64
	currentA     float64
}

// NewGenerator seeds a generator with mid-range readings.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:          rand.New(rand.NewSource(seed)), //nolint:gosec // Simulation, not cryptography.
		distanceCM:   1200,
		temperatureC: 35,
		currentA:     1.2,
	}
}

// Next advances the walk and returns the resulting state document.
func (g *Generator) Next() map[string]any {
	g.distanceCM = clamp(g.distanceCM+g.rng.Float64()*400-200, 50, 2500)
	g.temperatureC = clamp(g.temperatureC+g.rng.Float64()*4-2, 15, 90)
	g.currentA = clamp(g.currentA+g.rng.Float64()*0.8-0.4, 0, 5)

	doc := map[string]any{
		safety.FieldTemperatureC:  round2(g.temperatureC),
		safety.FieldCurrentA:      round2(g.currentA),
		safety.FieldHumanDetected: boolToBit(g.distanceCM <= 1000),
		safety.FieldCurrentFault:  boolToBit(g.currentA > 2),
	}

	// The proximity sensor drops readings now and then.
	if g.rng.Float64() >= dropoutChance {
		doc[safety.FieldDistanceCM] = round2(g.distanceCM)
	}

	return doc
}

// Simulator publishes generated documents to the state topic.
type Simulator struct {
	// client is the broker connection.
	client mqtt.Client
	// topic is the state document topic.
	topic string
	// interval paces the feed.
	interval time.Duration
	// generator produces the documents.
	generator *Generator
}

// New creates a simulator publishing on the given topic.
func New(client mqtt.Client, topic string, interval time.Duration, generator *Generator) *Simulator {
	return &Simulator{
		client:    client,
		topic:     topic,
		interval:  interval,
		generator: generator,
	}
}

// Run publishes a document per interval until the context is canceled.
func (s *Simulator) Run(ctx context.Context) {
	logger.InfoKV(ctx, "Publishing simulated sensor feed", "topic", s.topic, "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Simulator stopped")

			return
		case <-ticker.C:
			s.publish(ctx)
		}
	}
}

// publish sends one generated document, retained like the real feed.
func (s *Simulator) publish(ctx context.Context) {
	doc := s.generator.Next()

	payload, err := json.Marshal(doc)
	if err != nil {
		logger.ErrorKV(ctx, "Generated document not encodable", "error", err)

		return
	}

	token := s.client.Publish(s.topic, publishQoS, true, payload)
	if token.Wait() && token.Error() != nil {
		logger.WarnKV(ctx, "Simulated feed publish failed", "error", token.Error())
	}
}

// clamp bounds v to [low, high].
func clamp(v, low, high float64) float64 {
	switch {
	case v < low:
		return low
	case v > high:
		return high
	default:
		return v
	}
}

// round2 keeps two decimals so the documents stay readable.
func round2(v float64) float64 {
	return float64(int(v*100)) / 100
}

// boolToBit renders a flag the way the sensor firmware does, as 0/1.
func boolToBit(v bool) int {
	if v {
		return 1
	}

	return 0
}
