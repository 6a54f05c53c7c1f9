package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/oshokin/transformer-sentry/internal/domain/safety"
	"github.com/oshokin/transformer-sentry/internal/logger"
	"github.com/oshokin/transformer-sentry/internal/metrics"
)

// stateTopicQoS is the delivery level for the retained state document.
const stateTopicQoS byte = 1

// MQTTGateway implements Gateway over a retained MQTT state document.
// It caches the latest document so reads never touch the network.
type MQTTGateway struct {
	// client is the shared broker connection.
	client mqtt.Client
	// topic is the retained state document topic.
	topic string
	// timeout bounds publish acknowledgment waits.
	timeout time.Duration

	// mu protects the cached document.
	mu sync.RWMutex
	// doc is the latest decoded state document, nil until first message.
	doc map[string]any
}

// NewMQTTGateway creates a gateway bound to the provided state topic.
func NewMQTTGateway(client mqtt.Client, topic string, timeout time.Duration) *MQTTGateway {
	return &MQTTGateway{
		client:  client,
		topic:   topic,
		timeout: timeout,
	}
}

// Subscribe starts consuming the state document topic. The retained message,
// if any, arrives immediately and seeds the cache.
func (g *MQTTGateway) Subscribe(ctx context.Context) error {
	token := g.client.Subscribe(g.topic, stateTopicQoS, func(_ mqtt.Client, msg mqtt.Message) {
		g.handlePayload(ctx, msg.Payload())
	})

	if !token.WaitTimeout(g.timeout) {
		return fmt.Errorf("subscribe to %s: timed out after %s", g.topic, g.timeout)
	}

	if token.Error() != nil {
		return fmt.Errorf("subscribe to %s: %w", g.topic, token.Error())
	}

	logger.InfoKV(ctx, "Subscribed to state document", "topic", g.topic)

	return nil
}

// handlePayload decodes an incoming state document into the cache.
// Garbage payloads are dropped; the previous document stays authoritative.
func (g *MQTTGateway) handlePayload(ctx context.Context, payload []byte) {
	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		metrics.StoreReadFailuresTotal.Inc()
		logger.WarnKV(ctx, "Dropping undecodable state document", "topic", g.topic, "error", err)

		return
	}

	g.mu.Lock()
	g.doc = doc
	g.mu.Unlock()
}

// Read returns the snapshot decoded from the cached document.
// With no document cached yet it degrades to all defaults.
func (g *MQTTGateway) Read(ctx context.Context) *safety.Snapshot {
	g.mu.RLock()
	doc := g.doc
	g.mu.RUnlock()

	if doc == nil {
		metrics.StoreReadFailuresTotal.Inc()
		logger.DebugKV(ctx, "No state document cached, using defaults", "topic", g.topic)
	}

	return safety.SnapshotFromDocument(doc)
}

// Write merges the fields into the cached document and republishes it
// retained. Publish failures are logged and dropped: the field values are
// reflected locally either way, and the next successful publish carries them.
func (g *MQTTGateway) Write(ctx context.Context, fields map[string]any) {
	g.mu.Lock()

	if g.doc == nil {
		g.doc = make(map[string]any, len(fields))
	}

	for name, value := range fields {
		g.doc[name] = value
	}

	payload, err := json.Marshal(g.doc)
	g.mu.Unlock()

	if err != nil {
		metrics.StoreWriteFailuresTotal.Inc()
		logger.ErrorKV(ctx, "State document not encodable", "error", err)

		return
	}

	token := g.client.Publish(g.topic, stateTopicQoS, true, payload)
	if !token.WaitTimeout(g.timeout) {
		metrics.StoreWriteFailuresTotal.Inc()
		logger.WarnKV(ctx, "State document publish timed out", "topic", g.topic, "timeout", g.timeout)

		return
	}

	if token.Error() != nil {
		metrics.StoreWriteFailuresTotal.Inc()
		logger.WarnKV(ctx, "State document publish failed", "topic", g.topic, "error", token.Error())
	}
}
