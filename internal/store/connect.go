package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/oshokin/transformer-sentry/internal/config"
	"github.com/oshokin/transformer-sentry/internal/logger"
)

const (
	// connectMaxElapsedTime bounds the total bootstrap retry window.
	connectMaxElapsedTime = 30 * time.Second

	// disconnectQuiesceMS is the grace period passed to Disconnect.
	disconnectQuiesceMS = 250
)

// Connect establishes the MQTT broker connection with exponential backoff.
// Failure to connect here is the bootstrap fatal case; once connected, the
// paho client reconnects on its own and the gateway degrades softly.
func Connect(ctx context.Context, cfg *config.Config) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.BrokerUsername).
		SetPassword(cfg.BrokerPassword).
		SetAutoReconnect(true).
		SetCleanSession(false)

	client := mqtt.NewClient(opts)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = connectMaxElapsedTime

	err := backoff.Retry(func() error {
		token := client.Connect()
		if token.Wait() && token.Error() != nil {
			logger.WarnKV(ctx, "Broker connection attempt failed", "error", token.Error())

			return token.Error()
		}

		return nil
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		return nil, fmt.Errorf("connect to broker %s: %w", cfg.BrokerURL, err)
	}

	logger.InfoKV(ctx, "Connected to broker", "broker_url", cfg.BrokerURL, "client_id", cfg.ClientID)

	return client, nil
}

// Disconnect closes the broker connection, waiting briefly for in-flight work.
func Disconnect(ctx context.Context, client mqtt.Client) {
	if client == nil || !client.IsConnected() {
		return
	}

	client.Disconnect(disconnectQuiesceMS)
	logger.Info(ctx, "Broker connection closed")
}
