package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields, defaults and format validations.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Missing broker.
	cfg := new(Config)

	require.Error(t, Validate(cfg))

	// Missing chat gateway.
	cfg = &Config{
		BrokerURL: "tcp://localhost:1883",
	}

	require.Error(t, Validate(cfg))

	// Empty recipient set is rejected, even when entries exist but are blank.
	cfg = &Config{
		BrokerURL:      "tcp://localhost:1883",
		ChatGatewayURL: "https://chat.local/bot",
		Recipients:     []string{"", "  "},
	}

	require.Error(t, Validate(cfg))

	// Minimal valid settings receive defaults.
	cfg = &Config{
		BrokerURL:      "tcp://localhost:1883",
		ChatGatewayURL: "https://chat.local/bot",
		Recipients:     []string{"1001", ""},
	}

	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultStateTopic, cfg.StateTopic)
	require.Equal(t, DefaultHTTPAddress, cfg.HTTPAddress)
	require.InDelta(t, DefaultCurrentThresholdA, cfg.CurrentThresholdA, 0)
	require.InDelta(t, DefaultTempThresholdC, cfg.TempThresholdC, 0)
	require.InDelta(t, DefaultWarningZoneCM, cfg.WarningZoneCM, 0)
	require.InDelta(t, DefaultDangerZoneCM, cfg.DangerZoneCM, 0)
	require.Equal(t, DefaultPollInterval, cfg.PollInterval)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, []string{"1001"}, cfg.ActiveRecipients())

	// Incomplete influx block.
	cfg.Influx = &InfluxConfig{URL: "http://influx:8086"}

	require.Error(t, Validate(cfg))
}

// TestSecret_FallsBackToToken verifies the webhook secret defaults to the chat token.
func TestSecret_FallsBackToToken(t *testing.T) {
	t.Parallel()

	cfg := &Config{ChatToken: "token-1"}
	require.Equal(t, "token-1", cfg.Secret())

	cfg.WebhookSecret = "hook-secret"
	require.Equal(t, "hook-secret", cfg.Secret())
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := &Config{
		BrokerURL:      "tcp://broker:1883",
		ChatGatewayURL: "https://chat.local/bot",
		ChatToken:      "secret",
		Recipients:     []string{"1001", "1002"},
		PollInterval:   3 * time.Second,
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.BrokerURL, loaded.BrokerURL)
	require.Equal(t, cfg.Recipients, loaded.Recipients)
	require.Equal(t, 3*time.Second, loaded.PollInterval)

	// Defaults were applied on load.
	require.Equal(t, DefaultTimeout, loaded.Timeout)
}
