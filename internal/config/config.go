package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/transformer-sentry/internal/domain/safety"
)

// Config holds runtime settings shared by the sentry binaries.
type Config struct {
	// BrokerURL is the MQTT broker address, e.g. "tcp://broker:1883".
	BrokerURL string `yaml:"broker_url"`
	// BrokerUsername is the optional MQTT username.
	BrokerUsername string `yaml:"broker_username"`
	// BrokerPassword is the optional MQTT password.
	BrokerPassword string `yaml:"broker_password"`
	// ClientID identifies this process to the broker.
	ClientID string `yaml:"client_id"`
	// StateTopic is the retained topic holding the sensor state document.
	StateTopic string `yaml:"state_topic"`
	// ChatGatewayURL is the base URL of the chat gateway REST API.
	ChatGatewayURL string `yaml:"chat_gateway_url"`
	// ChatToken authenticates outbound chat gateway calls.
	ChatToken string `yaml:"chat_token"`
	// WebhookSecret guards the inbound webhook path.
	// When empty, the chat token doubles as the secret.
	WebhookSecret string `yaml:"webhook_secret"`
	// Recipients lists the chat identities that receive broadcasts and may
	// issue commands. There is no default; it must be supplied.
	Recipients []string `yaml:"recipients"`
	// HTTPAddress is the listen address of the HTTP wrapper.
	HTTPAddress string `yaml:"http_addr"`
	// CurrentThresholdA is the overcurrent threshold in amps.
	CurrentThresholdA float64 `yaml:"current_threshold_a"`
	// TempThresholdC is the high-temperature threshold in degrees Celsius.
	TempThresholdC float64 `yaml:"temp_threshold_c"`
	// WarningZoneCM is the outer human-proximity band in centimeters.
	WarningZoneCM float64 `yaml:"warning_zone_cm"`
	// DangerZoneCM is the inner human-proximity band in centimeters.
	DangerZoneCM float64 `yaml:"danger_zone_cm"`
	// PollInterval is the sensor poll cycle period.
	PollInterval time.Duration `yaml:"poll_interval"`
	// Timeout bounds store publishes and chat gateway calls.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is the minimum log level (debug, info, warn, error, fatal).
	LogLevel string `yaml:"log_level"`
	// Influx enables snapshot recording when present.
	Influx *InfluxConfig `yaml:"influx,omitempty"`
}

// InfluxConfig holds the optional snapshot recorder settings.
type InfluxConfig struct {
	// URL is the InfluxDB server address.
	URL string `yaml:"url"`
	// Token authenticates against InfluxDB.
	Token string `yaml:"token"`
	// Org is the InfluxDB organization.
	Org string `yaml:"org"`
	// Bucket receives the snapshot points.
	Bucket string `yaml:"bucket"`
	// Measurement names the written measurement. Optional.
	Measurement string `yaml:"measurement"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "transformer-sentry.yaml"

	// DefaultStateTopic is the default retained state document topic.
	DefaultStateTopic = "transformer_safety/state"

	// DefaultClientID identifies the process to the broker by default.
	DefaultClientID = "transformer-sentry"

	// DefaultHTTPAddress is the default HTTP wrapper listen address.
	DefaultHTTPAddress = ":8000"

	// DefaultCurrentThresholdA is the default overcurrent threshold in amps.
	DefaultCurrentThresholdA = 2.0

	// DefaultTempThresholdC is the default high-temperature threshold in Celsius.
	DefaultTempThresholdC = 50.0

	// DefaultWarningZoneCM is the default warning band in centimeters.
	DefaultWarningZoneCM = 1000.0

	// DefaultDangerZoneCM is the default danger band in centimeters.
	DefaultDangerZoneCM = 500.0

	// DefaultPollInterval is the default sensor poll cycle period.
	DefaultPollInterval = 2 * time.Second

	// DefaultTimeout is the default bound on network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultFilePermissions is the file mode used when saving settings.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errBrokerRequired is returned when the broker URL is missing.
	errBrokerRequired = errors.New("broker URL must be provided")
	// errChatGatewayRequired is returned when the chat gateway URL is missing.
	errChatGatewayRequired = errors.New("chat gateway URL must be provided")
	// errRecipientsRequired is returned when the recipient set is empty.
	errRecipientsRequired = errors.New("at least one recipient must be provided")
	// errInfluxIncomplete is returned when the influx block misses required fields.
	errInfluxIncomplete = errors.New("influx settings require url, token, org and bucket")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions: the file carries credentials.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks required fields and fills defaults for the optional ones.
//
//nolint:cyclop // A flat list of field checks reads better than helper indirection.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.BrokerURL == "" {
		return errBrokerRequired
	}

	if _, err := url.Parse(cfg.BrokerURL); err != nil {
		return fmt.Errorf("invalid broker URL: %w", err)
	}

	if cfg.ChatGatewayURL == "" {
		return errChatGatewayRequired
	}

	if _, err := url.ParseRequestURI(cfg.ChatGatewayURL); err != nil {
		return fmt.Errorf("invalid chat gateway URL: %w", err)
	}

	if len(activeRecipients(cfg.Recipients)) == 0 {
		return errRecipientsRequired
	}

	if cfg.ClientID == "" {
		cfg.ClientID = DefaultClientID
	}

	if cfg.StateTopic == "" {
		cfg.StateTopic = DefaultStateTopic
	}

	if cfg.HTTPAddress == "" {
		cfg.HTTPAddress = DefaultHTTPAddress
	}

	if cfg.CurrentThresholdA <= 0 {
		cfg.CurrentThresholdA = DefaultCurrentThresholdA
	}

	if cfg.TempThresholdC <= 0 {
		cfg.TempThresholdC = DefaultTempThresholdC
	}

	if cfg.WarningZoneCM <= 0 {
		cfg.WarningZoneCM = DefaultWarningZoneCM
	}

	if cfg.DangerZoneCM <= 0 {
		cfg.DangerZoneCM = DefaultDangerZoneCM
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.Influx != nil {
		if cfg.Influx.URL == "" || cfg.Influx.Token == "" ||
			cfg.Influx.Org == "" || cfg.Influx.Bucket == "" {
			return errInfluxIncomplete
		}
	}

	return nil
}

// Thresholds returns the classification thresholds carried by the settings.
func (c *Config) Thresholds() safety.Thresholds {
	return safety.Thresholds{
		CurrentThresholdA: c.CurrentThresholdA,
		TempThresholdC:    c.TempThresholdC,
		WarningZoneCM:     c.WarningZoneCM,
		DangerZoneCM:      c.DangerZoneCM,
	}
}

// ActiveRecipients returns the recipient set with empty entries removed.
func (c *Config) ActiveRecipients() []string {
	return activeRecipients(c.Recipients)
}

// Secret returns the webhook secret, falling back to the chat token.
func (c *Config) Secret() string {
	if c.WebhookSecret != "" {
		return c.WebhookSecret
	}

	return c.ChatToken
}

// activeRecipients filters out empty and whitespace-only identifiers.
func activeRecipients(recipients []string) []string {
	result := make([]string, 0, len(recipients))

	for _, r := range recipients {
		if strings.TrimSpace(r) != "" {
			result = append(result, r)
		}
	}

	return result
}
