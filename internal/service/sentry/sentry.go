// Package sentry wires the monitor process together: configuration, broker
// connection, poll driver, command dispatcher and the HTTP wrapper, plus the
// shutdown choreography that lets an in-flight poll cycle finish.
package sentry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/oshokin/transformer-sentry/internal/chat"
	"github.com/oshokin/transformer-sentry/internal/config"
	"github.com/oshokin/transformer-sentry/internal/logger"
	"github.com/oshokin/transformer-sentry/internal/notifier"
	"github.com/oshokin/transformer-sentry/internal/server"
	"github.com/oshokin/transformer-sentry/internal/service/command"
	"github.com/oshokin/transformer-sentry/internal/service/monitor"
	"github.com/oshokin/transformer-sentry/internal/service/recorder"
	"github.com/oshokin/transformer-sentry/internal/store"
)

// Options controls the monitor process.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// HTTPAddress provides an optional listen address override.
	HTTPAddress string
}

// httpShutdownTimeout bounds the HTTP server drain on exit.
const httpShutdownTimeout = 5 * time.Second

// Run starts the monitor process and blocks until the context is canceled.
// Startup is the only fatal phase: unloadable settings or an unreachable
// broker abort the process; afterwards every fault is soft.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "sentry")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	applyLogLevel(cfg.LogLevel)

	client, err := store.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer store.Disconnect(ctx, client)

	gateway := store.NewMQTTGateway(client, cfg.StateTopic, cfg.Timeout)
	if err := gateway.Subscribe(ctx); err != nil {
		return fmt.Errorf("subscribe state topic: %w", err)
	}

	recipients := cfg.ActiveRecipients()
	chatClient := chat.NewClient(cfg.ChatGatewayURL, cfg.ChatToken, cfg.Timeout)
	broadcaster := notifier.New(chatClient, recipients)
	dispatcher := command.NewDispatcher(gateway, chatClient, recipients, cfg.Thresholds())

	var rec monitor.Recorder

	if cfg.Influx != nil {
		influxRecorder := recorder.New(*cfg.Influx)
		defer influxRecorder.Close()

		rec = influxRecorder

		logger.InfoKV(ctx, "Snapshot recording enabled", "bucket", cfg.Influx.Bucket)
	}

	poller := monitor.New(gateway, broadcaster, rec, cfg.Thresholds(), cfg.PollInterval)

	// The poll task owns the alert state; it is awaited on shutdown so a
	// cycle is never cut off mid-notification.
	pollDone := make(chan struct{})

	go func() {
		defer close(pollDone)
		poller.Run(logger.WithName(ctx, "poll"))
	}()

	listenAddress := cfg.HTTPAddress
	if opts.HTTPAddress != "" {
		listenAddress = opts.HTTPAddress
	}

	httpServer := &http.Server{
		Addr:              listenAddress,
		Handler:           server.NewRouter(server.NewHandler(dispatcher, cfg.Secret())),
		ReadHeaderTimeout: cfg.Timeout,
	}

	logger.InfoKV(ctx, "Monitor running",
		"listen_address", listenAddress,
		"state_topic", cfg.StateTopic,
		"recipients", len(recipients),
		"poll_interval", cfg.PollInterval.String())

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()

		_ = httpServer.Shutdown(shutdownCtx)
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve HTTP: %w", err)
	}

	<-pollDone
	logger.Info(ctx, "Monitor stopped")

	return nil
}

// applyLogLevel configures the global log level from the settings.
func applyLogLevel(levelName string) {
	if levelName == "" {
		return
	}

	if level, ok := logger.ParseLogLevel(levelName); ok {
		logger.SetLevel(level)
	}
}
