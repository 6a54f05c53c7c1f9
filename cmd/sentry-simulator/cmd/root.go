// Package cmd defines the sentry-simulator CLI.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/transformer-sentry/internal/config"
	"github.com/oshokin/transformer-sentry/internal/service/simulator"
	"github.com/oshokin/transformer-sentry/internal/store"
	"github.com/oshokin/transformer-sentry/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// interval paces the simulated feed.
	interval time.Duration
	// seed makes a run reproducible.
	seed int64

	// rootCmd represents the base command for the sensor feed simulator.
	rootCmd = &cobra.Command{
		Use:   "sentry-simulator",
		Short: "Publish a simulated sensor feed to the state topic.",
		Long: `Publishes randomized sensor state documents to the configured state topic.

The generated readings random-walk through the proximity bands and the
current and temperature thresholds, so the monitor's transitions can be
exercised without hardware. Uses the broker settings from the monitor's
configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}

			// A distinct client id keeps the broker from kicking the monitor.
			cfg.ClientID += "-simulator"

			client, err := store.Connect(ctx, cfg)
			if err != nil {
				return fmt.Errorf("connect store: %w", err)
			}
			defer store.Disconnect(ctx, client)

			sim := simulator.New(client, cfg.StateTopic, interval, simulator.NewGenerator(seed))
			sim.Run(ctx)

			return nil
		},
	}
)

// Execute runs the sentry-simulator CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().DurationVarP(&interval, "interval", "i", 2*time.Second, "publish interval")
	rootCmd.Flags().Int64VarP(&seed, "seed", "s", time.Now().UnixNano(), "random walk seed")
}
