// Package cmd defines the transformer-sentry CLI.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/transformer-sentry/internal/config"
	"github.com/oshokin/transformer-sentry/internal/service/sentry"
	"github.com/oshokin/transformer-sentry/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string

	// rootCmd represents the base command for running the monitor.
	rootCmd = &cobra.Command{
		Use:   "transformer-sentry [listen-address]",
		Short: "Monitor transformer safety sensors and serve operator commands.",
		Long: `Runs the transformer safety monitor.

A background poll cycle reads the shared sensor state document every two
seconds, classifies the readings into proximity zones and threshold flags,
and broadcasts one notification per state transition to the configured
recipients. The same recipients may issue control commands (maintenance
mode, relay, earth rod, status) through the chat webhook served over HTTP.

The HTTP listen address can be provided as argument to override the
configuration (e.g. :9000, 0.0.0.0:8000).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &sentry.Options{
				ConfigPath:  configPath,
				HTTPAddress: listenAddress,
			}

			return sentry.Run(ctx, options)
		},
	}
)

// Execute runs the transformer-sentry CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
}
