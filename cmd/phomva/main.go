// Command phomva scores photon candidates with the category BDTs.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/phomva/internal/config"
	"github.com/okian/phomva/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "phomva",
		Short: "Photon identification BDT estimator",
		Long: `phomva computes the photon identification discriminant for reconstructed
photons, choosing one of three category models from the supercluster eta.

Configuration is layered: defaults, then the YAML file named by --config or
PHOMVA_CONFIG, then PHOMVA_* environment variables.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override log_level (debug|info|warn|error)")

	root.AddCommand(
		newServeCmd(opts),
		newScoreCmd(opts),
		newInputsCmd(opts),
		newLoadgenCmd(opts),
	)
	return root
}

// setup loads configuration and initializes the global logger writing to w.
func setup(ctx context.Context, opts *rootOptions, w io.Writer) (*config.Config, logger.Logger, error) {
	if opts.configFile != "" {
		if err := os.Setenv("PHOMVA_CONFIG", opts.configFile); err != nil {
			return nil, nil, fmt.Errorf("failed to set config path: %w", err)
		}
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	if err := logger.Init(logger.WithWriter(w), logger.WithJSON(cfg.LogJSON)); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return cfg, log, nil
}
