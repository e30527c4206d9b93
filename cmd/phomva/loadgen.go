package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/phomva/internal/loadgen"
)

func newLoadgenCmd(opts *rootOptions) *cobra.Command {
	lc := loadgen.Config{}
	cmd := &cobra.Command{
		Use:   "loadgen",
		Short: "Post synthetic photon batches to a running server",
		Long: `Ask a running server for its required inputs, generate synthetic batches
carrying them and post them concurrently to /v1/score.

Examples:
  phomva loadgen --url http://localhost:9080 --batches 1000 --photons 4
  phomva loadgen --batches 10 --output batches.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, log, err := setup(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			stats, err := loadgen.Run(cmd.Context(), lc, log)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(stats)
		},
	}
	cmd.Flags().StringVar(&lc.BaseURL, "url", "http://localhost:9080", "Base URL of the service")
	cmd.Flags().IntVar(&lc.Batches, "batches", 100, "Number of batches")
	cmd.Flags().IntVar(&lc.PhotonsPerBatch, "photons", 2, "Photons per batch")
	cmd.Flags().IntVar(&lc.Workers, "workers", 8, "Concurrent requests")
	cmd.Flags().DurationVar(&lc.Timeout, "timeout", 10*time.Second, "HTTP request timeout")
	cmd.Flags().Uint64Var(&lc.Seed, "seed", 1, "Generator seed")
	cmd.Flags().StringVar(&lc.OutputFile, "output", "", "Save generated batches to a YAML file")
	return cmd
}
