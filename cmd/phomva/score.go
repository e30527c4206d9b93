package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/okian/phomva/internal/adapters/payload"
	app "github.com/okian/phomva/internal/app"
)

func newScoreCmd(opts *rootOptions) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score the photons of a batch file",
		Long: `Load the category models, score every photon of a YAML or JSON batch
file and print the scores as JSON.

Examples:
  phomva score --input event.yaml
  PHOMVA_MVA__WEIGHTFILENAMES=eb1.yaml,eb2.yaml,ee.yaml phomva score --input event.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input == "" {
				return errors.New("--input is required")
			}
			ctx := cmd.Context()

			cfg, log, err := setup(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			batch, err := payload.DecodeFile(input)
			if err != nil {
				return err
			}

			svc := app.New(
				app.WithLogger(log),
				app.WithWorkerCount(cfg.Workers),
				app.WithEstimatorConfig(cfg.MVA.Estimator()),
			)
			if err := svc.Start(ctx); err != nil {
				return err
			}
			defer svc.Stop()

			res, err := svc.ScoreBatch(ctx, batch)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Batch file (YAML or JSON)")
	return cmd
}
