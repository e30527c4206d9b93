package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/okian/phomva/internal/mva/features"
)

func newInputsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inputs",
		Short: "Print the event products a batch must carry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := setup(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(features.RequiredInputs(cfg.MVA.UseValueMaps, cfg.MVA.Labels))
		},
	}
}
