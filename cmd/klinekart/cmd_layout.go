package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/suxatcode/klinekart/internal/controller"
)

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Run the simulation headless and print the user positions as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sim, _, err := simulation(ctx, cmd)
			if err != nil {
				return err
			}
			ticks, _ := cmd.Flags().GetInt("ticks")
			positions, _ := controller.Layout(ctx, sim, ticks)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(positions)
		},
	}
	cmd.Flags().Int("ticks", 300, "Simulation ticks")
	cmd.Flags().Int64("seed", 0, "Seed of the initial placement, random when 0")
	return cmd
}
