/*
 * klinekart lays out the association graph of users with a force
 * simulation and shows it in a window, or renders it headless.
 */
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/suxatcode/klinekart/internal/app"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "klinekart",
		Short: "Force-directed graph of users and their associations",
		Long: `klinekart builds a graph from association pairs of users, places the
users with a force simulation and draws them with their avatars.

Associations are read from a JSON file (KLINEKART_SOURCE=json) or from
postgres (KLINEKART_SOURCE=postgres).`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.SetupLogging(app.GetEnvConfig())
		},
	}

	rootCmd.PersistentFlags().String("source", "", "Association source {json, postgres}, overrides KLINEKART_SOURCE")
	rootCmd.PersistentFlags().StringP("input", "i", "", "JSON association file, - for stdin, overrides KLINEKART_JSON")
	rootCmd.PersistentFlags().String("tuning", "", "YAML physics tuning file, overrides LAYOUT_TUNING_FILE")

	rootCmd.AddCommand(
		newViewCmd(),
		newRenderCmd(),
		newLayoutCmd(),
		newSeedCmd(),
	)
	return rootCmd
}
