package main

import (
	"math/rand"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/suxatcode/klinekart/db"
	"github.com/suxatcode/klinekart/db/postgres"
	"github.com/suxatcode/klinekart/graph"
	"github.com/suxatcode/klinekart/internal/app"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate random associations into the configured source",
		Long: `Generates a random association list and writes it as JSON to the input
file (stdout for -) or stores it in postgres.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, dbconf := configs(cmd)
			users, _ := cmd.Flags().GetInt("users")
			connections, _ := cmd.Flags().GetInt("connections")
			seed, _ := cmd.Flags().GetInt64("seed")
			assocs := graph.Generate(rand.New(rand.NewSource(seed)), users, connections)
			log.Info().Msgf("generated %d associations between %d users", len(assocs), users)

			switch dbconf.Source {
			case "", "json":
				if dbconf.JSONPath == "-" || dbconf.JSONPath == "" {
					return db.WriteJSON(cmd.OutOrStdout(), assocs)
				}
				file, err := os.Create(dbconf.JSONPath)
				if err != nil {
					return errors.Wrapf(err, "create %s", dbconf.JSONPath)
				}
				defer file.Close()
				return db.WriteJSON(file, assocs)
			case "postgres":
				source, err := app.OpenSource(ctx, dbconf)
				if err != nil {
					return err
				}
				pg := source.(*postgres.PostgresDB)
				defer pg.Close()
				return pg.CreateAssociations(ctx, assocs)
			}
			return errors.Errorf("unknown association source '%s'", dbconf.Source)
		},
	}
	cmd.Flags().Int("users", 200, "Number of users")
	cmd.Flags().Int("connections", 3, "Average associations per user")
	cmd.Flags().Int64("seed", 1, "Random seed")
	return cmd
}
