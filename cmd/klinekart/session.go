package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/suxatcode/klinekart/db"
	"github.com/suxatcode/klinekart/graph"
	"github.com/suxatcode/klinekart/internal/app"
	"github.com/suxatcode/klinekart/layout"
)

// configs reads the environment and applies the persistent flag overrides.
func configs(cmd *cobra.Command) (app.Config, db.Config) {
	conf, dbconf := app.GetEnvConfig(), db.GetEnvConfig()
	if source, _ := cmd.Flags().GetString("source"); source != "" {
		dbconf.Source = source
	}
	if input, _ := cmd.Flags().GetString("input"); input != "" {
		dbconf.JSONPath = input
	}
	if tuning, _ := cmd.Flags().GetString("tuning"); tuning != "" {
		conf.LayoutTuningFile = tuning
	}
	return conf, dbconf
}

// simulation loads the graph and prepares a force simulation for it.
func simulation(ctx context.Context, cmd *cobra.Command) (*layout.ForceSimulation, app.Config, error) {
	conf, dbconf := configs(cmd)
	source, err := app.OpenSource(ctx, dbconf)
	if err != nil {
		return nil, conf, err
	}
	if json, ok := source.(db.JSONFile); ok {
		json.Stdin = cmd.InOrStdin()
		source = json
	}
	g, err := app.LoadGraph(ctx, source)
	if err != nil {
		return nil, conf, err
	}
	layoutConf, err := app.LayoutConfig(conf)
	if err != nil {
		return nil, conf, err
	}
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		layoutConf.Seed = seed
		layoutConf.RandomFloat = nil
		layoutConf = layoutConf.ApplyDefaults()
	}
	return layout.NewForceSimulation(g, layoutConf), conf, nil
}

// avatarSources lists the distinct images of all users.
func avatarSources(g *graph.Graph) []string {
	seen := map[string]bool{}
	sources := []string{}
	for _, node := range g.Nodes {
		if !seen[node.User.Img] {
			seen[node.User.Img] = true
			sources = append(sources, node.User.Img)
		}
	}
	return sources
}
