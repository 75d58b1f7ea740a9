package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/suxatcode/klinekart/avatar"
	"github.com/suxatcode/klinekart/interaction"
	"github.com/suxatcode/klinekart/internal/app"
	"github.com/suxatcode/klinekart/internal/controller"
	"github.com/suxatcode/klinekart/internal/viewer"
	"github.com/suxatcode/klinekart/render"
	"github.com/suxatcode/klinekart/scheduler"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the graph in an interactive window",
		Long: `Opens a window running the force simulation live.

Keys: arrows or WASD pan, p toggles the debug overlay, o resets the camera,
r scatters all users again. The wheel zooms around the cursor, dragging a
user moves it, dragging empty space pans and clicking a user opens its
profile in the browser.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			sim, conf, err := simulation(ctx, cmd)
			if err != nil {
				return err
			}
			width, _ := cmd.Flags().GetInt("width")
			height, _ := cmd.Flags().GetInt("height")
			raster, err := render.NewRaster(width, height)
			if err != nil {
				return err
			}

			avatarConf := avatar.GetEnvConfig()
			images := avatar.NewStore(avatarConf, nil)
			if !avatarConf.Disabled {
				images.Start(ctx, avatarSources(sim.Graph()))
			}

			nav := interaction.BrowserNavigator{BaseURL: conf.ProfileURL}
			ctrl := controller.NewController(sim, raster, images, nav, scheduler.SystemClock{})

			if conf.MetricsAddr != "" {
				reg := prometheus.NewRegistry()
				ctrl.Scheduler.Metrics = scheduler.NewMetrics(reg)
				go func() {
					if err := app.ServeMetrics(ctx, conf, reg); err != nil {
						log.Error().Msgf("%v", err)
					}
				}()
			}
			return viewer.Run(viewer.New(ctrl, raster), "Klinekart")
		},
	}
	cmd.Flags().Int("width", 1200, "Initial window width")
	cmd.Flags().Int("height", 800, "Initial window height")
	cmd.Flags().Int64("seed", 0, "Seed of the initial placement, random when 0")
	return cmd
}
