package main

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/suxatcode/klinekart/avatar"
	"github.com/suxatcode/klinekart/interaction"
	"github.com/suxatcode/klinekart/internal/controller"
	"github.com/suxatcode/klinekart/render"
	"github.com/suxatcode/klinekart/scheduler"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Run the simulation headless and write a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
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
			if noAvatars, _ := cmd.Flags().GetBool("no-avatars"); noAvatars {
				avatarConf.Disabled = true
			}
			images := avatar.NewStore(avatarConf, nil)
			if !avatarConf.Disabled {
				if err := images.FetchAll(ctx, avatarSources(sim.Graph())); err != nil {
					return err
				}
			}

			ticks, _ := cmd.Flags().GetInt("ticks")
			controller.Layout(ctx, sim, ticks)

			nav := interaction.LogNavigator{BaseURL: conf.ProfileURL}
			ctrl := controller.NewController(sim, raster, images, nav, scheduler.SystemClock{})
			ctrl.Debug, _ = cmd.Flags().GetBool("debug")
			ctrl.Render()

			out, _ := cmd.Flags().GetString("out")
			if out == "-" {
				return raster.EncodePNG(cmd.OutOrStdout())
			}
			start := time.Now()
			if err := raster.WritePNG(out); err != nil {
				return err
			}
			log.Info().Msgf("wrote %s in %s", out, time.Since(start))
			return nil
		},
	}
	cmd.Flags().StringP("out", "o", "klinekart.png", "Output PNG file, - for stdout")
	cmd.Flags().Int("width", 1200, "Image width")
	cmd.Flags().Int("height", 800, "Image height")
	cmd.Flags().Int("ticks", 300, "Simulation ticks before drawing")
	cmd.Flags().Int64("seed", 0, "Seed of the initial placement, random when 0")
	cmd.Flags().Bool("debug", false, "Draw the debug overlay")
	cmd.Flags().Bool("no-avatars", false, "Draw placeholders instead of loading avatars")
	return cmd
}
