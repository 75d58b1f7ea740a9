package controller

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/suxatcode/klinekart/layout"
)

// Position is the placement of one user after a headless layout run.
type Position struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Island int     `json:"island"`
}

// Layout runs ticks simulation steps without rendering and returns the
// resulting node positions in graph order.
func Layout(ctx context.Context, sim *layout.ForceSimulation, ticks int) ([]Position, layout.Stats) {
	stats := sim.Run(ctx, ticks)
	log.Info().Msgf("layout: %d ticks in %s", stats.Iterations, stats.TotalTime)
	nodes := sim.Graph().Nodes
	positions := make([]Position, 0, len(nodes))
	for _, node := range nodes {
		positions = append(positions, Position{
			ID:     node.User.ID,
			Name:   node.User.Name,
			X:      node.Pos.X(),
			Y:      node.Pos.Y(),
			Island: node.Island,
		})
	}
	return positions, stats
}
