// Package layout runs the force simulation that places the nodes of a
// graph.Graph: association springs, sibling repulsion and island repulsion,
// integrated one fixed tick at a time.
package layout

import (
	"context"
	"time"

	"github.com/quartercastle/vector"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/klinekart/graph"
)

// ForceSimulation owns the kinematics of all nodes and islands of a graph.
// It is the only writer of node positions.
type ForceSimulation struct {
	conf     ForceSimulationConfig
	graph    *graph.Graph
	tiers    Tiers
	siblings SiblingRepulsion
	islands  IslandRepulsion

	dragged    int
	dragTarget vector.Vector
}

type Stats struct {
	Iterations int
	TotalTime  time.Duration
}

// NewForceSimulation selects the optimization tiers for g, places all nodes
// randomly inside conf.Rect and computes the initial island centroids.
func NewForceSimulation(g *graph.Graph, conf ForceSimulationConfig) *ForceSimulation {
	conf = conf.ApplyDefaults()
	fs := &ForceSimulation{
		conf:    conf,
		graph:   g,
		dragged: -1,
		tiers: Tiers{
			Sibling: conf.SiblingThresholds.Select(len(g.Edges)),
			Island:  conf.IslandThresholds.Select(len(g.Islands)),
			Node:    conf.NodeThresholds.Select(len(g.Nodes)),
			Render:  conf.RenderThresholds.Select(len(g.Nodes)),
		},
	}
	fs.siblings = newSiblingRepulsion(fs.tiers.Sibling, conf)
	fs.islands = newIslandRepulsion(fs.tiers.Island, conf)
	fs.Randomize()
	log.Debug().Msgf(
		"force simulation: %d nodes, %d edges, %d islands, tiers{sibling: %s, island: %s, node: %s, render: %s}",
		len(g.Nodes), len(g.Edges), len(g.Islands),
		fs.tiers.Sibling, fs.tiers.Island, fs.tiers.Node, fs.tiers.Render,
	)
	return fs
}

func (fs *ForceSimulation) Graph() *graph.Graph {
	return fs.graph
}

func (fs *ForceSimulation) Tiers() Tiers {
	return fs.tiers
}

func (fs *ForceSimulation) Config() ForceSimulationConfig {
	return fs.conf
}

// Randomize scatters all nodes inside the configured rect and stops them.
func (fs *ForceSimulation) Randomize() {
	for _, node := range fs.graph.Nodes {
		node.Pos = fs.conf.RandomVectorInside()
		node.Vel = vector.Vector{0, 0}
		node.Acc = vector.Vector{0, 0}
	}
	for _, island := range fs.graph.Islands {
		island.Vel = vector.Vector{0, 0}
		island.Acc = vector.Vector{0, 0}
		fs.graph.RecalculateCentroid(island)
	}
}

// Tick advances the simulation by one fixed step.
func (fs *ForceSimulation) Tick() {
	fs.updateAssociations()
	fs.updateIslands()
	fs.updateNodes()
}

// Run performs ticks steps, or fewer if ctx is cancelled.
func (fs *ForceSimulation) Run(ctx context.Context, ticks int) Stats {
	startTime := time.Now()
	stats := Stats{}
simulation:
	for stats.Iterations < ticks {
		select {
		case <-ctx.Done():
			break simulation
		default:
		}
		fs.Tick()
		stats.Iterations += 1
	}
	stats.TotalTime = time.Since(startTime)
	return stats
}

func (fs *ForceSimulation) updateAssociations() {
	g := fs.graph
	for _, edge := range g.Edges {
		fs.applySpringForce(g.Nodes[edge.A], g.Nodes[edge.B])
		fs.siblings.Apply(g, edge.A, edge.B, edge.AtB)
		fs.siblings.Apply(g, edge.B, edge.A, edge.AtA)
	}
}

func (fs *ForceSimulation) updateIslands() {
	g := fs.graph
	fs.islands.Apply(g.Islands)
	decay := 1 - fs.conf.IslandDamping
	for _, island := range g.Islands {
		vector.In(island.Vel).Add(island.Acc)
		vector.In(island.Vel).Scale(decay)
		island.Acc = vector.Vector{0, 0}
		g.RecalculateCentroid(island)
	}
	if fs.dragged >= 0 {
		island := g.IslandOf(fs.dragged)
		island.Vel = vector.Vector{0, 0}
		island.Acc = vector.Vector{0, 0}
	}
}

func (fs *ForceSimulation) updateNodes() {
	g := fs.graph
	decay := 1 - fs.conf.Damping
	for i, node := range g.Nodes {
		if i == fs.dragged {
			node.Pos = fs.dragTarget.Clone()
			node.Vel = vector.Vector{0, 0}
			node.Acc = vector.Vector{0, 0}
			continue
		}
		island := g.IslandOf(i)
		vector.In(node.Vel).Add(node.Acc).Add(island.Vel).Scale(decay)
		vector.In(node.Pos).Add(node.Vel)
		node.Acc = vector.Vector{0, 0}
	}
}

// Drag pins node i to pos until Release is called. Any drag in progress is
// replaced.
func (fs *ForceSimulation) Drag(i int, pos vector.Vector) {
	fs.dragged = i
	fs.MoveDragged(pos)
}

// MoveDragged moves the dragged node, if any, to pos.
func (fs *ForceSimulation) MoveDragged(pos vector.Vector) {
	if fs.dragged < 0 {
		return
	}
	fs.dragTarget = pos.Clone()
	node := fs.graph.Nodes[fs.dragged]
	node.Pos = pos.Clone()
	node.Vel = vector.Vector{0, 0}
	node.Acc = vector.Vector{0, 0}
}

// Release ends the current drag. The released node integrates normally
// from the next tick on, starting from rest.
func (fs *ForceSimulation) Release() {
	fs.dragged = -1
	fs.dragTarget = nil
}

func (fs *ForceSimulation) Dragged() (int, bool) {
	return fs.dragged, fs.dragged >= 0
}
