package layout

import (
	"math"

	"github.com/quartercastle/vector"
	"github.com/suxatcode/klinekart/graph"
	"golang.org/x/exp/constraints"
)

func clamp[T constraints.Float](in, lo, hi T) T {
	if in > hi {
		return hi
	} else if in < lo {
		return lo
	}
	return in
}

// idealSeparation grows exponentially with the smaller association count of
// both endpoints: densely connected pairs are kept further apart.
func (fs *ForceSimulation) idealSeparation(a, b *graph.Node) float64 {
	correlator := a.AssocCount
	if b.AssocCount < correlator {
		correlator = b.AssocCount
	}
	ideal := fs.conf.Equilibrium
	if correlator > 1 {
		ideal *= math.Pow(fs.conf.EquilibriumGrowth, float64(correlator))
	}
	return ideal
}

// applySpringForce accelerates a and b along their connecting line, with
// exactly opposite forces.
func (fs *ForceSimulation) applySpringForce(a, b *graph.Node) {
	delta := a.Pos.Sub(b.Pos)
	dist := delta.Magnitude()
	if dist == 0 {
		dist = fs.conf.ZeroDistance
	}
	offset := clamp(fs.idealSeparation(a, b)-dist, fs.conf.SpringOvershootFloor, math.Inf(+1))
	force := delta.Scale(fs.conf.SpringCoefficient * offset / dist)
	vector.In(a.Acc).Add(force)
	vector.In(b.Acc).Sub(force)
}

// SiblingRepulsion pushes node away from the other neighbors of parent.
// atParent is the index of the relation toward node inside
// g.Relations[parent].
type SiblingRepulsion interface {
	Apply(g *graph.Graph, node, parent, atParent int)
}

// ExactSiblings repels node from every other neighbor of parent with a
// constant magnitude along the connecting line. O(degree) per call.
type ExactSiblings struct {
	Coefficient float64
	MinDistance float64
}

func (s ExactSiblings) Apply(g *graph.Graph, node, parent, atParent int) {
	n := g.Nodes[node]
	for _, rel := range g.Relations[parent] {
		if rel.Neighbor == node {
			continue
		}
		delta := g.Nodes[rel.Neighbor].Pos.Sub(n.Pos)
		dist := clamp(delta.Magnitude(), s.MinDistance, math.Inf(+1))
		vector.In(n.Acc).Sub(delta.Scale(s.Coefficient / dist))
	}
}

// DesignatedSibling repels node from a single neighbor of parent: the one
// registered right after node, wrapping around. O(1) per call.
type DesignatedSibling struct {
	Coefficient float64
	MinDistance float64
}

func (s DesignatedSibling) Apply(g *graph.Graph, node, parent, atParent int) {
	count := g.Nodes[parent].AssocCount
	if count <= 1 {
		return
	}
	number := g.Relations[parent][atParent].SiblingNumber
	designated := g.Relations[parent][(number+1)%count].Neighbor
	applyConstantRepulsion(g.Nodes[node], g.Nodes[designated], s.Coefficient, s.MinDistance)
}

func applyConstantRepulsion(a, b *graph.Node, coefficient, minDistance float64) {
	delta := a.Pos.Sub(b.Pos)
	dist := clamp(delta.Magnitude(), minDistance, math.Inf(+1))
	force := delta.Scale(coefficient / dist)
	vector.In(a.Acc).Add(force)
	vector.In(b.Acc).Sub(force)
}

func newSiblingRepulsion(tier Tier, conf ForceSimulationConfig) SiblingRepulsion {
	if tier == TierAggressive {
		return DesignatedSibling{Coefficient: conf.SiblingRepulsionAggressive, MinDistance: conf.MinDistanceBetweenNodes}
	}
	return ExactSiblings{Coefficient: conf.SiblingRepulsion, MinDistance: conf.MinDistanceBetweenNodes}
}
