package interaction

import (
	"github.com/quartercastle/vector"
	"github.com/suxatcode/klinekart/graph"
)

func touches(node *graph.Node, pos vector.Vector) (float64, bool) {
	dx, dy := pos.X()-node.Pos.X(), pos.Y()-node.Pos.Y()
	distSq := dx*dx + dy*dy
	r := node.HitRadius()
	return distSq, distSq < r*r
}

// HitTest appends every node whose hit radius contains pos, in node order.
func HitTest(g *graph.Graph, pos vector.Vector, res []Candidate) []Candidate {
	for i, node := range g.Nodes {
		if distSq, ok := touches(node, pos); ok {
			res = append(res, Candidate{Node: i, DistSq: distSq})
		}
	}
	return res
}

// Nearest returns the candidate closest to the pointer. Ties go to the
// first candidate.
func Nearest(candidates []Candidate) (int, bool) {
	if len(candidates) == 0 {
		return -1, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.DistSq < best.DistSq {
			best = c
		}
	}
	return best.Node, true
}
