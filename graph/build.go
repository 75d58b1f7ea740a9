package graph

import (
	"math"

	"github.com/quartercastle/vector"
)

type edgeKey struct{ lo, hi int64 }

func canonical(a, b int64) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{lo: a, hi: b}
}

// Build turns a list of associations into a graph. Users are registered on
// first sight, duplicate associations (in either order) collapse into one
// edge and self-referential associations are ignored. Node positions start
// at the origin; the simulation places them.
func Build(assocs []Association) *Graph {
	g := &Graph{index: make(map[int64]int)}
	seen := make(map[edgeKey]struct{}, len(assocs))
	pairs := make([]edgeKey, 0, len(assocs))
	for _, assoc := range assocs {
		for _, user := range assoc {
			g.register(user)
		}
		if assoc[0].ID == assoc[1].ID {
			continue
		}
		key := canonical(assoc[0].ID, assoc[1].ID)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		pairs = append(pairs, key)
	}
	g.Relations = make([][]Relation, len(g.Nodes))
	g.Edges = make([]Edge, 0, len(pairs))
	for _, pair := range pairs {
		g.connect(g.index[pair.lo], g.index[pair.hi])
	}
	g.findIslands()
	return g
}

func (g *Graph) register(user User) {
	if _, exists := g.index[user.ID]; exists {
		return
	}
	if user.Img == "" {
		user.Img = FallbackAvatar
	}
	g.index[user.ID] = len(g.Nodes)
	g.Nodes = append(g.Nodes, &Node{
		User: user,
		Pos:  vector.Vector{0, 0},
		Vel:  vector.Vector{0, 0},
		Acc:  vector.Vector{0, 0},
	})
}

func (g *Graph) connect(a, b int) {
	na, nb := g.Nodes[a], g.Nodes[b]
	edge := Edge{A: a, B: b, AtA: len(g.Relations[a]), AtB: len(g.Relations[b])}
	g.Relations[a] = append(g.Relations[a], Relation{Neighbor: b, ID: nb.User.ID, SiblingNumber: na.AssocCount})
	g.Relations[b] = append(g.Relations[b], Relation{Neighbor: a, ID: na.User.ID, SiblingNumber: nb.AssocCount})
	na.AssocCount++
	nb.AssocCount++
	g.Edges = append(g.Edges, edge)
}

// findIslands partitions the nodes into connected components with an
// explicit stack, so deep graphs cannot exhaust the goroutine stack.
func (g *Graph) findIslands() {
	visited := make([]bool, len(g.Nodes))
	stack := []int{}
	for start := len(g.Nodes) - 1; start >= 0; start-- {
		if visited[start] {
			continue
		}
		island := &Island{Vel: vector.Vector{0, 0}, Acc: vector.Vector{0, 0}}
		islandIndex := len(g.Islands)
		total := 0
		visited[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			island.Members = append(island.Members, current)
			total += g.Nodes[current].AssocCount
			g.Nodes[current].Island = islandIndex
			for _, rel := range g.Relations[current] {
				if visited[rel.Neighbor] {
					continue
				}
				visited[rel.Neighbor] = true
				stack = append(stack, rel.Neighbor)
			}
		}
		island.Mass = math.Sqrt(1 + float64(total))
		g.RecalculateCentroid(island)
		g.Islands = append(g.Islands, island)
	}
}
