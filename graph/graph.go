// Package graph holds the social graph the force simulation operates on:
// users, deduplicated associations, sibling relations and islands.
package graph

import (
	"github.com/quartercastle/vector"
)

// FallbackAvatar is assigned to every user that comes without an image.
const FallbackAvatar = "https://m.media-amazon.com/images/M/MV5BMjA5NTE4NTE5NV5BMl5BanBnXkFtZTcwMTcyOTY5Mw@@._V1_.jpg"

const (
	// ThumbSize is the visual diameter of a node without associations.
	ThumbSize = 50.0
	// SizePerAssociation grows the visual diameter per association.
	SizePerAssociation = 6.0
)

// User is the record attached to a node. Negative IDs mark synthetic users.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Img  string `json:"img,omitempty"`
}

// Association is an unordered pair of users, encoded as a two element JSON
// array.
type Association [2]User

type Node struct {
	User       User          `json:"user"`
	Pos        vector.Vector `json:"pos"`
	Vel        vector.Vector `json:"-"`
	Acc        vector.Vector `json:"-"`
	AssocCount int           `json:"assocCount"`
	Island     int           `json:"island"`
}

// Size is the visual diameter of the node.
func (n *Node) Size() float64 {
	return ThumbSize + SizePerAssociation*float64(n.AssocCount)
}

// HitRadius is the radius around the node position in which the pointer
// counts as touching the node.
func (n *Node) HitRadius() float64 {
	return n.Size() / 2
}

// Edge connects the nodes at index A and B. AtA is the index of the relation
// toward B inside Relations[A], AtB the one toward A inside Relations[B].
type Edge struct {
	A, B     int
	AtA, AtB int
}

// Relation describes a neighbor from the point of view of its owner.
// SiblingNumber is the owner's association count at the time the relation
// was registered, which is also its index in the owner's relation list.
type Relation struct {
	Neighbor      int
	ID            int64
	SiblingNumber int
}

// Island is a connected component of the association graph.
type Island struct {
	Members  []int
	Mass     float64
	Centroid vector.Vector
	Vel      vector.Vector
	Acc      vector.Vector
}

type Graph struct {
	Nodes     []*Node
	Edges     []Edge
	Relations [][]Relation
	Islands   []*Island
	index     map[int64]int
}

// Index returns the arena index of the node belonging to user id.
func (g *Graph) Index(id int64) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// IslandOf returns the island node i belongs to.
func (g *Graph) IslandOf(i int) *Island {
	return g.Islands[g.Nodes[i].Island]
}

// Neighbors returns the node indices adjacent to node i in registration
// order.
func (g *Graph) Neighbors(i int) []int {
	neighbors := make([]int, 0, len(g.Relations[i]))
	for _, rel := range g.Relations[i] {
		neighbors = append(neighbors, rel.Neighbor)
	}
	return neighbors
}

// RecalculateCentroid sets the island centroid to the mean member position.
func (g *Graph) RecalculateCentroid(island *Island) {
	sum := vector.Vector{0, 0}
	for _, member := range island.Members {
		vector.In(sum).Add(g.Nodes[member].Pos)
	}
	island.Centroid = sum.Scale(1 / float64(len(island.Members)))
}
