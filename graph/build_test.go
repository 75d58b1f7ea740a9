package graph

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func u(id int64) User {
	return User{ID: id, Name: "user", Img: "img"}
}

func TestBuild(t *testing.T) {
	for _, test := range []struct {
		Name       string
		Assocs     []Association
		Assertions func(t *testing.T, g *Graph)
	}{
		{
			Name:   "(A,B) and (B,A) yield exactly one edge",
			Assocs: []Association{{u(1), u(2)}, {u(2), u(1)}, {u(1), u(2)}},
			Assertions: func(t *testing.T, g *Graph) {
				assert := assert.New(t)
				assert.Len(g.Nodes, 2)
				assert.Len(g.Edges, 1)
				assert.Equal(1, g.Nodes[0].AssocCount)
				assert.Equal(1, g.Nodes[1].AssocCount)
			},
		},
		{
			Name:   "self-referential association registers the user without an edge",
			Assocs: []Association{{u(3), u(3)}},
			Assertions: func(t *testing.T, g *Graph) {
				assert := assert.New(t)
				assert.Len(g.Nodes, 1)
				assert.Empty(g.Edges)
				assert.Len(g.Islands, 1)
				assert.Equal(1.0, g.Islands[0].Mass)
			},
		},
		{
			Name:   "missing avatar falls back to placeholder, first record wins",
			Assocs: []Association{{{ID: 1, Name: "a"}, u(2)}, {{ID: 1, Name: "b", Img: "x"}, u(3)}},
			Assertions: func(t *testing.T, g *Graph) {
				i, ok := g.Index(1)
				assert.True(t, ok)
				assert.Equal(t, FallbackAvatar, g.Nodes[i].User.Img)
				assert.Equal(t, "a", g.Nodes[i].User.Name)
			},
		},
		{
			Name:   "island mass is sqrt(1 + sum of association counts)",
			Assocs: []Association{{u(1), u(2)}, {u(2), u(3)}, {u(10), u(11)}},
			Assertions: func(t *testing.T, g *Graph) {
				assert := assert.New(t)
				assert.Len(g.Islands, 2)
				i, _ := g.Index(1)
				assert.Equal(math.Sqrt(1+4), g.IslandOf(i).Mass)
				j, _ := g.Index(10)
				assert.Equal(math.Sqrt(1+2), g.IslandOf(j).Mass)
			},
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			test.Assertions(t, Build(test.Assocs))
		})
	}
}

func TestBuild_siblingNumbers(t *testing.T) {
	assocs := []Association{{u(1), u(2)}, {u(1), u(3)}, {u(3), u(2)}, {u(1), u(4)}}
	g := Build(assocs)
	assert := assert.New(t)
	counts := make([]int, len(g.Nodes))
	for _, edge := range g.Edges {
		// relation toward B registered on A, numbered with A's count at that time
		assert.Equal(counts[edge.A], g.Relations[edge.A][edge.AtA].SiblingNumber)
		assert.Equal(edge.B, g.Relations[edge.A][edge.AtA].Neighbor)
		assert.Equal(counts[edge.B], g.Relations[edge.B][edge.AtB].SiblingNumber)
		assert.Equal(edge.A, g.Relations[edge.B][edge.AtB].Neighbor)
		counts[edge.A]++
		counts[edge.B]++
	}
	for i, node := range g.Nodes {
		assert.Equal(counts[i], node.AssocCount)
		for k, rel := range g.Relations[i] {
			assert.Equal(k, rel.SiblingNumber, "sibling number is the registration index")
		}
	}
	one, _ := g.Index(1)
	assert.Equal(3, g.Nodes[one].AssocCount)
	assert.Len(g.Neighbors(one), 3)
}

func TestBuild_noEdges(t *testing.T) {
	g := Build([]Association{{u(1), u(1)}, {u(2), u(2)}, {u(3), u(3)}})
	assert := assert.New(t)
	assert.Len(g.Islands, 3)
	for _, island := range g.Islands {
		assert.Len(island.Members, 1)
		assert.Equal(1.0, island.Mass)
	}
}

// connectedByPath answers reachability with a plain BFS over the edge list.
func connectedByPath(g *Graph, from, to int) bool {
	adj := make(map[int][]int)
	for _, e := range g.Edges {
		adj[e.A] = append(adj[e.A], e.B)
		adj[e.B] = append(adj[e.B], e.A)
	}
	seen := map[int]bool{from: true}
	queue := []int{from}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n == to {
			return true
		}
		for _, m := range adj[n] {
			if !seen[m] {
				seen[m] = true
				queue = append(queue, m)
			}
		}
	}
	return false
}

func TestBuild_islandsPartitionNodes(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42} {
		rnd := rand.New(rand.NewSource(seed))
		g := Build(Generate(rnd, 60, 3))
		assert := assert.New(t)
		membership := make([]int, len(g.Nodes))
		for i := range membership {
			membership[i] = -1
		}
		for islandIndex, island := range g.Islands {
			for _, member := range island.Members {
				assert.Equal(-1, membership[member], "node %d in more than one island", member)
				membership[member] = islandIndex
				assert.Equal(islandIndex, g.Nodes[member].Island)
			}
		}
		for i := range g.Nodes {
			assert.NotEqual(-1, membership[i], "node %d in no island", i)
		}
		for a := 0; a < len(g.Nodes); a += 7 {
			for b := 0; b < len(g.Nodes); b += 5 {
				assert.Equal(connectedByPath(g, a, b), membership[a] == membership[b])
			}
		}
	}
}

func TestBuild_deepChainDoesNotRecurse(t *testing.T) {
	n := 200000
	assocs := make([]Association, 0, n)
	for i := 0; i < n; i++ {
		assocs = append(assocs, Association{u(int64(i)), u(int64(i + 1))})
	}
	g := Build(assocs)
	assert.Len(t, g.Islands, 1)
	assert.Len(t, g.Islands[0].Members, n+1)
}

func TestGenerate(t *testing.T) {
	assocs := Generate(rand.New(rand.NewSource(7)), 100, 5)
	assert := assert.New(t)
	assert.NotEmpty(assocs)
	for _, assoc := range assocs {
		assert.Less(assoc[0].ID, assoc[1].ID)
		assert.Less(assoc[1].ID, int64(100))
	}
	assert.Empty(Generate(rand.New(rand.NewSource(7)), 100, 0))
}
