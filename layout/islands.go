package layout

import (
	"math"

	"github.com/quartercastle/vector"
	"github.com/suxatcode/klinekart/graph"
)

// IslandRepulsion accumulates inter-island acceleration.
type IslandRepulsion interface {
	Apply(islands []*graph.Island)
}

type islandForce struct {
	Coefficient float64
	MinDistance float64
	MaxDistance float64
}

// repel applies an inverse-cube force on the centroid separation of a and
// b, weighted by the mass of the respective other island.
func (f islandForce) repel(a, b *graph.Island) {
	delta := a.Centroid.Sub(b.Centroid)
	dist := math.Max(f.MinDistance, delta.Magnitude())
	if dist > f.MaxDistance {
		return
	}
	distCubed := dist * dist * dist
	vector.In(a.Acc).Add(delta.Scale(f.Coefficient * b.Mass / distCubed))
	vector.In(b.Acc).Sub(delta.Scale(f.Coefficient * a.Mass / distCubed))
}

// AllPairs considers every pair of islands, O(k²).
type AllPairs struct{ islandForce }

func (s AllPairs) Apply(islands []*graph.Island) {
	for i := 0; i < len(islands); i++ {
		for j := i + 1; j < len(islands); j++ {
			s.repel(islands[i], islands[j])
		}
	}
}

// OddPairs only lets odd-indexed islands interact with each other.
type OddPairs struct{ islandForce }

func (s OddPairs) Apply(islands []*graph.Island) {
	for i := 1; i < len(islands); i += 2 {
		for j := i + 2; j < len(islands); j += 2 {
			s.repel(islands[i], islands[j])
		}
	}
}

// Ring pairs every island with its cyclic successor, O(k).
type Ring struct{ islandForce }

func (s Ring) Apply(islands []*graph.Island) {
	if len(islands) < 2 {
		return
	}
	for i := range islands {
		s.repel(islands[i], islands[(i+1)%len(islands)])
	}
}

func newIslandRepulsion(tier Tier, conf ForceSimulationConfig) IslandRepulsion {
	force := islandForce{
		Coefficient: conf.IslandRepulsion,
		MinDistance: conf.IslandMinDistance,
		MaxDistance: conf.IslandMaxDistance,
	}
	switch tier {
	case TierAggressive:
		force.Coefficient = conf.IslandRepulsionAggressive
		return Ring{force}
	case TierMedium:
		return OddPairs{force}
	}
	return AllPairs{force}
}
