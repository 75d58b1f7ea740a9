package graph

import (
	"fmt"
	"math/rand"
)

// Generate creates a random association list of users users, each
// connected to up to averageConnections users with a higher id. It is used
// to seed test databases and to stress the simulation tiers.
func Generate(rnd *rand.Rand, users, averageConnections int) []Association {
	population := make([]User, users)
	for i := range population {
		population[i] = User{ID: int64(i), Name: fmt.Sprintf("User %d", i)}
	}
	assocs := []Association{}
	if averageConnections <= 0 {
		return assocs
	}
	for i := 0; i < users; i++ {
		if i+averageConnections >= users {
			continue
		}
		connections := rnd.Intn(averageConnections) + 1
		for j := 0; j < connections; j++ {
			other := i + 1 + rnd.Intn(averageConnections)
			assocs = append(assocs, Association{population[i], population[other]})
		}
	}
	return assocs
}
