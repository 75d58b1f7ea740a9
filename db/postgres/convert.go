package postgres

import (
	"github.com/suxatcode/klinekart/graph"
)

func toGraphUser(u User) graph.User {
	return graph.User{ID: u.ID, Name: u.Name, Img: u.Img}
}

func ToGraph(assocs []Association) []graph.Association {
	res := make([]graph.Association, 0, len(assocs))
	for _, a := range assocs {
		res = append(res, graph.Association{toGraphUser(a.From), toGraphUser(a.To)})
	}
	return res
}

// FromGraph splits pairs into the distinct users in first-sight order and
// the rows linking them. Repeated pairs are stored once.
func FromGraph(assocs []graph.Association) ([]User, []Association) {
	users := []User{}
	pairs := []Association{}
	seenUser := map[int64]bool{}
	seenPair := map[[2]int64]bool{}
	for _, a := range assocs {
		for _, u := range a {
			if seenUser[u.ID] {
				continue
			}
			seenUser[u.ID] = true
			users = append(users, User{ID: u.ID, Name: u.Name, Img: u.Img})
		}
		key := [2]int64{a[0].ID, a[1].ID}
		if seenPair[key] {
			continue
		}
		seenPair[key] = true
		pairs = append(pairs, Association{FromID: a[0].ID, ToID: a[1].ID})
	}
	return users, pairs
}
