package transform

import (
	"math/rand/v2"
	"strconv"

	"github.com/matzehuels/depflow/pkg/depgraph"
)

// build creates a graph with nodes in the given order and edges as pairs.
func build(ids []string, edges ...[2]string) *depgraph.Graph {
	g := depgraph.New()
	for _, id := range ids {
		_ = g.AddNode(depgraph.Node{ID: id})
	}
	for _, e := range edges {
		_ = g.AddEdge(depgraph.Edge{From: e[0], To: e[1]})
	}
	return g
}

// randomGraph creates n nodes and m random edges. With acyclic set, edges
// only point from lower to higher index.
func randomGraph(r *rand.Rand, n, m int, acyclic bool) *depgraph.Graph {
	g := depgraph.New()
	ids := make([]string, n)
	for i := range ids {
		ids[i] = "n" + strconv.Itoa(i)
		_ = g.AddNode(depgraph.Node{ID: ids[i]})
	}
	for range m {
		a, b := r.IntN(n), r.IntN(n)
		if acyclic {
			if a == b {
				continue
			}
			if a > b {
				a, b = b, a
			}
		}
		_ = g.AddEdge(depgraph.Edge{From: ids[a], To: ids[b]})
	}
	return g
}
