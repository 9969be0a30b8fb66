package transform

import "github.com/matzehuels/depflow/pkg/depgraph"

// AssignLayers computes a layer (row) for every node of g and returns it as a
// new map. The graph is not modified.
//
// The graph is first classified with a single [TopologicalSort] attempt and
// one of two strategies runs:
//
//   - Acyclic: longest-path layering. Each node sits one layer below its
//     deepest parent; nodes without incoming edges are roots at layer 0. A
//     node's layer therefore equals the length of the longest path reaching
//     it from any root.
//   - Cyclic: breadth-first layering from the roots (or from the first node
//     when every node has a parent), see [breadthFirstLayers].
//
// Every node receives exactly one layer, starting at 0. The result depends
// only on the node and edge insertion order, so identical input yields
// identical output. An empty graph yields an empty map.
//
// # Performance
//
// Both strategies run in O(V + E).
func AssignLayers(g *depgraph.Graph) map[string]int {
	layers, _ := ClassifyAndLayer(g)
	return layers
}

// ClassifyAndLayer is [AssignLayers] that also reports which strategy ran:
// true when g is acyclic and longest-path layering was used.
func ClassifyAndLayer(g *depgraph.Graph) (map[string]int, bool) {
	if order, ok := TopologicalSort(g); ok {
		return longestPathLayers(g, order), true
	}
	return breadthFirstLayers(g), false
}

// longestPathLayers assigns layers along a topological order.
//
// Parents that have no layer yet are skipped when taking the maximum; with a
// valid topological order that cannot happen, and the node then falls back to
// layer 1 rather than failing.
func longestPathLayers(g *depgraph.Graph, order []string) map[string]int {
	layers := make(map[string]int, len(order))

	for _, id := range order {
		parents := g.Parents(id)
		if len(parents) == 0 {
			layers[id] = 0
			continue
		}

		maxParent := 0
		for _, p := range parents {
			if l, ok := layers[p]; ok && l > maxParent {
				maxParent = l
			}
		}
		layers[id] = maxParent + 1
	}
	return layers
}

// breadthFirstLayers layers a graph that contains cycles.
//
// The frontier is seeded with every node lacking incoming edges, in insertion
// order, at layer 0. If there is none, the first node in insertion order
// seeds alone. Each node is enqueued at most once; a node first reached from
// layer L gets L+1. Nodes the traversal never reaches (other components
// closed under cycles) end up at layer 0.
func breadthFirstLayers(g *depgraph.Graph) map[string]int {
	ids := g.IDs()
	layers := make(map[string]int, len(ids))
	if len(ids) == 0 {
		return layers
	}

	type entry struct {
		id    string
		layer int
	}
	visited := make(map[string]bool, len(ids))
	var queue []entry

	for _, id := range g.Sources() {
		queue = append(queue, entry{id, 0})
		visited[id] = true
	}
	if len(queue) == 0 {
		queue = append(queue, entry{ids[0], 0})
		visited[ids[0]] = true
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		layers[curr.id] = curr.layer

		for _, child := range g.Children(curr.id) {
			if !visited[child] {
				visited[child] = true
				queue = append(queue, entry{child, curr.layer + 1})
			}
		}
	}

	for _, id := range ids {
		if _, ok := layers[id]; !ok {
			layers[id] = 0
		}
	}
	return layers
}
