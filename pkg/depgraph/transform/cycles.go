package transform

import (
	"slices"
	"strings"

	"github.com/matzehuels/depflow/pkg/depgraph"
)

// TopologicalSort returns the node IDs ordered so that every edge points from
// an earlier to a later node, and true. If the graph has a cycle (a self-loop
// included) no such order exists and it returns nil, false.
//
// Kahn's algorithm is seeded with the zero in-degree nodes in insertion order
// and releases children in edge order, so the result is deterministic.
// Duplicate edges are counted once per instance on both sides and cancel out.
func TopologicalSort(g *depgraph.Graph) ([]string, bool) {
	ids := g.IDs()
	inDegree := make(map[string]int, len(ids))
	queue := make([]string, 0, len(ids))

	for _, id := range ids {
		degree := g.InDegree(id)
		inDegree[id] = degree
		if degree == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(ids))
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		order = append(order, curr)

		for _, child := range g.Children(curr) {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if len(order) != len(ids) {
		return nil, false
	}
	return order, true
}

// FindCycles returns the groups of nodes that sit on a directed cycle: every
// strongly connected component with more than one member, plus nodes that
// import themselves. Members are sorted, and groups are ordered by their
// first member.
func FindCycles(g *depgraph.Graph) [][]string {
	var (
		index   = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		stack   []string
		next    int
		cycles  [][]string
	)

	var strongConnect func(id string)
	strongConnect = func(id string) {
		index[id] = next
		lowlink[id] = next
		next++
		stack = append(stack, id)
		onStack[id] = true

		selfLoop := false
		for _, child := range g.Children(id) {
			if child == id {
				selfLoop = true
			}
			if _, seen := index[child]; !seen {
				strongConnect(child)
				lowlink[id] = min(lowlink[id], lowlink[child])
			} else if onStack[child] {
				lowlink[id] = min(lowlink[id], index[child])
			}
		}

		if lowlink[id] != index[id] {
			return
		}

		var component []string
		for {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[top] = false
			component = append(component, top)
			if top == id {
				break
			}
		}
		if len(component) > 1 || selfLoop {
			slices.Sort(component)
			cycles = append(cycles, component)
		}
	}

	for _, id := range g.IDs() {
		if _, seen := index[id]; !seen {
			strongConnect(id)
		}
	}

	slices.SortFunc(cycles, func(a, b []string) int {
		return strings.Compare(a[0], b[0])
	})
	return cycles
}
