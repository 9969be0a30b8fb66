// Package transform computes layered layouts for dependency graphs.
//
// # Overview
//
// The layout is a two-step pure transformation of a read-only
// [depgraph.Graph]:
//
//  1. [AssignLayers] maps every node to a non-negative layer.
//  2. [AssignPositions] maps layers to deterministic grid coordinates.
//
// [Layout] runs both. Neither step mutates the graph; each returns a new map.
//
// # Layer Assignment
//
// The graph is classified with one [TopologicalSort] attempt.
//
// For an acyclic graph every node is placed at the length of the longest
// path reaching it from a root (a node without incoming edges). Parents are
// therefore always on strictly lower layers than their children.
//
// Import graphs often contain cycles, in which case no topological order
// exists. AssignLayers then falls back to a breadth-first traversal from the
// roots, or from the first node when the whole graph sits inside cycles.
// Every node is visited at most once, so the traversal terminates on any
// input, self-loops included. Nodes it cannot reach default to layer 0.
//
// Both strategies only depend on insertion order, so the same input always
// yields the same layers.
//
// # Position Assignment
//
// Within a layer nodes are sorted by ID. Coordinates follow [Config]:
//
//	x = OffsetX + index*NodeSpacingX
//	y = OffsetY + layer*LayerSpacingY
//
// This is a grid placement, not a crossing-minimizing one.
//
// # Cycle Report
//
// [FindCycles] lists the strongly connected components that form cycles. It
// is informational: exporters flag the affected nodes, layering ignores it.
//
// # Usage
//
//	layers := transform.AssignLayers(g)
//	positions := transform.AssignPositions(layers, transform.DefaultConfig())
//
// [depgraph.Graph]: github.com/matzehuels/depflow/pkg/depgraph#Graph
package transform
