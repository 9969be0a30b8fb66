package depgraph

import (
	"iter"

	"github.com/matzehuels/depflow/pkg/resolve"
)

// FileImports pairs a source file with the raw import strings found in it.
// Imports is consumed lazily and exactly once by [Build].
type FileImports struct {
	File    string
	Imports iter.Seq[string]
}

// Build assembles the dependency graph from a node inventory and the raw
// imports of each source file.
//
// Nodes are inserted in inventory order; repeated IDs are ignored and nodes
// with an empty ID are skipped. Imports are then processed in slice order.
// For each file that is a known node, every internal import (see
// [resolve.IsInternal]) is resolved relative to the file and matched against
// the inventory. Matches become edges with weight one per import instance;
// everything else (bare packages, missing files, sources outside the
// inventory) is dropped silently.
//
// The returned graph is complete and is treated as read-only afterwards.
func Build(nodes []Node, imports []FileImports) *Graph {
	g := New()
	for _, n := range nodes {
		_ = g.AddNode(n)
	}

	for _, fi := range imports {
		if !g.Has(fi.File) || fi.Imports == nil {
			continue
		}
		for raw := range fi.Imports {
			if !resolve.IsInternal(raw) {
				continue
			}
			target, ok := resolve.Match(resolve.Resolve(fi.File, raw), g)
			if !ok {
				continue
			}
			_ = g.AddEdge(Edge{From: fi.File, To: target})
		}
	}
	return g
}

// Strings adapts a slice to the lazy sequence expected by [FileImports].
func Strings(raw []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, s := range raw {
			if !yield(s) {
				return
			}
		}
	}
}
