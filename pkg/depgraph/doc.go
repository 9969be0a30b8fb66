// Package depgraph provides the directed dependency graph between project
// files and the builder that derives it from raw import facts.
//
// # Overview
//
// Each node is a filesystem entry identified by its normalized,
// forward-slash separated project-relative path ("src/utils/helpers.ts").
// Each edge means "From imports To". The graph is a multigraph: the same
// import appearing twice yields two edges, and self-imports and cycles are
// kept as-is. Layout code in the [transform] subpackage handles both.
//
// The structure is an explicit adjacency representation: a node map, the
// node insertion order, and outgoing/incoming neighbor lists per node. All
// enumeration happens in insertion order, which is what makes the layout
// algorithms deterministic.
//
// # Building
//
// [Build] takes the node inventory and, per source file, a lazy sequence of
// raw import strings:
//
//	g := depgraph.Build(
//	    []depgraph.Node{{ID: "src/a.ts"}, {ID: "src/b.ts"}},
//	    []depgraph.FileImports{
//	        {File: "src/a.ts", Imports: depgraph.Strings([]string{"./b", "react"})},
//	    },
//	)
//	// g has one edge: src/a.ts -> src/b.ts
//
// Import strings go through [resolve.Resolve] and [resolve.Match]. Imports
// that cannot be matched to a known node are dropped without error.
//
// # Ownership
//
// A Graph is built once per run and then only read. Layering and positioning
// return new maps and never mutate it.
//
// [transform]: github.com/matzehuels/depflow/pkg/depgraph/transform
package depgraph
