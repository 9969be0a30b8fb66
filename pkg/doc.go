// Package pkg provides the core libraries for depflow.
//
// # Overview
//
// depflow turns the import statements of a JavaScript/TypeScript project into
// a layered dependency graph: every file and directory becomes a node, every
// resolved internal import an edge, and every node gets a layer and a grid
// position. The pkg directory is organized into these areas:
//
//  1. [scan] - Project inventory and import/export extraction
//  2. [resolve] - Import path resolution against the inventory
//  3. [depgraph] - Graph structure, with layering in depgraph/transform
//  4. [lint] - Architecture rules checked against every import
//  5. [graph] - Serialization types for analyzed graphs
//  6. [pipeline] - Orchestration (scan → build → layout → render)
//  7. [render] - DOT, SVG, PNG, and PDF output
//  8. [cache], [config], [observability], [errors] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow through depflow:
//
//	Project directory
//	         ↓
//	    [scan] package (inventory + per-file facts)
//	         ↓
//	    [depgraph] package (resolve imports into edges)
//	         ↓
//	    [depgraph/transform] package (layers, positions, cycles)
//	         ↓
//	    [graph] package (JSON) or [render] package (diagrams)
//
// # Quick Start
//
// Analyze a project and write the result:
//
//	import (
//	    "context"
//	    "os"
//	    "github.com/matzehuels/depflow/pkg/graph"
//	    "github.com/matzehuels/depflow/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{Root: "./web"})
//	if err != nil {
//	    return err
//	}
//	graph.Write(result.Graph, os.Stdout)
//
// Or drive the core directly:
//
//	g := depgraph.Build(nodes, imports)
//	positions := transform.Layout(g, transform.DefaultConfig())
//
// # Determinism
//
// Layers depend only on the graph's node and edge insertion order, and
// positions within a layer follow lexicographic node ID order. Identical
// input always yields identical output, which is what makes layout caching
// by structure hash sound.
//
// [scan]: github.com/matzehuels/depflow/pkg/scan
// [resolve]: github.com/matzehuels/depflow/pkg/resolve
// [depgraph]: github.com/matzehuels/depflow/pkg/depgraph
// [depgraph/transform]: github.com/matzehuels/depflow/pkg/depgraph/transform
// [lint]: github.com/matzehuels/depflow/pkg/lint
// [graph]: github.com/matzehuels/depflow/pkg/graph
// [pipeline]: github.com/matzehuels/depflow/pkg/pipeline
// [render]: github.com/matzehuels/depflow/pkg/render
// [cache]: github.com/matzehuels/depflow/pkg/cache
// [config]: github.com/matzehuels/depflow/pkg/config
// [observability]: github.com/matzehuels/depflow/pkg/observability
// [errors]: github.com/matzehuels/depflow/pkg/errors
package pkg
