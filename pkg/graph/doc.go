// Package graph provides the serialization format for analyzed projects.
//
// This package defines depflow's wire format, used for graph.json files,
// HTTP API responses, and cached layouts.
//
// # Architecture
//
// The package sits at the serialization boundary:
//
//   - [Graph]: Serialization type (this package)
//   - depgraph.Graph: Internal graph used for building and layering
//   - transform.Position: Computed coordinates
//
// Use [FromDepGraph], [Graph.ApplyLayout] and [Graph.ToDepGraph] to convert
// between them.
//
// # Format
//
// Graphs use a node-link JSON format:
//
//	{
//	  "nodes": [
//	    {"id": "src", "name": "src", "type": "directory", "path": "src", "hex_layer": "default"},
//	    {"id": "src/main.ts", "name": "main.ts", "type": "file", "path": "src/main.ts",
//	     "hex_layer": "default", "line_count": 12, "imports": 2, "exports": 0,
//	     "layer": 0, "x": 50, "y": 50}
//	  ],
//	  "links": [
//	    {"source": "src/main.ts", "target": "src/utils.ts", "weight": 1}
//	  ],
//	  "cycles": [["src/a.ts", "src/b.ts"]]
//	}
//
// Scan facts (line_count, imports, exports) appear only for parsed files.
// Layout fields (layer, x, y) appear only when a layout was computed.
// Links carry a violation field naming the architecture rule they break.
//
// Common operations:
//
//	g, _ := graph.ReadFile("graph.json")     // File → Graph
//	_ = graph.WriteFile(g, "graph.json")     // Graph → File
//	data, _ := graph.Marshal(g)              // Graph → []byte
//	dg, _ := g.ToDepGraph()                  // Graph → depgraph.Graph
//
// # Node Metadata
//
// [FromDepGraph] reads scan facts from well-known depgraph metadata keys:
//
//	hex_layer   Hexagonal architecture role (string)
//	line_count  Number of lines (int)
//	imports     Number of import statements (int)
//	exports     Number of exported names (int)
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
