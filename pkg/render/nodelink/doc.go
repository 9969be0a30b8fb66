// Package nodelink renders analyzed projects as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz: files
// appear as boxes, import relations as arrows pointing from the importer to
// the imported file.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.Options{})
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot, opts)
//	png, err := nodelink.RenderPNG(ctx, dot, opts, 2.0)  // 2x scale
//
// # Layers
//
// When the graph carries a layout, nodes of the same layer are emitted in a
// rank=same group so Graphviz keeps depflow's rows. With [Options.Pinned]
// the computed coordinates are used verbatim and the neato engine draws only
// the edges.
//
// Nodes are filled by hexagonal layer. Nodes on import cycles get a dashed
// outline, and edges that violate an architecture rule are drawn in red.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
