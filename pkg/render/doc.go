// Package render provides visualization output for analyzed projects.
//
// # Overview
//
// This package contains format conversion shared by the renderers:
//
//   - [ToPDF] and [ToPNG] convert an SVG document with the external
//     rsvg-convert tool (from librsvg)
//   - Node-link diagrams live in the [nodelink] subpackage
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the layered import graph with Graphviz.
// Files appear as boxes grouped into rows by layer, connected by arrows.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.Options{})
//	pdf, err := render.ToPDF(svg)
//
// [nodelink]: github.com/matzehuels/depflow/pkg/render/nodelink
package render
