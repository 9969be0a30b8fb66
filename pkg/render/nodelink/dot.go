package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/depflow/pkg/graph"
	"github.com/matzehuels/depflow/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes path, layer and line count in node labels.
	// When false, only the file name is shown.
	Detailed bool

	// Directories includes directory nodes. They have no links and are
	// left out by default.
	Directories bool

	// Pinned places nodes at their computed coordinates instead of letting
	// Graphviz rank them. Requires a graph with a layout.
	Pinned bool
}

// fills maps hexagonal layers to node fill colors.
var fills = map[string]string{
	"driving":     "#dbeafe",
	"domain":      "#fef3c7",
	"application": "#dcfce7",
	"driven":      "#fce7f3",
}

// ToDOT converts a graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(g graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	if opts.Pinned {
		buf.WriteString("  splines=true;\n")
	}
	buf.WriteString("\n")

	included := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.IsDir() && !opts.Directories {
			continue
		}
		included[n.ID] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, opts), ", "))
	}

	if !opts.Pinned {
		for _, layer := range g.Layers() {
			var ids []string
			for _, n := range layer {
				if included[n.ID] {
					ids = append(ids, strconv.Quote(n.ID))
				}
			}
			if len(ids) > 1 {
				fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
			}
		}
	}

	buf.WriteString("\n")
	for _, l := range g.Links {
		if !included[l.Source] || !included[l.Target] {
			continue
		}
		if l.Violation != "" {
			fmt.Fprintf(&buf, "  %q -> %q [color=red, penwidth=2, tooltip=%q];\n", l.Source, l.Target, l.Violation)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", l.Source, l.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	if !detailed {
		return n.Name
	}

	parts := []string{n.Path}
	if n.Layer != nil {
		parts = append(parts, fmt.Sprintf("layer: %d", *n.Layer))
	}
	if n.LineCount != nil {
		parts = append(parts, fmt.Sprintf("lines: %d", *n.LineCount))
	}
	if n.HexLayer != "" {
		parts = append(parts, "hex: "+n.HexLayer)
	}
	return n.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n graph.Node, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed))}
	if fill, ok := fills[n.HexLayer]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	}
	if n.Cyclic {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "color=red")
	}
	if opts.Pinned && n.X != nil && n.Y != nil {
		// Graphviz y grows upwards.
		attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g!\"", *n.X, -*n.Y))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz. Pinned options select
// the neato engine so node positions from the DOT source are kept.
func RenderSVG(ctx context.Context, dot string, opts Options) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	if opts.Pinned {
		gv.SetLayout(graphviz.NEATO)
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag with one whose viewBox starts at
// the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string, opts Options) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, opts)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, opts Options, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, opts)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
