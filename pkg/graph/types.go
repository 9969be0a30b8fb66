package graph

import (
	"slices"

	"github.com/matzehuels/depflow/pkg/depgraph"
	"github.com/matzehuels/depflow/pkg/depgraph/transform"
	errs "github.com/matzehuels/depflow/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

// Node types.
const (
	TypeFile      = "file"
	TypeDirectory = "directory"
)

// Metadata keys read by FromDepGraph and written by ToDepGraph.
const (
	MetaHexLayer  = "hex_layer"
	MetaLineCount = "line_count"
	MetaImports   = "imports"
	MetaExports   = "exports"
)

// =============================================================================
// Graph - Analyzed Project
// =============================================================================

// Graph is the serialization format for an analyzed project.
type Graph struct {
	Nodes  []Node     `json:"nodes"`
	Links  []Link     `json:"links"`
	Cycles [][]string `json:"cycles,omitempty"` // Groups of nodes on import cycles
}

// Node is one file or directory.
type Node struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"` // "file" or "directory"
	Path      string   `json:"path"`
	HexLayer  string   `json:"hex_layer"`
	LineCount *int     `json:"line_count,omitempty"`
	Imports   *int     `json:"imports,omitempty"`
	Exports   *int     `json:"exports,omitempty"`
	Layer     *int     `json:"layer,omitempty"`
	X         *float64 `json:"x,omitempty"`
	Y         *float64 `json:"y,omitempty"`
	Cyclic    bool     `json:"cyclic,omitempty"`
}

// IsDir returns true for directory nodes.
func (n *Node) IsDir() bool { return n.Type == TypeDirectory }

// Positioned returns true if the node carries a computed layout.
func (n *Node) Positioned() bool { return n.Layer != nil && n.X != nil && n.Y != nil }

// Link is a directed import relation.
type Link struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Weight    int    `json:"weight"`
	Violation string `json:"violation,omitempty"` // Name of the violated architecture rule
}

// =============================================================================
// depgraph ↔ Graph Conversion
// =============================================================================

// FromDepGraph converts g to its serialization format. Nodes keep insertion
// order and every edge becomes a link of weight 1.
func FromDepGraph(g *depgraph.Graph) Graph {
	edges := g.Edges()
	out := Graph{
		Nodes: make([]Node, 0, g.NodeCount()),
		Links: make([]Link, len(edges)),
	}

	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, nodeFromDepGraph(n))
	}
	for i, e := range edges {
		out.Links[i] = Link{Source: e.From, Target: e.To, Weight: 1}
	}
	return out
}

// ToDepGraph rebuilds the internal graph, for example to re-run the layout
// on a saved file. Node IDs are validated; links referencing unknown nodes
// fail with an INVALID_GRAPH error.
func (g Graph) ToDepGraph() (*depgraph.Graph, error) {
	d := depgraph.New()

	for _, n := range g.Nodes {
		if err := errs.ValidateNodeID(n.ID); err != nil {
			return nil, err
		}
		if err := d.AddNode(nodeToDepGraph(n)); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidGraph, err, "add node %s", n.ID)
		}
	}

	for _, l := range g.Links {
		if err := d.AddEdge(depgraph.Edge{From: l.Source, To: l.Target}); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidGraph, err, "add link %s→%s", l.Source, l.Target)
		}
	}
	return d, nil
}

// ApplyLayout sets layer and coordinates on every node that has a position
// and clears them on nodes that do not.
func (g *Graph) ApplyLayout(positions map[string]transform.Position) {
	for i := range g.Nodes {
		n := &g.Nodes[i]
		p, ok := positions[n.ID]
		if !ok {
			n.Layer, n.X, n.Y = nil, nil, nil
			continue
		}
		n.Layer, n.X, n.Y = ptr(p.Layer), ptr(p.X), ptr(p.Y)
	}
}

// MarkCycles records the cycle groups and flags their members as cyclic.
func (g *Graph) MarkCycles(cycles [][]string) {
	g.Cycles = cycles
	for i := range g.Nodes {
		g.Nodes[i].Cyclic = false
		for _, c := range cycles {
			if slices.Contains(c, g.Nodes[i].ID) {
				g.Nodes[i].Cyclic = true
				break
			}
		}
	}
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// Layers groups positioned nodes by layer, each layer ordered by x. Nodes
// without a layout are omitted.
func (g Graph) Layers() [][]Node {
	var layers [][]Node
	for _, n := range g.Nodes {
		if n.Layer == nil {
			continue
		}
		for len(layers) <= *n.Layer {
			layers = append(layers, nil)
		}
		layers[*n.Layer] = append(layers[*n.Layer], n)
	}
	for _, layer := range layers {
		slices.SortStableFunc(layer, func(a, b Node) int {
			return compareX(a, b)
		})
	}
	return layers
}

// Violations returns the links that break an architecture rule.
func (g Graph) Violations() []Link {
	var out []Link
	for _, l := range g.Links {
		if l.Violation != "" {
			out = append(out, l)
		}
	}
	return out
}

// =============================================================================
// Internal Helpers
// =============================================================================

func nodeFromDepGraph(n *depgraph.Node) Node {
	node := Node{
		ID:       n.ID,
		Name:     n.Name,
		Type:     TypeFile,
		Path:     n.ID,
		HexLayer: metaString(n.Meta, MetaHexLayer),
	}
	if n.Kind == depgraph.KindDirectory {
		node.Type = TypeDirectory
	}
	node.LineCount = metaInt(n.Meta, MetaLineCount)
	node.Imports = metaInt(n.Meta, MetaImports)
	node.Exports = metaInt(n.Meta, MetaExports)
	return node
}

func nodeToDepGraph(n Node) depgraph.Node {
	node := depgraph.Node{
		ID:   n.ID,
		Name: n.Name,
		Kind: depgraph.KindFile,
		Meta: depgraph.Metadata{},
	}
	if n.IsDir() {
		node.Kind = depgraph.KindDirectory
	}
	if n.HexLayer != "" {
		node.Meta[MetaHexLayer] = n.HexLayer
	}
	for key, v := range map[string]*int{
		MetaLineCount: n.LineCount,
		MetaImports:   n.Imports,
		MetaExports:   n.Exports,
	} {
		if v != nil {
			node.Meta[key] = *v
		}
	}
	return node
}

func metaString(m depgraph.Metadata, key string) string {
	s, _ := m[key].(string)
	return s
}

func metaInt(m depgraph.Metadata, key string) *int {
	if v, ok := m[key].(int); ok {
		return &v
	}
	return nil
}

func compareX(a, b Node) int {
	switch {
	case a.X == nil || b.X == nil || *a.X == *b.X:
		return 0
	case *a.X < *b.X:
		return -1
	default:
		return 1
	}
}

func ptr[T any](v T) *T { return &v }
