package depgraph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. Every node is identified by a non-empty project-relative path.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Metadata stores pass-through key-value pairs attached to nodes, such as
// line or export counts produced by the scanner. The core never reads it.
type Metadata map[string]any

// NodeKind distinguishes files from directories.
type NodeKind int

const (
	// KindFile is a regular file entry.
	KindFile NodeKind = iota
	// KindDirectory is a directory entry.
	KindDirectory
)

// String returns "file" or "directory".
func (k NodeKind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// Node is a vertex of the dependency graph, one per discovered filesystem
// entry.
type Node struct {
	ID   string   // Normalized forward-slash project-relative path
	Name string   // Display name (defaults to the last path segment)
	Kind NodeKind // File or directory
	Meta Metadata // Pass-through metadata (never nil after AddNode)
}

// Edge is a directed "From imports To" relation between two nodes.
type Edge struct {
	From string
	To   string
}

// Graph is a directed multigraph keyed by node ID.
//
// Unlike a DAG, cycles and self-loops are permitted: import graphs of real
// projects routinely contain them. Nodes remember their insertion order, which
// is the stable enumeration used for deterministic traversal.
//
// The zero value is not usable - use [New]. Graph is not safe for concurrent
// mutation; once built it is only read.
type Graph struct {
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	outgoing map[string][]string // nodeID -> imported node IDs
	incoming map[string][]string // nodeID -> importing node IDs
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode inserts n. Adding an ID that already exists is a no-op, since the
// identity of a filesystem entry is stable across repeated discovery.
// Returns ErrInvalidNodeID if the ID is empty. A missing Name defaults to the
// last path segment of the ID.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return nil
	}
	if n.Name == "" {
		n.Name = BaseName(n.ID)
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	g.nodes[n.ID] = &n
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge appends a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode when an endpoint is
// missing. Duplicate edges and self-loops are accepted.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// Has reports whether a node with the given ID exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the node with the given ID and true, or nil and false.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// IDs returns a copy of all node IDs in insertion order.
func (g *Graph) IDs() []string { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges, duplicates included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the IDs the node imports, in edge insertion order.
// The returned slice must not be modified.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the IDs importing the node, in edge insertion order.
// The returned slice must not be modified.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// InDegree returns the number of incoming edges, duplicates included.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// OutDegree returns the number of outgoing edges, duplicates included.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// Sources returns the IDs of nodes with no incoming edges, in insertion order.
func (g *Graph) Sources() []string {
	var sources []string
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			sources = append(sources, id)
		}
	}
	return sources
}

// BaseName returns the last "/"-separated segment of id.
func BaseName(id string) string {
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == '/' {
			return id[i+1:]
		}
	}
	return id
}
