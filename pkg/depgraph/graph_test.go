package depgraph

import (
	"errors"
	"slices"
	"testing"
)

func TestAddNode(t *testing.T) {
	g := New()

	if err := g.AddNode(Node{ID: "src/a.ts"}); err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	if err := g.AddNode(Node{ID: ""}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) error = %v, want ErrInvalidNodeID", err)
	}

	n, ok := g.Node("src/a.ts")
	if !ok {
		t.Fatal("Node() not found")
	}
	if n.Name != "a.ts" {
		t.Errorf("Name = %q, want a.ts", n.Name)
	}
	if n.Meta == nil {
		t.Error("Meta should be initialized")
	}
}

func TestAddNodeIdempotent(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a", Kind: KindDirectory})
	if err := g.AddNode(Node{ID: "a", Kind: KindFile}); err != nil {
		t.Fatalf("AddNode(duplicate) error = %v", err)
	}

	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
	n, _ := g.Node("a")
	if n.Kind != KindDirectory {
		t.Errorf("Kind = %v, want first insertion to stick", n.Kind)
	}
}

func TestAddEdge(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})

	tests := []struct {
		name    string
		edge    Edge
		wantErr error
	}{
		{"valid", Edge{From: "a", To: "b"}, nil},
		{"duplicate", Edge{From: "a", To: "b"}, nil},
		{"self loop", Edge{From: "a", To: "a"}, nil},
		{"unknown source", Edge{From: "x", To: "b"}, ErrUnknownSourceNode},
		{"unknown target", Edge{From: "a", To: "x"}, ErrUnknownTargetNode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddEdge(tt.edge); !errors.Is(err, tt.wantErr) {
				t.Errorf("AddEdge() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
	if got := g.Children("a"); !slices.Equal(got, []string{"b", "b", "a"}) {
		t.Errorf("Children(a) = %v", got)
	}
	if g.InDegree("b") != 2 {
		t.Errorf("InDegree(b) = %d, want 2", g.InDegree("b"))
	}
	if g.OutDegree("b") != 0 {
		t.Errorf("OutDegree(b) = %d, want 0", g.OutDegree("b"))
	}
}

func TestInsertionOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"z", "a", "m"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "z", To: "m"})

	if got := g.IDs(); !slices.Equal(got, []string{"z", "a", "m"}) {
		t.Errorf("IDs() = %v, want insertion order", got)
	}
	if got := g.Sources(); !slices.Equal(got, []string{"z", "a"}) {
		t.Errorf("Sources() = %v, want [z a]", got)
	}

	nodes := g.Nodes()
	if len(nodes) != 3 || nodes[2].ID != "m" {
		t.Errorf("Nodes() order wrong: %v", nodes)
	}
}

func TestEdgesIsCopy(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})

	edges := g.Edges()
	edges[0].To = "a"

	if g.Edges()[0].To != "b" {
		t.Error("Edges() should return a copy")
	}
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"src/a/b.ts": "b.ts",
		"b.ts":       "b.ts",
		"src/":       "",
	}
	for in, want := range tests {
		if got := BaseName(in); got != want {
			t.Errorf("BaseName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNodeKindString(t *testing.T) {
	if KindFile.String() != "file" || KindDirectory.String() != "directory" {
		t.Errorf("unexpected kind strings: %s, %s", KindFile, KindDirectory)
	}
}
