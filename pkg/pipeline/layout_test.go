package pipeline

import (
	"context"
	"testing"

	"github.com/matzehuels/depflow/pkg/depgraph"
	"github.com/matzehuels/depflow/pkg/depgraph/transform"
)

func graphWithEdge(t *testing.T, from, to string) *depgraph.Graph {
	t.Helper()
	g := depgraph.New()
	for _, id := range []string{"a", "a b", "b c", "c"} {
		if err := g.AddNode(depgraph.Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.AddEdge(depgraph.Edge{From: from, To: to}); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestStructureHashSeparatesFields(t *testing.T) {
	g1 := graphWithEdge(t, "a b", "c")
	g2 := graphWithEdge(t, "a", "b c")
	if StructureHash(g1) == StructureHash(g2) {
		t.Fatal("graphs with different edges should hash differently")
	}
}

func TestLayoutCacheKeepsGraphsApart(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx := context.Background()
	cfg := transform.DefaultConfig()

	g1 := graphWithEdge(t, "a b", "c")
	if _, _, err := r.LayoutWithCacheInfo(ctx, g1, StructureHash(g1), cfg, false); err != nil {
		t.Fatal(err)
	}

	g2 := graphWithEdge(t, "a", "b c")
	got, hit, err := r.LayoutWithCacheInfo(ctx, g2, StructureHash(g2), cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("a different graph should not hit the cache")
	}
	want := transform.Position{X: 50, Y: 200, Layer: 1}
	if got["b c"] != want {
		t.Errorf(`position of "b c" = %+v, want %+v`, got["b c"], want)
	}
}

func TestLayoutCacheRejectsForeignEntry(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx := context.Background()
	cfg := transform.DefaultConfig()

	g1 := graphWithEdge(t, "a b", "c")
	g2 := depgraph.New()
	for _, id := range []string{"w", "x", "y", "z"} {
		if err := g2.AddNode(depgraph.Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}

	// Same key, same node count, different IDs.
	hash := StructureHash(g1)
	if _, _, err := r.LayoutWithCacheInfo(ctx, g1, hash, cfg, false); err != nil {
		t.Fatal(err)
	}
	got, hit, err := r.LayoutWithCacheInfo(ctx, g2, hash, cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("an entry for other node IDs should not count as a hit")
	}
	if _, ok := got["w"]; !ok || len(got) != 4 {
		t.Errorf("positions = %v, want one per node of the second graph", got)
	}
}
