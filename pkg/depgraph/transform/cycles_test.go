package transform

import (
	"slices"
	"testing"
)

func TestTopologicalSort_Acyclic(t *testing.T) {
	g := build([]string{"c", "b", "a"}, [2]string{"a", "b"}, [2]string{"b", "c"})

	order, ok := TopologicalSort(g)

	if !ok {
		t.Fatal("TopologicalSort() reported a cycle")
	}
	if want := []string{"a", "b", "c"}; !slices.Equal(order, want) {
		t.Errorf("TopologicalSort() = %v, want %v", order, want)
	}
}

func TestTopologicalSort_InsertionOrderTieBreak(t *testing.T) {
	g := build([]string{"z", "y", "x"})

	order, ok := TopologicalSort(g)

	if !ok {
		t.Fatal("TopologicalSort() reported a cycle")
	}
	if want := []string{"z", "y", "x"}; !slices.Equal(order, want) {
		t.Errorf("TopologicalSort() = %v, want %v", order, want)
	}
}

func TestTopologicalSort_DuplicateEdges(t *testing.T) {
	g := build([]string{"a", "b"}, [2]string{"a", "b"}, [2]string{"a", "b"})

	if _, ok := TopologicalSort(g); !ok {
		t.Error("TopologicalSort() treated duplicate edges as a cycle")
	}
}

func TestTopologicalSort_Cycles(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges [][2]string
	}{
		{"SelfLoop", []string{"a"}, [][2]string{{"a", "a"}}},
		{"TwoCycle", []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}}},
		{"CycleBehindRoot", []string{"r", "a", "b"}, [][2]string{{"r", "a"}, {"a", "b"}, {"b", "a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(tt.ids, tt.edges...)
			order, ok := TopologicalSort(g)
			if ok || order != nil {
				t.Errorf("TopologicalSort() = %v, %v; want nil, false", order, ok)
			}
		})
	}
}

func TestFindCycles_NoCycles(t *testing.T) {
	g := build([]string{"a", "b", "c"}, [2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"a", "c"})

	if got := FindCycles(g); len(got) != 0 {
		t.Errorf("FindCycles() = %v, want none", got)
	}
}

func TestFindCycles_SimpleCycle(t *testing.T) {
	g := build([]string{"b", "a"}, [2]string{"a", "b"}, [2]string{"b", "a"})

	got := FindCycles(g)

	if len(got) != 1 || !slices.Equal(got[0], []string{"a", "b"}) {
		t.Errorf("FindCycles() = %v, want [[a b]]", got)
	}
}

func TestFindCycles_SelfLoop(t *testing.T) {
	g := build([]string{"a", "b"}, [2]string{"a", "a"}, [2]string{"a", "b"})

	got := FindCycles(g)

	if len(got) != 1 || !slices.Equal(got[0], []string{"a"}) {
		t.Errorf("FindCycles() = %v, want [[a]]", got)
	}
}

func TestFindCycles_MultipleCycles(t *testing.T) {
	// Two separate cycles: d↔c and a→b→e→a, joined by a one-way edge.
	g := build([]string{"d", "c", "a", "b", "e"},
		[2]string{"d", "c"}, [2]string{"c", "d"},
		[2]string{"a", "b"}, [2]string{"b", "e"}, [2]string{"e", "a"},
		[2]string{"c", "a"})

	got := FindCycles(g)

	want := [][]string{{"a", "b", "e"}, {"c", "d"}}
	if len(got) != len(want) {
		t.Fatalf("FindCycles() = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("FindCycles()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
