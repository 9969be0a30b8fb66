package transform

import (
	"math"
	"math/rand/v2"
	"testing"

	errs "github.com/matzehuels/depflow/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.NodeSpacingX != 200 || cfg.LayerSpacingY != 150 || cfg.OffsetX != 50 || cfg.OffsetY != 50 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults", func(*Config) {}, false},
		{"ZeroSpacing", func(c *Config) { c.NodeSpacingX = 0; c.LayerSpacingY = 0 }, false},
		{"NegativeOffset", func(c *Config) { c.OffsetX = -10 }, false},
		{"NaNSpacing", func(c *Config) { c.NodeSpacingX = math.NaN() }, true},
		{"InfLayerSpacing", func(c *Config) { c.LayerSpacingY = math.Inf(1) }, true},
		{"NegInfOffset", func(c *Config) { c.OffsetY = math.Inf(-1) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errs.Is(err, errs.ErrCodeInvalidConfig) {
				t.Errorf("Validate() code = %s, want %s", errs.GetCode(err), errs.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestAssignPositions(t *testing.T) {
	layers := map[string]int{"a": 0, "c": 1, "b": 1}

	got := AssignPositions(layers, DefaultConfig())

	want := map[string]Position{
		"a": {X: 50, Y: 50, Layer: 0},
		"b": {X: 50, Y: 200, Layer: 1},
		"c": {X: 250, Y: 200, Layer: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("AssignPositions() returned %d positions, want %d", len(got), len(want))
	}
	for id, w := range want {
		if got[id] != w {
			t.Errorf("position[%s] = %+v, want %+v", id, got[id], w)
		}
	}
}

func TestAssignPositionsEmpty(t *testing.T) {
	if got := AssignPositions(nil, DefaultConfig()); len(got) != 0 {
		t.Errorf("AssignPositions(nil) = %v, want empty", got)
	}
}

func TestAssignPositionsCustomConfig(t *testing.T) {
	cfg := Config{NodeSpacingX: 10, LayerSpacingY: 20, OffsetX: 0, OffsetY: 5}
	layers := map[string]int{"x": 2, "y": 2}

	got := AssignPositions(layers, cfg)

	if got["x"] != (Position{X: 0, Y: 45, Layer: 2}) {
		t.Errorf("position[x] = %+v", got["x"])
	}
	if got["y"] != (Position{X: 10, Y: 45, Layer: 2}) {
		t.Errorf("position[y] = %+v", got["y"])
	}
}

func TestAssignPositionsLexicographicOrder(t *testing.T) {
	layers := map[string]int{"src/b.ts": 0, "src/a.ts": 0, "lib/z.ts": 0}

	got := AssignPositions(layers, DefaultConfig())

	if !(got["lib/z.ts"].X < got["src/a.ts"].X && got["src/a.ts"].X < got["src/b.ts"].X) {
		t.Errorf("positions not in lexicographic order: %v", got)
	}
}

func TestAssignPositionsProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	cfg := DefaultConfig()

	for range 30 {
		g := randomGraph(r, 1+r.IntN(25), r.IntN(60), false)
		layers := AssignLayers(g)
		positions := AssignPositions(layers, cfg)

		if len(positions) != g.NodeCount() {
			t.Fatalf("got %d positions for %d nodes", len(positions), g.NodeCount())
		}

		seen := make(map[Position]string)
		for id, p := range positions {
			if p.Layer != layers[id] {
				t.Fatalf("position[%s].Layer = %d, want %d", id, p.Layer, layers[id])
			}
			if other, dup := seen[p]; dup {
				t.Fatalf("%s and %s share position %+v", id, other, p)
			}
			seen[p] = id
		}
		for a, pa := range positions {
			for b, pb := range positions {
				if pa.Layer < pb.Layer && pa.Y >= pb.Y {
					t.Fatalf("%s (layer %d) not above %s (layer %d)", a, pa.Layer, b, pb.Layer)
				}
			}
		}
	}
}

func TestGroupByLayer(t *testing.T) {
	groups := GroupByLayer(map[string]int{"b": 0, "a": 0, "c": 2})

	if len(groups) != 3 {
		t.Fatalf("GroupByLayer() returned %d layers, want 3", len(groups))
	}
	if groups[0][0] != "a" || groups[0][1] != "b" {
		t.Errorf("layer 0 = %v, want [a b]", groups[0])
	}
	if len(groups[1]) != 0 {
		t.Errorf("layer 1 = %v, want empty", groups[1])
	}
	if len(groups[2]) != 1 || groups[2][0] != "c" {
		t.Errorf("layer 2 = %v, want [c]", groups[2])
	}
}

func TestLayout(t *testing.T) {
	g := build([]string{"a", "b", "c"}, [2]string{"a", "b"}, [2]string{"a", "c"})

	got := Layout(g, DefaultConfig())

	if got["a"] != (Position{X: 50, Y: 50}) {
		t.Errorf("position[a] = %+v", got["a"])
	}
	if got["c"] != (Position{X: 250, Y: 200, Layer: 1}) {
		t.Errorf("position[c] = %+v", got["c"])
	}
}
