package transform

import (
	"math"
	"slices"

	"github.com/matzehuels/depflow/pkg/depgraph"
	errs "github.com/matzehuels/depflow/pkg/errors"
)

// Default spacing values, in canvas units.
const (
	DefaultNodeSpacingX  = 200.0
	DefaultLayerSpacingY = 150.0
	DefaultOffsetX       = 50.0
	DefaultOffsetY       = 50.0
)

// Config controls the grid that [AssignPositions] places nodes on.
type Config struct {
	NodeSpacingX  float64 `json:"node_spacing_x" toml:"node_spacing_x"`   // Horizontal gap between nodes of one layer
	LayerSpacingY float64 `json:"layer_spacing_y" toml:"layer_spacing_y"` // Vertical gap between layers
	OffsetX       float64 `json:"offset_x" toml:"offset_x"`               // X of the first node in each layer
	OffsetY       float64 `json:"offset_y" toml:"offset_y"`               // Y of layer 0
}

// DefaultConfig returns the standard spacing: 200 between nodes, 150 between
// layers, and a 50/50 start offset.
func DefaultConfig() Config {
	return Config{
		NodeSpacingX:  DefaultNodeSpacingX,
		LayerSpacingY: DefaultLayerSpacingY,
		OffsetX:       DefaultOffsetX,
		OffsetY:       DefaultOffsetY,
	}
}

// Validate checks that every parameter is a finite number. Negative and zero
// spacings are allowed.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"node_spacing_x", c.NodeSpacingX},
		{"layer_spacing_y", c.LayerSpacingY},
		{"offset_x", c.OffsetX},
		{"offset_y", c.OffsetY},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return errs.New(errs.ErrCodeInvalidConfig, "%s must be a finite number, got %v", f.name, f.value)
		}
	}
	return nil
}

// Position is the computed placement of a node.
type Position struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Layer int     `json:"layer"`
}

// AssignPositions turns a layer assignment into grid coordinates.
//
// Nodes are grouped by layer and each group is sorted lexicographically by
// ID, the only tie-break for horizontal placement. A node at index i of
// layer L is placed at:
//
//	x = OffsetX + i*NodeSpacingX
//	y = OffsetY + L*LayerSpacingY
//
// so with a positive LayerSpacingY every node of a lower layer is strictly
// above every node of a higher one, and no two nodes of a layer share an x.
// An empty input yields an empty map.
func AssignPositions(layers map[string]int, cfg Config) map[string]Position {
	positions := make(map[string]Position, len(layers))

	for layer, ids := range GroupByLayer(layers) {
		y := cfg.OffsetY + float64(layer)*cfg.LayerSpacingY
		for i, id := range ids {
			positions[id] = Position{
				X:     cfg.OffsetX + float64(i)*cfg.NodeSpacingX,
				Y:     y,
				Layer: layer,
			}
		}
	}
	return positions
}

// GroupByLayer returns the node IDs of each layer, sorted lexicographically.
// The slice is indexed by layer and has one entry per layer from 0 to the
// maximum; layers without nodes are empty.
func GroupByLayer(layers map[string]int) [][]string {
	if len(layers) == 0 {
		return nil
	}
	maxLayer := 0
	for _, l := range layers {
		maxLayer = max(maxLayer, l)
	}

	groups := make([][]string, maxLayer+1)
	for id, l := range layers {
		groups[l] = append(groups[l], id)
	}
	for _, g := range groups {
		slices.Sort(g)
	}
	return groups
}

// Layout runs [AssignLayers] and [AssignPositions] on g.
func Layout(g *depgraph.Graph, cfg Config) map[string]Position {
	return AssignPositions(AssignLayers(g), cfg)
}
