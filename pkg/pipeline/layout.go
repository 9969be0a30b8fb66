package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/depflow/pkg/cache"
	"github.com/matzehuels/depflow/pkg/depgraph"
	"github.com/matzehuels/depflow/pkg/depgraph/transform"
	"github.com/matzehuels/depflow/pkg/observability"
)

// =============================================================================
// Layout Generation
// =============================================================================

// LayoutWithCacheInfo computes node positions for g, reusing a cached result
// for the same structure hash and cfg unless refresh is set. The boolean
// reports a cache hit. Cache failures are logged and never fail the layout.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g *depgraph.Graph, hash string, cfg transform.Config, refresh bool) (map[string]transform.Position, bool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.LayoutKey(hash, layoutKeyOpts(cfg))

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached map[string]transform.Position
			if err := json.Unmarshal(data, &cached); err == nil && coversNodes(cached, g) {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			r.Logger.Warn("layout cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	positions := GenerateLayout(ctx, g, cfg)

	if data, err := json.Marshal(positions); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("layout cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return positions, false, nil
}

// GenerateLayout assigns layers and positions without caching.
func GenerateLayout(ctx context.Context, g *depgraph.Graph, cfg transform.Config) map[string]transform.Position {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, g.NodeCount(), g.EdgeCount())
	start := time.Now()

	layers, acyclic := transform.ClassifyAndLayer(g)
	positions := transform.AssignPositions(layers, cfg)

	hooks.OnLayoutComplete(ctx, layerCount(positions), !acyclic, time.Since(start), nil)
	return positions
}

// coversNodes reports whether positions holds exactly the nodes of g.
func coversNodes(positions map[string]transform.Position, g *depgraph.Graph) bool {
	if len(positions) != g.NodeCount() {
		return false
	}
	for _, id := range g.IDs() {
		if _, ok := positions[id]; !ok {
			return false
		}
	}
	return true
}

// StructureHash identifies the layout-relevant shape of g: node IDs in
// insertion order and edges in insertion order. Metadata does not contribute.
func StructureHash(g *depgraph.Graph) string {
	d := cache.NewDigest()
	for _, id := range g.IDs() {
		d.Line("n", id)
	}
	for _, e := range g.Edges() {
		d.Line("e", e.From, e.To)
	}
	return d.Sum()
}
