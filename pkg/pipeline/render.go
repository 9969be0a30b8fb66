package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/depflow/pkg/cache"
	errs "github.com/matzehuels/depflow/pkg/errors"
	"github.com/matzehuels/depflow/pkg/graph"
	"github.com/matzehuels/depflow/pkg/observability"
	"github.com/matzehuels/depflow/pkg/render/nodelink"
)

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The boolean is true only when every requested format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g graph.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	data, err := graph.Marshal(g)
	if err != nil {
		return nil, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	graphHash := cache.Hash(data)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		allCached = false

		rendered, err := RenderFormat(ctx, g, format, opts)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = rendered
		if err := r.Cache.Set(ctx, key, rendered, cache.TTLArtifact); err != nil {
			r.Logger.Warn("artifact cache write failed", "format", format, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(rendered))
		}
	}
	return artifacts, allCached, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// RenderFormat renders g in a single format without caching.
// Pinned output requires every rendered node to carry a layout.
func RenderFormat(ctx context.Context, g graph.Graph, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if format == FormatJSON {
		return graph.Marshal(g)
	}

	nlOpts := nodelink.Options{
		Detailed:    opts.Detailed,
		Directories: opts.Directories,
		Pinned:      opts.Pinned,
	}
	if opts.Pinned {
		for _, n := range g.Nodes {
			if (opts.Directories || !n.IsDir()) && !n.Positioned() {
				return nil, errs.New(errs.ErrCodeInvalidGraph, "pinned rendering needs a layout, node %s has none", n.ID)
			}
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	dot := nodelink.ToDOT(g, nlOpts)
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatDOT:
		data = []byte(dot)
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot, nlOpts)
	case FormatPNG:
		scale := opts.Scale
		if scale <= 0 {
			scale = DefaultPNGScale
		}
		data, err = nodelink.RenderPNG(ctx, dot, nlOpts, scale)
	case FormatPDF:
		data, err = nodelink.RenderPDF(ctx, dot, nlOpts)
	}

	hooks.OnRenderComplete(ctx, format, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}
