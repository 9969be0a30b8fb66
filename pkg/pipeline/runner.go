package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/depflow/pkg/cache"
	"github.com/matzehuels/depflow/pkg/depgraph"
	"github.com/matzehuels/depflow/pkg/depgraph/transform"
	errs "github.com/matzehuels/depflow/pkg/errors"
	"github.com/matzehuels/depflow/pkg/graph"
	"github.com/matzehuels/depflow/pkg/observability"
	"github.com/matzehuels/depflow/pkg/scan"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute scans opts.Root and analyzes the result.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Root == "" {
		return nil, errs.New(errs.ErrCodeInvalidPath, "root is required")
	}

	scanStart := time.Now()
	files, err := r.Scan(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	scanTime := time.Since(scanStart)

	result, err := r.Analyze(ctx, files, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ScanTime = scanTime
	return result, nil
}

// Scan walks opts.Root and parses every source file. Unreadable files are
// logged and kept without facts.
func (r *Runner) Scan(ctx context.Context, opts Options) ([]scan.File, error) {
	hooks := observability.Pipeline()
	hooks.OnScanStart(ctx, opts.Root)
	start := time.Now()

	files, err := scan.Scan(ctx, opts.Root, scan.Options{
		Ignore:    opts.Ignore,
		Gitignore: opts.Gitignore,
		SkipParse: opts.SkipDeps,
	})
	hooks.OnScanComplete(ctx, opts.Root, len(files), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		if f.Err != nil {
			r.Logger.Warn("unreadable file", "path", f.ID, "err", f.Err)
		}
	}
	r.Logger.Debug("scanned project", "root", opts.Root, "entries", len(files), "duration", time.Since(start))
	return files, nil
}

// Analyze builds, lays out, and lints the graph described by files.
//
// Files may come from [Runner.Scan] or from any other source, such as an API
// request. Every ID must pass [errs.ValidateNodeID]. Imports are ignored when
// opts.SkipDeps is set.
func (r *Runner) Analyze(ctx context.Context, files []scan.File, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	nodes := make([]depgraph.Node, 0, len(files))
	imports := make([]depgraph.FileImports, 0, len(files))
	unreadable := 0
	for _, f := range files {
		if err := errs.ValidateNodeID(f.ID); err != nil {
			return nil, err
		}
		nodes = append(nodes, toNode(f))
		if f.Err != nil {
			unreadable++
		}
		if !opts.SkipDeps && f.Facts != nil {
			imports = append(imports, depgraph.FileImports{File: f.ID, Imports: f.Facts.Sources()})
		}
	}

	dg := depgraph.Build(nodes, imports)
	r.Logger.Info("built dependency graph", "nodes", dg.NodeCount(), "edges", dg.EdgeCount())

	layoutStart := time.Now()
	hash := StructureHash(dg)
	positions, hit, err := r.LayoutWithCacheInfo(ctx, dg, hash, opts.layout(), opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	out := graph.FromDepGraph(dg)
	out.ApplyLayout(positions)
	out.MarkCycles(transform.FindCycles(dg))
	violations := annotate(&out, opts)

	result := &Result{
		ID:        uuid.NewString(),
		Graph:     out,
		GraphHash: hash,
		CacheHit:  hit,
		Stats: Stats{
			FileCount:      len(files),
			NodeCount:      dg.NodeCount(),
			EdgeCount:      dg.EdgeCount(),
			LayerCount:     layerCount(positions),
			CycleCount:     len(out.Cycles),
			ViolationCount: violations,
			Unreadable:     unreadable,
			LayoutTime:     time.Since(layoutStart),
		},
	}

	r.Logger.Info("computed layout",
		"layers", result.Stats.LayerCount,
		"cycles", result.Stats.CycleCount,
		"violations", violations,
		"cached", hit,
		"duration", result.Stats.LayoutTime)
	return result, nil
}

// Relayout recomputes layers and positions of a saved graph with cfg, used
// exactly as given. Cycle flags are recomputed; links and
// their violations are kept as they are. The input graph is not modified.
func (r *Runner) Relayout(ctx context.Context, g graph.Graph, cfg transform.Config) (graph.Graph, error) {
	if err := cfg.Validate(); err != nil {
		return graph.Graph{}, err
	}

	dg, err := g.ToDepGraph()
	if err != nil {
		return graph.Graph{}, err
	}
	positions, _, err := r.LayoutWithCacheInfo(ctx, dg, StructureHash(dg), cfg, false)
	if err != nil {
		return graph.Graph{}, err
	}

	out := graph.Graph{
		Nodes: append([]graph.Node(nil), g.Nodes...),
		Links: append([]graph.Link(nil), g.Links...),
	}
	out.ApplyLayout(positions)
	out.MarkCycles(transform.FindCycles(dg))
	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

func toNode(f scan.File) depgraph.Node {
	n := depgraph.Node{
		ID:   f.ID,
		Name: f.Name,
		Kind: depgraph.KindFile,
		Meta: depgraph.Metadata{graph.MetaHexLayer: scan.HexLayer(f.ID)},
	}
	if f.IsDir {
		n.Kind = depgraph.KindDirectory
	}
	if f.Facts != nil {
		n.Meta[graph.MetaLineCount] = f.Facts.LineCount
		n.Meta[graph.MetaImports] = len(f.Facts.Imports)
		n.Meta[graph.MetaExports] = len(f.Facts.Exports)
	}
	return n
}

// annotate marks links that break an architecture rule and returns how many
// did.
func annotate(g *graph.Graph, opts Options) int {
	count := 0
	for i := range g.Links {
		l := &g.Links[i]
		l.Violation = ""
		if name, ok := opts.linter.Check(l.Source, l.Target); ok {
			l.Violation = name
			count++
		}
	}
	return count
}

func layerCount(positions map[string]transform.Position) int {
	n := 0
	for _, p := range positions {
		n = max(n, p.Layer+1)
	}
	return n
}
