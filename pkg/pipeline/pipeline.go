// Package pipeline provides the analysis pipeline for depflow.
//
// This package implements the complete scan → build → layout → render flow
// used by the CLI and the HTTP API. Centralizing it keeps defaults, caching,
// and validation identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Scan: walk the project and extract per-file import/export facts
//  2. Build: resolve internal imports into a dependency graph
//  3. Layout: assign layers and grid positions, flag cycles and rule violations
//  4. Render: produce DOT, SVG, PNG, PDF, or JSON from an analyzed graph
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and analyze a project:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Root: "./web"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	graph.Write(result.Graph, os.Stdout)
//
// Run individual stages:
//
//	// Analyze facts gathered elsewhere
//	result, err := runner.Analyze(ctx, files, opts)
//
//	// Re-layout a saved graph with new spacing
//	cfg := transform.DefaultConfig()
//	cfg.NodeSpacingX = 300
//	g, err := runner.Relayout(ctx, saved, cfg)
//
//	// Render a saved graph
//	artifacts, err := runner.Render(ctx, g, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depflow/pkg/cache"
	"github.com/matzehuels/depflow/pkg/depgraph/transform"
	errs "github.com/matzehuels/depflow/pkg/errors"
	"github.com/matzehuels/depflow/pkg/graph"
	"github.com/matzehuels/depflow/pkg/lint"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultPNGScale is the raster scale factor used when none is given.
const DefaultPNGScale = 2.0

// Format constants for output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatDOT, FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the analysis pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Scan options
	Root      string   `json:"root,omitempty"`
	SkipDeps  bool     `json:"skip_deps,omitempty"` // Inventory only, no edges
	Gitignore bool     `json:"gitignore,omitempty"`
	Ignore    []string `json:"ignore,omitempty"`

	// Layout options. nil means transform.DefaultConfig(); any other value,
	// all zeros included, is used as given.
	Layout  *transform.Config `json:"layout,omitempty"`
	Refresh bool              `json:"refresh,omitempty"` // Bypass cached layouts

	// Rules are the architecture rules checked against every link.
	// nil means lint.DefaultRules(); an empty slice disables linting.
	Rules []lint.Rule `json:"rules,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"`
	Directories bool     `json:"directories,omitempty"`
	Pinned      bool     `json:"pinned,omitempty"`
	Scale       float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
	linter    *lint.Linter
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID uniquely identifies this run.
	ID string

	// Graph is the analyzed project in serialization form.
	Graph graph.Graph

	// GraphHash is the structural hash used for layout cache keys.
	GraphHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the layout came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FileCount      int           `json:"files"`
	NodeCount      int           `json:"nodes"`
	EdgeCount      int           `json:"edges"`
	LayerCount     int           `json:"layers"`
	CycleCount     int           `json:"cycles"`
	ViolationCount int           `json:"violations"`
	Unreadable     int           `json:"unreadable,omitempty"`
	ScanTime       time.Duration `json:"scan_ns,omitempty"`
	LayoutTime     time.Duration `json:"layout_ns"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	return errs.ValidateFormat(format, ValidFormats...)
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Layout == nil {
		cfg := transform.DefaultConfig()
		o.Layout = &cfg
	}
	if err := o.Layout.Validate(); err != nil {
		return err
	}
	if o.Rules == nil {
		o.Rules = lint.DefaultRules()
	}
	linter, err := lint.Compile(o.Rules)
	if err != nil {
		return err
	}
	o.linter = linter

	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return layoutKeyOpts(o.layout())
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:      format,
		Detailed:    o.Detailed,
		Directories: o.Directories,
		Pinned:      o.Pinned,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// layout returns the effective layout configuration.
func (o *Options) layout() transform.Config {
	if o.Layout == nil {
		return transform.DefaultConfig()
	}
	return *o.Layout
}

func layoutKeyOpts(c transform.Config) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		NodeSpacingX:  c.NodeSpacingX,
		LayerSpacingY: c.LayerSpacingY,
		OffsetX:       c.OffsetX,
		OffsetY:       c.OffsetY,
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("%d nodes, %d edges, %d layers, %d cycles, %d violations",
		s.NodeCount, s.EdgeCount, s.LayerCount, s.CycleCount, s.ViolationCount)
}
