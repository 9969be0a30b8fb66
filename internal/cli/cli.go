// Package cli implements the depflow command-line interface.
//
// This package provides commands for scanning a JavaScript/TypeScript project
// into a layered dependency graph, re-laying out and rendering saved graphs,
// browsing layers interactively, serving the HTTP API, and managing the
// layout cache. The CLI is built using cobra and logs via charmbracelet/log.
//
// # Commands
//
//   - scan: walk a project and write graph.json
//   - layout: recompute positions of a saved graph
//   - render: produce DOT, SVG, PNG, or PDF diagrams
//   - browse: interactive layer browser
//   - serve: run the HTTP API
//   - cache: manage the layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// registers observability hooks that report every pipeline and cache event.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depflow/pkg/buildinfo"
	"github.com/matzehuels/depflow/pkg/config"
	"github.com/matzehuels/depflow/pkg/observability"
	"github.com/matzehuels/depflow/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag value.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. Debug level also routes
// observability events to the logger.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "depflow lays out JavaScript/TypeScript import graphs",
		Long:         `depflow scans a JavaScript/TypeScript project, resolves its internal imports into a dependency graph, and assigns every file a layer and a grid position. Architecture rules flag forbidden imports, and import cycles are reported.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: <root>/"+config.FileName+")")

	// Register all subcommands
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Runner Factory
// =============================================================================

// loadConfig loads the --config file, or the one discovered in root.
func (c *CLI) loadConfig(root string) (config.Config, error) {
	path := c.configPath
	if path == "" && root != "" {
		path = config.Discover(root)
	}
	if path != "" {
		c.Logger.Debug("loading config", "path", path)
	}
	return config.Load(path)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	cc := cfg.Cache
	if noCache {
		cc.Backend = config.BackendNone
	}
	store, err := cc.Open(ctx)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", cc.Backend, "err", err)
		return pipeline.NewRunner(nil, nil, c.Logger), nil
	}
	return pipeline.NewRunner(store, cc.Keyer(), c.Logger), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var formats []string
	for f := range strings.SplitSeq(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
