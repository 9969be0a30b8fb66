package cli

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depflow/pkg/graph"
	"github.com/matzehuels/depflow/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file (single format) or base path (multiple)
	formats     string  // comma-separated: dot, svg, png, pdf, json
	detailed    bool    // show path, layer and line count in labels
	directories bool    // include directory nodes
	pinned      bool    // keep computed coordinates instead of Graphviz ranking
	scale       float64 // PNG scale factor
	noCache     bool
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a saved graph as a diagram",
		Long: `Render a saved graph as a node-link diagram.

Files are drawn as boxes colored by hexagonal layer, imports as arrows.
Links that break an architecture rule are drawn in red, as are nodes on an
import cycle. By default Graphviz ranks nodes by layer; --pinned keeps the
coordinates computed by 'scan' or 'layout' instead.

PNG and PDF output require rsvg-convert (librsvg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), dot, png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show path, layer and line count in labels")
	cmd.Flags().BoolVar(&opts.directories, "directories", false, "include directory nodes")
	cmd.Flags().BoolVar(&opts.pinned, "pinned", false, "draw nodes at their computed positions")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultPNGScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender loads the graph and writes one file per requested format.
func (c *CLI) runRender(cmd *cobra.Command, input string, flags renderOpts) error {
	ctx := cmd.Context()

	opts := pipeline.Options{
		Formats:     parseFormats(flags.formats),
		Detailed:    flags.detailed,
		Directories: flags.directories,
		Pinned:      flags.pinned,
		Scale:       flags.scale,
		Logger:      c.Logger,
	}
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	g, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	c.Logger.Debug("loaded graph", "nodes", len(g.Nodes), "links", len(g.Links))

	cfg, err := c.loadConfig(filepath.Dir(input))
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Rendering "+strings.Join(opts.Formats, ", ")+"...")
	spinner.Start()
	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, g, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	paths := outputPaths(flags.output, input, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeOutput(paths[format], artifacts[format]); err != nil {
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
	}
	if flags.output == "-" {
		return nil
	}

	status := "Rendered"
	if cached {
		status = "Rendered (cached)"
	}
	printSuccess("%s %s", status, input)
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	return nil
}

// outputPaths maps each format to its output file.
//
// A single format is written to output as given, or to the input path with
// the format as extension. Multiple formats use output (minus any known
// format extension) or the input path as base name.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}

	base := strings.TrimSuffix(input, filepath.Ext(input))
	if output != "" {
		base = output
		if ext := filepath.Ext(output); slices.Contains(pipeline.ValidFormats, strings.TrimPrefix(ext, ".")) {
			base = strings.TrimSuffix(output, ext)
		}
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
