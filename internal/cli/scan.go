package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depflow/pkg/config"
	"github.com/matzehuels/depflow/pkg/depgraph/transform"
	"github.com/matzehuels/depflow/pkg/graph"
	"github.com/matzehuels/depflow/pkg/pipeline"
)

// layoutFlags holds the spacing flags shared by scan and layout.
type layoutFlags struct {
	cfg transform.Config
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	d := transform.DefaultConfig()
	cmd.Flags().Float64Var(&f.cfg.NodeSpacingX, "node-spacing-x", d.NodeSpacingX, "horizontal gap between nodes of a layer")
	cmd.Flags().Float64Var(&f.cfg.LayerSpacingY, "layer-spacing-y", d.LayerSpacingY, "vertical gap between layers")
	cmd.Flags().Float64Var(&f.cfg.OffsetX, "offset-x", d.OffsetX, "x of the first node in each layer")
	cmd.Flags().Float64Var(&f.cfg.OffsetY, "offset-y", d.OffsetY, "y of layer 0")
}

// apply overrides base with every spacing flag the user set explicitly.
func (f *layoutFlags) apply(cmd *cobra.Command, base transform.Config) transform.Config {
	flags := cmd.Flags()
	if flags.Changed("node-spacing-x") {
		base.NodeSpacingX = f.cfg.NodeSpacingX
	}
	if flags.Changed("layer-spacing-y") {
		base.LayerSpacingY = f.cfg.LayerSpacingY
	}
	if flags.Changed("offset-x") {
		base.OffsetX = f.cfg.OffsetX
	}
	if flags.Changed("offset-y") {
		base.OffsetY = f.cfg.OffsetY
	}
	return base
}

// scanOpts holds the command-line flags for the scan command.
type scanOpts struct {
	output    string
	skipDeps  bool
	gitignore bool
	ignore    []string
	noCache   bool
	refresh   bool
	layout    layoutFlags
}

// scanCommand creates the scan command, the main entry point of the tool.
func (c *CLI) scanCommand() *cobra.Command {
	var opts scanOpts

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a project into a layered dependency graph",
		Long: `Scan a JavaScript/TypeScript project into a layered dependency graph.

Every file and directory below path (default ".") becomes a node. Hidden
entries and build folders (node_modules, dist, build, ...) are skipped.
Relative and "@/" imports of .ts/.tsx/.js/.jsx/.mjs/.cjs/.vue files are
resolved into edges, then every node is assigned a layer and a position.

The result is written as graph.json (use -o - for stdout). Layouts are
cached by graph structure and spacing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return c.runScan(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "graph.json", "output file (- for stdout)")
	cmd.Flags().BoolVar(&opts.skipDeps, "no-deps", false, "inventory only, do not resolve imports")
	cmd.Flags().BoolVar(&opts.gitignore, "gitignore", false, "also skip paths matched by .gitignore")
	cmd.Flags().StringSliceVar(&opts.ignore, "ignore", nil, "extra directory or file names to skip")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute the layout even if cached")
	opts.layout.register(cmd)

	return cmd
}

// runScan merges config and flags, runs the pipeline, and writes the graph.
func (c *CLI) runScan(cmd *cobra.Command, root string, flags scanOpts) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig(root)
	if err != nil {
		return err
	}
	opts := scanOptions(cmd, root, cfg, flags)
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx, cfg, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := c.executeWithSpinner(ctx, runner, opts, flags.output == "-")
	if err != nil {
		return err
	}

	data, err := graph.Marshal(result.Graph)
	if err != nil {
		return fmt.Errorf("serialize graph: %w", err)
	}
	if err := writeOutput(flags.output, data); err != nil {
		return fmt.Errorf("write output %s: %w", flags.output, err)
	}
	if flags.output == "-" {
		return nil
	}

	printSuccess("Scanned %s", filepath.Clean(root))
	printFile(flags.output)
	printStats(result.Stats, result.CacheHit)
	if result.Stats.Unreadable > 0 {
		printWarning("%d files could not be read", result.Stats.Unreadable)
	}
	printCycles(result.Graph.Cycles)
	printViolations(result.Graph.Violations())
	printNewline()
	printNextStep("Render", appName+" render "+flags.output)
	return nil
}

// scanOptions layers explicit flags over the config file.
func scanOptions(cmd *cobra.Command, root string, cfg config.Config, flags scanOpts) pipeline.Options {
	layout := flags.layout.apply(cmd, cfg.Layout)
	opts := pipeline.Options{
		Root:      root,
		SkipDeps:  cfg.Scan.SkipDeps,
		Gitignore: cfg.Scan.Gitignore,
		Ignore:    cfg.Scan.Ignore,
		Layout:    &layout,
		Rules:     cfg.Rules,
		Refresh:   flags.refresh,
	}
	if cmd.Flags().Changed("no-deps") {
		opts.SkipDeps = flags.skipDeps
	}
	if cmd.Flags().Changed("gitignore") {
		opts.Gitignore = flags.gitignore
	}
	opts.Ignore = append(append([]string(nil), opts.Ignore...), flags.ignore...)
	return opts
}

// executeWithSpinner runs the pipeline behind a spinner unless quiet is set.
func (c *CLI) executeWithSpinner(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, quiet bool) (*pipeline.Result, error) {
	prog := newProgress(c.Logger)
	var spinner *Spinner
	if !quiet {
		spinner = newSpinner(ctx, "Scanning "+opts.Root+"...")
		spinner.Start()
	}

	result, err := runner.Execute(ctx, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	prog.done("analysis complete", "files", result.Stats.FileCount, "id", result.ID)
	return result, nil
}
