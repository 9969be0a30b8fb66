package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depflow/pkg/graph"
	"github.com/matzehuels/depflow/pkg/pipeline"
)

// layoutCommand creates the layout command for re-positioning a saved graph.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		flags   layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Recompute layers and positions of a saved graph",
		Long: `Recompute layers and positions of a saved graph.

The layout command takes a graph.json file (produced by 'scan') and assigns
layers and coordinates again, typically with different spacing. Links and
their rule violations are kept; cycle flags are recomputed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], output, noCache, &flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(cmd *cobra.Command, input, output string, noCache bool, flags *layoutFlags) error {
	ctx := cmd.Context()

	g, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	cfg, err := c.loadConfig(filepath.Dir(input))
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()
	out, err := runner.Relayout(ctx, g, flags.apply(cmd, cfg.Layout))
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	data, err := graph.Marshal(out)
	if err != nil {
		return err
	}
	if err := writeOutput(outputPath, data); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	if outputPath == "-" {
		return nil
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(pipeline.Stats{
		NodeCount:  len(out.Nodes),
		EdgeCount:  len(out.Links),
		LayerCount: len(out.Layers()),
		CycleCount: len(out.Cycles),
	}, false)
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)
	return nil
}
