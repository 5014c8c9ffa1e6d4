package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netchart/pkg/graph"
	"github.com/matzehuels/netchart/pkg/layout"
	"github.com/matzehuels/netchart/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		layoutName string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute node positions for a graph",
		Long: `Compute node positions for a graph.

The layout command takes a graph file and writes a positions file mapping
each node ID to [x, y]. The positions file can be edited and passed to
'netchart draw --positions' to draw the graph without recomputing the layout.

Available layouts: ` + fmt.Sprint(layout.Names) + `

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions()
			if err != nil {
				return err
			}
			if layoutName != "" {
				opts.Layout = layoutName
			}
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.positions.json)")
	layoutFlag(cmd, &layoutName)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute cached positions")

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	if err := pipeline.ValidateLayout(opts.Layout); err != nil {
		return err
	}
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	pos, cacheHit, err := runner.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Laid out %d nodes", len(pos)))

	data, err := json.MarshalIndent(pos, "", "  ")
	if err != nil {
		return fmt.Errorf("encode positions: %w", err)
	}
	data = append(data, '\n')

	out := outputPath(output, input, ".positions.json")
	if err := writeOutput(out, data); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}
	if out == stdoutPath {
		return nil
	}

	printSuccess("Layout complete")
	printFile(out)
	printStats(g.NodeCount(), g.EdgeCount(), cacheHit)
	printNewline()
	printNextStep("Draw", appName+" draw "+input+" --positions "+out)
	return nil
}
