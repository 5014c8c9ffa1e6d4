package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netchart/pkg/config"
	"github.com/matzehuels/netchart/pkg/encoding"
	"github.com/matzehuels/netchart/pkg/graph"
	"github.com/matzehuels/netchart/pkg/pipeline"
)

// drawFlags holds the command-line flags for the draw command. Styling flags
// override the [style] table of the config file and of --style.
type drawFlags struct {
	output    string // output file, "-" for stdout
	noCache   bool   // disable caching
	refresh   bool   // recompute and overwrite cached entries
	compact   bool   // write JSON without indentation
	layout    string // layout name
	style     string // style file with a [style] table
	positions string // positions file; skips the layout stage

	width      float64
	height     float64
	padding    float64
	directed   bool
	undirected bool

	hideSelfLoops bool
	hideOrphans   bool
	curved        bool

	label      string
	nodeSize   string
	nodeColour string
	nodeCmap   string
	edgeWidth  string
	edgeColour string
	edgeCmap   string
	tooltip    []string
}

// drawCommand creates the draw command for building Vega-Lite charts.
func (c *CLI) drawCommand() *cobra.Command {
	var f drawFlags

	cmd := &cobra.Command{
		Use:   "draw [graph.json]",
		Short: "Draw a graph as a layered Vega-Lite chart",
		Long: `Draw a graph as a layered Vega-Lite chart.

The graph file is node-link JSON or YAML. Nodes are positioned with the
configured layout unless --positions names a positions file (as written by
'netchart layout'). The chart has an edge layer, an arrow layer for directed
graphs, a node layer, and a label layer when --label is set.

Styling values are constants or attribute references: "@weight" binds the
weight attribute, 3 is a number, "red" is a colour, and "none" disables a
property. A string naming an attribute is also bound to it.

Results are cached locally for faster subsequent runs.`,
		Example: `  netchart draw graph.json --label @node --node-colour @group --node-cmap viridis
  netchart draw graph.yaml --layout circular --curved -o - | jq .`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.drawOptions(cmd, &f)
			if err != nil {
				return err
			}
			return c.runDraw(cmd.Context(), args[0], &f, opts)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file, - for stdout (default: <input>.vl.json)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute cached layouts and charts")
	cmd.Flags().BoolVar(&f.compact, "compact", false, "write compact JSON")
	layoutFlag(cmd, &f.layout)
	cmd.Flags().StringVar(&f.style, "style", "", "TOML style file with a [style] table")
	cmd.Flags().StringVarP(&f.positions, "positions", "p", "", "positions file (skips layout)")

	// Chart flags
	cmd.Flags().Float64Var(&f.width, "width", 0, "chart width (default 500)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "chart height (default 300)")
	cmd.Flags().Float64Var(&f.padding, "padding", 0, "padding as a fraction of the drawing (default 0.05)")
	cmd.Flags().BoolVar(&f.directed, "directed", false, "treat the graph as directed")
	cmd.Flags().BoolVar(&f.undirected, "undirected", false, "treat the graph as undirected")
	cmd.Flags().BoolVar(&f.hideSelfLoops, "hide-self-loops", false, "hide self-loops")
	cmd.Flags().BoolVar(&f.hideOrphans, "hide-orphans", false, "hide nodes without edges")
	cmd.MarkFlagsMutuallyExclusive("directed", "undirected")

	// Style flags
	cmd.Flags().BoolVar(&f.curved, "curved", false, "draw curved edges")
	cmd.Flags().StringVar(&f.label, "label", "", "node label: attribute (@node for IDs) or text")
	cmd.Flags().StringVar(&f.nodeSize, "node-size", "", "node size: number or attribute")
	cmd.Flags().StringVar(&f.nodeColour, "node-colour", "", "node fill: colour or attribute")
	cmd.Flags().StringVar(&f.nodeCmap, "node-cmap", "", "colour scheme for a numeric --node-colour attribute")
	cmd.Flags().StringVar(&f.edgeWidth, "edge-width", "", "edge width: number or attribute")
	cmd.Flags().StringVar(&f.edgeColour, "edge-colour", "", "edge colour: colour or attribute")
	cmd.Flags().StringVar(&f.edgeCmap, "edge-cmap", "", "colour scheme for a numeric --edge-colour attribute")
	cmd.Flags().StringSliceVar(&f.tooltip, "tooltip", nil, "node attributes shown on hover")

	return cmd
}

// drawOptions merges the config file, the style file and the flags.
func (c *CLI) drawOptions(cmd *cobra.Command, f *drawFlags) (pipeline.Options, error) {
	opts, err := c.pipelineOptions()
	if err != nil {
		return opts, err
	}
	if f.style != "" {
		style, err := config.LoadStyle(f.style)
		if err != nil {
			return opts, err
		}
		opts.Draw = style
	}
	if f.layout != "" {
		opts.Layout = f.layout
	}
	if err := pipeline.ValidateLayout(opts.Layout); err != nil {
		return opts, err
	}
	opts.Refresh = f.refresh

	flags := cmd.Flags()
	d := &opts.Draw
	if flags.Changed("width") {
		d.Width = f.width
	}
	if flags.Changed("height") {
		d.Height = f.height
	}
	if flags.Changed("padding") {
		p := f.padding
		d.Padding = &p
	}
	if flags.Changed("hide-self-loops") {
		d.HideSelfLoops = f.hideSelfLoops
	}
	if flags.Changed("hide-orphans") {
		d.HideOrphans = f.hideOrphans
	}
	if flags.Changed("curved") {
		d.Edges.Curved = f.curved
	}

	setValue(flags.Changed("label"), &d.Labels.Label, f.label)
	setValue(flags.Changed("node-size"), &d.Nodes.Size, f.nodeSize)
	setValue(flags.Changed("node-colour"), &d.Nodes.Colour, f.nodeColour)
	setValue(flags.Changed("edge-width"), &d.Edges.Width, f.edgeWidth)
	setValue(flags.Changed("edge-colour"), &d.Edges.Colour, f.edgeColour)
	if f.nodeCmap != "" {
		d.Nodes.Cmap = f.nodeCmap
	}
	if f.edgeCmap != "" {
		d.Edges.Cmap = f.edgeCmap
	}
	if len(f.tooltip) > 0 {
		d.Nodes.Tooltip = encoding.Fields(f.tooltip...)
	}
	return opts, nil
}

func setValue(changed bool, dst *encoding.Value, s string) {
	if changed {
		*dst = parseValue(s)
	}
}

// parseValue reads a styling value from a flag: numbers become constants,
// "none" disables the property, and strings follow the encoding rules.
func parseValue(s string) encoding.Value {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return encoding.Number(n)
	}
	if s == "none" {
		return encoding.None()
	}
	v, err := encoding.FromAny(s)
	if err != nil {
		return encoding.Text(s)
	}
	return v
}

// runDraw loads the graph, runs the pipeline, and writes the chart.
func (c *CLI) runDraw(ctx context.Context, input string, f *drawFlags, opts pipeline.Options) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	switch {
	case f.directed:
		g.SetDirected(true)
	case f.undirected:
		g.SetDirected(false)
	}

	var pos graph.Positions
	if f.positions != "" {
		if pos, err = graph.ReadPositionsFile(f.positions); err != nil {
			return fmt.Errorf("load positions %s: %w", f.positions, err)
		}
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, g, pos, opts)
	if err != nil {
		return fmt.Errorf("draw %s: %w", input, err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Drew %d nodes and %d edges", result.Stats.NodeCount, result.Stats.EdgeCount))

	data := result.JSON
	if !f.compact {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fmt.Errorf("format chart: %w", err)
		}
		buf.WriteByte('\n')
		data = buf.Bytes()
	}

	out := outputPath(f.output, input, ".vl.json")
	if err := writeOutput(out, data); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}
	if out == stdoutPath {
		return nil
	}

	printSuccess("Chart drawn")
	printFile(out)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.ChartHit)
	return nil
}
