package draw

import (
	"context"

	"github.com/matzehuels/netchart/pkg/chart"
	"github.com/matzehuels/netchart/pkg/encoding"
	"github.com/matzehuels/netchart/pkg/errors"
	"github.com/matzehuels/netchart/pkg/geometry"
	"github.com/matzehuels/netchart/pkg/graph"
	"github.com/matzehuels/netchart/pkg/layout"
	"github.com/matzehuels/netchart/pkg/table"
)

// Default chart settings.
const (
	DefaultWidth   = 500.0
	DefaultHeight  = 300.0
	DefaultPadding = 0.05
)

// Options configures Draw.
type Options struct {
	// Width and Height of the chart in pixels. Both zero means 500x300; one
	// zero is derived from the aspect ratio of the positions.
	Width  float64 `json:"width,omitempty" toml:"width"`
	Height float64 `json:"height,omitempty" toml:"height"`

	// Padding around the drawing as a fraction of its larger span. Nil
	// means 0.05.
	Padding *float64 `json:"padding,omitempty" toml:"padding"`

	HideSelfLoops bool `json:"hide_self_loops,omitempty" toml:"hide_self_loops"`
	HideOrphans   bool `json:"hide_orphans,omitempty" toml:"hide_orphans"`

	// Layouter positions nodes when Draw gets no positions.
	Layouter layout.Layouter `json:"-" toml:"-"`

	// Arrows inherit Curved, ControlPoints and Subset from Edges, and Dash
	// and Tooltip when unset. Labels inherit Subset from Nodes. A label
	// layer is drawn only when Labels.Label is set.
	Edges  EdgeStyle  `json:"edges,omitzero" toml:"edges"`
	Arrows ArrowStyle `json:"arrows,omitzero" toml:"arrows"`
	Nodes  NodeStyle  `json:"nodes,omitzero" toml:"nodes"`
	Labels LabelStyle `json:"labels,omitzero" toml:"labels"`
}

// SetDefaults fills unset chart settings and propagates shared edge
// settings to arrows.
func (o *Options) SetDefaults() {
	if o.Width == 0 && o.Height == 0 {
		o.Width, o.Height = DefaultWidth, DefaultHeight
	}
	if o.Padding == nil {
		p := DefaultPadding
		o.Padding = &p
	}
	if o.Layouter == nil {
		o.Layouter = layout.Default()
	}

	o.Arrows.Curved = o.Edges.Curved
	o.Arrows.ControlPoints = o.Edges.ControlPoints
	if o.Arrows.Subset == nil {
		o.Arrows.Subset = o.Edges.Subset
	}
	o.Arrows.Dash = o.Arrows.Dash.Or(o.Edges.Dash)
	o.Arrows.Tooltip = o.Arrows.Tooltip.Or(o.Edges.Tooltip)
	if o.Labels.Subset == nil {
		o.Labels.Subset = o.Nodes.Subset
	}
}

// Draw renders g as a complete chart. pos may be nil, in which case the
// visible part of g is laid out with opts.Layouter. Positions are normalized
// to the chart frame before any rows are built, and axis domains are padded
// around everything drawn.
func Draw(ctx context.Context, g *graph.Graph, pos graph.Positions, opts Options) (*chart.Chart, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeMissingContext, "a graph is required to draw")
	}
	opts.SetDefaults()
	if err := errors.ValidatePadding(*opts.Padding); err != nil {
		return nil, err
	}

	view := graph.NewView(g, graph.ViewOptions{HideSelfLoops: opts.HideSelfLoops, HideOrphans: opts.HideOrphans})
	if view.NodeCount() == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGraph, "graph has nothing to draw")
	}
	visible, err := visiblePositions(ctx, view, pos, opts.Layouter)
	if err != nil {
		return nil, err
	}

	width, height, err := geometry.ResolveSize(visible, opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	in := Input{Graph: view, Positions: geometry.Normalize(visible, width, height)}

	var layers []chart.Layer
	if view.EdgeCount() > 0 {
		l, err := Edges(ctx, in, opts.Edges)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)

		if view.Directed() {
			l, err := Arrows(ctx, in, opts.Arrows)
			if err != nil {
				return nil, err
			}
			layers = append(layers, l)
		}
	}
	if view.NodeCount() > 0 {
		l, err := Nodes(ctx, in, opts.Nodes)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)

		if k := opts.Labels.Label.Kind(); k != encoding.KindUnset && k != encoding.KindNone {
			l, err := Labels(ctx, in, opts.Labels)
			if err != nil {
				return nil, err
			}
			layers = append(layers, l)
		}
	}
	tables := make([]*table.Table, len(layers))
	for i, l := range layers {
		tables[i] = l.Data
	}
	box, ok := geometry.Bounds(tables...)
	if !ok {
		return nil, errors.New(errors.ErrCodeEmptyGraph, "no rows left to draw after subsetting")
	}
	xDomain, yDomain := geometry.PadDomains(box, width, height, *opts.Padding)

	return chart.New(layers...).WithSize(width, height).WithDomains(xDomain, yDomain), nil
}

// visiblePositions returns the positions of the view's nodes, laying the view
// out when pos is nil. Positions of hidden nodes never affect the frame.
func visiblePositions(ctx context.Context, view *graph.View, pos graph.Positions, l layout.Layouter) (graph.Positions, error) {
	if pos == nil {
		return l.Layout(ctx, view)
	}
	if err := pos.Validate(view); err != nil {
		return nil, err
	}
	out := make(graph.Positions, view.NodeCount())
	for _, n := range view.Nodes() {
		out[n.ID] = pos[n.ID]
	}
	return out, nil
}
