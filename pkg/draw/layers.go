// Package draw turns graphs into layered Vega-Lite charts.
//
// Four layer builders share one calling convention: [Edges], [Arrows],
// [Nodes] and [Labels] each take an [Input] naming what to draw from and a
// style describing how. [Draw] assembles all four into a complete
// [chart.Chart] with a normalized frame and padded axis domains.
//
// # Inputs
//
// An [Input] is resolved in a fixed order: an explicit Layer wins, then the
// matching layer of a Chart, then a Graph (laid out when no Positions are
// given). Restyling a previously built layer reuses its rows and replaces its
// styling entirely.
//
// # Styles
//
// Style fields are [encoding.Value]s, so each accepts either a constant or
// the name of a row column:
//
//	draw.EdgeStyle{
//	    Width:  encoding.Field("weight"), // stroke width from the weight attribute
//	    Colour: encoding.Text("steelblue"),
//	}
package draw

import (
	"context"
	"slices"

	"github.com/matzehuels/netchart/pkg/chart"
	"github.com/matzehuels/netchart/pkg/encoding"
	"github.com/matzehuels/netchart/pkg/errors"
	"github.com/matzehuels/netchart/pkg/geometry"
	"github.com/matzehuels/netchart/pkg/graph"
	"github.com/matzehuels/netchart/pkg/layout"
	"github.com/matzehuels/netchart/pkg/table"
)

// Input names what a layer builder draws from.
type Input struct {
	Graph     graph.Source
	Positions graph.Positions // laid out with Layouter when nil
	Layouter  layout.Layouter // layout.Default() when nil

	Chart *chart.Chart // reuse the rows of the chart's layer with the same role
	Layer *chart.Layer // reuse the rows of this layer
}

type rowBuilder func(src graph.Source, pos graph.Positions) (*table.Table, error)

// rows resolves the row-set of a layer. roles lists the chart layers that may
// supply rows, in preference order.
func (in Input) rows(ctx context.Context, build rowBuilder, roles ...chart.Role) (*table.Table, error) {
	switch {
	case in.Layer != nil:
		return in.Layer.Data, nil
	case in.Chart != nil:
		for _, role := range roles {
			if l, ok := in.Chart.Layer(role); ok {
				return l.Data, nil
			}
		}
		return nil, errors.New(errors.ErrCodeMissingContext, "chart has no %s layer", roles[0])
	case in.Graph != nil:
		pos := in.Positions
		if pos == nil {
			l := in.Layouter
			if l == nil {
				l = layout.Default()
			}
			var err error
			if pos, err = l.Layout(ctx, in.Graph); err != nil {
				return nil, err
			}
		}
		return build(in.Graph, pos)
	}
	return nil, errors.New(errors.ErrCodeMissingContext, "one of graph, chart or layer is required to draw %s", roles[0])
}

func subsetEdges(t *table.Table, subset []graph.Pair) *table.Table {
	if subset == nil {
		return t
	}
	return t.Filter(func(r table.Row) bool {
		p, ok := r[geometry.ColPair].(graph.Pair)
		return ok && slices.Contains(subset, p)
	})
}

func subsetNodes(t *table.Table, subset []string) *table.Table {
	if subset == nil {
		return t
	}
	return t.Filter(func(r table.Row) bool {
		id, ok := r[geometry.ColNode].(string)
		return ok && slices.Contains(subset, id)
	})
}

// position binds x and y with hidden axes.
func position(b *encoding.Binder) {
	b.Encode(chart.X, chart.FieldDef{Field: geometry.ColX, Type: chart.Quantitative, NoAxis: true})
	b.Encode(chart.Y, chart.FieldDef{Field: geometry.ColY, Type: chart.Quantitative, NoAxis: true})
}

// polyline binds the channels that join edge rows into one line per edge.
func polyline(b *encoding.Binder) {
	position(b)
	b.Encode(chart.Detail, chart.FieldDef{Field: geometry.ColEdge, Type: chart.Nominal})
	b.Encode(chart.Order, chart.FieldDef{Field: geometry.ColOrder, Type: chart.Quantitative})
}

func layer(role chart.Role, data *table.Table, mark chart.MarkType, b *encoding.Binder) chart.Layer {
	return chart.Layer{
		Role:     role,
		Data:     data,
		Mark:     chart.Mark{Type: mark, Props: b.Mark()},
		Encoding: b.Encoding(),
	}
}

// =============================================================================
// Builders
// =============================================================================

// Edges builds the edge layer: one line per edge through its polyline rows.
func Edges(ctx context.Context, in Input, style EdgeStyle) (chart.Layer, error) {
	style.SetDefaults()
	data, err := in.rows(ctx, func(src graph.Source, pos graph.Positions) (*table.Table, error) {
		return geometry.EdgeRows(src, pos, style.geometry())
	}, chart.RoleEdges)
	if err != nil {
		return chart.Layer{}, err
	}
	data = subsetEdges(data, style.Subset)

	b := encoding.NewBinder(data, style.Legend)
	polyline(b)
	if err := bindLine(b, style.Width, style.Dash, style.Colour, style.Cmap, style.Alpha, style.Tooltip); err != nil {
		return chart.Layer{}, err
	}
	if style.Curved {
		b.Set("interpolate", style.Interpolation)
	}
	b.Override(style.MarkProps, style.EncodeProps)
	return layer(chart.RoleEdges, data, chart.MarkLine, b), nil
}

// Arrows builds the arrow layer: one short line per non-loop edge, from the
// tail point to the target. Undirected graphs yield an empty layer.
func Arrows(ctx context.Context, in Input, style ArrowStyle) (chart.Layer, error) {
	style.SetDefaults()
	data, err := in.rows(ctx, func(src graph.Source, pos graph.Positions) (*table.Table, error) {
		return geometry.ArrowRows(src, pos, style.geometry())
	}, chart.RoleArrows)
	if err != nil {
		return chart.Layer{}, err
	}
	data = subsetEdges(data, style.Subset)

	b := encoding.NewBinder(data, style.Legend)
	polyline(b)
	if err := bindLine(b, style.Width, style.Dash, style.Colour, style.Cmap, style.Alpha, style.Tooltip); err != nil {
		return chart.Layer{}, err
	}
	b.Override(style.MarkProps, style.EncodeProps)
	return layer(chart.RoleArrows, data, chart.MarkLine, b), nil
}

func bindLine(b *encoding.Binder, width, dash, colour encoding.Value, cmap string, alpha, tooltip encoding.Value) error {
	if err := b.Bind(propEdgeWidth, width); err != nil {
		return err
	}
	if err := b.Bind(propDash, dash); err != nil {
		return err
	}
	if err := b.BindColor(propLineColour, colour, cmap); err != nil {
		return err
	}
	if err := b.Bind(propAlpha, alpha); err != nil {
		return err
	}
	return b.Tooltip(tooltip)
}

// Nodes builds the node layer: one point per node.
func Nodes(ctx context.Context, in Input, style NodeStyle) (chart.Layer, error) {
	style.SetDefaults()
	data, err := in.rows(ctx, geometry.NodeRows, chart.RoleNodes)
	if err != nil {
		return chart.Layer{}, err
	}
	data = subsetNodes(data, style.Subset)

	b := encoding.NewBinder(data, style.Legend)
	position(b)
	if err := b.Bind(propNodeSize, style.Size); err != nil {
		return chart.Layer{}, err
	}
	if err := b.Bind(propOutlineWidth, style.OutlineWidth); err != nil {
		return chart.Layer{}, err
	}
	if err := b.Bind(propShape, style.Shape); err != nil {
		return chart.Layer{}, err
	}
	if err := b.BindColor(propFill, style.Colour, style.Cmap); err != nil {
		return chart.Layer{}, err
	}

	// Without an outline colour the outline follows the fill.
	if style.OutlineColour.Kind() == encoding.KindNone {
		if err := b.BindColor(propOutlineColour, style.Colour, style.Cmap); err != nil {
			return chart.Layer{}, err
		}
	} else if err := b.Bind(propOutlineColour, style.OutlineColour); err != nil {
		return chart.Layer{}, err
	}

	if err := b.Bind(propAlpha, style.Alpha); err != nil {
		return chart.Layer{}, err
	}
	if err := b.Tooltip(style.Tooltip); err != nil {
		return chart.Layer{}, err
	}
	b.Override(style.MarkProps, style.EncodeProps)
	return layer(chart.RoleNodes, data, chart.MarkPoint, b), nil
}

// Labels builds the label layer: one text mark per node, centred vertically
// on the node. Labels reuse node rows, so a chart without a label layer
// supplies its node layer's rows.
func Labels(ctx context.Context, in Input, style LabelStyle) (chart.Layer, error) {
	style.SetDefaults()
	if style.Label.IsZero() {
		return chart.Layer{}, errors.New(errors.ErrCodeInvalidType, "label must be a string or an attribute name")
	}
	data, err := in.rows(ctx, geometry.NodeRows, chart.RoleLabels, chart.RoleNodes)
	if err != nil {
		return chart.Layer{}, err
	}
	data = subsetNodes(data, style.Subset)

	b := encoding.NewBinder(data, false)
	position(b)
	b.Set("baseline", "middle")
	if err := b.Bind(propLabel, style.Label); err != nil {
		return chart.Layer{}, err
	}
	if err := b.Bind(propFontSize, style.FontSize); err != nil {
		return chart.Layer{}, err
	}
	if err := b.Bind(propFontColour, style.FontColour); err != nil {
		return chart.Layer{}, err
	}
	b.Override(style.MarkProps, style.EncodeProps)
	return layer(chart.RoleLabels, data, chart.MarkText, b), nil
}
