package draw

import (
	"github.com/matzehuels/netchart/pkg/chart"
	"github.com/matzehuels/netchart/pkg/encoding"
	"github.com/matzehuels/netchart/pkg/geometry"
	"github.com/matzehuels/netchart/pkg/graph"
)

// Default style values.
const (
	DefaultEdgeWidth     = 1.0
	DefaultEdgeColour    = "grey"
	DefaultInterpolation = "basis"
	DefaultArrowWidth    = 2.0
	DefaultArrowColour   = "black"
	DefaultNodeSize      = 400.0
	DefaultNodeShape     = "circle"
	DefaultNodeColour    = "teal"
	DefaultOutlineWidth  = 1.0
	DefaultFontSize      = 15.0
	DefaultFontColour    = "black"
	DefaultAlpha         = 1.0
)

// =============================================================================
// Edges
// =============================================================================

// EdgeStyle configures the edge layer. Values accept either constants or
// edge row columns (edge, order, source, target, pair, x, y and every edge
// attribute).
type EdgeStyle struct {
	Width   encoding.Value `json:"width,omitzero" toml:"width"`     // number or column
	Dash    encoding.Value `json:"dash,omitzero" toml:"dash"`       // [dash, gap], column, or none
	Colour  encoding.Value `json:"colour,omitzero" toml:"colour"`   // colour or column
	Cmap    string         `json:"cmap,omitempty" toml:"cmap"`      // scheme for a numeric colour column
	Alpha   encoding.Value `json:"alpha,omitzero" toml:"alpha"`     // number or column
	Tooltip encoding.Value `json:"tooltip,omitzero" toml:"tooltip"` // columns shown on hover
	Legend  bool           `json:"legend,omitempty" toml:"legend"`

	Curved        bool                    `json:"curved,omitempty" toml:"curved"`
	ControlPoints []geometry.ControlPoint `json:"control_points,omitempty" toml:"control_points"`
	Interpolation string                  `json:"interpolation,omitempty" toml:"interpolation"`

	// Nil loop radius and angle take the defaults; 0 is kept.
	LoopRadius *float64 `json:"loop_radius,omitempty" toml:"loop_radius"`
	LoopAngle  *float64 `json:"loop_angle,omitempty" toml:"loop_angle"`
	LoopPoints int      `json:"loop_points,omitempty" toml:"loop_points"`

	// Subset restricts drawing to these edges. Nil draws every edge.
	Subset []graph.Pair `json:"subset,omitempty" toml:"-"`

	MarkProps   map[string]any `json:"mark_props,omitempty" toml:"mark_props"`
	EncodeProps map[string]any `json:"encode_props,omitempty" toml:"encode_props"`
}

// SetDefaults fills unset fields.
func (s *EdgeStyle) SetDefaults() {
	s.Width = s.Width.Or(encoding.Number(DefaultEdgeWidth))
	s.Dash = s.Dash.Or(encoding.None())
	s.Colour = s.Colour.Or(encoding.Text(DefaultEdgeColour))
	s.Alpha = s.Alpha.Or(encoding.Number(DefaultAlpha))
	if s.Interpolation == "" {
		s.Interpolation = DefaultInterpolation
	}
	if s.Curved && s.ControlPoints == nil {
		s.ControlPoints = geometry.DefaultControlPoints
	}
	if s.LoopRadius == nil {
		radius := geometry.DefaultLoopRadius
		s.LoopRadius = &radius
	}
	if s.LoopAngle == nil {
		angle := geometry.DefaultLoopAngle
		s.LoopAngle = &angle
	}
	if s.LoopPoints == 0 {
		s.LoopPoints = geometry.DefaultLoopPoints
	}
}

func (s *EdgeStyle) geometry() geometry.EdgeOptions {
	opts := geometry.EdgeOptions{
		LoopRadius: *s.LoopRadius,
		LoopAngle:  *s.LoopAngle,
		LoopPoints: s.LoopPoints,
	}
	if s.Curved {
		opts.ControlPoints = s.ControlPoints
	}
	return opts
}

// =============================================================================
// Arrows
// =============================================================================

// ArrowStyle configures the arrow layer. Arrows are drawn over arrow rows,
// which carry the same columns as edge rows.
type ArrowStyle struct {
	Width   encoding.Value `json:"width,omitzero" toml:"width"`
	Dash    encoding.Value `json:"dash,omitzero" toml:"dash"`
	Colour  encoding.Value `json:"colour,omitzero" toml:"colour"`
	Cmap    string         `json:"cmap,omitempty" toml:"cmap"`
	Alpha   encoding.Value `json:"alpha,omitzero" toml:"alpha"`
	Tooltip encoding.Value `json:"tooltip,omitzero" toml:"tooltip"`
	Legend  bool           `json:"legend,omitempty" toml:"legend"`

	// Length of arrows, relative to the straight edge length unless
	// Absolute is set. Nil means 0.1.
	Length   *float64 `json:"length,omitempty" toml:"length"`
	Absolute bool     `json:"absolute,omitempty" toml:"absolute"`

	// Curved and ControlPoints must match the edges the arrows sit on.
	Curved        bool                    `json:"curved,omitempty" toml:"curved"`
	ControlPoints []geometry.ControlPoint `json:"control_points,omitempty" toml:"control_points"`

	Subset []graph.Pair `json:"subset,omitempty" toml:"-"`

	MarkProps   map[string]any `json:"mark_props,omitempty" toml:"mark_props"`
	EncodeProps map[string]any `json:"encode_props,omitempty" toml:"encode_props"`
}

// SetDefaults fills unset fields.
func (s *ArrowStyle) SetDefaults() {
	s.Width = s.Width.Or(encoding.Number(DefaultArrowWidth))
	s.Dash = s.Dash.Or(encoding.None())
	s.Colour = s.Colour.Or(encoding.Text(DefaultArrowColour))
	s.Alpha = s.Alpha.Or(encoding.Number(DefaultAlpha))
	if s.Length == nil {
		length := geometry.DefaultArrowLength
		s.Length = &length
	}
	if s.Curved && s.ControlPoints == nil {
		s.ControlPoints = geometry.DefaultControlPoints
	}
}

func (s *ArrowStyle) geometry() geometry.ArrowOptions {
	opts := geometry.ArrowOptions{Length: *s.Length, Relative: !s.Absolute}
	if s.Curved {
		opts.ControlPoints = s.ControlPoints
	}
	return opts
}

// =============================================================================
// Nodes
// =============================================================================

// NodeStyle configures the node layer. Values accept either constants or
// node row columns (node, x, y and every node attribute).
type NodeStyle struct {
	Size          encoding.Value `json:"size,omitzero" toml:"size"`
	Shape         encoding.Value `json:"shape,omitzero" toml:"shape"`   // point shape, SVG path, or column
	Colour        encoding.Value `json:"colour,omitzero" toml:"colour"` // fill; none for outlines only
	Cmap          string         `json:"cmap,omitempty" toml:"cmap"`
	Alpha         encoding.Value `json:"alpha,omitzero" toml:"alpha"`
	OutlineWidth  encoding.Value `json:"outline_width,omitzero" toml:"outline_width"`
	OutlineColour encoding.Value `json:"outline_colour,omitzero" toml:"outline_colour"` // none matches the fill
	Tooltip       encoding.Value `json:"tooltip,omitzero" toml:"tooltip"`
	Legend        bool           `json:"legend,omitempty" toml:"legend"`

	// Subset restricts drawing to these node IDs. Nil draws every node.
	Subset []string `json:"subset,omitempty" toml:"subset"`

	MarkProps   map[string]any `json:"mark_props,omitempty" toml:"mark_props"`
	EncodeProps map[string]any `json:"encode_props,omitempty" toml:"encode_props"`
}

// SetDefaults fills unset fields.
func (s *NodeStyle) SetDefaults() {
	s.Size = s.Size.Or(encoding.Number(DefaultNodeSize))
	s.Shape = s.Shape.Or(encoding.Text(DefaultNodeShape))
	s.Colour = s.Colour.Or(encoding.Text(DefaultNodeColour))
	s.Alpha = s.Alpha.Or(encoding.Number(DefaultAlpha))
	s.OutlineWidth = s.OutlineWidth.Or(encoding.Number(DefaultOutlineWidth))
	s.OutlineColour = s.OutlineColour.Or(encoding.None())
}

// =============================================================================
// Labels
// =============================================================================

// LabelStyle configures the label layer, drawn over node rows.
type LabelStyle struct {
	// Label is a literal shown on every node or a column; "node" shows IDs.
	Label      encoding.Value `json:"label,omitzero" toml:"label"`
	FontSize   encoding.Value `json:"font_size,omitzero" toml:"font_size"`
	FontColour encoding.Value `json:"font_colour,omitzero" toml:"font_colour"`

	Subset []string `json:"subset,omitempty" toml:"subset"`

	MarkProps   map[string]any `json:"mark_props,omitempty" toml:"mark_props"`
	EncodeProps map[string]any `json:"encode_props,omitempty" toml:"encode_props"`
}

// SetDefaults fills unset fields. Label has no default.
func (s *LabelStyle) SetDefaults() {
	s.FontSize = s.FontSize.Or(encoding.Number(DefaultFontSize))
	s.FontColour = s.FontColour.Or(encoding.Text(DefaultFontColour))
}

// =============================================================================
// Properties
// =============================================================================

var (
	propEdgeWidth = encoding.Property{
		Name: "width", Accepts: []encoding.Kind{encoding.KindNumber, encoding.KindText},
		Channel: chart.StrokeWidth, MarkKey: "strokeWidth", Strict: true,
	}
	propDash = encoding.Property{
		Name: "dash", Accepts: []encoding.Kind{encoding.KindDash, encoding.KindText},
		Channel: chart.StrokeDash, MarkKey: "strokeDash", Strict: true, Nullable: true,
	}
	propLineColour = encoding.Property{
		Name: "colour", Accepts: []encoding.Kind{encoding.KindText},
		Channel: chart.Color, MarkKey: "color",
	}
	propAlpha = encoding.Property{
		Name: "alpha", Accepts: []encoding.Kind{encoding.KindNumber, encoding.KindText},
		Channel: chart.Opacity, MarkKey: "opacity", Strict: true, Nullable: true,
	}
	propNodeSize = encoding.Property{
		Name: "size", Accepts: []encoding.Kind{encoding.KindNumber, encoding.KindText},
		Channel: chart.Size, MarkKey: "size", Strict: true,
	}
	propShape = encoding.Property{
		Name: "shape", Accepts: []encoding.Kind{encoding.KindText},
		Channel: chart.Shape, MarkKey: "shape",
	}
	propFill = encoding.Property{
		Name: "colour", Accepts: []encoding.Kind{encoding.KindText},
		Channel: chart.Fill, MarkKey: "fill", Nullable: true,
	}
	propOutlineWidth = encoding.Property{
		Name: "outline width", Accepts: []encoding.Kind{encoding.KindNumber, encoding.KindText},
		Channel: chart.StrokeWidth, MarkKey: "strokeWidth", Strict: true,
	}
	propOutlineColour = encoding.Property{
		Name: "outline colour", Accepts: []encoding.Kind{encoding.KindText},
		Channel: chart.Color, MarkKey: "color", Nullable: true,
	}
	propLabel = encoding.Property{
		Name: "label", Accepts: []encoding.Kind{encoding.KindText},
		Channel: chart.Text, MarkKey: "text",
	}
	propFontSize = encoding.Property{
		Name: "font size", Accepts: []encoding.Kind{encoding.KindNumber, encoding.KindText},
		Channel: chart.Size, MarkKey: "size", Strict: true,
	}
	propFontColour = encoding.Property{
		Name: "font colour", Accepts: []encoding.Kind{encoding.KindText},
		Channel: chart.Fill, MarkKey: "fill",
	}
)
