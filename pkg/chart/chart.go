// Package chart models layered Vega-Lite specifications.
//
// A [Chart] is an immutable value: every edit returns a new Chart and leaves
// the receiver untouched. Layers are identified by [Role] and always kept in
// the canonical drawing order edges, arrows, nodes, labels.
//
// # Serialization
//
// [Chart.MarshalJSON] emits a complete Vega-Lite v5 document with inline data,
// a despined axis configuration (no ticks, grid, domain or labels) and shared
// x/y scale domains. [Layer.MarshalJSON] emits a standalone single-layer spec.
package chart

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/matzehuels/netchart/pkg/errors"
	"github.com/matzehuels/netchart/pkg/table"
)

// Schema is the Vega-Lite schema URL written to every document.
const Schema = "https://vega.github.io/schema/vega-lite/v5.json"

// =============================================================================
// Roles
// =============================================================================

// Role identifies what a layer draws.
type Role string

// Layer roles in drawing order.
const (
	RoleEdges  Role = "edges"
	RoleArrows Role = "arrows"
	RoleNodes  Role = "nodes"
	RoleLabels Role = "labels"
)

// Roles lists every role in drawing order.
var Roles = []Role{RoleEdges, RoleArrows, RoleNodes, RoleLabels}

func (r Role) rank() int {
	if i := slices.Index(Roles, r); i >= 0 {
		return i
	}
	return len(Roles)
}

// =============================================================================
// Layer
// =============================================================================

// Layer is a single mark over a row-set.
type Layer struct {
	Role     Role
	Data     *table.Table
	Mark     Mark
	Encoding Encoding
}

// Clone returns a copy whose mark properties and encodings can be edited
// without affecting l. The data table is shared; tables are never mutated
// after construction.
func (l Layer) Clone() Layer {
	l.Mark.Props = maps.Clone(l.Mark.Props)
	l.Encoding = maps.Clone(l.Encoding)
	return l
}

// WithData returns a copy of l drawing data.
func (l Layer) WithData(data *table.Table) Layer {
	out := l.Clone()
	out.Data = data
	return out
}

type layerJSON struct {
	Schema   string   `json:"$schema,omitempty"`
	Data     dataJSON `json:"data"`
	Mark     Mark     `json:"mark"`
	Encoding Encoding `json:"encoding,omitempty"`
	Config   *config  `json:"config,omitempty"`
}

type dataJSON struct {
	Values *table.Table `json:"values"`
}

func (l Layer) toJSON() layerJSON {
	return layerJSON{Data: dataJSON{Values: l.Data}, Mark: l.Mark, Encoding: l.Encoding}
}

// MarshalJSON encodes the layer as a standalone Vega-Lite document.
func (l Layer) MarshalJSON() ([]byte, error) {
	out := l.toJSON()
	out.Schema = Schema
	out.Config = despined()
	return json.Marshal(out)
}

// =============================================================================
// Chart
// =============================================================================

// Chart is an immutable layered chart.
type Chart struct {
	width, height    float64
	xDomain, yDomain *[2]float64
	layers           []Layer
}

// New creates a chart from layers. Layers are sorted into drawing order;
// when two share a role the later one wins.
func New(layers ...Layer) *Chart {
	c := &Chart{}
	for _, l := range layers {
		c = c.WithLayer(l)
	}
	return c
}

func (c *Chart) clone() *Chart {
	out := *c
	out.layers = slices.Clone(c.layers)
	return &out
}

// Width returns the chart width in pixels (0 when unset).
func (c *Chart) Width() float64 { return c.width }

// Height returns the chart height in pixels (0 when unset).
func (c *Chart) Height() float64 { return c.height }

// Domains returns the x and y scale domains. ok is false when unset.
func (c *Chart) Domains() (x, y [2]float64, ok bool) {
	if c.xDomain == nil || c.yDomain == nil {
		return x, y, false
	}
	return *c.xDomain, *c.yDomain, true
}

// Layers returns the layers in drawing order.
func (c *Chart) Layers() []Layer { return slices.Clone(c.layers) }

// Layer returns the layer with the given role.
func (c *Chart) Layer(role Role) (Layer, bool) {
	for _, l := range c.layers {
		if l.Role == role {
			return l, true
		}
	}
	return Layer{}, false
}

// WithSize returns a copy of c with the given pixel size.
func (c *Chart) WithSize(width, height float64) *Chart {
	out := c.clone()
	out.width, out.height = width, height
	return out
}

// WithDomains returns a copy of c with the given x and y scale domains.
func (c *Chart) WithDomains(x, y [2]float64) *Chart {
	out := c.clone()
	out.xDomain, out.yDomain = &x, &y
	return out
}

// WithLayer returns a copy of c where l replaces the layer with the same role,
// or is inserted at its place in drawing order.
func (c *Chart) WithLayer(l Layer) *Chart {
	out := c.clone()
	for i, existing := range out.layers {
		if existing.Role == l.Role {
			out.layers[i] = l
			return out
		}
	}
	i := 0
	for i < len(out.layers) && out.layers[i].Role.rank() <= l.Role.rank() {
		i++
	}
	out.layers = slices.Insert(out.layers, i, l)
	return out
}

// CopySizeAndAxes returns dst with the size and scale domains of src, so a
// chart assembled separately keeps src's aspect ratio.
func CopySizeAndAxes(src, dst *Chart) (*Chart, error) {
	x, y, ok := src.Domains()
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "source chart has no axis domains")
	}
	return dst.WithSize(src.width, src.height).WithDomains(x, y), nil
}

type chartJSON struct {
	Schema   string      `json:"$schema"`
	Width    float64     `json:"width,omitempty"`
	Height   float64     `json:"height,omitempty"`
	Config   *config     `json:"config"`
	Encoding Encoding    `json:"encoding,omitempty"`
	Layer    []layerJSON `json:"layer"`
}

// MarshalJSON encodes the chart as a Vega-Lite document.
func (c *Chart) MarshalJSON() ([]byte, error) {
	out := chartJSON{
		Schema: Schema,
		Width:  c.width,
		Height: c.height,
		Config: despined(),
		Layer:  make([]layerJSON, 0, len(c.layers)),
	}
	if x, y, ok := c.Domains(); ok {
		out.Encoding = Encoding{
			X: FieldDef{Scale: &Scale{Domain: x[:]}},
			Y: FieldDef{Scale: &Scale{Domain: y[:]}},
		}
	}
	for _, l := range c.layers {
		out.Layer = append(out.Layer, l.toJSON())
	}
	return json.Marshal(out)
}

// =============================================================================
// Config
// =============================================================================

type axisConfig struct {
	Ticks  bool `json:"ticks"`
	Grid   bool `json:"grid"`
	Domain bool `json:"domain"`
	Labels bool `json:"labels"`
}

type config struct {
	Axis axisConfig `json:"axis"`
}

func despined() *config { return &config{} }
