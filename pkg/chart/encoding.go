package chart

import (
	"encoding/json"
	"maps"
)

// MarkType is a Vega-Lite mark type.
type MarkType string

// Mark types used for graph layers.
const (
	MarkLine  MarkType = "line"
	MarkPoint MarkType = "point"
	MarkText  MarkType = "text"
)

// Mark is a mark type plus constant mark properties.
type Mark struct {
	Type  MarkType
	Props map[string]any
}

// NewMark creates a mark with an empty property map.
func NewMark(t MarkType) Mark {
	return Mark{Type: t, Props: map[string]any{}}
}

// MarshalJSON encodes the mark as {"type": ..., props...}.
func (m Mark) MarshalJSON() ([]byte, error) {
	out := maps.Clone(m.Props)
	if out == nil {
		out = make(map[string]any, 1)
	}
	out["type"] = m.Type
	return json.Marshal(out)
}

// Channel is a Vega-Lite encoding channel.
type Channel string

// Encoding channels.
const (
	X           Channel = "x"
	Y           Channel = "y"
	Color       Channel = "color"
	Fill        Channel = "fill"
	Opacity     Channel = "opacity"
	Size        Channel = "size"
	Shape       Channel = "shape"
	StrokeWidth Channel = "strokeWidth"
	StrokeDash  Channel = "strokeDash"
	Detail      Channel = "detail"
	Order       Channel = "order"
	Text        Channel = "text"
	Tooltip     Channel = "tooltip"
)

// FieldType is a Vega-Lite measurement type.
type FieldType string

// Measurement types.
const (
	Quantitative FieldType = "quantitative"
	Nominal      FieldType = "nominal"
)

// Scale configures a channel scale.
type Scale struct {
	Domain []float64 `json:"domain,omitempty"`
	Scheme string    `json:"scheme,omitempty"`
}

// FieldDef binds a channel to a data column.
type FieldDef struct {
	Field    string
	Type     FieldType
	Scale    *Scale
	NoLegend bool // emit "legend": null
	NoAxis   bool // emit "axis": null
}

// MarshalJSON encodes the field definition, writing explicit nulls for a
// disabled legend or axis.
func (f FieldDef) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 5)
	if f.Field != "" {
		out["field"] = f.Field
	}
	if f.Type != "" {
		out["type"] = f.Type
	}
	if f.Scale != nil {
		out["scale"] = f.Scale
	}
	if f.NoLegend {
		out["legend"] = nil
	}
	if f.NoAxis {
		out["axis"] = nil
	}
	return json.Marshal(out)
}

// Encoding maps channels to FieldDef values, []FieldDef (tooltips) or raw
// overrides supplied by the caller.
type Encoding map[Channel]any

// Field returns the column bound to ch, if ch holds a FieldDef.
func (e Encoding) Field(ch Channel) (string, bool) {
	fd, ok := e[ch].(FieldDef)
	if !ok {
		return "", false
	}
	return fd.Field, true
}
