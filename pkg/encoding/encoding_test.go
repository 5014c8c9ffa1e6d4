package encoding

import (
	"encoding/json"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/netchart/pkg/chart"
	"github.com/matzehuels/netchart/pkg/errors"
	"github.com/matzehuels/netchart/pkg/table"
)

var (
	widthProp = Property{
		Name: "width", Accepts: []Kind{KindNumber, KindText},
		Channel: chart.StrokeWidth, MarkKey: "strokeWidth", Strict: true,
	}
	colourProp = Property{
		Name: "colour", Accepts: []Kind{KindText},
		Channel: chart.Color, MarkKey: "color",
	}
	dashProp = Property{
		Name: "dash", Accepts: []Kind{KindDash, KindText},
		Channel: chart.StrokeDash, MarkKey: "strokeDash", Strict: true, Nullable: true,
	}
)

func sampleTable() *table.Table {
	t := table.New("edge", "x", "y")
	t.Append(table.Row{"edge": 0, "x": 0.0, "y": 0.0, "weight": 1.5, "kind": "road"})
	t.Append(table.Row{"edge": 0, "x": 1.0, "y": 0.0, "weight": 2.5, "kind": "rail"})
	return t
}

func TestValueJSON(t *testing.T) {
	tests := []struct {
		input string
		want  Value
	}{
		{`null`, None()},
		{`false`, None()},
		{`2`, Number(2)},
		{`"red"`, Text("red")},
		{`"@weight"`, Field("weight")},
		{`"@"`, Text("@")},
		{`[4, 2]`, Dash(4, 2)},
		{`["a", "@b"]`, Fields("a", "b")},
		{`["only"]`, Fields("only")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.input), &v))
			assert.Equal(t, tt.want, v)
		})
	}

	for _, bad := range []string{`true`, `{"a": 1}`, `[1, "a", 2]`} {
		var v Value
		assert.Error(t, json.Unmarshal([]byte(bad), &v), bad)
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	type style struct {
		Width Value `json:"width,omitzero"`
		Dash  Value `json:"dash,omitzero"`
		Label Value `json:"label,omitzero"`
	}
	in := style{Width: Field("w"), Dash: None()}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"width": "@w", "dash": null}`, string(data))

	var out style
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
	assert.True(t, out.Label.IsZero())
}

func TestValueTOML(t *testing.T) {
	var cfg struct {
		Width  Value `toml:"width"`
		Colour Value `toml:"colour"`
		Dash   Value `toml:"dash"`
		Fill   Value `toml:"fill"`
		Tip    Value `toml:"tooltip"`
		Unset  Value `toml:"unset"`
	}
	doc := `
width = 3
colour = "@weight"
dash = [4, 2.5]
fill = false
tooltip = ["a", "b"]
`
	_, err := toml.Decode(doc, &cfg)
	require.NoError(t, err)
	assert.Equal(t, Number(3), cfg.Width)
	assert.Equal(t, Field("weight"), cfg.Colour)
	assert.Equal(t, Dash(4, 2.5), cfg.Dash)
	assert.Equal(t, None(), cfg.Fill)
	assert.Equal(t, Fields("a", "b"), cfg.Tip)
	assert.Equal(t, KindUnset, cfg.Unset.Kind())
}

func TestValueOr(t *testing.T) {
	assert.Equal(t, Number(1), Value{}.Or(Number(1)))
	assert.Equal(t, None(), None().Or(Number(1)))
}

func TestBind(t *testing.T) {
	tests := []struct {
		name     string
		prop     Property
		value    Value
		wantMark map[string]any
		wantEnc  chart.Channel
		wantCode errors.Code
	}{
		{name: "NumberConstant", prop: widthProp, value: Number(2), wantMark: map[string]any{"strokeWidth": 2.0}},
		{name: "TextColumn", prop: widthProp, value: Text("weight"), wantEnc: chart.StrokeWidth},
		{name: "StrictUnmatched", prop: widthProp, value: Text("nope"), wantCode: errors.ErrCodeUnresolvedReference},
		{name: "WrongKind", prop: widthProp, value: Dash(1, 2), wantCode: errors.ErrCodeInvalidType},
		{name: "NoneNotNullable", prop: widthProp, value: None(), wantCode: errors.ErrCodeInvalidType},
		{name: "Unset", prop: widthProp, value: Value{}, wantMark: map[string]any{}},
		{name: "LiteralColour", prop: colourProp, value: Text("red"), wantMark: map[string]any{"color": "red"}},
		{name: "ColourColumn", prop: colourProp, value: Text("kind"), wantEnc: chart.Color},
		{name: "FieldUnmatched", prop: colourProp, value: Field("red"), wantCode: errors.ErrCodeUnresolvedReference},
		{name: "ColourNumber", prop: colourProp, value: Number(1), wantCode: errors.ErrCodeInvalidType},
		{name: "DashConstant", prop: dashProp, value: Dash(4, 2), wantMark: map[string]any{"strokeDash": []float64{4, 2}}},
		{name: "DashNone", prop: dashProp, value: None(), wantMark: map[string]any{}},
		{name: "DashStrict", prop: dashProp, value: Text("dotted"), wantCode: errors.ErrCodeUnresolvedReference},
		{name: "DashColumn", prop: dashProp, value: Text("kind"), wantEnc: chart.StrokeDash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBinder(sampleTable(), false)
			err := b.Bind(tt.prop, tt.value)

			if tt.wantCode != "" {
				require.True(t, errors.Is(err, tt.wantCode), "err = %v, want %s", err, tt.wantCode)
				assert.Contains(t, err.Error(), tt.prop.Name)
				return
			}
			require.NoError(t, err)
			if tt.wantMark != nil {
				assert.Equal(t, tt.wantMark, b.Mark())
			}
			if tt.wantEnc != "" {
				col, ok := b.Encoding().Field(tt.wantEnc)
				require.True(t, ok, "channel %s not bound", tt.wantEnc)
				assert.Equal(t, tt.value.Str(), col)
				assert.Empty(t, b.Mark())
			}
		})
	}
}

func TestBindFieldTypes(t *testing.T) {
	b := NewBinder(sampleTable(), true)
	require.NoError(t, b.Bind(widthProp, Text("weight")))
	require.NoError(t, b.Bind(colourProp, Text("kind")))

	w := b.Encoding()[chart.StrokeWidth].(chart.FieldDef)
	assert.Equal(t, chart.Quantitative, w.Type)
	assert.False(t, w.NoLegend)

	c := b.Encoding()[chart.Color].(chart.FieldDef)
	assert.Equal(t, chart.Nominal, c.Type)
}

func TestBindColor(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		cmap     string
		wantCode errors.Code
	}{
		{"Numeric", Text("weight"), "viridis", ""},
		{"Categorical", Text("kind"), "viridis", errors.ErrCodeInvalidType},
		{"Missing", Text("red"), "viridis", errors.ErrCodeUnresolvedReference},
		{"Number", Number(1), "viridis", errors.ErrCodeInvalidType},
		{"NoCmap", Text("red"), "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBinder(sampleTable(), false)
			err := b.BindColor(colourProp, tt.value, tt.cmap)
			if tt.wantCode != "" {
				assert.True(t, errors.Is(err, tt.wantCode), "err = %v, want %s", err, tt.wantCode)
				return
			}
			require.NoError(t, err)
			if tt.cmap != "" {
				def := b.Encoding()[chart.Color].(chart.FieldDef)
				require.NotNil(t, def.Scale)
				assert.Equal(t, tt.cmap, def.Scale.Scheme)
			}
		})
	}
}

func TestTooltip(t *testing.T) {
	b := NewBinder(sampleTable(), false)
	require.NoError(t, b.Tooltip(Fields("weight", "kind")))
	defs := b.Encoding()[chart.Tooltip].([]chart.FieldDef)
	require.Len(t, defs, 2)
	assert.Equal(t, "weight", defs[0].Field)
	assert.False(t, defs[0].NoLegend)

	err := b.Tooltip(Fields("weight", "missing"))
	assert.True(t, errors.Is(err, errors.ErrCodeUnresolvedReference), "err = %v", err)

	err = b.Tooltip(Number(3))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidType), "err = %v", err)

	require.NoError(t, NewBinder(sampleTable(), false).Tooltip(None()))
}

func TestOverride(t *testing.T) {
	b := NewBinder(sampleTable(), false)
	require.NoError(t, b.Bind(colourProp, Text("red")))
	b.Override(map[string]any{"color": "blue", "cursor": "pointer"}, map[string]any{"href": map[string]any{"field": "url"}})

	assert.Equal(t, "blue", b.Mark()["color"])
	assert.Equal(t, "pointer", b.Mark()["cursor"])
	assert.Contains(t, b.Encoding(), chart.Channel("href"))
}
