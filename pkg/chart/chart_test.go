package chart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/netchart/pkg/errors"
	"github.com/matzehuels/netchart/pkg/table"
)

func layer(role Role, mark MarkType) Layer {
	t := table.New("x", "y")
	t.Append(table.Row{"x": 0.0, "y": 1.0})
	return Layer{Role: role, Data: t, Mark: NewMark(mark), Encoding: Encoding{}}
}

func roles(c *Chart) []Role {
	var out []Role
	for _, l := range c.Layers() {
		out = append(out, l.Role)
	}
	return out
}

func TestNewSortsLayers(t *testing.T) {
	c := New(layer(RoleLabels, MarkText), layer(RoleEdges, MarkLine), layer(RoleNodes, MarkPoint))
	assert.Equal(t, []Role{RoleEdges, RoleNodes, RoleLabels}, roles(c))
}

func TestWithLayerIsImmutable(t *testing.T) {
	base := New(layer(RoleEdges, MarkLine), layer(RoleNodes, MarkPoint))

	arrows := base.WithLayer(layer(RoleArrows, MarkLine))
	assert.Equal(t, []Role{RoleEdges, RoleArrows, RoleNodes}, roles(arrows))
	assert.Equal(t, []Role{RoleEdges, RoleNodes}, roles(base), "original chart changed")

	replacement := layer(RoleNodes, MarkText)
	replaced := base.WithLayer(replacement)
	got, ok := replaced.Layer(RoleNodes)
	require.True(t, ok)
	assert.Equal(t, MarkText, got.Mark.Type)

	orig, _ := base.Layer(RoleNodes)
	assert.Equal(t, MarkPoint, orig.Mark.Type)
}

func TestLayerClone(t *testing.T) {
	l := layer(RoleNodes, MarkPoint)
	l.Mark.Props["size"] = 400

	c := l.Clone()
	c.Mark.Props["size"] = 10
	c.Encoding[Color] = FieldDef{Field: "w"}

	assert.Equal(t, 400, l.Mark.Props["size"])
	assert.NotContains(t, l.Encoding, Color)
	assert.Same(t, l.Data, c.Data)
}

func TestSizeAndDomains(t *testing.T) {
	c := New(layer(RoleNodes, MarkPoint))
	_, _, ok := c.Domains()
	assert.False(t, ok)

	sized := c.WithSize(500, 300).WithDomains([2]float64{-1, 1}, [2]float64{0, 2})
	assert.Equal(t, 0.0, c.Width())
	assert.Equal(t, 500.0, sized.Width())
	assert.Equal(t, 300.0, sized.Height())
	x, y, ok := sized.Domains()
	require.True(t, ok)
	assert.Equal(t, [2]float64{-1, 1}, x)
	assert.Equal(t, [2]float64{0, 2}, y)
}

func TestCopySizeAndAxes(t *testing.T) {
	src := New().WithSize(400, 200).WithDomains([2]float64{0, 2}, [2]float64{0, 1})
	dst := New(layer(RoleNodes, MarkPoint))

	out, err := CopySizeAndAxes(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 400.0, out.Width())
	x, _, _ := out.Domains()
	assert.Equal(t, [2]float64{0, 2}, x)
	assert.Len(t, out.Layers(), 1)
	assert.Equal(t, 0.0, dst.Width(), "destination changed")

	_, err = CopySizeAndAxes(dst, src)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "err = %v", err)
}

func TestChartJSON(t *testing.T) {
	edges := layer(RoleEdges, MarkLine)
	edges.Mark.Props["strokeWidth"] = 1
	edges.Encoding[X] = FieldDef{Field: "x", Type: Quantitative, NoAxis: true}
	edges.Encoding[Color] = FieldDef{Field: "w", Type: Quantitative, NoLegend: true, Scale: &Scale{Scheme: "viridis"}}

	c := New(layer(RoleNodes, MarkPoint), edges).
		WithSize(500, 300).
		WithDomains([2]float64{-0.1, 1.1}, [2]float64{-0.1, 0.9})

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, Schema, doc["$schema"])
	assert.Equal(t, 500.0, doc["width"])
	assert.Equal(t, map[string]any{"ticks": false, "grid": false, "domain": false, "labels": false},
		doc["config"].(map[string]any)["axis"])

	enc := doc["encoding"].(map[string]any)
	assert.Equal(t, []any{-0.1, 1.1}, enc["x"].(map[string]any)["scale"].(map[string]any)["domain"])

	layers := doc["layer"].([]any)
	require.Len(t, layers, 2)
	first := layers[0].(map[string]any)
	assert.Equal(t, "line", first["mark"].(map[string]any)["type"])
	assert.Equal(t, 1.0, first["mark"].(map[string]any)["strokeWidth"])
	assert.NotContains(t, first, "$schema")

	x := first["encoding"].(map[string]any)["x"].(map[string]any)
	assert.Contains(t, x, "axis")
	assert.Nil(t, x["axis"])
	color := first["encoding"].(map[string]any)["color"].(map[string]any)
	assert.Contains(t, color, "legend")
	assert.Equal(t, "viridis", color["scale"].(map[string]any)["scheme"])

	values := first["data"].(map[string]any)["values"].([]any)
	assert.Len(t, values, 1)
}

func TestLayerJSON(t *testing.T) {
	data, err := json.Marshal(layer(RoleNodes, MarkPoint))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, Schema, doc["$schema"])
	assert.Equal(t, "point", doc["mark"].(map[string]any)["type"])
	assert.Contains(t, doc, "config")
}
