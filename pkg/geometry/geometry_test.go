package geometry

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/netchart/pkg/errors"
	"github.com/matzehuels/netchart/pkg/graph"
	"github.com/matzehuels/netchart/pkg/table"
)

const eps = 1e-9

func xy(t *testing.T, r table.Row) (float64, float64) {
	t.Helper()
	x, okx := table.AsFloat(r[ColX])
	y, oky := table.AsFloat(r[ColY])
	require.True(t, okx && oky, "row %v has no coordinates", r)
	return x, y
}

func rowsOfEdge(tb *table.Table, i int) []table.Row {
	var out []table.Row
	for _, r := range tb.Rows() {
		if r[ColEdge] == i {
			out = append(out, r)
		}
	}
	return out
}

func lineGraph(directed bool) (*graph.Graph, graph.Positions) {
	g := graph.New(directed)
	g.AddEdge("a", "b", nil)
	return g, graph.Positions{"a": {X: 0, Y: 0}, "b": {X: 10, Y: 0}}
}

// =============================================================================
// Nodes
// =============================================================================

func TestNodeRows(t *testing.T) {
	g := graph.New(false)
	g.AddNode("a", graph.Attrs{"weight": 2})
	g.AddNode("b", nil)
	pos := graph.Positions{"a": {X: 1, Y: 2}, "b": {X: 3, Y: 4}}

	tb, err := NodeRows(g, pos)
	require.NoError(t, err)
	require.Equal(t, 2, tb.Len())

	first := tb.Rows()[0]
	assert.Equal(t, "a", first[ColNode])
	assert.Equal(t, 1.0, first[ColX])
	assert.Equal(t, 2.0, first[ColY])
	assert.Equal(t, 2, first["weight"])
	assert.Equal(t, []string{"node", "x", "y", "weight"}, tb.Columns())
}

func TestNodeRowsCollision(t *testing.T) {
	g := graph.New(false)
	g.AddNode("a", graph.Attrs{"y": 1, "x": 5})
	g.AddNode("b", graph.Attrs{"x": 2, "ok": true})

	_, err := NodeRows(g, graph.Positions{"a": {}, "b": {}})
	require.True(t, errors.Is(err, errors.ErrCodeAttributeCollision), "err = %v", err)
	assert.Contains(t, err.Error(), "overlapping attributes: [x, y]")
}

func TestNodeRowsMissingPosition(t *testing.T) {
	g := graph.New(false)
	g.AddNode("a", nil)
	_, err := NodeRows(g, graph.Positions{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "err = %v", err)
}

// =============================================================================
// Edges
// =============================================================================

func TestEdgeRowsStraight(t *testing.T) {
	g, pos := lineGraph(false)
	tb, err := EdgeRows(g, pos, EdgeOptions{})
	require.NoError(t, err)
	require.Equal(t, 2, tb.Len())

	r0, r1 := tb.Rows()[0], tb.Rows()[1]
	assert.Equal(t, 0, r0[ColOrder])
	assert.Equal(t, 1, r1[ColOrder])
	assert.Equal(t, graph.Pair{Source: "a", Target: "b"}, r0[ColPair])
	x, y := xy(t, r1)
	assert.InDelta(t, 10, x, eps)
	assert.InDelta(t, 0, y, eps)
}

func TestEdgeRowsEmptyControlPointsIsStraight(t *testing.T) {
	g, pos := lineGraph(false)
	tb, err := EdgeRows(g, pos, EdgeOptions{ControlPoints: []ControlPoint{}})
	require.NoError(t, err)
	assert.Equal(t, 2, tb.Len())
}

func TestEdgeRowsCurved(t *testing.T) {
	tests := []struct {
		name   string
		target r2.Vec
		cp     ControlPoint
		want   r2.Vec
	}{
		{"Horizontal", r2.Vec{X: 10, Y: 0}, ControlPoint{0.5, 0.1}, r2.Vec{X: 5, Y: 1}},
		{"Vertical", r2.Vec{X: 0, Y: 10}, ControlPoint{0.5, 0.1}, r2.Vec{X: -1, Y: 5}},
		{"Backward", r2.Vec{X: -10, Y: 0}, ControlPoint{0.25, -0.2}, r2.Vec{X: -2.5, Y: 2}},
		{"Degenerate", r2.Vec{}, ControlPoint{0.5, 0.1}, r2.Vec{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.New(false)
			g.AddEdge("a", "b", nil)
			pos := graph.Positions{"a": {}, "b": tt.target}

			tb, err := EdgeRows(g, pos, EdgeOptions{ControlPoints: []ControlPoint{tt.cp}})
			require.NoError(t, err)
			require.Equal(t, 3, tb.Len())

			mid := tb.Rows()[1]
			assert.Equal(t, 1, mid[ColOrder])
			x, y := xy(t, mid)
			assert.InDelta(t, tt.want.X, x, eps)
			assert.InDelta(t, tt.want.Y, y, eps)
			assert.Equal(t, 2, tb.Rows()[2][ColOrder])
		})
	}
}

func TestEdgeRowsMultipleControlPointsInOrder(t *testing.T) {
	g, pos := lineGraph(false)
	cps := []ControlPoint{{0.25, 0}, {0.5, 0.1}, {0.75, 0}}
	tb, err := EdgeRows(g, pos, EdgeOptions{ControlPoints: cps})
	require.NoError(t, err)
	require.Equal(t, 5, tb.Len())

	wantX := []float64{0, 2.5, 5, 7.5, 10}
	for i, r := range tb.Rows() {
		assert.Equal(t, i, r[ColOrder])
		x, _ := xy(t, r)
		assert.InDelta(t, wantX[i], x, eps)
	}
}

func TestEdgeRowsSelfLoop(t *testing.T) {
	g := graph.New(false)
	g.AddEdge("a", "a", nil)
	pos := graph.Positions{"a": {X: 1, Y: 1}}
	opts := EdgeOptions{LoopRadius: 0.5, LoopAngle: 90, LoopPoints: 4}

	tb, err := EdgeRows(g, pos, opts)
	require.NoError(t, err)
	require.Equal(t, opts.LoopPoints+1, tb.Len())

	rows := tb.Rows()
	// First and last rows sit on the node.
	for _, r := range []table.Row{rows[0], rows[len(rows)-1]} {
		x, y := xy(t, r)
		assert.InDelta(t, 1, x, eps)
		assert.InDelta(t, 1, y, eps)
	}

	// Every arc point lies on the circle above the node.
	centre := r2.Vec{X: 1, Y: 1.5}
	for _, r := range rows[1 : len(rows)-1] {
		x, y := xy(t, r)
		assert.InDelta(t, 0.5, r2.Norm(r2.Sub(r2.Vec{X: x, Y: y}, centre)), eps)
	}

	// Square loop: right, top, left of the circle.
	want := []r2.Vec{{X: 1.5, Y: 1.5}, {X: 1, Y: 2}, {X: 0.5, Y: 1.5}}
	for i, w := range want {
		x, y := xy(t, rows[i+1])
		assert.InDelta(t, w.X, x, eps, "point %d", i+1)
		assert.InDelta(t, w.Y, y, eps, "point %d", i+1)
	}
}

func TestEdgeRowsSelfLoopArcStep(t *testing.T) {
	g := graph.New(false)
	g.AddEdge("a", "a", nil)
	opts := EdgeOptions{LoopRadius: 1, LoopAngle: 30, LoopPoints: 30}

	tb, err := EdgeRows(g, graph.Positions{"a": {}}, opts)
	require.NoError(t, err)
	rows := tb.Rows()
	require.Len(t, rows, 31)

	// Consecutive vertices are one chord of angle 2π/n apart.
	chord := 2 * math.Sin(math.Pi/float64(opts.LoopPoints))
	for i := 1; i < len(rows); i++ {
		x0, y0 := xy(t, rows[i-1])
		x1, y1 := xy(t, rows[i])
		assert.InDelta(t, chord, math.Hypot(x1-x0, y1-y0), 1e-9, "step %d", i)
	}
}

func TestEdgeRowsSelfLoopIgnoresControlPoints(t *testing.T) {
	g := graph.New(false)
	g.AddEdge("a", "a", nil)
	opts := EdgeOptions{ControlPoints: DefaultControlPoints, LoopRadius: 0.1, LoopPoints: 3}

	tb, err := EdgeRows(g, graph.Positions{"a": {}}, opts)
	require.NoError(t, err)
	assert.Equal(t, 4, tb.Len())
}

func TestEdgeRowsInvalidLoopPoints(t *testing.T) {
	g := graph.New(false)
	g.AddEdge("a", "a", nil)
	_, err := EdgeRows(g, graph.Positions{"a": {}}, EdgeOptions{LoopPoints: 1})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "err = %v", err)

	// Loop points do not matter without self-loops.
	g2, pos := lineGraph(false)
	_, err = EdgeRows(g2, pos, EdgeOptions{})
	assert.NoError(t, err)
}

func TestEdgeRowsCollision(t *testing.T) {
	g := graph.New(false)
	g.AddEdge("a", "b", graph.Attrs{"pair": 1, "order": 2, "weight": 3})
	_, err := EdgeRows(g, graph.Positions{"a": {}, "b": {}}, EdgeOptions{})
	require.True(t, errors.Is(err, errors.ErrCodeAttributeCollision), "err = %v", err)
	assert.Contains(t, err.Error(), "[order, pair]")
}

func TestEdgeRowsEdgeIndexAndAttrs(t *testing.T) {
	g := graph.New(false)
	g.AddEdge("a", "b", graph.Attrs{"w": 1})
	g.AddEdge("b", "c", graph.Attrs{"w": 2})
	pos := graph.Positions{"a": {}, "b": {X: 1}, "c": {X: 2}}

	tb, err := EdgeRows(g, pos, EdgeOptions{})
	require.NoError(t, err)
	second := rowsOfEdge(tb, 1)
	require.Len(t, second, 2)
	for _, r := range second {
		assert.Equal(t, "b", r[ColSource])
		assert.Equal(t, "c", r[ColTarget])
		assert.Equal(t, 2, r["w"])
	}
}

// =============================================================================
// Arrows
// =============================================================================

func TestArrowRows(t *testing.T) {
	tests := []struct {
		name     string
		opts     ArrowOptions
		wantTail r2.Vec
	}{
		{"Absolute", ArrowOptions{Length: 2}, r2.Vec{X: 8, Y: 0}},
		{"Relative", ArrowOptions{Length: 0.1, Relative: true}, r2.Vec{X: 9, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, pos := lineGraph(true)
			tb, err := ArrowRows(g, pos, tt.opts)
			require.NoError(t, err)
			require.Equal(t, 2, tb.Len())

			tip, tail := tb.Rows()[0], tb.Rows()[1]
			assert.Equal(t, 0, tip[ColOrder])
			assert.Equal(t, 1, tail[ColOrder])
			x, y := xy(t, tip)
			assert.InDelta(t, 10, x, eps)
			assert.InDelta(t, 0, y, eps)
			x, y = xy(t, tail)
			assert.InDelta(t, tt.wantTail.X, x, eps)
			assert.InDelta(t, tt.wantTail.Y, y, eps)
		})
	}
}

func TestArrowRowsCurvedDirection(t *testing.T) {
	g, pos := lineGraph(true)
	cp := ControlPoint{Along: 0.5, Across: 0.5}
	opts := ArrowOptions{Length: 0.1, Relative: true, ControlPoints: []ControlPoint{cp}}

	tb, err := ArrowRows(g, pos, opts)
	require.NoError(t, err)
	x, y := xy(t, tb.Rows()[1])

	// Last control point is (5, 5); the arrow points from there to (10, 0)
	// with length 0.1 of the chord (10).
	d := 1 / math.Sqrt2
	assert.InDelta(t, 10-d, x, eps)
	assert.InDelta(t, d, y, eps)
}

func TestArrowRowsSkipsSelfLoopsAndUndirected(t *testing.T) {
	g := graph.New(true)
	g.AddEdge("a", "b", nil)
	g.AddEdge("b", "b", nil)
	pos := graph.Positions{"a": {}, "b": {X: 1}}

	tb, err := ArrowRows(g, pos, ArrowOptions{Length: 0.1, Relative: true})
	require.NoError(t, err)
	assert.Equal(t, 2, tb.Len())
	for _, r := range tb.Rows() {
		assert.Equal(t, 0, r[ColEdge])
	}

	g.SetDirected(false)
	tb, err = ArrowRows(g, pos, ArrowOptions{Length: 0.1})
	require.NoError(t, err)
	assert.Equal(t, 0, tb.Len())
}

func TestArrowRowsDegenerateEdge(t *testing.T) {
	g := graph.New(true)
	g.AddEdge("a", "b", nil)
	pos := graph.Positions{"a": {X: 1, Y: 1}, "b": {X: 1, Y: 1}}

	tb, err := ArrowRows(g, pos, ArrowOptions{Length: 0.5})
	require.NoError(t, err)
	x, y := xy(t, tb.Rows()[1])
	assert.InDelta(t, 0.5, x, eps)
	assert.InDelta(t, 1, y, eps)
}

// =============================================================================
// Subsetting through views
// =============================================================================

func TestRowsFromViewSubset(t *testing.T) {
	g := graph.New(true)
	g.AddEdge("a", "b", nil)
	g.AddEdge("b", "c", nil)
	g.AddEdge("c", "c", nil)
	pos := graph.Positions{"a": {}, "b": {X: 1}, "c": {X: 2}}

	tb, err := NodeRows(g, pos)
	require.NoError(t, err)
	subset := tb.Filter(func(r table.Row) bool {
		return slices.Contains([]string{"a", "b"}, r[ColNode].(string))
	})
	require.Equal(t, 2, subset.Len())
	assert.Equal(t, "a", subset.Rows()[0][ColNode])
	assert.Equal(t, "b", subset.Rows()[1][ColNode])

	v := graph.NewView(g, graph.ViewOptions{HideSelfLoops: true})
	edges, err := EdgeRows(v, pos, EdgeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 4, edges.Len())
}

// =============================================================================
// Frame
// =============================================================================

func TestResolveSize(t *testing.T) {
	pos := graph.Positions{"a": {X: 0, Y: 0}, "b": {X: 4, Y: 2}}

	tests := []struct {
		name          string
		pos           graph.Positions
		width, height float64
		wantW, wantH  float64
		wantErr       bool
	}{
		{"Both", pos, 500, 300, 500, 300, false},
		{"DeriveWidth", pos, 0, 100, 200, 100, false},
		{"DeriveHeight", pos, 100, 0, 100, 50, false},
		{"NeitherSet", pos, 0, 0, 0, 0, true},
		{"Negative", pos, -1, 10, 0, 0, true},
		{"FlatData", graph.Positions{"a": {}, "b": {X: 1}}, 0, 100, 0, 0, true},
		{"NoPositions", graph.Positions{}, 100, 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := ResolveSize(tt.pos, tt.width, tt.height)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "err = %v", err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantW, w, eps)
			assert.InDelta(t, tt.wantH, h, eps)
		})
	}
}

func TestNormalize(t *testing.T) {
	pos := graph.Positions{"a": {X: -2, Y: 10}, "b": {X: 2, Y: 30}, "c": {X: 0, Y: 20}}

	wide := Normalize(pos, 500, 250)
	assert.InDelta(t, 0, wide["a"].X, eps)
	assert.InDelta(t, 2, wide["b"].X, eps)
	assert.InDelta(t, 1, wide["c"].X, eps)
	assert.InDelta(t, 1, wide["b"].Y, eps)
	assert.InDelta(t, 0.5, wide["c"].Y, eps)

	tall := Normalize(pos, 100, 300)
	assert.InDelta(t, 1, tall["b"].X, eps)
	assert.InDelta(t, 3, tall["b"].Y, eps)

	flat := Normalize(graph.Positions{"a": {X: 5, Y: 1}, "b": {X: 5, Y: 3}}, 100, 100)
	assert.InDelta(t, 0, flat["a"].X, eps)
	assert.InDelta(t, 0, flat["b"].X, eps)
	assert.InDelta(t, 1, flat["b"].Y, eps)

	// Input is not modified.
	assert.Equal(t, -2.0, pos["a"].X)
}

func TestBounds(t *testing.T) {
	a := table.New(ColX, ColY)
	a.Append(table.Row{ColX: 0.0, ColY: 1.0})
	a.Append(table.Row{ColX: 2.0, ColY: -1.0})
	b := table.New(ColX, ColY)
	b.Append(table.Row{ColX: 5.0, ColY: 0.0})

	box, ok := Bounds(a, b, table.New())
	require.True(t, ok)
	assert.Equal(t, r2.Box{Min: r2.Vec{X: 0, Y: -1}, Max: r2.Vec{X: 5, Y: 1}}, box)

	_, ok = Bounds(table.New())
	assert.False(t, ok)
}

func TestPadDomains(t *testing.T) {
	tests := []struct {
		name          string
		box           r2.Box
		width, height float64
		padding       float64
	}{
		{"WideChartSquareData", r2.Box{Max: r2.Vec{X: 1, Y: 1}}, 500, 300, 0.05},
		{"TallChartWideData", r2.Box{Max: r2.Vec{X: 4, Y: 1}}, 200, 600, 0.1},
		{"MatchingRatio", r2.Box{Max: r2.Vec{X: 5, Y: 3}}, 500, 300, 0.05},
		{"NoPadding", r2.Box{Max: r2.Vec{X: 2, Y: 1}}, 300, 300, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xd, yd := PadDomains(tt.box, tt.width, tt.height, tt.padding)
			xSpan := tt.box.Max.X - tt.box.Min.X
			ySpan := tt.box.Max.Y - tt.box.Min.Y
			uniform := tt.padding * math.Max(xSpan, ySpan)

			xPad := tt.box.Min.X - xd[0]
			yPad := tt.box.Min.Y - yd[0]
			assert.InDelta(t, xPad, xd[1]-tt.box.Max.X, eps, "x padding symmetric")
			assert.InDelta(t, yPad, yd[1]-tt.box.Max.Y, eps, "y padding symmetric")
			assert.GreaterOrEqual(t, xPad, uniform-eps)
			assert.GreaterOrEqual(t, yPad, uniform-eps)

			ratio := (xd[1] - xd[0]) / (yd[1] - yd[0])
			assert.InDelta(t, tt.width/tt.height, ratio, 1e-9)
		})
	}
}

func TestPadDomainsZeroExtent(t *testing.T) {
	box := r2.Box{Min: r2.Vec{X: 1, Y: 1}, Max: r2.Vec{X: 1, Y: 1}}
	xd, yd := PadDomains(box, 200, 100, 0.05)
	assert.InDelta(t, 0.2, xd[1]-xd[0], eps)
	assert.InDelta(t, 0.1, yd[1]-yd[0], eps)
}
