package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/netchart/pkg/errors"
	"github.com/matzehuels/netchart/pkg/graph"
	"github.com/matzehuels/netchart/pkg/table"
)

// ControlPoint is an edge-relative point: Along is the fraction of the edge
// length parallel to the edge, Across the fraction perpendicular to it
// (anticlockwise positive).
type ControlPoint struct {
	Along  float64 `json:"along" toml:"along"`
	Across float64 `json:"across" toml:"across"`
}

// DefaultControlPoints is used for curved edges when none are given.
var DefaultControlPoints = []ControlPoint{{Along: 0.5, Across: 0.1}}

// EdgeOptions configures edge polylines.
type EdgeOptions struct {
	// ControlPoints inserted between source and target of non-loop edges.
	// Nil or empty means straight edges.
	ControlPoints []ControlPoint

	// LoopRadius is the self-loop circle radius in position units.
	LoopRadius float64

	// LoopAngle is the direction in degrees in which loops leave the node.
	// 90 draws them above.
	LoopAngle float64

	// LoopPoints is the number of distinct loop vertices, the node included.
	// Values of 2, 3 and 4 give a segment, a triangle and a square.
	LoopPoints int
}

// Default edge geometry values.
const (
	DefaultLoopRadius = 0.05
	DefaultLoopAngle  = 90.0
	DefaultLoopPoints = 30
)

// SetDefaults fills zero loop parameters with the package defaults.
// LoopAngle 0 is a valid direction and is left alone.
func (o *EdgeOptions) SetDefaults() {
	if o.LoopRadius == 0 {
		o.LoopRadius = DefaultLoopRadius
	}
	if o.LoopPoints == 0 {
		o.LoopPoints = DefaultLoopPoints
	}
}

// EdgeRows builds the polyline rows of every edge of src.
// The edge index is the position of the edge in src.Edges().
func EdgeRows(src Source, pos graph.Positions, opts EdgeOptions) (*table.Table, error) {
	edges, err := validateEdges(src, pos)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if e.IsSelfLoop() {
			if err := errors.ValidateLoopPoints(opts.LoopPoints); err != nil {
				return nil, err
			}
			break
		}
	}

	loopAngle := opts.LoopAngle * math.Pi / 180
	t := table.New(EdgeColumns...)
	for i, e := range edges {
		s, d := pos[e.From], pos[e.To]
		order := 0

		t.Append(edgeRow(i, order, e, s.X, s.Y))
		order++

		switch {
		case e.IsSelfLoop():
			for _, p := range loopPoints(s, opts.LoopRadius, loopAngle, opts.LoopPoints) {
				t.Append(edgeRow(i, order, e, p.X, p.Y))
				order++
			}
		case len(opts.ControlPoints) > 0:
			for _, cp := range opts.ControlPoints {
				p := ControlPointAt(s, d, cp)
				t.Append(edgeRow(i, order, e, p.X, p.Y))
				order++
			}
		}

		t.Append(edgeRow(i, order, e, d.X, d.Y))
	}
	return t, nil
}

// ControlPointAt maps an edge-relative control point to absolute coordinates
// for the edge from s to d.
func ControlPointAt(s, d r2.Vec, cp ControlPoint) r2.Vec {
	delta := r2.Sub(d, s)
	length := r2.Norm(delta)
	angle := math.Atan2(delta.Y, delta.X)
	sin, cos := math.Sincos(angle)
	return r2.Vec{
		X: s.X + length*(cp.Along*cos-cp.Across*sin),
		Y: s.Y + length*(cp.Along*sin+cp.Across*cos),
	}
}

// loopPoints returns the n-1 arc vertices of a self-loop at node, excluding
// the node itself. The circle touches the node and its centre lies at
// node + radius·(cos angle, sin angle).
func loopPoints(node r2.Vec, radius, angle float64, n int) []r2.Vec {
	sin, cos := math.Sincos(angle)
	centre := r2.Add(node, r2.Scale(radius, r2.Vec{X: cos, Y: sin}))

	out := make([]r2.Vec, 0, n-1)
	for k := 1; k < n; k++ {
		a := math.Mod(angle-math.Pi+float64(k)*2*math.Pi/float64(n), 2*math.Pi)
		ps, pc := math.Sincos(a)
		out = append(out, r2.Vec{X: centre.X + radius*pc, Y: centre.Y + radius*ps})
	}
	return out
}
