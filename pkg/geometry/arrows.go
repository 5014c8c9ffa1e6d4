package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/netchart/pkg/graph"
	"github.com/matzehuels/netchart/pkg/table"
)

// ArrowOptions configures arrowhead rows.
type ArrowOptions struct {
	// Length of the arrow line. Interpreted as a fraction of the straight
	// source-target distance when Relative is set, even for curved edges.
	Length   float64
	Relative bool

	// ControlPoints of the curved edges the arrows sit on. The arrow points
	// from the last control point to the target.
	ControlPoints []ControlPoint
}

// DefaultArrowLength is the relative arrow length used by drawing defaults.
const DefaultArrowLength = 0.1

// ArrowRows builds two rows per directed non-loop edge: the tip (order 0) at
// the target and the tail (order 1) behind it along the edge direction.
// Undirected sources produce an empty table.
func ArrowRows(src Source, pos graph.Positions, opts ArrowOptions) (*table.Table, error) {
	edges, err := validateEdges(src, pos)
	if err != nil {
		return nil, err
	}

	t := table.New(EdgeColumns...)
	if !src.Directed() {
		return t, nil
	}
	for i, e := range edges {
		if e.IsSelfLoop() {
			continue
		}
		s, d := pos[e.From], pos[e.To]
		tail := ArrowTail(s, d, opts)

		t.Append(edgeRow(i, 0, e, d.X, d.Y))
		t.Append(edgeRow(i, 1, e, tail.X, tail.Y))
	}
	return t, nil
}

// ArrowTail returns the tail point of the arrow on the edge from s to d.
func ArrowTail(s, d r2.Vec, opts ArrowOptions) r2.Vec {
	chord := r2.Norm(r2.Sub(d, s))
	from := s
	if n := len(opts.ControlPoints); n > 0 {
		from = ControlPointAt(s, d, opts.ControlPoints[n-1])
	}
	dir := r2.Sub(d, from)
	angle := math.Atan2(dir.Y, dir.X)

	length := opts.Length
	if opts.Relative {
		length *= chord
	}
	sin, cos := math.Sincos(angle)
	return r2.Vec{X: d.X - length*cos, Y: d.Y - length*sin}
}
