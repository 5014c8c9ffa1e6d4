package layout

import (
	"context"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/netchart/pkg/graph"
)

// Circular places nodes evenly on a circle, starting at angle 0 and going
// anticlockwise in graph order.
type Circular struct {
	// Radius of the circle. Zero means 1.
	Radius float64
}

// Layout implements Layouter.
func (c *Circular) Layout(_ context.Context, src graph.Source) (graph.Positions, error) {
	return circle(src.Nodes(), c.Radius), nil
}

func circle(nodes []graph.Node, radius float64) graph.Positions {
	if radius == 0 {
		radius = 1
	}
	pos := make(graph.Positions, len(nodes))
	if len(nodes) == 1 {
		pos[nodes[0].ID] = r2.Vec{}
		return pos
	}
	step := 2 * math.Pi / float64(len(nodes))
	for i, n := range nodes {
		sin, cos := math.Sincos(float64(i) * step)
		pos[n.ID] = r2.Vec{X: radius * cos, Y: radius * sin}
	}
	return pos
}
