// Package layout computes node positions for graphs that arrive without them.
//
// Three families are available behind the [Layouter] interface:
//
//   - [Force]: Eades spring embedder from gonum (default)
//   - [Circular]: nodes evenly spaced on a circle in graph order
//   - [Graphviz]: any Graphviz engine (neato, fdp, sfdp, circo, twopi, dot)
//
// Every layouter is deterministic for a given graph: the same input always
// yields the same positions, which keeps cached charts stable.
package layout

import (
	"context"
	"slices"

	"github.com/matzehuels/netchart/pkg/errors"
	"github.com/matzehuels/netchart/pkg/graph"
)

// Layouter assigns a position to every node of a graph.
type Layouter interface {
	Layout(ctx context.Context, src graph.Source) (graph.Positions, error)
}

// Names of the built-in layouts.
const (
	NameForce    = "force"
	NameCircular = "circular"
)

// Names lists every name accepted by ByName.
var Names = []string{NameForce, NameCircular, "neato", "fdp", "sfdp", "circo", "twopi", "dot"}

// Default returns the layouter used when none is configured.
func Default() Layouter { return &Force{} }

// ByName returns the layouter registered under name. Graphviz engine names
// select a Graphviz layouter with that engine. An empty name selects Default.
func ByName(name string) (Layouter, error) {
	switch name {
	case "", NameForce:
		return Default(), nil
	case NameCircular:
		return &Circular{}, nil
	}
	if slices.Contains(Names, name) {
		return &Graphviz{Engine: name}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidLayout, "unknown layout %q (available: %v)", name, Names)
}
