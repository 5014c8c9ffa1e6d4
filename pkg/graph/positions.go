package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/netchart/pkg/errors"
)

// Positions maps node IDs to 2D coordinates.
type Positions map[string]r2.Vec

// MarshalJSON encodes positions as {"id": [x, y]}. Keys are sorted by
// encoding/json, so output is deterministic.
func (p Positions) MarshalJSON() ([]byte, error) {
	out := make(map[string][2]float64, len(p))
	for id, v := range p {
		out[id] = [2]float64{v.X, v.Y}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes {"id": [x, y]}.
func (p *Positions) UnmarshalJSON(data []byte) error {
	var raw map[string][]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Positions, len(raw))
	for id, xy := range raw {
		if len(xy) != 2 {
			return fmt.Errorf("position of %q: want 2 coordinates, got %d", id, len(xy))
		}
		out[id] = r2.Vec{X: xy[0], Y: xy[1]}
	}
	*p = out
	return nil
}

// Clone returns a copy of p.
func (p Positions) Clone() Positions {
	out := make(Positions, len(p))
	for id, v := range p {
		out[id] = v
	}
	return out
}

// Validate checks that every node of src has a finite position.
func (p Positions) Validate(src Source) error {
	for _, n := range src.Nodes() {
		v, ok := p[n.ID]
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "node %q has no position", n.ID)
		}
		if !finite(v.X) || !finite(v.Y) {
			return errors.New(errors.ErrCodeInvalidInput, "node %q has a non-finite position", n.ID)
		}
	}
	return nil
}

// ReadPositionsFile reads a positions JSON file.
func ReadPositionsFile(path string) (Positions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var p Positions
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode positions %s", path)
	}
	return p, nil
}

// WritePositionsFile writes positions as indented JSON.
func WritePositionsFile(p Positions, path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode positions: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
