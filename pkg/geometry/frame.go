package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/netchart/pkg/errors"
	"github.com/matzehuels/netchart/pkg/graph"
	"github.com/matzehuels/netchart/pkg/table"
)

// =============================================================================
// Aspect Ratio
// =============================================================================

// Extent returns the bounding box of the positions. ok is false when pos is
// empty.
func Extent(pos graph.Positions) (box r2.Box, ok bool) {
	box.Min = r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	box.Max = r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range pos {
		box.Min.X = math.Min(box.Min.X, p.X)
		box.Min.Y = math.Min(box.Min.Y, p.Y)
		box.Max.X = math.Max(box.Max.X, p.X)
		box.Max.Y = math.Max(box.Max.Y, p.Y)
		ok = true
	}
	if !ok {
		return r2.Box{}, false
	}
	return box, true
}

// ResolveSize fills in a zero chart dimension from the aspect ratio of the
// positions. Both dimensions zero is an error, as is deriving a dimension
// from positions that have no extent on one axis.
func ResolveSize(pos graph.Positions, width, height float64) (float64, float64, error) {
	if err := errors.ValidateChartSize(width, height); err != nil {
		return 0, 0, err
	}
	if width > 0 && height > 0 {
		return width, height, nil
	}

	box, ok := Extent(pos)
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "cannot derive chart size without positions")
	}
	xSpan, ySpan := box.Max.X-box.Min.X, box.Max.Y-box.Min.Y
	if xSpan == 0 || ySpan == 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput,
			"cannot derive chart size: positions have no extent along one axis (%gx%g)", xSpan, ySpan)
	}
	if width == 0 {
		width = height * xSpan / ySpan
	} else {
		height = width * ySpan / xSpan
	}
	return width, height, nil
}

// Normalize rescales positions for a width x height chart. Each axis is first
// mapped to [0, 1] (an axis without extent maps to 0), then the axis along
// the longer chart side is stretched by long/short so x and y units match.
// The shorter axis therefore always spans [0, 1], which keeps loop radii
// consistent relative to chart size.
func Normalize(pos graph.Positions, width, height float64) graph.Positions {
	out := make(graph.Positions, len(pos))
	box, ok := Extent(pos)
	if !ok {
		return out
	}
	xSpan, ySpan := box.Max.X-box.Min.X, box.Max.Y-box.Min.Y

	sx, sy := 1.0, 1.0
	switch {
	case width > height:
		sx = width / height
	case height > width:
		sy = height / width
	}

	for id, p := range pos {
		var q r2.Vec
		if xSpan != 0 {
			q.X = (p.X - box.Min.X) / xSpan * sx
		}
		if ySpan != 0 {
			q.Y = (p.Y - box.Min.Y) / ySpan * sy
		}
		out[id] = q
	}
	return out
}

// =============================================================================
// Domains
// =============================================================================

// Bounds returns the bounding box of the x and y columns over all tables.
// Drawn elements such as self-loops may reach beyond node positions, so
// domains are computed from the rows actually drawn.
func Bounds(tables ...*table.Table) (box r2.Box, ok bool) {
	box.Min = r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	box.Max = r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, t := range tables {
		xlo, xhi, okx := t.Extent(ColX)
		ylo, yhi, oky := t.Extent(ColY)
		if !okx || !oky {
			continue
		}
		box.Min.X = math.Min(box.Min.X, xlo)
		box.Max.X = math.Max(box.Max.X, xhi)
		box.Min.Y = math.Min(box.Min.Y, ylo)
		box.Max.Y = math.Max(box.Max.Y, yhi)
		ok = true
	}
	if !ok {
		return r2.Box{}, false
	}
	return box, true
}

// PadDomains pads box uniformly by padding·max(xSpan, ySpan), then widens the
// padding of one axis (never narrows either) until the padded box has the
// chart's width:height ratio. A box without extent pads as if its larger
// span were 1.
func PadDomains(box r2.Box, width, height, padding float64) (xDomain, yDomain [2]float64) {
	xSpan, ySpan := box.Max.X-box.Min.X, box.Max.Y-box.Min.Y
	span := math.Max(xSpan, ySpan)
	if span == 0 {
		span = 1
	}
	pad := padding * span

	longAxis, shortAxis, longSide, shortSide := xSpan, ySpan, width, height
	if width < height {
		longAxis, shortAxis, longSide, shortSide = ySpan, xSpan, height, width
	}
	longPad, shortPad := pad, pad

	rawLong, rawShort := longAxis+2*pad, shortAxis+2*pad
	if rawLong*shortSide >= longSide*rawShort {
		shortPad = (rawLong*shortSide/longSide - shortAxis) / 2
	} else {
		longPad = (rawShort*longSide/shortSide - longAxis) / 2
	}

	xPad, yPad := longPad, shortPad
	if width < height {
		xPad, yPad = shortPad, longPad
	}
	return [2]float64{box.Min.X - xPad, box.Max.X + xPad},
		[2]float64{box.Min.Y - yPad, box.Max.Y + yPad}
}
