package errors

import (
	"math"
	"slices"
	"strings"
)

// ValidateReserved rejects attribute names that shadow reserved row columns.
// Every colliding name is listed, sorted, so that callers can fix them all at
// once. kind names the element type in the message ("node", "edge").
func ValidateReserved(kind string, reserved []string, names []string) error {
	var overlap []string
	for _, name := range names {
		if slices.Contains(reserved, name) && !slices.Contains(overlap, name) {
			overlap = append(overlap, name)
		}
	}
	if len(overlap) == 0 {
		return nil
	}
	slices.Sort(overlap)
	return New(ErrCodeAttributeCollision,
		"%ss should not have attributes named any of [%s]; overlapping attributes: [%s]",
		kind, strings.Join(reserved, ", "), strings.Join(overlap, ", "))
}

// ValidateChartSize checks pixel dimensions. A zero dimension means "derive
// from the graph's aspect ratio", so only one of the two may be zero.
func ValidateChartSize(width, height float64) error {
	if invalidFloat(width) || invalidFloat(height) || width < 0 || height < 0 {
		return New(ErrCodeInvalidInput, "chart size must be non-negative (got %gx%g)", width, height)
	}
	if width == 0 && height == 0 {
		return New(ErrCodeInvalidInput,
			"chart width and height cannot both be unset; if one is unset the other is determined by the graph's own aspect ratio")
	}
	return nil
}

// ValidatePadding checks that padding is a non-negative proportion.
func ValidatePadding(padding float64) error {
	if invalidFloat(padding) || padding < 0 {
		return New(ErrCodeInvalidInput, "chart padding must be non-negative (got %g)", padding)
	}
	return nil
}

// ValidateLoopPoints checks the self-loop vertex count (node included).
func ValidateLoopPoints(n int) error {
	if n < 2 {
		return New(ErrCodeInvalidInput, "loop points must be at least 2 (got %d)", n)
	}
	return nil
}

func invalidFloat(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
