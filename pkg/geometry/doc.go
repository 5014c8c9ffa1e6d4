// Package geometry turns a positioned graph into row-sets for drawing.
//
// # Row Kinds
//
//   - [NodeRows]: one row per node (node, x, y, attributes...)
//   - [EdgeRows]: a polyline per edge (edge, order, source, target, pair, x, y, attributes...)
//   - [ArrowRows]: a two-row arrowhead per directed non-loop edge
//
// An edge's rows sorted by "order" trace its path. Straight edges have two
// rows. Curved edges insert one row per [ControlPoint] between source and
// target. Self-loops trace a circle of [EdgeOptions.LoopRadius] that touches
// the node in the direction of [EdgeOptions.LoopAngle].
//
// # Control Points
//
// Control points are edge-relative: Along is the fraction of the edge length
// D travelled from the source toward the target, Across is the fraction of D
// perpendicular to the edge, anticlockwise positive. (0.5, 0.1) sits halfway
// along the edge and 0.1·D to its left.
//
// # Frame
//
// [Normalize] scales positions so that x and y units are equal for a given
// chart size. [Bounds] and [PadDomains] compute padded scale domains whose
// aspect ratio matches the chart.
package geometry
