// Package router implements EdgeRouter (spec §4.6): turning a TRACE_EDGE
// action into a committed cell path over the Grid, via a straight-line fast
// path, a single-bend fast path, and a full A* fallback.
package router

import (
	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/grid"
	"asciigraph/pkg/metric"
)

// state is A*'s search state (spec §4.6): position plus the direction of
// travel that arrived here, so the bend penalty can see direction changes.
type state struct {
	x, y int
	dir  metric.Dir
}

func (s state) point() metric.Point { return metric.Point{X: s.x, Y: s.y} }

func neighbor(s state, d metric.Dir) state {
	dx, dy := d.Delta()
	return state{x: s.x + dx, y: s.y + dy, dir: d}
}

// travelType maps a direction of travel to the grid edge-cell orientation
// it writes: east/west movement lays a HOR cell, north/south a VER cell.
func travelType(d metric.Dir) grid.EdgeType {
	if d.Horizontal() {
		return grid.Hor
	}
	return grid.Ver
}

// side is one of the four perimeter-adjacent cells of a node, tagged with
// the direction of travel that would exit (or enter) the node there.
type side struct {
	pt  metric.Point
	dir metric.Dir
}

// perimeterCell returns the cell immediately outside n's rectangle on side
// dir, at the side's midpoint shifted by offset (an edge's parallel
// offset, spec §4.6's "offset perpendicular to the flow axis").
func perimeterCell(n *diagramgraph.Node, dir metric.Dir, offset int) metric.Point {
	switch dir {
	case metric.North:
		return metric.Point{X: n.X + n.CX/2 + offset, Y: n.Y - 1}
	case metric.South:
		return metric.Point{X: n.X + n.CX/2 + offset, Y: n.Y + n.CY}
	case metric.East:
		return metric.Point{X: n.X + n.CX, Y: n.Y + n.CY/2 + offset}
	default: // West
		return metric.Point{X: n.X - 1, Y: n.Y + n.CY/2 + offset}
	}
}

// compassOrder lists the four directions in a fixed, arbitrary-but-stable
// order used everywhere sides/neighbors are enumerated, so two runs over
// the same input always expand states in the same order.
var compassOrder = [4]metric.Dir{metric.North, metric.East, metric.South, metric.West}

// exitSides returns all four perimeter cells of n, each paired with the
// direction of travel leaving the node there — the A* start set (spec
// §4.6) when n is the source.
func exitSides(n *diagramgraph.Node, offset int) [4]side {
	var out [4]side
	for i, d := range compassOrder {
		out[i] = side{pt: perimeterCell(n, d, offset), dir: d}
	}
	return out
}

// entrySides returns all four perimeter cells of n, each paired with the
// direction of travel that would be arriving there (the opposite of the
// side's own outward-facing direction) — the A* goal set (spec §4.6) when
// n is the destination: "an incoming direction compatible with an
// arrowhead" means arriving while still moving toward the node.
func entrySides(n *diagramgraph.Node, offset int) [4]side {
	var out [4]side
	for i, d := range compassOrder {
		out[i] = side{pt: perimeterCell(n, d, offset), dir: d.Opposite()}
	}
	return out
}
