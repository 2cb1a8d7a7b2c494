package router

import (
	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/grid"
	"asciigraph/pkg/metric"
)

// cornerType maps the direction a path arrives from and the direction it
// leaves toward to the corner EdgeType connecting those two sides. Falls
// back to travelType(dirOut) for same-axis pairs (straight continuation,
// shouldn't reach here) or a reversal (180-degree turn, not produced by
// A*'s 4-neighbor expansion or the T1/T2 fast paths).
func cornerType(dirIn, dirOut metric.Dir) grid.EdgeType {
	from := dirIn.Opposite()
	switch {
	case (from == metric.North && dirOut == metric.East) || (from == metric.East && dirOut == metric.North):
		return grid.CornerNE
	case (from == metric.North && dirOut == metric.West) || (from == metric.West && dirOut == metric.North):
		return grid.CornerNW
	case (from == metric.South && dirOut == metric.East) || (from == metric.East && dirOut == metric.South):
		return grid.CornerSE
	case (from == metric.South && dirOut == metric.West) || (from == metric.West && dirOut == metric.South):
		return grid.CornerSW
	default:
		return travelType(dirOut)
	}
}

func arrowFlag(dir metric.Dir) grid.Flags {
	switch dir {
	case metric.North:
		return grid.FlagArrowN
	case metric.East:
		return grid.FlagArrowE
	case metric.South:
		return grid.FlagArrowS
	default:
		return grid.FlagArrowW
	}
}

// commit writes every cell of path to the grid via putCell, tagging bends
// as corners and straight runs as HOR/VER, sets the arrowhead flag on the
// final cell for directed edges, and records the path on the edge for
// compaction/rendering (spec §4.6). Crosses only counts cells that
// actually resolve to a CROSS cell (spec P8) — a zero-cost shared joint
// with another edge sharing this edge's endpoint is not a crossing and
// must not add to the score.
func (r *Router) commit(edgeID diagramgraph.EdgeID, path []metric.Point, startDir metric.Dir) bool {
	e := r.g.Edge(edgeID)
	dirs := pointDirs(path)

	for i, pt := range path {
		dirIn := startDir
		if i > 0 {
			dirIn = dirs[i-1]
		}
		dirOut := dirIn
		if i < len(dirs) {
			dirOut = dirs[i]
		}
		t := travelType(dirIn)
		if dirIn != dirOut {
			t = cornerType(dirIn, dirOut)
		}
		cell, err := r.putCell(pt.X, pt.Y, t, dirIn, dirOut, edgeID)
		if err != nil {
			return false
		}
		if cell.Type == grid.Cross {
			e.Crosses++
		}
	}

	if e.Directed && len(path) > 0 {
		lastDir := startDir
		if len(dirs) > 0 {
			lastDir = dirs[len(dirs)-1]
		}
		last := path[len(path)-1]
		if cell, ok := r.grid.Get(last.X, last.Y); ok {
			r.grid.SetFlags(last.X, last.Y, cell.Flags|arrowFlag(lastDir))
		}
	}

	e.Path = path
	e.Routed = true
	return true
}

// putCell writes one path cell. If (x,y) is already owned by a different
// edge that shares an endpoint with edgeID, this is a zero-cost bundled
// joint (spec §4.6) rather than a crossing, and is written via putJoint
// instead of PutEdgeCell so it never silently becomes a CROSS cell.
func (r *Router) putCell(x, y int, t grid.EdgeType, dirIn, dirOut metric.Dir, edgeID diagramgraph.EdgeID) (grid.Cell, error) {
	if existing, ok := r.grid.Get(x, y); ok && existing.Kind == grid.KindEdge {
		for _, owner := range existing.Edges {
			if owner != edgeID && sharesEndpoint(r.g, edgeID, owner) {
				return r.putJoint(x, y, existing, dirIn, dirOut, edgeID)
			}
		}
	}
	cell, _, err := r.grid.PutEdgeCell(x, y, t, edgeID)
	return cell, err
}

// putJoint writes a cell shared with an edge that joins edgeID at a common
// node. Same axis as existing (both edges running the same way through the
// cell) becomes JoinHor/JoinVer, a bundled overlap rather than a crossing.
// Perpendicular axes become a TJointN/E/S/W, named for the direction its
// stem points: the stem is whichever of edgeID's incoming/outgoing
// directions at this cell is *not* along existing's axis (TJointN's stem
// points north, meaning the through-line runs east-west and edgeID's own
// line continues north from here — the usual "missing arm" box-drawing
// convention, vertical stub up for TJointN, down for TJointS, etc).
//
// existing's own Type may already be a corner, CROSS, or an earlier joint
// from an unrelated third edge, in which case Axis() reports neither
// horizontal nor vertical; this falls back to classifying the axis from
// edgeID's own outgoing direction rather than reconciling three-edge
// geometry exactly.
func (r *Router) putJoint(x, y int, existing grid.Cell, dirIn, dirOut metric.Dir, edgeID diagramgraph.EdgeID) (grid.Cell, error) {
	horizontal, vertical := existing.Type.Axis()
	if !horizontal && !vertical {
		horizontal = dirOut.Horizontal()
		vertical = !horizontal
	}

	stem := dirOut
	if (horizontal && !dirIn.Horizontal()) || (vertical && dirIn.Horizontal()) {
		stem = dirIn
	}

	var t grid.EdgeType
	switch {
	case horizontal && stem.Horizontal():
		t = grid.JoinHor
	case vertical && !stem.Horizontal():
		t = grid.JoinVer
	case horizontal && stem == metric.North:
		t = grid.TJointN
	case horizontal:
		t = grid.TJointS
	case stem == metric.East:
		t = grid.TJointE
	default:
		t = grid.TJointW
	}

	edges := append(append([]diagramgraph.EdgeID{}, existing.Edges...), edgeID)
	return r.grid.PutJointCell(x, y, t, existing.Flags, edges...)
}
