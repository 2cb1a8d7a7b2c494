package router

import (
	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/grid"
	"asciigraph/pkg/metric"
)

// straighten repeatedly looks for any two points on the path that are
// collinear and whose direct connection is both shorter and unobstructed,
// replacing the detour between them with the straight run. This subsumes
// spec §4.6's eight canonical three-bend jog patterns (e.g.
// right-down-right-up-right collapsing to right-right-right) as special
// cases of the general rule rather than enumerating each shape by hand —
// a documented simplification of the spec's literal wording.
func straighten(g *grid.Grid, path []metric.Point, startDir metric.Dir, edgeID diagramgraph.EdgeID) []metric.Point {
	for {
		shortened := false
		for i := 0; i < len(path) && !shortened; i++ {
			for j := len(path) - 1; j > i+1; j-- {
				a, b := path[i], path[j]
				if a.X != b.X && a.Y != b.Y {
					continue
				}
				straight := straightLine(a, b)
				if len(straight) >= j-i+1 {
					continue
				}
				if !clearForStraightening(g, straight[1:len(straight)-1], edgeID) {
					continue
				}
				next := make([]metric.Point, 0, len(path)-(j-i+1)+len(straight))
				next = append(next, path[:i]...)
				next = append(next, straight...)
				next = append(next, path[j+1:]...)
				path = next
				shortened = true
				break
			}
		}
		if !shortened {
			return path
		}
	}
}

// clearForStraightening reports whether every cell in pts could host
// edgeID's path: not a NODE cell, and not already owned by edgeID itself
// (the commit pass that follows still performs the real HOR/VER-vs-CROSS
// upgrade arithmetic via PutEdgeCell).
func clearForStraightening(g *grid.Grid, pts []metric.Point, edgeID diagramgraph.EdgeID) bool {
	for _, p := range pts {
		cell, ok := g.Get(p.X, p.Y)
		if !ok {
			continue
		}
		if cell.Kind == grid.KindNode {
			return false
		}
		for _, owner := range cell.Edges {
			if owner == edgeID {
				return false
			}
		}
	}
	return true
}
