package router

import (
	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/grid"
	"asciigraph/pkg/metric"
)

// RouteSelfLoop reserves a 2x2 rectangle of edge cells just outside the
// node, on the first side in N, E, S, W order whose rectangle is entirely
// free (sides are not ranked by how many free cells surround them),
// forming a loop that leaves and re-enters the node one cell over.
func (r *Router) RouteSelfLoop(edgeID diagramgraph.EdgeID) bool {
	e := r.g.Edge(edgeID)
	n := r.g.Node(e.Source)

	dir, ok := r.bestSelfLoopSide(n)
	if !ok {
		return false
	}
	x, y := selfLoopRectOrigin(n, dir)

	pts := []metric.Point{
		{X: x, Y: y},
		{X: x + 1, Y: y},
		{X: x + 1, Y: y + 1},
		{X: x, Y: y + 1},
	}
	types := [4]grid.EdgeType{grid.Hor, grid.Ver, grid.Hor, grid.Ver}
	for i, p := range pts {
		if _, _, err := r.grid.PutEdgeCell(p.X, p.Y, types[i], edgeID); err != nil {
			return false
		}
	}
	r.grid.SetFlags(pts[len(pts)-1].X, pts[len(pts)-1].Y, arrowFlag(dir.Opposite()))
	e.Path = pts
	e.Routed = true
	return true
}

// selfLoopRectOrigin returns the top-left of the 2x2 reserved rectangle for
// a self-loop leaving n's side dir.
func selfLoopRectOrigin(n *diagramgraph.Node, dir metric.Dir) (int, int) {
	switch dir {
	case metric.North:
		return n.X, n.Y - 2
	case metric.East:
		return n.X + n.CX, n.Y
	case metric.South:
		return n.X, n.Y + n.CY
	default: // West
		return n.X - 2, n.Y
	}
}

// bestSelfLoopSide picks the first side, in N/E/S/W tie-break order, whose
// reserved rectangle is entirely free.
func (r *Router) bestSelfLoopSide(n *diagramgraph.Node) (metric.Dir, bool) {
	for _, d := range compassOrder {
		x, y := selfLoopRectOrigin(n, d)
		if r.rectFree(x, y) {
			return d, true
		}
	}
	return metric.North, false
}

func (r *Router) rectFree(x, y int) bool {
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			if r.grid.Occupied(x+dx, y+dy) {
				return false
			}
		}
	}
	return true
}
