package router

import (
	"context"

	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/grid"
	"asciigraph/pkg/metric"
)

// Router implements EdgeRouter (spec §4.6).
type Router struct {
	g    *diagramgraph.Graph
	grid *grid.Grid
}

// New creates a Router over g, writing cells to gr.
func New(g *diagramgraph.Graph, gr *grid.Grid) *Router {
	return &Router{g: g, grid: gr}
}

// Route traces a TRACE_EDGE action's edge: T1 straight, then T2 single
// bend, then T3 full A* (spec §4.6). On success the path is straightened
// and committed to the grid and the edge is marked Routed. ctx is checked
// only inside the A* fallback (every 1024 expansions, spec §5) — the T1/T2
// fast paths are O(path length) and never run long enough to need it.
func (r *Router) Route(ctx context.Context, edgeID diagramgraph.EdgeID) bool {
	e := r.g.Edge(edgeID)
	if e.IsSelfLoop() {
		return r.RouteSelfLoop(edgeID)
	}
	src, dst := r.g.Node(e.Source), r.g.Node(e.Target)

	path, startDir, ok := r.tryStraight(src, dst, edgeID)
	if !ok {
		path, startDir, ok = r.tryBend(src, dst, edgeID)
	}
	if !ok {
		var astarOK bool
		path, astarOK = r.astarSearch(ctx, src, dst, edgeID)
		if !astarOK {
			return false
		}
		startDir = directionOf(path)
	}

	path = straighten(r.grid, path, startDir, edgeID)
	return r.commit(edgeID, path, startDir)
}

func directionOf(path []metric.Point) metric.Dir {
	if len(path) < 2 {
		return metric.East
	}
	return dirBetween(path[0], path[1])
}

// straightCandidate returns the natural forward-facing exit of src and the
// matching backward-facing entry of dst — the pair T1/T2 try before
// falling back to full A* over all four sides of each node.
func (r *Router) straightCandidate(src, dst *diagramgraph.Node, edgeID diagramgraph.EdgeID) (exit, entry side) {
	forward := r.g.Flow.Forward()
	offset := r.g.Edge(edgeID).Offset
	exit = side{pt: perimeterCell(src, forward, offset), dir: forward}
	entry = side{pt: perimeterCell(dst, forward.Opposite(), offset), dir: forward}
	return exit, entry
}

func (r *Router) tryStraight(src, dst *diagramgraph.Node, edgeID diagramgraph.EdgeID) ([]metric.Point, metric.Dir, bool) {
	exit, entry := r.straightCandidate(src, dst, edgeID)
	if exit.pt.X != entry.pt.X && exit.pt.Y != entry.pt.Y {
		return nil, 0, false
	}
	pts := straightLine(exit.pt, entry.pt)
	if _, ok := r.walkCost(pts, exit.dir, edgeID); !ok {
		return nil, 0, false
	}
	return pts, exit.dir, true
}

func (r *Router) tryBend(src, dst *diagramgraph.Node, edgeID diagramgraph.EdgeID) ([]metric.Point, metric.Dir, bool) {
	exit, entry := r.straightCandidate(src, dst, edgeID)
	if exit.pt == entry.pt {
		return nil, 0, false
	}
	cornerA := metric.Point{X: entry.pt.X, Y: exit.pt.Y}
	cornerB := metric.Point{X: exit.pt.X, Y: entry.pt.Y}

	pathA, costA, okA := r.bentPath(exit, entry, cornerA, edgeID)
	pathB, costB, okB := r.bentPath(exit, entry, cornerB, edgeID)

	switch {
	case okA && (!okB || costA <= costB):
		return pathA, exit.dir, true
	case okB:
		return pathB, exit.dir, true
	default:
		return nil, 0, false
	}
}

func (r *Router) bentPath(exit, entry side, corner metric.Point, edgeID diagramgraph.EdgeID) ([]metric.Point, int, bool) {
	if corner == exit.pt || corner == entry.pt {
		return nil, 0, false
	}
	leg1 := straightLine(exit.pt, corner)
	leg2 := straightLine(corner, entry.pt)
	pts := append(leg1, leg2[1:]...)
	cost, ok := r.walkCost(pts, exit.dir, edgeID)
	return pts, cost, ok
}

// straightLine returns the inclusive cell sequence from a to b, which must
// share exactly one coordinate.
func straightLine(a, b metric.Point) []metric.Point {
	if a.X == b.X {
		step := 1
		if b.Y < a.Y {
			step = -1
		}
		var out []metric.Point
		for y := a.Y; ; y += step {
			out = append(out, metric.Point{X: a.X, Y: y})
			if y == b.Y {
				break
			}
		}
		return out
	}
	step := 1
	if b.X < a.X {
		step = -1
	}
	var out []metric.Point
	for x := a.X; ; x += step {
		out = append(out, metric.Point{X: x, Y: a.Y})
		if x == b.X {
			break
		}
	}
	return out
}

func dirBetween(a, b metric.Point) metric.Dir {
	switch {
	case b.X > a.X:
		return metric.East
	case b.X < a.X:
		return metric.West
	case b.Y > a.Y:
		return metric.South
	default:
		return metric.North
	}
}

// pointDirs returns, for each consecutive pair in pts, the direction of
// travel from pts[i] to pts[i+1]. len(result) == len(pts)-1.
func pointDirs(pts []metric.Point) []metric.Dir {
	if len(pts) < 2 {
		return nil
	}
	dirs := make([]metric.Dir, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		dirs[i] = dirBetween(pts[i], pts[i+1])
	}
	return dirs
}

// walkCost sums stepCost along pts, starting with direction startDir
// arriving at pts[0]. ok is false if any step is forbidden.
func (r *Router) walkCost(pts []metric.Point, startDir metric.Dir, edgeID diagramgraph.EdgeID) (int, bool) {
	dirs := pointDirs(pts)
	cost := 0
	prevDir := startDir
	for i := 1; i < len(pts); i++ {
		from := state{x: pts[i-1].X, y: pts[i-1].Y, dir: prevDir}
		to := state{x: pts[i].X, y: pts[i].Y, dir: dirs[i-1]}
		c, ok := r.stepCost(from, to, edgeID)
		if !ok {
			return 0, false
		}
		cost += c
		prevDir = dirs[i-1]
	}
	return cost, true
}
