package router

import (
	"context"

	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/metric"
)

// heuristic is Manhattan distance to the nearest goal side, plus 1 if the
// current direction disagrees with that goal's required arrival direction
// — admissible per spec §4.6: each off-axis unit needs >=1 extra move, and
// a required turn needs >=1 extra step without ever beating the bend
// penalty's true cost.
func heuristic(s state, goals [4]side) int {
	best := -1
	for _, gl := range goals {
		d := metric.Manhattan(s.point(), gl.pt)
		if s.dir != gl.dir {
			d++
		}
		if best == -1 || d < best {
			best = d
		}
	}
	return best
}

// astarSearch runs full orthogonal A* (spec §4.6 T3) from every side of src
// to any side of dst with a compatible arrival direction. Returns the cell
// path (inclusive of both perimeter cells) or ok=false if no path was found
// within the expansion cap or ctx's deadline is exceeded first — either way
// the caller treats it as an ordinary routing failure to recover from via
// backtracking (spec §7: strategy-level failures are never surfaced).
func (r *Router) astarSearch(ctx context.Context, src, dst *diagramgraph.Node, edgeID diagramgraph.EdgeID) ([]metric.Point, bool) {
	offset := r.g.Edge(edgeID).Offset
	starts := exitSides(src, offset)
	goals := entrySides(dst, offset)

	goalStates := make(map[state]bool, 4)
	for _, gl := range goals {
		goalStates[state{gl.pt.X, gl.pt.Y, gl.dir}] = true
	}

	gScore := make(map[state]int)
	cameFrom := make(map[state]state)
	var open openHeap
	seq := 0
	for _, s := range starts {
		st := state{s.pt.X, s.pt.Y, s.dir}
		if g, seen := gScore[st]; seen && g <= 0 {
			continue
		}
		gScore[st] = 0
		open.Push(stateItem{s: st, g: 0, h: heuristic(st, goals), seq: seq})
		seq++
	}

	closed := make(map[state]bool)
	expansionCap := (len(r.grid.SortedCells()) + 1) * 8
	expansions := 0

	for open.Len() > 0 {
		item := open.Pop()
		if closed[item.s] {
			continue
		}
		if g, seen := gScore[item.s]; seen && g < item.g {
			continue // stale: a cheaper path already reached this state
		}
		closed[item.s] = true

		if goalStates[item.s] {
			return reconstructPath(cameFrom, item.s, starts), true
		}

		expansions++
		if expansions > expansionCap {
			return nil, false
		}
		// Bitmask periodic cancellation check, same idiom as the teacher's
		// bidirectional Dijkstra loop (routing/engine.go): avoid calling
		// ctx.Err() on every expansion.
		if expansions&1023 == 0 && ctx.Err() != nil {
			return nil, false
		}

		for _, d := range compassOrder {
			nxt := neighbor(item.s, d)
			cost, ok := r.stepCost(item.s, nxt, edgeID)
			if !ok {
				continue
			}
			ng := item.g + cost
			if old, seen := gScore[nxt]; seen && old <= ng {
				continue
			}
			gScore[nxt] = ng
			cameFrom[nxt] = item.s
			open.Push(stateItem{s: nxt, g: ng, h: heuristic(nxt, goals), seq: seq})
			seq++
		}
	}
	return nil, false
}

func reconstructPath(cameFrom map[state]state, goal state, starts [4]side) []metric.Point {
	startStates := make(map[state]bool, 4)
	for _, s := range starts {
		startStates[state{s.pt.X, s.pt.Y, s.dir}] = true
	}
	var pts []metric.Point
	cur := goal
	for {
		pts = append(pts, cur.point())
		if startStates[cur] {
			break
		}
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
	return pts
}
