package action

import (
	"sort"

	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/metric"
)

// rankSpacing is the nominal number of cells a rank-unit spans, used to
// estimate a TRACE_EDGE's eventual length before its endpoints are placed
// (spec §8 E1 fixes the real post-layout gap at 5 cells for a one-rank hop,
// which is where this constant comes from).
const rankSpacing = 5

// estimatedSpan returns the Manhattan distance an edge would need to span:
// the real distance once both endpoints are placed, or a rank-difference
// estimate beforehand. ActionStackBuilder runs before any placement has
// happened, so its initial TRACE_EDGE ordering necessarily uses the
// estimate; RefreshTraceOrder lets the engine re-sort with real coordinates
// once placement has caught up.
func estimatedSpan(g *diagramgraph.Graph, id diagramgraph.EdgeID) int {
	e := g.Edge(id)
	src, dst := g.Node(e.Source), g.Node(e.Target)
	if src.Placed && dst.Placed {
		return metric.Manhattan(metric.Point{X: src.X, Y: src.Y}, metric.Point{X: dst.X, Y: dst.Y})
	}
	diff := src.Rank - dst.Rank
	if diff < 0 {
		diff = -diff
	}
	return diff * rankSpacing
}

func lessTraceEdge(g *diagramgraph.Graph, a, b *Action) bool {
	da, db := estimatedSpan(g, a.Edge), estimatedSpan(g, b.Edge)
	if da != db {
		return da < db
	}
	ea, eb := g.Edge(a.Edge), g.Edge(b.Edge)
	if ea.Source != eb.Source {
		return ea.Source < eb.Source
	}
	return ea.Target < eb.Target
}

func sortTraceEdges(g *diagramgraph.Graph, traces []*Action) {
	sort.SliceStable(traces, func(i, j int) bool { return lessTraceEdge(g, traces[i], traces[j]) })
}

// RefreshTraceOrder re-sorts the TRACE_EDGE run of an already-built action
// list using each edge's real endpoint coordinates, once enough PLACE_NODE/
// PLACE_CHAINED actions have executed for them to be meaningful. Positions
// of non-TRACE_EDGE actions (and of SELF_LOOP actions, which never
// reorder against traces) are left untouched.
func RefreshTraceOrder(g *diagramgraph.Graph, actions []*Action) {
	var idx []int
	var traces []*Action
	for i, a := range actions {
		if a.Kind == TraceEdge {
			idx = append(idx, i)
			traces = append(traces, a)
		}
	}
	sortTraceEdges(g, traces)
	for k, i := range idx {
		actions[i] = traces[k]
	}
}
