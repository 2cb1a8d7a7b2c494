package router

import (
	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/grid"
)

// bendPenalty is added when the direction of travel changes (spec §4.6).
const bendPenalty = 6

// crossPenalty is added when a step upgrades an existing different-edge
// cell to CROSS (spec §4.6).
const crossPenalty = 30

// forbidden is returned (as the cost, with ok=false) to mean "this step is
// not allowed at all" — spec §4.6's step cost of infinity.
const forbidden = -1

// sharesEndpoint reports whether edges a and b touch at a common node —
// either one's source or target equals the other's source or target. Used
// to decide whether two edges meeting at the same cell may form a
// zero-cost joint rather than a CROSS.
func sharesEndpoint(g *diagramgraph.Graph, a, b diagramgraph.EdgeID) bool {
	ea, eb := g.Edge(a), g.Edge(b)
	return ea.Source == eb.Source || ea.Source == eb.Target ||
		ea.Target == eb.Source || ea.Target == eb.Target
}

// stepCost computes the cost of moving from `from` to `to` while routing
// edgeID (spec §4.6). ok is false for a forbidden (infinite-cost) step.
func (r *Router) stepCost(from, to state, edgeID diagramgraph.EdgeID) (cost int, ok bool) {
	cost = 1
	if to.dir != from.dir {
		cost += bendPenalty
	}

	cell, exists := r.grid.Get(to.x, to.y)
	if !exists {
		return cost, true
	}
	if cell.Kind == grid.KindNode {
		return forbidden, false
	}

	for _, owner := range cell.Edges {
		if owner == edgeID {
			return forbidden, false // re-entry
		}
	}

	for _, owner := range cell.Edges {
		if sharesEndpoint(r.g, edgeID, owner) {
			return 0, true // bundled joint, spec §4.6
		}
	}

	eh, ev := cell.Type.Axis()
	nh, nv := travelType(to.dir).Axis()
	switch {
	case cell.Type == grid.Cross:
		return cost + crossPenalty, true
	case (eh && nh) || (ev && nv):
		return forbidden, false // same-axis overlap with another edge
	default:
		return cost + crossPenalty, true // orthogonal crossing, upgrades to CROSS
	}
}
