// Package placer implements NodePlacer (spec §4.5): trying a cascade of
// placement strategies for each PLACE_NODE/PLACE_CHAINED action until one
// yields a legal, gutter-respecting (x,y).
package placer

import (
	"asciigraph/pkg/action"
	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/grid"
	"asciigraph/pkg/metric"
)

// gutterGap is the minimum number of empty cells a placed node's rectangle
// keeps from any unrelated already-placed node (spec P2).
const gutterGap = 1

// rankStep is how far apart (in cells, along the flow axis) consecutive
// user-fixed ranks sit — enough room for a typical node plus its gutter.
const rankStep = 8

// Placer tries NodePlacer's strategy cascade against a Grid.
type Placer struct {
	g        *diagramgraph.Graph
	grid     *grid.Grid
	rankNext map[int]int // rank -> next free cross-axis coordinate (S1)
}

// New creates a Placer over g, claiming cells in gr.
func New(g *diagramgraph.Graph, gr *grid.Grid) *Placer {
	return &Placer{g: g, grid: gr, rankNext: make(map[int]int)}
}

// Place attempts to place the action's node, resuming at a.Strategy so a
// retry after a prior failed attempt doesn't repeat an exhausted strategy
// (spec §4.5: "strategies carry an internal cursor per action"). Returns
// true and claims the node's grid cells on success.
func (p *Placer) Place(a *action.Action) bool {
	n := p.g.Node(a.Node)
	var parent *diagramgraph.Node
	if a.Kind == action.PlaceChained {
		parent = p.g.Node(a.Parent)
	}
	cascade := p.cascade(n, parent)
	for a.Strategy < len(cascade) {
		if p.tryCandidates(n, parent, cascade[a.Strategy]()) {
			return true
		}
		a.Strategy++
	}
	return false
}

// cascade returns the ordered strategy candidate-generators for this node,
// S1 through S6 (spec §4.5). S2 only applies to PLACE_CHAINED.
func (p *Placer) cascade(n, parent *diagramgraph.Node) []func() []metric.Point {
	cascade := []func() []metric.Point{
		func() []metric.Point { return p.s1RankSlot(n) },
	}
	if parent != nil {
		cascade = append(cascade, func() []metric.Point { return p.s2ParentRelative(n, parent) })
	}
	cascade = append(cascade,
		func() []metric.Point { return p.s3SharedEdge(n, parent) },
		func() []metric.Point { return p.s4Predecessors(n) },
		func() []metric.Point { return p.s5Successors(n) },
		func() []metric.Point { return p.s6FallbackScan(n, parent) },
	)
	return cascade
}

func (p *Placer) tryCandidates(n, parent *diagramgraph.Node, candidates []metric.Point) bool {
	exempt := diagramgraph.NoNode
	if parent != nil {
		exempt = parent.ID
	}
	for _, c := range candidates {
		if p.tryClaim(n, exempt, c) {
			return true
		}
	}
	return false
}

func (p *Placer) tryClaim(n *diagramgraph.Node, exempt diagramgraph.NodeID, origin metric.Point) bool {
	rect := metric.Rect{X: origin.X, Y: origin.Y, CX: n.CX, CY: n.CY}
	if !p.passesGutter(n.ID, exempt, rect) {
		return false
	}
	if err := p.grid.ClaimNode(n.ID, origin.X, origin.Y, n.CX, n.CY); err != nil {
		return false
	}
	n.X, n.Y, n.Placed = origin.X, origin.Y, true
	p.recordRankSlot(n, rect)
	return true
}

// passesGutter rejects a candidate within Chebyshev distance 0 of (i.e.
// touching or overlapping) any already-placed node other than id itself or
// the exempt (parent) node — spec §4.5's spacing invariant.
func (p *Placer) passesGutter(id, exempt diagramgraph.NodeID, rect metric.Rect) bool {
	radius := rect.CX + rect.CY + gutterGap + 2
	near := p.grid.NodesNear(rect.X+rect.CX/2, rect.Y+rect.CY/2, radius)
	for _, other := range near {
		if other == id || other == exempt {
			continue
		}
		otherRect, ok := p.grid.NodeRect(other)
		if !ok {
			continue
		}
		if metric.RectChebyshev(rect, otherRect) < gutterGap {
			return false
		}
	}
	return true
}

// recordRankSlot keeps the S1 rank-coordinate table current: once a node
// occupies part of a rank's cross-axis span, later S1 candidates for that
// same rank must not collide with it.
func (p *Placer) recordRankSlot(n *diagramgraph.Node, rect metric.Rect) {
	if !n.RankSet {
		return
	}
	secondary := p.secondaryOf(metric.Point{X: rect.X, Y: rect.Y})
	size := rect.CY
	if !p.g.Flow.Horizontal() {
		size = rect.CX
	}
	next := secondary + size + gutterGap
	if cur, ok := p.rankNext[n.Rank]; !ok || next > cur {
		p.rankNext[n.Rank] = next
	}
}

func (p *Placer) point(primary, secondary int) metric.Point {
	if p.g.Flow.Horizontal() {
		return metric.Point{X: primary, Y: secondary}
	}
	return metric.Point{X: secondary, Y: primary}
}

func (p *Placer) primaryOf(pt metric.Point) int {
	if p.g.Flow.Horizontal() {
		return pt.X
	}
	return pt.Y
}

func (p *Placer) secondaryOf(pt metric.Point) int {
	if p.g.Flow.Horizontal() {
		return pt.Y
	}
	return pt.X
}
