package placer

import (
	"sort"

	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/metric"
)

// s1RankSlot (spec §4.5 S1): only for a user-fixed rank, consult the
// rank-coordinate table for the next free cross-axis slot at that rank.
func (p *Placer) s1RankSlot(n *diagramgraph.Node) []metric.Point {
	if !n.RankFixed {
		return nil
	}
	primary := n.Rank * rankStep
	secondary := p.rankNext[n.Rank]
	return []metric.Point{p.point(primary, secondary)}
}

// s2ParentRelative (spec §4.5 S2): the four cells flush against parent's
// perimeter with one empty gutter cell between them (Chebyshev distance 2
// from the parent), offered in the flow's forward-first candidate
// order. Only one flush position per direction is generated, rather than
// the full 2·(cx+cy) perimeter enumeration spec §4.5 describes for
// multi-cell nodes — a documented simplification; when it fails the
// cascade still has S3-S6 to fall back on.
func (p *Placer) s2ParentRelative(n, parent *diagramgraph.Node) []metric.Point {
	var out []metric.Point
	for _, dir := range p.g.Flow.CandidateOrder() {
		out = append(out, flushAgainst(parent, n, dir))
	}
	return out
}

// flushAgainst returns the origin n would need to sit flush against from's
// perimeter, one gutter cell away, in direction dir.
func flushAgainst(from, n *diagramgraph.Node, dir metric.Dir) metric.Point {
	switch dir {
	case metric.East:
		return metric.Point{X: from.X + from.CX + gutterGap, Y: from.Y}
	case metric.West:
		return metric.Point{X: from.X - n.CX - gutterGap, Y: from.Y}
	case metric.South:
		return metric.Point{X: from.X, Y: from.Y + from.CY + gutterGap}
	default: // North
		return metric.Point{X: from.X, Y: from.Y - n.CY - gutterGap}
	}
}

// s3SharedEdge (spec §4.5 S3): if n shares a predecessor with an
// already-placed sibling (another target of the same source edge), align n
// with that sibling one flow-step further along.
func (p *Placer) s3SharedEdge(n, parent *diagramgraph.Node) []metric.Point {
	var out []metric.Point
	forward := p.g.Flow.Forward()
	seen := make(map[diagramgraph.NodeID]bool)
	for _, eid := range n.InEdges {
		src := p.g.Node(p.g.Edge(eid).Source)
		if !src.Placed {
			continue
		}
		for _, oeid := range src.OutEdges {
			sibling := p.g.Node(p.g.Edge(oeid).Target)
			if sibling.ID == n.ID || !sibling.Placed || seen[sibling.ID] {
				continue
			}
			if parent != nil && sibling.ID == parent.ID {
				continue
			}
			seen[sibling.ID] = true
			out = append(out, flushAgainst(sibling, n, forward))
		}
	}
	return out
}

// s4Predecessors (spec §4.5 S4): placement relative to already-placed
// predecessors, by count.
func (p *Placer) s4Predecessors(n *diagramgraph.Node) []metric.Point {
	preds := p.placedNeighbors(n.InEdges, true)
	return p.byNeighborCount(n, preds)
}

// s5Successors (spec §4.5 S5): symmetric to S4 over successors.
func (p *Placer) s5Successors(n *diagramgraph.Node) []metric.Point {
	succs := p.placedNeighbors(n.OutEdges, false)
	return p.byNeighborCount(n, succs)
}

func (p *Placer) byNeighborCount(n *diagramgraph.Node, neighbors []*diagramgraph.Node) []metric.Point {
	forward := p.g.Flow.Forward()
	switch len(neighbors) {
	case 0:
		return nil
	case 1:
		return []metric.Point{flushAgainst(neighbors[0], n, forward)}
	case 2:
		return []metric.Point{midpoint(neighbors[0], neighbors[1], forward)}
	default:
		var out []metric.Point
		for i, nb := range neighbors {
			growing := flushAgainst(nb, n, forward)
			if p.g.Flow.Horizontal() {
				growing.X += i * gutterGap
			} else {
				growing.Y += i * gutterGap
			}
			out = append(out, growing)
		}
		return out
	}
}

// midpoint sits n between two neighbors, rounded toward the flow's forward
// direction (spec §4.5 S4: "rounded toward parent of current chain" — since
// a tie here has no chain parent to round toward, rounding is done toward
// the flow's own forward axis instead, which keeps the result deterministic
// and is the nearest available meaning of "toward the chain" when no chain
// context applies).
func midpoint(a, b *diagramgraph.Node, forward metric.Dir) metric.Point {
	mx, my := (a.X+b.X)>>1, (a.Y+b.Y)>>1 // floor, also for negative sums
	switch forward {
	case metric.East:
		mx += (a.X + b.X) & 1
	case metric.South:
		my += (a.Y + b.Y) & 1
	}
	return metric.Point{X: mx, Y: my}
}

// placedNeighbors returns the distinct already-placed "other" endpoints of
// edges, sorted by node id ascending — incoming==true reads Source,
// incoming==false reads Target.
func (p *Placer) placedNeighbors(edges []diagramgraph.EdgeID, incoming bool) []*diagramgraph.Node {
	seen := make(map[diagramgraph.NodeID]bool)
	var out []*diagramgraph.Node
	for _, eid := range edges {
		e := p.g.Edge(eid)
		other := e.Target
		if incoming {
			other = e.Source
		}
		if seen[other] {
			continue
		}
		seen[other] = true
		n := p.g.Node(other)
		if n.Placed {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// s6ScanRows/s6ScanWidth cap the fallback scan so a pathologically crowded
// grid can't spin forever — generous enough for any graph this module is
// meant to lay out.
const (
	s6ScanRows  = 64
	s6ScanWidth = 64
)

// s6FallbackScan (spec §4.5 S6): scan the flow-axis line at parent's
// cross-axis coordinate (or 0 for a root) for the first empty slot, starting
// two cells past parent's origin on the flow axis (or at 0 for a root) and
// moving toward larger flow-axis coordinates; neither parent's size nor the
// flow's direction shifts that start. If the whole line is full, step one
// cell along the cross axis and retry. Candidates are returned in scan order
// and tried by the caller until one claims successfully.
func (p *Placer) s6FallbackScan(n, parent *diagramgraph.Node) []metric.Point {
	secondary := 0
	primaryStart := 0
	if parent != nil {
		secondary = p.secondaryOf(metric.Point{X: parent.X, Y: parent.Y})
		primaryStart = p.primaryOf(metric.Point{X: parent.X, Y: parent.Y}) + gutterGap + 1
	}
	out := make([]metric.Point, 0, s6ScanRows*s6ScanWidth)
	for row := 0; row < s6ScanRows; row++ {
		for i := 0; i < s6ScanWidth; i++ {
			out = append(out, p.point(primaryStart+i, secondary+row))
		}
	}
	return out
}
