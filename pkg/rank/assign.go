// Package rank implements RankAssigner (spec §4.2): the pass that gives
// every node an integer rank along the flow axis before placement.
package rank

import "asciigraph/pkg/diagramgraph"

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}

// Assign gives every node in g a Rank, mutating nodes in place. Roots
// (predecessor-less nodes) and any node with a user-fixed rank seed a
// heap-driven wave: popping the lowest-|rank| candidate assigns it (first
// pop wins, later candidates for the same node are stale and skipped — the
// same lazy pattern the teacher's Dijkstra/witness search use for stale
// distance entries), then pushes each of its successors at
// sign(r)*(|r|+1), one layer further from the root. User-fixed nodes are
// seeded once at the start and never reassigned; edges into them just
// don't re-push.
//
// Nodes unreachable from any root (pure cycles) are handled by a second
// pass: repeatedly take the lowest-id still-unranked node, rank it -1, and
// push it as a new root, until every node has a rank.
func Assign(g *diagramgraph.Graph) {
	var h minHeap

	for _, n := range g.Nodes() {
		if n.RankFixed {
			h.Push(n.ID, n.Rank)
			continue
		}
		if !g.HasPredecessor(n.ID) {
			h.Push(n.ID, -1)
		}
	}
	runWave(g, &h)

	for {
		next := firstUnranked(g)
		if next == diagramgraph.NoNode {
			return
		}
		n := g.Node(next)
		n.Rank = -1
		n.RankSet = true
		propagate(g, &h, n)
		runWave(g, &h)
	}
}

func runWave(g *diagramgraph.Graph, h *minHeap) {
	visited := make(map[diagramgraph.NodeID]bool)
	for h.Len() > 0 {
		item := h.Pop()
		if visited[item.node] {
			continue // stale entry, a lower-priority pop already settled this node
		}
		n := g.Node(item.node)
		if !n.RankSet {
			n.Rank = item.candidate
			n.RankSet = true
		}
		visited[item.node] = true
		propagate(g, h, n)
	}
}

// propagate pushes n's successors at one layer further out, skipping
// self-loops (they never carry rank), already-finalized successors, and
// user-fixed successors (seeded once at the start of Assign already).
func propagate(g *diagramgraph.Graph, h *minHeap, n *diagramgraph.Node) {
	candidate := sign(n.Rank) * (abs(n.Rank) + 1)
	for _, eid := range n.OutEdges {
		e := g.Edge(eid)
		if e.IsSelfLoop() {
			continue
		}
		succ := g.Node(e.Target)
		if succ.ID == n.ID || succ.RankFixed || succ.RankSet {
			continue
		}
		h.Push(succ.ID, candidate)
	}
}

func firstUnranked(g *diagramgraph.Graph) diagramgraph.NodeID {
	for _, n := range g.Nodes() {
		if !n.RankSet {
			return n.ID
		}
	}
	return diagramgraph.NoNode
}
