// Package chain implements ChainDetector (spec §4.3): discovering maximal
// single-successor "spines" of nodes that should lay out as straight runs.
package chain

import (
	"sort"

	"asciigraph/pkg/diagramgraph"
)

// Chain is an ordered, non-empty run of nodes where every non-terminal node
// has an outgoing edge to its successor in the chain; a node with several
// outgoing edges continues along one of them only. A node belongs to at
// most one chain; isolated nodes form length-1 chains.
type Chain struct {
	Nodes []diagramgraph.NodeID
}

// Head returns the chain's first node.
func (c Chain) Head() diagramgraph.NodeID { return c.Nodes[0] }

// Len returns the number of nodes in the chain.
func (c Chain) Len() int { return len(c.Nodes) }

// Detect walks nodes in ascending id order and builds a chain from every
// not-yet-chained node, returning the chains sorted by descending length
// then ascending head id (spec §4.3: long chains lay out as straight lines
// and anchor the rest of the picture, so they're built, and consumed by the
// action scheduler, first).
func Detect(g *diagramgraph.Graph) []Chain {
	assigned := make([]bool, g.NumNodes())
	var chains []Chain
	for _, n := range g.Nodes() {
		if assigned[n.ID] {
			continue
		}
		chains = append(chains, Chain{Nodes: buildFrom(g, n.ID, assigned)})
	}
	sort.SliceStable(chains, func(i, j int) bool {
		if len(chains[i].Nodes) != len(chains[j].Nodes) {
			return len(chains[i].Nodes) > len(chains[j].Nodes)
		}
		return chains[i].Head() < chains[j].Head()
	})
	return chains
}

// buildFrom grows a chain starting at start, marking every node it consumes
// as assigned (in the caller's own bookkeeping array, which the top-level
// ascending-id walk in Detect also reads). At a single-successor tail it
// just appends and keeps walking. At a branching tail it recursively grows
// a trial sub-chain from each unassigned successor — using a throwaway copy
// of assigned so trials don't interfere with each other — keeps the longest
// (ties broken by the ascending id the candidates are already sorted in),
// and splices that whole sub-chain on; the untaken candidates stay
// unassigned and become independent chains of their own when Detect's outer
// walk reaches them. Revisiting a node already claimed earlier in this same
// walk shows up as "no unassigned successors" and ends the chain, which is
// exactly the cycle-break spec §4.3 asks for.
func buildFrom(g *diagramgraph.Graph, start diagramgraph.NodeID, assigned []bool) []diagramgraph.NodeID {
	assigned[start] = true
	chain := []diagramgraph.NodeID{start}
	current := start
	for {
		candidates := unassignedSuccessors(g, current, assigned)
		if len(candidates) == 0 {
			return chain
		}
		if len(candidates) == 1 && singleInbound(g, candidates[0]) {
			m := candidates[0]
			assigned[m] = true
			chain = append(chain, m)
			current = m
			continue
		}

		var best []diagramgraph.NodeID
		for _, m := range candidates {
			trial := append([]bool(nil), assigned...)
			sub := buildFrom(g, m, trial)
			if len(sub) > len(best) {
				best = sub
			}
		}
		for _, n := range best {
			assigned[n] = true
		}
		return append(chain, best...)
	}
}

// unassignedSuccessors returns the distinct, unassigned, non-self-loop
// successors of n, in ascending node-id order.
func unassignedSuccessors(g *diagramgraph.Graph, n diagramgraph.NodeID, assigned []bool) []diagramgraph.NodeID {
	seen := make(map[diagramgraph.NodeID]bool)
	var out []diagramgraph.NodeID
	for _, eid := range g.Node(n).OutEdges {
		e := g.Edge(eid)
		if e.IsSelfLoop() || e.Target == n || assigned[e.Target] || seen[e.Target] {
			continue
		}
		seen[e.Target] = true
		out = append(out, e.Target)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// singleInbound reports whether m's only incoming edge is the one that made
// it a candidate — i.e. m has exactly one predecessor overall, so extending
// the chain through it doesn't hide any other edge into m.
func singleInbound(g *diagramgraph.Graph, m diagramgraph.NodeID) bool {
	return len(g.Node(m).InEdges) == 1
}
