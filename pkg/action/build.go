package action

import (
	"asciigraph/pkg/chain"
	"asciigraph/pkg/diagramgraph"
)

// Build produces the ordered action queue (spec §4.4): one PLACE_NODE per
// chain head followed by a PLACE_CHAINED per subsequent chain member, then a
// TRACE_EDGE for every edge no chain already consumed, then a SELF_LOOP for
// every self-loop. Chains must come from chain.Detect(g); parallel-edge
// offsets are assigned here as a side effect of the pass over g's edges.
func Build(g *diagramgraph.Graph, chains []chain.Chain) []*Action {
	consumed := make([]bool, g.NumEdges())
	var actions []*Action

	for _, c := range chains {
		actions = append(actions, &Action{Kind: PlaceNode, Node: c.Head()})
		for i := 1; i < len(c.Nodes); i++ {
			parent, node := c.Nodes[i-1], c.Nodes[i]
			edgeID := edgeBetween(g, parent, node)
			if edgeID != diagramgraph.NoEdge {
				consumed[edgeID] = true
			}
			actions = append(actions, &Action{
				Kind: PlaceChained, Node: node, Parent: parent, ParentEdge: edgeID,
			})
		}
	}

	assignParallelOffsets(g)

	var traces, loops []*Action
	for _, e := range g.Edges() {
		switch {
		case e.IsSelfLoop():
			loops = append(loops, &Action{Kind: SelfLoop, Edge: e.ID})
		case !consumed[e.ID]:
			traces = append(traces, &Action{Kind: TraceEdge, Edge: e.ID})
		}
	}
	sortTraceEdges(g, traces)

	actions = append(actions, traces...)
	actions = append(actions, loops...)
	return actions
}

// edgeBetween returns the id of the (first, in OutEdges order) edge from
// parent to node, or NoEdge if none exists — defensive only; chain.Detect
// never splices a PLACE_CHAINED parent/child pair that isn't joined by an
// edge.
func edgeBetween(g *diagramgraph.Graph, parent, node diagramgraph.NodeID) diagramgraph.EdgeID {
	for _, eid := range g.Node(parent).OutEdges {
		if g.Edge(eid).Target == node {
			return eid
		}
	}
	return diagramgraph.NoEdge
}
