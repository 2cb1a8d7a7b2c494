package action

import (
	"testing"

	"asciigraph/pkg/chain"
	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/metric"
)

// TestBuildOrdersPlaceThenTraceThenSelfLoop checks a chain A->B plus a
// cross-chain edge B->A (back-edge) plus a self-loop on A: the action list
// must be PLACE_NODE(A), PLACE_CHAINED(B), TRACE_EDGE(B->A), SELF_LOOP(A).
func TestBuildOrdersPlaceThenTraceThenSelfLoop(t *testing.T) {
	b := diagramgraph.NewBuilder(metric.FlowEast)
	a := b.AddNode("a")
	n2 := b.AddNode("b")
	b.AddEdge(a, n2, true)
	back := b.AddEdge(n2, a, true)
	loop := b.AddEdge(a, a, true)
	g := b.Build()

	chains := chain.Detect(g)
	actions := Build(g, chains)

	if len(actions) != 4 {
		t.Fatalf("want 4 actions, got %d", len(actions))
	}
	if actions[0].Kind != PlaceNode || actions[0].Node != a {
		t.Fatalf("action 0: want PLACE_NODE(a), got %v", actions[0])
	}
	if actions[1].Kind != PlaceChained || actions[1].Node != n2 || actions[1].Parent != a {
		t.Fatalf("action 1: want PLACE_CHAINED(b, parent a), got %v", actions[1])
	}
	if actions[2].Kind != TraceEdge || actions[2].Edge != back {
		t.Fatalf("action 2: want TRACE_EDGE(back), got %v", actions[2])
	}
	if actions[3].Kind != SelfLoop || actions[3].Edge != loop {
		t.Fatalf("action 3: want SELF_LOOP, got %v", actions[3])
	}
}

// TestBuildAssignsParallelOffsets checks three parallel directed edges
// A->B get offsets 0, +1, -1 in creation order.
func TestBuildAssignsParallelOffsets(t *testing.T) {
	b := diagramgraph.NewBuilder(metric.FlowEast)
	a := b.AddNode("a")
	n2 := b.AddNode("b")
	e0 := b.AddEdge(a, n2, true)
	e1 := b.AddEdge(a, n2, true)
	e2 := b.AddEdge(a, n2, true)
	g := b.Build()

	chains := chain.Detect(g)
	Build(g, chains)

	if g.Edge(e0).Offset != 0 {
		t.Fatalf("e0: want offset 0, got %d", g.Edge(e0).Offset)
	}
	if g.Edge(e1).Offset != 1 {
		t.Fatalf("e1: want offset +1, got %d", g.Edge(e1).Offset)
	}
	if g.Edge(e2).Offset != -1 {
		t.Fatalf("e2: want offset -1, got %d", g.Edge(e2).Offset)
	}
}

// TestBuildUndirectedOffsetsShareKeyRegardlessOfOrder checks undirected
// edges A->B and B->A (same unordered pair) share one offset sequence.
func TestBuildUndirectedOffsetsShareKeyRegardlessOfOrder(t *testing.T) {
	b := diagramgraph.NewBuilder(metric.FlowEast)
	a := b.AddNode("a")
	n2 := b.AddNode("b")
	e0 := b.AddEdge(a, n2, false)
	e1 := b.AddEdge(n2, a, false)
	g := b.Build()

	chains := chain.Detect(g)
	Build(g, chains)

	if g.Edge(e0).Offset != 0 {
		t.Fatalf("e0: want offset 0, got %d", g.Edge(e0).Offset)
	}
	if g.Edge(e1).Offset != 1 {
		t.Fatalf("e1: want offset +1, got %d", g.Edge(e1).Offset)
	}
}

// TestRefreshTraceOrderUsesRealCoordinates checks that once nodes are
// marked Placed with real coordinates, RefreshTraceOrder reorders
// TRACE_EDGE actions by actual Manhattan distance rather than the rank
// estimate Build used.
func TestRefreshTraceOrderUsesRealCoordinates(t *testing.T) {
	b := diagramgraph.NewBuilder(metric.FlowEast)
	x := b.AddNode("x")
	y := b.AddNode("y")
	z := b.AddNode("z")
	far := b.AddEdge(x, y, true)
	near := b.AddEdge(x, z, true)
	g := b.Build()

	// No chains: every edge is an independent TRACE_EDGE.
	actions := Build(g, nil)
	if len(actions) != 2 {
		t.Fatalf("want 2 trace actions, got %d", len(actions))
	}

	g.Node(x).Placed, g.Node(x).X, g.Node(x).Y = true, 0, 0
	g.Node(y).Placed, g.Node(y).X, g.Node(y).Y = true, 100, 100
	g.Node(z).Placed, g.Node(z).X, g.Node(z).Y = true, 1, 0

	RefreshTraceOrder(g, actions)

	if actions[0].Edge != near {
		t.Fatalf("want the short edge (x->z) first after refresh, got edge %d (far=%d near=%d)",
			actions[0].Edge, far, near)
	}
}
