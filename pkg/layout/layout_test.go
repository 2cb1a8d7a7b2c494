package layout

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/grid"
	"asciigraph/pkg/metric"
)

func TestRunEmptyGraph(t *testing.T) {
	g := diagramgraph.NewBuilder(metric.FlowEast).Build()
	res, err := Run(context.Background(), g, DefaultConfig())
	if res == nil {
		t.Fatalf("expected a non-nil empty result")
	}
	if res.MinX != 0 || res.MinY != 0 || res.MaxX != 0 || res.MaxY != 0 {
		t.Errorf("expected zero bounds, got (%d,%d)-(%d,%d)", res.MinX, res.MinY, res.MaxX, res.MaxY)
	}
	if err == nil {
		t.Fatalf("expected an EmptyGraph error")
	}
	layoutErr, ok := err.(*Error)
	if !ok || layoutErr.Kind != EmptyGraph {
		t.Fatalf("expected *Error{Kind: EmptyGraph}, got %#v", err)
	}
}

// buildChain constructs A -> B -> C, the E1 scenario (spec §8).
func buildChain() *diagramgraph.Graph {
	b := diagramgraph.NewBuilder(metric.FlowEast)
	a := b.AddNode("A")
	n := b.AddNode("B")
	c := b.AddNode("C")
	b.AddEdge(a, n, true)
	b.AddEdge(n, c, true)
	return b.Build()
}

func TestRunThreeNodeChain(t *testing.T) {
	g := buildChain()
	res, err := Run(context.Background(), g, DefaultConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Incomplete {
		t.Fatalf("expected a complete layout")
	}
	for _, n := range g.Nodes() {
		if !n.Placed {
			t.Errorf("node %d (%s) was never placed", n.ID, n.Name)
		}
	}
	for _, e := range g.Edges() {
		if !e.Routed {
			t.Errorf("edge %d was never routed", e.ID)
		}
	}
	// P7: monotone chain under flow east.
	nodes := g.Nodes()
	for i := 1; i < len(nodes); i++ {
		if nodes[i].X <= nodes[i-1].X {
			t.Errorf("P7 violated: node %d x=%d not > node %d x=%d", i, nodes[i].X, i-1, nodes[i-1].X)
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	g1 := buildChain()
	res1, err1 := Run(context.Background(), g1, DefaultConfig())
	if err1 != nil {
		t.Fatalf("first run failed: %v", err1)
	}
	g2 := buildChain()
	res2, err2 := Run(context.Background(), g2, DefaultConfig())
	if err2 != nil {
		t.Fatalf("second run failed: %v", err2)
	}
	if res1.Score != res2.Score {
		t.Errorf("score differs across runs: %d vs %d", res1.Score, res2.Score)
	}
	cells1, cells2 := res1.Grid.SortedCells(), res2.Grid.SortedCells()
	if len(cells1) != len(cells2) {
		t.Fatalf("cell count differs across runs: %d vs %d", len(cells1), len(cells2))
	}
	for i := range cells1 {
		if !reflect.DeepEqual(cells1[i], cells2[i]) {
			t.Fatalf("cell %d differs across runs: %+v vs %+v", i, cells1[i], cells2[i])
		}
	}
}

func TestRunDiamondNoOverlapAndGutter(t *testing.T) {
	b := diagramgraph.NewBuilder(metric.FlowEast)
	a := b.AddNode("A")
	n1 := b.AddNode("B")
	n2 := b.AddNode("C")
	d := b.AddNode("D")
	b.AddEdge(a, n1, true)
	b.AddEdge(a, n2, true)
	b.AddEdge(n1, d, true)
	b.AddEdge(n2, d, true)
	g := b.Build()

	res, err := Run(context.Background(), g, DefaultConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	nodes := g.Nodes()
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			ri, rj := nodes[i].Rect(), nodes[j].Rect()
			if rectsOverlap(ri, rj) {
				t.Errorf("P1 violated: nodes %d and %d overlap", i, j)
			}
		}
	}

	// P2: B and C share no edge between them, so the gutter invariant
	// requires at least one empty cell between their rectangles along at
	// least one axis (Chebyshev gap >= 1).
	rb, rc := g.Node(n1).Rect(), g.Node(n2).Rect()
	if chebyshevGap(rb, rc) < 1 {
		t.Errorf("P2 violated: B and C rectangles are within the gutter, %+v vs %+v", rb, rc)
	}

	// E2: the diamond's two paths (A->B->D and A->C->D) never need to
	// cross each other, so no CROSS cell should appear anywhere.
	for _, cell := range res.Grid.SortedCells() {
		if cell.Type == grid.Cross {
			t.Errorf("E2 violated: unexpected CROSS cell at (%d,%d)", cell.X, cell.Y)
		}
	}
	if res.Score != totalCrosses(g)+pathLengthSum(g) {
		t.Errorf("P8 violated: score %d != path lengths + crossings", res.Score)
	}
}

func rectsOverlap(a, b metric.Rect) bool {
	return a.X < b.X+b.CX && b.X < a.X+a.CX && a.Y < b.Y+b.CY && b.Y < a.Y+a.CY
}

// chebyshevGap returns the Chebyshev distance between two disjoint
// rectangles along whichever axis separates them, or 0 if they touch or
// overlap.
func chebyshevGap(a, b metric.Rect) int {
	dx := 0
	switch {
	case a.X+a.CX <= b.X:
		dx = b.X - (a.X + a.CX)
	case b.X+b.CX <= a.X:
		dx = a.X - (b.X + b.CX)
	}
	dy := 0
	switch {
	case a.Y+a.CY <= b.Y:
		dy = b.Y - (a.Y + a.CY)
	case b.Y+b.CY <= a.Y:
		dy = a.Y - (b.Y + b.CY)
	}
	if dx > dy {
		return dx
	}
	return dy
}

// pathLengthSum is the path-length half of P8's score, summed over every
// routed edge.
func pathLengthSum(g *diagramgraph.Graph) int {
	total := 0
	for _, e := range g.Edges() {
		total += len(e.Path)
	}
	return total
}

// TestRunParallelEdgesGetDistinctOffsets covers E3: three distinct
// [A]->[B] edges must all route (diagramgraph.Builder.AddEdge allows a
// repeated node pair), each ending up on a different row/column rather
// than bundling onto one shared path.
func TestRunParallelEdgesGetDistinctOffsets(t *testing.T) {
	b := diagramgraph.NewBuilder(metric.FlowEast)
	a := b.AddNode("A")
	n := b.AddNode("B")
	b.AddEdge(a, n, true)
	b.AddEdge(a, n, true)
	b.AddEdge(a, n, true)
	g := b.Build()

	res, err := Run(context.Background(), g, DefaultConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Incomplete {
		t.Fatalf("expected a complete layout")
	}
	for _, e := range g.Edges() {
		if !e.Routed {
			t.Errorf("edge %d was never routed", e.ID)
		}
	}

	seen := make(map[metric.Point]diagramgraph.EdgeID)
	for _, e := range g.Edges() {
		for _, p := range e.Path {
			if owner, ok := seen[p]; ok && owner != e.ID {
				t.Errorf("edges %d and %d share intermediate cell %+v, expected distinct offsets", owner, e.ID, p)
			}
			seen[p] = e.ID
		}
	}
}

// TestRunSevenBridgesRoutesEveryEdge covers E4: the Seven Bridges of
// Königsberg as an undirected multigraph over four nodes. All seven edges
// must route, none may share a full path with another, and since every
// edge is undirected no cell should carry an arrowhead.
func TestRunSevenBridgesRoutesEveryEdge(t *testing.T) {
	b := diagramgraph.NewBuilder(metric.FlowEast)
	north := b.AddNode("North")
	south := b.AddNode("South")
	kneiphof := b.AddNode("Kneiphof")
	lomse := b.AddNode("Lomse")
	b.AddEdge(north, kneiphof, false)
	b.AddEdge(north, kneiphof, false)
	b.AddEdge(south, kneiphof, false)
	b.AddEdge(south, kneiphof, false)
	b.AddEdge(north, lomse, false)
	b.AddEdge(lomse, south, false)
	b.AddEdge(lomse, kneiphof, false)
	g := b.Build()

	res, err := Run(context.Background(), g, DefaultConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Incomplete {
		t.Fatalf("expected a complete layout")
	}
	if len(g.Edges()) != 7 {
		t.Fatalf("expected 7 edges, got %d", len(g.Edges()))
	}
	for _, e := range g.Edges() {
		if !e.Routed {
			t.Errorf("edge %d was never routed", e.ID)
		}
	}

	pathKey := func(path []metric.Point) string {
		s := ""
		for _, p := range path {
			s += fmt.Sprintf("%d,%d;", p.X, p.Y)
		}
		return s
	}
	seenPaths := make(map[string]diagramgraph.EdgeID)
	for _, e := range g.Edges() {
		k := pathKey(e.Path)
		if owner, ok := seenPaths[k]; ok {
			t.Errorf("edges %d and %d share an identical path", owner, e.ID)
		}
		seenPaths[k] = e.ID
	}

	for _, cell := range res.Grid.SortedCells() {
		if cell.Flags.HasArrow() {
			t.Errorf("undirected edge produced an arrowhead at (%d,%d)", cell.X, cell.Y)
		}
	}
	if res.Score <= 0 {
		t.Errorf("expected a positive finite score, got %d", res.Score)
	}
}

// TestRunSimpleCycleBackEdgeBends covers E5: A->B->C->A. The back edge
// C->A can't run the same straight line as the forward chain A->B->C, so
// it must take at least one bend rather than overlapping it.
func TestRunSimpleCycleBackEdgeBends(t *testing.T) {
	b := diagramgraph.NewBuilder(metric.FlowEast)
	a := b.AddNode("A")
	n := b.AddNode("B")
	c := b.AddNode("C")
	b.AddEdge(a, n, true)
	b.AddEdge(n, c, true)
	back := b.AddEdge(c, a, true)
	g := b.Build()

	res, err := Run(context.Background(), g, DefaultConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Incomplete {
		t.Fatalf("expected a complete layout")
	}
	for _, n := range g.Nodes() {
		if !n.Placed {
			t.Errorf("node %d (%s) was never placed", n.ID, n.Name)
		}
	}
	for _, e := range g.Edges() {
		if !e.Routed {
			t.Errorf("edge %d was never routed", e.ID)
		}
	}

	backEdge := g.Edge(back)
	if len(backEdge.Path) < 2 {
		t.Fatalf("back edge path too short to judge straightness: %+v", backEdge.Path)
	}
	straight := true
	for _, p := range backEdge.Path[1:] {
		if p.X != backEdge.Path[0].X && p.Y != backEdge.Path[0].Y {
			straight = false
			break
		}
	}
	if straight {
		t.Errorf("back edge C->A ran as a single straight line, expected at least one bend: %+v", backEdge.Path)
	}
}

func TestRunSelfLoop(t *testing.T) {
	b := diagramgraph.NewBuilder(metric.FlowEast)
	a := b.AddNode("A")
	b.AddEdge(a, a, true)
	g := b.Build()

	res, err := Run(context.Background(), g, DefaultConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !g.Node(a).Placed {
		t.Fatalf("node A was never placed")
	}
	if !g.Edge(0).Routed {
		t.Fatalf("self-loop edge was never routed")
	}
	_ = res
}

func TestRunDeadlineExceededYieldsIncomplete(t *testing.T) {
	g := buildChain()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Run(ctx, g, DefaultConfig())
	if err == nil {
		t.Fatalf("expected a LayoutIncomplete error")
	}
	layoutErr, ok := err.(*Error)
	if !ok || layoutErr.Kind != LayoutIncomplete {
		t.Fatalf("expected *Error{Kind: LayoutIncomplete}, got %#v", err)
	}
	if !res.Incomplete {
		t.Errorf("expected result.Incomplete to be true")
	}
}

func TestCellOrientationPicksAxisFromNeighbor(t *testing.T) {
	path := []metric.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	if got := cellOrientation(path, 1, 0); got != grid.Hor {
		t.Errorf("expected Hor, got %v", got)
	}
	vpath := []metric.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}
	if got := cellOrientation(vpath, 1, 0); got != grid.Hor {
		// coordinate not in path at all: falls through the loop, default Hor
		t.Errorf("expected unmatched coordinate to default to Hor, got %v", got)
	}
	if got := cellOrientation(vpath, 0, 1); got != grid.Ver {
		t.Errorf("expected Ver, got %v", got)
	}
}
