package layout

import (
	"context"
	"sort"

	"asciigraph/pkg/action"
	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/grid"
	"asciigraph/pkg/metric"
	"asciigraph/pkg/placer"
	"asciigraph/pkg/router"
)

// engine drives the action queue with backtracking (spec §4.7). It owns
// the Grid, Placer and Router for one layout run.
type engine struct {
	g      *diagramgraph.Graph
	grid   *grid.Grid
	placer *placer.Placer
	router *router.Router

	triesRemaining int
	score          int

	// done lists completed actions in completion order, so undo can find
	// "the most recently completed placement" or "the most recent
	// placement of either endpoint" by scanning from the tail.
	done []*action.Action
}

func newEngine(g *diagramgraph.Graph, cfg Config) *engine {
	gr := grid.New()
	return &engine{
		g:              g,
		grid:           gr,
		placer:         placer.New(g, gr),
		router:         router.New(g, gr),
		triesRemaining: cfg.MaxBacktracks,
	}
}

// run drains queue, backtracking on local failure, until it empties (return
// incomplete=false) or the engine runs out of tries or ctx's deadline
// passes (incomplete=true). Every successful placement re-sorts the
// remaining TRACE_EDGE actions against real coordinates (spec §4.4). err
// is non-nil only for InvariantViolated, a defensive check that should be
// unreachable given the router and placer already pre-validate every
// write.
func (e *engine) run(ctx context.Context, actions []*action.Action) (incomplete bool, err error) {
	queue := actions
	for len(queue) > 0 {
		if ctx.Err() != nil {
			return true, nil
		}
		if e.triesRemaining <= 0 {
			return true, nil
		}

		a := queue[0]
		queue = queue[1:]

		if e.attempt(ctx, a) {
			if ierr := e.onSuccess(a); ierr != nil {
				return false, ierr
			}
			if isPlacement(a.Kind) {
				action.RefreshTraceOrder(e.g, queue)
			}
			continue
		}

		queue = e.backtrack(a, queue)
	}
	return false, nil
}

func (e *engine) attempt(ctx context.Context, a *action.Action) bool {
	switch a.Kind {
	case action.PlaceNode, action.PlaceChained:
		return e.placer.Place(a)
	case action.TraceEdge, action.SelfLoop:
		return e.router.Route(ctx, a.Edge)
	default:
		return false
	}
}

func (e *engine) onSuccess(a *action.Action) error {
	e.done = append(e.done, a)
	if a.Kind == action.TraceEdge || a.Kind == action.SelfLoop {
		edge := e.g.Edge(a.Edge)
		e.score += len(edge.Path)
		if violation := checkEdgeInvariants(e.grid, edge); violation != nil {
			return violation
		}
	}
	return nil
}

// backtrack handles a's failure (spec §4.7) and returns the updated queue
// with whatever should run next pushed to the front.
func (e *engine) backtrack(a *action.Action, queue []*action.Action) []*action.Action {
	switch a.Kind {
	case action.PlaceNode, action.PlaceChained:
		return e.backtrackPlacement(a, queue)
	default: // TraceEdge, SelfLoop
		return e.backtrackEdge(a, queue)
	}
}

// backtrackPlacement implements spec §4.7's PLACE_* rule. Placer.Place
// already exhausts the full S1-S6 cascade from the action's cursor in one
// call, so a retry with no change to the grid is a deterministic repeat:
// the first four local tries are cheap immediate no-ops (the cursor is
// already past the end), after which the engine undoes the most recently
// completed placement — the state-changing recovery step — and resets both
// counters so the freshly-undone grid gets a full cascade attempt.
func (e *engine) backtrackPlacement(a *action.Action, queue []*action.Action) []*action.Action {
	a.Tries++
	if a.Tries <= 4 {
		return prepend(queue, a)
	}

	e.triesRemaining--
	undone, requeuedEdges := e.undoMostRecentPlacement()
	if undone == nil {
		return prepend(queue, a)
	}
	a.Tries, a.Strategy = 0, 0
	head := append([]*action.Action{undone}, requeuedEdges...)
	head = append(head, a)
	return prepend(queue, head...)
}

// backtrackEdge implements spec §4.7's TRACE_EDGE rule: undo the most
// recent placement of either endpoint first, forcing a relayout around the
// obstruction. SELF_LOOP is treated the same way with its single endpoint.
func (e *engine) backtrackEdge(a *action.Action, queue []*action.Action) []*action.Action {
	e.triesRemaining--
	edge := e.g.Edge(a.Edge)
	undone, requeuedEdges := e.undoEndpointPlacement(edge.Source, edge.Target)
	if undone == nil {
		return prepend(queue, a)
	}
	head := append([]*action.Action{undone}, requeuedEdges...)
	head = append(head, a)
	return prepend(queue, head...)
}

func prepend(queue []*action.Action, front ...*action.Action) []*action.Action {
	return append(append([]*action.Action{}, front...), queue...)
}

func isPlacement(k action.Kind) bool {
	return k == action.PlaceNode || k == action.PlaceChained
}

func isEdgeAction(k action.Kind) bool {
	return k == action.TraceEdge || k == action.SelfLoop
}

// undoMostRecentPlacement releases the most recently completed PLACE_NODE/
// PLACE_CHAINED action's node from the grid and returns it (reset for a
// fresh cascade attempt), plus any already-routed edge actions incident to
// that node that had to be released first so the grid never points a
// committed path at a node's stale position.
func (e *engine) undoMostRecentPlacement() (*action.Action, []*action.Action) {
	for i := len(e.done) - 1; i >= 0; i-- {
		if isPlacement(e.done[i].Kind) {
			pa := e.done[i]
			requeued := e.releasePlacement(pa)
			return pa, requeued
		}
	}
	return nil, nil
}

// undoEndpointPlacement scans done for the most recent completed placement
// of either a or b, releasing it (and any edges incident to it) the same
// way undoMostRecentPlacement does.
func (e *engine) undoEndpointPlacement(a, b diagramgraph.NodeID) (*action.Action, []*action.Action) {
	for i := len(e.done) - 1; i >= 0; i-- {
		pa := e.done[i]
		if isPlacement(pa.Kind) && (pa.Node == a || pa.Node == b) {
			requeued := e.releasePlacement(pa)
			return pa, requeued
		}
	}
	return nil, nil
}

// releasePlacement removes pa from done, releases its node's cells from the
// grid, and first releases (and removes from done) every already-routed
// edge action incident to that node, since those paths are committed
// against the node's current position and would dangle once it moves.
// Released edge actions are returned in ascending edge-id order so the
// requeue order is deterministic (spec §5).
func (e *engine) releasePlacement(pa *action.Action) []*action.Action {
	var kept []*action.Action
	var releasedEdges []*action.Action
	for _, da := range e.done {
		if da == pa {
			continue
		}
		if isEdgeAction(da.Kind) && edgeTouchesNode(e.g, da.Edge, pa.Node) {
			e.releaseEdge(da)
			releasedEdges = append(releasedEdges, da)
			continue
		}
		kept = append(kept, da)
	}
	e.done = kept

	e.grid.ReleaseNode(pa.Node)
	n := e.g.Node(pa.Node)
	n.Placed, n.X, n.Y = false, 0, 0
	pa.Tries, pa.Strategy = 0, 0

	sort.Slice(releasedEdges, func(i, j int) bool { return releasedEdges[i].Edge < releasedEdges[j].Edge })
	return releasedEdges
}

func edgeTouchesNode(g *diagramgraph.Graph, edgeID diagramgraph.EdgeID, node diagramgraph.NodeID) bool {
	edge := g.Edge(edgeID)
	return edge.Source == node || edge.Target == node
}

// releaseEdge deletes da's committed path cells from the grid and resets
// its edge back to unrouted.
func (e *engine) releaseEdge(da *action.Action) {
	edge := e.g.Edge(da.Edge)
	for _, p := range edge.Path {
		fallback := cellOrientation(edge.Path, p.X, p.Y)
		e.grid.DeleteEdgeCell(p.X, p.Y, da.Edge, fallback)
	}
	e.score -= len(edge.Path)
	edge.Path = nil
	edge.Routed = false
	edge.Crosses = 0
	da.Tries, da.Strategy = 0, 0
}

// cellOrientation approximates the HOR/VER fallback type DeleteEdgeCell
// should downgrade a CROSS cell to once this edge is removed from it — the
// direction the *other* remaining owner travels through (x,y) isn't known
// here, so this uses edge's own direction at that point as a stand-in
// (only wrong for a T-joint/cross at a bend, a rare backtracking corner
// case that self-corrects the next time either edge re-routes through the
// cell).
func cellOrientation(path []metric.Point, x, y int) grid.EdgeType {
	for i, p := range path {
		if p.X != x || p.Y != y {
			continue
		}
		var ref metric.Point
		switch {
		case i+1 < len(path):
			ref = path[i+1]
		case i > 0:
			ref = path[i-1]
		default:
			return grid.Hor
		}
		if ref.X != p.X {
			return grid.Hor
		}
		return grid.Ver
	}
	return grid.Hor
}

// checkEdgeInvariants defends spec §7's InvariantViolated: a bug, not a
// user error, if a committed path ever touches a NODE cell or takes a
// non-4-connected step. Both should be unreachable — the router's stepCost
// forbids NODE cells and every neighbor step is a unit orthogonal move by
// construction — but the check is cheap and the failure mode is a silent
// rendering corruption otherwise.
func checkEdgeInvariants(g *grid.Grid, e *diagramgraph.Edge) error {
	for i, p := range e.Path {
		if cell, ok := g.Get(p.X, p.Y); ok && cell.Kind == grid.KindNode {
			return &Error{Kind: InvariantViolated, Message: "edge path crosses a node cell", X: p.X, Y: p.Y}
		}
		if i == 0 {
			continue
		}
		prev := e.Path[i-1]
		dx, dy := p.X-prev.X, p.Y-prev.Y
		if !((dx == 1 || dx == -1) && dy == 0) && !((dy == 1 || dy == -1) && dx == 0) {
			return &Error{Kind: InvariantViolated, Message: "edge path is not 4-connected", X: p.X, Y: p.Y}
		}
	}
	return nil
}
