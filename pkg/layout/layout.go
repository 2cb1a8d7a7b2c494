// Package layout implements LayoutEngine (spec §4.7): it consumes a
// diagramgraph.Graph and drives RankAssigner, ChainDetector,
// ActionStackBuilder, NodePlacer and EdgeRouter to produce a populated Grid,
// backtracking on local failures until the action queue drains or the
// configured budget (tries or deadline) runs out.
package layout

import (
	"context"
	"fmt"
	"time"

	"asciigraph/pkg/action"
	"asciigraph/pkg/chain"
	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/grid"
	"asciigraph/pkg/metric"
	"asciigraph/pkg/rank"
)

// ErrorKind tags the three error kinds spec §7 surfaces to callers.
type ErrorKind uint8

const (
	LayoutIncomplete ErrorKind = iota
	InvariantViolated
	EmptyGraph
)

func (k ErrorKind) String() string {
	switch k {
	case LayoutIncomplete:
		return "LayoutIncomplete"
	case InvariantViolated:
		return "InvariantViolated"
	case EmptyGraph:
		return "EmptyGraph"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned alongside a (possibly partial)
// Result, patterned on the teacher's api.ErrorResponse{Error, Field}: a
// stable kind tag plus optional structured detail (X/Y for
// InvariantViolated).
type Error struct {
	Kind    ErrorKind
	Message string
	X, Y    int
}

func (e *Error) Error() string {
	if e.Kind == InvariantViolated {
		return fmt.Sprintf("%s: %s at (%d,%d)", e.Kind, e.Message, e.X, e.Y)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Config is the layout call's configuration (spec §6). There is no flags/
// env/file loader here — the core takes configuration as a plain Go value,
// the way routing.Engine.Route takes a context and two LatLngs rather than
// reading process state.
type Config struct {
	Flow          metric.Flow
	Boxart        bool
	DeadlineMs    uint
	MaxBacktracks int
}

// DefaultConfig mirrors the teacher's api.DefaultConfig constructor.
func DefaultConfig() Config {
	return Config{
		Flow:          metric.FlowEast,
		Boxart:        false,
		DeadlineMs:    0,
		MaxBacktracks: 16,
	}
}

// Result is the completed (or, if Incomplete, partial) layout handed to the
// compactor and renderer.
type Result struct {
	Graph                  *diagramgraph.Graph
	Grid                   *grid.Grid
	Score                  int
	MinX, MinY, MaxX, MaxY int
	Incomplete             bool
}

// Run lays out g under cfg. ctx carries the caller's absolute deadline; if
// cfg.DeadlineMs is nonzero a derived deadline is also applied. The
// returned error is always a *Error; callers use errors.As to inspect Kind.
func Run(ctx context.Context, g *diagramgraph.Graph, cfg Config) (*Result, error) {
	if g.NumNodes() == 0 {
		return &Result{Graph: g, Grid: grid.New()}, &Error{Kind: EmptyGraph, Message: "graph has no nodes"}
	}

	if cfg.DeadlineMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.DeadlineMs)*time.Millisecond)
		defer cancel()
	}

	g.Flow = cfg.Flow
	rank.Assign(g)
	chains := chain.Detect(g)
	actions := action.Build(g, chains)

	e := newEngine(g, cfg)
	incomplete, err := e.run(ctx, actions)
	if err != nil {
		return nil, err
	}

	minX, minY, maxX, maxY := e.grid.Bounds()
	res := &Result{
		Graph:      g,
		Grid:       e.grid,
		Score:      e.score + totalCrosses(g),
		MinX:       minX,
		MinY:       minY,
		MaxX:       maxX,
		MaxY:       maxY,
		Incomplete: incomplete,
	}
	if incomplete {
		return res, &Error{Kind: LayoutIncomplete, Message: "max_backtracks or deadline exhausted"}
	}
	return res, nil
}

func totalCrosses(g *diagramgraph.Graph) int {
	total := 0
	for _, e := range g.Edges() {
		total += e.Crosses
	}
	return total
}
