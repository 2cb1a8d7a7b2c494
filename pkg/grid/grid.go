package grid

import (
	"sort"

	"github.com/tidwall/rtree"

	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/metric"
)

// cellKey packs a (possibly negative) (x,y) pair into a single uint64 map
// key, the same packing idiom the teacher's routing/snap.go uses for
// (latIdx,lonIdx) — avoids a map[int]map[int]Cell and the extra pointer
// chasing and per-row-map allocation that would come with it.
func cellKey(x, y int) uint64 {
	return uint64(uint32(int32(x)))<<32 | uint64(uint32(int32(y)))
}

// Grid is the sparse cell map and occupancy oracle (spec §4.1). The zero
// value is not usable; construct with New.
type Grid struct {
	cells map[uint64]Cell
	index rtree.RTreeG[diagramgraph.NodeID]
	rects map[diagramgraph.NodeID]metric.Rect

	haveBounds             bool
	minX, minY, maxX, maxY int
}

// New creates an empty grid.
func New() *Grid {
	return &Grid{
		cells: make(map[uint64]Cell),
		rects: make(map[diagramgraph.NodeID]metric.Rect),
	}
}

// Occupied reports whether any cell sits at (x,y).
func (g *Grid) Occupied(x, y int) bool {
	_, ok := g.cells[cellKey(x, y)]
	return ok
}

// Get returns the cell at (x,y), if any.
func (g *Grid) Get(x, y int) (Cell, bool) {
	c, ok := g.cells[cellKey(x, y)]
	return c, ok
}

func (g *Grid) touch(x, y int) {
	if !g.haveBounds {
		g.minX, g.maxX, g.minY, g.maxY = x, x, y, y
		g.haveBounds = true
		return
	}
	if x < g.minX {
		g.minX = x
	}
	if x > g.maxX {
		g.maxX = x
	}
	if y < g.minY {
		g.minY = y
	}
	if y > g.maxY {
		g.maxY = y
	}
}

// Bounds returns (minX, minY, maxX, maxY) over every cell ever placed. Spec
// §3 permits negative coordinates; an empty grid returns all zeros.
func (g *Grid) Bounds() (minX, minY, maxX, maxY int) {
	if !g.haveBounds {
		return 0, 0, 0, 0
	}
	return g.minX, g.minY, g.maxX, g.maxY
}

// ClaimNode marks the rectangle [x,x+cx) x [y,y+cy) as NODE cells owned by
// id. Fails without mutating the grid if any cell in the rectangle is
// already occupied (spec §4.1).
func (g *Grid) ClaimNode(id diagramgraph.NodeID, x, y, cx, cy int) error {
	for dy := 0; dy < cy; dy++ {
		for dx := 0; dx < cx; dx++ {
			if g.Occupied(x+dx, y+dy) {
				return &ErrCellOccupied{X: x + dx, Y: y + dy}
			}
		}
	}
	for dy := 0; dy < cy; dy++ {
		for dx := 0; dx < cx; dx++ {
			g.cells[cellKey(x+dx, y+dy)] = Cell{
				X: x + dx, Y: y + dy, Kind: KindNode,
				Node: id, OriginX: x, OriginY: y,
				SpanRight:  dx < cx-1,
				SpanBottom: dy < cy-1,
			}
			g.touch(x+dx, y+dy)
		}
	}
	rect := metric.Rect{X: x, Y: y, CX: cx, CY: cy}
	g.rects[id] = rect
	g.index.Insert(rectMin(rect), rectMax(rect), id)
	return nil
}

// ReleaseNode removes exactly the cells the matching ClaimNode inserted. A
// no-op if the node was never claimed.
func (g *Grid) ReleaseNode(id diagramgraph.NodeID) {
	rect, ok := g.rects[id]
	if !ok {
		return
	}
	for dy := 0; dy < rect.CY; dy++ {
		for dx := 0; dx < rect.CX; dx++ {
			delete(g.cells, cellKey(rect.X+dx, rect.Y+dy))
		}
	}
	g.index.Delete(rectMin(rect), rectMax(rect), id)
	delete(g.rects, id)
}

// NodeRect returns the rectangle a claimed node occupies.
func (g *Grid) NodeRect(id diagramgraph.NodeID) (metric.Rect, bool) {
	r, ok := g.rects[id]
	return r, ok
}

// NodesNear returns the ids of claimed nodes whose rectangle lies within
// Chebyshev distance radius of (x,y), via the r-tree rather than a linear
// scan of every placed node. Used by the placer's P2 gutter check.
func (g *Grid) NodesNear(x, y, radius int) []diagramgraph.NodeID {
	lo := [2]float64{float64(x - radius), float64(y - radius)}
	hi := [2]float64{float64(x + radius), float64(y + radius)}
	var out []diagramgraph.NodeID
	g.index.Search(lo, hi, func(_, _ [2]float64, data diagramgraph.NodeID) bool {
		out = append(out, data)
		return true
	})
	return out
}

func rectMin(r metric.Rect) [2]float64 {
	return [2]float64{float64(r.X), float64(r.Y)}
}

func rectMax(r metric.Rect) [2]float64 {
	return [2]float64{float64(r.X + r.CX - 1), float64(r.Y + r.CY - 1)}
}

// axisOf classifies an EdgeType as horizontal, vertical, or neither (joints/
// crosses, which already span both axes).
func axisOf(t EdgeType) (horizontal, vertical bool) { return t.Axis() }

// PutEdgeCell inserts or upgrades an edge cell at (x,y) (spec §4.1). Placing
// HOR onto VER (or vice versa) owned by a different edge upgrades the cell
// to CROSS; placing onto a cell already owned by edge is a re-entry bug and
// fails hard; NODE cells can never be overwritten. The bool result reports
// whether this call upgraded an existing different-edge cell (the caller —
// the router — is responsible for the +30 score penalty spec §4.6 assigns
// to that case).
func (g *Grid) PutEdgeCell(x, y int, t EdgeType, edge diagramgraph.EdgeID) (Cell, bool, error) {
	key := cellKey(x, y)
	existing, ok := g.cells[key]
	if !ok {
		c := Cell{X: x, Y: y, Kind: KindEdge, Type: t, Edges: []diagramgraph.EdgeID{edge}}
		g.cells[key] = c
		g.touch(x, y)
		return c, false, nil
	}

	if existing.Kind == KindNode {
		return Cell{}, false, &ErrNodeCell{X: x, Y: y}
	}

	for _, e := range existing.Edges {
		if e == edge {
			return Cell{}, false, &ErrReentry{X: x, Y: y}
		}
	}

	// Different edge already owns this cell: HOR/VER crossing upgrades to
	// CROSS; anything else (already a CROSS/joint, or same-axis overlap the
	// router pre-screened as upgradable) just accumulates the edge.
	eh, ev := axisOf(existing.Type)
	nh, nv := axisOf(t)
	var newType EdgeType
	switch {
	case existing.Type == Cross || (eh && nv) || (ev && nh):
		newType = Cross
	default:
		newType = existing.Type
	}

	c := Cell{
		X: x, Y: y, Kind: KindEdge, Type: newType,
		Flags: existing.Flags,
		Edges: append(append([]diagramgraph.EdgeID{}, existing.Edges...), edge),
	}
	g.cells[key] = c
	return c, true, nil
}

// PutJointCell writes a T-joint cell directly: two edges sharing the same
// source or target meet here at zero cost (spec §4.6, "shared joints ...
// encourages bundling"), bypassing the generic HOR/VER upgrade arithmetic
// since a joint's geometry is decided by the router, not inferred from the
// existing cell's type.
func (g *Grid) PutJointCell(x, y int, t EdgeType, flags Flags, edges ...diagramgraph.EdgeID) (Cell, error) {
	key := cellKey(x, y)
	if existing, ok := g.cells[key]; ok && existing.Kind == KindNode {
		return Cell{}, &ErrNodeCell{X: x, Y: y}
	}
	c := Cell{X: x, Y: y, Kind: KindEdge, Type: t, Flags: flags, Edges: edges}
	g.cells[key] = c
	g.touch(x, y)
	return c, nil
}

// SetFlags overwrites the flags (arrowhead/label/start/end) of an existing
// edge cell in place — cells stay value-like (a full replace), this just
// hides the read-modify-write.
func (g *Grid) SetFlags(x, y int, flags Flags) {
	key := cellKey(x, y)
	c, ok := g.cells[key]
	if !ok {
		return
	}
	c.Flags = flags
	g.cells[key] = c
}

// DeleteEdgeCell removes an edge's contribution to the cell at (x,y) —
// dropping the whole cell if edge was the sole owner, otherwise leaving the
// remaining owner(s) and downgrading CROSS back to the remaining edge's
// native orientation when exactly one owner remains. Used when backtracking
// undoes a routed edge (spec §4.7).
func (g *Grid) DeleteEdgeCell(x, y int, edge diagramgraph.EdgeID, fallbackType EdgeType) {
	key := cellKey(x, y)
	c, ok := g.cells[key]
	if !ok || c.Kind != KindEdge {
		return
	}
	remaining := c.Edges[:0]
	for _, e := range c.Edges {
		if e != edge {
			remaining = append(remaining, e)
		}
	}
	if len(remaining) == 0 {
		delete(g.cells, key)
		return
	}
	c.Edges = remaining
	if len(remaining) == 1 && c.Type == Cross {
		c.Type = fallbackType
	}
	g.cells[key] = c
}

// SortedCells returns every cell in (y,x) order — the iteration order the
// compactor and renderer require for determinism (spec §3).
func (g *Grid) SortedCells() []Cell {
	out := make([]Cell, 0, len(g.cells))
	for _, c := range g.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
