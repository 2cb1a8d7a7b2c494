package compact

import "asciigraph/pkg/grid"

// Tables is the renderer's view of the grid's coordinate space: cumulative
// position tables mapping a grid row/column index to its output row/column
// (spec §4.8), shrunk wherever an entire column or row carries nothing but
// plain straight-line passage.
type Tables struct {
	MinX, MinY int
	ColX, RowY []int
}

// X returns the output column for grid x-coordinate gridX.
func (t Tables) X(gridX int) int { return t.ColX[gridX-t.MinX] }

// Y returns the output row for grid y-coordinate gridY.
func (t Tables) Y(gridY int) int { return t.RowY[gridY-t.MinY] }

// Width is the total number of output columns the tables span.
func (t Tables) Width() int {
	if len(t.ColX) == 0 {
		return 0
	}
	return t.ColX[len(t.ColX)-1] + 1
}

// Height is the total number of output rows the tables span.
func (t Tables) Height() int {
	if len(t.RowY) == 0 {
		return 0
	}
	return t.RowY[len(t.RowY)-1] + 1
}

// PositionTables computes rowY[]/colX[] for g (spec §4.8). A column is
// folded into its left neighbor's output slot when every cell in it (across
// every row) is empty or a plain unflagged HOR passage cell — i.e. nothing
// in that column distinguishes it from "more of the same dash" — and the
// left neighbor passes the same test (see cumulative). Symmetric
// for rows using VER passage cells. A column/row touching any NODE cell, or
// any corner/cross/joint/labeled/arrowhead edge cell, is never folded — this
// is what spec §9's rule against merging across a multi-cell node's
// boundary reduces to: the node's own occupied columns/rows already fail
// the "plain passage only" test in every row/column they touch.
func PositionTables(g *grid.Grid) Tables {
	minX, minY, maxX, maxY := g.Bounds()
	return Tables{
		MinX: minX,
		MinY: minY,
		ColX: cumulative(minX, maxX, func(x int) bool { return !columnCompactable(g, x, minY, maxY) }),
		RowY: cumulative(minY, maxY, func(y int) bool { return !rowCompactable(g, y, minX, maxX) }),
	}
}

// cumulative builds the position table for one axis over [lo,hi]. Index 0
// always starts at output position 0. Each later index gets its own output
// slot (pos advances) whenever it or its predecessor is significant —
// advancing on either side of the boundary, not just entering it, is what
// keeps a node's own columns/rows and the first cell of an adjoining boring
// run from collapsing onto the same output slot (they'd otherwise want to
// render two different glyphs in one character cell). A run of indices that
// are significant nowhere in it, and whose predecessor also isn't
// significant, collapses into one shared slot.
func cumulative(lo, hi int, significant func(i int) bool) []int {
	n := hi - lo + 1
	if n <= 0 {
		return nil
	}
	sig := make([]bool, n)
	for i := 0; i < n; i++ {
		sig[i] = significant(lo + i)
	}
	out := make([]int, n)
	pos := 0
	out[0] = pos
	for i := 1; i < n; i++ {
		if sig[i] || sig[i-1] {
			pos++
		}
		out[i] = pos
	}
	return out
}

func columnCompactable(g *grid.Grid, x, minY, maxY int) bool {
	for y := minY; y <= maxY; y++ {
		c, ok := g.Get(x, y)
		if !ok {
			continue
		}
		if c.Kind != grid.KindEdge || c.Type != grid.Hor || c.Flags != 0 {
			return false
		}
	}
	return true
}

func rowCompactable(g *grid.Grid, y, minX, maxX int) bool {
	for x := minX; x <= maxX; x++ {
		c, ok := g.Get(x, y)
		if !ok {
			continue
		}
		if c.Kind != grid.KindEdge || c.Type != grid.Ver || c.Flags != 0 {
			return false
		}
	}
	return true
}
