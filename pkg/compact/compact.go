// Package compact implements GridCompactor (spec §4.8): merging
// collinear, same-edge, unlabeled straight-line cell runs for width
// budgeting, and producing the cumulative row/column position tables the
// renderer uses to turn grid coordinates into output character positions.
package compact

import "asciigraph/pkg/grid"

// MergedCell is one compacted output cell: a grid.Cell plus a run-length
// recording how many consecutive original cells it stands in for (spec
// §4.8). RunLength is 1 for every cell that wasn't absorbed into a run.
type MergedCell struct {
	grid.Cell
	RunLength int
}

// mergeable reports whether c is eligible to start or continue a
// compaction run: a plain, single-owner, unlabeled straight edge cell.
// Corners, crosses, joints, multi-owner cells and anything carrying a
// label/arrowhead/start/end flag always get their own MergedCell.
func mergeable(c grid.Cell) bool {
	return c.Kind == grid.KindEdge &&
		(c.Type == grid.Hor || c.Type == grid.Ver) &&
		c.Flags == 0 &&
		len(c.Edges) == 1
}

// MergeRuns scans g for runs of consecutive HOR cells in the same row (and,
// symmetrically, VER cells in the same column) belonging to the same edge,
// carrying no label and no crossing, and collapses each into one
// MergedCell with RunLength set (spec §4.8). It does not modify g.
func MergeRuns(g *grid.Grid) []MergedCell {
	cells := g.SortedCells() // (y,x) order: a run's lowest-x/lowest-y cell
	// always precedes its continuations, so a single forward pass with a
	// consumed-set suffices — no cell is ever visited as a "continuation"
	// before its run's start is processed and marks it consumed.
	consumed := make(map[[2]int]bool, len(cells))
	merged := make([]MergedCell, 0, len(cells))

	for _, c := range cells {
		pos := [2]int{c.X, c.Y}
		if consumed[pos] {
			continue
		}
		consumed[pos] = true

		if !mergeable(c) {
			merged = append(merged, MergedCell{Cell: c, RunLength: 1})
			continue
		}

		dx, dy := 1, 0
		if c.Type == grid.Ver {
			dx, dy = 0, 1
		}
		runLen := 1
		x, y := c.X+dx, c.Y+dy
		for {
			next, ok := g.Get(x, y)
			if !ok || !mergeable(next) || next.Edges[0] != c.Edges[0] {
				break
			}
			consumed[[2]int{x, y}] = true
			runLen++
			x, y = x+dx, y+dy
		}
		merged = append(merged, MergedCell{Cell: c, RunLength: runLen})
	}
	return merged
}
