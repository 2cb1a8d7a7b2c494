// Package grid implements the sparse cell map that is the single source of
// truth for occupancy (spec §4.1): a mapping (x,y) -> Cell, plus a secondary
// spatial index over claimed node rectangles for neighborhood queries.
//
// The point-occupancy map is a flat hash map keyed by a packed (x,y), the
// same cellKey-packing technique the teacher's routing/snap.go uses to avoid
// per-cell slice/map-of-map allocation. The neighborhood index is an r-tree
// (github.com/tidwall/rtree) — a dependency the teacher's go.mod carries but
// never actually imports; here it does real work, answering "which nodes
// are near this point" for the placer's gutter check, a query a flat map
// cannot serve without an O(n) scan.
package grid

import "asciigraph/pkg/diagramgraph"

// Kind discriminates what a Cell represents. Cells are small value-like
// records (spec §9): replacing a Cell replaces the whole tagged record, it
// is never mutated component-by-component in place.
type Kind uint8

const (
	KindNode Kind = iota
	KindEdge
	// KindGroupFiller would back group/cluster filler cells. Spec §9 Open
	// Questions excludes that subsystem from this module; the tag exists so
	// Cell's shape matches the spec's three-way discriminant, but no
	// component ever constructs one.
	KindGroupFiller
)

// EdgeType is the low-byte discriminant of an EDGE cell's 16-bit type field
// (spec §3). This lists the subset the renderer's mapping table (spec §6)
// names explicitly plus the joint/corner types routing and straightening
// need; it does not enumerate all 24 values the spec allows for (double/
// dotted/dashed/wave line-style variants of the same geometry), since no
// component in this module produces more than one style's worth of cells
// for a given geometric shape — style is carried on the Edge, not baked
// into a separate per-style EdgeType value.
type EdgeType uint8

const (
	Hor EdgeType = iota + 1
	Ver
	Cross
	CornerNE
	CornerNW
	CornerSE
	CornerSW
	TJointN
	TJointE
	TJointS
	TJointW
	JoinHor
	JoinVer
)

// Flags is the high-byte orthogonal flags field of an EDGE cell (spec §3).
type Flags uint8

const (
	FlagArrowN Flags = 1 << iota
	FlagArrowE
	FlagArrowS
	FlagArrowW
	FlagLabel
	FlagStart
	FlagEnd
)

// HasArrow reports whether any arrowhead bit is set.
func (f Flags) HasArrow() bool {
	return f&(FlagArrowN|FlagArrowE|FlagArrowS|FlagArrowW) != 0
}

// Axis classifies an EdgeType as horizontal, vertical, or neither (joints/
// crosses, which already span both axes) — used by the router to decide
// whether placing a new cell on top of an existing one is a same-axis
// overlap (forbidden) or an orthogonal crossing (upgradable to CROSS).
func (t EdgeType) Axis() (horizontal, vertical bool) {
	switch t {
	case Hor, JoinHor:
		return true, false
	case Ver, JoinVer:
		return false, true
	default:
		return false, false
	}
}

// Cell is one grid square. X/Y are carried on the cell itself (not just
// implied by the map key) so a Cell extracted during iteration is
// self-describing for the compactor and renderer.
type Cell struct {
	X, Y int
	Kind Kind

	// NODE fields.
	Node       diagramgraph.NodeID
	OriginX    int // top-left of the node's rectangle
	OriginY    int
	SpanRight  bool // true if a further node cell continues to the east
	SpanBottom bool // true if a further node cell continues to the south

	// EDGE fields.
	Type  EdgeType
	Flags Flags
	// Edges lists the edge(s) occupying this cell: length 1 for ordinary
	// HOR/VER/corner cells, length 2 for a CROSS or T-joint cell shared by
	// two edges.
	Edges []diagramgraph.EdgeID
}
