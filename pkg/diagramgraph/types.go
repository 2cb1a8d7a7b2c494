// Package diagramgraph is the concrete implementation of the abstract Graph
// value the layout core consumes (spec §6): node/edge iteration in stable id
// order, and per-element attribute lookup for flow, rank, label, style and
// offset. Textual parsing into this shape is out of scope (spec §1) — graphs
// are assembled programmatically through Builder, the way the teacher's
// graph.Build assembles a CSR graph from an already-parsed edge list.
package diagramgraph

import "asciigraph/pkg/metric"

// NodeID is a dense, zero-based node identifier assigned in creation order.
type NodeID int32

// EdgeID is a dense, zero-based edge identifier assigned in creation order.
type EdgeID int32

// NoNode is the sentinel "absent" node id, mirroring the teacher's noNode
// (routing/unpack.go) used throughout predecessor/back-pointer fields.
const NoNode NodeID = -1

// NoEdge is the sentinel "absent" edge id.
const NoEdge EdgeID = -1

// Style is the edge line style attribute from spec §3.
type Style uint8

const (
	StyleSolid Style = iota
	StyleDouble
	StyleDotted
	StyleDashed
	StyleWave
)

// Node is one graph vertex. Rank and grid position are unset (Placed=false,
// RankSet=false) until the corresponding core subsystem assigns them — the
// zero value of Node is never a valid placed node, so Placed/RankSet guard
// every read of X/Y/Rank.
type Node struct {
	ID   NodeID
	Name string

	Rank      int
	RankSet   bool // true once RankAssigner or the user has fixed a rank
	RankFixed bool // true if the user supplied Rank (never auto-overwritten)

	CX, CY int // size in cells, >=1x1

	X, Y   int // grid position of the top-left cell
	Placed bool

	Group string // group/cluster membership; spec excludes the subsystem that
	// would consume this (§9 Open Questions) — carried for forward
	// compatibility but never read by any component in this module.

	OutEdges []EdgeID // outgoing edges, in creation order
	InEdges  []EdgeID // incoming edges, in creation order
}

// Edge is one graph edge. A self-loop has Source == Target.
type Edge struct {
	ID       EdgeID
	Source   NodeID
	Target   NodeID
	Directed bool
	Label    string
	Style    Style
	Offset   int // parallel-offset: 0, +1, -1, +2, -2, ... (spec §4.4)

	Path    []metric.Point // ordered cell coordinates after routing; nil until routed
	Routed  bool
	Crosses int // CROSS cells this edge's path participates in (for scoring, §8 P8)
}

// IsSelfLoop reports whether the edge's source and target are the same node.
func (e *Edge) IsSelfLoop() bool {
	return e.Source == e.Target
}

// Rect returns the node's placed rectangle. Only meaningful when Placed.
func (n *Node) Rect() metric.Rect {
	return metric.Rect{X: n.X, Y: n.Y, CX: n.CX, CY: n.CY}
}
