package diagramgraph

import "asciigraph/pkg/metric"

// Graph is the concrete upstream value the layout core consumes. Nodes and
// edges are stored in dense, zero-based, creation-order slices, so iterating
// them in id order (spec §6's stability requirement) is simply iterating the
// slice — no sort needed, no map involved.
type Graph struct {
	Flow  metric.Flow
	nodes []*Node
	edges []*Edge
}

// NewGraph creates an empty graph with the given flow orientation.
func NewGraph(flow metric.Flow) *Graph {
	return &Graph{Flow: flow}
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the edge count.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Node returns the node with the given id. Panics on an out-of-range id, the
// same contract the teacher's CSR accessors use for internal indices.
func (g *Graph) Node(id NodeID) *Node { return g.nodes[id] }

// Edge returns the edge with the given id.
func (g *Graph) Edge(id EdgeID) *Edge { return g.edges[id] }

// Nodes returns all nodes in ascending id order. The returned slice is the
// graph's own backing slice; callers must not mutate its length.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Edges returns all edges in ascending id order.
func (g *Graph) Edges() []*Edge { return g.edges }

// HasPredecessor reports whether any edge targets this node (used by
// RankAssigner to seed roots, spec §4.2).
func (g *Graph) HasPredecessor(id NodeID) bool {
	return len(g.nodes[id].InEdges) > 0
}

// Builder assembles a Graph programmatically. This is the module's answer to
// spec §1's "textual parsing ... out of scope, treated as an external
// collaborator": callers that do have a parser build a Graph through this
// API, the same way the teacher's tests build a graph.Graph from an
// already-parsed osmparser.ParseResult rather than from raw OSM bytes.
type Builder struct {
	g *Graph
}

// NewBuilder starts building a graph with the given flow orientation.
func NewBuilder(flow metric.Flow) *Builder {
	return &Builder{g: NewGraph(flow)}
}

// AddNode appends a new node and returns its id. Size defaults to 1x1; call
// SetSize to override once the label width/height is known.
func (b *Builder) AddNode(name string) NodeID {
	id := NodeID(len(b.g.nodes))
	b.g.nodes = append(b.g.nodes, &Node{ID: id, Name: name, CX: 1, CY: 1})
	return id
}

// SetSize sets a node's size in cells. Both dimensions must be >= 1.
func (b *Builder) SetSize(id NodeID, cx, cy int) {
	if cx < 1 {
		cx = 1
	}
	if cy < 1 {
		cy = 1
	}
	n := b.g.nodes[id]
	n.CX, n.CY = cx, cy
}

// SetRank fixes a node's rank to a user-supplied value (spec §4.2: "user
// ranks positive"). RankAssigner records edges into a fixed-rank node but
// never overwrites it.
func (b *Builder) SetRank(id NodeID, rank int) {
	n := b.g.nodes[id]
	n.Rank, n.RankSet, n.RankFixed = rank, true, true
}

// SetGroup records a group/cluster membership attribute. No component in
// this module consumes it (spec §9 Open Questions excludes the group/filler
// subsystem); it is carried only so callers that do track groups have
// somewhere to put the attribute without it being silently dropped.
func (b *Builder) SetGroup(id NodeID, group string) {
	b.g.nodes[id].Group = group
}

// AddEdge appends a new directed or undirected edge and returns its id.
func (b *Builder) AddEdge(src, dst NodeID, directed bool) EdgeID {
	id := EdgeID(len(b.g.edges))
	b.g.edges = append(b.g.edges, &Edge{ID: id, Source: src, Target: dst, Directed: directed})
	b.g.nodes[src].OutEdges = append(b.g.nodes[src].OutEdges, id)
	if dst != src {
		b.g.nodes[dst].InEdges = append(b.g.nodes[dst].InEdges, id)
	} else {
		// Self-loop: the node is its own predecessor for bookkeeping purposes
		// (so chain/rank logic that inspects InEdges sees the loop).
		b.g.nodes[dst].InEdges = append(b.g.nodes[dst].InEdges, id)
	}
	return id
}

// SetLabel sets an edge's label.
func (b *Builder) SetLabel(id EdgeID, label string) {
	b.g.edges[id].Label = label
}

// SetStyle sets an edge's line style.
func (b *Builder) SetStyle(id EdgeID, style Style) {
	b.g.edges[id].Style = style
}

// Build finalizes and returns the graph.
func (b *Builder) Build() *Graph {
	return b.g
}
