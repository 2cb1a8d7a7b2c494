// Package action implements ActionStackBuilder (spec §4.4): turning ranked,
// chained nodes into an ordered queue of placement and routing work items.
package action

import "asciigraph/pkg/diagramgraph"

// Kind discriminates an Action's tagged variant (spec §3).
type Kind uint8

const (
	PlaceNode Kind = iota
	PlaceChained
	TraceEdge
	SelfLoop
)

func (k Kind) String() string {
	switch k {
	case PlaceNode:
		return "PLACE_NODE"
	case PlaceChained:
		return "PLACE_CHAINED"
	case TraceEdge:
		return "TRACE_EDGE"
	case SelfLoop:
		return "SELF_LOOP"
	default:
		return "UNKNOWN"
	}
}

// Action is one unit of layout work. Node/Parent/ParentEdge are meaningful
// only for PLACE_NODE/PLACE_CHAINED; Edge only for TRACE_EDGE/SELF_LOOP.
// Tries and Strategy are mutated by the layout engine, not by this package:
// Tries counts retries toward the global/local backtracking budget (spec
// §4.7), Strategy is the cursor into the placer's strategy cascade so a retry resumes where the last attempt left off instead of
// repeating it.
type Action struct {
	Kind Kind

	Node       diagramgraph.NodeID
	Parent     diagramgraph.NodeID
	ParentEdge diagramgraph.EdgeID

	Edge diagramgraph.EdgeID

	Tries    int
	Strategy int
}
