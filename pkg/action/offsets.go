package action

import "asciigraph/pkg/diagramgraph"

// parallelKey groups edges that will route between the same pair of nodes:
// an ordered (source,target) pair for directed edges, an unordered pair for
// undirected ones, so A->B and B->A don't collide for directed graphs but do
// for undirected ones (spec §4.4).
type parallelKey struct {
	a, b diagramgraph.NodeID
}

func keyFor(e *diagramgraph.Edge) parallelKey {
	if e.Directed {
		return parallelKey{e.Source, e.Target}
	}
	lo, hi := e.Source, e.Target
	if hi < lo {
		lo, hi = hi, lo
	}
	return parallelKey{lo, hi}
}

// offsetSequence returns the i-th offset in the sequence 0, +1, -1, +2, -2,
// ... (spec §4.4).
func offsetSequence(i int) int {
	if i == 0 {
		return 0
	}
	if i%2 == 1 {
		return (i + 1) / 2
	}
	return -(i / 2)
}

// assignParallelOffsets walks edges in ascending id (= insertion) order and
// gives every member of a parallel-edge group its offset. Self-loops are
// skipped — they don't share a grid path with anything to offset from.
func assignParallelOffsets(g *diagramgraph.Graph) {
	counts := make(map[parallelKey]int)
	for _, e := range g.Edges() {
		if e.IsSelfLoop() {
			continue
		}
		k := keyFor(e)
		idx := counts[k]
		counts[k] = idx + 1
		e.Offset = offsetSequence(idx)
	}
}
