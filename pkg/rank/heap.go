package rank

import "asciigraph/pkg/diagramgraph"

// heapItem is one candidate-rank push: node id plus the candidate rank a
// predecessor proposed for it. The winning candidate is whichever is popped
// first — the one with the smallest |rank|, ties broken by node id.
type heapItem struct {
	node      diagramgraph.NodeID
	candidate int
}

func priority(it heapItem) int {
	if it.candidate < 0 {
		return -it.candidate
	}
	return it.candidate
}

func less(a, b heapItem) bool {
	pa, pb := priority(a), priority(b)
	if pa != pb {
		return pa < pb
	}
	return a.node < b.node
}

// minHeap is a concrete-typed binary min-heap, patterned on the teacher's
// routing/dijkstra.go MinHeap — concrete types avoid interface boxing, and
// staleness (a node popped after it was already finalized by an earlier,
// lower-priority pop) is handled by the caller rather than by a decrease-key
// operation, exactly like Dijkstra's "if d <= dist[u]" stale-entry check.
type minHeap struct {
	items []heapItem
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) Push(node diagramgraph.NodeID, candidate int) {
	h.items = append(h.items, heapItem{node: node, candidate: candidate})
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) Pop() heapItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *minHeap) siftUp(i int) {
	item := h.items[i]
	for i > 0 {
		parent := (i - 1) / 2
		if !less(item, h.items[parent]) {
			break
		}
		h.items[i] = h.items[parent]
		i = parent
	}
	h.items[i] = item
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	item := h.items[i]
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		cand := item
		if left < n && less(h.items[left], cand) {
			smallest, cand = left, h.items[left]
		}
		if right < n && less(h.items[right], cand) {
			smallest, cand = right, h.items[right]
		}
		if smallest == i {
			break
		}
		h.items[i] = h.items[smallest]
		i = smallest
	}
	h.items[i] = item
}
