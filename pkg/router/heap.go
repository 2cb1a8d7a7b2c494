package router

// stateItem is one A* open-set entry (spec §4.6): f = g + h ordering, ties
// broken by lower h then by insertion order — never by map/pointer
// iteration order, so two runs over the same input expand states in the
// same order and produce byte-identical paths.
type stateItem struct {
	s   state
	g   int
	h   int
	seq int
}

func lessItem(a, b stateItem) bool {
	fa, fb := a.g+a.h, b.g+b.h
	if fa != fb {
		return fa < fb
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

// openHeap is a concrete-typed binary min-heap, the same shape as
// rank.minHeap and the teacher's routing/dijkstra.go MinHeap — pushes carry
// their own priority, stale pops (a state settled more cheaply by an
// earlier pop) are the caller's responsibility to detect via gScore, not
// this heap's.
type openHeap struct {
	items []stateItem
}

func (h *openHeap) Len() int { return len(h.items) }

func (h *openHeap) Push(it stateItem) {
	h.items = append(h.items, it)
	h.siftUp(len(h.items) - 1)
}

func (h *openHeap) Pop() stateItem {
	n := len(h.items)
	top := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return top
}

func (h *openHeap) siftUp(i int) {
	it := h.items[i]
	for i > 0 {
		parent := (i - 1) / 2
		if !lessItem(it, h.items[parent]) {
			break
		}
		h.items[i] = h.items[parent]
		i = parent
	}
	h.items[i] = it
}

func (h *openHeap) siftDown(i int) {
	n := len(h.items)
	it := h.items[i]
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		cand := it
		if left < n && lessItem(h.items[left], cand) {
			smallest, cand = left, h.items[left]
		}
		if right < n && lessItem(h.items[right], cand) {
			smallest, cand = right, h.items[right]
		}
		if smallest == i {
			break
		}
		h.items[i] = h.items[smallest]
		i = smallest
	}
	h.items[i] = it
}
