package search

// heapEntry is one candidate neighbor: a row position in the searched dataset
// and its distance to the query target.
type heapEntry struct {
	index    int
	distance float64
}

// neighborHeap is a fixed-capacity max-heap keyed by distance, with a side
// list for candidates exactly tied with the current kth-largest distance.
// Tied candidates never displace heap members; they accumulate in encounter
// order and are emitted after the heap contents.
type neighborHeap struct {
	entries []heapEntry // Max-heap, entries[0] is the current kth distance
	ties    []heapEntry // Candidates tied with entries[0].distance, encounter order
}

// newNeighborHeap creates a heap with room for k strict neighbors.
func newNeighborHeap(k int) *neighborHeap {
	return &neighborHeap{
		entries: make([]heapEntry, 0, k),
		ties:    make([]heapEntry, 0),
	}
}

// size returns the number of strict heap members, ties excluded.
func (h *neighborHeap) size() int {
	return len(h.entries)
}

// numTies returns the number of candidates tied at the kth distance.
func (h *neighborHeap) numTies() int {
	return len(h.ties)
}

// max returns the current kth-largest distance. The heap must be non-empty.
func (h *neighborHeap) max() float64 {
	return h.entries[0].distance
}

// put adds a candidate while the heap is below capacity.
func (h *neighborHeap) put(index int, distance float64) {
	h.entries = append(h.entries, heapEntry{index: index, distance: distance})
	h.up(len(h.entries) - 1)
}

// replaceMax swaps the current kth-largest candidate for a strictly closer
// one. If duplicates of the displaced distance remain in the heap, the
// maximum is unchanged and the displaced candidate becomes a kth tie;
// otherwise the maximum shrank and all accumulated ties are stale.
func (h *neighborHeap) replaceMax(index int, distance float64) {
	displaced := h.entries[0]
	h.entries[0] = heapEntry{index: index, distance: distance}
	h.down(0)
	if h.entries[0].distance == displaced.distance {
		h.ties = append(h.ties, displaced)
	} else {
		h.ties = h.ties[:0]
	}
}

// putTie records a candidate whose distance exactly equals the current
// maximum.
func (h *neighborHeap) putTie(index int, distance float64) {
	h.ties = append(h.ties, heapEntry{index: index, distance: distance})
}

// drain empties the heap and returns all candidates sorted ascending by
// distance, the tied-at-kth candidates last in encounter order. The heap
// maximum equals the tie distance, so the combined slice is non-decreasing.
func (h *neighborHeap) drain() []heapEntry {
	out := make([]heapEntry, len(h.entries)+len(h.ties))

	// Popping the max-heap yields descending order; fill the strict part of
	// the result back to front.
	for i := len(h.entries) - 1; i >= 0; i-- {
		out[i] = h.popMax()
	}
	copy(out[len(out)-len(h.ties):], h.ties)

	return out
}

// popMax removes and returns the current maximum.
func (h *neighborHeap) popMax() heapEntry {
	top := h.entries[0]
	last := len(h.entries) - 1
	h.entries[0] = h.entries[last]
	h.entries = h.entries[:last]
	if last > 0 {
		h.down(0)
	}
	return top
}

func (h *neighborHeap) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.entries[i].distance <= h.entries[parent].distance {
			return
		}
		h.entries[i], h.entries[parent] = h.entries[parent], h.entries[i]
		i = parent
	}
}

func (h *neighborHeap) down(i int) {
	n := len(h.entries)
	for {
		left, right := 2*i+1, 2*i+2
		largest := i
		if left < n && h.entries[left].distance > h.entries[largest].distance {
			largest = left
		}
		if right < n && h.entries[right].distance > h.entries[largest].distance {
			largest = right
		}
		if largest == i {
			return
		}
		h.entries[i], h.entries[largest] = h.entries[largest], h.entries[i]
		i = largest
	}
}
