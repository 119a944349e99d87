// Package pqueue implements the lazy, generation-stamped min-heap the
// agglomeration engine pops edges from.
//
// Entries are never updated or removed in place — a cheaper priority for an
// edge is simply pushed again (the "lazy decrease-key" pattern lvlath's
// dijkstra package uses for its nodePQ). Staleness is detected by comparing
// an entry's stored generation against a separate generation table the
// owner maintains; pqueue itself does not know what a generation means, it
// only carries the stamp through Push/Pop.
package pqueue

import "container/heap"

// Item is one priority-queue entry: an edge id, its priority at the time of
// insertion, and the edge's generation at that time (spec.md §3 Edge,
// §9 Design Notes).
type Item struct {
	EdgeID     int32
	Priority   float64
	Generation uint64
}

// innerHeap implements container/heap.Interface over []*Item ordered by
// ascending priority, then by ascending EdgeID to make pops deterministic on
// ties (spec.md §5 Ordering guarantees: "lower edge-id wins when priorities
// tie").
type innerHeap []*Item

func (h innerHeap) Len() int { return len(h) }
func (h innerHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].EdgeID < h[j].EdgeID
}
func (h innerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *innerHeap) Push(x interface{}) {
	*h = append(*h, x.(*Item))
}

func (h *innerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// PQ is a min-heap of Items. The zero value is not usable; use New.
type PQ struct {
	h innerHeap
}

// New returns an empty, ready-to-use priority queue.
func New() *PQ {
	pq := &PQ{h: make(innerHeap, 0)}
	heap.Init(&pq.h)
	return pq
}

// Push inserts a new entry. Does not deduplicate against existing entries
// for the same EdgeID — stale duplicates are expected and are filtered out
// on Pop by the caller's generation check.
func (pq *PQ) Push(edgeID int32, priority float64, generation uint64) {
	heap.Push(&pq.h, &Item{EdgeID: edgeID, Priority: priority, Generation: generation})
}

// Pop removes and returns the entry with the smallest priority (ties broken
// by smallest EdgeID). The second return value is false if the queue is
// empty.
func (pq *PQ) Pop() (Item, bool) {
	if pq.h.Len() == 0 {
		return Item{}, false
	}
	item := heap.Pop(&pq.h).(*Item)
	return *item, true
}

// Peek returns the smallest entry without removing it.
func (pq *PQ) Peek() (Item, bool) {
	if pq.h.Len() == 0 {
		return Item{}, false
	}
	return *pq.h[0], true
}

// Len returns the number of entries currently queued, including any stale
// ones not yet popped and discarded.
func (pq *PQ) Len() int { return pq.h.Len() }
