package rag

import "github.com/brainseg/ragseg/pqueue"

// pq adds per-edge generation tracking on top of pqueue.PQ (spec.md §9,
// "Stale queue entries"). currentGeneration is the source of truth: a
// popped item whose generation doesn't match is stale and is discarded
// without being returned to the caller.
type pq struct {
	inner             *pqueue.PQ
	currentGeneration []uint64 // index == edge id
}

func newPQ(capacity int) *pq {
	return &pq{
		inner:             pqueue.New(),
		currentGeneration: make([]uint64, capacity),
	}
}

func (q *pq) ensureCapacity(edgeID int32) {
	for int32(len(q.currentGeneration)) <= edgeID {
		q.currentGeneration = append(q.currentGeneration, 0)
	}
}

// push inserts edgeID at priority, bumping its generation so any
// previously queued entries for the same edge become stale.
func (q *pq) push(edgeID int32, priority float64) {
	q.ensureCapacity(edgeID)
	q.currentGeneration[edgeID]++
	q.inner.Push(edgeID, priority, q.currentGeneration[edgeID])
}

// popLive pops entries until it finds one whose generation is still
// current, or the queue empties. Returns ok=false when nothing live
// remains.
func (q *pq) popLive() (edgeID int32, priority float64, ok bool) {
	for {
		item, has := q.inner.Pop()
		if !has {
			return 0, 0, false
		}
		if int32(len(q.currentGeneration)) > item.EdgeID && q.currentGeneration[item.EdgeID] == item.Generation {
			return item.EdgeID, item.Priority, true
		}
		// stale: a newer push (or a deletion) superseded this entry.
	}
}

// invalidate bumps an edge's generation without pushing a replacement,
// so any queued entry for it is treated as stale on pop.
func (q *pq) invalidate(edgeID int32) {
	q.ensureCapacity(edgeID)
	q.currentGeneration[edgeID]++
}

func (q *pq) len() int { return q.inner.Len() }
