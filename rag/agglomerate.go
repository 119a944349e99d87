package rag

import (
	"errors"
	"math"
)

// ProgressFunc is invoked after each merge performed by Agglomerate (and
// AgglomerateAll), with the running merge count. Returning true requests
// cancellation: the loop stops after the current merge, per the
// cooperative-cancellation model of spec.md §5.
type ProgressFunc func(mergesDone int) (stop bool)

// Agglomerate repeatedly merges the cheapest live edge until the queue is
// exhausted or the next edge's priority exceeds threshold (spec.md §4.3).
// Calling Agglomerate again at the same threshold performs no further
// merges (P3); calling it at successively higher thresholds is equivalent
// to one call at the highest threshold (P4), since both orders process
// exactly the same prefix of the priority ordering.
func (g *RAG) Agglomerate(threshold float64, progress ...ProgressFunc) error {
	var cb ProgressFunc
	if len(progress) > 0 {
		cb = progress[0]
	}

	merges := 0
	for {
		edgeID, priority, ok := g.q.popLive()
		if !ok {
			break
		}
		if priority > threshold {
			// Put the entry back so a later call at a higher threshold sees it.
			g.q.push(edgeID, priority)
			break
		}
		e := g.edges[edgeID-1]
		if e.frozen {
			continue
		}
		e.priority = priority

		if _, err := g.Merge(e.u, e.v); err != nil {
			if errors.Is(err, ErrMergeForbidden) {
				e.frozen = true
				continue
			}
			return err
		}
		merges++
		g.metrics.setQueueDepth(g.q.len())

		if cb != nil && cb(merges) {
			break
		}
	}
	return nil
}

// AgglomerateLadder merges only edges with at least one endpoint smaller
// than minSize, used for small-region cleanup after the main agglomeration
// pass (spec.md §4.3). Edges whose endpoints are both already large enough
// are dropped from consideration rather than merged.
func (g *RAG) AgglomerateLadder(minSize int64) error {
	for {
		edgeID, priority, ok := g.q.popLive()
		if !ok {
			return nil
		}
		e := g.edges[edgeID-1]
		if e.frozen {
			continue
		}
		e.priority = priority

		un, err := g.nodeByID(e.u)
		if err != nil {
			return err
		}
		vn, err := g.nodeByID(e.v)
		if err != nil {
			return err
		}
		if un.voxelCount >= minSize && vn.voxelCount >= minSize {
			continue
		}

		if _, err := g.Merge(e.u, e.v); err != nil {
			if errors.Is(err, ErrMergeForbidden) {
				e.frozen = true
				continue
			}
			return err
		}
		g.metrics.setQueueDepth(g.q.len())
	}
}

// AgglomerateAll runs Agglomerate(+Inf): every edge that can ever merge,
// does (spec.md §4.3, UCM production). Edges left frozen by an exclusion
// conflict remain unmerged, and their boundary voxels resolve to +Inf in
// GetUCM.
func (g *RAG) AgglomerateAll(progress ...ProgressFunc) error {
	return g.Agglomerate(math.Inf(1), progress...)
}
