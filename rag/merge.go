package rag

import (
	"fmt"
	"time"
)

// Merge absorbs one of u, v into the other and returns the surviving node
// id (spec.md §4.2). The lower id always survives — a deterministic
// tie-break that makes repeated runs over the same inputs produce
// identical merge sequences (spec.md §5, Ordering guarantees).
func (g *RAG) Merge(u, v int32) (int32, error) {
	start := time.Now()

	un, err := g.nodeByID(u)
	if err != nil {
		return 0, err
	}
	vn, err := g.nodeByID(v)
	if err != nil {
		return 0, err
	}
	u, v = un.id, vn.id
	if u == v {
		return u, nil
	}

	if un.exclusionTag != 0 && un.exclusionTag == vn.exclusionTag {
		g.metrics.observeForbidden()
		return 0, fmt.Errorf("%w: nodes %d and %d share exclusion tag %d", ErrMergeForbidden, u, v, un.exclusionTag)
	}

	s, a := u, v
	sn, an := un, vn
	if a < s {
		s, a = a, s
		sn, an = an, sn
	}

	edgeID, ok := sn.neighbors[a]
	if !ok {
		return 0, fmt.Errorf("%w: no edge between %d and %d", ErrEdgeNotFound, s, a)
	}
	e := g.edges[edgeID-1]
	if e.frozen {
		return 0, fmt.Errorf("%w: edge %d", ErrEdgeFrozen, edgeID)
	}
	mergePriority := e.priority

	// Step 3: combine node feature caches and voxel counts (I4).
	sn.cache.Combine(an.cache)
	sn.voxelCount += an.voxelCount

	// Step 4: rewire every other edge incident to the absorbed node.
	for w, wEdgeID := range an.neighbors {
		if w == s {
			continue
		}
		wEdge := g.edges[wEdgeID-1]
		wn := g.nodes[g.resolveNode(w)]

		if existingID, already := sn.neighbors[w]; already {
			existing := g.edges[existingID-1]
			existing.cache.Combine(wEdge.cache)
			existing.boundaryCount += wEdge.boundaryCount
			existing.generation++
			// wEdge's identity is absorbed into existing: its UCM lineage
			// now resolves through existing, not through its own id.
			g.edgeOwner[wEdgeID] = existingID
			g.unlinkEdge(wEdge, wn, an)

			p, perr := g.priority(g, existing.id)
			if perr != nil {
				return 0, perr
			}
			existing.priority = p
			g.q.push(existing.id, p)
		} else {
			// Rename (w, a) to (w, s) in place: the edge id and its UCM
			// lineage are unchanged, only its endpoints move.
			if wEdge.u == a {
				wEdge.u = s
			} else {
				wEdge.v = s
			}
			if wEdge.u > wEdge.v {
				wEdge.u, wEdge.v = wEdge.v, wEdge.u
			}
			wEdge.generation++
			delete(wn.neighbors, a)
			wn.neighbors[s] = wEdge.id
			sn.neighbors[w] = wEdge.id

			p, perr := g.priority(g, wEdge.id)
			if perr != nil {
				return 0, perr
			}
			wEdge.priority = p
			g.q.push(wEdge.id, p)
		}
	}

	// Step 5: delete edge (s, a) and node a. This edge is the one that
	// was genuinely consumed by the merge, as opposed to combined/renamed
	// away above, so its UCM event is recorded here.
	delete(sn.neighbors, a)
	e.alive = false
	g.q.invalidate(e.id)
	root := g.resolveEdgeOwner(e.id)
	g.edgeMergedAt[root] = mergePriority

	an.alive = false
	g.redirect[a] = s

	g.metrics.observeMerge(time.Since(start))
	return s, nil
}

// unlinkEdge removes e from both of its endpoints' neighbor maps and marks
// it dead, without recording a UCM merge event: used when an edge's
// identity is absorbed into another surviving edge rather than directly
// consumed by a node merge.
func (g *RAG) unlinkEdge(e *Edge, wNode, aNode *Node) {
	e.alive = false
	g.q.invalidate(e.id)
	delete(wNode.neighbors, aNode.id)
	delete(aNode.neighbors, wNode.id)
}
