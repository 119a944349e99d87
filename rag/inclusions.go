package rag

import (
	"errors"
	"math"
)

// RemoveInclusions merges every inclusion — a node whose adjacency set has
// size exactly 1 — into its sole neighbor, ignoring the priority function
// (spec.md §4.4). Exclusion constraints still apply: an inclusion whose
// sole neighbor shares its nonzero tag is left alone. Removing one
// inclusion can create another, so this iterates to fixpoint (P7: after it
// returns, no node has exactly one neighbor).
func (g *RAG) RemoveInclusions() error {
	for {
		progressed := false
		for id := int32(0); id < int32(len(g.nodes)); id++ {
			nd := g.nodes[id]
			if nd == nil || !nd.alive {
				continue
			}
			if g.resolveNode(id) != id {
				continue // already absorbed by an earlier iteration
			}
			if len(nd.neighbors) != 1 {
				continue
			}

			var neighbor int32
			for w := range nd.neighbors {
				neighbor = w
			}
			edgeID := nd.neighbors[neighbor]
			e := g.edges[edgeID-1]
			e.priority = math.Inf(-1) // spec.md §4.4: priority is effectively -Inf

			if _, err := g.Merge(id, neighbor); err != nil {
				if errors.Is(err, ErrMergeForbidden) {
					continue
				}
				return err
			}
			g.metrics.observeInclusionRemoved()
			progressed = true
		}
		if !progressed {
			return nil
		}
	}
}
