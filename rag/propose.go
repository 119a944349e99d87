package rag

// ProposeNext pops the next live, unfrozen edge by priority without
// merging it, for callers — the active-learning engine — that need to
// inspect a candidate merge before deciding whether to execute it
// (spec.md §4.6). The edge is removed from the priority queue regardless
// of what the caller decides; if the caller declines to merge it, it is
// only reconsidered later if one of its endpoints is later rewired by an
// unrelated merge, which re-pushes it at a new priority.
func (g *RAG) ProposeNext() (edgeID, u, v int32, priority float64, ok bool) {
	for {
		id, p, popped := g.q.popLive()
		if !popped {
			return 0, 0, 0, 0, false
		}
		e := g.edges[id-1]
		if !e.alive || e.frozen {
			continue
		}
		return id, e.u, e.v, p, true
	}
}
