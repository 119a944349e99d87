package rag

import (
	"fmt"

	"github.com/brainseg/ragseg/voxel"
)

// NewRAG builds a Region Adjacency Graph from a label volume and a
// boundary-probability map by a single sweep (spec.md §4.1).
//
// Boundary-voxel attribution is resolved as follows (spec.md §9 Open
// Questions, "canonical boundary voxel assignment"): neighbors are visited
// only in the forward half of the connectivity pattern (the offset whose
// first nonzero axis component is positive), so every spatially adjacent
// voxel pair is visited exactly once; the boundary contribution — both the
// probability value accumulated into the edge cache and, if UCM recording
// is enabled, the voxel index credited with that edge — is always
// attributed to the forward neighbor v'. A junction voxel labeled 0 under
// nozeros mode (three or more distinct regions meeting at one point)
// contributes to every distinct incident nonzero-label pair, per the
// other resolved Open Question.
func NewRAG(labels *voxel.LabelVolume, prob *voxel.ProbabilityVolume, opts ...Option) (*RAG, error) {
	if labels == nil || prob == nil {
		return nil, fmt.Errorf("%w: nil volume", ErrInvalidInput)
	}
	if !labels.Shape.Equal(prob.SpatialShape) {
		return nil, fmt.Errorf("%w: label/probability shape mismatch", ErrInvalidInput)
	}
	if labels.Shape.NumVoxels() == 0 {
		return nil, fmt.Errorf("%w: empty volume", ErrInvalidInput)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.exclusion != nil && !cfg.exclusion.Shape.Equal(labels.Shape) {
		return nil, fmt.Errorf("%w: exclusion volume shape mismatch", ErrInvalidInput)
	}

	var maxLabel int32
	for _, v := range labels.Labels {
		if v < 0 {
			return nil, fmt.Errorf("%w: negative label %d", ErrInvalidInput, v)
		}
		if v > maxLabel {
			maxLabel = v
		}
	}

	g := &RAG{
		shape:        labels.Shape,
		connectivity: cfg.connectivity,
		nozeros:      cfg.nozeros,
		fm:           cfg.fm,
		priority:     cfg.priority,
		classifier:   cfg.classifier,
		labels:       append([]int32(nil), labels.Labels...),
		nodes:        make([]*Node, maxLabel+1),
		redirect:     make([]int32, maxLabel+1),
		edgeOwner:    make(map[int32]int32),
		edgeMergedAt: make(map[int32]float64),
		recordUCM:    cfg.recordUCM,
		metrics:      cfg.metrics,
	}
	for id := range g.redirect {
		g.redirect[id] = int32(id)
	}
	if g.recordUCM {
		g.boundaryEdgesOf = make(map[int64][]int32)
	}

	pairEdge := make(map[int64]int32)
	g.q = newPQ(8)

	var tagCounts map[int32]map[int32]int64
	if cfg.exclusion != nil {
		tagCounts = make(map[int32]map[int32]int64)
	}

	ensureNode := func(id int32) *Node {
		nd := g.nodes[id]
		if nd == nil {
			nd = &Node{id: id, alive: true, cache: g.fm.NewNodeCache(), neighbors: make(map[int32]int32)}
			g.nodes[id] = nd
		}
		return nd
	}

	ensureEdge := func(a, b int32) *Edge {
		u, v := a, b
		if u > v {
			u, v = v, u
		}
		key := int64(u)<<32 | int64(uint32(v))
		if id, ok := pairEdge[key]; ok {
			return g.edges[id-1]
		}
		g.nextEdgeID++
		id := g.nextEdgeID
		e := &Edge{id: id, alive: true, u: u, v: v, cache: g.fm.NewEdgeCache()}
		g.edges = append(g.edges, e)
		pairEdge[key] = id
		g.edgeOwner[id] = id
		un, vn := ensureNode(u), ensureNode(v)
		un.neighbors[v] = id
		vn.neighbors[u] = id
		return e
	}

	recordBoundary := func(voxelIdx int64, edgeID int32) {
		if !g.recordUCM {
			return
		}
		g.boundaryEdgesOf[voxelIdx] = append(g.boundaryEdgesOf[voxelIdx], edgeID)
	}

	accumulateTag := func(node int32, voxelIdx int64) {
		if tagCounts == nil {
			return
		}
		tag := cfg.exclusion.Tags[voxelIdx]
		if tag == 0 {
			return
		}
		m, ok := tagCounts[node]
		if !ok {
			m = make(map[int32]int64)
			tagCounts[node] = m
		}
		m[tag]++
	}

	forward := forwardOffsets(voxel.NeighborOffsets(g.connectivity))
	total := g.shape.NumVoxels()

	for idx := int64(0); idx < total; idx++ {
		a := g.labels[idx]
		coord := labels.Coordinate(idx)

		if a != 0 {
			nd := ensureNode(a)
			g.fm.UpdateNode(nd.cache, prob.At(idx))
			nd.voxelCount++
			accumulateTag(a, idx)

			for _, off := range forward {
				nc := voxel.Add(coord, off)
				if !labels.InBounds(nc) {
					continue
				}
				nidx := labels.Index(nc)
				b := g.labels[nidx]
				if b == a {
					continue
				}
				if b == 0 && g.nozeros {
					continue // attributed when the 0-voxel itself is visited
				}
				e := ensureEdge(a, b)
				value := prob.At(nidx)
				g.fm.UpdateEdge(e.cache, value)
				e.boundaryCount++
				recordBoundary(nidx, e.id)
			}
			continue
		}

		// a == 0.
		if !g.nozeros {
			nd := ensureNode(0)
			g.fm.UpdateNode(nd.cache, prob.At(idx))
			nd.voxelCount++
			accumulateTag(0, idx)
			for _, off := range forward {
				nc := voxel.Add(coord, off)
				if !labels.InBounds(nc) {
					continue
				}
				nidx := labels.Index(nc)
				b := g.labels[nidx]
				if b == 0 {
					continue
				}
				e := ensureEdge(0, b)
				value := prob.At(nidx)
				g.fm.UpdateEdge(e.cache, value)
				e.boundaryCount++
				recordBoundary(nidx, e.id)
			}
			continue
		}

		// nozeros: voxel is boundary material, never a node of its own.
		var distinct []int32
		seen := make(map[int32]bool)
		allOffsets := voxel.NeighborOffsets(g.connectivity)
		for _, off := range allOffsets {
			nc := voxel.Add(coord, off)
			if !labels.InBounds(nc) {
				continue
			}
			b := g.labels[labels.Index(nc)]
			if b != 0 && !seen[b] {
				seen[b] = true
				distinct = append(distinct, b)
			}
		}
		pv := prob.At(idx)
		for i := 0; i < len(distinct); i++ {
			for j := i + 1; j < len(distinct); j++ {
				e := ensureEdge(distinct[i], distinct[j])
				g.fm.UpdateEdge(e.cache, pv)
				e.boundaryCount++
				recordBoundary(idx, e.id)
			}
		}
	}

	if cfg.exclusion != nil {
		for id, counts := range tagCounts {
			nd := g.nodes[id]
			if nd == nil {
				continue
			}
			var bestTag int32
			var bestCount int64
			for tag, c := range counts {
				if c > bestCount {
					bestTag, bestCount = tag, c
				}
			}
			nd.exclusionTag = bestTag
		}
		g.enforceExclusion()
	}

	for _, e := range g.edges {
		if !e.alive {
			continue
		}
		p, err := g.priority(g, e.id)
		if err != nil {
			return nil, err
		}
		e.priority = p
		g.q.push(e.id, p)
	}
	g.metrics.setQueueDepth(g.q.len())

	return g, nil
}

// enforceExclusion deletes every edge whose endpoints share a nonzero
// exclusion tag (spec.md §4.1, I5).
func (g *RAG) enforceExclusion() {
	for _, e := range g.edges {
		if !e.alive {
			continue
		}
		un, vn := g.nodes[e.u], g.nodes[e.v]
		if un.exclusionTag != 0 && un.exclusionTag == vn.exclusionTag {
			g.deleteEdge(e)
		}
	}
}

// deleteEdge removes e from both endpoints' neighbor maps and marks it
// dead, without recording a UCM merge event (used for exclusion-time
// deletion and inclusion-neighbor cleanup, as opposed to mergeConsumeEdge
// which additionally records edgeMergedAt).
func (g *RAG) deleteEdge(e *Edge) {
	e.alive = false
	g.q.invalidate(e.id)
	if un := g.nodes[e.u]; un != nil {
		delete(un.neighbors, e.v)
	}
	if vn := g.nodes[e.v]; vn != nil {
		delete(vn.neighbors, e.u)
	}
}

// forwardOffsets keeps exactly one direction per antipodal offset pair: the
// one whose first nonzero coordinate is positive. This makes every voxel
// adjacency visited exactly once during construction, matching I3.
func forwardOffsets(offsets [][]int) [][]int {
	out := make([][]int, 0, len(offsets)/2+1)
	for _, off := range offsets {
		if isForward(off) {
			out = append(out, off)
		}
	}
	return out
}

func isForward(off []int) bool {
	for _, c := range off {
		if c != 0 {
			return c > 0
		}
	}
	return false
}
