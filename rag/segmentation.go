package rag

import (
	"fmt"
	"math"
)

// GetSegmentation returns the current partition as a label volume the same
// shape as the RAG's input: every original voxel resolves through the
// merge-redirect chain to its node's current id. Voxels that were never
// part of a node (label 0 under nozeros mode) stay 0.
func (g *RAG) GetSegmentation() []int32 {
	out := make([]int32, len(g.labels))
	resolved := make(map[int32]int32, len(g.nodes))
	zeroIsNode := !g.nozeros && len(g.nodes) > 0 && g.nodes[0] != nil

	for i, lbl := range g.labels {
		if lbl == 0 && !zeroIsNode {
			out[i] = 0
			continue
		}
		root, ok := resolved[lbl]
		if !ok {
			root = g.resolveNode(lbl)
			resolved[lbl] = root
		}
		out[i] = root
	}
	return out
}

// GetUCM returns the Ultrametric Contour Map: a float volume the same
// shape as the input, where each recorded boundary voxel holds the
// priority at which its incident regions first merged, and every other
// voxel (including boundaries that never merged) holds +Inf (spec.md
// §4.3). Requires WithUCMRecording(true) at construction.
func (g *RAG) GetUCM() ([]float64, error) {
	if !g.recordUCM {
		return nil, fmt.Errorf("%w: UCM recording was not enabled (use WithUCMRecording)", ErrInvalidInput)
	}
	out := make([]float64, len(g.labels))
	for i := range out {
		out[i] = math.Inf(1)
	}
	for voxelIdx, edgeIDs := range g.boundaryEdgesOf {
		best := math.Inf(1)
		for _, id := range edgeIDs {
			root := g.resolveEdgeOwner(id)
			if p, ok := g.edgeMergedAt[root]; ok && p < best {
				best = p
			}
		}
		out[voxelIdx] = best
	}
	return out, nil
}
