package learn

import "github.com/brainseg/ragseg/vimetrics"

// nodeGTAssignment maps every current node id present in seg to the ground
// truth region it overlaps the most, implementing the "assignment" labeling
// mode's node-to-GT mapping (spec.md §4.6). Ties favor the numerically
// smaller GT label for determinism.
func nodeGTAssignment(seg, gt []int32) map[int32]int32 {
	overlap := make(map[int32]map[int32]int64)
	for i, node := range seg {
		row, ok := overlap[node]
		if !ok {
			row = make(map[int32]int64)
			overlap[node] = row
		}
		row[gt[i]]++
	}
	assignment := make(map[int32]int32, len(overlap))
	for node, row := range overlap {
		var best int32
		var bestCount int64 = -1
		for gtLabel, count := range row {
			if count > bestCount || (count == bestCount && gtLabel < best) {
				best, bestCount = gtLabel, count
			}
		}
		assignment[node] = best
	}
	return assignment
}

// relabel returns a copy of seg with every occurrence of from replaced by
// to, simulating the effect of merging node from into node to without
// mutating the RAG itself.
func relabel(seg []int32, from, to int32) []int32 {
	out := make([]int32, len(seg))
	for i, v := range seg {
		if v == from {
			out[i] = to
		} else {
			out[i] = v
		}
	}
	return out
}

// labelProposal computes y ∈ {1 (merge), 0 (don't merge)} for a candidate
// merge of v into u, given the RAG's current segmentation and the ground
// truth (spec.md §4.6).
func labelProposal(mode LabelingMode, seg, gt []int32, u, v int32) float64 {
	switch mode {
	case LabelAssignment:
		assignment := nodeGTAssignment(seg, gt)
		if assignment[u] == assignment[v] {
			return 1
		}
		return 0
	case LabelVOISign:
		before := vimetrics.VariationOfInformation(seg, gt)
		after := vimetrics.VariationOfInformation(relabel(seg, v, u), gt)
		if after < before {
			return 1
		}
		return 0
	case LabelRandSign:
		before := vimetrics.RandIndex(seg, gt)
		after := vimetrics.RandIndex(relabel(seg, v, u), gt)
		if after > before {
			return 1
		}
		return 0
	default:
		return 0
	}
}
