// Package vimetrics computes the entropy-based Variation of Information and
// the Rand index between two label assignments over the same voxel domain.
//
// These are called internally, mid-loop, by the learning engine's
// "voi-sign" and "rand-sign" labeling modes (spec.md §4.6) to decide whether
// a proposed merge should be labeled "merge". This is deliberately distinct
// from the "evaluation metrics library" spec.md §1 names as an external,
// out-of-scope collaborator — that library scores a *finished* segmentation
// against ground truth for reporting; this package is invoked automatically
// by the core on every proposed merge and never touches I/O.
package vimetrics

import "math"

// jointCounts builds the contingency table between segA and segB: for every
// voxel, increments counts[a][b]. Both slices must have equal length.
func jointCounts(segA, segB []int32) map[int32]map[int32]int64 {
	counts := make(map[int32]map[int32]int64)
	for i := range segA {
		a, b := segA[i], segB[i]
		row, ok := counts[a]
		if !ok {
			row = make(map[int32]int64)
			counts[a] = row
		}
		row[b]++
	}
	return counts
}

func marginals(joint map[int32]map[int32]int64) (rowTotals, colTotals map[int32]int64) {
	rowTotals = make(map[int32]int64)
	colTotals = make(map[int32]int64)
	for a, row := range joint {
		for b, n := range row {
			rowTotals[a] += n
			colTotals[b] += n
		}
	}
	return
}

// VariationOfInformation returns H(A|B) + H(B|A), the entropy-based
// distance between two partitions of the same N voxels (spec.md Glossary:
// VI). Returns 0 for empty or length-mismatched input.
func VariationOfInformation(segA, segB []int32) float64 {
	if len(segA) != len(segB) || len(segA) == 0 {
		return 0
	}
	n := float64(len(segA))
	joint := jointCounts(segA, segB)
	rowTotals, colTotals := marginals(joint)

	hA := entropy(rowTotals, n)
	hB := entropy(colTotals, n)
	mi := mutualInformation(joint, rowTotals, colTotals, n)

	vi := hA + hB - 2*mi
	if vi < 0 {
		vi = 0
	}
	return vi
}

func entropy(totals map[int32]int64, n float64) float64 {
	var h float64
	for _, c := range totals {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log(p)
	}
	return h
}

func mutualInformation(joint map[int32]map[int32]int64, rowTotals, colTotals map[int32]int64, n float64) float64 {
	var mi float64
	for a, row := range joint {
		pa := float64(rowTotals[a]) / n
		for b, nab := range row {
			if nab == 0 {
				continue
			}
			pab := float64(nab) / n
			pb := float64(colTotals[b]) / n
			mi += pab * math.Log(pab/(pa*pb))
		}
	}
	return mi
}

// RandIndex returns the fraction of voxel pairs on which segA and segB
// agree (both same-cluster or both different-cluster), spec.md Glossary.
// Computed from the contingency table in O(labels²) rather than O(n²)
// pairs.
func RandIndex(segA, segB []int32) float64 {
	if len(segA) != len(segB) || len(segA) == 0 {
		return 1
	}
	n := int64(len(segA))
	joint := jointCounts(segA, segB)
	rowTotals, colTotals := marginals(joint)

	var sumNij2, sumAi2, sumBj2 int64
	for _, row := range joint {
		for _, nij := range row {
			sumNij2 += pairs(nij)
		}
	}
	for _, ai := range rowTotals {
		sumAi2 += pairs(ai)
	}
	for _, bj := range colTotals {
		sumBj2 += pairs(bj)
	}

	totalPairs := pairs(n)
	if totalPairs == 0 {
		return 1
	}
	agree := sumNij2 + (totalPairs - sumAi2 - sumBj2 + sumNij2)
	return float64(agree) / float64(totalPairs)
}

func pairs(n int64) int64 {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
