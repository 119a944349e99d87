package featuremgr

import "math"

// Concat builds the classifier-facing feature vector for a proposed merge,
// in the fixed order spec.md §4.7 mandates: left-node features, right-node
// features, edge features, and — when includeDiff is true — the absolute
// difference of left and right node features. The order must never change
// between training and inference.
func Concat(left, right, edge []float64, includeDiff bool) []float64 {
	size := len(left) + len(right) + len(edge)
	if includeDiff && len(left) == len(right) {
		size += len(left)
	}
	out := make([]float64, 0, size)
	out = append(out, left...)
	out = append(out, right...)
	out = append(out, edge...)
	if includeDiff && len(left) == len(right) {
		for i := range left {
			out = append(out, math.Abs(left[i]-right[i]))
		}
	}
	return out
}

// Dim returns the length Concat would produce for feature vectors of the
// given dimensions, without building one. Used to validate dataset shapes
// up front.
func Dim(nodeDim, edgeDim int, includeDiff bool) int {
	d := nodeDim*2 + edgeDim
	if includeDiff {
		d += nodeDim
	}
	return d
}
