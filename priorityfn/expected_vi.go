package priorityfn

import (
	"math"

	"github.com/brainseg/ragseg/featuremgr"
)

// NewExpectedVIChange builds priority function 3 (spec.md §4.5): the
// expected change in Variation of Information if the edge's two endpoints
// are merged.
//
// The formula is pinned down as follows, resolving the Open Question of
// spec.md §9. Let n1, n2 be the two endpoints' voxel counts and
// p1 = n1/(n1+n2), p2 = n2/(n1+n2). The local entropy contribution these
// two regions make to VI, were they kept apart, is the binary-entropy term
//
//	H = -(p1*ln(p1) + p2*ln(p2))
//
// (this is exactly the term the standard VI decomposition assigns to a
// pair of sibling clusters of relative size p1, p2: merging them correctly
// removes it, merging them incorrectly re-introduces it as an artificial
// split cost). With p the classifier's estimated probability the merge is
// correct and beta a configurable penalty on false merges, the expected
// change is
//
//	beta*(1-p)*H - p*H = H * (beta*(1-p) - p)
//
// Lower is better, matching every other priority function's convention
// (spec.md §9: normalize on "low priority = should merge").
func NewExpectedVIChange(beta float64) PriorityFunc {
	return func(g RAGView, edgeID int32) (float64, error) {
		u, v, err := g.EdgeEndpoints(edgeID)
		if err != nil {
			return 0, err
		}
		leftFeat, err := g.NodeFeatureVector(u)
		if err != nil {
			return 0, err
		}
		rightFeat, err := g.NodeFeatureVector(v)
		if err != nil {
			return 0, err
		}
		edgeFeat, err := g.EdgeFeatureVector(edgeID, leftFeat, rightFeat)
		if err != nil {
			return 0, err
		}

		n1, n2 := sizeOf(leftFeat), sizeOf(rightFeat)
		h := localEntropy(n1, n2)

		p, err := g.Classify(featuremgr.Concat(leftFeat, rightFeat, edgeFeat, true))
		if err != nil {
			return 0, err
		}

		return h * (beta*(1-p) - p), nil
	}
}

// sizeOf recovers a region's voxel count from its feature vector by reading
// the last node feature component as log1p(count), which is what
// MomentsManager.NodeFeatures puts there. HistogramManager has no count
// component: its last component is a bin frequency in [0,1], read here as a
// size between 1 and e-1. Sizes below 1 are clamped to 1.
func sizeOf(nodeFeat []float64) float64 {
	if len(nodeFeat) == 0 {
		return 1
	}
	last := nodeFeat[len(nodeFeat)-1]
	count := math.Expm1(last)
	if count < 1 {
		return 1
	}
	return count
}

func localEntropy(n1, n2 float64) float64 {
	n := n1 + n2
	if n <= 0 {
		return 0
	}
	p1, p2 := n1/n, n2/n
	var h float64
	if p1 > 0 {
		h -= p1 * math.Log(p1)
	}
	if p2 > 0 {
		h -= p2 * math.Log(p2)
	}
	return h
}

