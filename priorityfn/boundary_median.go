package priorityfn

import "github.com/brainseg/ragseg/featuremgr"

// medianEstimator is satisfied by any FeatureManager that can recover a
// median-like statistic from its raw edge cache (MomentsManager,
// HistogramManager). It is defined here rather than in featuremgr because
// not every feature manager can support it.
type medianEstimator interface {
	ApproxMedian(cache featuremgr.Cache) float64
}

// BoundaryMedian is the default priority function (spec.md §4.5, priority
// function 1): the priority of merging two regions is the median observed
// boundary probability between them, directly from the edge's feature
// cache. Feature managers that cannot estimate a median fall back to the
// mean implied by the edge's first feature component.
func BoundaryMedian(g RAGView, edgeID int32) (float64, error) {
	cache, err := g.EdgeCache(edgeID)
	if err != nil {
		return 0, err
	}
	if est, ok := g.FeatureManager().(medianEstimator); ok {
		return est.ApproxMedian(cache), nil
	}

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
	if len(edgeFeat) == 0 {
		return 0, nil
	}
	return edgeFeat[0], nil
}
