package priorityfn

import "github.com/brainseg/ragseg/featuremgr"

// ClassifierProbability is priority function 2 (spec.md §4.5): the
// concatenated node/edge feature vector (spec.md §4.7's fixed order) is
// scored by the active merge classifier, and the priority is 1 minus the
// predicted merge probability, so the queue's ascending-priority order
// pops the most-likely-to-merge edge first.
func ClassifierProbability(g RAGView, edgeID int32) (float64, error) {
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
	x := featuremgr.Concat(leftFeat, rightFeat, edgeFeat, true)

	p, err := g.Classify(x)
	if err != nil {
		return 0, err
	}
	return 1 - p, nil
}
