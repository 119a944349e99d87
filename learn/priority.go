package learn

import (
	"math/rand"

	"github.com/brainseg/ragseg/priorityfn"
)

// randomPriority assigns each edge a uniform-random priority drawn from
// rng, realizing the "random" priority mode (spec.md §4.6) deterministically
// for a given seed (S5: fixed seed implies element-wise-equal datasets
// across runs).
func randomPriority(rng *rand.Rand) priorityfn.PriorityFunc {
	return func(_ priorityfn.RAGView, _ int32) (float64, error) {
		return rng.Float64(), nil
	}
}

// priorityFuncForEpoch picks the priority function an epoch should build
// its RAG with. In active mode, an unfitted classifier degrades to the
// boundary-median policy when LearnFlat is set (a "flat" warm start, per
// spec.md §4.6); otherwise the classifier-based function runs with the RAG's
// neutral 0.5 probability (a constant 0.5 priority for ClassifierProbability;
// with ActiveVI the priority still varies with region sizes) until the
// classifier has been fitted from accumulated examples.
func (l *Learner) priorityFuncForEpoch() priorityfn.PriorityFunc {
	switch l.opts.PriorityMode {
	case PriorityRandom:
		return randomPriority(l.rng)
	case PriorityBoundaryMedian:
		return priorityfn.BoundaryMedian
	case PriorityActive:
		if !l.classifierFitted && l.opts.LearnFlat {
			return priorityfn.BoundaryMedian
		}
		if l.opts.ActiveVI {
			return priorityfn.NewExpectedVIChange(l.opts.ActiveVIBeta)
		}
		return priorityfn.ClassifierProbability
	default:
		return priorityfn.BoundaryMedian
	}
}
