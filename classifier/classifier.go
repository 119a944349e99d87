// Package classifier defines the external classifier adapter interface
// (spec.md §1, §4.5 priority function 2): the core never trains a
// production model itself, but its "active" priority mode and learn_flat
// warm-start need something satisfying this interface to bootstrap on.
package classifier

import "errors"

// ErrNotFitted is returned by Predict when Fit has never been called.
var ErrNotFitted = errors.New("classifier: not fitted")

// Classifier predicts, for a merge's feature vector, the probability that
// the merge is correct (training label 1 means "merge"). The priority
// functions turn this into a cost: ClassifierProbability uses 1 - p, the
// probability that the merge is wrong, so low priority = should merge. Fit trains
// (or retrains) the classifier on accumulated examples; w is a per-example
// weight vector (nil means uniform weight 1).
type Classifier interface {
	Predict(x []float64) (float64, error)
	Fit(X [][]float64, y []float64, w []float64) error
}
