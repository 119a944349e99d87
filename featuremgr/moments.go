package featuremgr

import (
	"fmt"
	"math"
)

// momentCache accumulates the first two raw moments (count, sum, sum of
// squares) of a set of probability values. Combine is a simple pairwise
// addition, which is associative and commutative by construction, and
// recomputation-equivalent (spec.md I4): summing two disjoint sets' moments
// equals computing the moments of their union directly.
type momentCache struct {
	Count  int64
	Sum    float64
	SumSq  float64
}

// Combine implements Cache.
func (c *momentCache) Combine(other Cache) {
	o := other.(*momentCache)
	c.Count += o.Count
	c.Sum += o.Sum
	c.SumSq += o.SumSq
}

// Clone implements Cache.
func (c *momentCache) Clone() Cache {
	cp := *c
	return &cp
}

func (c *momentCache) mean() float64 {
	if c.Count == 0 {
		return 0
	}
	return c.Sum / float64(c.Count)
}

func (c *momentCache) variance() float64 {
	if c.Count == 0 {
		return 0
	}
	m := c.mean()
	v := c.SumSq/float64(c.Count) - m*m
	if v < 0 {
		// Guards against floating-point cancellation producing a tiny
		// negative variance for near-constant inputs.
		v = 0
	}
	return v
}

// MomentsManager is the default FeatureManager: node and edge features are
// [mean, variance, log1p(count)]; edge features additionally append the
// absolute difference between the two endpoints' means as a contextual
// feature (spec.md §4.7).
type MomentsManager struct{}

// NewMomentsManager constructs the default moment-based feature manager.
func NewMomentsManager() *MomentsManager { return &MomentsManager{} }

// Name implements FeatureManager.
func (m *MomentsManager) Name() string { return "moments" }

// NewNodeCache implements FeatureManager.
func (m *MomentsManager) NewNodeCache() Cache { return &momentCache{} }

// NewEdgeCache implements FeatureManager.
func (m *MomentsManager) NewEdgeCache() Cache { return &momentCache{} }

// UpdateNode implements FeatureManager.
func (m *MomentsManager) UpdateNode(cache Cache, value float64) {
	c := cache.(*momentCache)
	c.Count++
	c.Sum += value
	c.SumSq += value * value
}

// UpdateEdge implements FeatureManager.
func (m *MomentsManager) UpdateEdge(cache Cache, value float64) {
	m.UpdateNode(cache, value)
}

// NodeFeatureDim implements FeatureManager.
func (m *MomentsManager) NodeFeatureDim() int { return 3 }

// EdgeFeatureDim implements FeatureManager.
func (m *MomentsManager) EdgeFeatureDim() int { return 4 }

// NodeFeatures implements FeatureManager.
func (m *MomentsManager) NodeFeatures(cache Cache) ([]float64, error) {
	c := cache.(*momentCache)
	feats := []float64{c.mean(), c.variance(), math.Log1p(float64(c.Count))}
	return feats, checkFinite(feats)
}

// EdgeFeatures implements FeatureManager.
func (m *MomentsManager) EdgeFeatures(edgeCache Cache, leftNode, rightNode []float64) ([]float64, error) {
	c := edgeCache.(*momentCache)
	var meanDiff float64
	if len(leftNode) > 0 && len(rightNode) > 0 {
		meanDiff = math.Abs(leftNode[0] - rightNode[0])
	}
	feats := []float64{c.mean(), c.variance(), math.Log1p(float64(c.Count)), meanDiff}
	return feats, checkFinite(feats)
}

// ApproxMedian estimates a robust "median" priority straight from the
// moment cache by treating the boundary distribution as approximately
// symmetric: the mean is used as a stand-in. MomentsManager does not keep
// the raw sample needed for an exact median (that is HistogramManager's
// job); a priority function requiring exact medians should configure
// HistogramManager instead.
func (m *MomentsManager) ApproxMedian(edgeCache Cache) float64 {
	c, ok := edgeCache.(*momentCache)
	if !ok {
		return 0.5
	}
	return c.mean()
}

func checkFinite(v []float64) error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: component %d = %v", ErrNonFinite, i, x)
		}
	}
	return nil
}
