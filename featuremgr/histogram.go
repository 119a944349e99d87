package featuremgr

import "math"

// histogramCache bins probability values (clamped to [0,1]) into a fixed
// number of equal-width bins. Combine is elementwise bin addition, which is
// associative/commutative and recomputation-equivalent for the same reason
// momentCache.Combine is (spec.md I4): a histogram over a union of voxel
// sets equals the elementwise sum of the histograms over each disjoint
// subset.
type histogramCache struct {
	Bins []int64
}

// Combine implements Cache.
func (c *histogramCache) Combine(other Cache) {
	o := other.(*histogramCache)
	for i := range c.Bins {
		c.Bins[i] += o.Bins[i]
	}
}

// Clone implements Cache.
func (c *histogramCache) Clone() Cache {
	bins := make([]int64, len(c.Bins))
	copy(bins, c.Bins)
	return &histogramCache{Bins: bins}
}

func (c *histogramCache) total() int64 {
	var n int64
	for _, b := range c.Bins {
		n += b
	}
	return n
}

// HistogramManager is a FeatureManager whose node/edge features are
// normalized bin-count histograms of the probability values observed,
// plus (for edges) the approximate median implied by the histogram and an
// L1 distance between the two endpoints' histograms as a contextual
// feature. Unlike MomentsManager, it supports an exact-enough boundary
// median (spec.md §4.5 priority function 1), since bin counts let the
// median be recovered without keeping every raw sample.
type HistogramManager struct {
	numBins int
}

// NewHistogramManager constructs a histogram-based feature manager with
// numBins equal-width bins over [0,1]. numBins <= 0 defaults to 32.
func NewHistogramManager(numBins int) *HistogramManager {
	if numBins <= 0 {
		numBins = 32
	}
	return &HistogramManager{numBins: numBins}
}

// Name implements FeatureManager.
func (h *HistogramManager) Name() string { return "histogram" }

// NewNodeCache implements FeatureManager.
func (h *HistogramManager) NewNodeCache() Cache {
	return &histogramCache{Bins: make([]int64, h.numBins)}
}

// NewEdgeCache implements FeatureManager.
func (h *HistogramManager) NewEdgeCache() Cache {
	return &histogramCache{Bins: make([]int64, h.numBins)}
}

func (h *HistogramManager) binOf(value float64) int {
	v := value
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	bin := int(v * float64(h.numBins))
	if bin >= h.numBins {
		bin = h.numBins - 1
	}
	return bin
}

// UpdateNode implements FeatureManager.
func (h *HistogramManager) UpdateNode(cache Cache, value float64) {
	c := cache.(*histogramCache)
	c.Bins[h.binOf(value)]++
}

// UpdateEdge implements FeatureManager.
func (h *HistogramManager) UpdateEdge(cache Cache, value float64) {
	h.UpdateNode(cache, value)
}

// NodeFeatureDim implements FeatureManager.
func (h *HistogramManager) NodeFeatureDim() int { return h.numBins }

// EdgeFeatureDim implements FeatureManager.
func (h *HistogramManager) EdgeFeatureDim() int { return h.numBins + 2 }

func (h *HistogramManager) normalized(c *histogramCache) []float64 {
	out := make([]float64, h.numBins)
	total := c.total()
	if total == 0 {
		return out
	}
	inv := 1.0 / float64(total)
	for i, b := range c.Bins {
		out[i] = float64(b) * inv
	}
	return out
}

// NodeFeatures implements FeatureManager.
func (h *HistogramManager) NodeFeatures(cache Cache) ([]float64, error) {
	feats := h.normalized(cache.(*histogramCache))
	return feats, checkFinite(feats)
}

// EdgeFeatures implements FeatureManager.
func (h *HistogramManager) EdgeFeatures(edgeCache Cache, leftNode, rightNode []float64) ([]float64, error) {
	c := edgeCache.(*histogramCache)
	norm := h.normalized(c)
	median := h.ApproxMedian(c)

	var l1 float64
	if len(leftNode) == len(rightNode) {
		for i := range leftNode {
			l1 += math.Abs(leftNode[i] - rightNode[i])
		}
	}

	feats := append(append([]float64{}, norm...), median, l1)
	return feats, checkFinite(feats)
}

// ApproxMedian recovers the median of the boundary probability distribution
// from its bin counts: walk bins in ascending order until the cumulative
// count crosses half the total, and return that bin's midpoint value. With
// zero observations it returns 0.5 (the midpoint of the domain), matching
// "no information" rather than an arbitrary extreme.
func (h *HistogramManager) ApproxMedian(cache Cache) float64 {
	c, ok := cache.(*histogramCache)
	if !ok {
		return 0.5
	}
	total := c.total()
	if total == 0 {
		return 0.5
	}
	half := float64(total) / 2.0
	var cum int64
	width := 1.0 / float64(h.numBins)
	for i, b := range c.Bins {
		cum += b
		if float64(cum) >= half {
			return (float64(i) + 0.5) * width
		}
	}
	return 1.0
}
