package featuremgr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brainseg/ragseg/featuremgr"
)

func TestMomentsManager_CombineEqualsRecompute(t *testing.T) {
	m := featuremgr.NewMomentsManager()

	// Two disjoint caches...
	a := m.NewNodeCache()
	for _, v := range []float64{0.1, 0.2, 0.3} {
		m.UpdateNode(a, v)
	}
	b := m.NewNodeCache()
	for _, v := range []float64{0.4, 0.9} {
		m.UpdateNode(b, v)
	}
	a.Combine(b)

	// ...must equal one cache built from the union (spec.md P2/I4).
	union := m.NewNodeCache()
	for _, v := range []float64{0.1, 0.2, 0.3, 0.4, 0.9} {
		m.UpdateNode(union, v)
	}

	gotFeats, err := m.NodeFeatures(a)
	require.NoError(t, err)
	wantFeats, err := m.NodeFeatures(union)
	require.NoError(t, err)
	require.InDeltaSlice(t, wantFeats, gotFeats, 1e-9)
}

func TestMomentsManager_CloneIndependence(t *testing.T) {
	m := featuremgr.NewMomentsManager()
	a := m.NewNodeCache()
	m.UpdateNode(a, 0.5)
	clone := a.Clone()
	m.UpdateNode(a, 0.9)

	af, _ := m.NodeFeatures(a)
	cf, _ := m.NodeFeatures(clone)
	require.NotEqual(t, af, cf)
}

func TestHistogramManager_CombineIsAdditive(t *testing.T) {
	h := featuremgr.NewHistogramManager(4)
	a := h.NewEdgeCache()
	h.UpdateEdge(a, 0.1)
	h.UpdateEdge(a, 0.2)
	b := h.NewEdgeCache()
	h.UpdateEdge(b, 0.9)

	merged := a.Clone()
	merged.Combine(b)

	union := h.NewEdgeCache()
	for _, v := range []float64{0.1, 0.2, 0.9} {
		h.UpdateEdge(union, v)
	}

	require.Equal(t, union, merged)
}

func TestHistogramManager_ApproxMedian(t *testing.T) {
	h := featuremgr.NewHistogramManager(10)
	c := h.NewEdgeCache()
	for _, v := range []float64{0.1, 0.1, 0.1, 0.9} {
		h.UpdateEdge(c, v)
	}
	med := h.ApproxMedian(c)
	require.InDelta(t, 0.15, med, 0.1)
}

func TestConcat_FixedOrderWithDiff(t *testing.T) {
	left := []float64{1, 2}
	right := []float64{3, 5}
	edge := []float64{9}

	got := featuremgr.Concat(left, right, edge, true)
	require.Equal(t, []float64{1, 2, 3, 5, 9, 2, 3}, got)
	require.Equal(t, featuremgr.Dim(2, 1, true), len(got))
}

func TestConcat_NoDiff(t *testing.T) {
	got := featuremgr.Concat([]float64{1}, []float64{2}, []float64{3}, false)
	require.Equal(t, []float64{1, 2, 3}, got)
}

func TestRegistry_UnknownName(t *testing.T) {
	r := featuremgr.NewRegistry()
	r.RegisterBuiltins()
	_, err := r.Create("does-not-exist", nil)
	require.ErrorIs(t, err, featuremgr.ErrUnknownFeatureManager)
}

func TestRegistry_HistogramBinsFromConfig(t *testing.T) {
	r := featuremgr.NewRegistry()
	r.RegisterBuiltins()
	fm, err := r.Create("histogram", map[string]any{"num_bins": 16})
	require.NoError(t, err)
	require.Equal(t, 16, fm.NodeFeatureDim())
}
