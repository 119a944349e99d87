package priorityfn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brainseg/ragseg/classifier"
	"github.com/brainseg/ragseg/featuremgr"
	"github.com/brainseg/ragseg/priorityfn"
)

// fakeRAG is a minimal priorityfn.RAGView for exercising priority functions
// without constructing a real RAG.
type fakeRAG struct {
	fm         featuremgr.FeatureManager
	edgeCache  featuremgr.Cache
	endpoints  map[int32][2]int32
	nodeFeats  map[int32][]float64
	classifier classifier.Classifier
}

func (f *fakeRAG) EdgeEndpoints(edgeID int32) (int32, int32, error) {
	e := f.endpoints[edgeID]
	return e[0], e[1], nil
}

func (f *fakeRAG) NodeFeatureVector(nodeID int32) ([]float64, error) {
	return f.nodeFeats[nodeID], nil
}

func (f *fakeRAG) EdgeFeatureVector(edgeID int32, left, right []float64) ([]float64, error) {
	return f.fm.EdgeFeatures(f.edgeCache, left, right)
}

func (f *fakeRAG) FeatureManager() featuremgr.FeatureManager { return f.fm }

func (f *fakeRAG) EdgeCache(edgeID int32) (featuremgr.Cache, error) { return f.edgeCache, nil }

func (f *fakeRAG) Classify(x []float64) (float64, error) {
	if f.classifier == nil {
		return 0.5, nil
	}
	return f.classifier.Predict(x)
}

func newFakeRAG(fm featuremgr.FeatureManager) *fakeRAG {
	edgeCache := fm.NewEdgeCache()
	fm.UpdateEdge(edgeCache, 0.2)
	fm.UpdateEdge(edgeCache, 0.8)

	nodeA := fm.NewNodeCache()
	fm.UpdateNode(nodeA, 0.1)
	nodeB := fm.NewNodeCache()
	fm.UpdateNode(nodeB, 0.9)

	featA, _ := fm.NodeFeatures(nodeA)
	featB, _ := fm.NodeFeatures(nodeB)

	return &fakeRAG{
		fm:        fm,
		edgeCache: edgeCache,
		endpoints: map[int32][2]int32{1: {10, 20}},
		nodeFeats: map[int32][]float64{10: featA, 20: featB},
	}
}

func TestBoundaryMedian_UsesMomentsApproxMedian(t *testing.T) {
	g := newFakeRAG(featuremgr.NewMomentsManager())
	p, err := priorityfn.BoundaryMedian(g, 1)
	require.NoError(t, err)
	require.InDelta(t, 0.5, p, 1e-9) // mean of 0.2, 0.8
}

func TestClassifierProbability_NeutralWithoutClassifier(t *testing.T) {
	g := newFakeRAG(featuremgr.NewMomentsManager())
	p, err := priorityfn.ClassifierProbability(g, 1)
	require.NoError(t, err)
	require.InDelta(t, 0.5, p, 1e-9) // no classifier configured -> p=0.5 -> priority 0.5
}

func TestExpectedVIChange_ZeroBetaFavorsHighConfidenceMerges(t *testing.T) {
	g := newFakeRAG(featuremgr.NewMomentsManager())
	fn := priorityfn.NewExpectedVIChange(0.0)
	p, err := fn(g, 1)
	require.NoError(t, err)
	require.False(t, math.IsNaN(p))
	require.LessOrEqual(t, p, 0.0) // beta=0 => priority = -p*H <= 0
}

func TestRegistry_CreateUnknown(t *testing.T) {
	r := priorityfn.NewRegistry()
	r.RegisterBuiltins()
	_, err := r.Create("does-not-exist", nil)
	require.ErrorIs(t, err, priorityfn.ErrUnknownPriorityFunc)
}

func TestRegistry_ExpectedChangeVIReadsBeta(t *testing.T) {
	r := priorityfn.NewRegistry()
	r.RegisterBuiltins()
	fn, err := r.Create("expected_change_vi", map[string]any{"beta": 2.5})
	require.NoError(t, err)
	require.NotNil(t, fn)
}
