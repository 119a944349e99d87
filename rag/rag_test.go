package rag_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brainseg/ragseg/rag"
	"github.com/brainseg/ragseg/voxel"
)

func mustVolumes(t *testing.T, shape voxel.Shape, labels []int32, probs []float64) (*voxel.LabelVolume, *voxel.ProbabilityVolume) {
	t.Helper()
	lv, err := voxel.NewLabelVolume(shape, labels)
	require.NoError(t, err)
	pv, err := voxel.NewProbabilityVolume(shape, 1, probs)
	require.NoError(t, err)
	return lv, pv
}

// TestConstruction_EdgeSet checks edge topology only: a 2x2 square of four
// distinct single-voxel regions under 4-connectivity produces exactly the
// four adjacent-pair edges.
func TestConstruction_EdgeSet(t *testing.T) {
	lv, pv := mustVolumes(t, voxel.Shape{2, 2},
		[]int32{1, 2, 3, 4},
		[]float64{0.1, 0.9, 0.8, 0.2},
	)
	g, err := rag.NewRAG(lv, pv, rag.WithConnectivity(voxel.Conn4))
	require.NoError(t, err)

	for _, pair := range [][2]int32{{1, 2}, {1, 3}, {2, 4}, {3, 4}} {
		u, v, err := firstEdgeBetween(g, pair[0], pair[1])
		require.NoErrorf(t, err, "expected edge {%d,%d}", pair[0], pair[1])
		require.Equal(t, pair[0], u)
		require.Equal(t, pair[1], v)
	}
}

// firstEdgeBetween is a small test-only helper that scans edge ids upward
// from 1 through EdgeEndpoints until it finds the pair {a,b}, returning the
// error of the first id that does not resolve. NewRAG assigns ids in sweep
// order with forward offsets row-then-column, so the 2x2 case yields
// {1,3}=1, {1,2}=2, {2,4}=3, {3,4}=4.
func firstEdgeBetween(g *rag.RAG, a, b int32) (int32, int32, error) {
	for id := int32(1); ; id++ {
		u, v, err := g.EdgeEndpoints(id)
		if err != nil {
			return 0, 0, err
		}
		if (u == a && v == b) || (u == b && v == a) {
			if u > v {
				u, v = v, u
			}
			return u, v, nil
		}
		if id > 64 {
			return 0, 0, err
		}
	}
}

// TestChainMerge exercises the merge loop on an unambiguous three-node
// chain (no corner voxel shared by more than two regions): label 2 sits
// between labels 1 and 3, with a low-probability boundary on its left and
// a high-probability boundary on its right.
func TestChainMerge(t *testing.T) {
	lv, pv := mustVolumes(t, voxel.Shape{1, 3},
		[]int32{1, 2, 3},
		[]float64{0.9, 0.1, 0.9},
	)
	g, err := rag.NewRAG(lv, pv, rag.WithConnectivity(voxel.Conn4))
	require.NoError(t, err)

	require.NoError(t, g.Agglomerate(0.5))

	seg := g.GetSegmentation()
	require.Equal(t, []int32{1, 1, 3}, seg)
}

// TestUCM_Chain: a three-voxel row merges left-to-right, and the UCM
// records each boundary voxel with the priority at which its regions
// first merged.
func TestUCM_Chain(t *testing.T) {
	lv, pv := mustVolumes(t, voxel.Shape{1, 3},
		[]int32{1, 2, 3},
		[]float64{0.5, 0.1, 0.5},
	)
	g, err := rag.NewRAG(lv, pv, rag.WithConnectivity(voxel.Conn4), rag.WithUCMRecording(true))
	require.NoError(t, err)

	require.NoError(t, g.AgglomerateAll())

	ucm, err := g.GetUCM()
	require.NoError(t, err)
	require.InDelta(t, math.Inf(1), ucm[0], 0)
	require.InDelta(t, 0.1, ucm[1], 1e-9)
	require.InDelta(t, 0.5, ucm[2], 1e-9)
}

// TestInclusionRemoval: a 5x5 square of label 1 with a single center voxel
// labeled 2 collapses to a single region.
func TestInclusionRemoval(t *testing.T) {
	labels := make([]int32, 25)
	for i := range labels {
		labels[i] = 1
	}
	labels[2*5+2] = 2 // center of a 5x5 grid

	probs := make([]float64, 25)
	for i := range probs {
		probs[i] = 0.5
	}

	lv, pv := mustVolumes(t, voxel.Shape{5, 5}, labels, probs)
	g, err := rag.NewRAG(lv, pv, rag.WithConnectivity(voxel.Conn4))
	require.NoError(t, err)

	require.NoError(t, g.RemoveInclusions())

	seg := g.GetSegmentation()
	for _, lbl := range seg {
		require.Equal(t, int32(1), lbl)
	}
}

// TestExclusionRespect: two nodes sharing a nonzero exclusion tag never
// merge, even at an unbounded threshold, while each may still absorb an
// unrelated third node.
func TestExclusionRespect(t *testing.T) {
	lv, pv := mustVolumes(t, voxel.Shape{1, 3},
		[]int32{1, 2, 3},
		[]float64{0.1, 0.1, 0.1},
	)
	exclusion, err := voxel.NewExclusionVolume(voxel.Shape{1, 3}, []int32{7, 7, 0})
	require.NoError(t, err)

	g, err := rag.NewRAG(lv, pv, rag.WithConnectivity(voxel.Conn4), rag.WithExclusionVolume(exclusion))
	require.NoError(t, err)

	require.NoError(t, g.AgglomerateAll())

	seg := g.GetSegmentation()
	require.NotEqual(t, seg[0], seg[1], "nodes 1 and 2 share an exclusion tag and must stay distinct")
}

// TestAgglomerate_Idempotent is property P3: running agglomerate twice at
// the same threshold performs no additional merges.
func TestAgglomerate_Idempotent(t *testing.T) {
	lv, pv := mustVolumes(t, voxel.Shape{1, 3},
		[]int32{1, 2, 3},
		[]float64{0.9, 0.1, 0.9},
	)
	g, err := rag.NewRAG(lv, pv, rag.WithConnectivity(voxel.Conn4))
	require.NoError(t, err)

	require.NoError(t, g.Agglomerate(0.5))
	first := g.GetSegmentation()
	require.NoError(t, g.Agglomerate(0.5))
	second := g.GetSegmentation()
	require.Equal(t, first, second)
}
