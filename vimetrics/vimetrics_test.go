package vimetrics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brainseg/ragseg/vimetrics"
)

func TestVariationOfInformation_IdenticalIsZero(t *testing.T) {
	seg := []int32{1, 1, 2, 2, 3}
	require.InDelta(t, 0.0, vimetrics.VariationOfInformation(seg, seg), 1e-9)
}

func TestVariationOfInformation_Positive(t *testing.T) {
	a := []int32{1, 1, 2, 2}
	b := []int32{1, 2, 2, 2}
	require.Greater(t, vimetrics.VariationOfInformation(a, b), 0.0)
}

func TestRandIndex_IdenticalIsOne(t *testing.T) {
	seg := []int32{1, 1, 2, 2, 3}
	require.InDelta(t, 1.0, vimetrics.RandIndex(seg, seg), 1e-9)
}

func TestRandIndex_CompletelySplitVsMerged(t *testing.T) {
	// a: everything in one cluster; b: everything in separate clusters.
	a := []int32{1, 1, 1, 1}
	b := []int32{1, 2, 3, 4}
	ri := vimetrics.RandIndex(a, b)
	require.InDelta(t, 0.0, ri, 1e-9)
}

func TestRandIndex_KnownValue(t *testing.T) {
	// Classic small example: 6 points, two clusterings.
	a := []int32{1, 1, 1, 2, 2, 2}
	b := []int32{1, 1, 2, 2, 3, 3}
	ri := vimetrics.RandIndex(a, b)
	require.InDelta(t, 2.0/3.0, ri, 1e-9)
}
