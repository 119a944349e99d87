package voxel_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brainseg/ragseg/voxel"
)

func TestNewLabelVolume_ShapeMismatch(t *testing.T) {
	_, err := voxel.NewLabelVolume(voxel.Shape{2, 2}, []int32{1, 2, 3})
	require.ErrorIs(t, err, voxel.ErrDataLength)
}

func TestNewLabelVolume_EmptyShape(t *testing.T) {
	_, err := voxel.NewLabelVolume(voxel.Shape{}, nil)
	require.ErrorIs(t, err, voxel.ErrEmptyShape)
}

func TestNewLabelVolume_NegativeLabel(t *testing.T) {
	_, err := voxel.NewLabelVolume(voxel.Shape{1, 2}, []int32{1, -1})
	require.ErrorIs(t, err, voxel.ErrNegativeLabel)
}

func TestLabelVolume_IndexRoundTrip(t *testing.T) {
	v, err := voxel.NewLabelVolume(voxel.Shape{3, 4}, make([]int32, 12))
	require.NoError(t, err)

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			idx := v.Index([]int{y, x})
			coord := v.Coordinate(idx)
			require.Equal(t, []int{y, x}, coord)
		}
	}
}

func TestLabelVolume_InBounds(t *testing.T) {
	v, err := voxel.NewLabelVolume(voxel.Shape{2, 2}, make([]int32, 4))
	require.NoError(t, err)

	require.True(t, v.InBounds([]int{0, 0}))
	require.True(t, v.InBounds([]int{1, 1}))
	require.False(t, v.InBounds([]int{-1, 0}))
	require.False(t, v.InBounds([]int{2, 0}))
	require.False(t, v.InBounds([]int{0}))
}

func TestNewProbabilityVolume_MultiChannel(t *testing.T) {
	p, err := voxel.NewProbabilityVolume(voxel.Shape{2, 2}, 3, make([]float64, 12))
	require.NoError(t, err)
	require.Equal(t, 0.0, p.AtChannel(0, 0))

	_, err = voxel.NewProbabilityVolume(voxel.Shape{2, 2}, 3, make([]float64, 4))
	require.ErrorIs(t, err, voxel.ErrDataLength)
}

func TestNeighborOffsets_Counts(t *testing.T) {
	require.Len(t, voxel.NeighborOffsets(voxel.Conn4), 4)
	require.Len(t, voxel.NeighborOffsets(voxel.Conn8), 8)
	require.Len(t, voxel.NeighborOffsets(voxel.Conn6), 6)
	require.Len(t, voxel.NeighborOffsets(voxel.Conn18), 18)
	require.Len(t, voxel.NeighborOffsets(voxel.Conn26), 26)
}
