package learn_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brainseg/ragseg/learn"
	"github.com/brainseg/ragseg/voxel"
)

func TestLearner_ChainConvergesAndDedups(t *testing.T) {
	lv, err := voxel.NewLabelVolume(voxel.Shape{1, 3}, []int32{1, 2, 3})
	require.NoError(t, err)
	pv, err := voxel.NewProbabilityVolume(voxel.Shape{1, 3}, 1, []float64{0.9, 0.1, 0.9})
	require.NoError(t, err)
	groundTruth := []int32{1, 1, 1}

	opts := learn.DefaultOptions()
	opts.Connectivity = voxel.Conn4
	opts.MinNumEpochs = 1
	opts.MaxNumEpochs = 3

	l := learn.NewLearner(opts)
	result, err := l.Run(lv, pv, groundTruth)
	require.NoError(t, err)
	require.NotNil(t, result.Dataset)
	require.True(t, result.Dataset.Len() > 0)
	require.Equal(t, result.Dataset.Len(), len(result.Dataset.Y))
	require.Equal(t, result.Dataset.Len(), len(result.Dataset.W))
	// Epoch 2 repeats epoch 1's two proposals, all deduplicated, so the run
	// stops there with only the two unique examples.
	require.Equal(t, 2, result.Dataset.Len())
	require.Equal(t, 2, result.Epochs)
}

func TestLearner_RandomPriorityDeterministicWithSeed(t *testing.T) {
	lv, err := voxel.NewLabelVolume(voxel.Shape{1, 4}, []int32{1, 2, 3, 4})
	require.NoError(t, err)
	pv, err := voxel.NewProbabilityVolume(voxel.Shape{1, 4}, 1, []float64{0.2, 0.8, 0.3, 0.7})
	require.NoError(t, err)
	groundTruth := []int32{1, 1, 2, 2}

	run := func() *learn.Dataset {
		opts := learn.DefaultOptions()
		opts.Connectivity = voxel.Conn4
		opts.PriorityMode = learn.PriorityRandom
		opts.Seed = 42
		opts.MinNumEpochs = 1
		opts.MaxNumEpochs = 2
		l := learn.NewLearner(opts)
		result, err := l.Run(lv, pv, groundTruth)
		require.NoError(t, err)
		return result.Dataset
	}

	a, b := run(), run()
	require.Equal(t, a.X, b.X)
	require.Equal(t, a.Y, b.Y)
}
