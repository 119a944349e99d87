package ioadapter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brainseg/ragseg/ioadapter"
	"github.com/brainseg/ragseg/learn"
	"github.com/brainseg/ragseg/voxel"
)

func TestJSONAdapter_VolumeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	labelsPath := filepath.Join(dir, "labels.json")
	probsPath := filepath.Join(dir, "probs.json")

	require.NoError(t, os.WriteFile(labelsPath, []byte(`{"shape":[1,3],"labels":[1,2,3]}`), 0644))
	require.NoError(t, os.WriteFile(probsPath, []byte(`{"shape":[1,3],"channels":1,"values":[0.1,0.2,0.3]}`), 0644))

	a := ioadapter.NewJSONAdapter()
	lv, err := a.ReadLabels(labelsPath)
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3}, lv.Labels)

	pv, err := a.ReadProbabilities(probsPath, voxel.Shape{1, 3})
	require.NoError(t, err)
	require.InDelta(t, 0.2, pv.At(1), 1e-9)
}

func TestJSONAdapter_DatasetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dataset.json")

	a := ioadapter.NewJSONAdapter()
	ds := &learn.Dataset{
		X: [][]float64{{0.1, 0.2}, {0.3, 0.4}},
		Y: [][]float64{{1}, {0}},
		W: []float64{1, 1},
	}
	require.NoError(t, a.WriteDataset(path, ds, "test dataset"))

	loaded, info, err := a.ReadDataset(path)
	require.NoError(t, err)
	require.Equal(t, "test dataset", info)
	require.Equal(t, ds.X, loaded.X)
}
