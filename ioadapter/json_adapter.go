package ioadapter

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/brainseg/ragseg/learn"
	"github.com/brainseg/ragseg/voxel"
)

// JSONAdapter is the default VolumeReader / GroundTruthReader /
// ClassifierStore / TrainingDataWriter implementation. No volumetric I/O or
// HDF5 library exists anywhere in this module's dependency corpus (spec.md
// §1 Out of scope), so this one corner deliberately falls back to
// encoding/json rather than fabricating a dependency — see DESIGN.md.
type JSONAdapter struct{}

// NewJSONAdapter returns the default adapter.
func NewJSONAdapter() *JSONAdapter { return &JSONAdapter{} }

type labelFile struct {
	Shape  []int   `json:"shape"`
	Labels []int32 `json:"labels"`
}

type probabilityFile struct {
	Shape    []int     `json:"shape"`
	Channels int       `json:"channels"`
	Values   []float64 `json:"values"`
}

// ReadLabels implements VolumeReader.
func (a *JSONAdapter) ReadLabels(path string) (*voxel.LabelVolume, error) {
	var lf labelFile
	if err := readJSON(path, &lf); err != nil {
		return nil, err
	}
	lv, err := voxel.NewLabelVolume(voxel.Shape(lf.Shape), lf.Labels)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalIO, err)
	}
	return lv, nil
}

// ReadProbabilities implements VolumeReader.
func (a *JSONAdapter) ReadProbabilities(path string, shape voxel.Shape) (*voxel.ProbabilityVolume, error) {
	var pf probabilityFile
	if err := readJSON(path, &pf); err != nil {
		return nil, err
	}
	pv, err := voxel.NewProbabilityVolume(voxel.Shape(pf.Shape), pf.Channels, pf.Values)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalIO, err)
	}
	return pv, nil
}

// ReadGroundTruth implements GroundTruthReader.
func (a *JSONAdapter) ReadGroundTruth(path string, shape voxel.Shape) ([]int32, error) {
	var lf labelFile
	if err := readJSON(path, &lf); err != nil {
		return nil, err
	}
	want := shape.NumVoxels()
	if int64(len(lf.Labels)) != want {
		return nil, fmt.Errorf("%w: ground truth has %d voxels, want %d", ErrExternalIO, len(lf.Labels), want)
	}
	return lf.Labels, nil
}

// SaveClassifier implements ClassifierStore.
func (a *JSONAdapter) SaveClassifier(path string, model *StoredClassifier) error {
	return writeJSON(path, model)
}

// LoadClassifier implements ClassifierStore.
func (a *JSONAdapter) LoadClassifier(path string) (*StoredClassifier, error) {
	var model StoredClassifier
	if err := readJSON(path, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

type datasetFile struct {
	Info string      `json:"info"`
	X    [][]float64 `json:"x"`
	Y    [][]float64 `json:"y"`
	W    []float64   `json:"w"`
}

// WriteDataset implements TrainingDataWriter.
func (a *JSONAdapter) WriteDataset(path string, ds *learn.Dataset, info string) error {
	return writeJSON(path, datasetFile{Info: info, X: ds.X, Y: ds.Y, W: ds.W})
}

// ReadDataset implements TrainingDataWriter.
func (a *JSONAdapter) ReadDataset(path string) (*learn.Dataset, string, error) {
	var df datasetFile
	if err := readJSON(path, &df); err != nil {
		return nil, "", err
	}
	return &learn.Dataset{X: df.X, Y: df.Y, W: df.W}, df.Info, nil
}

// WriteLabels writes a label volume (a segmentation result) to path.
func (a *JSONAdapter) WriteLabels(path string, shape voxel.Shape, labels []int32) error {
	return writeJSON(path, labelFile{Shape: []int(shape), Labels: labels})
}

// WriteFloatVolume writes a float volume (a UCM result) to path.
func (a *JSONAdapter) WriteFloatVolume(path string, shape voxel.Shape, values []float64) error {
	return writeJSON(path, probabilityFile{Shape: []int(shape), Channels: 1, Values: values})
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExternalIO, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrExternalIO, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExternalIO, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrExternalIO, err)
	}
	return nil
}
