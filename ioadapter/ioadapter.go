// Package ioadapter defines the interfaces the CLI uses to read volumes
// and ground truth and to persist classifiers and training data, plus a
// minimal JSON-backed default implementation. Volumetric I/O and HDF5
// persistence are named in spec.md §1 as external collaborators the core
// never imports; these interfaces are the seam the CLI's adapters satisfy
// (spec.md §6).
package ioadapter

import (
	"errors"

	"github.com/brainseg/ragseg/learn"
	"github.com/brainseg/ragseg/voxel"
)

// ErrExternalIO wraps any failure reading or writing through an adapter.
var ErrExternalIO = errors.New("ioadapter: external I/O failure")

// VolumeReader loads a label volume and its matching probability map from
// a path.
type VolumeReader interface {
	ReadLabels(path string) (*voxel.LabelVolume, error)
	ReadProbabilities(path string, shape voxel.Shape) (*voxel.ProbabilityVolume, error)
}

// GroundTruthReader loads a ground-truth label volume, flattened to match
// a LabelVolume's voxel ordering.
type GroundTruthReader interface {
	ReadGroundTruth(path string, shape voxel.Shape) ([]int32, error)
}

// ClassifierStore persists and loads a provisional classifier's learned
// weights, independent of the classifier.Classifier interface itself (the
// core never imports this).
type ClassifierStore interface {
	SaveClassifier(path string, model *StoredClassifier) error
	LoadClassifier(path string) (*StoredClassifier, error)
}

// StoredClassifier is the serializable form of a classifier.StubLogistic,
// the only classifier kind this module trains.
type StoredClassifier struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
	LR      float64   `json:"learning_rate"`
	Epochs  int       `json:"epochs"`
}

// TrainingDataWriter persists a learn.Dataset (spec.md §6: "the external
// persistence layer writes it to HDF5" — this module's default writer uses
// JSON instead; see DESIGN.md).
type TrainingDataWriter interface {
	WriteDataset(path string, ds *learn.Dataset, info string) error
	ReadDataset(path string) (*learn.Dataset, string, error)
}
