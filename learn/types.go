// Package learn implements the active-learning training driver (spec.md
// §4.6): it runs repeated agglomeration epochs over a RAG, records a
// labeled training example at every proposed merge, and accumulates them
// into a dataset suitable for fitting a merge classifier.
package learn

import (
	"errors"
	"fmt"

	"github.com/brainseg/ragseg/classifier"
	"github.com/brainseg/ragseg/featuremgr"
	"github.com/brainseg/ragseg/rlog"
	"github.com/brainseg/ragseg/voxel"
)

// ErrConvergenceFailure describes a run that reached max_num_epochs without
// satisfying the min-epochs-and-no-new-examples termination rule. Run does
// not return it as an error: it logs it as a warning and returns the
// dataset collected so far.
var ErrConvergenceFailure = errors.New("learn: did not converge within max_num_epochs")

// PriorityMode selects which edge is proposed next during an epoch
// (spec.md §4.6).
type PriorityMode int

const (
	PriorityRandom PriorityMode = iota
	PriorityBoundaryMedian
	PriorityActive
)

// ParsePriorityMode parses a CLI-facing mode name.
func ParsePriorityMode(s string) (PriorityMode, error) {
	switch s {
	case "random":
		return PriorityRandom, nil
	case "boundary_median":
		return PriorityBoundaryMedian, nil
	case "active":
		return PriorityActive, nil
	default:
		return 0, fmt.Errorf("learn: unknown priority mode %q", s)
	}
}

// LabelingMode determines how a proposed merge's label y is derived from
// ground truth (spec.md §4.6).
type LabelingMode int

const (
	LabelAssignment LabelingMode = iota
	LabelVOISign
	LabelRandSign
)

// ParseLabelingMode parses a CLI-facing mode name.
func ParseLabelingMode(s string) (LabelingMode, error) {
	switch s {
	case "assignment":
		return LabelAssignment, nil
	case "voi-sign":
		return LabelVOISign, nil
	case "rand-sign":
		return LabelRandSign, nil
	default:
		return 0, fmt.Errorf("learn: unknown labeling mode %q", s)
	}
}

// LearningMode determines whether a proposed merge is actually executed
// (spec.md §4.6).
type LearningMode int

const (
	LearningStrict LearningMode = iota
	LearningLoose
)

// ParseLearningMode parses a CLI-facing mode name.
func ParseLearningMode(s string) (LearningMode, error) {
	switch s {
	case "strict":
		return LearningStrict, nil
	case "loose":
		return LearningLoose, nil
	default:
		return 0, fmt.Errorf("learn: unknown learning mode %q", s)
	}
}

// Dataset is the training driver's output: X is n×d features, Y is n×1
// labels (column 0, and currently the only column, is authoritative), W is
// an n-vector of per-example weights, defaulting to 1 (spec.md §4.6).
type Dataset struct {
	X [][]float64
	Y [][]float64
	W []float64
}

func newDataset() *Dataset {
	return &Dataset{}
}

func (d *Dataset) append(x []float64, y float64, w float64) {
	d.X = append(d.X, x)
	d.Y = append(d.Y, []float64{y})
	d.W = append(d.W, w)
}

// Len returns the number of examples in the dataset.
func (d *Dataset) Len() int { return len(d.X) }

// Result is Run's return value: the aggregated dataset, plus — when
// Options.Memory is set — each epoch's dataset kept separately.
type Result struct {
	Dataset  *Dataset
	PerEpoch []*Dataset
	Epochs   int
}

// Options configures a Learner. Connectivity, NoZeros, and Exclusion mirror
// rag.Option's equivalents, since a fresh RAG is rebuilt every epoch.
type Options struct {
	Connectivity voxel.Connectivity
	NoZeros      bool
	Exclusion    *voxel.ExclusionVolume

	FeatureManager featuremgr.FeatureManager
	Classifier     classifier.Classifier

	PriorityMode  PriorityMode
	LabelingMode  LabelingMode
	LearningMode  LearningMode
	LearnFlat     bool
	ActiveVI      bool
	ActiveVIBeta  float64
	RemoveInclude bool

	MinNumEpochs int
	MaxNumEpochs int
	Memory       bool
	Unique       bool

	Seed int64

	Logger rlog.Logger
}

// DefaultOptions returns the baseline configuration: boundary-median
// priority, assignment labeling, strict learning, moments feature manager,
// 1..10 epochs, dedup on, no memory.
func DefaultOptions() Options {
	return Options{
		Connectivity:   voxel.Conn6,
		FeatureManager: featuremgr.NewMomentsManager(),
		PriorityMode:   PriorityBoundaryMedian,
		LabelingMode:   LabelAssignment,
		LearningMode:   LearningStrict,
		ActiveVIBeta:   1.0,
		MinNumEpochs:   1,
		MaxNumEpochs:   10,
		Unique:         true,
		Logger:         rlog.Discard(),
	}
}
