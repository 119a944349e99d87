package learn

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/brainseg/ragseg/classifier"
	"github.com/brainseg/ragseg/featuremgr"
	"github.com/brainseg/ragseg/rag"
	"github.com/brainseg/ragseg/rlog"
	"github.com/brainseg/ragseg/voxel"
)

// Learner drives the active-learning training loop (spec.md §4.6).
type Learner struct {
	opts Options
	rng  *rand.Rand

	classifierFitted bool
	provisional      classifier.Classifier
	log              rlog.Logger
}

// NewLearner builds a Learner. A nil Classifier in opts defaults to a fresh
// classifier.StubLogistic used as the provisional "active" mode model.
func NewLearner(opts Options) *Learner {
	if opts.Logger == nil {
		opts.Logger = rlog.Discard()
	}
	provisional := opts.Classifier
	if provisional == nil {
		provisional = classifier.NewStubLogistic(0.1, 50)
	}
	return &Learner{
		opts:        opts,
		rng:         rand.New(rand.NewSource(opts.Seed)),
		provisional: provisional,
		log:         opts.Logger,
	}
}

// Run executes epochs until termination (spec.md §4.6): at least
// MinNumEpochs have elapsed AND either no new unique examples were added in
// the last epoch, or MaxNumEpochs has been reached.
func (l *Learner) Run(labels *voxel.LabelVolume, prob *voxel.ProbabilityVolume, groundTruth []int32) (*Result, error) {
	if len(groundTruth) != labels.Len() {
		return nil, fmt.Errorf("learn: ground truth length %d does not match volume length %d", len(groundTruth), labels.Len())
	}

	aggregated := newDataset()
	seen := make(map[string]bool)
	var perEpoch []*Dataset

	epoch := 0
	for {
		epoch++
		epochDataset, err := l.runEpoch(labels, prob, groundTruth)
		if err != nil {
			return nil, err
		}

		added := 0
		for i, x := range epochDataset.X {
			key := fmt.Sprint(x)
			if l.opts.Unique && seen[key] {
				continue
			}
			seen[key] = true
			aggregated.append(x, epochDataset.Y[i][0], epochDataset.W[i])
			added++
		}
		if l.opts.Memory {
			perEpoch = append(perEpoch, epochDataset)
		}

		l.log.Debug("epoch %d: %d proposals, %d new unique examples", epoch, epochDataset.Len(), added)

		if l.opts.PriorityMode == PriorityActive && aggregated.Len() > 0 {
			if err := l.provisional.Fit(aggregated.X, flattenY(aggregated.Y), aggregated.W); err != nil {
				return nil, fmt.Errorf("learn: provisional classifier fit failed: %w", err)
			}
			l.classifierFitted = true
		}

		doneByStarvation := added == 0
		if epoch >= l.opts.MinNumEpochs && doneByStarvation {
			return &Result{Dataset: aggregated, PerEpoch: perEpoch, Epochs: epoch}, nil
		}
		if epoch >= l.opts.MaxNumEpochs {
			l.log.Warn("%v: stopped after %d epochs with %d examples", ErrConvergenceFailure, epoch, aggregated.Len())
			return &Result{Dataset: aggregated, PerEpoch: perEpoch, Epochs: epoch}, nil
		}
	}
}

func flattenY(y [][]float64) []float64 {
	out := make([]float64, len(y))
	for i, row := range y {
		out[i] = row[0]
	}
	return out
}

// runEpoch rebuilds a fresh RAG from the initial state and proposes merges
// one at a time, recording a training example for every proposal.
func (l *Learner) runEpoch(labels *voxel.LabelVolume, prob *voxel.ProbabilityVolume, groundTruth []int32) (*Dataset, error) {
	opts := []rag.Option{
		rag.WithConnectivity(l.opts.Connectivity),
		rag.WithNoZeros(l.opts.NoZeros),
		rag.WithFeatureManager(l.opts.FeatureManager),
		rag.WithPriorityFunc(l.priorityFuncForEpoch()),
	}
	if l.opts.Exclusion != nil {
		opts = append(opts, rag.WithExclusionVolume(l.opts.Exclusion))
	}
	if l.classifierFitted {
		opts = append(opts, rag.WithClassifier(l.provisional))
	}

	g, err := rag.NewRAG(labels, prob, opts...)
	if err != nil {
		return nil, err
	}

	if l.opts.RemoveInclude {
		if err := g.RemoveInclusions(); err != nil {
			return nil, err
		}
	}

	ds := newDataset()
	for {
		edgeID, u, v, _, ok := g.ProposeNext()
		if !ok {
			break
		}

		leftFeat, err := g.NodeFeatureVector(u)
		if err != nil {
			return nil, err
		}
		rightFeat, err := g.NodeFeatureVector(v)
		if err != nil {
			return nil, err
		}
		edgeFeat, err := g.EdgeFeatureVector(edgeID, leftFeat, rightFeat)
		if err != nil {
			return nil, err
		}

		seg := g.GetSegmentation()
		y := labelProposal(l.opts.LabelingMode, seg, groundTruth, u, v)
		x := featuremgr.Concat(leftFeat, rightFeat, edgeFeat, true)
		ds.append(x, y, 1.0)

		if l.opts.LearningMode == LearningLoose || y == 1 {
			if _, err := g.Merge(u, v); err != nil {
				if !errors.Is(err, rag.ErrMergeForbidden) {
					return nil, err
				}
			}
		}
	}
	return ds, nil
}
