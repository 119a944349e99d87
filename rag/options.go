package rag

import (
	"github.com/brainseg/ragseg/classifier"
	"github.com/brainseg/ragseg/featuremgr"
	"github.com/brainseg/ragseg/priorityfn"
	"github.com/brainseg/ragseg/voxel"
)

// config collects NewRAG's optional parameters before construction.
type config struct {
	connectivity voxel.Connectivity
	nozeros      bool
	exclusion    *voxel.ExclusionVolume
	fm           featuremgr.FeatureManager
	priority     priorityfn.PriorityFunc
	classifier   classifier.Classifier
	metrics      *Metrics
	recordUCM    bool
}

func defaultConfig() *config {
	return &config{
		connectivity: voxel.Conn6,
		fm:           featuremgr.NewMomentsManager(),
		priority:     priorityfn.BoundaryMedian,
	}
}

// Option configures a RAG at construction time.
type Option func(*config)

// WithConnectivity sets the neighbor connectivity used to discover
// adjacent supervoxels (spec.md §4.1). Default is 6-connectivity.
func WithConnectivity(c voxel.Connectivity) Option {
	return func(cfg *config) { cfg.connectivity = c }
}

// WithNoZeros enables "nozeros" mode, in which voxels labeled 0 are treated
// as unlabeled boundary material rather than their own region: such a
// voxel contributes to the edge cache of every distinct pair of nonzero
// labels found among its neighbors (spec.md §9 Open Questions), and is
// otherwise excluded from the node partition.
func WithNoZeros(enabled bool) Option {
	return func(cfg *config) { cfg.nozeros = enabled }
}

// WithExclusionVolume supplies per-voxel exclusion tags (spec.md §4.1,
// I5): two nodes sharing a nonzero tag may never merge.
func WithExclusionVolume(ev *voxel.ExclusionVolume) Option {
	return func(cfg *config) { cfg.exclusion = ev }
}

// WithFeatureManager overrides the default MomentsManager.
func WithFeatureManager(fm featuremgr.FeatureManager) Option {
	return func(cfg *config) { cfg.fm = fm }
}

// WithPriorityFunc overrides the default BoundaryMedian priority function.
func WithPriorityFunc(fn priorityfn.PriorityFunc) Option {
	return func(cfg *config) { cfg.priority = fn }
}

// WithClassifier attaches a trained merge classifier, used by the
// classifier_probability and expected_change_vi priority functions. Without
// one, Classify returns a neutral 0.5.
func WithClassifier(c classifier.Classifier) Option {
	return func(cfg *config) { cfg.classifier = c }
}

// WithMetrics attaches Prometheus instrumentation (spec.md §4.14).
func WithMetrics(m *Metrics) Option {
	return func(cfg *config) { cfg.metrics = m }
}

// WithUCMRecording enables the extra boundary-voxel bookkeeping GetUCM
// needs (spec.md §4.6). Disabled by default to avoid its memory cost
// (spec.md §5 Memory) when a caller only wants a final segmentation.
func WithUCMRecording(enabled bool) Option {
	return func(cfg *config) { cfg.recordUCM = enabled }
}
