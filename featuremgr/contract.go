// Package featuremgr defines the feature-manager plug-in contract
// (spec.md §4.7): the accounting layer that keeps merge-additive statistics
// per node and per edge, and turns those statistics into the numeric feature
// vectors the priority functions and classifier consume.
package featuremgr

import "errors"

// ErrNonFinite is returned by a FeatureManager implementation (or detected
// by a caller wrapping one) when a computed feature value is NaN or ±Inf.
// It maps to the core's FeatureContractViolation error kind (spec.md §7) —
// fatal, not locally recoverable.
var ErrNonFinite = errors.New("featuremgr: feature value is not finite")

// ErrUnknownFeatureManager is returned by Registry.Create when no factory is
// registered under the requested name.
var ErrUnknownFeatureManager = errors.New("featuremgr: unknown feature manager")

// Cache is an opaque accumulator a FeatureManager maintains per node or per
// edge. It must support an associative, commutative Combine: Combine(a, b)
// must equal what recomputing from scratch over the union of a's and b's
// underlying voxels would yield (spec.md §3 I4, §4.7).
type Cache interface {
	// Combine merges other into the receiver in place. Combine must be
	// associative and commutative so that repeated merges never depend on
	// merge order (spec.md §4.2 step 3-4).
	Combine(other Cache)

	// Clone returns a deep copy, so a cache can be combined into a fresh
	// node's cache without aliasing the source.
	Clone() Cache
}

// FeatureManager is the plug-in that maintains feature caches and extracts
// numeric feature vectors from them (spec.md §4.7).
type FeatureManager interface {
	// Name identifies this manager for the registry and for logging.
	Name() string

	// NewNodeCache returns a fresh, empty per-node cache.
	NewNodeCache() Cache

	// NewEdgeCache returns a fresh, empty per-edge cache.
	NewEdgeCache() Cache

	// UpdateNode accumulates one voxel's contribution (its boundary
	// probability value) into a node cache.
	UpdateNode(cache Cache, value float64)

	// UpdateEdge accumulates one boundary voxel's contribution into an edge
	// cache.
	UpdateEdge(cache Cache, value float64)

	// NodeFeatures extracts the node's feature vector from its cache.
	NodeFeatures(cache Cache) ([]float64, error)

	// EdgeFeatures extracts the edge's feature vector. It may read
	// "contextual" values passed in alongside the edge cache (the
	// endpoints' own feature vectors), for features that compare the two
	// sides of the boundary.
	EdgeFeatures(edgeCache Cache, leftNode, rightNode []float64) ([]float64, error)

	// NodeFeatureDim and EdgeFeatureDim report the fixed dimensionality of
	// NodeFeatures/EdgeFeatures output, so callers can preallocate and so
	// the learning engine can validate dataset shape invariants up front.
	NodeFeatureDim() int
	EdgeFeatureDim() int
}
