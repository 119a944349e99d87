// Package priorityfn implements the merge-priority functions of spec.md
// §4.5: boundary-median, classifier-probability, and expected-change-in-VI.
//
// A priority function never holds a *rag.RAG directly — that would make
// this package import rag, which already imports priorityfn for the
// PriorityFunc type. Instead it is handed a RAGView, the minimal read-only
// slice of RAG behavior it needs. *rag.RAG satisfies RAGView without rag
// importing this package for anything but the function type itself.
package priorityfn

import "github.com/brainseg/ragseg/featuremgr"

// RAGView is the read-only view of a RAG a priority function may consult.
// rag.RAG implements this; nothing in this package constructs one.
type RAGView interface {
	// EdgeEndpoints returns the two node ids an edge connects.
	EdgeEndpoints(edgeID int32) (u, v int32, err error)
	// NodeFeatureVector returns the feature vector for a node's cache.
	NodeFeatureVector(nodeID int32) ([]float64, error)
	// EdgeFeatureVector returns the feature vector for an edge's cache,
	// given its two endpoint feature vectors (spec.md §4.7 concat order).
	EdgeFeatureVector(edgeID int32, leftNode, rightNode []float64) ([]float64, error)
	// FeatureManager exposes the active feature manager, e.g. so
	// boundary-median can call the manager's ApproxMedian on an edge's raw
	// cache.
	FeatureManager() featuremgr.FeatureManager
	// EdgeCache returns the accumulated Cache for an edge, for priority
	// functions (boundary-median) that read it directly instead of going
	// through the NodeFeatures/EdgeFeatures contract.
	EdgeCache(edgeID int32) (featuremgr.Cache, error)
	// Classify scores a concatenated feature vector with the trained merge
	// classifier, if one is configured (classifier-probability mode).
	Classify(x []float64) (float64, error)
}

// PriorityFunc computes the merge priority of an edge: lower values are
// merged first (spec.md §4.3, a min-priority queue). Implementations must
// be deterministic given the current RAG state and must return a finite
// value or a non-nil error.
type PriorityFunc func(g RAGView, edgeID int32) (float64, error)
