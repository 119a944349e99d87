package rag

import "errors"

// Sentinel errors realizing the abstract error kinds of spec.md §7.
//
// InvalidInput and FeatureContractViolation are fatal — the core surfaces
// them unchanged. MergeForbidden is locally recoverable: the caller (the
// agglomeration loop itself, or a direct Merge caller) may freeze the
// offending edge and continue. StaleQueueEntry is never exported: it is an
// internal pqueue condition the agglomeration loop checks via generation
// comparison and silently discards.
var (
	// ErrInvalidInput covers shape mismatches, negative labels, and empty
	// volumes passed to NewRAG.
	ErrInvalidInput = errors.New("rag: invalid input")

	// ErrMergeForbidden is returned by Merge when the two endpoints share a
	// nonzero exclusion tag (I5).
	ErrMergeForbidden = errors.New("rag: merge forbidden by exclusion constraint")

	// ErrFeatureContractViolation is returned when a feature manager
	// produces a non-finite feature value.
	ErrFeatureContractViolation = errors.New("rag: feature contract violation")

	// ErrNodeNotFound is returned when an operation names a node id that
	// does not exist or has already been absorbed.
	ErrNodeNotFound = errors.New("rag: node not found")

	// ErrEdgeNotFound is returned when an operation names an edge id that
	// does not exist or has already been removed.
	ErrEdgeNotFound = errors.New("rag: edge not found")

	// ErrEdgeFrozen is returned by Merge when the edge between u and v has
	// previously failed with ErrMergeForbidden and been frozen.
	ErrEdgeFrozen = errors.New("rag: edge is frozen")
)
