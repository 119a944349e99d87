// Package rag implements the Region Adjacency Graph over supervoxels:
// construction from a label volume and a boundary-probability map,
// feature-cache accounting, the priority-driven merge loop, inclusion
// removal, and segmentation/UCM extraction (spec.md §2-4).
//
// RAG mutations are single-threaded and synchronous (spec.md §5): every
// public method runs to completion before the next may begin, and a RAG
// must not be shared across goroutines without external locking.
package rag

import (
	"github.com/brainseg/ragseg/classifier"
	"github.com/brainseg/ragseg/featuremgr"
	"github.com/brainseg/ragseg/priorityfn"
	"github.com/brainseg/ragseg/voxel"
)

// Node is a region: a set of voxels sharing a stable id, plus the
// accumulated feature cache the active FeatureManager maintains over it
// (spec.md §3). Node ids are the original label values from the input
// volume; a surviving node after a merge keeps the lower of the two ids.
type Node struct {
	id           int32
	alive        bool
	voxelCount   int64
	exclusionTag int32
	frozen       bool
	cache        featuremgr.Cache
	// neighbors maps neighbor node id to the id of the edge connecting
	// them. Kept per-node (rather than a global adjacency matrix) so
	// Merge's neighbor rewiring (spec.md §4.2 step 4) is O(degree).
	neighbors map[int32]int32
}

// Edge is an adjacency between two live nodes (spec.md §3). U is always the
// smaller of the two endpoint ids.
type Edge struct {
	id            int32
	alive         bool
	frozen        bool
	u, v          int32
	boundaryCount int64
	cache         featuremgr.Cache
	priority      float64
	generation    uint64
}

// Endpoints returns the edge's two node ids, u < v.
func (e *Edge) Endpoints() (int32, int32) { return e.u, e.v }

// Priority returns the edge's last-computed priority. Merge recomputes it
// whenever the edge is renamed or combined; Agglomerate sets it to the
// priority of the queue entry it pops.
func (e *Edge) Priority() float64 { return e.priority }

// RAG is the Region Adjacency Graph (spec.md §2-4).
type RAG struct {
	shape        voxel.Shape
	connectivity voxel.Connectivity
	nozeros      bool

	fm         featuremgr.FeatureManager
	priority   priorityfn.PriorityFunc
	classifier classifier.Classifier // nil unless WithClassifier was used

	labels []int32 // original, per-voxel labels; owned exclusively by the RAG (spec.md §5)

	nodes []*Node // index == node id; nodes[0] is nil under nozeros, else label 0's node
	edges []*Edge // index == id-1 (edge ids are 1-based)

	// redirect[id] is the current owner of a node id that has been absorbed
	// by a merge; alive nodes satisfy redirect[id] == id. Path-compressed
	// lazily in resolveNode.
	redirect []int32

	// edgeOwner/edgeMergedAt implement the UCM bookkeeping described in
	// DESIGN.md: when an edge's identity is absorbed into another edge
	// (a combine; a rename keeps the id), edgeOwner tracks the new representative; when an
	// edge is actually consumed by a node merge, edgeMergedAt records the
	// priority at which that happened.
	edgeOwner    map[int32]int32
	edgeMergedAt map[int32]float64

	// boundaryEdgesOf holds, for every voxel index that was ever recorded
	// as lying on a boundary, the (possibly several, at a junction) edge
	// ids whose construction-time contribution it fed. Sparse: interior
	// voxels have no entry. Built only if recordUCM is requested via
	// options, to avoid the memory cost otherwise (spec.md §5 Memory).
	boundaryEdgesOf map[int64][]int32
	recordUCM       bool

	q          *pq
	metrics    *Metrics
	nextEdgeID int32
}
