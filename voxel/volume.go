package voxel

import "fmt"

// LabelVolume is a dense, row-major integer label volume. Label 0 is
// reserved for the boundary/background class when NoZeros mode is enabled
// (spec.md §3); such voxels never belong to a node but contribute to the
// edges they border.
//
// LabelVolume is exclusively owned by its RAG after construction — callers
// must not mutate Labels externally once a RAG has been built over it
// (spec.md §5).
type LabelVolume struct {
	Shape   Shape
	Labels  []int32
	strides []int64
}

// NewLabelVolume validates shape against the flat labels slice and returns a
// LabelVolume. Negative labels are rejected (ErrNegativeLabel).
func NewLabelVolume(shape Shape, labels []int32) (*LabelVolume, error) {
	if len(shape) == 0 || shape.NumVoxels() == 0 {
		return nil, ErrEmptyShape
	}
	if int64(len(labels)) != shape.NumVoxels() {
		return nil, fmt.Errorf("%w: want %d got %d", ErrDataLength, shape.NumVoxels(), len(labels))
	}
	for _, l := range labels {
		if l < 0 {
			return nil, ErrNegativeLabel
		}
	}
	return &LabelVolume{Shape: shape, Labels: labels, strides: shape.strides()}, nil
}

// Len returns the total voxel count.
func (v *LabelVolume) Len() int { return len(v.Labels) }

// Index converts an N-D coordinate into a flat offset. Coordinates outside
// the volume are not checked by Index itself; callers should use InBounds
// first when the coordinate is neighbor-derived.
func (v *LabelVolume) Index(coord []int) int64 {
	var idx int64
	for i, c := range coord {
		idx += int64(c) * v.strides[i]
	}
	return idx
}

// Coordinate is the inverse of Index.
func (v *LabelVolume) Coordinate(idx int64) []int {
	coord := make([]int, len(v.Shape))
	for i, st := range v.strides {
		coord[i] = int(idx / st)
		idx %= st
	}
	return coord
}

// InBounds reports whether coord lies within the volume.
func (v *LabelVolume) InBounds(coord []int) bool {
	if len(coord) != len(v.Shape) {
		return false
	}
	for i, c := range coord {
		if c < 0 || c >= v.Shape[i] {
			return false
		}
	}
	return true
}

// ProbabilityVolume is a dense float boundary-probability map. It may carry
// one trailing channel dimension beyond the spatial shape shared with a
// LabelVolume (spec.md §4.1). ProbabilityVolume is read-only once
// constructed and may be shared across RAGs (spec.md §5).
type ProbabilityVolume struct {
	SpatialShape Shape
	Channels     int // 0 or 1 means single-channel; N>1 means N channels
	Values       []float64
	strides      []int64
}

// NewProbabilityVolume validates that values has the right length for
// spatialShape × max(channels,1).
func NewProbabilityVolume(spatialShape Shape, channels int, values []float64) (*ProbabilityVolume, error) {
	if len(spatialShape) == 0 || spatialShape.NumVoxels() == 0 {
		return nil, ErrEmptyShape
	}
	c := channels
	if c <= 0 {
		c = 1
	}
	want := spatialShape.NumVoxels() * int64(c)
	if int64(len(values)) != want {
		return nil, fmt.Errorf("%w: want %d got %d", ErrDataLength, want, len(values))
	}
	return &ProbabilityVolume{
		SpatialShape: spatialShape,
		Channels:     channels,
		Values:       values,
		strides:      spatialShape.strides(),
	}, nil
}

// At returns the (single-channel) probability value at a spatial voxel
// index. For multi-channel volumes, use AtChannel.
func (p *ProbabilityVolume) At(voxelIdx int64) float64 {
	if p.Channels <= 1 {
		return p.Values[voxelIdx]
	}
	return p.AtChannel(voxelIdx, 0)
}

// AtChannel returns the probability value at a spatial voxel index for a
// specific channel.
func (p *ProbabilityVolume) AtChannel(voxelIdx int64, ch int) float64 {
	c := p.Channels
	if c <= 0 {
		c = 1
	}
	return p.Values[voxelIdx*int64(c)+int64(ch)]
}

// ExclusionVolume is a dense integer tag volume aligned with a LabelVolume's
// spatial shape. A nonzero tag marks a label-level merge constraint
// (spec.md §3): two nodes sharing a nonzero tag must never be merged (I5).
type ExclusionVolume struct {
	Shape Shape
	Tags  []int32
}

// NewExclusionVolume validates tags against shape.
func NewExclusionVolume(shape Shape, tags []int32) (*ExclusionVolume, error) {
	if int64(len(tags)) != shape.NumVoxels() {
		return nil, fmt.Errorf("%w: want %d got %d", ErrDataLength, shape.NumVoxels(), len(tags))
	}
	return &ExclusionVolume{Shape: shape, Tags: tags}, nil
}
