package voxel

// NeighborOffsets returns the coordinate deltas for connectivity c, in a
// fixed, deterministic order. rag walks offsets in this order when it
// collects a junction voxel's distinct neighbor labels, so the order fixes
// the order in which edges are created; every distinct pair still receives
// the junction voxel's contribution.
//
// Mirrors gridgraph.GridGraph.neighborOffsets, extended to 3 dimensions.
func NeighborOffsets(c Connectivity) [][]int {
	switch c {
	case Conn4:
		return [][]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	case Conn8:
		return [][]int{
			{-1, 0}, {1, 0}, {0, -1}, {0, 1},
			{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
		}
	case Conn6:
		return [][]int{
			{-1, 0, 0}, {1, 0, 0},
			{0, -1, 0}, {0, 1, 0},
			{0, 0, -1}, {0, 0, 1},
		}
	case Conn18:
		offs := Conn6Offsets()
		for dz := -1; dz <= 1; dz++ {
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nonZero := 0
					if dz != 0 {
						nonZero++
					}
					if dy != 0 {
						nonZero++
					}
					if dx != 0 {
						nonZero++
					}
					if nonZero == 2 {
						offs = append(offs, []int{dz, dy, dx})
					}
				}
			}
		}
		return offs
	case Conn26:
		var offs [][]int
		for dz := -1; dz <= 1; dz++ {
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dz == 0 && dy == 0 && dx == 0 {
						continue
					}
					offs = append(offs, []int{dz, dy, dx})
				}
			}
		}
		return offs
	default:
		return nil
	}
}

// Conn6Offsets is exposed separately because Conn18 builds on it.
func Conn6Offsets() [][]int {
	return [][]int{
		{-1, 0, 0}, {1, 0, 0},
		{0, -1, 0}, {0, 1, 0},
		{0, 0, -1}, {0, 0, 1},
	}
}

// Add returns coord shifted by offset; both must have equal length.
func Add(coord []int, offset []int) []int {
	out := make([]int, len(coord))
	for i := range coord {
		out[i] = coord[i] + offset[i]
	}
	return out
}
