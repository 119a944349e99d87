package cmd

import (
	"fmt"

	"github.com/brainseg/ragseg/voxel"
)

func parseConnectivity(s string) (voxel.Connectivity, error) {
	switch s {
	case "4":
		return voxel.Conn4, nil
	case "8":
		return voxel.Conn8, nil
	case "6":
		return voxel.Conn6, nil
	case "18":
		return voxel.Conn18, nil
	case "26":
		return voxel.Conn26, nil
	default:
		return 0, fmt.Errorf("unknown connectivity %q (valid: 4, 8, 6, 18, 26)", s)
	}
}
