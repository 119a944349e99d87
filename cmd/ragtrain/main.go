// Command ragtrain is the CLI shell around the ragseg segmentation engine:
// it builds region adjacency graphs, extracts segmentations and UCMs, and
// drives the active-learning training loop (spec.md §6).
package main

import (
	"os"

	"github.com/brainseg/ragseg/apperr"
	"github.com/brainseg/ragseg/cmd/ragtrain/cmd"
)

func main() {
	err := cmd.Execute()
	os.Exit(apperr.ExitCode(err))
}
