package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/brainseg/ragseg/rlog"
)

var (
	verbose    bool
	configPath string
	logger     rlog.Logger = rlog.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "ragtrain",
	Short: "Build region adjacency graphs, extract segmentations/UCMs, and train merge classifiers",
	Long: `ragtrain is a CLI around the ragseg agglomerative image-segmentation
engine. It builds a region adjacency graph from a label volume and a
boundary probability map, and can extract a segmentation at a given
priority threshold, extract a full ultrametric contour map, or run the
active-learning training driver to collect a merge-classifier dataset.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := rlog.LevelInfo
		if verbose {
			level = rlog.LevelDebug
		}
		logger = rlog.NewDefaultLogger(level, cmd.ErrOrStderr())
		return nil
	},
}

// Execute runs the root command and returns whatever error a subcommand's
// RunE produced, letting main map it to an exit code via apperr.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug-level logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Optional YAML config file (accepted; no subcommand reads it)")

	binName := BinName()
	rootCmd.Example = `  # Extract a segmentation at threshold 0.5
  ` + binName + ` segment probs.json labels.json --threshold 0.5 -o seg.json

  # Extract the full ultrametric contour map
  ` + binName + ` ucm probs.json labels.json -o ucm.json

  # Train a merge classifier
  ` + binName + ` train probs.json groundtruth.json --experiment-name demo`
}

// BinName returns the base name of the root command's Use string
// ("ragtrain"), used to build the usage examples.
func BinName() string {
	return filepath.Base(rootCmd.Use)
}

// GetLogger returns the logger configured by the persistent --verbose flag.
func GetLogger() rlog.Logger { return logger }
