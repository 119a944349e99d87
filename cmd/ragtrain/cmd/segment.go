package cmd

import (
	"github.com/spf13/cobra"

	"github.com/brainseg/ragseg/apperr"
	"github.com/brainseg/ragseg/ioadapter"
	"github.com/brainseg/ragseg/rag"
)

var (
	segThreshold  float64
	segOutput     string
	segConnFlag   string
	segNoZeros    bool
	segRemoveIncl bool
)

var segmentCmd = &cobra.Command{
	Use:   "segment <prob_map> <labels>",
	Short: "Build a RAG, agglomerate to a threshold, and write the resulting segmentation",
	Args:  cobra.ExactArgs(2),
	RunE:  runSegment,
}

func init() {
	rootCmd.AddCommand(segmentCmd)
	segmentCmd.Flags().Float64Var(&segThreshold, "threshold", 0.5, "Priority threshold to agglomerate to")
	segmentCmd.Flags().StringVarP(&segOutput, "output", "o", "segmentation.json", "Output path for the segmentation")
	segmentCmd.Flags().StringVar(&segConnFlag, "connectivity", "6", "Connectivity: 4, 8, 6, 18, or 26")
	segmentCmd.Flags().BoolVar(&segNoZeros, "nozeros", false, "Treat label 0 as pure background instead of an ordinary node")
	segmentCmd.Flags().BoolVar(&segRemoveIncl, "remove-inclusions", false, "Remove single-neighbor inclusions before writing output")
}

func runSegment(cmd *cobra.Command, args []string) error {
	probPath, labelsPath := args[0], args[1]
	a := ioadapter.NewJSONAdapter()

	lv, err := a.ReadLabels(labelsPath)
	if err != nil {
		return apperr.Wrap(apperr.CodeExternalIO, apperr.ExitUsage, "failed to read labels", err)
	}
	pv, err := a.ReadProbabilities(probPath, lv.Shape)
	if err != nil {
		return apperr.Wrap(apperr.CodeExternalIO, apperr.ExitUsage, "failed to read probability map", err)
	}

	conn, err := parseConnectivity(segConnFlag)
	if err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, apperr.ExitUsage, "invalid --connectivity", err)
	}

	g, err := rag.NewRAG(lv, pv, rag.WithConnectivity(conn), rag.WithNoZeros(segNoZeros))
	if err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, apperr.ExitInternal, "failed to construct RAG", err)
	}

	if segRemoveIncl {
		if err := g.RemoveInclusions(); err != nil {
			return apperr.Wrap(apperr.CodeInvalidInput, apperr.ExitInternal, "failed to remove inclusions", err)
		}
	}

	if err := g.Agglomerate(segThreshold); err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, apperr.ExitInternal, "agglomeration failed", err)
	}

	seg := g.GetSegmentation()
	if err := a.WriteLabels(segOutput, lv.Shape, seg); err != nil {
		return apperr.Wrap(apperr.CodeExternalIO, apperr.ExitInternal, "failed to write segmentation", err)
	}

	GetLogger().Info("segmentation written to %s", segOutput)
	return nil
}
