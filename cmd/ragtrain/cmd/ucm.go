package cmd

import (
	"github.com/spf13/cobra"

	"github.com/brainseg/ragseg/apperr"
	"github.com/brainseg/ragseg/ioadapter"
	"github.com/brainseg/ragseg/rag"
)

var (
	ucmOutput   string
	ucmConnFlag string
	ucmNoZeros  bool
)

var ucmCmd = &cobra.Command{
	Use:   "ucm <prob_map> <labels>",
	Short: "Build a RAG, fully agglomerate it, and write the resulting ultrametric contour map",
	Args:  cobra.ExactArgs(2),
	RunE:  runUCM,
}

func init() {
	rootCmd.AddCommand(ucmCmd)
	ucmCmd.Flags().StringVarP(&ucmOutput, "output", "o", "ucm.json", "Output path for the UCM")
	ucmCmd.Flags().StringVar(&ucmConnFlag, "connectivity", "6", "Connectivity: 4, 8, 6, 18, or 26")
	ucmCmd.Flags().BoolVar(&ucmNoZeros, "nozeros", false, "Treat label 0 as pure background instead of an ordinary node")
}

func runUCM(cmd *cobra.Command, args []string) error {
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

	conn, err := parseConnectivity(ucmConnFlag)
	if err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, apperr.ExitUsage, "invalid --connectivity", err)
	}

	g, err := rag.NewRAG(lv, pv, rag.WithConnectivity(conn), rag.WithNoZeros(ucmNoZeros), rag.WithUCMRecording(true))
	if err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, apperr.ExitInternal, "failed to construct RAG", err)
	}

	if err := g.AgglomerateAll(); err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, apperr.ExitInternal, "agglomeration failed", err)
	}

	ucm, err := g.GetUCM()
	if err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, apperr.ExitInternal, "failed to extract UCM", err)
	}

	if err := a.WriteFloatVolume(ucmOutput, lv.Shape, ucm); err != nil {
		return apperr.Wrap(apperr.CodeExternalIO, apperr.ExitInternal, "failed to write UCM", err)
	}

	GetLogger().Info("UCM written to %s", ucmOutput)
	return nil
}
