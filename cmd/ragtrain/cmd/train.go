package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brainseg/ragseg/apperr"
	"github.com/brainseg/ragseg/featuremgr"
	"github.com/brainseg/ragseg/ioadapter"
	"github.com/brainseg/ragseg/learn"
	"github.com/brainseg/ragseg/voxel"
)

var (
	experimentName string

	learningMode   string
	labelingMode   string
	priorityMode   string
	numEpochs      uint
	maxNumEpochs   uint
	minNumExamples uint
	numExamples    uint
	noMemory       bool
	noUnique       bool
	noLearnFlat    bool

	featureManagerExpr string
	activeVI           bool
	activeVIBeta       float64

	singleChannel   bool
	noChannelData   bool
	removeInclude   bool
	trainNoZeros    bool
	watershedFile   string
	synapseFile     string
	synapseDilation int
	seedCCThreshold int
	trainConnFlag   string

	outputDir             string
	trainingDataExtension string
	classifierExtension   string
)

var trainCmd = &cobra.Command{
	Use:   "train <prob_map> <ground_truth>",
	Short: "Run the active-learning training driver and write a labeled merge dataset",
	Args:  cobra.ExactArgs(2),
	RunE:  runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().StringVar(&experimentName, "experiment-name", "", "Unique experiment name, no path separators (required)")
	trainCmd.MarkFlagRequired("experiment-name")

	trainCmd.Flags().StringVar(&learningMode, "learning-mode", "strict", "Learning mode: strict, loose")
	trainCmd.Flags().StringVar(&labelingMode, "labeling-mode", "assignment", "Labeling mode: assignment, voi-sign, rand-sign")
	trainCmd.Flags().StringVar(&priorityMode, "priority-mode", "boundary_median", "Priority mode: random, boundary_median, active")
	trainCmd.Flags().UintVar(&numEpochs, "num-epochs", 5, "Minimum number of epochs")
	trainCmd.Flags().UintVar(&maxNumEpochs, "max-num-epochs", 20, "Maximum number of epochs")
	trainCmd.Flags().UintVar(&minNumExamples, "min-num-examples", 0, "Log a warning if training yields fewer examples than this (0 = no check)")
	trainCmd.Flags().UintVar(&numExamples, "num-examples", 0, "Sample cap on the returned dataset (0 = unbounded)")
	trainCmd.Flags().BoolVar(&noMemory, "no-memory", false, "Do not keep each epoch's dataset separately")
	trainCmd.Flags().BoolVar(&noUnique, "no-unique", false, "Do not deduplicate examples by feature vector")
	trainCmd.Flags().BoolVar(&noLearnFlat, "no-learn-flat", false, "Disable the flat-RAG warm start for active priority mode")

	trainCmd.Flags().StringVar(&featureManagerExpr, "feature-manager", "moments", "Feature manager: moments, histogram")
	trainCmd.Flags().BoolVar(&activeVI, "active-vi", false, "Use expected-VI-change instead of raw classifier probability in active mode")
	trainCmd.Flags().Float64Var(&activeVIBeta, "active-vi-beta", 1.0, "False-merge weight for expected-VI-change")

	trainCmd.Flags().BoolVar(&singleChannel, "single-channel", false, "Unused placeholder: the channel count is read from the probability file and channel 0 is used")
	trainCmd.Flags().BoolVar(&noChannelData, "no-channel-data", false, "Unused placeholder, see --single-channel")
	trainCmd.Flags().BoolVar(&removeInclude, "remove-inclusions", false, "Remove single-neighbor inclusions before each epoch")
	trainCmd.Flags().BoolVar(&trainNoZeros, "nozeros", false, "Treat label 0 as pure background instead of an ordinary node")
	trainCmd.Flags().StringVar(&watershedFile, "watershed-file", "", "Unused placeholder: watershed computation is an external collaborator")
	trainCmd.Flags().StringVar(&synapseFile, "synapse-file", "", "Unused placeholder: synapse annotation geometry is an external collaborator")
	trainCmd.Flags().IntVar(&synapseDilation, "synapse-dilation", 0, "Unused placeholder, see --synapse-file")
	trainCmd.Flags().IntVar(&seedCCThreshold, "seed-cc-threshold", 0, "Unused placeholder: seed connected-component sizing is an external collaborator")
	trainCmd.Flags().StringVar(&trainConnFlag, "connectivity", "6", "Connectivity: 4, 8, 6, 18, or 26")

	trainCmd.Flags().StringVar(&outputDir, "output-dir", "./output", "Output directory for the training dataset")
	trainCmd.Flags().StringVar(&trainingDataExtension, "training-data-extension", ".json", "File extension for the written dataset")
	trainCmd.Flags().StringVar(&classifierExtension, "classifier-extension", ".json", "Unused placeholder: train writes no classifier file")
}

func runTrain(cmd *cobra.Command, args []string) error {
	if strings.Contains(experimentName, "/") {
		return apperr.New(apperr.CodeInvalidInput, apperr.ExitUsage, "experiment name must not contain '/'")
	}

	probPath, gtPath := args[0], args[1]
	a := ioadapter.NewJSONAdapter()

	// The ground-truth file doubles as the label volume's shape source: the
	// training driver's two positional arguments are the probability map
	// and the ground truth, per spec.md §6; the initial label volume is
	// always a trivial one-node-per-voxel oversegmentation of that shape,
	// since the engine always rebuilds a fresh RAG per epoch.
	gtVolume, err := a.ReadLabels(gtPath)
	if err != nil {
		return apperr.Wrap(apperr.CodeExternalIO, apperr.ExitUsage, "failed to read ground truth", err)
	}
	pv, err := a.ReadProbabilities(probPath, gtVolume.Shape)
	if err != nil {
		return apperr.Wrap(apperr.CodeExternalIO, apperr.ExitUsage, "failed to read probability map", err)
	}

	conn, err := parseConnectivity(trainConnFlag)
	if err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, apperr.ExitUsage, "invalid --connectivity", err)
	}
	lm, err := learn.ParseLearningMode(learningMode)
	if err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, apperr.ExitUsage, "invalid --learning-mode", err)
	}
	labelMode, err := learn.ParseLabelingMode(labelingMode)
	if err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, apperr.ExitUsage, "invalid --labeling-mode", err)
	}
	pm, err := learn.ParsePriorityMode(priorityMode)
	if err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, apperr.ExitUsage, "invalid --priority-mode", err)
	}

	fm, err := buildFeatureManager(featureManagerExpr)
	if err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, apperr.ExitUsage, "invalid --feature-manager", err)
	}

	opts := learn.DefaultOptions()
	opts.Connectivity = conn
	opts.NoZeros = trainNoZeros
	opts.FeatureManager = fm
	opts.PriorityMode = pm
	opts.LabelingMode = labelMode
	opts.LearningMode = lm
	opts.LearnFlat = !noLearnFlat
	opts.ActiveVI = activeVI
	opts.ActiveVIBeta = activeVIBeta
	opts.RemoveInclude = removeInclude
	opts.MinNumEpochs = int(numEpochs)
	opts.MaxNumEpochs = int(maxNumEpochs)
	opts.Memory = !noMemory
	opts.Unique = !noUnique
	opts.Logger = GetLogger()

	// Initial oversegmentation: every voxel starts as its own node, the
	// trivial starting RAG an agglomerative engine is meant to coarsen.
	initialLabels, err := voxel.NewLabelVolume(gtVolume.Shape, identityLabels(gtVolume.Shape))
	if err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, apperr.ExitInternal, "failed to build initial oversegmentation", err)
	}

	l := learn.NewLearner(opts)
	result, err := l.Run(initialLabels, pv, gtVolume.Labels)
	if err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, apperr.ExitInternal, "training failed", err)
	}

	if minNumExamples > 0 && result.Dataset.Len() < int(minNumExamples) {
		GetLogger().Warn("training produced %d examples, below --min-num-examples %d", result.Dataset.Len(), minNumExamples)
	}
	if numExamples > 0 && result.Dataset.Len() > int(numExamples) {
		result.Dataset.X = result.Dataset.X[:numExamples]
		result.Dataset.Y = result.Dataset.Y[:numExamples]
		result.Dataset.W = result.Dataset.W[:numExamples]
	}

	outPath := fmt.Sprintf("%s/%s%s", outputDir, experimentName, trainingDataExtension)
	info := fmt.Sprintf("experiment=%s epochs=%d priority_mode=%s labeling_mode=%s learning_mode=%s",
		experimentName, result.Epochs, priorityMode, labelingMode, learningMode)
	if err := a.WriteDataset(outPath, result.Dataset, info); err != nil {
		return apperr.Wrap(apperr.CodeExternalIO, apperr.ExitInternal, "failed to write training dataset", err)
	}

	GetLogger().Info("training dataset (%d examples, %d epochs) written to %s", result.Dataset.Len(), result.Epochs, outPath)
	return nil
}

func buildFeatureManager(name string) (featuremgr.FeatureManager, error) {
	registry := featuremgr.NewRegistry()
	registry.RegisterBuiltins()
	return registry.Create(name, nil)
}

func identityLabels(shape voxel.Shape) []int32 {
	n := shape.NumVoxels()
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(i) + 1
	}
	return out
}
