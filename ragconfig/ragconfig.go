// Package ragconfig holds the Viper-backed persisted defaults for the
// ragtrain training driver's flags (spec.md §6), grounded on
// perf-analysis/pkg/config.Config.
package ragconfig

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config is the full set of training-driver defaults, loadable from an
// optional YAML file and overridable by explicit CLI flags.
type Config struct {
	Learning LearningConfig `mapstructure:"learning"`
	Feature  FeatureConfig  `mapstructure:"feature"`
	Volume   VolumeConfig   `mapstructure:"volume"`
	Paths    PathsConfig    `mapstructure:"paths"`
}

// LearningConfig mirrors spec.md §6's learning-mode flags.
type LearningConfig struct {
	ExperimentName  string  `mapstructure:"experiment_name" validate:"required,excludesrune=/"`
	LearningMode    string  `mapstructure:"learning_mode" validate:"oneof=strict loose"`
	LabelingMode    string  `mapstructure:"labeling_mode" validate:"oneof=assignment voi-sign rand-sign"`
	PriorityMode    string  `mapstructure:"priority_mode" validate:"oneof=random boundary_median active"`
	NumEpochs       int     `mapstructure:"num_epochs" validate:"gte=0"`
	MaxNumEpochs    int     `mapstructure:"max_num_epochs" validate:"gte=1"`
	MinNumExamples  int     `mapstructure:"min_num_examples" validate:"gte=0"`
	NumExamples     int     `mapstructure:"num_examples" validate:"gte=0"`
	NoMemory        bool    `mapstructure:"no_memory"`
	NoUnique        bool    `mapstructure:"no_unique"`
	NoLearnFlat     bool    `mapstructure:"no_learn_flat"`
	ActiveVI        bool    `mapstructure:"active_vi"`
	ActiveVIBeta    float64 `mapstructure:"active_vi_beta" validate:"gte=0"`
	RemoveInclusion bool    `mapstructure:"remove_inclusions"`
	Seed            int64   `mapstructure:"seed"`
}

// FeatureConfig mirrors the feature-manager-related flags.
type FeatureConfig struct {
	Manager       string `mapstructure:"manager" validate:"oneof=moments histogram"`
	SingleChannel bool   `mapstructure:"single_channel"`
	NoChannelData bool   `mapstructure:"no_channel_data"`
	HistogramBins int    `mapstructure:"histogram_bins" validate:"gte=1"`
}

// VolumeConfig mirrors the volume-related flags.
type VolumeConfig struct {
	Connectivity    string `mapstructure:"connectivity" validate:"oneof=4 6 18 26"`
	NoZeros         bool   `mapstructure:"nozeros"`
	WatershedFile   string `mapstructure:"watershed_file"`
	SynapseFile     string `mapstructure:"synapse_file"`
	SynapseDilation int    `mapstructure:"synapse_dilation" validate:"gte=0"`
	SeedCCThreshold int    `mapstructure:"seed_cc_threshold" validate:"gte=0"`
}

// PathsConfig mirrors the output-path flags.
type PathsConfig struct {
	OutputDir             string `mapstructure:"output_dir" validate:"required"`
	TrainingDataExtension string `mapstructure:"training_data_extension"`
	ClassifierExtension   string `mapstructure:"classifier_extension"`
}

// Defaults returns the baseline configuration before a config file or CLI
// flags are applied.
func Defaults() Config {
	return Config{
		Learning: LearningConfig{
			ExperimentName: "default",
			LearningMode:   "strict",
			LabelingMode:   "assignment",
			PriorityMode:   "boundary_median",
			MaxNumEpochs:   10,
			ActiveVIBeta:   1.0,
		},
		Feature: FeatureConfig{
			Manager:       "moments",
			HistogramBins: 32,
		},
		Volume: VolumeConfig{
			Connectivity: "6",
		},
		Paths: PathsConfig{
			OutputDir:             "./output",
			TrainingDataExtension: ".json",
			ClassifierExtension:   ".json",
		},
	}
}

// Load reads an optional YAML config file over the defaults; a missing
// path is not an error (callers proceed with defaults plus flag
// overrides), mirroring perf-analysis/pkg/config.Load's tolerant behavior.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	def := Defaults()
	if err := bindDefaults(v, def); err != nil {
		return nil, err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return nil, fmt.Errorf("ragconfig: failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ragconfig: failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func bindDefaults(v *viper.Viper, def Config) error {
	v.SetDefault("learning", def.Learning)
	v.SetDefault("feature", def.Feature)
	v.SetDefault("volume", def.Volume)
	v.SetDefault("paths", def.Paths)
	return nil
}
