// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// SamplerAnnealing is the only sampler currently implemented.
const SamplerAnnealing = "simulated_annealing"

// MutationConfig is the discrete distribution over edit kinds. The
// entries need not sum to 1; they are normalized before sampling.
type MutationConfig struct {
	// probability of a point substitution
	Substitution float64 `mapstructure:"substitution"`

	// probability of inserting a residue
	Insertion float64 `mapstructure:"insertion"`

	// probability of deleting a residue
	Deletion float64 `mapstructure:"deletion"`
}

// ScheduleConfig is the annealing schedule.
type ScheduleConfig struct {
	// T0, the starting temperature. Often chosen in [1, 100]
	Temperature float64 `mapstructure:"temperature"`

	// rate of temperature decay. Often chosen in [0.001, 0.1]
	Decay float64 `mapstructure:"decay"`
}

// WeightsConfig maps each energy term to its scalar weight. A weight
// of 0 disables the term.
type WeightsConfig struct {
	Length        float64 `mapstructure:"length"`
	Identity      float64 `mapstructure:"identity"`
	PTM           float64 `mapstructure:"ptm"`
	PLDDT         float64 `mapstructure:"plddt"`
	Globularity   float64 `mapstructure:"globularity"`
	BackboneCoord float64 `mapstructure:"bb-coord"`
	AllAtomCoord  float64 `mapstructure:"all-atom-coord"`
	SurfaceHydro  float64 `mapstructure:"sasa"`
}

// OracleConfig points at the external predictor binaries.
type OracleConfig struct {
	// path to the folding predictor executable
	FoldBin string `mapstructure:"fold-bin"`

	// path to the representation extractor executable (protmc embed)
	EmbedBin string `mapstructure:"embed-bin"`

	// sequences per extractor invocation
	BatchSize int `mapstructure:"batch-size"`
}

// Config is the root-level settings struct and is a mix of settings
// available in settings.yaml and those available from the command line.
type Config struct {
	// the sampling algorithm. Only simulated annealing is implemented
	Sampler string `mapstructure:"sampler"`

	// the number of independent trajectories
	Trajectories int `mapstructure:"trajectories"`

	// sampling steps per trajectory. Often chosen in [1000, 10000]
	Steps int `mapstructure:"steps"`

	// maximum sequence length before the length penalty applies
	MaxLength int `mapstructure:"max-length"`

	// whether to predict structures and use structure based terms
	PredictStructure bool `mapstructure:"predict-structure"`

	// Mutation is the edit-kind distribution
	Mutation MutationConfig `mapstructure:"mutation"`

	// Schedule is the annealing schedule
	Schedule ScheduleConfig `mapstructure:"schedule"`

	// Weights of the energy terms
	Weights WeightsConfig `mapstructure:"weights"`

	// Oracle settings for the external predictors
	Oracle OracleConfig `mapstructure:"oracle"`

	// Verbose logging
	Verbose bool `mapstructure:"verbose"`
}

// New returns a new Config populated by Viper settings (either from
// the local settings.yaml and/or command line arguments) and validated.
func New() (*Config, error) {
	setDefaults()

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %v", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults mirrors the optimizer's documented defaults.
func setDefaults() {
	viper.SetDefault("sampler", SamplerAnnealing)
	viper.SetDefault("trajectories", 5)
	viper.SetDefault("steps", 1000)
	viper.SetDefault("max-length", 200)
	viper.SetDefault("predict-structure", true)

	viper.SetDefault("mutation.substitution", 0.6)
	viper.SetDefault("mutation.insertion", 0.2)
	viper.SetDefault("mutation.deletion", 0.2)

	viper.SetDefault("schedule.temperature", 10.0)
	viper.SetDefault("schedule.decay", 0.01)

	viper.SetDefault("weights.length", 0.2)
	viper.SetDefault("weights.identity", 0.2)
	viper.SetDefault("weights.ptm", 0.2)
	viper.SetDefault("weights.plddt", 0.2)
	viper.SetDefault("weights.globularity", 0.002)
	viper.SetDefault("weights.bb-coord", 0.02)
	viper.SetDefault("weights.all-atom-coord", 0.02)
	viper.SetDefault("weights.sasa", 0.02)

	viper.SetDefault("oracle.fold-bin", "esmfold")
	viper.SetDefault("oracle.embed-bin", "esmembed")
	viper.SetDefault("oracle.batch-size", 10)
}

// Validate checks settings that would otherwise fail mid-run. It runs
// before the step loop starts.
func (c *Config) Validate() error {
	if c.Sampler != SamplerAnnealing {
		return fmt.Errorf("failed to validate settings: unknown sampler %q", c.Sampler)
	}

	if c.Trajectories < 1 {
		return errors.New("failed to validate settings: trajectories must be >= 1")
	}

	if c.Steps < 1 {
		return errors.New("failed to validate settings: steps must be >= 1")
	}

	if c.MaxLength < 1 {
		return errors.New("failed to validate settings: max-length must be >= 1")
	}

	m := c.Mutation
	if m.Substitution < 0 || m.Insertion < 0 || m.Deletion < 0 {
		return errors.New("failed to validate settings: negative mutation probability")
	}
	if m.Substitution+m.Insertion+m.Deletion == 0 {
		return errors.New("failed to validate settings: mutation probabilities sum to zero")
	}

	if c.Schedule.Temperature <= 0 {
		return errors.New("failed to validate settings: temperature must be > 0")
	}
	if c.Schedule.Decay < 0 {
		return errors.New("failed to validate settings: decay must be >= 0")
	}

	w := c.Weights
	for name, weight := range map[string]float64{
		"length":         w.Length,
		"identity":       w.Identity,
		"ptm":            w.PTM,
		"plddt":          w.PLDDT,
		"globularity":    w.Globularity,
		"bb-coord":       w.BackboneCoord,
		"all-atom-coord": w.AllAtomCoord,
		"sasa":           w.SurfaceHydro,
	} {
		if weight < 0 {
			return fmt.Errorf("failed to validate settings: weight %s is negative", name)
		}
	}

	if c.Oracle.BatchSize < 1 {
		return errors.New("failed to validate settings: oracle batch-size must be >= 1")
	}

	return nil
}
