// Package config provides unified configuration loading for uflab.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/nvandessel/uflab/internal/constants"
	"github.com/nvandessel/uflab/internal/simulation"
	"github.com/nvandessel/uflab/internal/unionfind"
	"gopkg.in/yaml.v3"
)

// UFLabConfig contains all uflab configuration settings.
type UFLabConfig struct {
	// Experiment contains settings for the connectivity experiment.
	Experiment ExperimentConfig `json:"experiment" yaml:"experiment"`

	// Benchmark contains settings for the timing benchmark.
	Benchmark BenchmarkConfig `json:"benchmark" yaml:"benchmark"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// ExperimentConfig configures the Monte Carlo connectivity experiment.
type ExperimentConfig struct {
	// Variant is the union-find engine, e.g. "hwqupc".
	Variant string `json:"variant" yaml:"variant"`

	// Start is the number of sites in the first experiment.
	Start int `json:"start" yaml:"start"`

	// Growth multiplies the number of sites after each experiment.
	Growth int `json:"growth" yaml:"growth"`

	// Steps is the number of experiments.
	Steps int `json:"steps" yaml:"steps"`
}

// Plan returns the size sequence described by the experiment settings.
func (c ExperimentConfig) Plan() simulation.Plan {
	return simulation.Plan{Start: c.Start, Growth: c.Growth, Steps: c.Steps}
}

// BenchmarkConfig configures the timing benchmark.
type BenchmarkConfig struct {
	// Variants lists the engines to time, in report order.
	Variants []string `json:"variants" yaml:"variants"`

	Start  int `json:"start" yaml:"start"`
	Growth int `json:"growth" yaml:"growth"`
	Steps  int `json:"steps" yaml:"steps"`

	// Runs is the number of timed runs per trial; warmups are derived from it.
	Runs int `json:"runs" yaml:"runs"`
}

// Plan returns the size sequence described by the benchmark settings.
func (c BenchmarkConfig) Plan() simulation.Plan {
	return simulation.Plan{Start: c.Start, Growth: c.Growth, Steps: c.Steps}
}

// LoggingConfig configures uflab's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "trace" logs every union performed by the simulator.
	Level string `json:"level" yaml:"level"`
}

// Default returns a UFLabConfig with sensible defaults.
func Default() *UFLabConfig {
	return &UFLabConfig{
		Experiment: ExperimentConfig{
			Variant: constants.DefaultExperimentVariant,
			Start:   constants.DefaultExperimentStart,
			Growth:  constants.DefaultExperimentGrowth,
			Steps:   constants.DefaultExperimentSteps,
		},
		Benchmark: BenchmarkConfig{
			Variants: slices.Clone(constants.DefaultBenchmarkVariants),
			Start:    constants.DefaultBenchmarkStart,
			Growth:   constants.DefaultBenchmarkGrowth,
			Steps:    constants.DefaultBenchmarkSteps,
			Runs:     constants.DefaultBenchmarkRuns,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.uflab/config.yaml, or "" if the home directory is unknown.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, constants.ConfigDirName, "config.yaml")
}

// Load loads configuration from path, or from the default location when path
// is empty, then applies environment variable overrides.
// Order: defaults -> config file -> environment variables.
// An explicit path must exist; the default location is optional.
func Load(path string) (*UFLabConfig, error) {
	config := Default()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	} else if defaultPath := DefaultPath(); defaultPath != "" {
		if _, statErr := os.Stat(defaultPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(defaultPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	// Apply environment variable overrides
	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
// Keys missing from the file keep their default values.
func LoadFromFile(path string) (*UFLabConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *UFLabConfig) Validate() error {
	if _, err := unionfind.ParseVariant(c.Experiment.Variant); err != nil {
		return fmt.Errorf("experiment.variant: %w", err)
	}
	if err := c.Experiment.Plan().Validate(); err != nil {
		return fmt.Errorf("experiment: %w", err)
	}

	if len(c.Benchmark.Variants) == 0 {
		return fmt.Errorf("benchmark.variants must name at least one variant")
	}
	for _, v := range c.Benchmark.Variants {
		if _, err := unionfind.ParseVariant(v); err != nil {
			return fmt.Errorf("benchmark.variants: %w", err)
		}
	}
	if err := c.Benchmark.Plan().Validate(); err != nil {
		return fmt.Errorf("benchmark: %w", err)
	}
	if c.Benchmark.Runs < 1 {
		return fmt.Errorf("benchmark.runs must be at least 1, got %d", c.Benchmark.Runs)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Malformed numbers are reported rather than ignored.
func applyEnvOverrides(config *UFLabConfig) error {
	if v := os.Getenv("UFLAB_VARIANT"); v != "" {
		config.Experiment.Variant = v
	}

	ints := []struct {
		env    string
		target *int
	}{
		{"UFLAB_START", &config.Experiment.Start},
		{"UFLAB_GROWTH", &config.Experiment.Growth},
		{"UFLAB_STEPS", &config.Experiment.Steps},
		{"UFLAB_BENCH_START", &config.Benchmark.Start},
		{"UFLAB_BENCH_GROWTH", &config.Benchmark.Growth},
		{"UFLAB_BENCH_STEPS", &config.Benchmark.Steps},
		{"UFLAB_BENCH_RUNS", &config.Benchmark.Runs},
	}
	for _, o := range ints {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", o.env, err)
		}
		*o.target = n
	}

	if v := os.Getenv("UFLAB_BENCH_VARIANTS"); v != "" {
		var variants []string
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				variants = append(variants, name)
			}
		}
		config.Benchmark.Variants = variants
	}

	if v := os.Getenv("UFLAB_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	return nil
}
