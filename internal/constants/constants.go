// Package constants provides named constants used throughout the uflab codebase.
// This centralizes the experiment defaults so the CLI, config and tests agree.
package constants

// Connectivity experiment defaults: N = 10, 100, ..., 10^8.
const (
	// DefaultExperimentStart is the number of sites in the first experiment.
	DefaultExperimentStart = 10

	// DefaultExperimentGrowth multiplies the number of sites after each experiment.
	DefaultExperimentGrowth = 10

	// DefaultExperimentSteps is the number of experiments in a run.
	// 10^8 sites is the largest size that fits comfortably in memory.
	DefaultExperimentSteps = 8

	// DefaultExperimentVariant is the engine used by the connectivity experiment.
	DefaultExperimentVariant = "hwqupc"
)

// Benchmark defaults: N doubles from 100 for 11 trials.
const (
	// DefaultBenchmarkStart is the number of sites in the first benchmark trial.
	DefaultBenchmarkStart = 100

	// DefaultBenchmarkGrowth multiplies the number of sites after each trial.
	DefaultBenchmarkGrowth = 2

	// DefaultBenchmarkSteps is the number of benchmark trials.
	DefaultBenchmarkSteps = 11

	// DefaultBenchmarkRuns is the number of timed runs per trial and variant.
	DefaultBenchmarkRuns = 10
)

// DefaultBenchmarkVariants are the engines compared by the benchmark, in
// report order.
var DefaultBenchmarkVariants = []string{"hwqupc", "weighted-height", "wqupc"}

// Forest rendering defaults.
const (
	// DefaultForestSites is the number of sites in a rendered forest.
	DefaultForestSites = 16

	// DefaultForestUnions is the number of merges performed before rendering.
	DefaultForestUnions = 10
)

// ConfigDirName is the directory under $HOME holding config.yaml.
const ConfigDirName = ".uflab"
