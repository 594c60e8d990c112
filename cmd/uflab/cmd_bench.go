package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/nvandessel/uflab/internal/benchmark"
	"github.com/nvandessel/uflab/internal/report"
	"github.com/nvandessel/uflab/internal/simulation"
	"github.com/nvandessel/uflab/internal/unionfind"
	"github.com/spf13/cobra"
)

// benchRun is one timed trial of one variant.
type benchRun struct {
	Run        int               `json:"run"`
	Sites      int               `json:"sites"`
	Variant    unionfind.Variant `json:"variant"`
	MeanProbes float64           `json:"mean_probes"`
	benchmark.Result
}

// benchOutput is the JSON form of a benchmark.
type benchOutput struct {
	Plan     simulation.Plan     `json:"plan"`
	Variants []unionfind.Variant `json:"variants"`
	Results  []benchRun          `json:"results"`
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time the connectivity experiment for several variants",
		Long: `Benchmark union-find variants on the connectivity experiment.

For each N in the plan and each variant, the experiment is run --runs
times under the benchmark timer after a short untimed warmup. The mean
time per run and the mean number of pairs drawn are printed, followed
by one series of mean times per variant.

Examples:
  uflab bench                                   # 100, 200, ... 102400 sites
  uflab bench --variants hwqupc,quick-union --runs 20
  uflab bench --steps 4 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("variants") {
				cfg.Benchmark.Variants, _ = cmd.Flags().GetStringSlice("variants")
			}
			overrideInt(cmd, "start", &cfg.Benchmark.Start)
			overrideInt(cmd, "growth", &cfg.Benchmark.Growth)
			overrideInt(cmd, "steps", &cfg.Benchmark.Steps)
			overrideInt(cmd, "runs", &cfg.Benchmark.Runs)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			logger := newLogger(cmd, cfg)

			variants := make([]unionfind.Variant, len(cfg.Benchmark.Variants))
			for i, name := range cfg.Benchmark.Variants {
				if variants[i], err = unionfind.ParseVariant(name); err != nil {
					return err
				}
			}
			plan := cfg.Benchmark.Plan()

			var progress io.Writer
			if !jsonOut {
				progress = cmd.OutOrStdout()
			}
			runs, err := runBenchmark(plan, variants, cfg.Benchmark.Runs, logger, progress)
			if err != nil {
				return fmt.Errorf("bench failed: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(benchOutput{
					Plan:     plan,
					Variants: variants,
					Results:  runs,
				})
			}
			return writeBenchSeries(cmd.OutOrStdout(), plan, variants, runs)
		},
	}

	cmd.Flags().StringSlice("variants", nil, "Comma-separated variants to time")
	cmd.Flags().Int("start", 0, "Number of sites in the first trial")
	cmd.Flags().Int("growth", 0, "Factor applied to the number of sites after each trial")
	cmd.Flags().Int("steps", 0, "Number of trials")
	cmd.Flags().Int("runs", 0, "Timed runs per trial and variant")

	return cmd
}

// runBenchmark times every variant at every size of the plan. When progress
// is non-nil each trial is reported there as soon as it completes.
func runBenchmark(plan simulation.Plan, variants []unionfind.Variant, m int, logger *slog.Logger, progress io.Writer) ([]benchRun, error) {
	sizes := plan.Sizes()
	runs := make([]benchRun, 0, len(sizes)*len(variants))
	for i, n := range sizes {
		for _, v := range variants {
			run, err := timeVariant(i+1, n, v, m, logger)
			if err != nil {
				return nil, err
			}
			runs = append(runs, run)

			if progress != nil {
				if err := report.WriteBenchmarkRun(progress, run.Run, run.Result, run.MeanProbes); err != nil {
					return nil, err
				}
				if err := report.WriteDelimiter(progress); err != nil {
					return nil, err
				}
			}
		}
	}
	return runs, nil
}

// timeVariant runs the connectivity experiment on n sites m times under the
// timer. Probe counts are collected in Post so that warmup runs are left out
// of the mean.
func timeVariant(run, n int, v unionfind.Variant, m int, logger *slog.Logger) (benchRun, error) {
	var last simulation.Result
	timed := make([]simulation.Result, 0, m)

	timer := &benchmark.Timer[int]{
		Description: fmt.Sprintf("Sites: %d | Run: %d | %s", n, run, v.Description()),
		Run: func(sites int) error {
			result, err := simulation.Run(v, sites, logger)
			last = result
			return err
		},
		Post: func(int) error {
			timed = append(timed, last)
			return nil
		},
		Logger: logger,
	}

	result, err := timer.Repeat(n, m)
	if err != nil {
		return benchRun{}, err
	}
	return benchRun{
		Run:        run,
		Sites:      n,
		Variant:    v,
		MeanProbes: simulation.MeanProbes(timed),
		Result:     result,
	}, nil
}

// writeBenchSeries prints the sites series followed by one mean-time series
// per variant.
func writeBenchSeries(w io.Writer, plan simulation.Plan, variants []unionfind.Variant, runs []benchRun) error {
	xTitle := fmt.Sprintf("Printing all X axis values (number of sites multiplied by %d each iteration): ", plan.Growth)
	if err := report.WriteSeries(w, xTitle, plan.Sizes(), report.Comma); err != nil {
		return err
	}
	for _, v := range variants {
		var means []float64
		for _, run := range runs {
			if run.Variant == v {
				means = append(means, run.MeanMillis)
			}
		}
		title := fmt.Sprintf("Printing all Y axis values (mean run times for %s): ", v.Description())
		if err := report.WriteSeries(w, title, means, report.Newline); err != nil {
			return err
		}
	}
	return nil
}
