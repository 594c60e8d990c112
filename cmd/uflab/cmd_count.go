package main

import (
	"encoding/json"
	"fmt"

	"github.com/nvandessel/uflab/internal/report"
	"github.com/nvandessel/uflab/internal/simulation"
	"github.com/nvandessel/uflab/internal/unionfind"
	"github.com/spf13/cobra"
)

// countOutput is the JSON form of a connectivity experiment.
type countOutput struct {
	Variant unionfind.Variant  `json:"variant"`
	Plan    simulation.Plan    `json:"plan"`
	Trials  []simulation.Trial `json:"trials"`
}

func newCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count the random pairs needed to connect N sites",
		Long: `Run the Monte Carlo connectivity experiment.

For each N in the plan, random pairs of sites are drawn until every site
is in one component. Each experiment reports the number of pairs drawn
and the number of connections made (always N-1).

Examples:
  uflab count                               # 10, 100, ... 10^8 sites
  uflab count --start 100 --growth 2 --steps 5
  uflab count --variant weighted --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("variant") {
				cfg.Experiment.Variant, _ = cmd.Flags().GetString("variant")
			}
			overrideInt(cmd, "start", &cfg.Experiment.Start)
			overrideInt(cmd, "growth", &cfg.Experiment.Growth)
			overrideInt(cmd, "steps", &cfg.Experiment.Steps)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			logger := newLogger(cmd, cfg)

			variant, err := unionfind.ParseVariant(cfg.Experiment.Variant)
			if err != nil {
				return err
			}
			plan := cfg.Experiment.Plan()
			out := cmd.OutOrStdout()

			var onTrial func(simulation.Trial) error
			if !jsonOut {
				onTrial = func(trial simulation.Trial) error {
					return report.WriteTrial(out, trial)
				}
			}

			trials, err := simulation.Experiment(plan, variant, logger, onTrial)
			if err != nil {
				return fmt.Errorf("count failed: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(out).Encode(countOutput{
					Variant: variant,
					Plan:    plan,
					Trials:  trials,
				})
			}

			sites := make([]int, len(trials))
			probes := make([]int, len(trials))
			for i, trial := range trials {
				sites[i] = trial.Sites
				probes[i] = trial.Probes
			}
			xTitle := fmt.Sprintf("Printing all X axis values (Number of 'sites' multiplied by %d after each iteration): ", plan.Growth)
			if err := report.WriteSeries(out, xTitle, sites, report.Comma); err != nil {
				return err
			}
			return report.WriteSeries(out, "Printing all Y axis values (Number of pairs generated): ", probes, report.Comma)
		},
	}

	cmd.Flags().String("variant", "", "Union-find variant (see 'uflab variants')")
	cmd.Flags().Int("start", 0, "Number of sites in the first experiment")
	cmd.Flags().Int("growth", 0, "Factor applied to the number of sites after each experiment")
	cmd.Flags().Int("steps", 0, "Number of experiments")

	return cmd
}
