package simulation

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/nvandessel/uflab/internal/logging"
	"github.com/nvandessel/uflab/internal/unionfind"
)

// ErrInvalidPlan is returned when a plan cannot produce a size sequence.
var ErrInvalidPlan = errors.New("invalid experiment plan")

// Plan describes the geometric sequence of site counts an experiment walks
// through: Start, Start*Growth, Start*Growth^2, ... for Steps values.
type Plan struct {
	Start  int `json:"start" yaml:"start"`
	Growth int `json:"growth" yaml:"growth"`
	Steps  int `json:"steps" yaml:"steps"`
}

// Validate checks that the plan is well formed and that its last size fits in an int.
func (p Plan) Validate() error {
	if p.Start < 1 {
		return fmt.Errorf("%w: start must be at least 1, got %d", ErrInvalidPlan, p.Start)
	}
	if p.Growth < 1 {
		return fmt.Errorf("%w: growth must be at least 1, got %d", ErrInvalidPlan, p.Growth)
	}
	if p.Steps < 1 {
		return fmt.Errorf("%w: steps must be at least 1, got %d", ErrInvalidPlan, p.Steps)
	}
	size := p.Start
	for i := 1; i < p.Steps; i++ {
		if size > math.MaxInt/p.Growth {
			return fmt.Errorf("%w: size overflows after %d steps", ErrInvalidPlan, i)
		}
		size *= p.Growth
	}
	return nil
}

// Sizes returns the site counts of the plan in order.
func (p Plan) Sizes() []int {
	if p.Validate() != nil {
		return nil
	}
	sizes := make([]int, p.Steps)
	size := p.Start
	for i := range sizes {
		sizes[i] = size
		size *= p.Growth
	}
	return sizes
}

// Trial is one numbered run of an experiment.
type Trial struct {
	// Number is 1-based.
	Number int `json:"number"`
	Result
}

// Experiment runs one connectivity trial per size in the plan, each on a
// fresh engine. onTrial, if non-nil, is called as each trial completes;
// an error from it stops the experiment. The first failure aborts the
// remaining trials and no partial trial is returned.
func Experiment(plan Plan, v unionfind.Variant, logger *slog.Logger, onTrial func(Trial) error) ([]Trial, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	logger = logging.OrDiscard(logger)

	sizes := plan.Sizes()
	trials := make([]Trial, 0, len(sizes))
	for i, n := range sizes {
		result, err := Run(v, n, logger)
		if err != nil {
			return trials, fmt.Errorf("experiment %d (%d sites): %w", i+1, n, err)
		}
		trial := Trial{Number: i + 1, Result: result}
		logger.Info("trial complete", "experiment", trial.Number, "variant", v.String(),
			"sites", n, "probes", result.Probes)
		if onTrial != nil {
			if err := onTrial(trial); err != nil {
				return trials, err
			}
		}
		trials = append(trials, trial)
	}
	return trials, nil
}

// MeanProbes returns the mean probe count over results, or 0 when empty.
func MeanProbes(results []Result) float64 {
	if len(results) == 0 {
		return 0
	}
	probes := make([]float64, len(results))
	for i, r := range results {
		probes[i] = float64(r.Probes)
	}
	return stat.Mean(probes, nil)
}
