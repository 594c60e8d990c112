// Package benchmark measures the mean wall-clock time of a unit of work,
// keeping setup and validation out of the measurement.
//
// A Timer handles three phases per cycle:
//   - Pre prepares the input for Run (optional, clock stopped)
//   - Run is the work being measured (clock running)
//   - Post checks or aggregates after Run (optional, clock stopped)
//
// Before the timed cycles, WarmupRuns(m) untimed cycles of Pre and Run let
// caches and the scheduler settle.
package benchmark

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/nvandessel/uflab/internal/logging"
)

var (
	// ErrMeasurement wraps any error raised by a hook during Repeat.
	ErrMeasurement = errors.New("measurement failed")

	// ErrInvalidRuns is returned when the number of timed runs is not positive.
	ErrInvalidRuns = errors.New("invalid number of runs")
)

const (
	minWarmupRuns = 2
	maxWarmupRuns = 10
)

// WarmupRuns returns the number of untimed cycles run before m timed ones:
// m/10, clamped to [2, 10].
func WarmupRuns(m int) int {
	return max(minWarmupRuns, min(maxWarmupRuns, m/10))
}

// Result is the outcome of one Repeat call.
type Result struct {
	Description  string  `json:"description"`
	MeanMillis   float64 `json:"mean_millis"`
	StdDevMillis float64 `json:"stddev_millis"`
	Runs         int     `json:"runs"`
	WarmupRuns   int     `json:"warmup_runs"`
}

// Timer times Run over values of type T. Pre and Post may be nil.
// A Timer keeps no state between calls to Repeat.
type Timer[T any] struct {
	Description string

	// Pre maps the supplied value to the input for Run.
	Pre func(T) (T, error)

	// Run is the measured operation. It is expected to work by side effect.
	Run func(T) error

	// Post runs after each timed Run with the same input.
	Post func(T) error

	// Logger receives a record when a measurement begins. Nil discards.
	Logger *slog.Logger

	nowFunc func() time.Time // injectable clock for testing
}

// Repeat runs the warmup cycles and then m timed cycles on initial, returning
// the mean time of Run in milliseconds. Without Pre, every cycle sees initial
// unchanged.
func (b *Timer[T]) Repeat(initial T, m int) (Result, error) {
	return b.measure(func() (T, error) { return initial, nil }, m)
}

// RunFromSupplier is like Repeat but draws a fresh value from supplier at the
// start of every cycle, before Pre. The supplier is not timed.
func (b *Timer[T]) RunFromSupplier(supplier func() (T, error), m int) (Result, error) {
	if supplier == nil {
		return Result{}, fmt.Errorf("%w: %q has no supplier", ErrMeasurement, b.Description)
	}
	return b.measure(supplier, m)
}

func (b *Timer[T]) measure(supply func() (T, error), m int) (Result, error) {
	if m <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidRuns, m)
	}
	if b.Run == nil {
		return Result{}, fmt.Errorf("%w: %q has no run function", ErrMeasurement, b.Description)
	}
	now := b.nowFunc
	if now == nil {
		now = time.Now
	}

	warmups := WarmupRuns(m)
	logging.OrDiscard(b.Logger).Info("begin run",
		"description", b.Description, "runs", m, "warmup_runs", warmups)

	for i := 0; i < warmups; i++ {
		input, err := b.prepare(supply)
		if err != nil {
			return Result{}, b.fail("warmup", i, err)
		}
		if err := b.Run(input); err != nil {
			return Result{}, b.fail("warmup", i, err)
		}
	}

	samples := make([]float64, m)
	var total time.Duration
	for i := 0; i < m; i++ {
		input, err := b.prepare(supply)
		if err != nil {
			return Result{}, b.fail("timed", i, err)
		}

		start := now()
		err = b.Run(input)
		elapsed := now().Sub(start)
		if err != nil {
			return Result{}, b.fail("timed", i, err)
		}
		total += elapsed
		samples[i] = millis(elapsed)

		if b.Post != nil {
			if err := b.Post(input); err != nil {
				return Result{}, b.fail("timed", i, err)
			}
		}
	}

	result := Result{
		Description: b.Description,
		MeanMillis:  millis(total) / float64(m),
		Runs:        m,
		WarmupRuns:  warmups,
	}
	if m > 1 {
		result.StdDevMillis = stat.StdDev(samples, nil)
	}
	return result, nil
}

func (b *Timer[T]) prepare(supply func() (T, error)) (T, error) {
	input, err := supply()
	if err != nil || b.Pre == nil {
		return input, err
	}
	return b.Pre(input)
}

func (b *Timer[T]) fail(phase string, cycle int, err error) error {
	return fmt.Errorf("%w: %q %s cycle %d: %w", ErrMeasurement, b.Description, phase, cycle+1, err)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
