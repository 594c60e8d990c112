package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/nvandessel/uflab/internal/logging"
	"github.com/nvandessel/uflab/internal/unionfind"
)

// Result is the outcome of one completed connectivity run.
type Result struct {
	// Sites is N, the number of sites the engine was built with.
	Sites int `json:"sites"`

	// Probes counts every draw of a pair, including redraws of q when it
	// equalled p.
	Probes int `json:"probes"`

	// Unions counts the draws that merged two distinct components.
	// It always equals Sites-1 for a completed run.
	Unions int `json:"unions"`
}

// NewSource returns the pseudo-random source for a run over n sites.
// The same n always yields the same sequence.
func NewSource(n int) *rand.Rand {
	seed := uint64(n)
	return rand.New(rand.NewPCG(seed, seed))
}

// Count draws random pairs against e until it holds a single component.
//
// E is a type parameter so callers holding a concrete engine keep calling it
// directly rather than through the Engine interface.
func Count[E unionfind.Engine](e E, logger *slog.Logger) (Result, error) {
	return connect(e, 1, logger)
}

// Grow draws random pairs against e until unions merges have happened or a
// single component remains, leaving a partially connected forest behind.
func Grow[E unionfind.Engine](e E, unions int, logger *slog.Logger) (Result, error) {
	if unions < 0 {
		unions = 0
	}
	return connect(e, max(1, e.Components()-unions), logger)
}

func connect[E unionfind.Engine](e E, components int, logger *slog.Logger) (Result, error) {
	logger = logging.OrDiscard(logger)
	ctx := context.Background()
	trace := logger.Enabled(ctx, logging.LevelTrace)

	n := e.Size()
	result := Result{Sites: n}
	rng := NewSource(n)

	for e.Components() > components {
		p, q := rng.IntN(n), rng.IntN(n)
		result.Probes++
		for p == q {
			q = rng.IntN(n)
			result.Probes++
		}

		connected, err := e.Connected(p, q)
		if err != nil {
			return Result{}, fmt.Errorf("probe %d: %w", result.Probes, err)
		}
		if connected {
			continue
		}
		if err := e.Union(p, q); err != nil {
			return Result{}, fmt.Errorf("probe %d: union(%d, %d): %w", result.Probes, p, q, err)
		}
		result.Unions++

		if trace {
			logger.Log(ctx, logging.LevelTrace, "union",
				"p", p, "q", q, "components", e.Components(), "probes", result.Probes)
		}
	}

	logger.Debug("connectivity run complete",
		"sites", result.Sites, "probes", result.Probes, "unions", result.Unions)
	return result, nil
}

// Run builds a fresh engine of the given variant over n sites and counts
// the probes needed to connect it.
func Run(v unionfind.Variant, n int, logger *slog.Logger) (Result, error) {
	e, err := unionfind.New(v, n)
	if err != nil {
		return Result{}, err
	}
	return Count(e, logger)
}
