package simulation

import (
	"testing"
)

// AssertConnected asserts that a completed run merged exactly Sites-1 times
// and drew at least one pair per merge.
func AssertConnected(t testing.TB, result Result) {
	t.Helper()
	if result.Unions != result.Sites-1 {
		t.Errorf("AssertConnected: %d sites: unions = %d, want %d", result.Sites, result.Unions, result.Sites-1)
	}
	if result.Probes < result.Unions {
		t.Errorf("AssertConnected: %d sites: probes %d < unions %d", result.Sites, result.Probes, result.Unions)
	}
}

// AssertSameDraws asserts that two runs over the same N saw the same
// sequence of pairs, as every variant does under the shared seed.
func AssertSameDraws(t testing.TB, a, b Result) {
	t.Helper()
	if a != b {
		t.Errorf("AssertSameDraws: %+v != %+v", a, b)
	}
}

// AssertTrialsNumbered asserts that trials are numbered 1..len in order and
// follow the plan's sizes.
func AssertTrialsNumbered(t testing.TB, trials []Trial, plan Plan) {
	t.Helper()
	sizes := plan.Sizes()
	if len(trials) != len(sizes) {
		t.Fatalf("AssertTrialsNumbered: got %d trials, want %d", len(trials), len(sizes))
	}
	for i, trial := range trials {
		if trial.Number != i+1 {
			t.Errorf("AssertTrialsNumbered: trial %d numbered %d", i, trial.Number)
		}
		if trial.Sites != sizes[i] {
			t.Errorf("AssertTrialsNumbered: trial %d has %d sites, want %d", trial.Number, trial.Sites, sizes[i])
		}
	}
}
