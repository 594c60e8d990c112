package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvandessel/uflab/internal/config"
	"github.com/nvandessel/uflab/internal/simulation"
	"github.com/nvandessel/uflab/internal/unionfind"
	"github.com/nvandessel/uflab/internal/visualization"
	"gopkg.in/yaml.v3"
)

// isolateHome sets HOME to a temp directory so tests never read the real
// ~/.uflab/config.yaml, and clears UFLAB_* overrides.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, env := range os.Environ() {
		if name, _, _ := strings.Cut(env, "="); strings.HasPrefix(name, "UFLAB_") {
			t.Setenv(name, "")
		}
	}
	return home
}

// execute runs the root command with args and returns captured stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd := newRootCmd()
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCmd_Subcommands(t *testing.T) {
	rootCmd := newRootCmd()
	for _, name := range []string{"version", "count", "bench", "forest", "variants", "config"} {
		if cmd, _, err := rootCmd.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"json", "config", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s not registered", flag)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	isolateHome(t)

	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if out != "uflab version "+version+"\n" {
		t.Errorf("unexpected output %q", out)
	}

	out, _, err = execute(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json failed: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if got["version"] != version {
		t.Errorf("version = %q, want %q", got["version"], version)
	}
}

func TestCountCmd_Report(t *testing.T) {
	isolateHome(t)

	out, _, err := execute(t, "count", "--start", "10", "--growth", "10", "--steps", "2")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}

	for _, want := range []string{
		"Experiment number: 1\nNumber of sites: 10\n",
		"Number of connections generated: 9\n",
		"Experiment number: 2\nNumber of sites: 100\n",
		"Number of connections generated: 99\n",
		"multiplied by 10 after each iteration): \n10,100\n",
		"Printing all Y axis values (Number of pairs generated): \n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Experiment number: 3") {
		t.Errorf("expected exactly two experiments:\n%s", out)
	}
}

func TestCountCmd_JSON(t *testing.T) {
	isolateHome(t)

	out, _, err := execute(t, "count", "--json", "--start", "5", "--growth", "3", "--steps", "3", "--variant", "weighted")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}

	var got countOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if got.Variant != unionfind.VariantWeighted {
		t.Errorf("Variant = %q, want weighted", got.Variant)
	}
	if len(got.Trials) != 3 {
		t.Fatalf("expected 3 trials, got %d", len(got.Trials))
	}
	for i, trial := range got.Trials {
		want, err := simulation.Run(unionfind.VariantWeighted, got.Plan.Sizes()[i], nil)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if trial.Number != i+1 || trial.Result != want {
			t.Errorf("trial %d = %+v, want number %d with %+v", i, trial, i+1, want)
		}
	}
}

func TestCountCmd_UnknownVariant(t *testing.T) {
	isolateHome(t)

	_, _, err := execute(t, "count", "--variant", "fastest", "--steps", "1")
	if !errors.Is(err, unionfind.ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestCountCmd_InvalidPlan(t *testing.T) {
	isolateHome(t)

	_, _, err := execute(t, "count", "--start", "0")
	if !errors.Is(err, simulation.ErrInvalidPlan) {
		t.Errorf("expected ErrInvalidPlan, got %v", err)
	}
}

func TestCountCmd_ConfigAndEnv(t *testing.T) {
	home := isolateHome(t)

	configPath := filepath.Join(home, "uflab.yaml")
	content := "experiment:\n  variant: quick-find\n  start: 4\n  growth: 2\n  steps: 2\n"
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("UFLAB_STEPS", "3")

	out, _, err := execute(t, "count", "--json", "--config", configPath)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	var got countOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if got.Variant != unionfind.VariantQuickFind {
		t.Errorf("Variant = %q, want quick-find from config file", got.Variant)
	}
	if got.Plan != (simulation.Plan{Start: 4, Growth: 2, Steps: 3}) {
		t.Errorf("Plan = %+v, want start 4 growth 2 from file and steps 3 from env", got.Plan)
	}
}

func TestCountCmd_TraceLogsToStderr(t *testing.T) {
	isolateHome(t)

	out, logs, err := execute(t, "count", "--log-level", "trace", "--start", "6", "--steps", "1")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if got := strings.Count(logs, "msg=union "); got != 5 {
		t.Errorf("expected 5 union trace records, got %d:\n%s", got, logs)
	}
	if strings.Contains(out, "msg=") {
		t.Errorf("log records leaked into stdout:\n%s", out)
	}
}

func TestBenchCmd_Report(t *testing.T) {
	isolateHome(t)

	out, _, err := execute(t, "bench", "--start", "8", "--growth", "2", "--steps", "2", "--runs", "2",
		"--variants", "hwqupc,quick-find")
	if err != nil {
		t.Fatalf("bench failed: %v", err)
	}

	if got := strings.Count(out, "milli-seconds\n"); got != 4 {
		t.Errorf("expected 4 timed trials, got %d:\n%s", got, out)
	}
	for _, want := range []string{
		"Run: 1: ",
		"Run: 2: ",
		"Mean total pairs generated: ",
		"multiplied by 2 each iteration): \n8,16\n",
		"(mean run times for Weighted quick union with path compression): \n",
		"(mean run times for Quick find): \n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBenchCmd_JSON(t *testing.T) {
	isolateHome(t)

	out, _, err := execute(t, "bench", "--json", "--start", "10", "--steps", "2", "--growth", "3", "--runs", "3",
		"--variants", "wqupc,weighted-height")
	if err != nil {
		t.Fatalf("bench failed: %v", err)
	}

	var got benchOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(got.Results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(got.Results))
	}
	for _, run := range got.Results {
		if run.Runs != 3 || run.WarmupRuns != 2 {
			t.Errorf("%s at %d: runs=%d warmups=%d, want 3 and 2", run.Variant, run.Sites, run.Runs, run.WarmupRuns)
		}
		want, err := simulation.Run(run.Variant, run.Sites, nil)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if run.MeanProbes != float64(want.Probes) {
			t.Errorf("%s at %d: MeanProbes = %v, want %d", run.Variant, run.Sites, run.MeanProbes, want.Probes)
		}
		if run.MeanMillis < 0 {
			t.Errorf("negative mean time %v", run.MeanMillis)
		}
	}
}

func TestBenchCmd_InvalidRuns(t *testing.T) {
	isolateHome(t)

	_, _, err := execute(t, "bench", "--runs", "0")
	if err == nil || !strings.Contains(err.Error(), "benchmark.runs") {
		t.Errorf("expected runs validation error, got %v", err)
	}
}

func TestForestCmd_DOT(t *testing.T) {
	isolateHome(t)

	out, _, err := execute(t, "forest", "--sites", "16", "--unions", "10", "--variant", "weighted")
	if err != nil {
		t.Fatalf("forest failed: %v", err)
	}
	if !strings.HasPrefix(out, "strict digraph weighted {") {
		t.Errorf("unexpected DOT header:\n%s", out)
	}
	if got := strings.Count(out, "->"); got != 10 {
		t.Errorf("expected 10 edges, got %d:\n%s", got, out)
	}
	if got := strings.Count(out, "doublecircle"); got != 6 {
		t.Errorf("expected 6 roots, got %d:\n%s", got, out)
	}
}

func TestForestCmd_JSON(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		name           string
		args           []string
		wantComponents int
	}{
		{"format flag", []string{"forest", "--format", "json", "--sites", "12", "--unions", "4"}, 8},
		{"json flag", []string{"forest", "--json", "--sites", "12", "--unions", "4"}, 8},
		{"unions past connected", []string{"forest", "--json", "--sites", "4", "--unions", "100"}, 1},
		{"no unions", []string{"forest", "--json", "--sites", "5", "--unions", "0"}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("forest failed: %v", err)
			}
			var got visualization.ForestJSON
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("invalid JSON %q: %v", out, err)
			}
			if got.Components != tt.wantComponents {
				t.Errorf("Components = %d, want %d", got.Components, tt.wantComponents)
			}
			if got.EdgeCount != got.NodeCount-got.Components {
				t.Errorf("EdgeCount = %d, want %d", got.EdgeCount, got.NodeCount-got.Components)
			}
		})
	}
}

func TestForestCmd_Errors(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		name string
		args []string
		is   error
		want string
	}{
		{"unsupported format", []string{"forest", "--format", "html"}, nil, "unsupported format"},
		{"invalid size", []string{"forest", "--sites", "0"}, unionfind.ErrInvalidSize, ""},
		{"unknown variant", []string{"forest", "--variant", "nope"}, unionfind.ErrUnknownVariant, ""},
		{"negative unions", []string{"forest", "--unions", "-1"}, nil, "--unions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("expected errors.Is(err, %v), got %v", tt.is, err)
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestVariantsCmd(t *testing.T) {
	isolateHome(t)

	out, _, err := execute(t, "variants")
	if err != nil {
		t.Fatalf("variants failed: %v", err)
	}
	for _, v := range unionfind.Variants() {
		if !strings.Contains(out, string(v)) || !strings.Contains(out, v.Description()) {
			t.Errorf("output missing %s:\n%s", v, out)
		}
	}

	out, _, err = execute(t, "variants", "--json")
	if err != nil {
		t.Fatalf("variants --json failed: %v", err)
	}
	var got []map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(got) != len(unionfind.Variants()) {
		t.Errorf("expected %d variants, got %d", len(unionfind.Variants()), len(got))
	}
}

func TestConfigListCmd(t *testing.T) {
	isolateHome(t)

	out, _, err := execute(t, "config", "list")
	if err != nil {
		t.Fatalf("config list failed: %v", err)
	}
	for _, want := range []string{"experiment.variant:", "hwqupc", "benchmark.runs:", "logging.level:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, _, err = execute(t, "config", "list", "--json")
	if err != nil {
		t.Fatalf("config list --json failed: %v", err)
	}
	var got config.UFLabConfig
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if got.Benchmark.Runs != 10 {
		t.Errorf("Benchmark.Runs = %d, want 10", got.Benchmark.Runs)
	}
}

func TestConfigListCmd_YAMLRoundTrip(t *testing.T) {
	home := isolateHome(t)
	t.Setenv("UFLAB_BENCH_RUNS", "42")

	out, _, err := execute(t, "config", "list", "--yaml")
	if err != nil {
		t.Fatalf("config list --yaml failed: %v", err)
	}
	var parsed config.UFLabConfig
	if err := yaml.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("invalid YAML %q: %v", out, err)
	}

	// The printed file loads back to the same settings.
	path := filepath.Join(home, "saved.yaml")
	if err := os.WriteFile(path, []byte(out), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("UFLAB_BENCH_RUNS", "")
	loaded, err := config.LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if loaded.Benchmark.Runs != 42 {
		t.Errorf("Benchmark.Runs = %d, want 42", loaded.Benchmark.Runs)
	}
}

func TestConfigGetCmd(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		key  string
		want string
	}{
		{"experiment.variant", "experiment.variant = hwqupc\n"},
		{"benchmark.runs", "benchmark.runs = 10\n"},
		{"benchmark.variants", "benchmark.variants = hwqupc,weighted-height,wqupc\n"},
		{"logging.level", "logging.level = info\n"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			out, _, err := execute(t, "config", "get", tt.key)
			if err != nil {
				t.Fatalf("config get failed: %v", err)
			}
			if out != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
		})
	}

	if _, _, err := execute(t, "config", "get", "llm.provider"); err == nil {
		t.Error("expected error for unknown key")
	}
}
