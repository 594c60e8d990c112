// Package report formats experiment and benchmark results as the plain-text
// report printed on stdout.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nvandessel/uflab/internal/benchmark"
	"github.com/nvandessel/uflab/internal/simulation"
)

const (
	// TrialDelimiter closes each experiment block.
	TrialDelimiter = "-----------------------------------------------------------------------------"

	// SectionDelimiter separates benchmark trials and summary series.
	SectionDelimiter = "----------------------------------------------------"
)

// Separators for series values.
const (
	Comma   = ","
	Newline = "\n"
)

// WriteTrial writes the block for one connectivity experiment.
func WriteTrial(w io.Writer, trial simulation.Trial) error {
	_, err := fmt.Fprintf(w,
		"Experiment number: %d\nNumber of sites: %d\nAfter experiment total number of pairs generated: %d\nNumber of connections generated: %d\n%s\n",
		trial.Number, trial.Sites, trial.Probes, trial.Unions, TrialDelimiter)
	return err
}

// WriteSeries writes a titled list of values for external charting.
func WriteSeries[N int | float64](w io.Writer, title string, values []N, sep string) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n", title, JoinValues(values, sep), SectionDelimiter)
	return err
}

// JoinValues formats values in their shortest exact form and joins them with sep.
func JoinValues[N int | float64](values []N, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatNumber(v)
	}
	return strings.Join(parts, sep)
}

// WriteBenchmarkRun writes the lines for one timed benchmark trial.
func WriteBenchmarkRun(w io.Writer, run int, result benchmark.Result, meanPairs float64) error {
	_, err := fmt.Fprintf(w, "Run: %d: %s milli-seconds\nMean total pairs generated: %s\n",
		run, formatNumber(result.MeanMillis), formatNumber(meanPairs))
	return err
}

// WriteDelimiter writes a section delimiter line.
func WriteDelimiter(w io.Writer) error {
	_, err := fmt.Fprintln(w, SectionDelimiter)
	return err
}

func formatNumber[N int | float64](v N) string {
	switch x := any(v).(type) {
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
