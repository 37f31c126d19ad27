package cli

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/harmcalc/internal/format"
	"github.com/agbru/harmcalc/internal/harmonic"
	"github.com/agbru/harmcalc/internal/metrics"
	"github.com/agbru/harmcalc/internal/progress"
	"github.com/agbru/harmcalc/internal/ui"
)

// CLIColorProvider adapts the active UI theme to the apperrors.ColorProvider
// interface so error diagnostics match the rest of the CLI output.
type CLIColorProvider struct{}

// Red returns the theme's error color sequence.
func (CLIColorProvider) Red() string { return ui.ColorRed() }

// Yellow returns the theme's warning color sequence.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the sequence that restores the default style.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }

// DisplayProgress renders a spinner with an aggregated progress bar and ETA
// while summations are running. It consumes updates until progressChan is
// closed and signals wg when done, so callers can use it as the display half
// of an orchestrated run.
//
// Parameters:
//   - wg: WaitGroup signaled on return.
//   - progressChan: Channel of per-engine progress updates.
//   - numSummers: Number of engines reporting; 0 drains and returns.
//   - out: Destination for the spinner rendering.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numSummers int, out io.Writer) {
	defer wg.Done()

	if numSummers <= 0 {
		for range progressChan {
		}
		return
	}

	spin := newSpinner(spinner.WithWriter(out))
	spin.Start()
	defer spin.Stop()

	state := format.NewProgressWithETA(numSummers)
	var lastRender time.Time

	for update := range progressChan {
		avg, eta := state.UpdateWithETA(update.SummerIndex, update.Value)

		// Updates arrive far faster than a terminal can usefully repaint.
		if time.Since(lastRender) < ProgressRefreshRate && avg < 1.0 {
			continue
		}
		lastRender = time.Now()
		spin.UpdateSuffix(" " + format.FormatProgressBarWithETA(avg, eta, ProgressBarWidth))
	}
}

// DisplayResult writes the outcome of a summation run.
//
// The base output is a single completion line. The details flag adds a
// breakdown with throughput and the Euler-Maclaurin cross-check; showValue
// adds the computed sum itself, at full float64 precision when verbose is
// set.
//
// Parameters:
//   - value: The computed partial sum H(n).
//   - n: The upper summation bound.
//   - duration: How long the computation took.
//   - verbose: Show all 17 significant digits instead of the shortest form.
//   - details: Show the detailed result analysis block.
//   - showValue: Show the computed value.
//   - out: The writer for standard output.
func DisplayResult(value float64, n uint64, duration time.Duration, verbose, details, showValue bool, out io.Writer) {
	fmt.Fprintf(out, "\nSummation completed in %s%s%s.\n",
		ui.ColorGreen(), FormatExecutionDuration(duration), ui.ColorReset())

	nStr := format.FormatNumberString(strconv.FormatUint(n, 10))

	if details {
		fmt.Fprintf(out, "\n%sDetailed result analysis:%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "  Calculation time: %s%s%s\n",
			ui.ColorYellow(), FormatExecutionDuration(duration), ui.ColorReset())
		fmt.Fprintf(out, "  Terms reduced:    %s%s%s\n", ui.ColorCyan(), nStr, ui.ColorReset())
		if ind := metrics.Compute(n, duration); ind != nil {
			fmt.Fprintf(out, "  Throughput:       %s%s%s (%s per term)\n",
				ui.ColorCyan(), metrics.FormatTermsPerSecond(ind.TermsPerSecond), ui.ColorReset(),
				metrics.FormatNsPerTerm(ind.NsPerTerm))
		}
		fmt.Fprintf(out, "  Estimate delta:   %s%.3e%s (vs. ln n + γ + 1/2n - 1/12n²)\n",
			ui.ColorCyan(), value-harmonic.Estimate(n), ui.ColorReset())
	}

	if showValue {
		formatted := format.FormatSum(value)
		if verbose {
			formatted = format.FormatSumFixed(value, 17)
		}
		fmt.Fprintf(out, "\n%sCalculated value:%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "  H(%s) = %s%s%s\n", nStr, ui.ColorGreen(), formatted, ui.ColorReset())
	}
}
