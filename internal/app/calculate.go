package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/harmcalc/internal/cli"
	apperrors "github.com/agbru/harmcalc/internal/errors"
	"github.com/agbru/harmcalc/internal/exact"
	"github.com/agbru/harmcalc/internal/format"
	"github.com/agbru/harmcalc/internal/harmonic"
	"github.com/agbru/harmcalc/internal/metrics"
	"github.com/agbru/harmcalc/internal/orchestration"
	"github.com/agbru/harmcalc/internal/ui"
)

// runCalculate orchestrates the execution of the CLI summation command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	// The oracle bound is checked before dispatch so a long run is not
	// wasted on an unverifiable n.
	if a.Config.Exact && a.Config.N > exact.MaxOracleN {
		fmt.Fprintf(out, "Exact verification is limited to n ≤ %d.\n", uint64(exact.MaxOracleN))
		fmt.Fprintf(out, "Drop --exact or lower -n to stay within the oracle bound.\n")
		return apperrors.ExitErrorConfig
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	// Get summation engines to run
	summersToRun := orchestration.GetSummersToRun(a.Config.Algo, a.Factory)

	// Skip verbose output in quiet mode
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(summersToRun, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	// Resource accounting brackets the summations when --details asked for it.
	details := a.Config.Details && !a.Config.Quiet
	var collector *metrics.MemoryCollector
	var memBefore metrics.MemorySnapshot
	var userBefore, sysBefore time.Duration
	cpuOK := false
	if details {
		collector = metrics.NewMemoryCollector()
		memBefore = collector.Snapshot()
		userBefore, sysBefore, cpuOK = metrics.CPUTime()
	}
	wallStart := time.Now()

	// Execute summations
	opts := a.Config.ToSummationOptions()
	results := orchestration.ExecuteSummations(ctx, summersToRun, a.Config.N, opts, progressReporter, progressOut)

	wall := time.Since(wallStart)

	// Build output config for the CLI options
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		ShowValue:  a.Config.ShowValue,
	}

	exitCode := a.analyzeResultsWithOutput(results, outputCfg, out)

	if details {
		userAfter, sysAfter, okAfter := metrics.CPUTime()
		printResourceUsage(out, wall, userAfter-userBefore, sysAfter-sysBefore, cpuOK && okAfter, memBefore, collector.Snapshot())
	}

	if a.Config.Exact {
		if code := a.verifyAgainstOracle(results, out); code != apperrors.ExitSuccess && exitCode == apperrors.ExitSuccess {
			exitCode = code
		}
	}

	return exitCode
}

// runEstimate prints the Euler-Maclaurin approximation of H(n) without
// touching the summation engines.
func (a *Application) runEstimate(out io.Writer) int {
	est := harmonic.Estimate(a.Config.N)

	if a.Config.Quiet {
		fmt.Fprintln(out, format.FormatSum(est))
		return apperrors.ExitSuccess
	}

	fmt.Fprintf(out, "%sEuler-Maclaurin approximation:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "  H(%d) ≈ %s%s%s\n", a.Config.N, ui.ColorGreen(), format.FormatSum(est), ui.ColorReset())
	fmt.Fprintf(out, "  (ln n + γ + 1/2n - 1/12n², error below 1/120n⁴)\n")
	return apperrors.ExitSuccess
}

// runStress executes the concurrency soak battery: the parallel engine is
// re-run against a fixed sequential reference until ordering bugs in the
// combine step would have had every chance to surface.
func (a *Application) runStress(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	opts := harmonic.StressOptions{Tolerance: a.Config.Tolerance}

	if !a.Config.Quiet {
		fmt.Fprintf(out, "--- Concurrency Stress Battery ---\n")
		fmt.Fprintf(out, "Re-summing H(%d) with %s%d%s tasks, %s%d%s iterations (tolerance %s%.0e%s).\n",
			harmonic.StressDefaultN,
			ui.ColorYellow(), harmonic.StressDefaultTasks, ui.ColorReset(),
			ui.ColorYellow(), harmonic.StressDefaultIterations, ui.ColorReset(),
			ui.ColorYellow(), a.Config.Tolerance, ui.ColorReset())
	}

	report, err := harmonic.RunStress(ctx, opts)
	if err != nil {
		return apperrors.HandleCalculationError(err, report.Elapsed, out, cli.CLIColorProvider{})
	}

	if a.Config.Quiet {
		fmt.Fprintf(out, "%d/%d\n", report.Iterations-report.Failures, report.Iterations)
	} else {
		failColor := ui.ColorGreen()
		if report.Failures > 0 {
			failColor = ui.ColorRed()
		}
		fmt.Fprintf(out, "Reference H(%d) = %s%s%s\n",
			harmonic.StressDefaultN, ui.ColorMagenta(), format.FormatSum(report.Reference), ui.ColorReset())
		fmt.Fprintf(out, "Iterations: %s%d%s, failures: %s%d%s, elapsed: %s%s%s.\n",
			ui.ColorGreen(), report.Iterations, ui.ColorReset(),
			failColor, report.Failures, ui.ColorReset(),
			ui.ColorCyan(), format.FormatExecutionDuration(report.Elapsed), ui.ColorReset())
		fmt.Fprintf(out, "Relative deviation from reference: min %.3e, max %.3e.\n",
			report.MinDelta, report.MaxDelta)
	}

	if report.Failures > 0 {
		fmt.Fprintf(a.ErrWriter, "stress battery: %d of %d iterations left the tolerance envelope\n",
			report.Failures, report.Iterations)
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}

// verifyAgainstOracle checks every successful engine against the exact
// rational value of H(n), using the same relative tolerance predicate the
// engines are compared with. Engines that already failed are skipped; their
// errors were reported by the comparison analysis.
func (a *Application) verifyAgainstOracle(results []orchestration.SummationResult, out io.Writer) int {
	oracle, err := exact.Harmonic(a.Config.N)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Exact verification failed: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	want := oracle.Float64()

	if !a.Config.Quiet {
		fmt.Fprintf(out, "\n--- Exact Verification ---\n")
		fmt.Fprintf(out, "Oracle H(%d) = %s%s%s (rational arithmetic, correctly rounded)\n",
			a.Config.N, ui.ColorMagenta(), format.FormatSum(want), ui.ColorReset())
	}

	verified, mismatches := 0, 0
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		verified++
		delta := harmonic.RelativeDelta(res.Value, want)
		if harmonic.WithinTolerance(res.Value, want, a.Config.Tolerance) {
			if !a.Config.Quiet {
				fmt.Fprintf(out, "  %s✓%s %s: delta %.1e\n",
					ui.ColorGreen(), ui.ColorReset(), res.Name, delta)
			}
			continue
		}
		mismatches++
		if !a.Config.Quiet {
			fmt.Fprintf(out, "  %s✗%s %s: delta %.1e exceeds %.0e\n",
				ui.ColorRed(), ui.ColorReset(), res.Name, delta, a.Config.Tolerance)
		}
	}

	if verified == 0 {
		return apperrors.ExitSuccess
	}
	if mismatches > 0 {
		fmt.Fprintf(a.ErrWriter, "exact verification: %d of %d engines beyond tolerance %.0e\n",
			mismatches, verified, a.Config.Tolerance)
		return apperrors.ExitErrorMismatch
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "All %d engine(s) agree with the exact value within %.0e.\n",
			verified, a.Config.Tolerance)
	}
	return apperrors.ExitSuccess
}

// printResourceUsage reports the process-level cost of the run: CPU time
// split against wall clock, and garbage collector activity between the
// snapshots taken around the summations. The summation loops themselves
// allocate nothing, so GC cycles here belong to the surrounding machinery.
func printResourceUsage(out io.Writer, wall, user, system time.Duration, cpuOK bool, before, after metrics.MemorySnapshot) {
	fmt.Fprintf(out, "\n--- Process Resource Usage ---\n")
	if cpuOK && wall > 0 {
		total := user + system
		fmt.Fprintf(out, "CPU time: %s%s%s user, %s%s%s system (%s%.2fx%s wall clock)\n",
			ui.ColorCyan(), format.FormatExecutionDuration(user), ui.ColorReset(),
			ui.ColorCyan(), format.FormatExecutionDuration(system), ui.ColorReset(),
			ui.ColorYellow(), float64(total)/float64(wall), ui.ColorReset())
	}
	cycles, pause := metrics.GCDelta(before, after)
	fmt.Fprintf(out, "GC: %d cycle(s), %s pause, heap in use %s.\n",
		cycles, pause.Round(time.Microsecond), format.FormatBytes(after.HeapAlloc))
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.SummationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)

	// Handle quiet mode for single result
	if outputCfg.Quiet && bestResult != nil {
		cli.DisplayQuietResult(out, bestResult.Value, a.Config.N, bestResult.Duration)

		// Save to file if requested
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}

		return apperrors.ExitSuccess
	}

	// Use standard analysis for non-quiet mode
	presOpts := orchestration.PresentationOptions{
		N:         a.Config.N,
		Tasks:     a.Config.Tasks,
		Tolerance: a.Config.Tolerance,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
		ShowValue: a.Config.ShowValue,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)

	// Handle file output for non-quiet mode
	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		// Save to file if requested
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
		}
	}

	return exitCode
}

func findBestResult(results []orchestration.SummationResult) *orchestration.SummationResult {
	var bestResult *orchestration.SummationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.SummationResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Value, a.Config.N, res.Duration, res.Name, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return err
	}
	return nil
}
