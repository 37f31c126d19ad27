// Package calibration finds the task count at which the parallel engine is
// fastest on the current machine, by benchmarking an adaptive ladder of
// block counts against a fixed summation length. The optimum can be cached
// in a hardware-fingerprinted profile so later runs start tuned.
package calibration

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/harmcalc/internal/config"
	apperrors "github.com/agbru/harmcalc/internal/errors"
	"github.com/agbru/harmcalc/internal/harmonic"
	"github.com/agbru/harmcalc/internal/orchestration"
	"github.com/agbru/harmcalc/internal/ui"
)

// CalibrationRuns is the number of timed repetitions per task count in a
// full calibration. The fastest repetition is kept: the minimum filters out
// scheduler and GC noise better than an average does.
const CalibrationRuns = 3

// calibrationResult records one measured rung of the task ladder.
type calibrationResult struct {
	Tasks    int
	Duration time.Duration
	Err      error
}

// RunCalibration benchmarks the parallel engine across the adaptive task
// ladder and prints a summary table with the measured optimum. It is the
// implementation of the --calibrate flag.
//
// Parameters:
//   - ctx: Cancels the whole calibration when done.
//   - out: Destination for progress and the summary table.
//   - summers: The registered engines; the parallel one is benchmarked.
//   - reporter: Renders per-rung progress while a measurement runs.
//   - colors: Colorizes the error diagnostics on failure.
//
// Returns an exit code: 0 on success, or the code matching the failure.
func RunCalibration(ctx context.Context, out io.Writer, summers []harmonic.Summer, reporter orchestration.ProgressReporterFunc, colors apperrors.ColorProvider) int {
	parallel, ok := findParallelSummer(summers)
	if !ok {
		fmt.Fprintf(out, "%sCalibration requires the parallel engine, which is not registered.%s\n",
			ui.ColorRed(), ui.ColorReset())
		return apperrors.ExitErrorConfig
	}

	ladder := GenerateTaskCounts()
	fmt.Fprintf(out, "Calibrating the parallel engine on H(%d): %d task counts, %d runs each.\n\n",
		harmonic.CalibrationN, len(ladder), CalibrationRuns)

	start := time.Now()
	results, err := measureLadder(ctx, out, parallel, ladder, CalibrationRuns, reporter)
	if err != nil {
		return apperrors.HandleCalculationError(err, time.Since(start), out, colors)
	}

	best, ok := bestResult(results)
	if !ok {
		fmt.Fprintf(out, "%sCalibration failed: no task count completed successfully.%s\n",
			ui.ColorRed(), ui.ColorReset())
		return apperrors.HandleCalculationError(firstError(results), time.Since(start), out, colors)
	}

	printCalibrationResults(out, results, best.Tasks)
	fmt.Fprintf(out, "\nOptimal task count: %s%d%s (workers: %d). Apply it with --tasks=%d, or run --auto-calibrate to cache it.\n",
		ui.ColorGreen(), best.Tasks, ui.ColorReset(),
		config.EstimateOptimalWorkers(best.Tasks), best.Tasks)
	return apperrors.ExitSuccess
}

// AutoCalibrate runs a quick benchmark and caches the optimum in the
// calibration profile, so that subsequent runs load it instead of guessing
// from the CPU count. A fresh valid profile short-circuits the benchmark.
//
// Returns the configuration updated with the calibrated task count, and
// whether calibration (cached or fresh) was applied.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer, summers []harmonic.Summer) (config.AppConfig, bool) {
	path := cfg.CalibrationProfile
	if path == "" {
		path = GetDefaultProfilePath()
	}

	if profile, loaded := LoadOrCreateProfile(path); loaded &&
		profile.OptimalTasks > 0 && !profile.IsStale(DefaultProfileMaxAge) {
		cfg.Tasks = profile.OptimalTasks
		if profile.OptimalWorkers > 0 {
			cfg.Workers = profile.OptimalWorkers
		}
		printCalibrationOutput(cfg, out)
		return cfg, true
	}

	parallel, ok := findParallelSummer(summers)
	if !ok {
		return cfg, false
	}

	start := time.Now()
	results, err := measureLadder(ctx, io.Discard, parallel, GenerateQuickTaskCounts(), 1, nil)
	if err != nil {
		return cfg, false
	}
	best, ok := bestResult(results)
	if !ok {
		return cfg, false
	}

	profile := NewProfile()
	profile.OptimalTasks = best.Tasks
	profile.OptimalWorkers = config.EstimateOptimalWorkers(best.Tasks)
	profile.CalibrationN = harmonic.CalibrationN
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()
	if err := profile.SaveProfile(path); err != nil {
		// The optimum still applies to this run even when the cache write
		// fails, e.g. on a read-only home directory.
		fmt.Fprintf(out, "%sWarning: could not save the calibration profile: %v%s\n",
			ui.ColorYellow(), err, ui.ColorReset())
	}

	cfg.Tasks = profile.OptimalTasks
	cfg.Workers = profile.OptimalWorkers
	printCalibrationOutput(cfg, out)
	return cfg, true
}

// LoadCachedCalibration applies a previously cached calibration profile to
// the configuration. Explicit --tasks or --workers flags win over the
// profile; remaining zero values fall back to the adaptive estimate.
//
// Returns the updated configuration and whether a usable profile was found.
func LoadCachedCalibration(cfg config.AppConfig, profilePath string) (config.AppConfig, bool) {
	path := profilePath
	if path == "" {
		path = GetDefaultProfilePath()
	}

	profile, err := loadProfile(path)
	if err != nil || !profile.IsValid() || profile.OptimalTasks < 1 ||
		profile.IsStale(DefaultProfileMaxAge) {
		return cfg, false
	}

	if cfg.Tasks == 0 {
		cfg.Tasks = profile.OptimalTasks
	}
	if cfg.Workers == 0 && profile.OptimalWorkers > 0 {
		cfg.Workers = profile.OptimalWorkers
	}
	return config.ApplyAdaptiveTasks(cfg), true
}

// measureLadder times the parallel engine at every task count of the
// ladder, keeping the fastest of runs repetitions per rung. Rung failures
// are recorded in the results; only context cancellation aborts the whole
// ladder, so a single pathological task count cannot sink the calibration.
func measureLadder(ctx context.Context, out io.Writer, parallel harmonic.Summer, ladder []int, runs int, reporter orchestration.ProgressReporterFunc) ([]calibrationResult, error) {
	var progressReporter orchestration.ProgressReporter = orchestration.NullProgressReporter{}
	if reporter != nil {
		progressReporter = reporter
	}

	engines := []harmonic.Summer{parallel}
	results := make([]calibrationResult, 0, len(ladder))

	for _, tasks := range ladder {
		rung := calibrationResult{Tasks: tasks}
		for run := 0; run < runs; run++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			opts := harmonic.Options{Tasks: tasks, Workers: config.EstimateOptimalWorkers(tasks)}
			runResults := orchestration.ExecuteSummations(ctx, engines, harmonic.CalibrationN, opts, progressReporter, out)
			res := runResults[0]

			if res.Err != nil {
				if apperrors.IsContextError(res.Err) {
					return nil, res.Err
				}
				rung.Err = res.Err
				break
			}
			if run == 0 || res.Duration < rung.Duration {
				rung.Duration = res.Duration
			}
		}
		results = append(results, rung)
	}
	return results, nil
}

// findParallelSummer picks the block-parallel engine out of the registered
// summers.
func findParallelSummer(summers []harmonic.Summer) (harmonic.Summer, bool) {
	for _, s := range summers {
		if strings.Contains(s.Name(), "Parallel") {
			return s, true
		}
	}
	return nil, false
}

// bestResult returns the fastest successful rung.
func bestResult(results []calibrationResult) (calibrationResult, bool) {
	var best calibrationResult
	found := false
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if !found || res.Duration < best.Duration {
			best = res
			found = true
		}
	}
	return best, found
}

// firstError returns the first rung error, for the failure diagnostic.
func firstError(results []calibrationResult) error {
	for _, res := range results {
		if res.Err != nil {
			return res.Err
		}
	}
	return nil
}
