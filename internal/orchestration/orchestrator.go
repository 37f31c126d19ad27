package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/harmcalc/internal/errors"
	"github.com/agbru/harmcalc/internal/harmonic"
	"github.com/agbru/harmcalc/internal/progress"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking summation
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// ExecuteSummations orchestrates the concurrent execution of one or more
// harmonic summations.
//
// It manages the lifecycle of summation goroutines, collects their results,
// and coordinates the display of progress updates. This function is the core of
// the application's concurrency model. Every engine runs to completion even
// when a sibling fails: per-engine errors are recorded in the results rather
// than aborting the run, so a comparison can still report the survivors.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - summers: A slice of summation engines to execute.
//   - n: The upper summation bound.
//   - opts: The tuning options passed to every engine.
//   - progressReporter: The progress reporter for displaying updates (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []SummationResult: A slice containing the results of each summation.
func ExecuteSummations(ctx context.Context, summers []harmonic.Summer, n uint64, opts harmonic.Options, progressReporter ProgressReporter, out io.Writer) []SummationResult {
	ctx, span := getTracer().Start(ctx, "orchestration.ExecuteSummations",
		trace.WithAttributes(
			attribute.Int64("harmcalc.n", int64(n)),
			attribute.Int("harmcalc.tasks", opts.Tasks),
			attribute.Int("harmcalc.engines", len(summers)),
		))
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]SummationResult, len(summers))
	progressChan := make(chan progress.ProgressUpdate, len(summers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(summers), out)

	for i, summer := range summers {
		idx, engine := i, summer
		g.Go(func() error {
			engineCtx, engineSpan := getTracer().Start(ctx, "orchestration.Summer.Sum",
				trace.WithAttributes(attribute.String("harmcalc.engine", engine.Name())))
			defer engineSpan.End()

			startTime := time.Now()
			sum, err := engine.Sum(engineCtx, progressChan, idx, n, opts)
			if err != nil {
				engineSpan.RecordError(err)
				engineSpan.SetStatus(codes.Error, err.Error())
			}
			results[idx] = SummationResult{
				Name: engine.Name(), Value: sum, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults processes the results from multiple engines and
// generates a summary report.
//
// It sorts the results by execution time, validates agreement across
// successful summations within the configured relative tolerance, and
// displays a comparative table. It handles the logic for determining global
// success or failure based on the individual outcomes.
//
// Parameters:
//   - results: The slice of summation results to analyze.
//   - opts: Presentation options, including the agreement tolerance.
//   - presenter: The result presenter for display formatting.
//   - errHandler: The handler that maps a fatal error to an exit code.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []SummationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValidResult *SummationResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValidResult == nil {
				firstValidResult = &results[i]
			}
		}
	}

	// Present the comparison table
	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No engine could complete the summation.\n")
		return errHandler.HandleError(firstError, 0, out)
	}

	for i := range results {
		res := &results[i]
		if res.Err != nil || res == firstValidResult {
			continue
		}
		if !harmonic.WithinTolerance(res.Value, firstValidResult.Value, opts.Tolerance) {
			mismatch := apperrors.MismatchError{
				Reference:     firstValidResult.Name,
				Candidate:     res.Name,
				RelativeDelta: harmonic.RelativeDelta(res.Value, firstValidResult.Value),
				Tolerance:     opts.Tolerance,
			}
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the engines.\n")
			fmt.Fprintf(out, "%v\n", mismatch)
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results agree within tolerance.\n")
	printSpeedup(results, opts, out)
	presenter.PresentResult(*firstValidResult, opts.N, opts.Verbose, opts.Details, opts.ShowValue, out)
	return apperrors.ExitSuccess
}

// printSpeedup emits the sequential-to-parallel speedup line when a
// comparison run produced both engines successfully.
func printSpeedup(results []SummationResult, opts PresentationOptions, out io.Writer) {
	var sequential, parallelResult *SummationResult
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		switch {
		case strings.Contains(results[i].Name, "Sequential"):
			sequential = &results[i]
		case strings.Contains(results[i].Name, "Parallel"):
			parallelResult = &results[i]
		}
	}
	if sequential == nil || parallelResult == nil || parallelResult.Duration <= 0 {
		return
	}

	speedup := float64(sequential.Duration) / float64(parallelResult.Duration)
	if opts.Tasks > 0 {
		efficiency := speedup / float64(opts.Tasks) * 100
		fmt.Fprintf(out, "Speedup: %.2fx with %d tasks (%.0f%% efficiency)\n",
			speedup, opts.Tasks, efficiency)
		return
	}
	fmt.Fprintf(out, "Speedup: %.2fx\n", speedup)
}
