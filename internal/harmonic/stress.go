package harmonic

import (
	"context"
	"fmt"
	"time"
)

// StressOptions configures a stress run. Zero values select the standard
// battery: the degenerate layout where 64 blocks cover only 100 indices, so
// most blocks are empty and the combiner is hammered by trivial reductions.
type StressOptions struct {
	N          uint64
	Tasks      int
	Iterations int
	Tolerance  float64
}

// StressDefaults are the standard battery parameters.
const (
	StressDefaultN          uint64 = 100
	StressDefaultTasks             = 64
	StressDefaultIterations        = 1000
)

// StressReport summarizes a stress run. Deltas are relative to the
// sequential reference value.
type StressReport struct {
	Iterations int
	Failures   int
	Reference  float64
	MinDelta   float64
	MaxDelta   float64
	Elapsed    time.Duration
}

// withDefaults fills unset options with the standard battery parameters.
func (o StressOptions) withDefaults() StressOptions {
	if o.N == 0 {
		o.N = StressDefaultN
	}
	if o.Tasks == 0 {
		o.Tasks = StressDefaultTasks
	}
	if o.Iterations == 0 {
		o.Iterations = StressDefaultIterations
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	return o
}

// RunStress repeatedly computes H(N) with the parallel engine and checks
// every iteration against the sequential reference within the relative
// tolerance. It returns the report and the first hard failure: an engine
// error or a context cancellation stops the battery, while tolerance
// violations are counted and the battery continues, so the report shows how
// often and how far the combiner drifted.
func RunStress(ctx context.Context, opts StressOptions) (StressReport, error) {
	opts = opts.withDefaults()

	reference, err := (&SequentialSum{}).SumCore(ctx, nil, opts.N, Options{})
	if err != nil {
		return StressReport{}, fmt.Errorf("stress reference sum: %w", err)
	}

	report := StressReport{Reference: reference, MinDelta: 1}
	engine := &ParallelSum{}
	start := time.Now()

	for i := 0; i < opts.Iterations; i++ {
		got, err := engine.SumCore(ctx, nil, opts.N, Options{Tasks: opts.Tasks})
		if err != nil {
			report.Elapsed = time.Since(start)
			return report, fmt.Errorf("stress iteration %d: %w", i, err)
		}

		delta := RelativeDelta(got, reference)
		if delta < report.MinDelta {
			report.MinDelta = delta
		}
		if delta > report.MaxDelta {
			report.MaxDelta = delta
		}
		if !WithinTolerance(got, reference, opts.Tolerance) {
			report.Failures++
		}
		report.Iterations++
	}

	report.Elapsed = time.Since(start)
	return report, nil
}
