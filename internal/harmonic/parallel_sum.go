package harmonic

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/harmcalc/internal/parallel"
	"github.com/agbru/harmcalc/internal/progress"
)

// ParallelSum is the task-parallel engine. The range [1, n] is split into
// opts.Tasks contiguous blocks, each block is reduced in descending order
// on a bounded worker pool, and every partial sum is folded into a single
// shared accumulator with an atomic add. The accumulator is read only
// after the pool has fully drained, so no combine can race the final read.
type ParallelSum struct{}

// Name returns a human-readable description of the engine.
func (p *ParallelSum) Name() string {
	return "Block-Parallel (O(n/T), Atomic Combine)"
}

// SumCore computes H(n) across a pool of workers.
//
// Parameters:
//   - ctx: cancellation context; the first worker error cancels the rest
//   - callback: receives overall progress in [0, 1]; invoked concurrently
//     from every worker, and exactly once with 1.0 after the pool drains
//   - n: upper summation bound, must be >= 1
//   - opts: Tasks must be >= 1; Workers and ChunkSize are optional
//
// Returns the combined partial sum, or the first worker error. On error
// the partial accumulator state is discarded.
func (p *ParallelSum) SumCore(ctx context.Context, callback progress.ProgressCallback, n uint64, opts Options) (float64, error) {
	if err := validateN(n); err != nil {
		return 0, err
	}
	if err := validateTasks(opts.Tasks); err != nil {
		return 0, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = opts.Tasks
	}

	// Workers report term counts into a shared monotone counter so that
	// overall progress is exact regardless of which blocks finish first.
	var done atomic.Uint64
	var onChunk func(terms uint64)
	if callback != nil {
		onChunk = func(terms uint64) {
			progress.ReportRatio(callback, done.Add(terms), n)
		}
	}

	// The accumulator is the only state shared between workers.
	var acc parallel.Float64Adder

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, block := range Partition(n, opts.Tasks) {
		block := block
		g.Go(func() error {
			partial, err := sumDescending(gctx, block.Start, block.End, opts.ChunkSize, onChunk)
			if err != nil {
				return err
			}
			acc.Add(partial)
			return nil
		})
	}

	// Wait is the barrier between the last combine and the final read.
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if callback != nil {
		callback(1.0)
	}
	return acc.Load(), nil
}
