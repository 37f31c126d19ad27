package harmonic

import (
	"context"

	"github.com/agbru/harmcalc/internal/progress"
)

// SequentialSum is the single-core reference engine. It reduces the whole
// range [1, n] as one block, in descending index order, and serves as the
// correctness baseline the parallel engine is validated against.
type SequentialSum struct{}

// Name returns a human-readable description of the engine.
func (s *SequentialSum) Name() string {
	return "Sequential Descending (O(n), Single-Core)"
}

// SumCore computes H(n) on the calling goroutine.
//
// Parameters:
//   - ctx: cancellation context, checked once per progress chunk
//   - callback: receives overall progress in [0, 1]; may be nil
//   - n: upper summation bound, must be >= 1
//   - opts: tuning parameters; only ChunkSize is consulted
//
// Returns the partial sum H(n), or the context error if the run was
// canceled before completing.
func (s *SequentialSum) SumCore(ctx context.Context, callback progress.ProgressCallback, n uint64, opts Options) (float64, error) {
	if err := validateN(n); err != nil {
		return 0, err
	}
	return SumBlock(ctx, Block{Start: 1, End: n}, callback, opts.ChunkSize)
}
