package harmonic

import (
	"context"

	"github.com/agbru/harmcalc/internal/progress"
)

// sumDescending accumulates 1/i for i from end down to start, inclusive.
// Summing in descending order adds the smallest terms first, which keeps
// the running total small relative to the incoming term for as long as
// possible and reduces the accumulated rounding error of the naive loop.
//
// The loop checks for context cancellation once per chunkSize terms and
// invokes onChunk with the number of terms completed since the previous
// call. A trailing partial chunk is always flushed, so the sum of all
// onChunk arguments equals the block length.
func sumDescending(ctx context.Context, start, end, chunkSize uint64, onChunk func(terms uint64)) (float64, error) {
	if end < start {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if chunkSize == 0 {
		chunkSize = progress.DefaultChunkSize
	}

	var sum float64
	var pending uint64
	for i := end; ; i-- {
		sum += 1.0 / float64(i)
		pending++
		if pending == chunkSize {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			if onChunk != nil {
				onChunk(pending)
			}
			pending = 0
		}
		if i == start {
			break
		}
	}
	if pending > 0 && onChunk != nil {
		onChunk(pending)
	}
	return sum, nil
}

// SumBlock reduces a single block to its partial harmonic sum, iterating
// the block in descending index order. Empty blocks yield zero.
//
// The callback, when non-nil, receives the fraction of the block completed
// in [0, 1] roughly once per progress chunk.
func SumBlock(ctx context.Context, block Block, callback progress.ProgressCallback, chunkSize uint64) (float64, error) {
	if callback == nil {
		return sumDescending(ctx, block.Start, block.End, chunkSize, nil)
	}

	total := block.Terms()
	var done uint64
	return sumDescending(ctx, block.Start, block.End, chunkSize, func(terms uint64) {
		done += terms
		progress.ReportRatio(callback, done, total)
	})
}
