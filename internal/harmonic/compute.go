package harmonic

import (
	"context"
	"time"
)

// Compute resolves an engine by name from the global factory and computes
// H(n) with it, reporting the elapsed wall-clock time. It is the single-call
// entry point for embedding callers that want a value and a timing without
// progress reporting.
func Compute(ctx context.Context, algorithm string, n uint64, tasks int) (float64, time.Duration, error) {
	summer, err := GlobalFactory().Get(algorithm)
	if err != nil {
		return 0, 0, err
	}
	start := time.Now()
	value, err := summer.Sum(ctx, nil, 0, n, Options{Tasks: tasks})
	return value, time.Since(start), err
}
