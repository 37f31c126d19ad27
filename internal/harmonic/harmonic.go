package harmonic

import (
	"context"

	apperrors "github.com/agbru/harmcalc/internal/errors"
	"github.com/agbru/harmcalc/internal/progress"
)

// Options holds the tuning parameters of a summation run.
type Options struct {
	// Tasks is the number of contiguous blocks the parallel engine splits
	// the range into. The sequential engine ignores it.
	Tasks int

	// Workers bounds the number of goroutines reducing blocks concurrently.
	// Zero means one worker per block.
	Workers int

	// ChunkSize is the number of terms summed between consecutive progress
	// reports and cancellation checks. Zero selects the default stride.
	ChunkSize uint64
}

// coreSummer is the low-level engine contract: a pure computation with a
// plain progress callback and no channel plumbing.
type coreSummer interface {
	// Name returns a human-readable description of the engine.
	Name() string

	// SumCore computes H(n), invoking callback with overall progress in
	// [0, 1]. The callback must tolerate concurrent invocation: the
	// parallel engine reports from every worker.
	SumCore(ctx context.Context, callback progress.ProgressCallback, n uint64, opts Options) (float64, error)
}

// Summer is the public summation contract consumed by the orchestration
// layer. Implementations publish progress as ProgressUpdate values tagged
// with the summer's index in the current run.
type Summer interface {
	// Name returns a human-readable description of the engine.
	Name() string

	// Sum computes H(n). Progress updates are sent to progressChan when it
	// is non-nil; sends never block, so a slow consumer only loses
	// intermediate updates.
	Sum(ctx context.Context, progressChan chan<- progress.ProgressUpdate, summerIndex int, n uint64, opts Options) (float64, error)
}

// HarmonicSummer adapts a coreSummer to the Summer interface, wiring the
// observer machinery between the engine's callback and the caller's
// progress channel.
type HarmonicSummer struct {
	core coreSummer
}

// NewSummer wraps a summation engine in the standard progress plumbing.
func NewSummer(core coreSummer) Summer {
	return &HarmonicSummer{core: core}
}

// Name returns the name of the underlying engine.
func (s *HarmonicSummer) Name() string {
	return s.core.Name()
}

// Sum computes H(n), publishing progress to progressChan when non-nil.
func (s *HarmonicSummer) Sum(ctx context.Context, progressChan chan<- progress.ProgressUpdate, summerIndex int, n uint64, opts Options) (float64, error) {
	subject := progress.NewProgressSubject()
	if progressChan != nil {
		subject.Register(progress.NewChannelObserver(progressChan))
	}
	return s.SumWithObservers(ctx, subject, summerIndex, n, opts)
}

// SumWithObservers computes H(n), notifying every observer registered on
// subject. Observers added after the call starts are not notified: the
// observer set is frozen once, before the first term is summed.
func (s *HarmonicSummer) SumWithObservers(ctx context.Context, subject *progress.ProgressSubject, summerIndex int, n uint64, opts Options) (float64, error) {
	if subject == nil {
		subject = progress.NewProgressSubject()
	}
	callback := subject.Freeze(summerIndex)
	return s.core.SumCore(ctx, callback, n, opts)
}

// validateN rejects summation bounds below 1 before any work is dispatched.
func validateN(n uint64) error {
	if n < 1 {
		return apperrors.ValidationError{Field: "n", Message: "must be at least 1"}
	}
	return nil
}

// validateTasks rejects non-positive task counts before any work is
// dispatched.
func validateTasks(tasks int) error {
	if tasks < 1 {
		return apperrors.ValidationError{Field: "tasks", Message: "must be at least 1"}
	}
	return nil
}
