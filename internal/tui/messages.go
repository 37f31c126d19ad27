package tui

import (
	"time"

	"github.com/agbru/harmcalc/internal/metrics"
	"github.com/agbru/harmcalc/internal/orchestration"
)

// Messages flowing into the bubbletea update loop. The bridge goroutines in
// bridge.go produce the orchestration-side messages; the tick and sampler
// commands in model.go produce the rest.

// ProgressMsg carries one aggregated progress update from a running engine.
type ProgressMsg struct {
	// SummerIndex identifies the engine that reported.
	SummerIndex int
	// Value is that engine's own progress in [0, 1].
	Value float64
	// AverageProgress is the mean progress across all engines.
	AverageProgress float64
	// ETA is the estimated time remaining for the slowest engine.
	ETA time.Duration
}

// ProgressDoneMsg signals that the progress channel has been closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the per-engine results of a comparison run.
type ComparisonResultsMsg struct {
	Results []orchestration.SummationResult
}

// FinalResultMsg carries the winning result and its presentation flags.
type FinalResultMsg struct {
	Result    orchestration.SummationResult
	N         uint64
	Verbose   bool
	Details   bool
	ShowValue bool
}

// IndicatorsMsg delivers throughput indicators computed off the UI thread.
type IndicatorsMsg struct {
	Indicators *metrics.Indicators
}

// ErrorMsg reports a summation failure.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives the periodic refresh of the dashboard.
type TickMsg time.Time

// MemStatsMsg carries a snapshot of the Go runtime memory statistics.
type MemStatsMsg struct {
	Alloc        uint64
	HeapInuse    uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// CalculationCompleteMsg signals that the orchestration finished, carrying
// the exit code the process should end with. Generation guards against
// messages from a run that was restarted in the meantime.
type CalculationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg signals that the run's context was canceled.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
