package orchestration

import (
	"time"

	"github.com/agbru/harmcalc/internal/format"
	"github.com/agbru/harmcalc/internal/progress"
)

// ProgressAggregator manages multi-engine progress aggregation.
// It wraps format.ProgressWithETA and provides a higher-level API
// for consuming progress updates from a channel. Both CLI and TUI
// use this to avoid duplicating the aggregation setup and update logic.
type ProgressAggregator struct {
	state      *format.ProgressWithETA
	numSummers int
}

// NewProgressAggregator creates a new aggregator for the given number
// of summers. Returns nil if numSummers <= 0.
func NewProgressAggregator(numSummers int) *ProgressAggregator {
	if numSummers <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:      format.NewProgressWithETA(numSummers),
		numSummers: numSummers,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// SummerIndex is the index of the summer that sent the update.
	SummerIndex int
	// Value is the raw progress value from the update (0.0 to 1.0).
	Value float64
	// AverageProgress is the aggregated average across all summers.
	AverageProgress float64
	// ETA is the estimated time remaining based on smoothed progress rate.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avgProgress, eta := a.state.UpdateWithETA(update.SummerIndex, update.Value)
	return AggregatedProgress{
		SummerIndex:     update.SummerIndex,
		Value:           update.Value,
		AverageProgress: avgProgress,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumSummers returns the number of summers being tracked.
func (a *ProgressAggregator) NumSummers() int {
	return a.numSummers
}

// IsMultiSummer returns true if tracking more than one summer.
func (a *ProgressAggregator) IsMultiSummer() bool {
	return a.numSummers > 1
}

// DrainChannel reads all updates from the channel without processing.
// Use this when numSummers <= 0 and updates should be discarded.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
