// This file provides type aliases for progress types that live in the
// internal/progress package. The aliases let consumers of the harmonic
// package work with progress reporting without importing a second package.

package harmonic

import "github.com/agbru/harmcalc/internal/progress"

// Type aliases for types defined in internal/progress.
type (
	// ProgressUpdate is a type alias for progress.ProgressUpdate.
	ProgressUpdate = progress.ProgressUpdate

	// ProgressCallback is a type alias for progress.ProgressCallback.
	ProgressCallback = progress.ProgressCallback

	// ProgressObserver is a type alias for progress.ProgressObserver.
	ProgressObserver = progress.ProgressObserver

	// ProgressSubject is a type alias for progress.ProgressSubject.
	ProgressSubject = progress.ProgressSubject

	// ChannelObserver is a type alias for progress.ChannelObserver.
	ChannelObserver = progress.ChannelObserver

	// LoggingObserver is a type alias for progress.LoggingObserver.
	LoggingObserver = progress.LoggingObserver

	// NoOpObserver is a type alias for progress.NoOpObserver.
	NoOpObserver = progress.NoOpObserver
)

// Re-exported constructors and functions from internal/progress.
var (
	// NewProgressSubject creates a new progress subject.
	NewProgressSubject = progress.NewProgressSubject

	// NewChannelObserver creates a new channel observer.
	NewChannelObserver = progress.NewChannelObserver

	// NewLoggingObserver creates a new logging observer.
	NewLoggingObserver = progress.NewLoggingObserver

	// NewNoOpObserver creates a new no-op observer.
	NewNoOpObserver = progress.NewNoOpObserver

	// ReportRatio reports done/total through a progress callback.
	ReportRatio = progress.ReportRatio
)
