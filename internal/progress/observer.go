package progress

import (
	"sync"

	"github.com/agbru/harmcalc/internal/logging"
)

// ProgressObserver is notified of progress changes for a specific summation
// engine. Implementations must be safe for concurrent use.
type ProgressObserver interface {
	// Update receives the engine index and its completed fraction in [0, 1].
	Update(summerIndex int, progress float64)
}

// ProgressSubject manages a set of observers and produces frozen callback
// snapshots for summation engines.
//
// The snapshot semantics matter for correctness: an engine obtains its
// callback via Freeze before starting, and observers registered afterwards
// must not be retroactively attached to an in-flight computation. Freeze
// copies the observer list under lock, so the returned callback notifies
// exactly the observers present at freeze time, without further locking on
// the hot path.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject creates an empty ProgressSubject.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer. Safe for concurrent use.
func (s *ProgressSubject) Register(observer ProgressObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Freeze returns a ProgressCallback bound to the given engine index and to a
// snapshot of the currently registered observers.
func (s *ProgressSubject) Freeze(summerIndex int) ProgressCallback {
	s.mu.RLock()
	snapshot := make([]ProgressObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()

	return func(progress float64) {
		for _, observer := range snapshot {
			observer.Update(summerIndex, progress)
		}
	}
}

// ChannelObserver forwards progress updates into a channel. Sends are
// non-blocking: when the channel is full the update is dropped rather than
// stalling the summation engine. Progress is advisory; the terminal 1.0 is
// guaranteed by the orchestrator's drain, not by individual sends.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver creates an observer forwarding into ch.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// Update sends the progress update without blocking.
func (o *ChannelObserver) Update(summerIndex int, progress float64) {
	select {
	case o.ch <- ProgressUpdate{SummerIndex: summerIndex, Value: progress}:
	default:
	}
}

// LoggingObserver logs progress at debug level, at most once per
// logStride of advancement per engine, to keep log volume bounded.
type LoggingObserver struct {
	logger logging.Logger

	mu   sync.Mutex
	last map[int]float64
}

// logStride is the minimum progress advancement between two log lines.
const logStride = 0.10

// NewLoggingObserver creates an observer logging through the given logger.
func NewLoggingObserver(logger logging.Logger) *LoggingObserver {
	return &LoggingObserver{
		logger: logger,
		last:   make(map[int]float64),
	}
}

// Update logs the progress if it advanced at least logStride since the last
// logged value for this engine.
func (o *LoggingObserver) Update(summerIndex int, progress float64) {
	o.mu.Lock()
	last, seen := o.last[summerIndex]
	if seen && progress < 1.0 && progress-last < logStride {
		o.mu.Unlock()
		return
	}
	o.last[summerIndex] = progress
	o.mu.Unlock()

	o.logger.Debug("summation progress",
		logging.Int("summer", summerIndex),
		logging.Float64("progress", progress),
	)
}

// NoOpObserver discards all updates. Useful as a default when no progress
// consumer is configured.
type NoOpObserver struct{}

// NewNoOpObserver creates a NoOpObserver.
func NewNoOpObserver() *NoOpObserver {
	return &NoOpObserver{}
}

// Update discards the notification.
func (*NoOpObserver) Update(int, float64) {}
