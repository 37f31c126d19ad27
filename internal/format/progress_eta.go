package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// MaxETA caps the estimated time remaining at a sane upper bound. Rates
// measured in the first instants of a run can be tiny, which would otherwise
// produce absurd multi-day estimates.
const MaxETA = 24 * time.Hour

// minRateWindow is the minimum elapsed time before a progress rate is
// considered meaningful.
const minRateWindow = 100 * time.Millisecond

// ProgressState tracks the progress of several concurrent workers and
// aggregates them into a single average value. It is safe for concurrent use.
type ProgressState struct {
	mu             sync.Mutex
	progresses     []float64
	numSummers int
}

// NewProgressState creates a ProgressState for the given number of workers.
func NewProgressState(numSummers int) *ProgressState {
	if numSummers < 0 {
		numSummers = 0
	}
	return &ProgressState{
		progresses:     make([]float64, numSummers),
		numSummers: numSummers,
	}
}

// Update records the progress value for one worker. Out-of-range indices are
// ignored and values are clamped into [0, 1].
func (ps *ProgressState) Update(index int, value float64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if index < 0 || index >= len(ps.progresses) {
		return
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	ps.progresses[index] = value
}

// CalculateAverage returns the mean progress across all workers, in [0, 1].
// It returns 0 when there are no workers.
func (ps *ProgressState) CalculateAverage() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.numSummers == 0 {
		return 0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numSummers)
}

// ProgressWithETA extends ProgressState with an estimate of the time
// remaining, derived from the overall progress rate since the run started.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	progressRate float64 // average progress per second
}

// NewProgressWithETA creates a ProgressWithETA for the given number of workers.
func NewProgressWithETA(numSummers int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numSummers),
		startTime:     time.Now(),
	}
}

// UpdateWithETA records a worker's progress and returns the new average
// progress together with the estimated time remaining.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()

	elapsed := time.Since(p.startTime)
	if elapsed >= minRateWindow && avg > 0 {
		p.progressRate = avg / elapsed.Seconds()
	}

	return avg, p.GetETA()
}

// GetETA returns the estimated time remaining based on the current average
// progress and the measured rate. It returns 0 when no rate is available yet,
// and never exceeds MaxETA.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1.0 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > MaxETA {
		return MaxETA
	}
	return eta
}

// FormatETA renders an ETA duration in a compact human form: "< 1s", "45s",
// "2m30s", "1h15m". Non-positive durations render as "calculating..." since
// they mean no estimate is available yet.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}

	eta = eta.Round(time.Second)
	hours := int(eta.Hours())
	minutes := int(eta.Minutes()) % 60
	seconds := int(eta.Seconds()) % 60

	switch {
	case hours > 0:
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case minutes > 0:
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatProgressBarWithETA renders a bracketed progress bar with percentage
// and ETA suffix, e.g. "[█████░░░░░] 50.0% ETA: 30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	etaStr := FormatETA(eta)
	if progress >= 1.0 {
		etaStr = "0s"
	}
	return fmt.Sprintf("[%s] %.1f%% ETA: %s", ProgressBar(progress, width), progress*100, etaStr)
}

// ProgressBar renders a textual progress bar of the given length using filled
// and empty block characters. Progress is clamped into [0, 1].
func ProgressBar(progress float64, length int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatNumberString inserts thousand separators into a decimal number string.
// A leading minus sign is preserved.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}

	sign := ""
	if s[0] == '-' {
		sign = "-"
		s = s[1:]
	}

	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
		b.WriteString(",")
	}
	for i := remainder; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteString(",")
		}
	}
	return sign + b.String()
}
