package metrics

import (
	"fmt"
	"time"
)

// Indicators holds throughput figures derived from a summation run.
type Indicators struct {
	// TermsPerSecond is the reduction rate: reciprocals accumulated per
	// second of wall time.
	TermsPerSecond float64

	// NsPerTerm is the inverse rate in nanoseconds, a steadier number to
	// watch when throughput saturates.
	NsPerTerm float64
}

// Compute derives throughput indicators from a completed run over n terms.
// Returns nil when the duration is not positive.
func Compute(n uint64, d time.Duration) *Indicators {
	if d <= 0 || n == 0 {
		return nil
	}
	secs := d.Seconds()
	return &Indicators{
		TermsPerSecond: float64(n) / secs,
		NsPerTerm:      float64(d.Nanoseconds()) / float64(n),
	}
}

// ComputeLive derives indicators for a run still in flight, from the
// fraction of terms already reduced. Returns nil until any progress has
// been made.
func ComputeLive(n uint64, progress float64, elapsed time.Duration) *Indicators {
	if progress <= 0 || elapsed <= 0 {
		return nil
	}
	if progress > 1 {
		progress = 1
	}
	done := progress * float64(n)
	secs := elapsed.Seconds()
	ind := &Indicators{TermsPerSecond: done / secs}
	if done > 0 {
		ind.NsPerTerm = float64(elapsed.Nanoseconds()) / done
	}
	return ind
}

// FormatTermsPerSecond renders a reduction rate with a scaled suffix,
// e.g. "812.4 M/s" or "3.1 G/s".
func FormatTermsPerSecond(tps float64) string {
	switch {
	case tps >= 1e9:
		return fmt.Sprintf("%.2f G/s", tps/1e9)
	case tps >= 1e6:
		return fmt.Sprintf("%.1f M/s", tps/1e6)
	case tps >= 1e3:
		return fmt.Sprintf("%.1f K/s", tps/1e3)
	default:
		return fmt.Sprintf("%.0f /s", tps)
	}
}

// FormatNsPerTerm renders a per-term cost, switching to microseconds when a
// term takes unusually long (tiny n with cold caches).
func FormatNsPerTerm(ns float64) string {
	if ns >= 1e3 {
		return fmt.Sprintf("%.2f µs", ns/1e3)
	}
	return fmt.Sprintf("%.2f ns", ns)
}
