package metrics

import (
	"testing"
	"time"
)

func TestCompute(t *testing.T) {
	t.Parallel()

	ind := Compute(1_000_000, time.Second)
	if ind == nil {
		t.Fatal("Compute returned nil for a valid run")
	}
	if ind.TermsPerSecond != 1e6 {
		t.Errorf("TermsPerSecond = %g, want 1e6", ind.TermsPerSecond)
	}
	if ind.NsPerTerm != 1e3 {
		t.Errorf("NsPerTerm = %g, want 1000", ind.NsPerTerm)
	}

	if Compute(1000, 0) != nil {
		t.Error("Compute should return nil for a zero duration")
	}
	if Compute(0, time.Second) != nil {
		t.Error("Compute should return nil for zero terms")
	}
}

func TestComputeLive(t *testing.T) {
	t.Parallel()

	// Half of 10M terms in 2s is 2.5M terms/s.
	ind := ComputeLive(10_000_000, 0.5, 2*time.Second)
	if ind == nil {
		t.Fatal("ComputeLive returned nil mid-run")
	}
	if ind.TermsPerSecond != 2.5e6 {
		t.Errorf("TermsPerSecond = %g, want 2.5e6", ind.TermsPerSecond)
	}

	if ComputeLive(1000, 0, time.Second) != nil {
		t.Error("ComputeLive should return nil before any progress")
	}
	if ComputeLive(1000, 0.5, 0) != nil {
		t.Error("ComputeLive should return nil with no elapsed time")
	}

	// Progress above 1 is clamped, not extrapolated.
	over := ComputeLive(1000, 1.5, time.Second)
	if over == nil || over.TermsPerSecond != 1000 {
		t.Errorf("overshoot progress should clamp to n terms, got %+v", over)
	}
}

func TestFormatTermsPerSecond(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tps  float64
		want string
	}{
		{3.2e9, "3.20 G/s"},
		{812.4e6, "812.4 M/s"},
		{45.67e3, "45.7 K/s"},
		{999, "999 /s"},
		{0, "0 /s"},
	}
	for _, tc := range tests {
		if got := FormatTermsPerSecond(tc.tps); got != tc.want {
			t.Errorf("FormatTermsPerSecond(%g) = %q, want %q", tc.tps, got, tc.want)
		}
	}
}

func TestFormatNsPerTerm(t *testing.T) {
	t.Parallel()

	if got := FormatNsPerTerm(0.92); got != "0.92 ns" {
		t.Errorf("FormatNsPerTerm(0.92) = %q", got)
	}
	if got := FormatNsPerTerm(1500); got != "1.50 µs" {
		t.Errorf("FormatNsPerTerm(1500) = %q", got)
	}
}

func TestGCDelta(t *testing.T) {
	t.Parallel()

	before := MemorySnapshot{NumGC: 3, PauseTotalNs: 1000}
	after := MemorySnapshot{NumGC: 5, PauseTotalNs: 4500}
	cycles, pause := GCDelta(before, after)
	if cycles != 2 {
		t.Errorf("cycles = %d, want 2", cycles)
	}
	if pause != 3500*time.Nanosecond {
		t.Errorf("pause = %v, want 3.5µs", pause)
	}
}

func TestCPUTime(t *testing.T) {
	t.Parallel()

	user, system, ok := CPUTime()
	if !ok {
		t.Skip("process CPU time not available on this platform")
	}
	if user < 0 || system < 0 {
		t.Errorf("CPU times cannot be negative: user=%v system=%v", user, system)
	}
}
