package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/agbru/harmcalc/internal/harmonic"
	"github.com/agbru/harmcalc/internal/progress"
)

// mockSummer simulates various engine behaviors for deadlock testing.
type mockSummer struct {
	name     string
	behavior string // "instant", "slow", "error", "progress_flood"
	delay    time.Duration
}

func (m *mockSummer) Sum(ctx context.Context, progressChan chan<- progress.ProgressUpdate, summerIndex int, n uint64, opts harmonic.Options) (float64, error) {
	switch m.behavior {
	case "instant":
		return 1.0, nil
	case "slow":
		for i := 0; i < 100; i++ {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case progressChan <- progress.ProgressUpdate{SummerIndex: summerIndex, Value: float64(i) / 100.0}:
			default: // non-blocking
			}
			time.Sleep(m.delay)
		}
		return 1.0, nil
	case "error":
		return 0, fmt.Errorf("simulated error")
	case "progress_flood":
		// Flood the progress channel
		for i := 0; i < 10000; i++ {
			select {
			case progressChan <- progress.ProgressUpdate{SummerIndex: summerIndex, Value: float64(i) / 10000.0}:
			default:
			}
		}
		return 1.0, nil
	}
	return 1.0, nil
}

func (m *mockSummer) Name() string { return m.name }

// mockProgressReporter that just drains the channel.
type mockProgressReporter struct{}

func (m *mockProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numSummers int, out io.Writer) {
	defer wg.Done()
	for range progressChan {
	} // drain until closed
}

// TestOrchestrationNoDeadlock_MixedBehaviors verifies that ExecuteSummations
// completes without deadlocking under various engine behavior combinations.
func TestOrchestrationNoDeadlock_MixedBehaviors(t *testing.T) {
	testCases := []struct {
		name    string
		summers []harmonic.Summer
	}{
		{
			name: "all_instant",
			summers: []harmonic.Summer{
				&mockSummer{name: "s1", behavior: "instant"},
				&mockSummer{name: "s2", behavior: "instant"},
				&mockSummer{name: "s3", behavior: "instant"},
			},
		},
		{
			name: "mixed_instant_and_slow",
			summers: []harmonic.Summer{
				&mockSummer{name: "fast", behavior: "instant"},
				&mockSummer{name: "slow", behavior: "slow", delay: time.Millisecond},
			},
		},
		{
			name: "mixed_with_errors",
			summers: []harmonic.Summer{
				&mockSummer{name: "ok", behavior: "instant"},
				&mockSummer{name: "err", behavior: "error"},
			},
		},
		{
			name: "progress_flood",
			summers: []harmonic.Summer{
				&mockSummer{name: "flood1", behavior: "progress_flood"},
				&mockSummer{name: "flood2", behavior: "progress_flood"},
			},
		},
		{
			name: "single_summer",
			summers: []harmonic.Summer{
				&mockSummer{name: "solo", behavior: "instant"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			reporter := &mockProgressReporter{}

			done := make(chan struct{})
			go func() {
				defer close(done)
				ExecuteSummations(ctx, tc.summers, 100, harmonic.Options{Tasks: 2}, reporter, io.Discard)
			}()

			select {
			case <-done:
				// Success - no deadlock
			case <-time.After(10 * time.Second):
				t.Fatal("DEADLOCK: ExecuteSummations did not complete within timeout")
			}
		})
	}
}

// TestOrchestrationNoDeadlock_ContextCancellation verifies that cancelling
// the context during execution does not cause a deadlock.
func TestOrchestrationNoDeadlock_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	summers := []harmonic.Summer{
		&mockSummer{name: "slow1", behavior: "slow", delay: 100 * time.Millisecond},
		&mockSummer{name: "slow2", behavior: "slow", delay: 100 * time.Millisecond},
	}

	reporter := &mockProgressReporter{}

	done := make(chan struct{})
	go func() {
		defer close(done)
		ExecuteSummations(ctx, summers, 100, harmonic.Options{Tasks: 2}, reporter, io.Discard)
	}()

	// Cancel after a short delay
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
		// Success
	case <-time.After(5 * time.Second):
		t.Fatal("DEADLOCK after context cancellation")
	}
}
