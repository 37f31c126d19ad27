package calibration

import (
	"runtime"
	"testing"
)

func TestGenerateTaskCounts(t *testing.T) {
	t.Parallel()
	counts := GenerateTaskCounts()

	// Should always include the single-block baseline (1)
	if len(counts) == 0 || counts[0] != 1 {
		t.Error("Expected task counts to start with 1 (single block)")
	}

	// Task counts must be positive
	for i, c := range counts {
		if c < 1 {
			t.Errorf("Task count at index %d is not positive: %d", i, c)
		}
	}

	// Verify the ladder is appropriate for the CPU count
	numCPU := runtime.NumCPU()
	switch {
	case numCPU == 1:
		if len(counts) != 1 {
			t.Errorf("For 1 CPU, expected 1 task count, got %d", len(counts))
		}
	case numCPU <= 4:
		if len(counts) < 5 {
			t.Errorf("For %d CPUs, expected at least 5 task counts, got %d", numCPU, len(counts))
		}
		// Should include: 1, 2, 4, 8, 16
		expected := []int{1, 2, 4, 8, 16}
		for _, exp := range expected {
			found := false
			for _, c := range counts {
				if c == exp {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Expected task count %d not found in %v", exp, counts)
			}
		}
	case numCPU <= 8:
		if len(counts) < 7 {
			t.Errorf("For %d CPUs, expected at least 7 task counts, got %d", numCPU, len(counts))
		}
	case numCPU <= 16:
		if len(counts) < 8 {
			t.Errorf("For %d CPUs, expected at least 8 task counts, got %d", numCPU, len(counts))
		}
	default:
		if len(counts) < 9 {
			t.Errorf("For %d CPUs, expected at least 9 task counts, got %d", numCPU, len(counts))
		}
	}

	// Log the ladder for visibility
	t.Logf("Generated %d task counts for %d CPUs: %v",
		len(counts), numCPU, counts)
}

func TestGenerateQuickTaskCounts(t *testing.T) {
	t.Parallel()
	counts := GenerateQuickTaskCounts()

	// Should be shorter than full ladder
	fullCounts := GenerateTaskCounts()
	if len(counts) > len(fullCounts) {
		t.Error("Quick ladder should not be longer than the full ladder")
	}

	// Should have at least one count
	if len(counts) < 1 {
		t.Error("Expected at least one task count")
	}

	// Verify the ladder is appropriate for the CPU count
	numCPU := runtime.NumCPU()
	switch {
	case numCPU == 1:
		if len(counts) != 1 || counts[0] != 1 {
			t.Errorf("For 1 CPU, expected [1], got %v", counts)
		}
	case numCPU <= 4:
		if len(counts) != 3 {
			t.Errorf("For %d CPUs, expected 3 task counts, got %d", numCPU, len(counts))
		}
	case numCPU <= 8:
		if len(counts) != 4 {
			t.Errorf("For %d CPUs, expected 4 task counts, got %d", numCPU, len(counts))
		}
	default:
		if len(counts) != 5 {
			t.Errorf("For %d CPUs, expected 5 task counts, got %d", numCPU, len(counts))
		}
	}

	t.Logf("Generated %d quick task counts: %v", len(counts), counts)
}

func TestEstimateOptimalTasks(t *testing.T) {
	t.Parallel()
	tasks := EstimateOptimalTasks()

	// Should be positive
	if tasks < 1 {
		t.Errorf("Estimated task count should be positive: %d", tasks)
	}

	// Should be in reasonable range
	if tasks > 1024 {
		t.Errorf("Estimated task count seems too high: %d", tasks)
	}

	numCPU := runtime.NumCPU()
	t.Logf("Estimated task count for %d CPUs: %d", numCPU, tasks)
}

func TestEstimateOptimalWorkers(t *testing.T) {
	t.Parallel()
	for _, tasks := range []int{1, 4, 64, 1024} {
		workers := EstimateOptimalWorkers(tasks)

		if workers < 1 {
			t.Errorf("Estimated workers for %d tasks should be positive: %d", tasks, workers)
		}

		// An idle worker has no block to reduce
		if workers > tasks {
			t.Errorf("Estimated workers %d exceeds task count %d", workers, tasks)
		}
	}
}

// Benchmark ladder generation
func BenchmarkGenerateTaskCounts(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = GenerateTaskCounts()
	}
}
