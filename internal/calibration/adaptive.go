// This file implements adaptive task ladder generation based on hardware characteristics.

package calibration

import (
	"runtime"

	"github.com/agbru/harmcalc/internal/config"
)

// ─────────────────────────────────────────────────────────────────────────────
// Adaptive Task Ladder Generation
// ─────────────────────────────────────────────────────────────────────────────

// GenerateTaskCounts generates the ladder of parallel task counts to
// benchmark, based on the number of available CPU cores.
//
// The rationale:
// - Single-core: Only test one block, as parallelism has no benefit
// - 2-4 cores: Test up to a few blocks per core
// - 8+ cores: Include higher counts as finer blocks smooth scheduling jitter
// - 16+ cores: Add even higher counts for very fine-grained decomposition
//
// The ladder always starts at 1, which reduces the parallel engine to a
// single block and serves as the speedup baseline in the summary table.
func GenerateTaskCounts() []int {
	numCPU := runtime.NumCPU()

	// Base count always tested
	counts := []int{1} // Single block (no parallelism)

	switch {
	case numCPU == 1:
		// Single core: only one block makes sense
		return counts

	case numCPU <= 4:
		// Few cores: test moderate counts
		counts = append(counts, 2, 4, 8, 16)

	case numCPU <= 8:
		// Medium core count: broader range
		counts = append(counts, 2, 4, 8, 16, 32, 64)

	case numCPU <= 16:
		// Many cores: include higher counts
		counts = append(counts, 2, 4, 8, 16, 32, 64, 128)

	default:
		// High core count (16+): full range including very high counts
		counts = append(counts, 2, 4, 8, 16, 32, 64, 128, 256)
	}

	return counts
}

// GenerateQuickTaskCounts generates a smaller ladder for quick
// auto-calibration at startup.
func GenerateQuickTaskCounts() []int {
	numCPU := runtime.NumCPU()

	if numCPU == 1 {
		return []int{1}
	}

	// Reduced set for quick calibration
	switch {
	case numCPU <= 4:
		return []int{1, 4, 8}
	case numCPU <= 8:
		return []int{1, 4, 8, 16}
	default:
		return []int{1, 8, 16, 32, 64}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Task Estimation (without benchmarking)
// Delegates to config.EstimateOptimal*; canonical implementations live there.
// ─────────────────────────────────────────────────────────────────────────────

// EstimateOptimalTasks delegates to config.EstimateOptimalTasks.
func EstimateOptimalTasks() int { return config.EstimateOptimalTasks() }

// EstimateOptimalWorkers delegates to config.EstimateOptimalWorkers.
func EstimateOptimalWorkers(tasks int) int { return config.EstimateOptimalWorkers(tasks) }
