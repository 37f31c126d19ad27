package config

import "runtime"

// Task count resolution chain (highest priority first):
//   1. CLI flags (--tasks, --workers)
//   2. Environment variables (HARMCALC_TASKS, HARMCALC_WORKERS)
//   3. Cached calibration profile (~/.harmcalc_calibration.json)
//   4. Adaptive hardware estimation (this file)

// ApplyAdaptiveTasks fills in the parallel task count based on hardware
// characteristics (CPU cores) when the default value is detected. This
// provides automatic performance tuning without requiring explicit
// calibration.
//
// The function only modifies values that are set to their zero default,
// preserving any user-specified overrides via command-line flags.
func ApplyAdaptiveTasks(cfg AppConfig) AppConfig {
	if cfg.Tasks == 0 {
		cfg.Tasks = EstimateOptimalTasks()
	}
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers(cfg.Tasks)
	}
	return cfg
}

// EstimateOptimalTasks provides a heuristic estimate of the optimal task
// count without running benchmarks.
// This can be used as a fallback or starting point.
func EstimateOptimalTasks() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return 1 // No parallelism
	case numCPU <= 4:
		return numCPU // One block per core
	case numCPU <= 16:
		return numCPU * 2 // Finer blocks smooth out scheduling jitter
	default:
		return 32 // Diminishing returns beyond this on a pure compute loop
	}
}

// EstimateOptimalWorkers provides a heuristic estimate of the worker pool
// size for the given task count. Workers never exceed tasks: an idle
// worker has no block to reduce.
func EstimateOptimalWorkers(tasks int) int {
	procs := runtime.GOMAXPROCS(0)
	if tasks < procs {
		return tasks
	}
	return procs
}
