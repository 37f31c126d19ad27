// Package parallel provides small concurrency primitives shared by the
// summation engines: a lock-free float64 accumulator and a first-error
// collector for worker pools.
package parallel
