// Package harmonic computes partial sums of the harmonic series
//
//	H(n) = 1 + 1/2 + 1/3 + ... + 1/n
//
// in IEEE 754 double precision.
//
// Two interchangeable engines are provided. SequentialSum walks the whole
// range on a single goroutine, summing terms in descending index order so
// that the smallest terms are accumulated first. ParallelSum partitions the
// range into contiguous blocks, reduces each block descending on a bounded
// worker pool, and combines the partial sums through a single lock-free
// accumulator. Both engines honor context cancellation and report progress
// through the observer types in internal/progress.
//
// The engines are wrapped by HarmonicSummer, which adapts the low-level
// callback interface to channel- and observer-based progress reporting, and
// are registered in a SummerFactory under the names "sequential" and
// "parallel".
package harmonic
