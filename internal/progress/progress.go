package progress

// DefaultChunkSize is the number of terms a summation engine accumulates
// between two progress reports. Reporting per term would dominate the cost of
// the additions themselves; a 64Ki stride keeps the overhead unmeasurable
// while still updating smoothly for large N.
const DefaultChunkSize uint64 = 1 << 16

// ProgressUpdate carries one progress notification from a summation engine to
// the aggregation layer. Value is the completed fraction in [0, 1].
type ProgressUpdate struct {
	// SummerIndex identifies which engine produced the update when several
	// run concurrently.
	SummerIndex int
	// Value is the completed fraction of the engine's work, in [0, 1].
	Value float64
}

// ProgressCallback receives the completed fraction of a computation.
// Implementations must be safe for concurrent invocation.
type ProgressCallback func(progress float64)

// ReportRatio invokes the callback with the completed fraction done/total,
// clamped into [0, 1]. A nil callback or zero total is ignored.
func ReportRatio(callback ProgressCallback, done, total uint64) {
	if callback == nil || total == 0 {
		return
	}
	ratio := float64(done) / float64(total)
	if ratio > 1 {
		ratio = 1
	}
	callback(ratio)
}
