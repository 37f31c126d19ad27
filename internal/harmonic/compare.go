package harmonic

import "math"

// RelativeDelta returns |a-b| scaled by the larger magnitude of the two
// values. Two identical values (including two zeros) have delta zero.
func RelativeDelta(a, b float64) float64 {
	if a == b {
		return 0
	}
	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return 0
	}
	return math.Abs(a-b) / largest
}

// WithinTolerance reports whether a and b agree within the given relative
// tolerance. Floating-point summation is order-sensitive, so results from
// different engines are never compared for bit equality; this predicate is
// the agreement check used throughout the package.
//
// NaN never agrees with anything, including itself.
func WithinTolerance(a, b, tolerance float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return RelativeDelta(a, b) <= tolerance
}
