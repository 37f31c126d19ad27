package harmonic

import "math"

// Estimate returns the Euler-Maclaurin approximation of H(n):
//
//	H(n) ≈ ln(n) + γ + 1/(2n) - 1/(12n²)
//
// The truncation error is below 1/(120n⁴), so the approximation is
// accurate to better than 1e-9 relative for n >= 1000 and is used to
// sanity-check computed sums and to predict results without running a
// full summation. Estimate(0) returns 0.
func Estimate(n uint64) float64 {
	if n == 0 {
		return 0
	}
	fn := float64(n)
	return math.Log(fn) + EulerMascheroni + 1/(2*fn) - 1/(12*fn*fn)
}
