package harmonic

// ─────────────────────────────────────────────────────────────────────────────
// Summation Tuning Constants
// ─────────────────────────────────────────────────────────────────────────────
//
// These constants control the default behavior of the summation engines and
// are based on empirical benchmarks across various hardware configurations.

const (
	// DefaultTasks is the default number of contiguous blocks the parallel
	// engine splits the summation range into. Four blocks keep every core of
	// a small machine busy while the per-block bookkeeping stays negligible.
	//
	// Machines with more cores get a larger default through the adaptive
	// task ladder in internal/calibration.
	DefaultTasks = 4

	// DefaultTolerance is the relative tolerance used when cross-validating
	// the parallel engine against the sequential reference.
	//
	// Floating-point addition is not associative, so the two engines may
	// legitimately differ in the last few bits. A relative tolerance of 1e-9
	// leaves roughly seven orders of magnitude of headroom above the noise
	// floor of double precision while still catching any real defect in the
	// partitioning or combining logic.
	DefaultTolerance = 1e-9

	// CalibrationN is the standard summation length used for performance
	// calibration runs. This value provides a good balance between:
	//   - Being large enough to measure meaningful performance differences
	//   - Being small enough to complete calibration in reasonable time
	//
	// H(10,000,000) takes tens of milliseconds per engine on modern CPUs.
	CalibrationN = 10_000_000
)

// ─────────────────────────────────────────────────────────────────────────────
// Mathematical Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// EulerMascheroni is the Euler-Mascheroni constant γ, the limit of
	// H(n) - ln(n) as n tends to infinity, to full float64 precision.
	EulerMascheroni = 0.5772156649015328606065120900824024310421593359399235988
)
