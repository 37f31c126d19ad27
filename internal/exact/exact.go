// Package exact computes harmonic partial sums in exact rational
// arithmetic. It serves as the oracle the floating-point engines are
// validated against: where the engines round on every addition, this
// package carries H(n) as an integer numerator and denominator and rounds
// exactly once, on output.
//
// The heavy arithmetic runs on GMP integers. The denominators grow like
// lcm(1..n), so a naive term-by-term fold spends most of its time
// multiplying huge integers; Harmonic instead uses binary splitting, which
// keeps the operands balanced and the total cost quasi-linear.
package exact

import (
	"fmt"
	"math/big"

	"github.com/ncw/gmp"

	apperrors "github.com/agbru/harmcalc/internal/errors"
)

// MaxOracleN is the largest n the oracle accepts. Beyond this the reduced
// numerator and denominator run to hundreds of thousands of digits and the
// oracle stops being a fast test-time tool.
const MaxOracleN = 100_000

// Rational is an exact harmonic partial sum in lowest terms.
type Rational struct {
	num *gmp.Int
	den *gmp.Int
}

// Harmonic returns H(n) = 1 + 1/2 + ... + 1/n as an exact rational.
//
// Returns a ValidationError when n is 0 or exceeds MaxOracleN.
func Harmonic(n uint64) (*Rational, error) {
	if n < 1 {
		return nil, apperrors.ValidationError{Field: "n", Message: "must be at least 1"}
	}
	if n > MaxOracleN {
		return nil, apperrors.ValidationError{
			Field:   "n",
			Message: fmt.Sprintf("exact oracle supports n up to %d", MaxOracleN),
		}
	}

	num, den := splitSum(1, n)

	// Reduce once at the end; GMP's gcd is far cheaper than carrying
	// reduced fractions through every combine.
	gcd := new(gmp.Int).GCD(nil, nil, num, den)
	num.Quo(num, gcd)
	den.Quo(den, gcd)

	return &Rational{num: num, den: den}, nil
}

// splitSum returns the unreduced numerator and denominator of the partial
// sum over the inclusive index range [a, b] by recursive halving:
//
//	n1/d1 + n2/d2 = (n1*d2 + n2*d1) / (d1*d2)
func splitSum(a, b uint64) (*gmp.Int, *gmp.Int) {
	if a == b {
		return gmp.NewInt(1), gmp.NewInt(int64(a))
	}

	mid := a + (b-a)/2
	n1, d1 := splitSum(a, mid)
	n2, d2 := splitSum(mid+1, b)

	left := new(gmp.Int).Mul(n1, d2)
	right := new(gmp.Int).Mul(n2, d1)
	return left.Add(left, right), d1.Mul(d1, d2)
}

// rat converts the GMP representation into a math/big rational for
// rounding and formatting. Both components are positive by construction.
func (r *Rational) rat() *big.Rat {
	num := new(big.Int).SetBytes(r.num.Bytes())
	den := new(big.Int).SetBytes(r.den.Bytes())
	return new(big.Rat).SetFrac(num, den)
}

// Float64 returns the correctly rounded double-precision value of the sum.
func (r *Rational) Float64() float64 {
	f, _ := r.rat().Float64()
	return f
}

// RatString returns the sum as "numerator/denominator" in lowest terms,
// or a bare integer when the denominator is 1.
func (r *Rational) RatString() string {
	return r.rat().RatString()
}

// FloatString returns the sum in decimal notation with exactly decimals
// digits after the point, correctly rounded.
func (r *Rational) FloatString(decimals int) string {
	return r.rat().FloatString(decimals)
}

// String implements fmt.Stringer using the lowest-terms fraction form.
func (r *Rational) String() string {
	return r.RatString()
}
