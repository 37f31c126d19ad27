package main

import (
	"math"
	"math/big"
	"strconv"
	"testing"
)

// TestHarmonicRat tests the oracle harmonic function with known fractions.
func TestHarmonicRat(t *testing.T) {
	tests := []struct {
		name     string
		n        uint64
		expected string
	}{
		{"H(1) base case", 1, "1"},
		{"H(2) first fraction", 2, "3/2"},
		{"H(3)", 3, "11/6"},
		{"H(4)", 4, "25/12"},
		{"H(5)", 5, "137/60"},
		{"H(6)", 6, "49/20"},
		{"H(7)", 7, "363/140"},
		{"H(8)", 8, "761/280"},
		{"H(9)", 9, "7129/2520"},
		{"H(10)", 10, "7381/2520"},
		{"H(11)", 11, "83711/27720"},
		{"H(12)", 12, "86021/27720"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := harmonicRat(tt.n)
			if result.RatString() != tt.expected {
				t.Errorf("harmonicRat(%d) = %s, want %s", tt.n, result.RatString(), tt.expected)
			}
		})
	}

	t.Run("H(10) rounds to the known float64", func(t *testing.T) {
		f, _ := harmonicRat(10).Float64()
		got := strconv.FormatFloat(f, 'g', -1, 64)
		if got != "2.9289682539682538" {
			t.Errorf("harmonicRat(10) as float64 = %s, want 2.9289682539682538", got)
		}
	})
}

// TestHarmonicRat_Properties tests mathematical properties of the partial sums.
func TestHarmonicRat_Properties(t *testing.T) {
	t.Run("H(n+1) - H(n) = 1/(n+1)", func(t *testing.T) {
		for n := uint64(1); n < 50; n++ {
			hn := harmonicRat(n)
			hn1 := harmonicRat(n + 1)

			diff := new(big.Rat).Sub(hn1, hn)
			want := big.NewRat(1, int64(n+1))
			if diff.Cmp(want) != 0 {
				t.Errorf("H(%d) - H(%d) = %s, want %s",
					n+1, n, diff.RatString(), want.RatString())
			}
		}
	})

	t.Run("H(n) is strictly increasing for n >= 1", func(t *testing.T) {
		prev := harmonicRat(1)
		for n := uint64(2); n <= 100; n++ {
			curr := harmonicRat(n)
			if curr.Cmp(prev) <= 0 {
				t.Errorf("H(%d) = %s <= H(%d) = %s, should be increasing",
					n, curr.RatString(), n-1, prev.RatString())
			}
			prev = curr
		}
	})
}

// TestHarmonicRat_LargeValues tests larger partial sums.
func TestHarmonicRat_LargeValues(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large value tests in short mode")
	}

	t.Run("dyadic bounds 1+k/2 <= H(2^k) <= 1+k", func(t *testing.T) {
		for k := int64(1); k <= 12; k++ {
			h := harmonicRat(uint64(1) << uint64(k))
			lower := big.NewRat(2+k, 2)
			upper := big.NewRat(1+k, 1)
			if h.Cmp(lower) < 0 {
				t.Errorf("H(2^%d) = %s below lower bound %s", k, h.RatString(), lower.RatString())
			}
			if h.Cmp(upper) > 0 {
				t.Errorf("H(2^%d) = %s above upper bound %s", k, h.RatString(), upper.RatString())
			}
		}
	})

	t.Run("H(1000)", func(t *testing.T) {
		f, _ := harmonicRat(1000).Float64()
		if math.Abs(f-7.48547086055034) > 1e-12 {
			t.Errorf("harmonicRat(1000) as float64 = %.17g, want about 7.48547086055034", f)
		}
	})
}
