// Command generate-golden prints reference values of the harmonic partial
// sum H(n) computed with exact rational arithmetic from math/big. It shares
// no code with the float64 engines or the gmp-backed oracle, so its output
// can be pasted into tests as independent golden data.
//
// Usage:
//
//	generate-golden [-decimals D] [n ...]
//
// Without arguments a default ladder of anchor points is printed.
package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"
	"strconv"
)

var defaultAnchors = []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 100, 1000, 10000, 100000}

func main() {
	decimals := flag.Int("decimals", 30, "decimal digits in the expansion column")
	flag.Parse()

	anchors := defaultAnchors
	if flag.NArg() > 0 {
		anchors = make([]uint64, 0, flag.NArg())
		for _, arg := range flag.Args() {
			n, err := strconv.ParseUint(arg, 10, 64)
			if err != nil || n < 1 {
				fmt.Fprintf(os.Stderr, "invalid n %q: need a positive integer\n", arg)
				os.Exit(1)
			}
			anchors = append(anchors, n)
		}
	}

	for _, n := range anchors {
		h := harmonicRat(n)
		f, _ := h.Float64()
		fmt.Printf("H(%d)\tfloat64=%s\trational=%s\tdecimal=%s\n",
			n, strconv.FormatFloat(f, 'g', -1, 64), h.RatString(), h.FloatString(*decimals))
	}
}

// harmonicRat sums 1 + 1/2 + ... + 1/n exactly. The running numerator and
// denominator grow roughly linearly in digit count, so the loop is
// quadratic overall; fine for the anchor ranges this tool covers.
func harmonicRat(n uint64) *big.Rat {
	sum := new(big.Rat)
	term := new(big.Rat)
	for i := uint64(1); i <= n; i++ {
		term.SetFrac64(1, int64(i))
		sum.Add(sum, term)
	}
	return sum
}
