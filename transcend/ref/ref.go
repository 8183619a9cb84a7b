// Package ref holds the float64 reference implementations that package
// transcend's fixed-point kernels are checked against, plus the ULP sweep
// harness used by transcend's tests.
package ref

import "math"

// Log2 is the float64 reference for transcend.Log2Q.
func Log2(x float64) float64 { return math.Log2(x) }

// Exp2 is the float64 reference for transcend.Exp2Q.
func Exp2(x float64) float64 { return math.Exp2(x) }

// Exp2NegM1 is the float64 reference for transcend.Exp2NegM1Q1_63:
// 2^-x - 1 computed directly rather than via subtraction from 1, to avoid
// the cancellation the fixed-point kernel itself is designed to avoid.
func Exp2NegM1(x float64) float64 { return math.Expm1(-x * math.Ln2) }

// Isqrt is the float64 reference for transcend.IsqrtQ: the reciprocal
// square root 1/sqrt(x).
func Isqrt(x float64) float64 { return 1 / math.Sqrt(x) }

// Sweep evaluates fn against its float64 reference across n evenly spaced
// samples spanning [lo, hi], both endpoints included, returning the maximum
// observed absolute and relative error.
func Sweep(n int, lo, hi float64, fn, reference func(float64) float64) (maxAbs, maxRel float64) {
	if n < 2 {
		n = 2
	}
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		x := lo + step*float64(i)
		got := fn(x)
		want := reference(x)
		abs := math.Abs(got - want)
		if abs > maxAbs {
			maxAbs = abs
		}
		if math.Abs(want) > 1e-12 {
			if rel := abs / math.Abs(want); rel > maxRel {
				maxRel = rel
			}
		}
	}
	return maxAbs, maxRel
}
