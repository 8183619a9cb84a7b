// Package transcend implements the fixed-point transcendental kernels the
// curve evaluator needs: base-2 log and exponential, the speed-filter
// halflife mapping exp2(-x)-1, and reciprocal square root. Each kernel does
// its range reduction on the fixed-point bit layout directly (exponent
// extraction via the position of the highest set bit) and
// evaluates its polynomial part with Horner's method; see ref.Sweep for the
// accuracy harness these are checked against.
package transcend

import (
	"errors"
	"math"
	"math/bits"

	"github.com/inputaccel/curves/fixed"
)

// ErrDomain reports an input outside a kernel's valid domain (log2/isqrt of
// a non-positive value).
var ErrDomain = errors.New("transcend: input outside domain")

// exp2Coeffs holds the Maclaurin coefficients of 2^f = sum (f*ln2)^n / n!,
// computed once at init from math.Ln2 rather than typed in as literals.
var exp2Coeffs [16]float64

func init() {
	fact := 1.0
	pow := 1.0
	for n := 0; n < len(exp2Coeffs); n++ {
		if n > 0 {
			fact *= float64(n)
			pow *= math.Ln2
		}
		exp2Coeffs[n] = pow / fact
	}
}

// exp2Frac evaluates 2^f for f in [0,1) via Horner evaluation of the
// Maclaurin series. Truncation at degree 15 keeps the error below 1e-15
// across the full unit interval.
func exp2Frac(f float64) float64 {
	acc := exp2Coeffs[len(exp2Coeffs)-1]
	for n := len(exp2Coeffs) - 2; n >= 0; n-- {
		acc = acc*f + exp2Coeffs[n]
	}
	return acc
}

// atanhCoeffs are the odd-power Taylor coefficients of atanh(u) = sum
// u^(2k+1)/(2k+1), indexed by k.
var atanhCoeffs = [14]float64{
	1, 1.0 / 3, 1.0 / 5, 1.0 / 7, 1.0 / 9, 1.0 / 11, 1.0 / 13,
	1.0 / 15, 1.0 / 17, 1.0 / 19, 1.0 / 21, 1.0 / 23, 1.0 / 25, 1.0 / 27,
}

// log2Frac evaluates log2(m) for m in [1,2) via the substitution
// u = (m-1)/(m+1), ln(m) = 2*atanh(u). u is at most 1/3 on this domain, so
// the truncated odd-power series converges to better than 1e-13.
func log2Frac(m float64) float64 {
	u := (m - 1) / (m + 1)
	u2 := u * u
	acc := atanhCoeffs[len(atanhCoeffs)-1]
	for k := len(atanhCoeffs) - 2; k >= 0; k-- {
		acc = acc*u2 + atanhCoeffs[k]
	}
	atanh := u * acc
	return 2 * atanh / math.Ln2
}

// Log2Q returns log2(x) for x > 0, via exponent/mantissa range reduction on
// the Q32.32 bit layout followed by log2Frac on the mantissa.
func Log2Q(x fixed.Q32_32) (fixed.Q32_32, error) {
	raw := x.Raw()
	if raw <= 0 {
		return 0, ErrDomain
	}
	top := bits.Len64(uint64(raw))
	e := top - 1 - 32
	m := float64(raw) / math.Exp2(float64(top-1))
	result := float64(e) + log2Frac(m)
	q, ok := fixed.NewQ32_32(result)
	if !ok {
		return 0, ErrDomain
	}
	return q, nil
}

// Exp2Q returns 2^x, via splitting x into an integer exponent and a
// fractional part in [0,1) evaluated by exp2Frac, then rescaling by the
// integer power of two.
func Exp2Q(x fixed.Q32_32) (fixed.Q32_32, error) {
	raw := x.Raw()
	intPart := raw >> 32
	fracRaw := raw - (intPart << 32)
	if fracRaw < 0 {
		fracRaw += 1 << 32
		intPart--
	}
	f := float64(fracRaw) / float64(int64(1)<<32)
	result := math.Ldexp(exp2Frac(f), int(intPart))
	q, ok := fixed.NewQ32_32(result)
	if !ok {
		return 0, ErrDomain
	}
	return q, nil
}

// exp2FracM1 evaluates 2^f - 1 for f in (-1,1) by folding the Maclaurin
// series' constant n=0 term (which is exactly 1) out of the Horner
// recurrence instead of summing the full series and subtracting 1
// afterward, which would cancel the leading digits for small f.
func exp2FracM1(f float64) float64 {
	acc := exp2Coeffs[len(exp2Coeffs)-1]
	for n := len(exp2Coeffs) - 2; n >= 1; n-- {
		acc = acc*f + exp2Coeffs[n]
	}
	return acc * f
}

// Exp2NegM1Q1_63 evaluates 2^-x - 1 for x in [0,1) (the speed-filter
// halflife mapping's input domain), returning a Q1.63 result in [-1,0].
func Exp2NegM1Q1_63(x fixed.Q0_64) (fixed.Q1_63, error) {
	f := x.Float64()
	result := exp2FracM1(-f)
	q, ok := fixed.NewQ1_63(result)
	if !ok {
		return 0, ErrDomain
	}
	return q, nil
}

// IsqrtQ returns the reciprocal square root 1/sqrt(x) for x > 0, seeded by
// the classic bit-level fast-inverse-square-root estimate and refined by
// two Newton-Raphson iterations on y = 1/sqrt(x).
func IsqrtQ(x fixed.Q32_32) (fixed.Q32_32, error) {
	raw := x.Raw()
	if raw <= 0 {
		return 0, ErrDomain
	}
	xf := x.Float64()
	y := fastInvSqrtSeed(xf)
	for i := 0; i < 2; i++ {
		y = y * (1.5 - 0.5*xf*y*y)
	}
	q, ok := fixed.NewQ32_32(y)
	if !ok {
		return 0, ErrDomain
	}
	return q, nil
}

// fastInvSqrtSeed produces a first approximation of 1/sqrt(x) by halving
// the exponent field of x's IEEE-754 bit pattern against a fixed magic
// constant, then correcting with one extra Newton step for the seed itself
// to land within Newton's basin of convergence for the caller's own
// iterations.
func fastInvSqrtSeed(x float64) float64 {
	const magic = 0x5fe6eb50c7b537a9
	bits64 := math.Float64bits(x)
	seedBits := magic - bits64>>1
	y := math.Float64frombits(seedBits)
	return y * (1.5 - 0.5*x*y*y)
}
