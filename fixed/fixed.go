// Package fixed implements the Qm.n fixed-point substrate the rest of the
// pipeline is built on: construction to/from float64 (round-to-nearest-even,
// with a representability check), and rounding-mode-correct multiply and
// divide backed by package wide's 128-bit intermediates.
//
// Go has no compile-time integer type parameters, so there is no single
// generic FixedPoint[W,N] type. Each concrete Q-format used by this module
// is instead its own named type over a shared float-conversion core.
package fixed

import (
	"math"

	"github.com/inputaccel/curves/wide"
)

// RoundMode re-exports wide.RoundMode so callers need not import wide
// directly just to pick a rounding mode for a fixed-point multiply/divide.
type RoundMode = wide.RoundMode

const (
	RoundTruncate     = wide.RoundTruncate
	RoundNearestEven  = wide.RoundNearestEven
	RoundAwayFromZero = wide.RoundAwayFromZero
)

// fromFloatSigned rounds x*2^fracBits to the nearest even integer and
// reports whether it is representable in a signed Qm.fracBits value whose
// total width is totalBits (m = totalBits-fracBits integer bits). The
// representable range is [-2^(totalBits-1-fracBits), 2^(totalBits-1-fracBits)):
// the negative bound is exact, and +2^(totalBits-1-fracBits) itself, one
// ULP above the largest raw value, is out of range.
// totalBits may be less than 64; the raw value is still returned widened
// to int64.
func fromFloatSigned(x float64, fracBits, totalBits uint) (int64, bool) {
	scaled := x * math.Exp2(float64(fracBits))
	rounded := math.RoundToEven(scaled)
	if math.IsNaN(rounded) {
		return 0, false
	}
	limit := math.Exp2(float64(totalBits - 1))
	if rounded < -limit || rounded >= limit {
		return 0, false
	}
	return int64(rounded), true
}

func toFloatSigned(raw int64, fracBits uint) float64 {
	return float64(raw) / math.Exp2(float64(fracBits))
}

// fromFloatUnsigned mirrors fromFloatSigned for an unsigned Qm.fracBits
// value of total width totalBits (m = totalBits-fracBits).
func fromFloatUnsigned(x float64, fracBits, totalBits uint) (uint64, bool) {
	scaled := x * math.Exp2(float64(fracBits))
	rounded := math.RoundToEven(scaled)
	limit := math.Exp2(float64(totalBits))
	if math.IsNaN(rounded) || rounded < 0 || rounded >= limit {
		return 0, false
	}
	return uint64(rounded), true
}

func toFloatUnsigned(raw uint64, fracBits uint) float64 {
	return float64(raw) / math.Exp2(float64(fracBits))
}

// mulSigned computes the rounded product of two signed fracBits-format raw
// values via a widened 128-bit intermediate.
func mulSigned(a, b int64, fracBits uint, mode RoundMode) int64 {
	neg := false
	ua, ub := uint64(a), uint64(b)
	if a < 0 {
		neg = !neg
		ua = uint64(-a)
	}
	if b < 0 {
		neg = !neg
		ub = uint64(-b)
	}
	prod := wide.Mul64(ua, ub).ShrRounded(fracBits, mode)
	r := int64(prod.Lo)
	if neg {
		r = -r
	}
	return r
}

// divSigned computes a rounded quotient a/b in fracBits-format raw values,
// via (a<<fracBits)/b using a widened 128-bit numerator.
func divSigned(a, b int64, fracBits uint, mode RoundMode) int64 {
	neg := false
	ua, ub := uint64(a), uint64(b)
	if a < 0 {
		neg = !neg
		ua = uint64(-a)
	}
	if b < 0 {
		neg = !neg
		ub = uint64(-b)
	}
	numerator := wide.Uint128{Lo: ua}.Lsh(fracBits)
	q, r, err := wide.DivU128U64(numerator, ub)
	if err != nil {
		// Quotient does not fit in 64 bits: saturate to the largest
		// int64 magnitude.
		q = math.MaxInt64
	} else {
		switch mode {
		case RoundAwayFromZero:
			if r >= ub-r {
				q++
			}
		case RoundNearestEven:
			if r > ub-r || (r == ub-r && q&1 != 0) {
				q++
			}
		}
	}
	res := int64(q)
	if neg {
		res = -res
	}
	return res
}

// mulUnsigned and divUnsigned mirror mulSigned/divSigned for unsigned
// fracBits-format raw values (used by Q0_64, which has no sign bit).
func mulUnsigned(a, b uint64, fracBits uint, mode RoundMode) uint64 {
	return wide.Mul64(a, b).ShrRounded(fracBits, mode).Lo
}

func divUnsigned(a, b uint64, fracBits uint, mode RoundMode) uint64 {
	numerator := wide.Uint128{Lo: a}.Lsh(fracBits)
	q, r, err := wide.DivU128U64(numerator, b)
	if err != nil {
		return math.MaxUint64
	}
	switch mode {
	case RoundAwayFromZero:
		if r >= b-r {
			q++
		}
	case RoundNearestEven:
		if r > b-r || (r == b-r && q&1 != 0) {
			q++
		}
	}
	return q
}
