// Package numeric implements the core's two numerical primitives: Gauss-5
// quadrature (hard-coded nodes and weights, per the gain-interpretation
// transfer function's requirements) and bisection-based inversion of a
// monotonic transition function.
package numeric

// gauss5Nodes and gauss5Weights are the classical five-point
// Gauss-Legendre quadrature rule on the reference interval [-1, 1].
var (
	gauss5Nodes = [5]float64{
		-0.9061798459386640,
		-0.5384693101056831,
		0.0,
		0.5384693101056831,
		0.9061798459386640,
	}
	gauss5Weights = [5]float64{
		0.2369268850561891,
		0.4786286704993665,
		0.5688888888888889,
		0.4786286704993665,
		0.2369268850561891,
	}
)

// Gauss5 integrates f over [a, b] using the fixed five-node Gauss-Legendre
// rule, exact for polynomials up to degree 9.
func Gauss5(f func(float64) float64, a, b float64) float64 {
	half := (b - a) / 2
	mid := (a + b) / 2
	sum := 0.0
	for i := 0; i < 5; i++ {
		x := mid + half*gauss5Nodes[i]
		sum += gauss5Weights[i] * f(x)
	}
	return sum * half
}

// InvertByPartition inverts a monotonic non-decreasing function p on
// [0, 1] at target value y, via bisection to the given tolerance. If
// p(1)-p(0) is zero (a degenerate, zero-height transition), it returns the
// interval endpoint corresponding to y rather than looping indefinitely.
func InvertByPartition(p func(float64) float64, y, tol float64) float64 {
	lo, hi := 0.0, 1.0
	pLo, pHi := p(lo), p(hi)
	height := pHi - pLo
	if height == 0 {
		if y <= pLo {
			return lo
		}
		return hi
	}
	for hi-lo > tol {
		mid := (lo + hi) / 2
		if p(mid) < y {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
