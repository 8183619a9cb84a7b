// Package jet implements forward-mode automatic differentiation over a
// (value, derivative) pair: a Jet. Arithmetic on Jets propagates derivatives
// via the product and quotient rules; transcendental lifts propagate via
// the chain rule. Curves and transfer functions evaluate against both
// float64 and Jet by exposing twin EvalReal/EvalJet methods rather than a
// generic numeric interface -- Go's generics cannot express "a type
// supporting +, *, exp, tanh" without operator overloading, so a single
// generic Eval[T Num] is not expressible here.
package jet

import "math"

// Jet is a value paired with its derivative with respect to some implicit
// independent variable. A is the value (the name avoids colliding with the
// package name when embedded), V is dA/dx.
type Jet struct {
	A float64
	V float64
}

// Const lifts a constant (zero derivative) into a Jet.
func Const(a float64) Jet { return Jet{A: a} }

// Var lifts the independent variable itself (derivative 1).
func Var(a float64) Jet { return Jet{A: a, V: 1} }

// Add returns j+o.
func (j Jet) Add(o Jet) Jet { return Jet{A: j.A + o.A, V: j.V + o.V} }

// Sub returns j-o.
func (j Jet) Sub(o Jet) Jet { return Jet{A: j.A - o.A, V: j.V - o.V} }

// Neg returns -j.
func (j Jet) Neg() Jet { return Jet{A: -j.A, V: -j.V} }

// Mul returns j*o via the product rule.
func (j Jet) Mul(o Jet) Jet {
	return Jet{A: j.A * o.A, V: j.V*o.A + j.A*o.V}
}

// Div returns j/o via the quotient rule. o.A must be nonzero.
func (j Jet) Div(o Jet) Jet {
	return Jet{A: j.A / o.A, V: (j.V*o.A - j.A*o.V) / (o.A * o.A)}
}

// Scale returns j scaled by a constant factor c (equivalent to
// j.Mul(Const(c)) but avoids a multiply-by-zero on the constant's
// derivative).
func (j Jet) Scale(c float64) Jet { return Jet{A: j.A * c, V: j.V * c} }

// AddConst returns j+c for a plain float64 constant c.
func (j Jet) AddConst(c float64) Jet { return Jet{A: j.A + c, V: j.V} }

// Exp returns e^j via d/dx e^u = e^u * u'.
func (j Jet) Exp() Jet {
	e := math.Exp(j.A)
	return Jet{A: e, V: e * j.V}
}

// Log returns ln(j) via d/dx ln(u) = u'/u. j.A must be positive.
func (j Jet) Log() Jet {
	return Jet{A: math.Log(j.A), V: j.V / j.A}
}

// Pow returns j^p for a constant real exponent p, via
// d/dx u^p = p*u^(p-1)*u'.
func (j Jet) Pow(p float64) Jet {
	return Jet{A: math.Pow(j.A, p), V: p * math.Pow(j.A, p-1) * j.V}
}

// Tanh returns tanh(j) via d/dx tanh(u) = (1-tanh(u)^2)*u'.
func (j Jet) Tanh() Jet {
	th := math.Tanh(j.A)
	return Jet{A: th, V: (1 - th*th) * j.V}
}

// Abs returns |j|. The derivative at exactly zero is defined as zero
// (subgradient convention), matching how the curve family's safe branches
// treat the cusp.
func (j Jet) Abs() Jet {
	switch {
	case j.A > 0:
		return j
	case j.A < 0:
		return j.Neg()
	default:
		return Jet{A: 0, V: 0}
	}
}

// Copysign returns a Jet with the magnitude of j and the sign of sign;
// the derivative's sign follows the same convention (d/dx matches a plain
// sign flip, since copysign is locally linear in j away from j.A == 0).
func (j Jet) Copysign(sign float64) Jet {
	if sign < 0 {
		return Jet{A: -math.Abs(j.A), V: -j.V * signOf(j.A)}
	}
	return Jet{A: math.Abs(j.A), V: j.V * signOf(j.A)}
}

func signOf(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// Sign returns a Jet carrying sign(j.A) as its value with zero derivative
// (sign is locally constant away from the origin).
func Sign(a float64) Jet {
	switch {
	case a > 0:
		return Const(1)
	case a < 0:
		return Const(-1)
	default:
		return Const(0)
	}
}
