package jet

// Jet2 nests a Jet in both slots of a Jet: the value and derivative each
// carry their own derivative, so one evaluation yields f, f', and f''. Seed
// with Var2 and read the second derivative from V.V. Every operator mirrors
// its Jet counterpart with the scalar arithmetic replaced by Jet arithmetic,
// which is what makes the nesting work: the chain and product rules are
// format-agnostic.
type Jet2 struct {
	A Jet
	V Jet
}

// Const2 lifts a constant into a Jet2 (all derivative slots zero).
func Const2(a float64) Jet2 { return Jet2{A: Const(a)} }

// Var2 seeds the independent variable for second-derivative evaluation:
// ((x, 1), (1, 0)).
func Var2(x float64) Jet2 {
	return Jet2{A: Jet{A: x, V: 1}, V: Jet{A: 1, V: 0}}
}

// Second returns f'' for a Jet2 produced from a Var2 seed.
func (j Jet2) Second() float64 { return j.V.V }

// Add returns j+o.
func (j Jet2) Add(o Jet2) Jet2 { return Jet2{A: j.A.Add(o.A), V: j.V.Add(o.V)} }

// Sub returns j-o.
func (j Jet2) Sub(o Jet2) Jet2 { return Jet2{A: j.A.Sub(o.A), V: j.V.Sub(o.V)} }

// Neg returns -j.
func (j Jet2) Neg() Jet2 { return Jet2{A: j.A.Neg(), V: j.V.Neg()} }

// Mul returns j*o via the product rule.
func (j Jet2) Mul(o Jet2) Jet2 {
	return Jet2{A: j.A.Mul(o.A), V: j.V.Mul(o.A).Add(j.A.Mul(o.V))}
}

// Div returns j/o via the quotient rule. o.A.A must be nonzero.
func (j Jet2) Div(o Jet2) Jet2 {
	return Jet2{
		A: j.A.Div(o.A),
		V: j.V.Mul(o.A).Sub(j.A.Mul(o.V)).Div(o.A.Mul(o.A)),
	}
}

// Scale returns j scaled by a constant factor c.
func (j Jet2) Scale(c float64) Jet2 { return Jet2{A: j.A.Scale(c), V: j.V.Scale(c)} }

// AddConst returns j+c for a plain float64 constant c.
func (j Jet2) AddConst(c float64) Jet2 { return Jet2{A: j.A.AddConst(c), V: j.V} }

// Exp returns e^j.
func (j Jet2) Exp() Jet2 {
	e := j.A.Exp()
	return Jet2{A: e, V: e.Mul(j.V)}
}

// Log returns ln(j). j.A.A must be positive.
func (j Jet2) Log() Jet2 {
	return Jet2{A: j.A.Log(), V: j.V.Div(j.A)}
}

// Pow returns j^p for a constant real exponent p.
func (j Jet2) Pow(p float64) Jet2 {
	return Jet2{A: j.A.Pow(p), V: j.A.Pow(p - 1).Scale(p).Mul(j.V)}
}

// Tanh returns tanh(j).
func (j Jet2) Tanh() Jet2 {
	th := j.A.Tanh()
	return Jet2{A: th, V: Const(1).Sub(th.Mul(th)).Mul(j.V)}
}

// Abs returns |j|, with the derivative at exactly zero defined as zero.
func (j Jet2) Abs() Jet2 {
	switch {
	case j.A.A > 0:
		return j
	case j.A.A < 0:
		return j.Neg()
	default:
		return Jet2{}
	}
}
