package fixed

// Q32_32 is a signed value with 32 integer and 32 fractional bits: the wire
// header's v_to_x domain-rescale factor and x_end_max bound.
type Q32_32 int64

const q32_32Frac = 32

// NewQ32_32 converts x to Q32.32, reporting whether it was representable.
func NewQ32_32(x float64) (Q32_32, bool) {
	raw, ok := fromFloatSigned(x, q32_32Frac, 64)
	return Q32_32(raw), ok
}

// Float64 converts back to a float64.
func (q Q32_32) Float64() float64 { return toFloatSigned(int64(q), q32_32Frac) }

// Raw returns the underlying two's-complement integer.
func (q Q32_32) Raw() int64 { return int64(q) }

// Add returns q+o (no rescale needed: same format).
func (q Q32_32) Add(o Q32_32) Q32_32 { return q + o }

// Sub returns q-o.
func (q Q32_32) Sub(o Q32_32) Q32_32 { return q - o }

// Mul returns q*o rounded per mode.
func (q Q32_32) Mul(o Q32_32, mode RoundMode) Q32_32 {
	return Q32_32(mulSigned(int64(q), int64(o), q32_32Frac, mode))
}

// Div returns q/o rounded per mode.
func (q Q32_32) Div(o Q32_32, mode RoundMode) Q32_32 {
	return Q32_32(divSigned(int64(q), int64(o), q32_32Frac, mode))
}

// Q8_24 is a signed value with 8 integer and 24 fractional bits: knot
// positions on the spline's quantized abscissa grid.
type Q8_24 int64

const q8_24Frac = 24

// Q8_24Grid is the quantization step of the knot-position grid: 2^-24.
const Q8_24Grid = 1.0 / (1 << 24)

func NewQ8_24(x float64) (Q8_24, bool) {
	raw, ok := fromFloatSigned(x, q8_24Frac, 32)
	return Q8_24(raw), ok
}

func (q Q8_24) Float64() float64 { return toFloatSigned(int64(q), q8_24Frac) }
func (q Q8_24) Raw() int64       { return int64(q) }
func (q Q8_24) Add(o Q8_24) Q8_24 { return q + o }
func (q Q8_24) Sub(o Q8_24) Q8_24 { return q - o }

// Q0_64 is an unsigned value in [0,1) with 64 fractional bits: the
// speed-filter halflife mapping's input domain.
type Q0_64 uint64

const q0_64Frac = 64

func NewQ0_64(x float64) (Q0_64, bool) {
	raw, ok := fromFloatUnsigned(x, q0_64Frac, 64)
	return Q0_64(raw), ok
}

func (q Q0_64) Float64() float64 { return toFloatUnsigned(uint64(q), q0_64Frac) }
func (q Q0_64) Raw() uint64      { return uint64(q) }

// Q1_63 is a signed value in [-1,1) with 63 fractional bits: the output
// format of the exp2(-x)-1 halflife kernel.
type Q1_63 int64

const q1_63Frac = 63

func NewQ1_63(x float64) (Q1_63, bool) {
	raw, ok := fromFloatSigned(x, q1_63Frac, 64)
	return Q1_63(raw), ok
}

func (q Q1_63) Float64() float64 { return toFloatSigned(int64(q), q1_63Frac) }
func (q Q1_63) Raw() int64       { return int64(q) }

// Q16_16 is a signed value with 16 integer and 16 fractional bits: the
// evaluator's default output Q-format for the transfer value T(x).
type Q16_16 int64

const q16_16Frac = 16

func NewQ16_16(x float64) (Q16_16, bool) {
	raw, ok := fromFloatSigned(x, q16_16Frac, 32)
	return Q16_16(raw), ok
}

func (q Q16_16) Float64() float64 { return toFloatSigned(int64(q), q16_16Frac) }
func (q Q16_16) Raw() int64       { return int64(q) }
