// Package segment implements the normalized-segment codec: packing a
// Hermite cubic's four coefficients and its reciprocal width into a
// 256-bit (four-word) wire record, and unpacking back.
// Each field is stored as a sign (where applicable) plus an implicit-
// leading-1 mantissa and a shift, the same normalization IEEE-754 uses for
// its significand/exponent split.
package segment

import (
	"errors"
	"math"
)

// DenormalShift is the sentinel shift value marking a coefficient that is
// identically zero: its payload carries no implicit leading bit.
const DenormalShift = 62

// ErrNegativeUnsignedCoeff reports that Coeffs[2] or Coeffs[3] (stored
// unsigned on the wire) was negative.
var ErrNegativeUnsignedCoeff = errors.New("segment: unsigned coefficient must be non-negative")

// ErrNonPositiveInvWidth reports that InvWidth was not strictly positive.
var ErrNonPositiveInvWidth = errors.New("segment: inv_width must be positive")

// Normalized is a Hermite cubic segment in the math domain, ready to pack:
// f(t) = ((Coeffs[0]*t + Coeffs[1])*t + Coeffs[2])*t + Coeffs[3] for a
// local parameter t in [0,1), plus the segment's reciprocal width used to
// map x into t. Coeffs[0] and Coeffs[1] may be negative; Coeffs[2] and
// Coeffs[3] must be non-negative (the transfer values this segment
// interpolates are themselves non-negative).
type Normalized struct {
	Coeffs   [4]float64
	InvWidth float64
}

// Packed is the four-word wire record for one NormalizedSegment.
type Packed [4]uint64

// splitResult holds a normalized field's sign, mantissa payload, and
// fractional-bit shift, ready for bit-packing.
type splitResult struct {
	sign    bool
	payload uint64
	shift   int
	zero    bool
}

// split decomposes v into sign/payload/shift with payloadBits of mantissa
// precision (excluding the implicit leading 1). The shift counts fractional
// bits: the stored mantissa m (with its implicit 1 at bit payloadBits)
// satisfies |v| = m * 2^-shift, so a value of magnitude near 1 carries a
// shift near payloadBits and the legitimate shift range [0, 61] never
// touches the DenormalShift sentinel. Magnitudes too small for that range
// (below roughly 2^(payloadBits-62)) are flushed to zero -- their
// contribution is under the evaluator's output quantization step.
func split(v float64, payloadBits uint) splitResult {
	if v == 0 {
		return splitResult{zero: true}
	}
	sign := v < 0
	abs := math.Abs(v)
	e := int(math.Floor(math.Log2(abs)))
	mantissa := abs/math.Exp2(float64(e)) - 1
	scale := float64(uint64(1) << payloadBits)
	payload := uint64(math.Round(mantissa * scale))
	if payload == uint64(1)<<payloadBits {
		// Rounded up to the next power of two: renormalize.
		payload = 0
		e++
	}
	shift := int(payloadBits) - e
	if shift >= DenormalShift {
		return splitResult{zero: true}
	}
	return splitResult{sign: sign, payload: payload, shift: shift}
}

// recombine reconstructs a float64 from a split sign/payload/shift triple.
func recombine(sign bool, payload uint64, shift int, payloadBits uint, isZero bool) float64 {
	if isZero {
		return 0
	}
	m := float64(uint64(1)<<payloadBits | payload)
	v := m * math.Exp2(float64(-shift))
	if sign {
		v = -v
	}
	return v
}

func mask6(shift int) uint64 { return uint64(shift) & 0x3F }

// coeffField packs a coefficient into its 45-bit wire field: bit 44 is the
// sign for a signed coefficient (coeffs[0], coeffs[1]), absent for an
// unsigned one (coeffs[2], coeffs[3]); the low 44 (signed) or 45
// (unsigned) bits are the mantissa payload.
func coeffField(v float64, signed bool) (field uint64, shift int, zero bool) {
	if signed {
		s := split(v, 44)
		field = s.payload & ((1 << 44) - 1)
		if s.sign {
			field |= 1 << 44
		}
		return field, s.shift, s.zero
	}
	s := split(v, 45)
	return s.payload & ((1 << 45) - 1), s.shift, s.zero
}

// unpackCoeffField reconstructs a coefficient from its wire field and raw
// 6-bit shift: the denormal sentinel is checked first, then the shift is
// read as an unsigned fractional-bit count. The normalized mantissa pins
// every encodable value's shift into [0, 61], so there is no negative shift
// to sign-extend into; a raw 63 can only come from corrupted or
// hand-constructed words and decodes as the (tiny) value it nominally names.
func unpackCoeffField(field uint64, signed bool, shiftRaw uint64) float64 {
	if shiftRaw == DenormalShift {
		return 0
	}
	shift := int(shiftRaw & 0x3F)
	if signed {
		sign := field&(1<<44) != 0
		payload := field & ((1 << 44) - 1)
		return recombine(sign, payload, shift, 44, false)
	}
	payload := field & ((1 << 45) - 1)
	return recombine(false, payload, shift, 45, false)
}

// Pack encodes a Normalized segment into its four-word wire record.
func Pack(s Normalized) (Packed, error) {
	if s.Coeffs[2] < 0 || s.Coeffs[3] < 0 {
		return Packed{}, ErrNegativeUnsignedCoeff
	}
	if s.InvWidth <= 0 {
		return Packed{}, ErrNonPositiveInvWidth
	}

	var coeffFields [4]uint64
	var shifts [4]int
	for i := 0; i < 4; i++ {
		field, shift, zero := coeffField(s.Coeffs[i], i < 2)
		coeffFields[i] = field
		if zero {
			shifts[i] = DenormalShift
		} else {
			shifts[i] = shift
		}
	}

	iw := split(s.InvWidth, 46)
	iwPayload := iw.payload & ((1 << 46) - 1)
	iwShift := iw.shift

	// inv_width's payload is scattered low bits first: [0..18] into word 0,
	// [19..37] into word 1, [38..44] into word 2, bit 45 into word 3.
	iwLow19 := iwPayload & 0x7FFFF
	iwMid19 := (iwPayload >> 19) & 0x7FFFF
	iwNext7 := (iwPayload >> 38) & 0x7F
	iwTop1 := (iwPayload >> 45) & 0x1

	var p Packed
	p[0] = coeffFields[0]<<19 | iwLow19
	p[1] = coeffFields[1]<<19 | iwMid19
	p[2] = coeffFields[2]<<19 | iwNext7<<12 | mask6(iwShift)<<6 | mask6(shifts[0])
	p[3] = coeffFields[3]<<19 | iwTop1<<18 | mask6(shifts[3])<<12 | mask6(shifts[2])<<6 | mask6(shifts[1])
	return p, nil
}

// Unpack decodes a four-word wire record back into a Normalized segment.
func Unpack(p Packed) Normalized {
	coeffField0 := p[0] >> 19
	coeffField1 := p[1] >> 19
	coeffField2 := p[2] >> 19
	coeffField3 := p[3] >> 19

	iwLow19 := p[0] & 0x7FFFF
	iwMid19 := p[1] & 0x7FFFF
	word2low19 := p[2] & 0x7FFFF
	iwNext7 := (word2low19 >> 12) & 0x7F
	iwShiftRaw := (word2low19 >> 6) & 0x3F
	shift0Raw := word2low19 & 0x3F

	word3low19 := p[3] & 0x7FFFF
	iwTop1 := (word3low19 >> 18) & 0x1
	shift3Raw := (word3low19 >> 12) & 0x3F
	shift2Raw := (word3low19 >> 6) & 0x3F
	shift1Raw := word3low19 & 0x3F

	iwShift := int(iwShiftRaw & 0x3F)
	iwPayload := iwTop1<<45 | iwNext7<<38 | iwMid19<<19 | iwLow19

	var n Normalized
	n.Coeffs[0] = unpackCoeffField(coeffField0, true, shift0Raw)
	n.Coeffs[1] = unpackCoeffField(coeffField1, true, shift1Raw)
	n.Coeffs[2] = unpackCoeffField(coeffField2, false, shift2Raw)
	n.Coeffs[3] = unpackCoeffField(coeffField3, false, shift3Raw)
	n.InvWidth = recombine(false, iwPayload, iwShift, 46, false)
	return n
}
