package fixed

import "testing"

func TestQ32_32RoundTrip(t *testing.T) {
	q, ok := NewQ32_32(3.5)
	if !ok {
		t.Fatal("expected representable")
	}
	if got := q.Float64(); got != 3.5 {
		t.Fatalf("got %v, want 3.5", got)
	}
}

func TestQ32_32MulDivApproximatelyInvert(t *testing.T) {
	a, _ := NewQ32_32(2.5)
	b, _ := NewQ32_32(4.0)
	prod := a.Mul(b, RoundNearestEven)
	if got := prod.Float64(); got != 10.0 {
		t.Fatalf("2.5*4.0 = %v, want 10.0", got)
	}
	back := prod.Div(b, RoundNearestEven)
	if got := back.Float64(); got != 2.5 {
		t.Fatalf("10.0/4.0 = %v, want 2.5", got)
	}
}

func TestQ8_24GridAlignment(t *testing.T) {
	q, ok := NewQ8_24(1.0)
	if !ok {
		t.Fatal("expected representable")
	}
	if q.Raw()%(1<<0) != 0 { // trivially true; real check is the grid const
		t.Fatal("unreachable")
	}
	if Q8_24Grid != 1.0/16777216.0 {
		t.Fatalf("grid const wrong: %v", Q8_24Grid)
	}
}

func TestQ0_64Range(t *testing.T) {
	q, ok := NewQ0_64(0.5)
	if !ok {
		t.Fatal("expected representable")
	}
	if got := q.Float64(); got != 0.5 {
		t.Fatalf("got %v, want 0.5", got)
	}
}

func TestOutOfRangeRejected(t *testing.T) {
	// Q8.24 has only 8 integer bits (signed): anything at or above 128 is
	// out of range, and 1<<20 is far beyond that.
	if _, ok := NewQ8_24(1 << 20); ok {
		t.Fatal("expected out-of-range value to be rejected")
	}
}
