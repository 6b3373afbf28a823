package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

// Property: any cent-precision amount survives the float64 → decimal
// conversion at the API boundary exactly.

func TestProperty_ParseAmountRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// Generate a cent value in a reasonable monetary range.
		// This ensures the float64 representation has at most 2 decimal places.
		cents := rapid.Int64Range(0, 99_999_999_99).Draw(t, "cents")

		want := decimal.New(cents, -2)
		got, err := ParseAmount(want.InexactFloat64())
		if err != nil {
			t.Fatalf("ParseAmount(%v) returned error for value derived from %d cents: %v",
				want.InexactFloat64(), cents, err)
		}
		if !got.Equal(want) {
			t.Fatalf("round-trip failed: cents=%d → float=%v → decimal=%s", cents, want.InexactFloat64(), got)
		}
	})
}

func TestProperty_ParseAmountRejectsExcessPrecision(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// Build a value with a meaningful third decimal place:
		// whole.XY_Z where Z ∈ [1..9] is the offending digit.
		whole := rapid.Int64Range(0, 999_999).Draw(t, "whole")
		d1 := rapid.Int64Range(0, 9).Draw(t, "d1")
		d2 := rapid.Int64Range(0, 9).Draw(t, "d2")
		d3 := rapid.Int64Range(1, 9).Draw(t, "d3") // must be non-zero

		mills := whole*1000 + d1*100 + d2*10 + d3
		f := decimal.New(mills, -3).InexactFloat64()

		if _, err := ParseAmount(f); err == nil {
			t.Fatalf("ParseAmount(%v) accepted a value with 3 decimal places", f)
		}
	})
}
