package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a float64 monetary input into a decimal amount.
// It validates that the input has at most 2 decimal places and returns
// an error if more precision is provided. Uses math.Round after
// multiplying by 100 to handle floating-point representation issues.
func ParseAmount(f float64) (decimal.Decimal, error) {
	// Multiply by 1000 to check for a third decimal place.
	// Round to avoid floating-point artifacts (e.g., 1.10 * 1000 = 1099.9999...).
	scaled := math.Round(f * 1000)
	if math.Mod(scaled, 10) != 0 {
		return decimal.Zero, fmt.Errorf("monetary values must have at most 2 decimal places")
	}

	cents := int64(math.Round(f * 100))
	return decimal.New(cents, -2), nil
}

// AmountToFloat converts a decimal amount to a float64 rounded to 2
// decimal places, for use in JSON responses.
func AmountToFloat(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
