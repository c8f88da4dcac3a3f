// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/rent-or-buy/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Clamp limits val to the closed interval [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}

// MonthlyRate converts an annual rate fraction into its monthly equivalent
// using simple division, the convention of mortgage and savings quotes.
func MonthlyRate(annualRate float64) float64 {
	return annualRate / constants.MonthsPerYear
}

// ToPercent renders a rate fraction as a percentage value, e.g. 0.035 -> 3.5.
func ToPercent(rate float64) float64 {
	return rate * constants.PercentageMultiplier
}
