// Package pricing holds the arithmetic shared by every service calculator:
// frequency resolution, minimum floors, block area pricing, installation fees,
// period totals and rate tiers. Everything here is pure.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Sanitize coerces negative, NaN and infinite values to zero.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// RoundMoney rounds to cents, half away from zero.
func RoundMoney(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Money renders v with two fixed decimals.
func Money(v float64) string {
	if !finite(v) {
		v = 0
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}
