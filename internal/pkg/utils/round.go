package utils

import "github.com/shopspring/decimal"

// Ratio returns numerator/denominator rounded to two decimals, or 0 when the
// denominator is zero.
func Ratio(numerator, denominator int64) float64 {
	if denominator == 0 {
		return 0
	}
	return decimal.NewFromInt(numerator).
		Div(decimal.NewFromInt(denominator)).
		Round(2).
		InexactFloat64()
}

// Percentage returns part/total*100 rounded to two decimals, or 0 when total
// is zero.
func Percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(2).
		InexactFloat64()
}

// Sum2 adds the values exactly and rounds the total to two decimals.
func Sum2(values []float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(2).InexactFloat64()
}
