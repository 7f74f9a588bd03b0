package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred        = decimal.NewFromInt(100)
	otherChrgRatio = decimal.RequireFromString("0.18")
)

// Round2 rounds a monetary amount to exactly two decimal places.
// Non-finite inputs collapse to zero.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// ParseAmount parses raw user input as a number. Empty or unparsable input,
// and non-finite values, yield zero.
func ParseAmount(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func dec(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// TaxableAmount returns qty × unitPrice × (1 − discount/100), unrounded
func TaxableAmount(qty, unitPrice, discount float64) decimal.Decimal {
	gross := dec(qty).Mul(dec(unitPrice))
	return gross.Sub(gross.Mul(dec(discount)).Div(hundred))
}
