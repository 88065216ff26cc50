package utils

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RoundMoney rounds a monetary amount to 2 decimal places using decimal
// arithmetic, so fee math doesn't accumulate float noise.
func RoundMoney(amount float64) float64 {
	v, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return v
}

// CalculateFee applies a percentage fee rate to an amount, rounded to cents.
func CalculateFee(amount, rate float64) float64 {
	fee := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate))
	v, _ := fee.Round(2).Float64()
	return v
}

// GenerateReferenceNumber builds a unique transaction reference, e.g.
// INV-9F8B21C4D0A34E7B. Uniqueness is backed by the unique index on the
// transactions table.
func GenerateReferenceNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "INV-" + id[:16]
}
