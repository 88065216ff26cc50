package models

import (
	"encoding/json"
	"math"
)

const (
	FundTypeGold        = "gold"
	FundTypeFixedIncome = "fixed_income"
	FundTypeEquity      = "equity"
)

// AllocationTolerance is how far a custom allocation may drift from 100%.
const AllocationTolerance = 0.1

// Allocation is a percentage split across the three fund classes. The set of
// classes is closed, so a malformed class can't sneak in through a payload.
type Allocation struct {
	Gold        float64 `json:"gold" db:"gold"`
	FixedIncome float64 `json:"fixed_income" db:"fixed_income"`
	Equity      float64 `json:"equity" db:"equity"`
}

func (a Allocation) Sum() float64 {
	return a.Gold + a.FixedIncome + a.Equity
}

// IsComplete reports whether the three percentages sum to 100 within the
// tolerance. Zero allocations (a portfolio with no holdings yet) are not
// complete and must not be validated with this.
func (a Allocation) IsComplete() bool {
	return math.Abs(a.Sum()-100) <= AllocationTolerance
}

// ByType returns the percentage assigned to the given fund type.
func (a Allocation) ByType(fundType string) float64 {
	switch fundType {
	case FundTypeGold:
		return a.Gold
	case FundTypeFixedIncome:
		return a.FixedIncome
	case FundTypeEquity:
		return a.Equity
	}
	return 0
}

// Value serializes the allocation for a jsonb column.
func (a Allocation) Value() ([]byte, error) {
	return json.Marshal(a)
}

// ScanAllocation deserializes a jsonb column into an Allocation.
func ScanAllocation(data []byte) (Allocation, error) {
	var a Allocation
	if len(data) == 0 {
		return a, nil
	}
	err := json.Unmarshal(data, &a)
	return a, err
}
