package services

import (
	"invest/src/models"
	"invest/src/utils"
)

// Target allocation table per risk category. Each row sums to exactly 100.
var categoryAllocations = map[string]models.Allocation{
	models.RiskCategoryConservative: {Gold: 50, FixedIncome: 40, Equity: 10},
	models.RiskCategoryModerate:     {Gold: 40, FixedIncome: 30, Equity: 30},
	models.RiskCategoryAggressive:   {Gold: 30, FixedIncome: 20, Equity: 50},
}

// DefaultAllocation is the target for portfolios created before any risk
// assessment exists.
var DefaultAllocation = models.Allocation{Gold: 70, FixedIncome: 20, Equity: 10}

// AllocationForCategory resolves the target allocation for a risk category.
// Unknown categories fall back to conservative.
func AllocationForCategory(category string) models.Allocation {
	if alloc, ok := categoryAllocations[category]; ok {
		return alloc
	}
	return categoryAllocations[models.RiskCategoryConservative]
}

// ValidateAllocation accepts a custom allocation only when the three
// percentages sum to 100 within the tolerance. It never normalizes.
func ValidateAllocation(alloc models.Allocation) error {
	if alloc.Gold < 0 || alloc.FixedIncome < 0 || alloc.Equity < 0 {
		return utils.ValidationError("allocation percentages must not be negative")
	}
	if !alloc.IsComplete() {
		return utils.ValidationError("portfolio allocation must sum to 100%%, got %.2f", alloc.Sum())
	}
	return nil
}
