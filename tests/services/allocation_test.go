package services_test

import (
	"testing"

	"invest/src/models"
	"invest/src/services"

	"github.com/stretchr/testify/assert"
)

func TestAllocationForCategory(t *testing.T) {
	categories := []string{
		models.RiskCategoryConservative,
		models.RiskCategoryModerate,
		models.RiskCategoryAggressive,
	}

	for _, category := range categories {
		t.Run(category, func(t *testing.T) {
			alloc := services.AllocationForCategory(category)
			assert.InDelta(t, 100, alloc.Sum(), 1e-9)
		})
	}

	t.Run("conservative skews defensive, aggressive skews to equity", func(t *testing.T) {
		conservative := services.AllocationForCategory(models.RiskCategoryConservative)
		aggressive := services.AllocationForCategory(models.RiskCategoryAggressive)

		assert.Greater(t, conservative.Gold+conservative.FixedIncome, conservative.Equity)
		assert.Greater(t, aggressive.Equity, conservative.Equity)
	})

	t.Run("unknown category falls back to conservative", func(t *testing.T) {
		assert.Equal(t,
			services.AllocationForCategory(models.RiskCategoryConservative),
			services.AllocationForCategory("day_trader"))
	})

	t.Run("default allocation sums to 100", func(t *testing.T) {
		assert.InDelta(t, 100, services.DefaultAllocation.Sum(), 1e-9)
		assert.Equal(t, models.Allocation{Gold: 70, FixedIncome: 20, Equity: 10}, services.DefaultAllocation)
	})
}

func TestValidateAllocation(t *testing.T) {
	t.Run("accepts exact 100", func(t *testing.T) {
		err := services.ValidateAllocation(models.Allocation{Gold: 20, FixedIncome: 30, Equity: 50})
		assert.NoError(t, err)
	})

	t.Run("accepts within tolerance", func(t *testing.T) {
		err := services.ValidateAllocation(models.Allocation{Gold: 20.05, FixedIncome: 30, Equity: 50})
		assert.NoError(t, err)
	})

	t.Run("rejects outside tolerance without normalizing", func(t *testing.T) {
		err := services.ValidateAllocation(models.Allocation{Gold: 20, FixedIncome: 30, Equity: 49})
		assert.Error(t, err)
	})

	t.Run("rejects negative percentages", func(t *testing.T) {
		err := services.ValidateAllocation(models.Allocation{Gold: -10, FixedIncome: 60, Equity: 50})
		assert.Error(t, err)
	})
}
