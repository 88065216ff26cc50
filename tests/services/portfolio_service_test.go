package services_test

import (
	"context"
	"testing"

	"invest/src/models"
	"invest/src/repositories"
	"invest/src/services"

	"invest/tests/init_test"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioService(t *testing.T) {
	db := init_test.SetupTestDB(t)

	portfolioRepo := repositories.NewPortfolioRepository(db)
	holdingRepo := repositories.NewHoldingRepository(db)
	assessmentRepo := repositories.NewRiskAssessmentRepository(db)
	portfolioService := services.NewPortfolioService(portfolioRepo, holdingRepo, assessmentRepo)
	riskService := services.NewRiskService(assessmentRepo)

	t.Run("create without assessment uses conservative default", func(t *testing.T) {
		ctx := context.Background()
		userID := "portfolio-user-" + uuid.NewString()

		portfolio, err := portfolioService.CreatePortfolio(ctx, userID, "", nil)
		require.NoError(t, err)

		assert.Equal(t, models.Allocation{Gold: 70, FixedIncome: 20, Equity: 10}, portfolio.TargetAllocation)
		assert.Equal(t, models.Allocation{}, portfolio.CurrentAllocation)
		assert.Equal(t, "My Investment Portfolio", portfolio.PortfolioName)
		assert.True(t, portfolio.IsActive)
	})

	t.Run("create resolves target from latest assessment", func(t *testing.T) {
		ctx := context.Background()
		userID := "portfolio-user-" + uuid.NewString()

		_, err := riskService.SubmitAssessment(ctx, userID, models.QuestionnaireAnswers{
			EmploymentStatus:    "employed",
			RiskTolerance:       "moderate",
			InvestmentTimeline:  "medium_term",
			FinancialExperience: "intermediate",
			LossTolerance:       "moderate_losses",
		})
		require.NoError(t, err)

		portfolio, err := portfolioService.CreatePortfolio(ctx, userID, "Balanced", nil)
		require.NoError(t, err)
		assert.Equal(t, services.AllocationForCategory(models.RiskCategoryModerate), portfolio.TargetAllocation)
	})

	t.Run("custom allocation is validated, not normalized", func(t *testing.T) {
		ctx := context.Background()
		userID := "portfolio-user-" + uuid.NewString()

		_, err := portfolioService.CreatePortfolio(ctx, userID, "Broken",
			&models.Allocation{Gold: 50, FixedIncome: 30, Equity: 30})
		assert.Error(t, err)

		portfolio, err := portfolioService.CreatePortfolio(ctx, userID, "Custom",
			&models.Allocation{Gold: 25, FixedIncome: 25, Equity: 50})
		require.NoError(t, err)
		assert.Equal(t, models.Allocation{Gold: 25, FixedIncome: 25, Equity: 50}, portfolio.TargetAllocation)
	})

	t.Run("recompute on empty portfolio is a zero no-op and idempotent", func(t *testing.T) {
		ctx := context.Background()
		userID := "portfolio-user-" + uuid.NewString()

		portfolio, err := portfolioService.CreatePortfolio(ctx, userID, "", nil)
		require.NoError(t, err)

		require.NoError(t, portfolioService.RecomputeTotals(ctx, portfolio.ID))
		require.NoError(t, portfolioService.RecomputeAllocation(ctx, portfolio.ID))

		first, err := portfolioRepo.GetByID(ctx, portfolio.ID)
		require.NoError(t, err)

		require.NoError(t, portfolioService.RecomputeTotals(ctx, portfolio.ID))
		require.NoError(t, portfolioService.RecomputeAllocation(ctx, portfolio.ID))

		second, err := portfolioRepo.GetByID(ctx, portfolio.ID)
		require.NoError(t, err)

		assert.Equal(t, first.TotalInvested, second.TotalInvested)
		assert.Equal(t, first.CurrentValue, second.CurrentValue)
		assert.Equal(t, first.CurrentAllocation, second.CurrentAllocation)
		assert.Equal(t, models.Allocation{}, second.CurrentAllocation)
	})

	t.Run("updating target does not touch current allocation", func(t *testing.T) {
		ctx := context.Background()
		userID := "portfolio-user-" + uuid.NewString()

		portfolio, err := portfolioService.CreatePortfolio(ctx, userID, "", nil)
		require.NoError(t, err)

		newTarget := models.Allocation{Gold: 10, FixedIncome: 40, Equity: 50}
		require.NoError(t, portfolioService.UpdateTargetAllocation(ctx, portfolio.ID, newTarget))

		updated, err := portfolioRepo.GetByID(ctx, portfolio.ID)
		require.NoError(t, err)
		assert.Equal(t, newTarget, updated.TargetAllocation)
		assert.Equal(t, portfolio.CurrentAllocation, updated.CurrentAllocation)
	})

	t.Run("soft delete hides the portfolio", func(t *testing.T) {
		ctx := context.Background()
		userID := "portfolio-user-" + uuid.NewString()

		portfolio, err := portfolioService.CreatePortfolio(ctx, userID, "", nil)
		require.NoError(t, err)

		require.NoError(t, portfolioService.DeletePortfolio(ctx, portfolio.ID))

		_, err = portfolioRepo.GetByID(ctx, portfolio.ID)
		assert.Error(t, err)

		portfolios, err := portfolioService.GetUserPortfolios(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, portfolios)
	})
}
