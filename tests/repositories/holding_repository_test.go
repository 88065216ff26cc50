package repositories_test

import (
	"context"
	"errors"
	"testing"

	"invest/src/models"
	"invest/src/repositories"
	"invest/src/utils"

	"invest/tests/init_test"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPortfolio(t *testing.T, db *pgxpool.Pool, userID string) *models.Portfolio {
	t.Helper()
	portfolio := &models.Portfolio{
		UserID:             userID,
		PortfolioName:      "Repository Test Portfolio",
		TargetAllocation:   models.Allocation{Gold: 70, FixedIncome: 20, Equity: 10},
		RebalanceThreshold: 5.0,
		IsActive:           true,
	}
	require.NoError(t, repositories.NewPortfolioRepository(db).Create(context.Background(), portfolio, nil))
	return portfolio
}

func TestHoldingRepository(t *testing.T) {
	db := init_test.SetupTestDB(t)
	repo := repositories.NewHoldingRepository(db)
	ctx := context.Background()

	t.Run("insert and read back", func(t *testing.T) {
		userID := "holding-user-" + uuid.NewString()
		fund := init_test.CreateTestFund(t, db, "HLD"+uuid.NewString()[:4], models.FundTypeGold, 10, 500)
		portfolio := createTestPortfolio(t, db, userID)

		inserted, err := repo.Insert(ctx, &models.Holding{
			UserID:          userID,
			PortfolioID:     portfolio.ID,
			FundID:          fund.ID,
			UnitsHeld:       100,
			AverageBuyPrice: 10,
			TotalInvested:   1000,
			CurrentValue:    1000,
		})
		require.NoError(t, err)
		assert.True(t, inserted)

		holding, err := repo.GetByPortfolioAndFund(ctx, portfolio.ID, fund.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), holding.Version)
		assert.InDelta(t, 100, holding.UnitsHeld, 1e-9)

		withFund, err := repo.GetByPortfolioID(ctx, portfolio.ID)
		require.NoError(t, err)
		require.Len(t, withFund, 1)
		assert.Equal(t, fund.Symbol, withFund[0].FundSymbol)
		assert.Equal(t, models.FundTypeGold, withFund[0].FundType)
	})

	t.Run("duplicate insert reports the lost race", func(t *testing.T) {
		userID := "holding-user-" + uuid.NewString()
		fund := init_test.CreateTestFund(t, db, "DUP"+uuid.NewString()[:4], models.FundTypeEquity, 10, 500)
		portfolio := createTestPortfolio(t, db, userID)

		first := &models.Holding{UserID: userID, PortfolioID: portfolio.ID, FundID: fund.ID,
			UnitsHeld: 10, AverageBuyPrice: 10, TotalInvested: 100, CurrentValue: 100}
		inserted, err := repo.Insert(ctx, first)
		require.NoError(t, err)
		require.True(t, inserted)

		second := &models.Holding{UserID: userID, PortfolioID: portfolio.ID, FundID: fund.ID,
			UnitsHeld: 20, AverageBuyPrice: 10, TotalInvested: 200, CurrentValue: 200}
		inserted, err = repo.Insert(ctx, second)
		require.NoError(t, err)
		assert.False(t, inserted)

		// The original row must be untouched.
		holding, err := repo.GetByPortfolioAndFund(ctx, portfolio.ID, fund.ID)
		require.NoError(t, err)
		assert.InDelta(t, 10, holding.UnitsHeld, 1e-9)
	})

	t.Run("guarded update bumps the version once", func(t *testing.T) {
		userID := "holding-user-" + uuid.NewString()
		fund := init_test.CreateTestFund(t, db, "VER"+uuid.NewString()[:4], models.FundTypeEquity, 10, 500)
		portfolio := createTestPortfolio(t, db, userID)

		holding := &models.Holding{UserID: userID, PortfolioID: portfolio.ID, FundID: fund.ID,
			UnitsHeld: 100, AverageBuyPrice: 10, TotalInvested: 1000, CurrentValue: 1000}
		_, err := repo.Insert(ctx, holding)
		require.NoError(t, err)

		holding.UnitsHeld = 150
		holding.TotalInvested = 1500
		require.NoError(t, repo.UpdateGuarded(ctx, holding, 1))
		assert.Equal(t, int64(2), holding.Version)

		stored, err := repo.GetByPortfolioAndFund(ctx, portfolio.ID, fund.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stored.Version)
		assert.InDelta(t, 150, stored.UnitsHeld, 1e-9)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		userID := "holding-user-" + uuid.NewString()
		fund := init_test.CreateTestFund(t, db, "STL"+uuid.NewString()[:4], models.FundTypeEquity, 10, 500)
		portfolio := createTestPortfolio(t, db, userID)

		holding := &models.Holding{UserID: userID, PortfolioID: portfolio.ID, FundID: fund.ID,
			UnitsHeld: 100, AverageBuyPrice: 10, TotalInvested: 1000, CurrentValue: 1000}
		_, err := repo.Insert(ctx, holding)
		require.NoError(t, err)

		require.NoError(t, repo.UpdateGuarded(ctx, holding, 1))

		// A writer still holding version 1 lost the race.
		stale := *holding
		stale.UnitsHeld = 999
		err = repo.UpdateGuarded(ctx, &stale, 1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrConcurrencyConflict))

		stored, err := repo.GetByPortfolioAndFund(ctx, portfolio.ID, fund.ID)
		require.NoError(t, err)
		assert.InDelta(t, 100, stored.UnitsHeld, 1e-9)
		assert.Equal(t, int64(2), stored.Version)
	})

	t.Run("missing holding is not found", func(t *testing.T) {
		_, err := repo.GetByPortfolioAndFund(ctx, uuid.NewString(), uuid.NewString())
		require.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrNotFound))
	})
}
