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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFundRepository(t *testing.T) {
	db := init_test.SetupTestDB(t)
	repo := repositories.NewFundRepository(db)
	ctx := context.Background()

	t.Run("create and fetch by id", func(t *testing.T) {
		fund := init_test.CreateTestFund(t, db, "FND"+uuid.NewString()[:4], models.FundTypeGold, 12.5, 500)

		stored, err := repo.GetByID(ctx, fund.ID)
		require.NoError(t, err)
		assert.Equal(t, fund.Symbol, stored.Symbol)
		assert.InDelta(t, 12.5, stored.CurrentNAV, 1e-9)
		assert.True(t, stored.IsActive)
	})

	t.Run("listing filters by type and activity", func(t *testing.T) {
		init_test.TruncateTables(t, db)
		init_test.CreateTestFund(t, db, "GLD"+uuid.NewString()[:4], models.FundTypeGold, 10, 500)
		init_test.CreateTestFund(t, db, "EQA"+uuid.NewString()[:4], models.FundTypeEquity, 10, 500)
		inactive := init_test.CreateTestFund(t, db, "OFF"+uuid.NewString()[:4], models.FundTypeEquity, 10, 500)
		_, err := db.Exec(ctx, `UPDATE investment_funds SET is_active = false WHERE id = $1`, inactive.ID)
		require.NoError(t, err)

		equity, err := repo.GetByType(ctx, models.FundTypeEquity)
		require.NoError(t, err)
		require.Len(t, equity, 1)

		all, err := repo.GetAllActive(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("nav update is visible on the next read", func(t *testing.T) {
		fund := init_test.CreateTestFund(t, db, "NAV"+uuid.NewString()[:4], models.FundTypeFixedIncome, 10, 500)
		require.NoError(t, repo.UpdateNAV(ctx, fund.ID, 11.25))

		stored, err := repo.GetByID(ctx, fund.ID)
		require.NoError(t, err)
		assert.InDelta(t, 11.25, stored.CurrentNAV, 1e-9)
	})

	t.Run("unknown fund is not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.NewString())
		require.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrNotFound))

		err = repo.UpdateNAV(ctx, uuid.NewString(), 10)
		require.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrNotFound))
	})
}
