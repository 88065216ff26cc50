package repositories

import (
	"context"
	"errors"

	"invest/src/models"
	"invest/src/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HoldingRepository interface {
	GetByPortfolioAndFund(ctx context.Context, portfolioID, fundID string) (*models.Holding, error)
	GetByPortfolioID(ctx context.Context, portfolioID string) ([]models.HoldingWithFund, error)
	GetByUserID(ctx context.Context, userID string) ([]models.HoldingWithFund, error)
	Insert(ctx context.Context, h *models.Holding) (bool, error)
	UpdateGuarded(ctx context.Context, h *models.Holding, expectedVersion int64) error
}

type holdingRepo struct {
	db *pgxpool.Pool
}

func NewHoldingRepository(db *pgxpool.Pool) HoldingRepository {
	return &holdingRepo{db: db}
}

const holdingColumns = `id, user_id, portfolio_id, fund_id, units_held,
	average_buy_price, total_invested, current_value, unrealized_gain_loss,
	version, created_at, updated_at`

func scanHolding(row pgx.Row) (*models.Holding, error) {
	var h models.Holding
	err := row.Scan(&h.ID, &h.UserID, &h.PortfolioID, &h.FundID, &h.UnitsHeld,
		&h.AverageBuyPrice, &h.TotalInvested, &h.CurrentValue,
		&h.UnrealizedGainLoss, &h.Version, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *holdingRepo) GetByPortfolioAndFund(ctx context.Context, portfolioID, fundID string) (*models.Holding, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+holdingColumns+` FROM user_fund_holdings
		WHERE portfolio_id = $1 AND fund_id = $2`, portfolioID, fundID)
	holding, err := scanHolding(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.NotFoundError("holding", portfolioID+"/"+fundID)
	}
	if err != nil {
		return nil, utils.PersistenceError(err)
	}
	return holding, nil
}

const holdingWithFundQuery = `
	SELECT h.id, h.user_id, h.portfolio_id, h.fund_id, h.units_held,
		h.average_buy_price, h.total_invested, h.current_value,
		h.unrealized_gain_loss, h.version, h.created_at, h.updated_at,
		f.name, f.symbol, f.fund_type, f.current_nav
	FROM user_fund_holdings h
	JOIN investment_funds f ON f.id = h.fund_id`

func collectHoldingsWithFund(rows pgx.Rows) ([]models.HoldingWithFund, error) {
	var holdings []models.HoldingWithFund
	for rows.Next() {
		var h models.HoldingWithFund
		err := rows.Scan(&h.ID, &h.UserID, &h.PortfolioID, &h.FundID,
			&h.UnitsHeld, &h.AverageBuyPrice, &h.TotalInvested, &h.CurrentValue,
			&h.UnrealizedGainLoss, &h.Version, &h.CreatedAt, &h.UpdatedAt,
			&h.FundName, &h.FundSymbol, &h.FundType, &h.CurrentNAV)
		if err != nil {
			return nil, utils.PersistenceError(err)
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

func (r *holdingRepo) GetByPortfolioID(ctx context.Context, portfolioID string) ([]models.HoldingWithFund, error) {
	rows, err := r.db.Query(ctx,
		holdingWithFundQuery+` WHERE h.portfolio_id = $1 ORDER BY f.fund_type, f.name`,
		portfolioID)
	if err != nil {
		return nil, utils.PersistenceError(err)
	}
	defer rows.Close()
	return collectHoldingsWithFund(rows)
}

func (r *holdingRepo) GetByUserID(ctx context.Context, userID string) ([]models.HoldingWithFund, error) {
	rows, err := r.db.Query(ctx,
		holdingWithFundQuery+` WHERE h.user_id = $1 ORDER BY f.fund_type, f.name`,
		userID)
	if err != nil {
		return nil, utils.PersistenceError(err)
	}
	defer rows.Close()
	return collectHoldingsWithFund(rows)
}

// Insert creates the first position for a (portfolio, fund) pair. Returns
// false when another writer created the row first; the caller re-reads and
// retries as a normal version conflict.
func (r *holdingRepo) Insert(ctx context.Context, h *models.Holding) (bool, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO user_fund_holdings (user_id, portfolio_id, fund_id,
			units_held, average_buy_price, total_invested, current_value,
			unrealized_gain_loss, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1)
		ON CONFLICT (portfolio_id, fund_id) DO NOTHING
		RETURNING id, version, created_at, updated_at`,
		h.UserID, h.PortfolioID, h.FundID, h.UnitsHeld, h.AverageBuyPrice,
		h.TotalInvested, h.CurrentValue, h.UnrealizedGainLoss)

	err := row.Scan(&h.ID, &h.Version, &h.CreatedAt, &h.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, utils.PersistenceError(err)
	}
	return true, nil
}

// UpdateGuarded writes the mutated position only if the row still carries
// expectedVersion. A concurrent writer that got there first leaves the row at
// a newer version, the update matches nothing and the caller sees
// ErrConcurrencyConflict.
func (r *holdingRepo) UpdateGuarded(ctx context.Context, h *models.Holding, expectedVersion int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE user_fund_holdings
		SET units_held = $3, average_buy_price = $4, total_invested = $5,
			current_value = $6, unrealized_gain_loss = $7,
			version = version + 1, updated_at = NOW()
		WHERE portfolio_id = $1 AND fund_id = $2 AND version = $8`,
		h.PortfolioID, h.FundID, h.UnitsHeld, h.AverageBuyPrice,
		h.TotalInvested, h.CurrentValue, h.UnrealizedGainLoss, expectedVersion)
	if err != nil {
		return utils.PersistenceError(err)
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrConcurrencyConflict
	}
	h.Version = expectedVersion + 1
	return nil
}
