package repositories

import (
	"context"
	"errors"

	"invest/src/models"
	"invest/src/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PortfolioRepository interface {
	Create(ctx context.Context, p *models.Portfolio, tx pgx.Tx) error
	GetByID(ctx context.Context, id string) (*models.Portfolio, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Portfolio, error)
	UpdateTargetAllocation(ctx context.Context, id string, alloc models.Allocation) error
	UpdateTotals(ctx context.Context, id string, totalInvested, currentValue, totalReturn, returnPercentage float64) error
	UpdateCurrentAllocation(ctx context.Context, id string, alloc models.Allocation, currentValue float64) error
	SoftDelete(ctx context.Context, id string) error
}

type portfolioRepo struct {
	db *pgxpool.Pool
}

func NewPortfolioRepository(db *pgxpool.Pool) PortfolioRepository {
	return &portfolioRepo{db: db}
}

const portfolioColumns = `id, user_id, portfolio_name, target_allocation,
	current_allocation, total_invested, current_value, total_return,
	return_percentage, auto_rebalance, rebalance_threshold, is_active,
	created_at, updated_at`

func scanPortfolio(row pgx.Row) (*models.Portfolio, error) {
	var p models.Portfolio
	var target, current []byte
	err := row.Scan(&p.ID, &p.UserID, &p.PortfolioName, &target, &current,
		&p.TotalInvested, &p.CurrentValue, &p.TotalReturn, &p.ReturnPercentage,
		&p.AutoRebalance, &p.RebalanceThreshold, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.TargetAllocation, err = models.ScanAllocation(target); err != nil {
		return nil, err
	}
	if p.CurrentAllocation, err = models.ScanAllocation(current); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *portfolioRepo) Create(ctx context.Context, p *models.Portfolio, tx pgx.Tx) error {
	target, err := p.TargetAllocation.Value()
	if err != nil {
		return err
	}
	current, err := p.CurrentAllocation.Value()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_portfolios (user_id, portfolio_name, target_allocation,
			current_allocation, total_invested, current_value, total_return,
			return_percentage, auto_rebalance, rebalance_threshold, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true)
		RETURNING id, created_at, updated_at`

	args := []interface{}{p.UserID, p.PortfolioName, target, current,
		p.TotalInvested, p.CurrentValue, p.TotalReturn, p.ReturnPercentage,
		p.AutoRebalance, p.RebalanceThreshold}

	if tx == nil {
		tx, err = r.db.Begin(ctx)
		if err != nil {
			return utils.PersistenceError(err)
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback(ctx)
			}
		}()

		err = tx.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return utils.PersistenceError(err)
		}

		return tx.Commit(ctx)
	}

	return tx.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *portfolioRepo) GetByID(ctx context.Context, id string) (*models.Portfolio, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+portfolioColumns+` FROM user_portfolios WHERE id = $1 AND is_active = true`, id)
	portfolio, err := scanPortfolio(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.NotFoundError("portfolio", id)
	}
	if err != nil {
		return nil, utils.PersistenceError(err)
	}
	return portfolio, nil
}

func (r *portfolioRepo) GetByUserID(ctx context.Context, userID string) ([]models.Portfolio, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+portfolioColumns+` FROM user_portfolios
		WHERE user_id = $1 AND is_active = true
		ORDER BY created_at`, userID)
	if err != nil {
		return nil, utils.PersistenceError(err)
	}
	defer rows.Close()

	var portfolios []models.Portfolio
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, utils.PersistenceError(err)
		}
		portfolios = append(portfolios, *p)
	}
	return portfolios, rows.Err()
}

func (r *portfolioRepo) UpdateTargetAllocation(ctx context.Context, id string, alloc models.Allocation) error {
	target, err := alloc.Value()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE user_portfolios SET target_allocation = $2, updated_at = NOW()
		WHERE id = $1 AND is_active = true`, id, target)
	if err != nil {
		return utils.PersistenceError(err)
	}
	if tag.RowsAffected() == 0 {
		return utils.NotFoundError("portfolio", id)
	}
	return nil
}

// UpdateTotals persists the recomputed aggregate money fields. Target
// allocation is deliberately untouched here.
func (r *portfolioRepo) UpdateTotals(ctx context.Context, id string, totalInvested, currentValue, totalReturn, returnPercentage float64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE user_portfolios
		SET total_invested = $2, current_value = $3, total_return = $4,
			return_percentage = $5, updated_at = NOW()
		WHERE id = $1`, id, totalInvested, currentValue, totalReturn, returnPercentage)
	if err != nil {
		return utils.PersistenceError(err)
	}
	if tag.RowsAffected() == 0 {
		return utils.NotFoundError("portfolio", id)
	}
	return nil
}

func (r *portfolioRepo) UpdateCurrentAllocation(ctx context.Context, id string, alloc models.Allocation, currentValue float64) error {
	current, err := alloc.Value()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE user_portfolios
		SET current_allocation = $2, current_value = $3, updated_at = NOW()
		WHERE id = $1`, id, current, currentValue)
	if err != nil {
		return utils.PersistenceError(err)
	}
	if tag.RowsAffected() == 0 {
		return utils.NotFoundError("portfolio", id)
	}
	return nil
}

// SoftDelete flags the portfolio inactive. Rows are never hard-deleted.
func (r *portfolioRepo) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE user_portfolios SET is_active = false, updated_at = NOW() WHERE id = $1 AND is_active = true`, id)
	if err != nil {
		return utils.PersistenceError(err)
	}
	if tag.RowsAffected() == 0 {
		return utils.NotFoundError("portfolio", id)
	}
	return nil
}
