package repositories

import (
	"context"
	"errors"

	"invest/src/models"
	"invest/src/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FundRepository interface {
	GetByID(ctx context.Context, id string) (*models.Fund, error)
	GetByType(ctx context.Context, fundType string) ([]models.Fund, error)
	GetAllActive(ctx context.Context) ([]models.Fund, error)
	UpdateNAV(ctx context.Context, id string, nav float64) error
	Create(ctx context.Context, f *models.Fund, tx pgx.Tx) error
}

type fundRepo struct {
	db *pgxpool.Pool
}

func NewFundRepository(db *pgxpool.Pool) FundRepository {
	return &fundRepo{db: db}
}

const fundColumns = `id, name, symbol, fund_type, description, minimum_investment,
	current_nav, currency, ytd_return, one_year_return, risk_rating, is_active,
	created_at, updated_at`

func scanFund(row pgx.Row) (*models.Fund, error) {
	var f models.Fund
	err := row.Scan(&f.ID, &f.Name, &f.Symbol, &f.FundType, &f.Description,
		&f.MinimumInvestment, &f.CurrentNAV, &f.Currency, &f.YTDReturn,
		&f.OneYearReturn, &f.RiskRating, &f.IsActive, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fundRepo) GetByID(ctx context.Context, id string) (*models.Fund, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+fundColumns+` FROM investment_funds WHERE id = $1`, id)
	fund, err := scanFund(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.NotFoundError("fund", id)
	}
	if err != nil {
		return nil, utils.PersistenceError(err)
	}
	return fund, nil
}

func (r *fundRepo) GetByType(ctx context.Context, fundType string) ([]models.Fund, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+fundColumns+` FROM investment_funds
		WHERE fund_type = $1 AND is_active = true
		ORDER BY name`, fundType)
	if err != nil {
		return nil, utils.PersistenceError(err)
	}
	defer rows.Close()
	return collectFunds(rows)
}

func (r *fundRepo) GetAllActive(ctx context.Context) ([]models.Fund, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+fundColumns+` FROM investment_funds
		WHERE is_active = true
		ORDER BY fund_type, name`)
	if err != nil {
		return nil, utils.PersistenceError(err)
	}
	defer rows.Close()
	return collectFunds(rows)
}

func collectFunds(rows pgx.Rows) ([]models.Fund, error) {
	var funds []models.Fund
	for rows.Next() {
		f, err := scanFund(rows)
		if err != nil {
			return nil, utils.PersistenceError(err)
		}
		funds = append(funds, *f)
	}
	return funds, rows.Err()
}

func (r *fundRepo) UpdateNAV(ctx context.Context, id string, nav float64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE investment_funds SET current_nav = $2, updated_at = NOW() WHERE id = $1`,
		id, nav)
	if err != nil {
		return utils.PersistenceError(err)
	}
	if tag.RowsAffected() == 0 {
		return utils.NotFoundError("fund", id)
	}
	return nil
}

func (r *fundRepo) Create(ctx context.Context, f *models.Fund, tx pgx.Tx) error {
	query := `
		INSERT INTO investment_funds (name, symbol, fund_type, description,
			minimum_investment, current_nav, currency, ytd_return, one_year_return,
			risk_rating, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	args := []interface{}{f.Name, f.Symbol, f.FundType, f.Description,
		f.MinimumInvestment, f.CurrentNAV, f.Currency, f.YTDReturn,
		f.OneYearReturn, f.RiskRating, f.IsActive}

	var err error
	if tx == nil {
		// If no transaction is provided, create a new one
		tx, err = r.db.Begin(ctx)
		if err != nil {
			return utils.PersistenceError(err)
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback(ctx)
			}
		}()

		err = tx.QueryRow(ctx, query, args...).Scan(&f.ID)
		if err != nil {
			return utils.PersistenceError(err)
		}

		return tx.Commit(ctx)
	}

	// Use the provided transaction
	return tx.QueryRow(ctx, query, args...).Scan(&f.ID)
}
