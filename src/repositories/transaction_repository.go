package repositories

import (
	"context"
	"errors"
	"time"

	"invest/src/models"
	"invest/src/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository interface {
	Create(ctx context.Context, t *models.Transaction, tx pgx.Tx) error
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*models.Transaction, error)
	GetByUserID(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
	MarkCompleted(ctx context.Context, id string, settledAt time.Time) error
	MarkFailed(ctx context.Context, id string) error
	FailStalePending(ctx context.Context, olderThan time.Time) (int64, error)
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

const transactionColumns = `id, user_id, portfolio_id, fund_id, transaction_type,
	amount, units, price_per_unit, transaction_fees, status, reference_number,
	transaction_date, settlement_date, created_at, updated_at`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.PortfolioID, &t.FundID,
		&t.TransactionType, &t.Amount, &t.Units, &t.PricePerUnit,
		&t.TransactionFees, &t.Status, &t.ReferenceNumber, &t.TransactionDate,
		&t.SettlementDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepo) Create(ctx context.Context, t *models.Transaction, tx pgx.Tx) error {
	query := `
		INSERT INTO investment_transactions (user_id, portfolio_id, fund_id,
			transaction_type, amount, units, price_per_unit, transaction_fees,
			status, reference_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, transaction_date, created_at, updated_at`

	args := []interface{}{t.UserID, t.PortfolioID, t.FundID, t.TransactionType,
		t.Amount, t.Units, t.PricePerUnit, t.TransactionFees, t.Status,
		t.ReferenceNumber}

	var err error
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

		err = tx.QueryRow(ctx, query, args...).Scan(&t.ID, &t.TransactionDate, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return utils.PersistenceError(err)
		}

		return tx.Commit(ctx)
	}

	return tx.QueryRow(ctx, query, args...).Scan(&t.ID, &t.TransactionDate, &t.CreatedAt, &t.UpdatedAt)
}

func (r *transactionRepo) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM investment_transactions WHERE id = $1`, id)
	transaction, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.NotFoundError("transaction", id)
	}
	if err != nil {
		return nil, utils.PersistenceError(err)
	}
	return transaction, nil
}

func (r *transactionRepo) GetByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM investment_transactions WHERE reference_number = $1`, reference)
	transaction, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.NotFoundError("transaction", reference)
	}
	if err != nil {
		return nil, utils.PersistenceError(err)
	}
	return transaction, nil
}

func (r *transactionRepo) GetByUserID(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM investment_transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, utils.PersistenceError(err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, utils.PersistenceError(err)
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

// MarkCompleted settles a pending transaction. The status predicate makes the
// terminal states sticky: a transaction already failed can't be resurrected.
func (r *transactionRepo) MarkCompleted(ctx context.Context, id string, settledAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE investment_transactions
		SET status = $2, settlement_date = $3, updated_at = NOW()
		WHERE id = $1 AND status IN ($4, $5)`,
		id, models.TransactionStatusCompleted, settledAt,
		models.TransactionStatusPending, models.TransactionStatusProcessing)
	if err != nil {
		return utils.PersistenceError(err)
	}
	if tag.RowsAffected() == 0 {
		return utils.NotFoundError("pending transaction", id)
	}
	return nil
}

func (r *transactionRepo) MarkFailed(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE investment_transactions
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status IN ($3, $4)`,
		id, models.TransactionStatusFailed,
		models.TransactionStatusPending, models.TransactionStatusProcessing)
	if err != nil {
		return utils.PersistenceError(err)
	}
	if tag.RowsAffected() == 0 {
		return utils.NotFoundError("pending transaction", id)
	}
	return nil
}

// FailStalePending resolves transactions stuck in pending beyond the timeout.
// Used by the reconciliation sweep.
func (r *transactionRepo) FailStalePending(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE investment_transactions
		SET status = $1, updated_at = NOW()
		WHERE status IN ($2, $3) AND created_at < $4`,
		models.TransactionStatusFailed,
		models.TransactionStatusPending, models.TransactionStatusProcessing,
		olderThan)
	if err != nil {
		return 0, utils.PersistenceError(err)
	}
	return tag.RowsAffected(), nil
}
