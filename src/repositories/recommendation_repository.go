package repositories

import (
	"context"
	"errors"

	"invest/src/models"
	"invest/src/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RecommendationRepository interface {
	// Replace deactivates every prior recommendation for the user and inserts
	// the new one, atomically.
	Replace(ctx context.Context, rec *models.Recommendation) error
	GetActiveByUserID(ctx context.Context, userID string) (*models.Recommendation, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Recommendation, error)
}

type recommendationRepo struct {
	db *pgxpool.Pool
}

func NewRecommendationRepository(db *pgxpool.Pool) RecommendationRepository {
	return &recommendationRepo{db: db}
}

const recommendationColumns = `id, user_id, recommended_allocation, reasoning,
	expected_return, risk_score, recommendation_type, is_active, expires_at,
	created_at, updated_at`

func scanRecommendation(row pgx.Row) (*models.Recommendation, error) {
	var rec models.Recommendation
	var alloc []byte
	err := row.Scan(&rec.ID, &rec.UserID, &alloc, &rec.Reasoning,
		&rec.ExpectedReturn, &rec.RiskScore, &rec.RecommendationType,
		&rec.IsActive, &rec.ExpiresAt, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if rec.RecommendedAllocation, err = models.ScanAllocation(alloc); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recommendationRepo) Replace(ctx context.Context, rec *models.Recommendation) error {
	alloc, err := rec.RecommendedAllocation.Value()
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return utils.PersistenceError(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	_, err = tx.Exec(ctx,
		`UPDATE investment_recommendations
		SET is_active = false, updated_at = NOW()
		WHERE user_id = $1 AND is_active = true`, rec.UserID)
	if err != nil {
		return utils.PersistenceError(err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO investment_recommendations (user_id, recommended_allocation,
			reasoning, expected_return, risk_score, recommendation_type,
			is_active, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, true, $7)
		RETURNING id, created_at, updated_at`,
		rec.UserID, alloc, rec.Reasoning, rec.ExpectedReturn, rec.RiskScore,
		rec.RecommendationType, rec.ExpiresAt,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return utils.PersistenceError(err)
	}
	rec.IsActive = true

	return tx.Commit(ctx)
}

func (r *recommendationRepo) GetActiveByUserID(ctx context.Context, userID string) (*models.Recommendation, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+recommendationColumns+` FROM investment_recommendations
		WHERE user_id = $1 AND is_active = true
		ORDER BY created_at DESC
		LIMIT 1`, userID)
	rec, err := scanRecommendation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.NotFoundError("active recommendation for user", userID)
	}
	if err != nil {
		return nil, utils.PersistenceError(err)
	}
	return rec, nil
}

func (r *recommendationRepo) GetByUserID(ctx context.Context, userID string) ([]models.Recommendation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+recommendationColumns+` FROM investment_recommendations
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, utils.PersistenceError(err)
	}
	defer rows.Close()

	var recs []models.Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, utils.PersistenceError(err)
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}
