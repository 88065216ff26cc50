package repositories

import (
	"context"
	"errors"

	"invest/src/models"
	"invest/src/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RiskAssessmentRepository interface {
	Create(ctx context.Context, a *models.RiskAssessment, tx pgx.Tx) error
	GetLatestByUserID(ctx context.Context, userID string) (*models.RiskAssessment, error)
	GetHistoryByUserID(ctx context.Context, userID string) ([]models.RiskAssessment, error)
}

type riskAssessmentRepo struct {
	db *pgxpool.Pool
}

func NewRiskAssessmentRepository(db *pgxpool.Pool) RiskAssessmentRepository {
	return &riskAssessmentRepo{db: db}
}

const riskAssessmentColumns = `id, user_id, employment_status, risk_tolerance,
	investment_goal, financial_experience, investment_timeline, loss_tolerance,
	income_source, calculated_risk_score, risk_category, created_at`

func scanRiskAssessment(row pgx.Row) (*models.RiskAssessment, error) {
	var a models.RiskAssessment
	err := row.Scan(&a.ID, &a.UserID, &a.EmploymentStatus, &a.RiskTolerance,
		&a.InvestmentGoal, &a.FinancialExperience, &a.InvestmentTimeline,
		&a.LossTolerance, &a.IncomeSource, &a.CalculatedRiskScore,
		&a.RiskCategory, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create appends a new assessment row. Resubmissions append rather than
// update, so the risk profile history stays auditable.
func (r *riskAssessmentRepo) Create(ctx context.Context, a *models.RiskAssessment, tx pgx.Tx) error {
	query := `
		INSERT INTO risk_assessments (user_id, employment_status, risk_tolerance,
			investment_goal, financial_experience, investment_timeline,
			loss_tolerance, income_source, calculated_risk_score, risk_category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	args := []interface{}{a.UserID, a.EmploymentStatus, a.RiskTolerance,
		a.InvestmentGoal, a.FinancialExperience, a.InvestmentTimeline,
		a.LossTolerance, a.IncomeSource, a.CalculatedRiskScore, a.RiskCategory}

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

		err = tx.QueryRow(ctx, query, args...).Scan(&a.ID, &a.CreatedAt)
		if err != nil {
			return utils.PersistenceError(err)
		}

		return tx.Commit(ctx)
	}

	return tx.QueryRow(ctx, query, args...).Scan(&a.ID, &a.CreatedAt)
}

func (r *riskAssessmentRepo) GetLatestByUserID(ctx context.Context, userID string) (*models.RiskAssessment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+riskAssessmentColumns+` FROM risk_assessments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, userID)
	assessment, err := scanRiskAssessment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.NotFoundError("risk assessment for user", userID)
	}
	if err != nil {
		return nil, utils.PersistenceError(err)
	}
	return assessment, nil
}

func (r *riskAssessmentRepo) GetHistoryByUserID(ctx context.Context, userID string) ([]models.RiskAssessment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+riskAssessmentColumns+` FROM risk_assessments
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, utils.PersistenceError(err)
	}
	defer rows.Close()

	var assessments []models.RiskAssessment
	for rows.Next() {
		a, err := scanRiskAssessment(rows)
		if err != nil {
			return nil, utils.PersistenceError(err)
		}
		assessments = append(assessments, *a)
	}
	return assessments, rows.Err()
}
