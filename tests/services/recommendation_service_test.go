package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"invest/src/models"
	"invest/src/repositories"
	"invest/src/services"
	"invest/src/utils"

	"invest/tests/init_test"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendationService(t *testing.T) {
	db := init_test.SetupTestDB(t)
	ctx := context.Background()

	assessmentRepo := repositories.NewRiskAssessmentRepository(db)
	recommendationRepo := repositories.NewRecommendationRepository(db)
	riskService := services.NewRiskService(assessmentRepo)
	recommendationService := services.NewRecommendationService(assessmentRepo, recommendationRepo, 90)

	t.Run("requires a risk assessment", func(t *testing.T) {
		userID := "rec-user-" + uuid.NewString()
		_, err := recommendationService.Generate(ctx, userID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrRiskAssessmentRequired))
	})

	t.Run("derives allocation and expiry from the latest assessment", func(t *testing.T) {
		userID := "rec-user-" + uuid.NewString()
		_, err := riskService.SubmitAssessment(ctx, userID, models.QuestionnaireAnswers{
			EmploymentStatus:    "self_employed",
			RiskTolerance:       "very_aggressive",
			FinancialExperience: "expert",
			InvestmentTimeline:  "long_term",
			LossTolerance:       "significant_losses",
		})
		require.NoError(t, err)

		rec, err := recommendationService.Generate(ctx, userID)
		require.NoError(t, err)

		assert.Equal(t, services.AllocationForCategory(models.RiskCategoryAggressive), rec.RecommendedAllocation)
		assert.InDelta(t, 12.0, rec.ExpectedReturn, 1e-9)
		assert.Contains(t, rec.Reasoning, "aggressive risk profile")
		assert.Contains(t, rec.Reasoning, "long-term investment horizon")
		assert.Contains(t, rec.Reasoning, "investment experience")

		wantExpiry := time.Now().AddDate(0, 0, 90)
		assert.WithinDuration(t, wantExpiry, rec.ExpiresAt, time.Minute)
	})

	t.Run("regenerating keeps exactly one active recommendation", func(t *testing.T) {
		userID := "rec-user-" + uuid.NewString()
		_, err := riskService.SubmitAssessment(ctx, userID, models.QuestionnaireAnswers{
			EmploymentStatus: "employed",
			RiskTolerance:    "conservative",
		})
		require.NoError(t, err)

		first, err := recommendationService.Generate(ctx, userID)
		require.NoError(t, err)

		_, err = riskService.SubmitAssessment(ctx, userID, models.QuestionnaireAnswers{
			EmploymentStatus:    "self_employed",
			RiskTolerance:       "very_aggressive",
			FinancialExperience: "expert",
			InvestmentTimeline:  "long_term",
			LossTolerance:       "significant_losses",
		})
		require.NoError(t, err)

		second, err := recommendationService.Generate(ctx, userID)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		active, err := recommendationService.GetActive(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, active.ID)
		assert.Equal(t, models.RiskCategoryAggressive, categoryForScore(active.RiskScore))

		all, err := recommendationRepo.GetByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, all, 2)
		var activeCount int
		for _, rec := range all {
			if rec.IsActive {
				activeCount++
			}
		}
		assert.Equal(t, 1, activeCount)
	})

	t.Run("no active recommendation reads as not found", func(t *testing.T) {
		userID := "rec-user-" + uuid.NewString()
		_, err := recommendationService.GetActive(ctx, userID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrNotFound))
	})
}

func categoryForScore(score int) string {
	switch {
	case score >= 70:
		return models.RiskCategoryAggressive
	case score >= 50:
		return models.RiskCategoryModerate
	default:
		return models.RiskCategoryConservative
	}
}
