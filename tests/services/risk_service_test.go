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

func TestCalculateRiskScore(t *testing.T) {
	t.Run("maximum answers reach exactly 100", func(t *testing.T) {
		score, category := services.CalculateRiskScore(models.QuestionnaireAnswers{
			EmploymentStatus:    "self_employed",
			RiskTolerance:       "very_aggressive",
			InvestmentTimeline:  "long_term",
			FinancialExperience: "expert",
			LossTolerance:       "significant_losses",
		})
		assert.Equal(t, 100, score)
		assert.Equal(t, models.RiskCategoryAggressive, category)
	})

	t.Run("minimum answers stay conservative", func(t *testing.T) {
		score, category := services.CalculateRiskScore(models.QuestionnaireAnswers{
			EmploymentStatus:    "unemployed",
			RiskTolerance:       "very_conservative",
			InvestmentTimeline:  "short_term",
			FinancialExperience: "beginner",
			LossTolerance:       "cannot_accept",
		})
		assert.Equal(t, 25, score)
		assert.Equal(t, models.RiskCategoryConservative, category)
	})

	t.Run("empty questionnaire falls back to mid-range values", func(t *testing.T) {
		score, category := services.CalculateRiskScore(models.QuestionnaireAnswers{})
		// 10 + 10 + 10 + 5 + 10
		assert.Equal(t, 45, score)
		assert.Equal(t, models.RiskCategoryConservative, category)
	})

	t.Run("category thresholds at 50 and 70", func(t *testing.T) {
		// 15 + 15 + 15 + 5 + 10 = 60
		_, category := services.CalculateRiskScore(models.QuestionnaireAnswers{
			EmploymentStatus:    "employed",
			RiskTolerance:       "moderate",
			InvestmentTimeline:  "medium_term",
			FinancialExperience: "beginner",
			LossTolerance:       "small_losses",
		})
		assert.Equal(t, models.RiskCategoryModerate, category)

		// 15 + 20 + 20 + 5 + 15 = 75
		_, category = services.CalculateRiskScore(models.QuestionnaireAnswers{
			EmploymentStatus:    "employed",
			RiskTolerance:       "aggressive",
			InvestmentTimeline:  "long_term",
			FinancialExperience: "beginner",
			LossTolerance:       "moderate_losses",
		})
		assert.Equal(t, models.RiskCategoryAggressive, category)
	})

	t.Run("deterministic and bounded", func(t *testing.T) {
		answers := models.QuestionnaireAnswers{
			EmploymentStatus:    "student",
			RiskTolerance:       "aggressive",
			InvestmentTimeline:  "long_term",
			FinancialExperience: "intermediate",
			LossTolerance:       "moderate_losses",
			InvestmentGoal:      "wealth_growth",
			IncomeSource:        "salary",
		}
		first, firstCategory := services.CalculateRiskScore(answers)
		for i := 0; i < 10; i++ {
			score, category := services.CalculateRiskScore(answers)
			assert.Equal(t, first, score)
			assert.Equal(t, firstCategory, category)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	})

	t.Run("informational answers do not change the score", func(t *testing.T) {
		base := models.QuestionnaireAnswers{
			EmploymentStatus:    "employed",
			RiskTolerance:       "moderate",
			InvestmentTimeline:  "medium_term",
			FinancialExperience: "intermediate",
			LossTolerance:       "small_losses",
		}
		withInfo := base
		withInfo.InvestmentGoal = "retirement"
		withInfo.IncomeSource = "business"

		baseScore, _ := services.CalculateRiskScore(base)
		infoScore, _ := services.CalculateRiskScore(withInfo)
		assert.Equal(t, baseScore, infoScore)
	})
}

func TestRiskService(t *testing.T) {
	db := init_test.SetupTestDB(t)

	assessmentRepo := repositories.NewRiskAssessmentRepository(db)
	riskService := services.NewRiskService(assessmentRepo)

	t.Run("SubmitAssessment persists score and category", func(t *testing.T) {
		ctx := context.Background()
		userID := "risk-user-" + uuid.NewString()

		assessment, err := riskService.SubmitAssessment(ctx, userID, models.QuestionnaireAnswers{
			EmploymentStatus:    "employed",
			RiskTolerance:       "aggressive",
			InvestmentTimeline:  "long_term",
			FinancialExperience: "expert",
			LossTolerance:       "significant_losses",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, assessment.ID)
		assert.Equal(t, 90, assessment.CalculatedRiskScore)
		assert.Equal(t, models.RiskCategoryAggressive, assessment.RiskCategory)
	})

	t.Run("resubmission appends and latest wins", func(t *testing.T) {
		ctx := context.Background()
		userID := "risk-user-" + uuid.NewString()

		_, err := riskService.SubmitAssessment(ctx, userID, models.QuestionnaireAnswers{
			RiskTolerance: "very_conservative",
		})
		require.NoError(t, err)

		second, err := riskService.SubmitAssessment(ctx, userID, models.QuestionnaireAnswers{
			EmploymentStatus:    "self_employed",
			RiskTolerance:       "very_aggressive",
			InvestmentTimeline:  "long_term",
			FinancialExperience: "expert",
			LossTolerance:       "significant_losses",
		})
		require.NoError(t, err)

		latest, err := riskService.GetLatestAssessment(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, latest.ID)
		assert.Equal(t, models.RiskCategoryAggressive, latest.RiskCategory)

		history, err := riskService.GetAssessmentHistory(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})

	t.Run("missing user id rejected", func(t *testing.T) {
		_, err := riskService.SubmitAssessment(context.Background(), "", models.QuestionnaireAnswers{})
		assert.Error(t, err)
	})
}
