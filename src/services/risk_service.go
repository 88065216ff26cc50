package services

import (
	"context"

	"invest/src/models"
	"invest/src/repositories"
	"invest/src/utils"
)

// Point tables for the five scored questionnaire dimensions. Pools are
// 20+25+20+15+20, so a full questionnaire tops out at exactly 100. Missing or
// unrecognized answers fall back to a mid-range value instead of zero so an
// incomplete questionnaire isn't pushed to the conservative floor.
var (
	employmentScores = map[string]int{
		"unemployed":    5,
		"student":       10,
		"employed":      15,
		"self_employed": 20,
	}
	riskToleranceScores = map[string]int{
		"very_conservative": 5,
		"conservative":      10,
		"moderate":          15,
		"aggressive":        20,
		"very_aggressive":   25,
	}
	timelineScores = map[string]int{
		"short_term":  5,
		"medium_term": 15,
		"long_term":   20,
	}
	experienceScores = map[string]int{
		"beginner":     5,
		"intermediate": 10,
		"expert":       15,
	}
	lossToleranceScores = map[string]int{
		"cannot_accept":      5,
		"small_losses":       10,
		"moderate_losses":    15,
		"significant_losses": 20,
	}
)

func scoreOrDefault(table map[string]int, answer string, fallback int) int {
	if pts, ok := table[answer]; ok {
		return pts
	}
	return fallback
}

// CalculateRiskScore maps questionnaire answers to a score in [0,100] and a
// risk category. Deterministic and side-effect free.
func CalculateRiskScore(answers models.QuestionnaireAnswers) (int, string) {
	score := 0
	score += scoreOrDefault(employmentScores, answers.EmploymentStatus, 10)
	score += scoreOrDefault(riskToleranceScores, answers.RiskTolerance, 10)
	score += scoreOrDefault(timelineScores, answers.InvestmentTimeline, 10)
	score += scoreOrDefault(experienceScores, answers.FinancialExperience, 5)
	score += scoreOrDefault(lossToleranceScores, answers.LossTolerance, 10)

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	category := models.RiskCategoryConservative
	if score >= 70 {
		category = models.RiskCategoryAggressive
	} else if score >= 50 {
		category = models.RiskCategoryModerate
	}

	return score, category
}

type RiskServiceI interface {
	SubmitAssessment(ctx context.Context, userID string, answers models.QuestionnaireAnswers) (*models.RiskAssessment, error)
	GetLatestAssessment(ctx context.Context, userID string) (*models.RiskAssessment, error)
	GetAssessmentHistory(ctx context.Context, userID string) ([]models.RiskAssessment, error)
}

type RiskService struct {
	assessmentRepo repositories.RiskAssessmentRepository
}

func NewRiskService(assessmentRepo repositories.RiskAssessmentRepository) *RiskService {
	return &RiskService{assessmentRepo: assessmentRepo}
}

// SubmitAssessment scores the questionnaire and appends a new assessment row.
// Earlier rows are kept; reads always take the latest by created_at.
func (s *RiskService) SubmitAssessment(ctx context.Context, userID string, answers models.QuestionnaireAnswers) (*models.RiskAssessment, error) {
	if userID == "" {
		return nil, utils.ValidationError("user id is required")
	}

	score, category := CalculateRiskScore(answers)

	assessment := &models.RiskAssessment{
		UserID:              userID,
		EmploymentStatus:    answers.EmploymentStatus,
		RiskTolerance:       answers.RiskTolerance,
		InvestmentGoal:      answers.InvestmentGoal,
		FinancialExperience: answers.FinancialExperience,
		InvestmentTimeline:  answers.InvestmentTimeline,
		LossTolerance:       answers.LossTolerance,
		IncomeSource:        answers.IncomeSource,
		CalculatedRiskScore: score,
		RiskCategory:        category,
	}

	if err := s.assessmentRepo.Create(ctx, assessment, nil); err != nil {
		return nil, err
	}

	utils.LoggerFromContext(ctx).WithField("user_id", userID).
		WithField("risk_score", score).
		WithField("risk_category", category).
		Info("risk assessment recorded")

	return assessment, nil
}

func (s *RiskService) GetLatestAssessment(ctx context.Context, userID string) (*models.RiskAssessment, error) {
	return s.assessmentRepo.GetLatestByUserID(ctx, userID)
}

func (s *RiskService) GetAssessmentHistory(ctx context.Context, userID string) ([]models.RiskAssessment, error) {
	return s.assessmentRepo.GetHistoryByUserID(ctx, userID)
}
