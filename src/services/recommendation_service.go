package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"invest/src/models"
	"invest/src/repositories"
	"invest/src/utils"
)

// Expected annual return per risk category, in percent. Policy figures, not
// market-derived.
var expectedReturns = map[string]float64{
	models.RiskCategoryConservative: 5.5,
	models.RiskCategoryModerate:     8.0,
	models.RiskCategoryAggressive:   12.0,
}

type RecommendationServiceI interface {
	Generate(ctx context.Context, userID string) (*models.Recommendation, error)
	GetActive(ctx context.Context, userID string) (*models.Recommendation, error)
}

type RecommendationService struct {
	assessmentRepo     repositories.RiskAssessmentRepository
	recommendationRepo repositories.RecommendationRepository
	expiryDays         int
}

func NewRecommendationService(
	assessmentRepo repositories.RiskAssessmentRepository,
	recommendationRepo repositories.RecommendationRepository,
	expiryDays int,
) *RecommendationService {
	if expiryDays <= 0 {
		expiryDays = 90
	}
	return &RecommendationService{
		assessmentRepo:     assessmentRepo,
		recommendationRepo: recommendationRepo,
		expiryDays:         expiryDays,
	}
}

// Generate derives a fresh recommendation from the user's latest risk
// assessment. All prior recommendations for the user are deactivated in the
// same storage transaction, so at most one active row exists at a time.
func (s *RecommendationService) Generate(ctx context.Context, userID string) (*models.Recommendation, error) {
	assessment, err := s.assessmentRepo.GetLatestByUserID(ctx, userID)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.ErrRiskAssessmentRequired
	}
	if err != nil {
		return nil, err
	}

	recommendation := &models.Recommendation{
		UserID:                userID,
		RecommendedAllocation: AllocationForCategory(assessment.RiskCategory),
		Reasoning:             buildReasoning(assessment),
		ExpectedReturn:        expectedReturns[assessment.RiskCategory],
		RiskScore:             assessment.CalculatedRiskScore,
		RecommendationType:    "portfolio_allocation",
		ExpiresAt:             time.Now().AddDate(0, 0, s.expiryDays),
	}

	if err := s.recommendationRepo.Replace(ctx, recommendation); err != nil {
		return nil, err
	}
	return recommendation, nil
}

func (s *RecommendationService) GetActive(ctx context.Context, userID string) (*models.Recommendation, error) {
	return s.recommendationRepo.GetActiveByUserID(ctx, userID)
}

// buildReasoning assembles the explanation from risk category, timeline and
// experience level.
func buildReasoning(assessment *models.RiskAssessment) string {
	var reasons []string

	switch assessment.RiskCategory {
	case models.RiskCategoryConservative:
		reasons = append(reasons, "Based on your conservative risk profile, we recommend a defensive allocation focused on capital preservation.")
	case models.RiskCategoryModerate:
		reasons = append(reasons, "Your moderate risk tolerance allows for a balanced approach between growth and stability.")
	default:
		reasons = append(reasons, "Your aggressive risk profile supports a growth-oriented strategy with higher return potential.")
	}

	switch assessment.InvestmentTimeline {
	case "long_term":
		reasons = append(reasons, "Your long-term investment horizon allows for riding out market volatility.")
	case "short_term":
		reasons = append(reasons, "Given your short-term timeline, we prioritize liquidity and capital preservation.")
	}

	switch assessment.FinancialExperience {
	case "beginner":
		reasons = append(reasons, "As a beginner investor, this allocation provides diversification while minimizing complexity.")
	case "expert":
		reasons = append(reasons, "Your investment experience allows for a more sophisticated allocation strategy.")
	}

	return strings.Join(reasons, " ")
}
