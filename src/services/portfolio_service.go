package services

import (
	"context"
	"errors"

	"invest/src/models"
	"invest/src/repositories"
	"invest/src/schemas"
	"invest/src/utils"
)

type PortfolioServiceI interface {
	CreatePortfolio(ctx context.Context, userID, name string, custom *models.Allocation) (*models.Portfolio, error)
	GetPortfolio(ctx context.Context, portfolioID string) (*schemas.PortfolioDetail, error)
	GetUserPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error)
	UpdateTargetAllocation(ctx context.Context, portfolioID string, alloc models.Allocation) error
	RecomputeTotals(ctx context.Context, portfolioID string) error
	RecomputeAllocation(ctx context.Context, portfolioID string) error
	DeletePortfolio(ctx context.Context, portfolioID string) error
}

type PortfolioService struct {
	portfolioRepo  repositories.PortfolioRepository
	holdingRepo    repositories.HoldingRepository
	assessmentRepo repositories.RiskAssessmentRepository
}

func NewPortfolioService(
	portfolioRepo repositories.PortfolioRepository,
	holdingRepo repositories.HoldingRepository,
	assessmentRepo repositories.RiskAssessmentRepository,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo:  portfolioRepo,
		holdingRepo:    holdingRepo,
		assessmentRepo: assessmentRepo,
	}
}

// CreatePortfolio initializes a portfolio. The target allocation comes from,
// in order of preference: the caller's custom allocation (validated), the
// user's latest risk assessment through the allocation policy, or the
// conservative default when no assessment exists.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, userID, name string, custom *models.Allocation) (*models.Portfolio, error) {
	if userID == "" {
		return nil, utils.ValidationError("user id is required")
	}
	if name == "" {
		name = "My Investment Portfolio"
	}

	var target models.Allocation
	switch {
	case custom != nil:
		if err := ValidateAllocation(*custom); err != nil {
			return nil, err
		}
		target = *custom
	default:
		assessment, err := s.assessmentRepo.GetLatestByUserID(ctx, userID)
		switch {
		case err == nil:
			target = AllocationForCategory(assessment.RiskCategory)
		case errors.Is(err, utils.ErrNotFound):
			target = DefaultAllocation
		default:
			return nil, err
		}
	}

	portfolio := &models.Portfolio{
		UserID:             userID,
		PortfolioName:      name,
		TargetAllocation:   target,
		CurrentAllocation:  models.Allocation{},
		AutoRebalance:      false,
		RebalanceThreshold: 5.0,
		IsActive:           true,
	}

	if err := s.portfolioRepo.Create(ctx, portfolio, nil); err != nil {
		return nil, err
	}
	return portfolio, nil
}

// GetPortfolio returns the portfolio with its holdings and the target vs
// current allocation comparison the presentation layer renders.
func (s *PortfolioService) GetPortfolio(ctx context.Context, portfolioID string) (*schemas.PortfolioDetail, error) {
	portfolio, err := s.portfolioRepo.GetByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	holdings, err := s.holdingRepo.GetByPortfolioID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	return &schemas.PortfolioDetail{
		Portfolio: *portfolio,
		Holdings:  holdings,
		AllocationComparison: schemas.AllocationComparison{
			Target:  portfolio.TargetAllocation,
			Current: portfolio.CurrentAllocation,
			Drift: models.Allocation{
				Gold:        portfolio.CurrentAllocation.Gold - portfolio.TargetAllocation.Gold,
				FixedIncome: portfolio.CurrentAllocation.FixedIncome - portfolio.TargetAllocation.FixedIncome,
				Equity:      portfolio.CurrentAllocation.Equity - portfolio.TargetAllocation.Equity,
			},
		},
	}, nil
}

func (s *PortfolioService) GetUserPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error) {
	return s.portfolioRepo.GetByUserID(ctx, userID)
}

func (s *PortfolioService) UpdateTargetAllocation(ctx context.Context, portfolioID string, alloc models.Allocation) error {
	if err := ValidateAllocation(alloc); err != nil {
		return err
	}
	return s.portfolioRepo.UpdateTargetAllocation(ctx, portfolioID, alloc)
}

// RecomputeTotals sums total_invested and current_value across the
// portfolio's holdings and derives the return figures. Idempotent; together
// with RecomputeAllocation it is the only writer of the portfolio's current_*
// fields.
func (s *PortfolioService) RecomputeTotals(ctx context.Context, portfolioID string) error {
	holdings, err := s.holdingRepo.GetByPortfolioID(ctx, portfolioID)
	if err != nil {
		return err
	}

	var totalInvested, currentValue float64
	for _, h := range holdings {
		totalInvested += h.TotalInvested
		currentValue += h.CurrentValue
	}

	totalReturn := currentValue - totalInvested
	returnPercentage := 0.0
	if totalInvested > 0 {
		returnPercentage = (totalReturn / totalInvested) * 100
	}

	return s.portfolioRepo.UpdateTotals(ctx, portfolioID, totalInvested, currentValue, totalReturn, returnPercentage)
}

// RecomputeAllocation derives the current allocation from holding values
// grouped by fund class. With no value in the portfolio the allocation is
// all-zero, not NaN.
func (s *PortfolioService) RecomputeAllocation(ctx context.Context, portfolioID string) error {
	holdings, err := s.holdingRepo.GetByPortfolioID(ctx, portfolioID)
	if err != nil {
		return err
	}

	var totalValue float64
	byType := map[string]float64{}
	for _, h := range holdings {
		totalValue += h.CurrentValue
		byType[h.FundType] += h.CurrentValue
	}

	var current models.Allocation
	if totalValue > 0 {
		current = models.Allocation{
			Gold:        byType[models.FundTypeGold] / totalValue * 100,
			FixedIncome: byType[models.FundTypeFixedIncome] / totalValue * 100,
			Equity:      byType[models.FundTypeEquity] / totalValue * 100,
		}
	}

	return s.portfolioRepo.UpdateCurrentAllocation(ctx, portfolioID, current, totalValue)
}

func (s *PortfolioService) DeletePortfolio(ctx context.Context, portfolioID string) error {
	return s.portfolioRepo.SoftDelete(ctx, portfolioID)
}
