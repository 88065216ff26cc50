package controllers

import (
	"context"

	"invest/src/models"
	"invest/src/schemas"
	"invest/src/services"
	"invest/src/utils"
)

func (c *Controller) SubmitRiskAssessment(ctx context.Context, userID string, answers models.QuestionnaireAnswers) (*schemas.AssessmentResponse, error) {
	assessment, err := c.riskService.SubmitAssessment(ctx, userID, answers)
	if err != nil {
		return nil, err
	}
	return &schemas.AssessmentResponse{
		Assessment: assessment,
		Allocation: services.AllocationForCategory(assessment.RiskCategory),
	}, nil
}

func (c *Controller) GetLatestRiskAssessment(ctx context.Context, userID string) (*schemas.AssessmentResponse, error) {
	assessment, err := c.riskService.GetLatestAssessment(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &schemas.AssessmentResponse{
		Assessment: assessment,
		Allocation: services.AllocationForCategory(assessment.RiskCategory),
	}, nil
}

func (c *Controller) ListFunds(ctx context.Context, fundType string) ([]models.Fund, error) {
	if fundType != "" {
		switch fundType {
		case models.FundTypeGold, models.FundTypeFixedIncome, models.FundTypeEquity:
		default:
			return nil, utils.ValidationError("unknown fund type %q", fundType)
		}
		return c.fundService.GetFundsByType(ctx, fundType)
	}
	return c.fundService.ListFunds(ctx)
}

func (c *Controller) GetFund(ctx context.Context, fundID string) (*models.Fund, error) {
	return c.fundService.GetFundByID(ctx, fundID)
}

func (c *Controller) CreatePortfolio(ctx context.Context, userID string, req schemas.CreatePortfolioRequest) (*models.Portfolio, error) {
	return c.portfolioService.CreatePortfolio(ctx, userID, req.PortfolioName, req.CustomAllocation)
}

func (c *Controller) GetUserPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error) {
	return c.portfolioService.GetUserPortfolios(ctx, userID)
}

func (c *Controller) GetPortfolio(ctx context.Context, userID, portfolioID string) (*schemas.PortfolioDetail, error) {
	detail, err := c.portfolioService.GetPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	if detail.Portfolio.UserID != userID {
		return nil, utils.NotFoundError("portfolio", portfolioID)
	}
	return detail, nil
}

func (c *Controller) UpdateTargetAllocation(ctx context.Context, userID, portfolioID string, alloc models.Allocation) error {
	if _, err := c.GetPortfolio(ctx, userID, portfolioID); err != nil {
		return err
	}
	return c.portfolioService.UpdateTargetAllocation(ctx, portfolioID, alloc)
}

func (c *Controller) DeletePortfolio(ctx context.Context, userID, portfolioID string) error {
	if _, err := c.GetPortfolio(ctx, userID, portfolioID); err != nil {
		return err
	}
	return c.portfolioService.DeletePortfolio(ctx, portfolioID)
}

func (c *Controller) Invest(ctx context.Context, userID, portfolioID string, req schemas.InvestRequest) (*schemas.TransactionResult, error) {
	if req.FundID == "" {
		return nil, utils.ValidationError("fund_id is required")
	}
	return c.investmentService.ProcessBuy(ctx, userID, portfolioID, req.FundID, req.Amount)
}

func (c *Controller) Redeem(ctx context.Context, userID, portfolioID string, req schemas.RedeemRequest) (*schemas.TransactionResult, error) {
	if req.FundID == "" {
		return nil, utils.ValidationError("fund_id is required")
	}
	return c.investmentService.ProcessSell(ctx, userID, portfolioID, req.FundID, req.Units)
}

func (c *Controller) GetUserTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	return c.investmentService.GetUserTransactions(ctx, userID, limit)
}

func (c *Controller) GenerateRecommendation(ctx context.Context, userID string) (*models.Recommendation, error) {
	return c.recommendationService.Generate(ctx, userID)
}

func (c *Controller) GetActiveRecommendation(ctx context.Context, userID string) (*models.Recommendation, error) {
	return c.recommendationService.GetActive(ctx, userID)
}
