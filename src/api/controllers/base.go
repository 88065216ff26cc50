package controllers

import (
	"context"
	"time"

	"invest/src/config"
	"invest/src/models"
	"invest/src/monitoring"
	"invest/src/repositories"
	"invest/src/schemas"
	"invest/src/services"
	redis_utils "invest/src/utils/redis"

	"github.com/jackc/pgx/v5/pgxpool"
)

type IController interface {
	SubmitRiskAssessment(ctx context.Context, userID string, answers models.QuestionnaireAnswers) (*schemas.AssessmentResponse, error)
	GetLatestRiskAssessment(ctx context.Context, userID string) (*schemas.AssessmentResponse, error)

	ListFunds(ctx context.Context, fundType string) ([]models.Fund, error)
	GetFund(ctx context.Context, fundID string) (*models.Fund, error)

	CreatePortfolio(ctx context.Context, userID string, req schemas.CreatePortfolioRequest) (*models.Portfolio, error)
	GetUserPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error)
	GetPortfolio(ctx context.Context, userID, portfolioID string) (*schemas.PortfolioDetail, error)
	UpdateTargetAllocation(ctx context.Context, userID, portfolioID string, alloc models.Allocation) error
	DeletePortfolio(ctx context.Context, userID, portfolioID string) error

	Invest(ctx context.Context, userID, portfolioID string, req schemas.InvestRequest) (*schemas.TransactionResult, error)
	Redeem(ctx context.Context, userID, portfolioID string, req schemas.RedeemRequest) (*schemas.TransactionResult, error)
	GetUserTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error)

	GenerateRecommendation(ctx context.Context, userID string) (*models.Recommendation, error)
	GetActiveRecommendation(ctx context.Context, userID string) (*models.Recommendation, error)
}

// Controller is the composition root of the investment core: it wires the
// repositories and services over one connection pool and exposes the
// operations the handlers serve.
type Controller struct {
	riskService           services.RiskServiceI
	fundService           services.FundServiceI
	portfolioService      services.PortfolioServiceI
	investmentService     services.InvestmentServiceI
	recommendationService services.RecommendationServiceI
}

func NewController(db *pgxpool.Pool, cache *redis_utils.RedisHandler, cfg *config.Config, metrics *monitoring.Metrics) *Controller {
	fundRepo := repositories.NewFundRepository(db)
	assessmentRepo := repositories.NewRiskAssessmentRepository(db)
	portfolioRepo := repositories.NewPortfolioRepository(db)
	holdingRepo := repositories.NewHoldingRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	recommendationRepo := repositories.NewRecommendationRepository(db)

	fundService := services.NewFundService(fundRepo, cache,
		time.Duration(cfg.Investment.FundCacheDurationSeconds)*time.Second)
	portfolioService := services.NewPortfolioService(portfolioRepo, holdingRepo, assessmentRepo)
	investmentService := services.NewInvestmentService(fundService, portfolioService,
		portfolioRepo, holdingRepo, transactionRepo, cfg.Investment, metrics)
	recommendationService := services.NewRecommendationService(assessmentRepo,
		recommendationRepo, cfg.Investment.RecommendationExpiryDays)

	return &Controller{
		riskService:           services.NewRiskService(assessmentRepo),
		fundService:           fundService,
		portfolioService:      portfolioService,
		investmentService:     investmentService,
		recommendationService: recommendationService,
	}
}
