package services

import (
	"context"
	"errors"
	"time"

	"invest/src/config"
	"invest/src/models"
	"invest/src/monitoring"
	"invest/src/repositories"
	"invest/src/schemas"
	"invest/src/utils"

	"github.com/sethvargo/go-retry"
)

type InvestmentServiceI interface {
	ProcessBuy(ctx context.Context, userID, portfolioID, fundID string, amount float64) (*schemas.TransactionResult, error)
	ProcessSell(ctx context.Context, userID, portfolioID, fundID string, units float64) (*schemas.TransactionResult, error)
	GetUserTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
}

/// InvestmentService drives a buy or sell through its state machine: validate,
// price, record a pending transaction, mutate the holding under optimistic
// locking, recompute the portfolio aggregate, then settle the transaction.
type InvestmentService struct {
	fundService      FundServiceI
	portfolioService PortfolioServiceI
	portfolioRepo    repositories.PortfolioRepository
	holdingRepo      repositories.HoldingRepository
	transactionRepo  repositories.TransactionRepository
	policy           config.InvestmentConfig
	metrics          *monitoring.Metrics
}

func NewInvestmentService(
	fundService FundServiceI,
	portfolioService PortfolioServiceI,
	portfolioRepo repositories.PortfolioRepository,
	holdingRepo repositories.HoldingRepository,
	transactionRepo repositories.TransactionRepository,
	policy config.InvestmentConfig,
	metrics *monitoring.Metrics,
) *InvestmentService {
	return &InvestmentService{
		fundService:      fundService,
		portfolioService: portfolioService,
		portfolioRepo:    portfolioRepo,
		holdingRepo:      holdingRepo,
		transactionRepo:  transactionRepo,
		policy:           policy,
		metrics:          metrics,
	}
}

func (s *InvestmentService) ProcessBuy(ctx context.Context, userID, portfolioID, fundID string, amount float64) (*schemas.TransactionResult, error) {
	if amount <= 0 {
		return nil, utils.ValidationError("investment amount must be positive, got %.2f", amount)
	}

	fund, err := s.validateTarget(ctx, userID, portfolioID, fundID)
	if err != nil {
		return nil, err
	}
	if amount < fund.MinimumInvestment {
		return nil, utils.BelowMinimumInvestmentError(fund.MinimumInvestment)
	}

	units := amount / fund.CurrentNAV
	fees := utils.CalculateFee(amount, s.policy.BuyFeeRate)

	return s.execute(ctx, &models.Transaction{
		UserID:          userID,
		PortfolioID:     portfolioID,
		FundID:          fundID,
		TransactionType: models.TransactionTypeBuy,
		Amount:          amount,
		Units:           units,
		PricePerUnit:    fund.CurrentNAV,
		TransactionFees: fees,
		Status:          models.TransactionStatusPending,
		ReferenceNumber: utils.GenerateReferenceNumber(),
	}, fund, func(ctx context.Context) error {
		return s.applyBuyGuarded(ctx, userID, portfolioID, fundID, amount, fund.CurrentNAV)
	})
}

func (s *InvestmentService) ProcessSell(ctx context.Context, userID, portfolioID, fundID string, units float64) (*schemas.TransactionResult, error) {
	if units <= 0 {
		return nil, utils.ValidationError("units to sell must be positive, got %.4f", units)
	}

	fund, err := s.validateTarget(ctx, userID, portfolioID, fundID)
	if err != nil {
		return nil, err
	}

	amount := utils.RoundMoney(units * fund.CurrentNAV)
	fees := utils.CalculateFee(amount, s.policy.SellFeeRate)

	return s.execute(ctx, &models.Transaction{
		UserID:          userID,
		PortfolioID:     portfolioID,
		FundID:          fundID,
		TransactionType: models.TransactionTypeSell,
		Amount:          amount,
		Units:           units,
		PricePerUnit:    fund.CurrentNAV,
		TransactionFees: fees,
		Status:          models.TransactionStatusPending,
		ReferenceNumber: utils.GenerateReferenceNumber(),
	}, fund, func(ctx context.Context) error {
		return s.applySellGuarded(ctx, portfolioID, fundID, units, fund.CurrentNAV)
	})
}

func (s *InvestmentService) GetUserTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	return s.transactionRepo.GetByUserID(ctx, userID, limit)
}

// validateTarget checks that the portfolio belongs to the user and that the
// fund is active and priceable.
func (s *InvestmentService) validateTarget(ctx context.Context, userID, portfolioID, fundID string) (*models.Fund, error) {
	portfolio, err := s.portfolioRepo.GetByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	if portfolio.UserID != userID {
		return nil, utils.NotFoundError("portfolio", portfolioID)
	}

	fund, err := s.fundService.GetFundByID(ctx, fundID)
	if err != nil {
		return nil, err
	}
	if !fund.IsActive {
		return nil, utils.ValidationError("fund %s is not open for transactions", fund.Symbol)
	}
	if fund.CurrentNAV <= 0 {
		return nil, utils.ValidationError("fund %s has no valid price", fund.Symbol)
	}
	return fund, nil
}

// execute runs steps 3-5 of the state machine: persist the pending
// transaction, apply the holding mutation, recompute the aggregate and settle.
// Any failure after the pending insert marks the transaction failed; the
// terminal state is sticky either way.
func (s *InvestmentService) execute(ctx context.Context, transaction *models.Transaction, fund *models.Fund, mutate func(context.Context) error) (*schemas.TransactionResult, error) {
	logger := utils.LoggerFromContext(ctx)
	started := time.Now()

	if err := s.transactionRepo.Create(ctx, transaction, nil); err != nil {
		return nil, err
	}

	fail := func(cause error) (*schemas.TransactionResult, error) {
		if markErr := s.transactionRepo.MarkFailed(ctx, transaction.ID); markErr != nil {
			logger.WithError(markErr).WithField("transaction_id", transaction.ID).
				Error("could not mark transaction failed")
		}
		transaction.Status = models.TransactionStatusFailed
		s.metrics.ObserveTransaction(transaction.TransactionType, models.TransactionStatusFailed, time.Since(started))
		return nil, cause
	}

	if err := s.withConflictRetry(ctx, mutate); err != nil {
		return fail(err)
	}

	// The holding is mutated from here on; the aggregate must follow.
	if err := s.portfolioService.RecomputeTotals(ctx, transaction.PortfolioID); err != nil {
		return fail(err)
	}
	if err := s.portfolioService.RecomputeAllocation(ctx, transaction.PortfolioID); err != nil {
		return fail(err)
	}

	settledAt := time.Now()
	if err := s.transactionRepo.MarkCompleted(ctx, transaction.ID, settledAt); err != nil {
		return nil, err
	}
	transaction.Status = models.TransactionStatusCompleted
	transaction.SettlementDate = &settledAt

	s.metrics.ObserveTransaction(transaction.TransactionType, models.TransactionStatusCompleted, time.Since(started))
	logger.WithField("reference", transaction.ReferenceNumber).
		WithField("type", transaction.TransactionType).
		WithField("units", transaction.Units).
		Info("transaction settled")

	return &schemas.TransactionResult{
		Transaction: transaction,
		Fund:        fund,
		Units:       transaction.Units,
		Fees:        transaction.TransactionFees,
	}, nil
}

// withConflictRetry reruns the mutation for a bounded number of version
// conflicts. Anything other than a conflict surfaces immediately.
func (s *InvestmentService) withConflictRetry(ctx context.Context, mutate func(context.Context) error) error {
	retries := s.policy.ConflictRetries
	if retries <= 0 {
		retries = 5
	}
	backoff := retry.WithMaxRetries(uint64(retries), retry.NewConstant(20*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := mutate(ctx)
		if errors.Is(err, utils.ErrConcurrencyConflict) {
			s.metrics.IncHoldingConflict()
			return retry.RetryableError(err)
		}
		return err
	})
}

// applyBuyGuarded performs one read-modify-write round of a buy. A lost race
// (concurrent insert or version bump) comes back as ErrConcurrencyConflict.
func (s *InvestmentService) applyBuyGuarded(ctx context.Context, userID, portfolioID, fundID string, amount, nav float64) error {
	holding, err := s.holdingRepo.GetByPortfolioAndFund(ctx, portfolioID, fundID)
	if errors.Is(err, utils.ErrNotFound) {
		fresh, buildErr := NewHoldingFromBuy(userID, portfolioID, fundID, amount, nav)
		if buildErr != nil {
			return buildErr
		}
		inserted, insertErr := s.holdingRepo.Insert(ctx, fresh)
		if insertErr != nil {
			return insertErr
		}
		if !inserted {
			// Another buy created the position first; redo as an update.
			return utils.ErrConcurrencyConflict
		}
		return nil
	}
	if err != nil {
		return err
	}

	expected := holding.Version
	if err := ApplyBuy(holding, amount, nav); err != nil {
		return err
	}
	return s.holdingRepo.UpdateGuarded(ctx, holding, expected)
}

func (s *InvestmentService) applySellGuarded(ctx context.Context, portfolioID, fundID string, units, nav float64) error {
	holding, err := s.holdingRepo.GetByPortfolioAndFund(ctx, portfolioID, fundID)
	if err != nil {
		return err
	}

	expected := holding.Version
	if err := ApplySell(holding, units, nav); err != nil {
		return err
	}
	return s.holdingRepo.UpdateGuarded(ctx, holding, expected)
}
