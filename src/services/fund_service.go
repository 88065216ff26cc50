package services

import (
	"context"
	"time"

	"invest/src/models"
	"invest/src/repositories"
	redis_utils "invest/src/utils/redis"
)

type FundServiceI interface {
	GetFundByID(ctx context.Context, id string) (*models.Fund, error)
	GetFundsByType(ctx context.Context, fundType string) ([]models.Fund, error)
	ListFunds(ctx context.Context) ([]models.Fund, error)
}

// FundService is a read-mostly catalog over the fund repository with an
// optional redis cache in front of per-fund lookups. NAV updates come from an
// external price feed and are not served stale beyond the cache TTL.
type FundService struct {
	fundRepo repositories.FundRepository
	cache    *redis_utils.RedisHandler
	cacheTTL time.Duration
}

func NewFundService(fundRepo repositories.FundRepository, cache *redis_utils.RedisHandler, cacheTTL time.Duration) *FundService {
	return &FundService{fundRepo: fundRepo, cache: cache, cacheTTL: cacheTTL}
}

func (s *FundService) GetFundByID(ctx context.Context, id string) (*models.Fund, error) {
	cacheKey := "fund:" + id
	if s.cache != nil {
		var cached models.Fund
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	fund, err := s.fundRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		// Cache write failures are not worth failing the lookup over.
		_ = s.cache.Set(ctx, cacheKey, fund, s.cacheTTL)
	}
	return fund, nil
}

func (s *FundService) GetFundsByType(ctx context.Context, fundType string) ([]models.Fund, error) {
	return s.fundRepo.GetByType(ctx, fundType)
}

func (s *FundService) ListFunds(ctx context.Context) ([]models.Fund, error) {
	return s.fundRepo.GetAllActive(ctx)
}
