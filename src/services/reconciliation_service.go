package services

import (
	"context"
	"time"

	"invest/src/monitoring"
	"invest/src/repositories"
	"invest/src/utils"
)

// ReconciliationService resolves transactions stuck in pending beyond the
// configured timeout. Failed is terminal; a swept transaction is never
// resurrected to completed.
type ReconciliationService struct {
	transactionRepo repositories.TransactionRepository
	pendingTimeout  time.Duration
	metrics         *monitoring.Metrics
}

func NewReconciliationService(transactionRepo repositories.TransactionRepository, pendingTimeout time.Duration, metrics *monitoring.Metrics) *ReconciliationService {
	return &ReconciliationService{
		transactionRepo: transactionRepo,
		pendingTimeout:  pendingTimeout,
		metrics:         metrics,
	}
}

// FailStalePending marks every transaction pending longer than the timeout as
// failed and returns how many were swept.
func (s *ReconciliationService) FailStalePending(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.pendingTimeout)
	swept, err := s.transactionRepo.FailStalePending(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if swept > 0 {
		s.metrics.AddReconciled(swept)
		utils.LoggerFromContext(ctx).WithField("count", swept).
			Warn("failed stale pending transactions")
	}
	return swept, nil
}
