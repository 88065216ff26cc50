package utils

import (
	"errors"
	"fmt"
)

// Sentinel domain errors. Services return these (usually wrapped with
// context via fmt.Errorf and %w) and the API layer maps them to HTTP codes.
var (
	ErrValidation             = errors.New("validation error")
	ErrNotFound               = errors.New("not found")
	ErrInsufficientUnits      = errors.New("insufficient units")
	ErrBelowMinimumInvestment = errors.New("below minimum investment")
	ErrRiskAssessmentRequired = errors.New("risk assessment required")
	ErrConcurrencyConflict    = errors.New("concurrency conflict")
	ErrPersistenceFailure     = errors.New("persistence failure")
)

// ValidationError builds a caller-recoverable input error.
func ValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundError reports a missing entity by kind and id.
func NotFoundError(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

// InsufficientUnitsError reports a sell that exceeds the position.
func InsufficientUnitsError(requested, held float64) error {
	return fmt.Errorf("%w: requested %.4f units but only %.4f held", ErrInsufficientUnits, requested, held)
}

// BelowMinimumInvestmentError carries the offending minimum in the message.
func BelowMinimumInvestmentError(minimum float64) error {
	return fmt.Errorf("%w: minimum investment amount is %.2f", ErrBelowMinimumInvestment, minimum)
}

// PersistenceError wraps a storage failure. Not retried by this core.
func PersistenceError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
}
