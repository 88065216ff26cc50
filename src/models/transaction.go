package models

import "time"

const (
	TransactionTypeBuy      = "buy"
	TransactionTypeSell     = "sell"
	TransactionTypeDividend = "dividend"
)

const (
	TransactionStatusPending    = "pending"
	TransactionStatusProcessing = "processing"
	TransactionStatusCompleted  = "completed"
	TransactionStatusFailed     = "failed"
)

// Transaction is an append-only ledger entry. Once it reaches a terminal
// status (completed or failed) it is never transitioned again.
type Transaction struct {
	ID              string     `db:"id"`
	UserID          string     `db:"user_id"`
	PortfolioID     string     `db:"portfolio_id"`
	FundID          string     `db:"fund_id"`
	TransactionType string     `db:"transaction_type"`
	Amount          float64    `db:"amount"`
	Units           float64    `db:"units"`
	PricePerUnit    float64    `db:"price_per_unit"`
	TransactionFees float64    `db:"transaction_fees"`
	Status          string     `db:"status"`
	ReferenceNumber string     `db:"reference_number"`
	TransactionDate time.Time  `db:"transaction_date"`
	SettlementDate  *time.Time `db:"settlement_date"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// IsTerminal reports whether the status admits no further transitions.
func IsTerminalStatus(status string) bool {
	return status == TransactionStatusCompleted || status == TransactionStatusFailed
}
