package models

import "time"

// Holding is a position in one fund within one portfolio. The (portfolio_id,
// fund_id) pair is unique. Version is bumped on every mutation and guards the
// read-modify-write cycle in the transaction processor.
type Holding struct {
	ID                 string    `db:"id"`
	UserID             string    `db:"user_id"`
	PortfolioID        string    `db:"portfolio_id"`
	FundID             string    `db:"fund_id"`
	UnitsHeld          float64   `db:"units_held"`
	AverageBuyPrice    float64   `db:"average_buy_price"`
	TotalInvested      float64   `db:"total_invested"`
	CurrentValue       float64   `db:"current_value"`
	UnrealizedGainLoss float64   `db:"unrealized_gain_loss"`
	Version            int64     `db:"version"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// HoldingWithFund joins the holding with the reference data the allocation
// recompute and the portfolio detail view need.
type HoldingWithFund struct {
	Holding
	FundName   string  `db:"fund_name"`
	FundSymbol string  `db:"fund_symbol"`
	FundType   string  `db:"fund_type"`
	CurrentNAV float64 `db:"current_nav"`
}
