package models

import "time"

type Portfolio struct {
	ID                 string     `db:"id"`
	UserID             string     `db:"user_id"`
	PortfolioName      string     `db:"portfolio_name"`
	TargetAllocation   Allocation `db:"target_allocation"`
	CurrentAllocation  Allocation `db:"current_allocation"`
	TotalInvested      float64    `db:"total_invested"`
	CurrentValue       float64    `db:"current_value"`
	TotalReturn        float64    `db:"total_return"`
	ReturnPercentage   float64    `db:"return_percentage"`
	AutoRebalance      bool       `db:"auto_rebalance"`
	RebalanceThreshold float64    `db:"rebalance_threshold"`
	IsActive           bool       `db:"is_active"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}
