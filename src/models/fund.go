package models

import "time"

type Fund struct {
	ID                string    `db:"id"`
	Name              string    `db:"name"`
	Symbol            string    `db:"symbol"`
	FundType          string    `db:"fund_type"`
	Description       string    `db:"description"`
	MinimumInvestment float64   `db:"minimum_investment"`
	CurrentNAV        float64   `db:"current_nav"`
	Currency          string    `db:"currency"`
	YTDReturn         float64   `db:"ytd_return"`
	OneYearReturn     float64   `db:"one_year_return"`
	RiskRating        string    `db:"risk_rating"`
	IsActive          bool      `db:"is_active"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}
