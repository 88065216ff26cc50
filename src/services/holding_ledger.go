package services

import (
	"invest/src/models"
	"invest/src/utils"
)

// ApplyBuy folds a purchase into a holding. The cost basis is a weighted
// average: every buy shifts average_buy_price to total_invested/units_held.
func ApplyBuy(h *models.Holding, amount, nav float64) error {
	if nav <= 0 {
		return utils.ValidationError("fund NAV must be positive, got %.4f", nav)
	}
	if amount <= 0 {
		return utils.ValidationError("buy amount must be positive, got %.2f", amount)
	}

	units := amount / nav
	h.UnitsHeld += units
	h.TotalInvested += amount
	h.AverageBuyPrice = h.TotalInvested / h.UnitsHeld
	h.CurrentValue = h.UnitsHeld * nav
	h.UnrealizedGainLoss = h.CurrentValue - h.TotalInvested
	return nil
}

// ApplySell removes units from a holding. The invested amount scales down
// proportionally with the units sold, which leaves the average cost basis
// unchanged; only buys move the weighted average.
func ApplySell(h *models.Holding, units, nav float64) error {
	if nav <= 0 {
		return utils.ValidationError("fund NAV must be positive, got %.4f", nav)
	}
	if units <= 0 {
		return utils.ValidationError("units to sell must be positive, got %.4f", units)
	}
	if units > h.UnitsHeld {
		return utils.InsufficientUnitsError(units, h.UnitsHeld)
	}

	remaining := h.UnitsHeld - units
	if h.UnitsHeld > 0 {
		h.TotalInvested = h.TotalInvested * (remaining / h.UnitsHeld)
	}
	h.UnitsHeld = remaining
	if h.UnitsHeld == 0 {
		h.TotalInvested = 0
	}
	h.CurrentValue = h.UnitsHeld * nav
	h.UnrealizedGainLoss = h.CurrentValue - h.TotalInvested
	return nil
}

// NewHoldingFromBuy builds the initial position created by a first buy.
func NewHoldingFromBuy(userID, portfolioID, fundID string, amount, nav float64) (*models.Holding, error) {
	if nav <= 0 {
		return nil, utils.ValidationError("fund NAV must be positive, got %.4f", nav)
	}
	if amount <= 0 {
		return nil, utils.ValidationError("buy amount must be positive, got %.2f", amount)
	}
	return &models.Holding{
		UserID:             userID,
		PortfolioID:        portfolioID,
		FundID:             fundID,
		UnitsHeld:          amount / nav,
		AverageBuyPrice:    nav,
		TotalInvested:      amount,
		CurrentValue:       amount,
		UnrealizedGainLoss: 0,
	}, nil
}
