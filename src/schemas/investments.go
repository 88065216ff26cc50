package schemas

import (
	"invest/src/models"
)

// SubmitAssessmentRequest is the questionnaire payload.
type SubmitAssessmentRequest struct {
	models.QuestionnaireAnswers
}

type AssessmentResponse struct {
	Assessment *models.RiskAssessment `json:"assessment"`
	Allocation models.Allocation      `json:"recommended_allocation"`
}

type CreatePortfolioRequest struct {
	PortfolioName    string             `json:"portfolio_name"`
	CustomAllocation *models.Allocation `json:"custom_allocation,omitempty"`
}

type UpdateAllocationRequest struct {
	Allocation models.Allocation `json:"allocation"`
}

// AllocationComparison pairs the desired split with the one the holdings
// actually realize.
type AllocationComparison struct {
	Target  models.Allocation `json:"target"`
	Current models.Allocation `json:"current"`
	Drift   models.Allocation `json:"drift"`
}

type PortfolioDetail struct {
	Portfolio            models.Portfolio         `json:"portfolio"`
	Holdings             []models.HoldingWithFund `json:"holdings"`
	AllocationComparison AllocationComparison     `json:"allocation_comparison"`
}

type InvestRequest struct {
	FundID string  `json:"fund_id"`
	Amount float64 `json:"amount"`
}

type RedeemRequest struct {
	FundID string  `json:"fund_id"`
	Units  float64 `json:"units"`
}

// TransactionResult is what the transaction processor hands back to the
// presentation layer.
type TransactionResult struct {
	Transaction *models.Transaction `json:"transaction"`
	Fund        *models.Fund        `json:"fund"`
	Units       float64             `json:"units"`
	Fees        float64             `json:"fees"`
}

type RecommendationResponse struct {
	Recommendation *models.Recommendation `json:"recommendation"`
}
