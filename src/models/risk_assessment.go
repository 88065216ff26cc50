package models

import "time"

const (
	RiskCategoryConservative = "conservative"
	RiskCategoryModerate     = "moderate"
	RiskCategoryAggressive   = "aggressive"
)

// RiskAssessment is one submission of the questionnaire. Rows are append-only;
// the latest row by created_at is the authoritative profile for a user.
type RiskAssessment struct {
	ID                  string    `db:"id"`
	UserID              string    `db:"user_id"`
	EmploymentStatus    string    `db:"employment_status"`
	RiskTolerance       string    `db:"risk_tolerance"`
	InvestmentGoal      string    `db:"investment_goal"`
	FinancialExperience string    `db:"financial_experience"`
	InvestmentTimeline  string    `db:"investment_timeline"`
	LossTolerance       string    `db:"loss_tolerance"`
	IncomeSource        string    `db:"income_source"`
	CalculatedRiskScore int       `db:"calculated_risk_score"`
	RiskCategory        string    `db:"risk_category"`
	CreatedAt           time.Time `db:"created_at"`
}

// QuestionnaireAnswers is the raw questionnaire input. investment_goal and
// income_source are informational and do not contribute to the score.
type QuestionnaireAnswers struct {
	EmploymentStatus    string `json:"employment_status"`
	RiskTolerance       string `json:"risk_tolerance"`
	InvestmentGoal      string `json:"investment_goal"`
	FinancialExperience string `json:"financial_experience"`
	InvestmentTimeline  string `json:"investment_timeline"`
	LossTolerance       string `json:"loss_tolerance"`
	IncomeSource        string `json:"income_source"`
}
