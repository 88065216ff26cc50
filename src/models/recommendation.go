package models

import "time"

// Recommendation is a derived allocation proposal. At most one row per user
// has IsActive=true; generating a new one deactivates all prior rows.
type Recommendation struct {
	ID                    string     `db:"id"`
	UserID                string     `db:"user_id"`
	RecommendedAllocation Allocation `db:"recommended_allocation"`
	Reasoning             string     `db:"reasoning"`
	ExpectedReturn        float64    `db:"expected_return"`
	RiskScore             int        `db:"risk_score"`
	RecommendationType    string     `db:"recommendation_type"`
	IsActive              bool       `db:"is_active"`
	ExpiresAt             time.Time  `db:"expires_at"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
}
