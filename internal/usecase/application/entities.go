package application

import "time"

type SubmitApplicationInput struct {
	BorrowerID     string  `json:"borrower_id"`
	Amount         float64 `json:"amount"`
	InterestRate   float64 `json:"interest_rate"`
	DurationMonths int     `json:"duration_months"`
	Collateral     string  `json:"collateral"`
	Purpose        string  `json:"purpose"`
}

type ApplicationDTO struct {
	ApplicationID   string    `json:"application_id"`
	BorrowerID      string    `json:"borrower_id"`
	Amount          float64   `json:"amount"`
	InterestRate    float64   `json:"interest_rate"`
	DurationMonths  int       `json:"duration_months"`
	Collateral      string    `json:"collateral,omitempty"`
	Purpose         string    `json:"purpose,omitempty"`
	Status          string    `json:"status"`
	FundingProgress float64   `json:"funding_progress"`
	CreatedAt       time.Time `json:"created_at"`
}
