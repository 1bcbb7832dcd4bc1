package application

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusFunded   Status = "funded"
)

var (
	ErrNotFound     = errors.New("application not found")
	ErrNotOpen      = errors.New("application is not open for offers")
	ErrInvalidInput = errors.New("invalid input")
)

type LoanApplication struct {
	ID             uint64  `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID  string  `gorm:"size:32;uniqueIndex:ux_applications_application_id_active" json:"application_id"`
	BorrowerID     string  `gorm:"size:32;index:idx_applications_borrower_active" json:"borrower_id"`
	Amount         float64 `gorm:"type:decimal(18,2)" json:"amount"`
	InterestRate   float64 `gorm:"type:decimal(6,4)" json:"interest_rate"`
	DurationMonths int     `gorm:"column:duration_months" json:"duration_months"`
	Collateral     string  `gorm:"type:text" json:"collateral,omitempty"`
	Purpose        string  `gorm:"type:text" json:"purpose,omitempty"`
	Status         Status  `gorm:"type:enum('pending','approved','funded');default:'pending'" json:"status"`
	// FundedAmount is the sum of disbursed offer amounts; FundingProgress is
	// derived from it and never decreases while the application is open.
	FundedAmount    float64        `gorm:"type:decimal(18,2);default:0" json:"funded_amount"`
	FundingProgress float64        `gorm:"type:decimal(5,2);default:0" json:"funding_progress"`
	StateUpdatedAt  time.Time      `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy       string         `gorm:"size:32" json:"-"`
}

func (LoanApplication) TableName() string { return "loan_applications" }

// Open reports whether the application can still take offers.
func (a *LoanApplication) Open() bool { return a.Status != StatusFunded }

// ApplyDisbursement adds a disbursed offer amount to the funding numerator and
// recomputes the progress percentage, capped at 100. Reaching 100 flips the
// application to funded.
func (a *LoanApplication) ApplyDisbursement(amount float64, now time.Time) {
	a.FundedAmount += amount
	p := a.FundingProgress
	if a.Amount > 0 {
		p = 100 * a.FundedAmount / a.Amount
	}
	if p > 100 {
		p = 100
	}
	if p > a.FundingProgress {
		a.FundingProgress = p
	}
	if a.FundingProgress >= 100 {
		a.FundingProgress = 100
		a.Status = StatusFunded
		a.StateUpdatedAt = now.UTC()
	}
}
