package offer

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type State string

const (
	StatePending   State = "pending"
	StateAccepted  State = "accepted"
	StateRejected  State = "rejected"
	StateDisbursed State = "disbursed"
)

// Terminal states admit no further transitions.
func (s State) Terminal() bool { return s == StateRejected || s == StateDisbursed }

var (
	ErrNotFound          = errors.New("offer not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid offer state transition")
	ErrUnauthorized      = errors.New("actor is not allowed to perform this transition")
	// ErrApplicationAlreadyFunded: another offer on the same application
	// already holds the accepted/disbursed slot.
	ErrApplicationAlreadyFunded = errors.New("application already has a winning offer")
	// ErrOfferAlreadyResolved: lost an optimistic-concurrency race on this
	// exact offer; re-read before retrying.
	ErrOfferAlreadyResolved = errors.New("offer was resolved by a concurrent request")
)

type LoanOffer struct {
	ID      uint64 `gorm:"primaryKey;column:id" json:"-"`
	OfferID string `gorm:"size:32;uniqueIndex:ux_offers_offer_id_active" json:"offer_id"`
	// Numeric FK to loan_applications.id; immutable after creation.
	LoanApplicationID   uint64  `gorm:"column:loan_application_id;not null;index:idx_offers_application_state" json:"-"`
	InvestorID          string  `gorm:"size:32;index:idx_offers_investor_active" json:"investor_id"`
	OfferedAmount       float64 `gorm:"type:decimal(18,2)" json:"offered_amount"`
	OfferedInterestRate float64 `gorm:"type:decimal(6,4)" json:"offered_interest_rate"`
	Message             string  `gorm:"type:text" json:"message,omitempty"`
	State               State   `gorm:"type:enum('pending','accepted','rejected','disbursed');default:'pending';index:idx_offers_application_state" json:"state"`
	// Payout instructions; both set at acceptance or both absent.
	PaymentMethod  string         `gorm:"size:32" json:"payment_method,omitempty"`
	PaymentNumber  string         `gorm:"size:32" json:"payment_number,omitempty"`
	StateUpdatedAt time.Time      `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy      string         `gorm:"size:32" json:"-"`
}

func (LoanOffer) TableName() string { return "loan_offers" }
