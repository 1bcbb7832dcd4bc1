package negotiation

import (
	"time"

	domainOffer "peerlend-backend/internal/domain/offer"
)

type CreateOfferInput struct {
	ApplicationID string  `json:"application_id"`
	InvestorID    string  `json:"investor_id"`
	Amount        float64 `json:"amount"`
	InterestRate  float64 `json:"interest_rate"`
	Message       string  `json:"message"`
}

type AcceptOfferInput struct {
	OfferID       string `json:"offer_id"`
	BorrowerID    string `json:"borrower_id"`
	PaymentMethod string `json:"payment_method"`
	PaymentNumber string `json:"payment_number"`
}

type OfferDTO struct {
	OfferID             string    `json:"offer_id"`
	ApplicationID       string    `json:"application_id"`
	InvestorID          string    `json:"investor_id"`
	OfferedAmount       float64   `json:"offered_amount"`
	OfferedInterestRate float64   `json:"offered_interest_rate"`
	Message             string    `json:"message,omitempty"`
	State               string    `json:"state"`
	PaymentMethod       string    `json:"payment_method,omitempty"`
	PaymentNumber       string    `json:"payment_number,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// OfferListDTO groups an application's offers by state for presentation.
type OfferListDTO struct {
	ApplicationID   string      `json:"application_id"`
	FundingProgress float64     `json:"funding_progress"`
	Pending         []*OfferDTO `json:"pending"`
	Accepted        []*OfferDTO `json:"accepted"`
	Disbursed       []*OfferDTO `json:"disbursed"`
	Rejected        []*OfferDTO `json:"rejected"`
}

// DisburseResultDTO returns the disbursed offer plus the application's updated
// funding aggregate.
type DisburseResultDTO struct {
	Offer             *OfferDTO `json:"offer"`
	FundingProgress   float64   `json:"funding_progress"`
	ApplicationStatus string    `json:"application_status"`
}

func toDTO(o *domainOffer.LoanOffer, applicationID string) *OfferDTO {
	return &OfferDTO{
		OfferID:             o.OfferID,
		ApplicationID:       applicationID,
		InvestorID:          o.InvestorID,
		OfferedAmount:       o.OfferedAmount,
		OfferedInterestRate: o.OfferedInterestRate,
		Message:             o.Message,
		State:               string(o.State),
		PaymentMethod:       o.PaymentMethod,
		PaymentNumber:       o.PaymentNumber,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}
