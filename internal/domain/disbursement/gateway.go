package disbursement

import (
	"context"
	"errors"
)

// ErrTransfer wraps any gateway failure surfaced to the investor. The offer
// stays accepted and Disburse may be retried.
var ErrTransfer = errors.New("disbursement transfer failed")

// TransferRequest moves an accepted offer's funds to the borrower's payout
// destination. OfferID doubles as the idempotency key on the payment rail.
type TransferRequest struct {
	OfferID       string
	PaymentMethod string
	PaymentNumber string
	Amount        float64
}

// Gateway is the external payment rail. Transfer must be idempotent per
// OfferID so a failed or timed-out disbursement can be retried safely.
type Gateway interface {
	Transfer(ctx context.Context, req TransferRequest) error
}
