package notification

import "context"

// Relay is a best-effort side channel for state-change events. Implementations
// must never block a transition: errors are swallowed after logging.
type Relay interface {
	Notify(ctx context.Context, event, offerID string)
}

// Event names published on offer transitions.
const (
	EventOfferCreated   = "offer.created"
	EventOfferAccepted  = "offer.accepted"
	EventOfferRejected  = "offer.rejected"
	EventOfferDisbursed = "offer.disbursed"
)
