package offer

type Event string

const (
	EventAccept   Event = "accept"
	EventReject   Event = "reject"
	EventDisburse Event = "disburse"
)

type Role string

const (
	RoleBorrower Role = "borrower"
	RoleInvestor Role = "investor"
)

// Payload carries the data an event needs beyond the offer itself.
type Payload struct {
	PaymentMethod string
	PaymentNumber string
}

// Transition is the pure state machine over offer lifecycles:
//
//	pending  --accept (borrower, payout details)-->  accepted
//	pending  --reject (borrower)                -->  rejected
//	accepted --disburse (owning investor)       -->  disbursed
//
// rejected and disbursed are terminal. Any (state, event) pair outside the
// table fails with ErrInvalidTransition; a listed pair attempted by the wrong
// role fails with ErrUnauthorized. The caller applies the returned state
// transactionally; nothing is mutated here.
//
// The sibling-exclusivity precondition on accept (no other offer on the
// application already accepted/disbursed) needs store reads and is enforced by
// the negotiation usecase, inside the same transaction as the write.
func Transition(o *LoanOffer, ev Event, role Role, p Payload) (State, error) {
	switch {
	case o.State == StatePending && ev == EventAccept:
		if role != RoleBorrower {
			return "", ErrUnauthorized
		}
		if p.PaymentMethod == "" || p.PaymentNumber == "" {
			return "", ErrInvalidInput
		}
		return StateAccepted, nil

	case o.State == StatePending && ev == EventReject:
		if role != RoleBorrower {
			return "", ErrUnauthorized
		}
		return StateRejected, nil

	case o.State == StateAccepted && ev == EventDisburse:
		if role != RoleInvestor {
			return "", ErrUnauthorized
		}
		// Accepted offers always carry payout details; guard anyway so a
		// malformed row can never reach the payment rail.
		if o.PaymentMethod == "" || o.PaymentNumber == "" {
			return "", ErrInvalidTransition
		}
		return StateDisbursed, nil
	}
	return "", ErrInvalidTransition
}
