package offer

import "context"

// Patch is the set of optional column updates applied together with a state
// transition. Nil fields are left untouched.
type Patch struct {
	PaymentMethod *string
	PaymentNumber *string
}

type Store interface {
	Create(ctx context.Context, o *LoanOffer) error
	GetByOfferID(ctx context.Context, offerID string) (*LoanOffer, error)
	ListByApplication(ctx context.Context, applicationID uint64) ([]*LoanOffer, error)
	// FindCommittedByApplication returns the accepted/disbursed offer on the
	// application, or gorm.ErrRecordNotFound when the slot is free.
	FindCommittedByApplication(ctx context.Context, applicationID uint64) (*LoanOffer, error)
	// CompareAndTransition applies the state change only if the stored state
	// still equals expected (single-statement compare-and-set). Returns
	// ErrOfferAlreadyResolved when the state moved underneath the caller.
	CompareAndTransition(ctx context.Context, offerID string, expected, next State, patch Patch) (*LoanOffer, error)
}
