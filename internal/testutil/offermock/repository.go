package offermock

import (
	"context"
	"errors"

	domain "peerlend-backend/internal/domain/offer"
)

var _ domain.Store = (*Store)(nil)

var errUnimplemented = errors.New("offermock: method not implemented")

// Store is a function-backed mock satisfying offer.Store.
type Store struct {
	CreateFn                     func(ctx context.Context, o *domain.LoanOffer) error
	GetByOfferIDFn               func(ctx context.Context, offerID string) (*domain.LoanOffer, error)
	ListByApplicationFn          func(ctx context.Context, applicationID uint64) ([]*domain.LoanOffer, error)
	FindCommittedByApplicationFn func(ctx context.Context, applicationID uint64) (*domain.LoanOffer, error)
	CompareAndTransitionFn       func(ctx context.Context, offerID string, expected, next domain.State, patch domain.Patch) (*domain.LoanOffer, error)
}

func (m *Store) Create(ctx context.Context, o *domain.LoanOffer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *Store) GetByOfferID(ctx context.Context, offerID string) (*domain.LoanOffer, error) {
	if m.GetByOfferIDFn != nil {
		return m.GetByOfferIDFn(ctx, offerID)
	}
	return nil, errUnimplemented
}

func (m *Store) ListByApplication(ctx context.Context, applicationID uint64) ([]*domain.LoanOffer, error) {
	if m.ListByApplicationFn != nil {
		return m.ListByApplicationFn(ctx, applicationID)
	}
	return nil, errUnimplemented
}

func (m *Store) FindCommittedByApplication(ctx context.Context, applicationID uint64) (*domain.LoanOffer, error) {
	if m.FindCommittedByApplicationFn != nil {
		return m.FindCommittedByApplicationFn(ctx, applicationID)
	}
	return nil, errUnimplemented
}

func (m *Store) CompareAndTransition(ctx context.Context, offerID string, expected, next domain.State, patch domain.Patch) (*domain.LoanOffer, error) {
	if m.CompareAndTransitionFn != nil {
		return m.CompareAndTransitionFn(ctx, offerID, expected, next, patch)
	}
	return nil, errUnimplemented
}
