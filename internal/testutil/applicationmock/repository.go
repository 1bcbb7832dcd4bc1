package applicationmock

import (
	"context"
	"errors"

	domain "peerlend-backend/internal/domain/application"
)

var _ domain.Store = (*Store)(nil)

var errUnimplemented = errors.New("applicationmock: method not implemented")

// Store is a function-backed mock satisfying application.Store. Fill in the
// function fields a test needs; unfilled ones fail loudly.
type Store struct {
	CreateFn                   func(ctx context.Context, a *domain.LoanApplication) error
	GetByApplicationIDFn       func(ctx context.Context, applicationID string) (*domain.LoanApplication, error)
	GetByIDFn                  func(ctx context.Context, id uint64) (*domain.LoanApplication, error)
	GetByIDForUpdateFn         func(ctx context.Context, id uint64) (*domain.LoanApplication, error)
	ListOpenFn                 func(ctx context.Context, limit int) ([]*domain.LoanApplication, error)
	SaveFn                     func(ctx context.Context, a *domain.LoanApplication) error
	RecomputeFundingProgressFn func(ctx context.Context, id uint64, disbursedAmount float64) (*domain.LoanApplication, error)
}

func (m *Store) Create(ctx context.Context, a *domain.LoanApplication) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Store) GetByApplicationID(ctx context.Context, applicationID string) (*domain.LoanApplication, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, errUnimplemented
}

func (m *Store) GetByID(ctx context.Context, id uint64) (*domain.LoanApplication, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Store) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.LoanApplication, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Store) ListOpen(ctx context.Context, limit int) ([]*domain.LoanApplication, error) {
	if m.ListOpenFn != nil {
		return m.ListOpenFn(ctx, limit)
	}
	return nil, errUnimplemented
}

func (m *Store) Save(ctx context.Context, a *domain.LoanApplication) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Store) RecomputeFundingProgress(ctx context.Context, id uint64, disbursedAmount float64) (*domain.LoanApplication, error) {
	if m.RecomputeFundingProgressFn != nil {
		return m.RecomputeFundingProgressFn(ctx, id, disbursedAmount)
	}
	return nil, errUnimplemented
}
