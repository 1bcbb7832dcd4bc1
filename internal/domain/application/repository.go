package application

import "context"

type Store interface {
	Create(ctx context.Context, a *LoanApplication) error
	GetByApplicationID(ctx context.Context, applicationID string) (*LoanApplication, error)
	// GetByID looks up by numeric PK (offers carry the numeric FK).
	GetByID(ctx context.Context, id uint64) (*LoanApplication, error)
	// GetByIDForUpdate locks the application row; accepts on the same
	// application serialize on this lock.
	GetByIDForUpdate(ctx context.Context, id uint64) (*LoanApplication, error)
	ListOpen(ctx context.Context, limit int) ([]*LoanApplication, error)
	Save(ctx context.Context, a *LoanApplication) error
	// RecomputeFundingProgress adds disbursedAmount to the funding numerator
	// under a row lock. Must run inside the same transaction as the owning
	// offer's transition to disbursed.
	RecomputeFundingProgress(ctx context.Context, id uint64, disbursedAmount float64) (*LoanApplication, error)
}
