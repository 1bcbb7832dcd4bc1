package uow

import (
	"context"

	"peerlend-backend/internal/domain/application"
	"peerlend-backend/internal/domain/offer"
)

type Repos struct {
	Applications application.Store
	Offers       offer.Store
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the application row first, then pass it in; all
	// accepts on one application serialize on this lock
	WithinApplicationTx(ctx context.Context, applicationID uint64, fn func(r Repos, a *application.LoanApplication) error) error
}
