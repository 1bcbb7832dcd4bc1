package mysql

import (
	"context"

	"peerlend-backend/internal/domain/application"
	"peerlend-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Applications: &ApplicationRepository{db: tx},
			Offers:       &OfferRepository{db: tx},
		}
		return fn(r)
	})
}

func (u *GormUoW) WithinApplicationTx(ctx context.Context, applicationID uint64, fn func(r uow.Repos, a *application.LoanApplication) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Applications: &ApplicationRepository{db: tx},
			Offers:       &OfferRepository{db: tx},
		}
		// lock the application row up-front so competing accepts serialize
		a, err := r.Applications.GetByIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}
