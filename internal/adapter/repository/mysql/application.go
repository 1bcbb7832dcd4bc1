package mysql

import (
	"context"
	"errors"
	"time"

	applicationDomain "peerlend-backend/internal/domain/application"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *applicationDomain.LoanApplication) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *applicationDomain.LoanApplication) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*applicationDomain.LoanApplication, error) {
	var out applicationDomain.LoanApplication
	res := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uint64) (*applicationDomain.LoanApplication, error) {
	var out applicationDomain.LoanApplication
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

// GetByIDForUpdate takes a row lock; only meaningful inside a transaction.
// sqlite (used by tests) has no row locks and rejects FOR UPDATE, so the
// clause is skipped there; its writes are single-connection anyway.
func (r *ApplicationRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*applicationDomain.LoanApplication, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out applicationDomain.LoanApplication
	res := q.Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) ListOpen(ctx context.Context, limit int) ([]*applicationDomain.LoanApplication, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []*applicationDomain.LoanApplication
	res := r.db.WithContext(ctx).
		Where("status <> ?", applicationDomain.StatusFunded).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) RecomputeFundingProgress(ctx context.Context, id uint64, disbursedAmount float64) (*applicationDomain.LoanApplication, error) {
	a, err := r.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, applicationDomain.ErrNotFound
		}
		return nil, err
	}
	a.ApplyDisbursement(disbursedAmount, time.Now())
	if err := r.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
