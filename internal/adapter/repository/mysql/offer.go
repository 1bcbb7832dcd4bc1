package mysql

import (
	"context"
	"errors"
	"time"

	offerDomain "peerlend-backend/internal/domain/offer"

	"gorm.io/gorm"
)

type OfferRepository struct{ db *gorm.DB }

func NewOfferRepository(db *gorm.DB) *OfferRepository { return &OfferRepository{db: db} }

func (r *OfferRepository) Create(ctx context.Context, o *offerDomain.LoanOffer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OfferRepository) GetByOfferID(ctx context.Context, offerID string) (*offerDomain.LoanOffer, error) {
	var out offerDomain.LoanOffer
	res := r.db.WithContext(ctx).Where("offer_id = ?", offerID).First(&out)
	return &out, res.Error
}

func (r *OfferRepository) ListByApplication(ctx context.Context, applicationID uint64) ([]*offerDomain.LoanOffer, error) {
	var out []*offerDomain.LoanOffer
	res := r.db.WithContext(ctx).
		Where("loan_application_id = ?", applicationID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *OfferRepository) FindCommittedByApplication(ctx context.Context, applicationID uint64) (*offerDomain.LoanOffer, error) {
	var out offerDomain.LoanOffer
	res := r.db.WithContext(ctx).
		Where("loan_application_id = ? AND state IN ?", applicationID,
			[]offerDomain.State{offerDomain.StateAccepted, offerDomain.StateDisbursed}).
		First(&out)
	return &out, res.Error
}

// CompareAndTransition is a single-statement compare-and-set: the update only
// lands if the stored state still equals expected. RowsAffected disambiguates
// a lost race from a missing offer.
func (r *OfferRepository) CompareAndTransition(ctx context.Context, offerID string, expected, next offerDomain.State, patch offerDomain.Patch) (*offerDomain.LoanOffer, error) {
	updates := map[string]any{
		"state":            next,
		"state_updated_at": time.Now().UTC(),
	}
	if patch.PaymentMethod != nil {
		updates["payment_method"] = *patch.PaymentMethod
	}
	if patch.PaymentNumber != nil {
		updates["payment_number"] = *patch.PaymentNumber
	}

	res := r.db.WithContext(ctx).
		Model(&offerDomain.LoanOffer{}).
		Where("offer_id = ? AND state = ?", offerID, expected).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByOfferID(ctx, offerID); errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, offerDomain.ErrNotFound
		} else if err != nil {
			return nil, err
		}
		return nil, offerDomain.ErrOfferAlreadyResolved
	}
	return r.GetByOfferID(ctx, offerID)
}
