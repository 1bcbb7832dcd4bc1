package application

import (
	"context"
	"errors"
	"time"

	domain "peerlend-backend/internal/domain/application"
	"peerlend-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct{ repo domain.Store }

func NewUsecase(r domain.Store) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) Submit(ctx context.Context, in SubmitApplicationInput) (*ApplicationDTO, error) {
	if len(in.BorrowerID) != 32 || in.Amount <= 0 || in.DurationMonths <= 0 || in.InterestRate < 0 {
		return nil, domain.ErrInvalidInput
	}

	a := &domain.LoanApplication{
		ApplicationID:  id.NewID32(),
		BorrowerID:     in.BorrowerID,
		Amount:         in.Amount,
		InterestRate:   in.InterestRate,
		DurationMonths: in.DurationMonths,
		Collateral:     in.Collateral,
		Purpose:        in.Purpose,
		Status:         domain.StatusPending,
		StateUpdatedAt: time.Now().UTC(),
	}
	if err := u.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	a, err := u.repo.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(a), nil
}

func (u *Usecase) ListOpen(ctx context.Context, limit int) ([]*ApplicationDTO, error) {
	list, err := u.repo.ListOpen(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*ApplicationDTO, 0, len(list))
	for _, a := range list {
		out = append(out, toDTO(a))
	}
	return out, nil
}

func toDTO(a *domain.LoanApplication) *ApplicationDTO {
	return &ApplicationDTO{
		ApplicationID:   a.ApplicationID,
		BorrowerID:      a.BorrowerID,
		Amount:          a.Amount,
		InterestRate:    a.InterestRate,
		DurationMonths:  a.DurationMonths,
		Collateral:      a.Collateral,
		Purpose:         a.Purpose,
		Status:          string(a.Status),
		FundingProgress: a.FundingProgress,
		CreatedAt:       a.CreatedAt,
	}
}
