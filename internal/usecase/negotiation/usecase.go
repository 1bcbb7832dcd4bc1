package negotiation

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainApp "peerlend-backend/internal/domain/application"
	"peerlend-backend/internal/domain/disbursement"
	"peerlend-backend/internal/domain/notification"
	domainOffer "peerlend-backend/internal/domain/offer"
	"peerlend-backend/internal/domain/uow"
	"peerlend-backend/pkg/id"

	"gorm.io/gorm"
)

// Usecase drives the offer negotiation lifecycle: create, accept (with payout
// details), reject, disburse. It owns the exclusivity invariant — at most one
// accepted/disbursed offer per application — by running the sibling check and
// the compare-and-set write inside one transaction that holds the application
// row lock.
type Usecase struct {
	apps    domainApp.Store
	offers  domainOffer.Store
	uow     uow.UnitOfWork
	gateway disbursement.Gateway
	relay   notification.Relay
}

func NewUsecase(apps domainApp.Store, offers domainOffer.Store, tx uow.UnitOfWork, gw disbursement.Gateway, relay notification.Relay) *Usecase {
	return &Usecase{apps: apps, offers: offers, uow: tx, gateway: gw, relay: relay}
}

// CreateOffer records an investor's pending offer against an open application.
// Many pending offers may coexist; no exclusivity check happens here.
func (u *Usecase) CreateOffer(ctx context.Context, in CreateOfferInput) (*OfferDTO, error) {
	if len(in.InvestorID) != 32 || in.Amount <= 0 || in.InterestRate < 0 {
		return nil, domainOffer.ErrInvalidInput
	}

	a, err := u.apps.GetByApplicationID(ctx, in.ApplicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainApp.ErrNotFound
		}
		return nil, err
	}
	if !a.Open() {
		return nil, domainApp.ErrNotOpen
	}

	o := &domainOffer.LoanOffer{
		OfferID:             id.NewID32(),
		LoanApplicationID:   a.ID,
		InvestorID:          in.InvestorID,
		OfferedAmount:       in.Amount,
		OfferedInterestRate: in.InterestRate,
		Message:             in.Message,
		State:               domainOffer.StatePending,
		StateUpdatedAt:      time.Now().UTC(),
	}
	if err := u.offers.Create(ctx, o); err != nil {
		return nil, err
	}

	u.notify(notification.EventOfferCreated, o.OfferID)
	return toDTO(o, a.ApplicationID), nil
}

// AcceptOffer commits the borrower to one offer and records the payout
// destination. The application row lock serializes competing accepts; the
// sibling check and the pending→accepted compare-and-set land in the same
// transaction, so exactly one accept per application can win.
func (u *Usecase) AcceptOffer(ctx context.Context, in AcceptOfferInput) (*OfferDTO, error) {
	if len(in.BorrowerID) != 32 {
		return nil, domainOffer.ErrInvalidInput
	}

	o, err := u.getOffer(ctx, in.OfferID)
	if err != nil {
		return nil, err
	}

	var dto *OfferDTO
	err = u.uow.WithinApplicationTx(ctx, o.LoanApplicationID, func(r uow.Repos, a *domainApp.LoanApplication) error {
		if a.BorrowerID != in.BorrowerID {
			return domainOffer.ErrUnauthorized
		}
		if !a.Open() {
			return domainOffer.ErrApplicationAlreadyFunded
		}

		// re-read under the application lock
		cur, err := r.Offers.GetByOfferID(ctx, in.OfferID)
		if err != nil {
			return err
		}
		next, err := domainOffer.Transition(cur, domainOffer.EventAccept, domainOffer.RoleBorrower, domainOffer.Payload{
			PaymentMethod: in.PaymentMethod,
			PaymentNumber: in.PaymentNumber,
		})
		if err != nil {
			return err
		}

		sib, err := r.Offers.FindCommittedByApplication(ctx, a.ID)
		switch {
		case err == nil:
			if sib.OfferID != cur.OfferID {
				return domainOffer.ErrApplicationAlreadyFunded
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		updated, err := r.Offers.CompareAndTransition(ctx, cur.OfferID, domainOffer.StatePending, next, domainOffer.Patch{
			PaymentMethod: &in.PaymentMethod,
			PaymentNumber: &in.PaymentNumber,
		})
		if err != nil {
			return err
		}
		dto = toDTO(updated, a.ApplicationID)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainOffer.ErrNotFound
		}
		return nil, err
	}

	u.notify(notification.EventOfferAccepted, dto.OfferID)
	return dto, nil
}

// RejectOffer declines a pending offer. Rejecting an already-rejected offer is
// a no-op success; rejecting an accepted or disbursed offer is an invalid
// transition.
func (u *Usecase) RejectOffer(ctx context.Context, offerID, borrowerID string) (*OfferDTO, error) {
	if len(borrowerID) != 32 {
		return nil, domainOffer.ErrInvalidInput
	}

	var dto *OfferDTO
	changed := false
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		o, err := r.Offers.GetByOfferID(ctx, offerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainOffer.ErrNotFound
			}
			return err
		}
		a, err := r.Applications.GetByID(ctx, o.LoanApplicationID)
		if err != nil {
			return err
		}
		if a.BorrowerID != borrowerID {
			return domainOffer.ErrUnauthorized
		}
		if o.State == domainOffer.StateRejected {
			dto = toDTO(o, a.ApplicationID)
			return nil
		}
		next, err := domainOffer.Transition(o, domainOffer.EventReject, domainOffer.RoleBorrower, domainOffer.Payload{})
		if err != nil {
			return err
		}
		updated, err := r.Offers.CompareAndTransition(ctx, offerID, domainOffer.StatePending, next, domainOffer.Patch{})
		if err != nil {
			return err
		}
		dto = toDTO(updated, a.ApplicationID)
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		u.notify(notification.EventOfferRejected, dto.OfferID)
	}
	return dto, nil
}

// Disburse moves the funds of an accepted offer to the borrower and marks the
// offer disbursed. The gateway call runs outside any application lock and the
// rail dedupes on offer id, so a failed or timed-out attempt leaves the offer
// accepted and is safe to retry. Offer transition and funding-progress
// recompute commit in one transaction.
func (u *Usecase) Disburse(ctx context.Context, offerID, investorID string) (*DisburseResultDTO, error) {
	if len(investorID) != 32 {
		return nil, domainOffer.ErrInvalidInput
	}

	o, err := u.getOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	a, err := u.apps.GetByID(ctx, o.LoanApplicationID)
	if err != nil {
		return nil, err
	}
	if o.InvestorID != investorID {
		return nil, domainOffer.ErrUnauthorized
	}
	if o.State == domainOffer.StateDisbursed {
		// retry after a committed disbursement: no-op success
		return &DisburseResultDTO{
			Offer:             toDTO(o, a.ApplicationID),
			FundingProgress:   a.FundingProgress,
			ApplicationStatus: string(a.Status),
		}, nil
	}
	if _, err := domainOffer.Transition(o, domainOffer.EventDisburse, domainOffer.RoleInvestor, domainOffer.Payload{}); err != nil {
		return nil, err
	}

	if err := u.gateway.Transfer(ctx, disbursement.TransferRequest{
		OfferID:       o.OfferID,
		PaymentMethod: o.PaymentMethod,
		PaymentNumber: o.PaymentNumber,
		Amount:        o.OfferedAmount,
	}); err != nil {
		// offer stays accepted; nothing has been written
		return nil, fmt.Errorf("%w: %v", disbursement.ErrTransfer, err)
	}

	var dto *DisburseResultDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		updated, err := r.Offers.CompareAndTransition(ctx, offerID, domainOffer.StateAccepted, domainOffer.StateDisbursed, domainOffer.Patch{})
		if err != nil {
			return err
		}
		app, err := r.Applications.RecomputeFundingProgress(ctx, updated.LoanApplicationID, updated.OfferedAmount)
		if err != nil {
			return err
		}
		dto = &DisburseResultDTO{
			Offer:             toDTO(updated, app.ApplicationID),
			FundingProgress:   app.FundingProgress,
			ApplicationStatus: string(app.Status),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notify(notification.EventOfferDisbursed, dto.Offer.OfferID)
	return dto, nil
}

// ListOffers returns an application's offers grouped by state.
func (u *Usecase) ListOffers(ctx context.Context, applicationID string) (*OfferListDTO, error) {
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainApp.ErrNotFound
		}
		return nil, err
	}
	list, err := u.offers.ListByApplication(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	out := &OfferListDTO{
		ApplicationID:   a.ApplicationID,
		FundingProgress: a.FundingProgress,
		Pending:         []*OfferDTO{},
		Accepted:        []*OfferDTO{},
		Disbursed:       []*OfferDTO{},
		Rejected:        []*OfferDTO{},
	}
	for _, o := range list {
		dto := toDTO(o, a.ApplicationID)
		switch o.State {
		case domainOffer.StateAccepted:
			out.Accepted = append(out.Accepted, dto)
		case domainOffer.StateDisbursed:
			out.Disbursed = append(out.Disbursed, dto)
		case domainOffer.StateRejected:
			out.Rejected = append(out.Rejected, dto)
		default:
			out.Pending = append(out.Pending, dto)
		}
	}
	return out, nil
}

func (u *Usecase) getOffer(ctx context.Context, offerID string) (*domainOffer.LoanOffer, error) {
	o, err := u.offers.GetByOfferID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainOffer.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

// notify fires the relay post-commit and never blocks the caller.
func (u *Usecase) notify(event, offerID string) {
	if u.relay == nil {
		return
	}
	go u.relay.Notify(context.Background(), event, offerID)
}
